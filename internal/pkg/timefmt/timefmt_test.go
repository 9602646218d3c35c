package timefmt

import (
	"testing"
)

func TestAddTimes(t *testing.T) {
	cases := []struct {
		a, b string
		want string
	}{
		{"00:00:45", "00:00:30", "00:01:15"},
		{"00:59:00", "00:01:00", "01:00:00"},
		{"23:00:00", "02:00:00", "25:00:00"},
		{"00:00:00", "00:00:00", "00:00:00"},
		{"04:00:00", "04:00:00", "08:00:00"},
		{"00:59:59", "00:00:01", "01:00:00"},
		{"12:34:56", "00:00:00", "12:34:56"},
	}
	for _, c := range cases {
		got, err := AddTimes(c.a, c.b)
		if err != nil {
			t.Fatalf("AddTimes(%q, %q) returned error: %v", c.a, c.b, err)
		}
		if got != c.want {
			t.Errorf("AddTimes(%q, %q) = %q, want %q", c.a, c.b, got, c.want)
		}
	}
}

func TestAddTimesCommutative(t *testing.T) {
	values := []string{"00:00:01", "00:59:59", "08:30:15", "23:00:00"}
	for _, a := range values {
		for _, b := range values {
			ab, err := AddTimes(a, b)
			if err != nil {
				t.Fatalf("AddTimes(%q, %q) returned error: %v", a, b, err)
			}
			ba, err := AddTimes(b, a)
			if err != nil {
				t.Fatalf("AddTimes(%q, %q) returned error: %v", b, a, err)
			}
			if ab != ba {
				t.Errorf("AddTimes not commutative: %q+%q=%q but %q+%q=%q", a, b, ab, b, a, ba)
			}
		}
	}
}

func TestAddTimesAssociative(t *testing.T) {
	triples := [][3]string{
		{"00:00:45", "00:00:30", "00:59:00"},
		{"23:00:00", "02:00:00", "01:30:30"},
		{"00:00:01", "00:00:01", "00:00:01"},
	}
	for _, tr := range triples {
		ab, _ := AddTimes(tr[0], tr[1])
		left, _ := AddTimes(ab, tr[2])
		bc, _ := AddTimes(tr[1], tr[2])
		right, _ := AddTimes(tr[0], bc)
		if left != right {
			t.Errorf("AddTimes not associative for %v: (a+b)+c=%q, a+(b+c)=%q", tr, left, right)
		}
	}
}

func TestDurationBetween(t *testing.T) {
	cases := []struct {
		start, end string
		want       string
	}{
		{"09:00:00", "09:00:00", "00:00:00"},
		{"09:00:00", "17:30:15", "08:30:15"},
		{"09:00:00", "12:00:00", "03:00:00"},
		{"00:00:00", "23:59:59", "23:59:59"},
		// end before start clamps to zero
		{"17:00:00", "09:00:00", "00:00:00"},
	}
	for _, c := range cases {
		got, err := DurationBetween(c.start, c.end)
		if err != nil {
			t.Fatalf("DurationBetween(%q, %q) returned error: %v", c.start, c.end, err)
		}
		if got != c.want {
			t.Errorf("DurationBetween(%q, %q) = %q, want %q", c.start, c.end, got, c.want)
		}
	}
}

func TestSecondsRejectsMalformedValues(t *testing.T) {
	invalid := []string{"", "9:00:00", "09:00", "09:60:00", "09:00:60", "ab:cd:ef", "09-00-00", "-1:00:00"}
	for _, s := range invalid {
		if _, err := Seconds(s); err == nil {
			t.Errorf("Seconds(%q) = nil error, want parse error", s)
		}
	}
}

func TestSecondsAcceptsUncappedHours(t *testing.T) {
	got, err := Seconds("25:00:00")
	if err != nil {
		t.Fatalf("Seconds(25:00:00) returned error: %v", err)
	}
	if got != 25*3600 {
		t.Errorf("Seconds(25:00:00) = %d, want %d", got, 25*3600)
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "00:00:00"},
		{75, "00:01:15"},
		{3600, "01:00:00"},
		{25 * 3600, "25:00:00"},
		{-5, "00:00:00"},
	}
	for _, c := range cases {
		if got := Format(c.in); got != c.want {
			t.Errorf("Format(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}
