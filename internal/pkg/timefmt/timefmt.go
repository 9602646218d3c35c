package timefmt

import (
	"fmt"
	"regexp"
	"strconv"
)

// Layouts shared by every component that touches the store. The store schema
// carries times of day and running totals as HH:MM:SS strings and dates as
// YYYY-MM-DD strings, so these exact textual forms must survive round-trips.
const (
	TimeLayout = "15:04:05"
	DateLayout = "2006-01-02"

	Zero = "00:00:00"

	// EndOfDay is the sentinel written to last_clock_out when a session is
	// force-closed at the day boundary.
	EndOfDay = "23:59:59"
)

// Durations are allowed hour values beyond 23 (a summed total such as
// "25:00:00" is valid), so the hour field is any run of digits.
var clockRegex = regexp.MustCompile(`^(\d{2,}):([0-5]\d):([0-5]\d)$`)

// Seconds converts an HH:MM:SS string to seconds since midnight (or total
// seconds, for a duration).
func Seconds(s string) (int, error) {
	m := clockRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid HH:MM:SS value: %q", s)
	}
	hours, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("invalid HH:MM:SS value: %q", s)
	}
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	return hours*3600 + minutes*60 + seconds, nil
}

// Format renders a second count as HH:MM:SS. Hours are not capped at 24.
func Format(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", totalSeconds/3600, (totalSeconds%3600)/60, totalSeconds%60)
}

// AddTimes sums two HH:MM:SS durations with carry across the second and
// minute boundaries. Commutative and associative.
func AddTimes(a, b string) (string, error) {
	as, err := Seconds(a)
	if err != nil {
		return "", err
	}
	bs, err := Seconds(b)
	if err != nil {
		return "", err
	}
	return Format(as + bs), nil
}

// DurationBetween returns the wall-clock difference between two times of day
// assumed to fall on the same calendar day. When end precedes start the
// result clamps to "00:00:00"; callers that care about the inversion compare
// with Seconds themselves and log it.
func DurationBetween(start, end string) (string, error) {
	ss, err := Seconds(start)
	if err != nil {
		return "", err
	}
	es, err := Seconds(end)
	if err != nil {
		return "", err
	}
	if es < ss {
		return Zero, nil
	}
	return Format(es - ss), nil
}
