package clock

import "time"

// Clock is the single source of "now" for the attendance ledger. Every
// operation that stamps or compares times receives one, so tests can supply
// deterministic timestamps.
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

// NewSystem returns a wall-clock Clock reporting time in loc.
func NewSystem(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}
