package host

import "time"

// Clock supplies the host's view of the current time. Operations that compare
// activation times against "now" read it through this interface so tests can
// pin time.
type Clock interface {
	Now() time.Time
}

// WallClock is the production Clock.
type WallClock struct{}

func (WallClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Now() time.Time { return c.Instant }
