package engine

import "time"

// Clock supplies the current instant. The engine never reads timers itself;
// all durations are computed from recorded timestamps, which keeps the state
// machine testable with a fixed clock.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return realClock{} }
