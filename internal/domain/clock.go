package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock stamps predictions. Tests freeze it with SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Clock returns the active time source.
func Clock() clockwork.Clock {
	return clock
}

func now() time.Time {
	return clock.Now().UTC()
}
