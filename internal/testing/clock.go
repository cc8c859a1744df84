package testing

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultStartTime is the close time of a fresh environment.
var DefaultStartTime = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// NewClock returns a fake clock set to DefaultStartTime.
func NewClock() *clockwork.FakeClock {
	return clockwork.NewFakeClockAt(DefaultStartTime)
}
