package app

import "time"

// Clock schedules the splash delay. Tests inject a clock that returns at once.
type Clock interface {
	Sleep(d time.Duration)
}

// RealClock sleeps on the wall clock.
type RealClock struct{}

func (RealClock) Sleep(d time.Duration) { time.Sleep(d) }

// NoDelay skips every wait. The CLI subcommands use it.
type NoDelay struct{}

func (NoDelay) Sleep(time.Duration) {}
