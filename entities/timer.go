package entities

import (
	"github.com/raeleus/superbug/components"
	"github.com/raeleus/superbug/systems"
)

// Timer runs a callback once after a delay and then disposes itself.
type Timer struct {
	systems.Base

	countdown components.Countdown
	fn        func(env *systems.Env)
}

// NewTimer creates a timer that fires fn after delay seconds.
func NewTimer(delay float32, fn func(env *systems.Env)) *Timer {
	t := &Timer{fn: fn}
	t.countdown.Reset(delay)
	return t
}

// Remaining returns the time left before the timer fires.
func (t *Timer) Remaining() float32 { return t.countdown.Remaining }

func (t *Timer) Update(env *systems.Env, dt float32) {
	if t.Disposed() {
		return
	}
	if t.countdown.Tick(dt) {
		t.Dispose()
		if t.fn != nil {
			t.fn(env)
		}
	}
}

func (t *Timer) Draw(systems.Presenter) {}
