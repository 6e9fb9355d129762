package command

import (
	"time"

	"github.com/vancomm/classic-mines/internal/mines"
)

// Timer measures one game. It restarts on a reset and stops the first time
// the game is over.
type Timer struct {
	StartedAt time.Time
	EndedAt   time.Time // zero while the game runs
}

func NewTimer(now time.Time) Timer {
	return Timer{StartedAt: now}
}

// Track brings the timer in line with b after results were applied to it.
func (t *Timer) Track(b *mines.Board, results []Result, now time.Time) {
	for _, res := range results {
		if res.Command.Kind == Reset {
			*t = NewTimer(now)
		}
	}
	if b.Status().Over() && !t.Stopped() {
		t.EndedAt = now
	}
}

func (t Timer) Stopped() bool {
	return !t.EndedAt.IsZero()
}

func (t Timer) Elapsed(now time.Time) time.Duration {
	if t.Stopped() {
		return t.EndedAt.Sub(t.StartedAt)
	}
	return now.Sub(t.StartedAt)
}
