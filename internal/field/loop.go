package field

import (
	"context"
	"sync/atomic"
	"time"
)

// Loop drives a Simulator at a fixed frame rate for hosts that have no
// display-refresh callback of their own (terminal, headless).
type Loop struct {
	sim      *Simulator
	interval time.Duration

	// OnFrame runs after each rendered frame, e.g. to present a buffer.
	OnFrame func()

	stopped atomic.Bool
	frames  atomic.Uint64
}

func NewLoop(sim *Simulator, fps int) *Loop {
	if fps <= 0 {
		fps = 60
	}
	return &Loop{
		sim:      sim,
		interval: time.Second / time.Duration(fps),
	}
}

// Run steps the simulator once per tick until Stop is called or ctx is done.
// It returns ctx.Err() on cancellation and nil after Stop.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		if l.stopped.Load() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// Stop may have landed while we were waiting.
			if l.stopped.Load() {
				return nil
			}
			l.sim.Step()
			l.frames.Add(1)
			if l.OnFrame != nil {
				l.OnFrame()
			}
		}
	}
}

// Stop withholds the next frame. Safe to call from any goroutine.
func (l *Loop) Stop() { l.stopped.Store(true) }

func (l *Loop) Stopped() bool { return l.stopped.Load() }

func (l *Loop) Frames() uint64 { return l.frames.Load() }
