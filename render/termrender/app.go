package termrender

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/tetrino/tetrino"
	"go.uber.org/zap"
)

// App runs a world in a terminal until the player quits or ctx ends.
type App struct {
	Screen   tcell.Screen
	World    *tetrino.World
	Renderer *Renderer
	Logger   *zap.Logger
	// Interval is the frame period.
	Interval time.Duration

	items []tetrino.DrawItem
}

// Run polls screen events on a separate goroutine and steps the world on every tick with the
// measured frame time. It returns when q, Esc or Ctrl-C is pressed or ctx is done.
func (a *App) Run(ctx context.Context) error {
	interval := a.Interval
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	logger := a.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := a.Screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			if !a.handle(ev, logger) {
				return nil
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			a.World.Step(dt)
			a.items = a.World.Sprites(a.items[:0])
			a.Renderer.Draw(a.Screen, a.items)
		}
	}
}

// handle applies one input event and reports whether the app keeps running.
func (a *App) handle(ev tcell.Event, logger *zap.Logger) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'n':
			logger.Debug("respawn requested")
			a.World.Respawn()
		}
	case *tcell.EventResize:
		a.Screen.Sync()
	}
	return true
}
