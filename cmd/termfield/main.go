// Command termfield draws the particle field in the terminal. Move the mouse
// to push particles around; Esc, q or Ctrl-C quits, r resets.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/field"
	"github.com/iburimskiy/particle-field/internal/render"
)

type app struct {
	cfg    *config.Config
	screen tcell.Screen
	term   *render.Terminal
	sim    *field.Simulator
	loop   *field.Loop
}

func newApp(cfg *config.Config, screen tcell.Screen) (*app, error) {
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	term := render.NewTerminal(screen)
	sim, err := field.New(term, cfg.FieldOptions())
	if err != nil {
		return nil, err
	}

	loop := field.NewLoop(sim, cfg.TargetFPS)
	loop.OnFrame = term.Flush

	return &app{cfg: cfg, screen: screen, term: term, sim: sim, loop: loop}, nil
}

// handleEvent applies one input event; it runs on the event goroutine while
// the loop renders on another, so it only touches the simulator's guarded
// state and the loop's stop flag.
func (a *app) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			a.loop.Stop()
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			a.loop.Stop()
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
			a.sim.Initialize(a.cfg.ParticleCount)
		}

	case *tcell.EventMouse:
		cx, cy := ev.Position()
		a.sim.SetPointer(&field.Vec{
			X: float64(cx)*render.CellWidth + render.CellWidth/2,
			Y: float64(cy)*render.CellHeight + render.CellHeight/2,
		})

	case *tcell.EventFocus:
		if !ev.Focused {
			a.sim.ClearPointer()
		}

	case *tcell.EventResize:
		// The cell buffer follows on the next frame's Clear.
		cols, rows := ev.Size()
		a.sim.Resize(cols*render.CellWidth, rows*render.CellHeight)
		a.screen.Sync()
	}
}

func (a *app) run(ctx context.Context) error {
	go func() {
		for !a.loop.Stopped() {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			a.handleEvent(ev)
		}
	}()
	return a.loop.Run(ctx)
}

func main() {
	cfg := config.Load()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	a, err := newApp(cfg, screen)
	if err != nil {
		screen.Fini()
		log.Fatalf("[FIELD] setup aborted: %v", err)
	}

	err = a.run(context.Background())
	screen.Fini()
	if err != nil {
		log.Fatalf("[FIELD] %v", err)
	}
}
