// Package game hosts the particle field in an ebiten window, or in the
// browser canvas when built for js/wasm.
package game

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/field"
	"github.com/iburimskiy/particle-field/internal/render"
)

type Game struct {
	cfg    *config.Config
	sim    *field.Simulator
	screen *render.Screen

	width, height int

	// input edge detection
	prevKey map[ebiten.Key]bool

	// state
	paused    bool
	showHelp  bool
	startedAt time.Time
	stopped   atomic.Bool
	lastErr   error
	lastSaved string
}

func New(cfg *config.Config) (*Game, error) {
	screen := render.NewScreen(cfg.WindowWidth, cfg.WindowHeight, cfg.Background.NRGBA())
	sim, err := field.New(screen, cfg.FieldOptions())
	if err != nil {
		return nil, fmt.Errorf("create particle field: %w", err)
	}

	return &Game{
		cfg:       cfg,
		sim:       sim,
		screen:    screen,
		width:     cfg.WindowWidth,
		height:    cfg.WindowHeight,
		prevKey:   map[ebiten.Key]bool{},
		showHelp:  true,
		startedAt: time.Now(),
	}, nil
}

func (g *Game) Simulator() *field.Simulator { return g.sim }

// Stop makes the next Update end the run loop.
func (g *Game) Stop() { g.stopped.Store(true) }

func (g *Game) Update() error {
	if g.stopped.Load() {
		return ebiten.Termination
	}

	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	g.sim.SetPointer(g.pointer())

	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if justPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if justPressed(ebiten.KeyR) {
		g.sim.Initialize(g.cfg.ParticleCount)
	}
	if justPressed(ebiten.KeyH) {
		g.showHelp = !g.showHelp
	}
	if justPressed(ebiten.KeyS) {
		if err := g.saveSnapshotDialog(); err != nil {
			log.Printf("[FIELD] snapshot failed: %v", err)
			g.lastErr = err
		}
	}

	if !g.paused {
		g.sim.AdvanceFrame()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.screen.Target(screen)
	g.sim.Render()

	if !g.showHelp {
		return
	}
	status := "Running " + formatDuration(time.Since(g.startedAt)) + " - Space: pause, R: reset, S: snapshot, H: hide, Esc/Q: quit"
	if g.paused {
		status = "Paused - Space to resume"
	}
	if g.lastSaved != "" {
		status += " | Saved " + g.lastSaved
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

// Layout follows the outside size so the field always covers the viewport.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.screen.SetSize(outsideWidth, outsideHeight)
		g.sim.Resize(outsideWidth, outsideHeight)
	}
	return g.width, g.height
}

// pointer resolves the current input position: first touch, else the mouse
// cursor while the window has focus.
func (g *Game) pointer() *field.Vec {
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return pointerWithin(x, y, g.width, g.height)
	}
	if len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0 || !ebiten.IsFocused() {
		return nil
	}
	x, y := ebiten.CursorPosition()
	return pointerWithin(x, y, g.width, g.height)
}

// writeSnapshot renders the current frame offscreen and saves it as PNG.
func (g *Game) writeSnapshot(path string) error {
	raster := render.NewRaster(g.width, g.height, g.cfg.Background.NRGBA())
	g.sim.Snapshot(raster)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := raster.Encode(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	g.lastSaved = path
	g.lastErr = nil
	return nil
}
