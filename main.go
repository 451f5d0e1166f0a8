package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/game"
)

func main() {
	cfg := config.Load()

	g, err := game.New(cfg)
	if err != nil {
		log.Fatalf("[FIELD] setup aborted: %v", err)
	}

	// Interrupts end the run through the next Update.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Printf("[FIELD] %v received, stopping", sig)
		g.Stop()
	}()

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle("Particle Field - Space: pause, R: reset, S: snapshot, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TargetFPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatalf("[FIELD] %v", err)
	}
}
