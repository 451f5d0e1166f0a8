// Command snapshot runs the particle field headless and writes the last frame
// as a PNG.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/field"
	"github.com/iburimskiy/particle-field/internal/render"
)

func main() {
	cfg := config.Load()

	width := flag.Int("width", cfg.WindowWidth, "surface width in pixels")
	height := flag.Int("height", cfg.WindowHeight, "surface height in pixels")
	frames := flag.Int("frames", 120, "frames to simulate before capturing")
	out := flag.String("o", "particles.png", "output PNG path")
	flag.Parse()

	if err := run(cfg, *width, *height, *frames, *out); err != nil {
		log.Fatalf("[FIELD] %v", err)
	}
	log.Printf("[FIELD] wrote %s (%dx%d, %d frames)", *out, *width, *height, *frames)
}

func run(cfg *config.Config, width, height, frames int, out string) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid size %dx%d", width, height)
	}

	raster := render.NewRaster(width, height, cfg.Background.NRGBA())
	sim, err := field.New(raster, cfg.FieldOptions())
	if err != nil {
		return err
	}

	for i := 0; i < frames; i++ {
		sim.AdvanceFrame()
	}
	sim.Render()

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := raster.Encode(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", out, err)
	}
	return f.Close()
}
