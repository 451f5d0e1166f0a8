//go:build !js

package game

import (
	"errors"
	"log"

	"github.com/ncruces/zenity"
)

func (g *Game) saveSnapshotDialog() error {
	filename, err := zenity.SelectFileSave(
		zenity.Title("Save Snapshot"),
		zenity.Filename("particles.png"),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "PNG image",
			Patterns: []string{"*.png"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}

	if err := g.writeSnapshot(filename); err != nil {
		return err
	}
	log.Printf("[FIELD] snapshot saved to %s", filename)
	return nil
}
