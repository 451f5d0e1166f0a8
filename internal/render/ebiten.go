// Package render holds the drawing surfaces the particle field can paint on:
// an ebiten screen, an offscreen RGBA image and a terminal.
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/particle-field/internal/field"
)

var _ field.Surface = (*Screen)(nil)

// Screen draws onto the ebiten image of the current frame. Target must be
// called from Draw before the simulator renders.
type Screen struct {
	img           *ebiten.Image
	width, height int
	background    color.Color
}

func NewScreen(width, height int, background color.Color) *Screen {
	return &Screen{width: width, height: height, background: background}
}

func (s *Screen) Target(img *ebiten.Image) { s.img = img }

// SetSize follows the layout size reported by ebiten.
func (s *Screen) SetSize(width, height int) {
	s.width, s.height = width, height
}

func (s *Screen) Size() (int, int) { return s.width, s.height }

func (s *Screen) Clear() {
	if s.img == nil {
		return
	}
	if s.background == nil {
		s.img.Clear()
		return
	}
	s.img.Fill(s.background)
}

func (s *Screen) FillCircle(x, y, radius float64, c color.Color) {
	if s.img == nil {
		return
	}
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(radius), c, true)
}

func (s *Screen) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	if s.img == nil {
		return
	}
	vector.StrokeLine(s.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, true)
}
