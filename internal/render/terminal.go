package render

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/particle-field/internal/field"
)

// Terminal cells are roughly twice as tall as wide; the field works in a
// pixel space of CellWidth x CellHeight per cell so distances keep their feel.
const (
	CellWidth  = 8
	CellHeight = 16
)

const (
	runeParticleLarge = '●'
	runeParticle      = '•'
	runeLine          = '·'
)

var _ field.Surface = (*Terminal)(nil)

type cell struct {
	r        rune
	fg       color.NRGBA
	particle bool
	alpha    float64
}

// Terminal buffers one frame of cells and writes them to a tcell screen on
// Flush. Lines never overwrite particles; where lines cross, the most opaque
// one wins.
type Terminal struct {
	screen     tcell.Screen
	cols, rows int
	cells      []cell
}

func NewTerminal(screen tcell.Screen) *Terminal {
	t := &Terminal{screen: screen}
	cols, rows := screen.Size()
	t.Resize(cols, rows)
	return t
}

// Resize takes the new size in cells.
func (t *Terminal) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	t.cols, t.rows = cols, rows
	t.cells = make([]cell, cols*rows)
}

// Size reports pixel dimensions.
func (t *Terminal) Size() (int, int) {
	return t.cols * CellWidth, t.rows * CellHeight
}

// Cell maps pixel coordinates to a cell position.
func (t *Terminal) Cell(x, y float64) (int, int, bool) {
	cx, cy := int(math.Floor(x/CellWidth)), int(math.Floor(y/CellHeight))
	if cx < 0 || cy < 0 || cx >= t.cols || cy >= t.rows {
		return cx, cy, false
	}
	return cx, cy, true
}

// Clear also picks up a changed screen size, so resizes take effect on the
// rendering goroutine.
func (t *Terminal) Clear() {
	if cols, rows := t.screen.Size(); cols != t.cols || rows != t.rows {
		t.Resize(cols, rows)
		return
	}
	for i := range t.cells {
		t.cells[i] = cell{}
	}
}

func (t *Terminal) FillCircle(x, y, radius float64, c color.Color) {
	cx, cy, ok := t.Cell(x, y)
	if !ok {
		return
	}
	r := runeParticle
	if radius > (field.MaxRadius+field.MinRadius)/2 {
		r = runeParticleLarge
	}
	t.cells[cy*t.cols+cx] = cell{r: r, fg: flatten(c), particle: true, alpha: 1}
}

// StrokeLine walks the cells between both endpoints (Bresenham).
func (t *Terminal) StrokeLine(x0, y0, x1, y1, _ float64, c color.Color) {
	ax, ay := int(math.Floor(x0/CellWidth)), int(math.Floor(y0/CellHeight))
	bx, by := int(math.Floor(x1/CellWidth)), int(math.Floor(y1/CellHeight))

	nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	alpha := float64(nrgba.A) / 255
	fg := flatten(c)

	dx, dy := abs(bx-ax), -abs(by-ay)
	sx, sy := 1, 1
	if ax > bx {
		sx = -1
	}
	if ay > by {
		sy = -1
	}
	e := dx + dy
	for {
		if ax >= 0 && ay >= 0 && ax < t.cols && ay < t.rows {
			cl := &t.cells[ay*t.cols+ax]
			if !cl.particle && alpha > cl.alpha {
				*cl = cell{r: runeLine, fg: fg, alpha: alpha}
			}
		}
		if ax == bx && ay == by {
			break
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			ax += sx
		}
		if e2 <= dx {
			e += dx
			ay += sy
		}
	}
}

// Flush writes the buffered frame and shows it.
func (t *Terminal) Flush() {
	t.screen.Clear()
	for i, cl := range t.cells {
		if cl.r == 0 {
			continue
		}
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(cl.fg.R), int32(cl.fg.G), int32(cl.fg.B)))
		t.screen.SetContent(i%t.cols, i/t.cols, cl.r, nil, style)
	}
	t.screen.Show()
}

// flatten blends c over a black background; cells have no alpha.
func flatten(c color.Color) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	a := float64(n.A) / 255
	return color.NRGBA{
		R: uint8(float64(n.R)*a + 0.5),
		G: uint8(float64(n.G)*a + 0.5),
		B: uint8(float64(n.B)*a + 0.5),
		A: 255,
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
