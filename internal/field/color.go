package field

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBA keeps the colour channels and the alpha apart so line opacity can be
// composed arithmetically instead of by rewriting a formatted string.
type RGBA struct {
	R, G, B uint8
	A       float64 // 0-1
}

func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = clamp01(a)
	return c
}

// NRGBA converts to the non-premultiplied form image/color and ebiten expect.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(clamp01(c.A)*255 + 0.5)}
}

func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, strconv.FormatFloat(c.A, 'f', -1, 64))
}

// ParseColor accepts #rgb, #rrggbb, rgb(r, g, b) and rgba(r, g, b, a).
func ParseColor(s string) (RGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return RGBA{}, errors.New("empty colour")
	}

	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return RGBA{}, fmt.Errorf("parse colour %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return RGBA{R: r, G: g, B: b, A: 1}, nil
	}

	var args string
	var want int
	switch {
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		args, want = s[len("rgba("):len(s)-1], 4
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		args, want = s[len("rgb("):len(s)-1], 3
	default:
		return RGBA{}, fmt.Errorf("unsupported colour %q", s)
	}

	parts := strings.Split(args, ",")
	if len(parts) != want {
		return RGBA{}, fmt.Errorf("colour %q: expected %d components, got %d", s, want, len(parts))
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return RGBA{}, fmt.Errorf("colour %q: bad channel %q", s, strings.TrimSpace(parts[i]))
		}
		ch[i] = uint8(v)
	}

	alpha := 1.0
	if want == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return RGBA{}, fmt.Errorf("colour %q: bad alpha %q", s, strings.TrimSpace(parts[3]))
		}
		alpha = a
	}

	return RGBA{R: ch[0], G: ch[1], B: ch[2], A: alpha}, nil
}

// MustParseColor is for package-level defaults.
func MustParseColor(s string) RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
