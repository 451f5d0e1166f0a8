package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"github.com/iburimskiy/particle-field/internal/field"
)

// kappa places cubic control points so four segments approximate a circle.
const kappa = 0.5522847498

var _ field.Surface = (*Raster)(nil)

// Raster is an offscreen surface backed by an *image.RGBA.
type Raster struct {
	img        *image.RGBA
	background color.Color
	z          *vector.Rasterizer
}

func NewRaster(width, height int, background color.Color) *Raster {
	if background == nil {
		background = color.Transparent
	}
	return &Raster{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		background: background,
		z:          vector.NewRasterizer(1, 1),
	}
}

func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize reallocates the backing image; its content is lost.
func (r *Raster) Resize(width, height int) {
	r.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

func (r *Raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(r.background), image.Point{}, draw.Src)
}

func (r *Raster) FillCircle(x, y, radius float64, c color.Color) {
	if radius <= 0 {
		return
	}
	rect, ok := r.clip(x-radius, y-radius, x+radius, y+radius)
	if !ok {
		return
	}

	p := r.begin(rect)
	k := radius * kappa
	p.move(x+radius, y)
	p.cube(x+radius, y+k, x+k, y+radius, x, y+radius)
	p.cube(x-k, y+radius, x-radius, y+k, x-radius, y)
	p.cube(x-radius, y-k, x-k, y-radius, x, y-radius)
	p.cube(x+k, y-radius, x+radius, y-k, x+radius, y)
	p.close()
	r.fill(rect, c)
}

func (r *Raster) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 || width <= 0 {
		return
	}
	// Normal scaled to half the stroke width.
	nx, ny := -dy/length*width/2, dx/length*width/2

	rect, ok := r.clip(
		math.Min(x0, x1)-width, math.Min(y0, y1)-width,
		math.Max(x0, x1)+width, math.Max(y0, y1)+width,
	)
	if !ok {
		return
	}

	p := r.begin(rect)
	p.move(x0+nx, y0+ny)
	p.line(x1+nx, y1+ny)
	p.line(x1-nx, y1-ny)
	p.line(x0-nx, y0-ny)
	p.close()
	r.fill(rect, c)
}

// Encode writes the current image as PNG.
func (r *Raster) Encode(w io.Writer) error {
	return png.Encode(w, r.img)
}

// clip returns the pixel rectangle covering the given bounds inside the image.
func (r *Raster) clip(minX, minY, maxX, maxY float64) (image.Rectangle, bool) {
	rect := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1,
	).Intersect(r.img.Bounds())
	return rect, !rect.Empty()
}

func (r *Raster) begin(rect image.Rectangle) path {
	r.z.Reset(rect.Dx(), rect.Dy())
	return path{z: r.z, ox: float64(rect.Min.X), oy: float64(rect.Min.Y)}
}

func (r *Raster) fill(rect image.Rectangle, c color.Color) {
	r.z.DrawOp = draw.Over
	r.z.Draw(r.img, rect, image.NewUniform(c), image.Point{})
}

// path feeds image coordinates to a rasterizer sized to one clip rectangle,
// translating them into its local space. Points outside the rectangle pass
// through as they are; the rasterizer drops the coverage that falls outside.
type path struct {
	z      *vector.Rasterizer
	ox, oy float64
}

func (p path) pt(x, y float64) (float32, float32) {
	return float32(x - p.ox), float32(y - p.oy)
}

func (p path) move(x, y float64) { p.z.MoveTo(p.pt(x, y)) }

func (p path) line(x, y float64) { p.z.LineTo(p.pt(x, y)) }

func (p path) cube(bx, by, cx, cy, dx, dy float64) {
	bx32, by32 := p.pt(bx, by)
	cx32, cy32 := p.pt(cx, cy)
	dx32, dy32 := p.pt(dx, dy)
	p.z.CubeTo(bx32, by32, cx32, cy32, dx32, dy32)
}

func (p path) close() { p.z.ClosePath() }
