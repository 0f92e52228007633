package raster

import (
	"image"
	"math"

	"golang.org/x/image/vector"

	"RasterBoard/internal/state"
)

// kappa places cubic control points so that four curves approximate a circle.
const kappa = 0.5522847498307936

// Renderer paints stroke segments onto a Surface. Each segment is filled as
// a capsule (a rectangle with a half disc on each end), which gives round
// caps, and round joins where consecutive segments share an end point.
type Renderer struct {
	surface *Surface
	z       vector.Rasterizer
}

func NewRenderer(s *Surface) *Renderer {
	return &Renderer{surface: s}
}

// Segment paints a line from a to b with style and returns the rectangle of
// pixels it may have changed. A zero-length segment paints a dot.
func (r *Renderer) Segment(a, b state.Point, style state.StrokeStyle) (image.Rectangle, error) {
	dst := r.surface.buffer()
	if dst == nil {
		return image.Rectangle{}, ErrSurfaceUnavailable
	}
	if !(style.Width > 0) {
		return image.Rectangle{}, nil
	}
	radius := style.Width / 2
	rect := segmentBounds(a, b, radius, dst.Bounds())
	if rect.Empty() {
		return image.Rectangle{}, nil
	}

	// The rasterizer mask covers exactly rect, with its origin at rect.Min.
	r.z.Reset(rect.Dx(), rect.Dy())
	o := state.Pt(float64(rect.Min.X), float64(rect.Min.Y))
	capsule(&r.z, state.Pt(a.X-o.X, a.Y-o.Y), state.Pt(b.X-o.X, b.Y-o.Y), radius)
	r.z.Draw(dst, rect, image.NewUniform(style.Color), image.Point{})
	return rect, nil
}

func capsule(z *vector.Rasterizer, a, b state.Point, radius float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length < 1e-9 {
		circle(z, a, radius)
		return
	}
	ux, uy := dx/length*radius, dy/length*radius
	nx, ny := -uy, ux
	k := kappa

	z.MoveTo(f32(a.X+nx), f32(a.Y+ny))
	z.LineTo(f32(b.X+nx), f32(b.Y+ny))
	cubeTo(z, b.X+nx+ux*k, b.Y+ny+uy*k, b.X+ux+nx*k, b.Y+uy+ny*k, b.X+ux, b.Y+uy)
	cubeTo(z, b.X+ux-nx*k, b.Y+uy-ny*k, b.X-nx+ux*k, b.Y-ny+uy*k, b.X-nx, b.Y-ny)
	z.LineTo(f32(a.X-nx), f32(a.Y-ny))
	cubeTo(z, a.X-nx-ux*k, a.Y-ny-uy*k, a.X-ux-nx*k, a.Y-uy-ny*k, a.X-ux, a.Y-uy)
	cubeTo(z, a.X-ux+nx*k, a.Y-uy+ny*k, a.X+nx-ux*k, a.Y+ny-uy*k, a.X+nx, a.Y+ny)
	z.ClosePath()
}

func circle(z *vector.Rasterizer, c state.Point, radius float64) {
	rk := radius * kappa
	z.MoveTo(f32(c.X+radius), f32(c.Y))
	cubeTo(z, c.X+radius, c.Y+rk, c.X+rk, c.Y+radius, c.X, c.Y+radius)
	cubeTo(z, c.X-rk, c.Y+radius, c.X-radius, c.Y+rk, c.X-radius, c.Y)
	cubeTo(z, c.X-radius, c.Y-rk, c.X-rk, c.Y-radius, c.X, c.Y-radius)
	cubeTo(z, c.X+rk, c.Y-radius, c.X+radius, c.Y-rk, c.X+radius, c.Y)
	z.ClosePath()
}

func cubeTo(z *vector.Rasterizer, bx, by, cx, cy, dx, dy float64) {
	z.CubeTo(f32(bx), f32(by), f32(cx), f32(cy), f32(dx), f32(dy))
}

func f32(v float64) float32 { return float32(v) }
