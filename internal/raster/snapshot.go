package raster

import (
	"bytes"
	"image"
	"image/color"

	"RasterBoard/internal/state"
)

// Snapshot is an immutable copy of a surface raster. It owns its pixels and
// shares nothing with the surface it was taken from.
type Snapshot struct {
	width  int
	height int
	pix    []uint8 // RGBA, alpha always 0xff
}

var _ image.Image = Snapshot{}

func newSnapshot(width, height int, pix []uint8) Snapshot {
	own := make([]uint8, len(pix))
	copy(own, pix)
	return Snapshot{width: width, height: height, pix: own}
}

// BlankSnapshot is a width x height raster filled with bg.
func BlankSnapshot(width, height int, bg state.RGB) Snapshot {
	pix := make([]uint8, width*height*4)
	fill(pix, bg)
	return Snapshot{width: width, height: height, pix: pix}
}

func (s Snapshot) Width() int  { return s.width }
func (s Snapshot) Height() int { return s.height }

// Pixel returns the color at (x, y), or black outside the raster.
func (s Snapshot) Pixel(x, y int) state.RGB {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return state.Black
	}
	i := (y*s.width + x) * 4
	return state.RGB{R: s.pix[i], G: s.pix[i+1], B: s.pix[i+2]}
}

// Equal reports whether both snapshots hold bit-identical rasters.
func (s Snapshot) Equal(o Snapshot) bool {
	return s.width == o.width && s.height == o.height && bytes.Equal(s.pix, o.pix)
}

// IsZero reports whether s is the zero Snapshot.
func (s Snapshot) IsZero() bool { return s.pix == nil }

// ColorModel implements image.Image.
func (s Snapshot) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (s Snapshot) Bounds() image.Rectangle { return image.Rect(0, 0, s.width, s.height) }

// At implements image.Image.
func (s Snapshot) At(x, y int) color.Color {
	c := s.Pixel(x, y)
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Image returns a fresh *image.RGBA holding a copy of the pixels.
func (s Snapshot) Image() *image.RGBA {
	img := image.NewRGBA(s.Bounds())
	copy(img.Pix, s.pix)
	return img
}
