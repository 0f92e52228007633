// Package raster holds the whiteboard pixels: an opaque RGB surface, its
// immutable snapshots, and the segment renderer that paints strokes onto it.
package raster

import (
	"errors"
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"RasterBoard/internal/state"
)

var (
	// ErrSurfaceUnavailable is returned when the surface has not been
	// initialized or has been disposed.
	ErrSurfaceUnavailable = errors.New("drawing surface unavailable")
	// ErrInvalidSize is returned when a surface is initialized with a
	// non-positive width or height.
	ErrInvalidSize = errors.New("invalid surface size")
	// ErrSnapshotMismatch is returned when a snapshot does not fit the surface.
	ErrSnapshotMismatch = errors.New("snapshot does not match surface size")
)

// Surface is an opaque RGB pixel buffer. Every pixel keeps alpha 0xff.
type Surface struct {
	width      int
	height     int
	pix        *image.RGBA
	background state.RGB
}

// NewSurface returns an uninitialized surface with the given background.
// Call Initialize before drawing.
func NewSurface(background state.RGB) *Surface {
	return &Surface{background: background}
}

// Initialize allocates a width x height raster filled with the background.
func (s *Surface) Initialize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	s.pix = image.NewRGBA(image.Rect(0, 0, width, height))
	s.width, s.height = width, height
	fill(s.pix.Pix, s.background)
	return nil
}

// Resize reallocates the raster at the new size. Existing content is always
// discarded, even when the size does not change. A non-positive width or
// height leaves the surface untouched and reports false.
func (s *Surface) Resize(width, height int) (bool, error) {
	if s.pix == nil {
		return false, ErrSurfaceUnavailable
	}
	if width <= 0 || height <= 0 {
		return false, nil
	}
	if err := s.Initialize(width, height); err != nil {
		return false, err
	}
	return true, nil
}

// Dispose releases the raster. The surface is unavailable afterwards until
// Initialize is called again.
func (s *Surface) Dispose() {
	s.pix = nil
	s.width, s.height = 0, 0
}

// Available reports whether the surface holds a raster.
func (s *Surface) Available() bool { return s.pix != nil }

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return s.height }

// Bounds is the pixel rectangle of the surface, empty when unavailable.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

func (s *Surface) Background() state.RGB { return s.background }

// At returns the color of the pixel at (x, y). Out-of-range reads return
// the background color.
func (s *Surface) At(x, y int) state.RGB {
	if s.pix == nil || !(image.Point{x, y}.In(s.Bounds())) {
		return s.background
	}
	i := s.pix.PixOffset(x, y)
	return state.RGB{R: s.pix.Pix[i], G: s.pix.Pix[i+1], B: s.pix.Pix[i+2]}
}

// Snapshot returns an immutable copy of the current raster.
func (s *Surface) Snapshot() (Snapshot, error) {
	if s.pix == nil {
		return Snapshot{}, ErrSurfaceUnavailable
	}
	return newSnapshot(s.width, s.height, s.pix.Pix), nil
}

// Blank returns a snapshot of the current size filled with the background,
// without touching the live raster.
func (s *Surface) Blank() (Snapshot, error) {
	if s.pix == nil {
		return Snapshot{}, ErrSurfaceUnavailable
	}
	return BlankSnapshot(s.width, s.height, s.background), nil
}

// Restore overwrites the live raster with snap. snap itself is unchanged.
func (s *Surface) Restore(snap Snapshot) error {
	if s.pix == nil {
		return ErrSurfaceUnavailable
	}
	if snap.width != s.width || snap.height != s.height {
		return fmt.Errorf("%w: snapshot %dx%d, surface %dx%d",
			ErrSnapshotMismatch, snap.width, snap.height, s.width, s.height)
	}
	copy(s.pix.Pix, snap.pix)
	return nil
}

// buffer exposes the live pixels to the renderer.
// CopyTo copies the pixels inside r into dst at the same coordinates and
// returns the rectangle actually copied.
func (s *Surface) CopyTo(dst *image.RGBA, r image.Rectangle) (image.Rectangle, error) {
	if s.pix == nil {
		return image.Rectangle{}, ErrSurfaceUnavailable
	}
	r = r.Intersect(s.pix.Rect).Intersect(dst.Rect)
	if r.Empty() {
		return image.Rectangle{}, nil
	}
	xdraw.Copy(dst, r.Min, s.pix, r, xdraw.Src, nil)
	return r, nil
}

func (s *Surface) buffer() *image.RGBA { return s.pix }

func fill(pix []uint8, c state.RGB) {
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
		pix[i+3] = 0xff
	}
}
