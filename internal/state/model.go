package state

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
	"time"
)

// ErrInvalidColor is returned by ParseHex for anything that is not #rrggbb.
var ErrInvalidColor = errors.New("invalid color")

// Point is a position on the surface in pixel coordinates.
type Point struct{ X, Y float64 }

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// RGB is an opaque color. The surface has no alpha channel, so neither do
// the colors painted onto it.
type RGB struct{ R, G, B uint8 }

var (
	White = RGB{255, 255, 255}
	Black = RGB{0, 0, 0}
)

// RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) String() string { return c.Hex() }

// FromColor flattens any color.Color to RGB, discarding alpha.
func FromColor(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// ParseHex parses "#rrggbb" or "rrggbb".
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	var c RGB
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return c, nil
}

// StrokeStyle is what a single segment is painted with.
type StrokeStyle struct {
	Color RGB
	Width float64
}

// Stroke describes one pointer-down to pointer-up gesture. Pixels are
// painted as the pointer moves; the record only carries metadata for
// listeners and logs.
type Stroke struct {
	ID      string
	Seq     uint64
	Points  []Point
	Started time.Time
}

// Segments is the number of segments painted so far.
func (s *Stroke) Segments() int {
	if len(s.Points) < 2 {
		return 0
	}
	return len(s.Points) - 1
}
