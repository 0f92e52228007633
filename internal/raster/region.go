package raster

import (
	"image"
	"math"

	"RasterBoard/internal/state"
)

// aaPadding covers the antialiased fringe around a stroke edge.
const aaPadding = 1

// segmentBounds returns the pixels a round-capped segment from a to b with
// the given radius can touch, clipped to clip.
func segmentBounds(a, b state.Point, radius float64, clip image.Rectangle) image.Rectangle {
	if !finite(a) || !finite(b) || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return image.Rectangle{}
	}
	// Clamp before converting so far-away points cannot overflow int.
	x0 := clampf(math.Min(a.X, b.X)-radius, clip.Min.X, clip.Max.X)
	x1 := clampf(math.Max(a.X, b.X)+radius, clip.Min.X, clip.Max.X)
	y0 := clampf(math.Min(a.Y, b.Y)-radius, clip.Min.Y, clip.Max.Y)
	y1 := clampf(math.Max(a.Y, b.Y)+radius, clip.Min.Y, clip.Max.Y)

	r := image.Rect(
		int(math.Floor(x0))-aaPadding, int(math.Floor(y0))-aaPadding,
		int(math.Ceil(x1))+aaPadding, int(math.Ceil(y1))+aaPadding,
	)
	return r.Intersect(clip)
}

func clampf(v float64, lo, hi int) float64 {
	return math.Max(float64(lo-aaPadding), math.Min(v, float64(hi+aaPadding)))
}

func finite(p state.Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
