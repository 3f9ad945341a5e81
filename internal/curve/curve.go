// Parametric bird-flight curve: sampling and pixel mapping
package curve

import (
	"image"
	"math"

	"cvgl-demos/internal/config"
)

// Math-space domain covered by the canvas
const (
	DomainMinX = -3.0
	DomainMaxX = 3.0
	DomainMinY = -1.0
	DomainMaxY = 1.0
)

// Segment is one line of the figure, drawn from P1 to P2
type Segment struct {
	Index int
	P1    image.Point
	P2    image.Point
}

// Endpoints evaluates both sub-curves at sample i of n
func Endpoints(i, n int) (x1, y1, x2, y2 float64) {
	t := 2 * math.Pi * float64(i) / float64(n)
	s := math.Sin(t)
	s3 := s * s * s

	x1 = 3 * s3
	y1 = -math.Cos(8 * t)
	x2 = 1.5 * s3
	y2 = -0.5 * math.Cos(6*t)
	return x1, y1, x2, y2
}

// ToPixel maps a math-space point onto a w x h canvas with row 0 at the top.
// Coordinates are truncated, and a point on the max edge of the domain maps
// to w (or h), one past the last pixel.
func ToPixel(x, y float64, w, h int) image.Point {
	fx := (x - DomainMinX) / (DomainMaxX - DomainMinX)
	fy := 1 - (y-DomainMinY)/(DomainMaxY-DomainMinY)
	return image.Pt(int(fx*float64(w)), int(fy*float64(h)))
}

// SegmentAt computes segment i for the given configuration
func SegmentAt(i int, cfg config.CurveConfig) Segment {
	x1, y1, x2, y2 := Endpoints(i, cfg.Samples)
	return Segment{
		Index: i,
		P1:    ToPixel(x1, y1, cfg.Width, cfg.Height),
		P2:    ToPixel(x2, y2, cfg.Width, cfg.Height),
	}
}

// Segments returns all samples 1..N in drawing order
func Segments(cfg config.CurveConfig) []Segment {
	segments := make([]Segment, 0, cfg.Samples)
	for i := 1; i <= cfg.Samples; i++ {
		segments = append(segments, SegmentAt(i, cfg))
	}
	return segments
}
