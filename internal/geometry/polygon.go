package geometry

import (
	"image"
	"math"

	"github.com/golang/geo/r2"
)

// Polygon is a closed ring of integer points. The last point connects back
// to the first.
type Polygon []image.Point

// Box is an axis-aligned bounding box. Width and Height count pixels
// inclusively, so a single point has a 1x1 box.
type Box struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect converts the box to an image.Rectangle with an exclusive max corner.
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// Area returns the absolute shoelace area of the ring.
func Area(p Polygon) float64 {
	if len(p) < 3 {
		return 0
	}
	var sum int64
	for i := range p {
		a := p[i]
		b := p[(i+1)%len(p)]
		sum += int64(a.X)*int64(b.Y) - int64(b.X)*int64(a.Y)
	}
	return math.Abs(float64(sum)) / 2
}

// Bounds returns the inclusive bounding box of the ring. An empty polygon
// yields a zero Box.
func Bounds(p Polygon) Box {
	if len(p) == 0 {
		return Box{}
	}
	r := r2.RectFromPoints(toR2(p)...)
	lo, hi := r.Lo(), r.Hi()
	return Box{
		X:      int(lo.X),
		Y:      int(lo.Y),
		Width:  int(hi.X-lo.X) + 1,
		Height: int(hi.Y-lo.Y) + 1,
	}
}

func toR2(p Polygon) []r2.Point {
	out := make([]r2.Point, len(p))
	for i, pt := range p {
		out[i] = r2.Point{X: float64(pt.X), Y: float64(pt.Y)}
	}
	return out
}

func fromR2(pts []r2.Point) Polygon {
	out := make(Polygon, len(pts))
	for i, pt := range pts {
		out[i] = image.Pt(int(math.Round(pt.X)), int(math.Round(pt.Y)))
	}
	return out
}
