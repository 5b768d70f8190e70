package detection

import (
	"github.com/ironsheep/shape-census/internal/geometry"
)

// ShapeLabel is the discrete shape category assigned to a detected object.
type ShapeLabel string

// Shape categories. Every object resolves to exactly one of these.
const (
	Triangle  ShapeLabel = "triangle"
	Square    ShapeLabel = "square"
	Rectangle ShapeLabel = "rectangle"
	Pentagon  ShapeLabel = "pentagon"
	Hexagon   ShapeLabel = "hexagon"
	Circle    ShapeLabel = "circle"
	Undefined ShapeLabel = "undefined"
)

// Labels lists every category in report order.
var Labels = []ShapeLabel{Triangle, Square, Rectangle, Pentagon, Hexagon, Circle, Undefined}

// DisplayName is the text drawn next to an object in the annotated image.
func (l ShapeLabel) DisplayName() string {
	switch l {
	case Triangle:
		return "Triangle"
	case Square:
		return "Square"
	case Rectangle:
		return "Rectangle"
	case Pentagon:
		return "Pentagon"
	case Hexagon:
		return "Hexagon"
	case Circle:
		return "Circle"
	default:
		return "Undefined Shape"
	}
}

// Ambiguous is the corner count of a region whose simplified boundary and
// simplified convex hull disagree on the number of vertices.
const Ambiguous = -1

// Object is one detected and classified region.
//
// Objects are only built from regions whose area passed the size filter, so
// for every Object the area lies strictly inside the configured bounds.
type Object struct {
	// ID numbers objects from 1 in second-pass discovery order.
	ID int `json:"id"`

	// Box is the inclusive pixel bounding box of the boundary.
	Box geometry.Box `json:"bbox"`

	// Area is the shoelace area of the boundary in square pixels.
	Area float64 `json:"area"`

	// CornerCount is the simplified vertex count, or Ambiguous.
	CornerCount int `json:"corner_count"`

	// Label is the assigned shape category.
	Label ShapeLabel `json:"label"`

	// Boundary is the region as found by the extractor.
	Boundary geometry.Polygon `json:"-"`
}

// Geometry is the set of polygon primitives the pipeline depends on.
// geometry.Primitives is the default implementation. A replacement must keep
// Simplify's contract: no more vertices than the input and no dropped point
// farther than epsilon from the result.
type Geometry interface {
	FindRegions(m *geometry.Mask) []geometry.Polygon
	Simplify(p geometry.Polygon, epsilon float64) geometry.Polygon
	ConvexHull(p geometry.Polygon) geometry.Polygon
	Area(p geometry.Polygon) float64
	Bounds(p geometry.Polygon) geometry.Box
}
