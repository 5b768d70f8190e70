package detection

import (
	"math"

	"github.com/ironsheep/shape-census/internal/config"
	"github.com/ironsheep/shape-census/internal/geometry"
)

// Classifier assigns shape labels to stable regions.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	cfg      config.Config
	geometry Geometry
}

// NewClassifier creates a classifier with the given thresholds and
// primitives. A nil g selects geometry.Primitives.
func NewClassifier(cfg config.Config, g Geometry) *Classifier {
	if g == nil {
		g = geometry.Primitives{}
	}
	return &Classifier{cfg: cfg, geometry: g}
}

// CornerCount returns the vertex count of the simplified boundary when it
// agrees with the vertex count of the simplified convex hull, and Ambiguous
// otherwise.
//
// Concave dents and jagged edges survive simplification of the raw boundary
// but disappear from the hull, so a disagreement means the count cannot be
// trusted as a number of sides.
func (c *Classifier) CornerCount(boundary geometry.Polygon) int {
	corners := len(c.geometry.Simplify(boundary, c.cfg.ShapeEpsilon))
	hullCorners := len(c.geometry.Simplify(c.geometry.ConvexHull(boundary), c.cfg.HullEpsilon))
	if corners != hullCorners {
		return Ambiguous
	}
	return corners
}

// Classify decides the label for a region from its corner count, bounding
// box and area.
//
// # Decision
//
//   - 3 corners: Triangle
//   - 4 corners: Square when width/height is within the square threshold of
//     1, otherwise Rectangle
//   - 5 corners: Pentagon
//   - 6 corners: Hexagon
//   - anything else, including Ambiguous: Circle when both the area-to-circle
//     ratio (radius = width/2) and width/height are within their thresholds
//     of 1, otherwise Undefined
//
// Classify never fails. A zero-height box cannot produce an aspect ratio and
// resolves to Undefined.
func (c *Classifier) Classify(cornerCount int, box geometry.Box, area float64) ShapeLabel {
	switch cornerCount {
	case 3:
		return Triangle
	case 5:
		return Pentagon
	case 6:
		return Hexagon
	}

	if box.Height == 0 {
		return Undefined
	}
	aspect := float64(box.Width) / float64(box.Height)

	if cornerCount == 4 {
		if nearOne(aspect, c.cfg.SquareWidthHeightThreshold) {
			return Square
		}
		return Rectangle
	}

	radius := float64(box.Width) / 2
	circleArea := math.Pi * radius * radius
	if circleArea == 0 {
		return Undefined
	}
	matchRatio := area / circleArea
	if nearOne(matchRatio, c.cfg.CircleRatioMatchThreshold) && nearOne(aspect, c.cfg.CircleWidthHeightThreshold) {
		return Circle
	}
	return Undefined
}

// Describe builds an Object for a stable region. The ID is left for the
// caller to assign.
func (c *Classifier) Describe(boundary geometry.Polygon) Object {
	box := c.geometry.Bounds(boundary)
	area := c.geometry.Area(boundary)
	corners := c.CornerCount(boundary)
	return Object{
		Box:         box,
		Area:        area,
		CornerCount: corners,
		Label:       c.Classify(corners, box, area),
		Boundary:    boundary,
	}
}

// nearOne reports whether v lies in the open interval (1-tol, 1+tol).
func nearOne(v, tol float64) bool {
	return v > 1-tol && v < 1+tol
}
