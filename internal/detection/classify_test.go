package detection

import (
	"math"
	"testing"

	"go.viam.com/test"

	"github.com/ironsheep/shape-census/internal/config"
	"github.com/ironsheep/shape-census/internal/geometry"
)

func box(w, h int) geometry.Box {
	return geometry.Box{X: 10, Y: 10, Width: w, Height: h}
}

func TestClassify(t *testing.T) {
	c := NewClassifier(config.Default(), nil)
	circleArea := math.Pi * 30 * 30

	tests := []struct {
		name    string
		corners int
		box     geometry.Box
		area    float64
		want    ShapeLabel
	}{
		{"triangle", 3, box(80, 40), 1600, Triangle},
		{"square", 4, box(100, 100), 10000, Square},
		{"near square", 4, box(110, 100), 11000, Square},
		{"narrow near square", 4, box(90, 100), 9000, Square},
		{"rectangle wide", 4, box(120, 100), 12000, Rectangle},
		{"rectangle tall", 4, box(40, 100), 4000, Rectangle},
		{"pentagon", 5, box(60, 60), 2500, Pentagon},
		{"hexagon", 6, box(60, 60), 2500, Hexagon},
		{"circle from many corners", 8, box(60, 60), circleArea, Circle},
		{"circle from ambiguous", Ambiguous, box(60, 60), circleArea, Circle},
		{"circle slightly small", 7, box(60, 60), circleArea * 0.9, Circle},
		{"too little area", 8, box(60, 60), circleArea * 0.6, Undefined},
		{"too much area", 8, box(60, 60), circleArea * 1.3, Undefined},
		{"elongated", 8, box(60, 40), circleArea, Undefined},
		{"two corners", 2, box(60, 60), 1000, Undefined},
		{"zero height square", 4, box(10, 0), 900, Undefined},
		{"zero height ambiguous", Ambiguous, box(10, 0), 900, Undefined},
		{"zero size", Ambiguous, box(0, 0), 900, Undefined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test.That(t, c.Classify(tt.corners, tt.box, tt.area), test.ShouldEqual, tt.want)
		})
	}
}

func TestClassifyCornerRules(t *testing.T) {
	c := NewClassifier(config.Default(), nil)
	for w := 40; w <= 200; w += 7 {
		h := 100
		got := c.Classify(4, box(w, h), float64(w*h))
		if math.Abs(float64(w)/float64(h)-1) < 0.15 {
			test.That(t, got, test.ShouldEqual, Square)
		} else {
			test.That(t, got, test.ShouldEqual, Rectangle)
		}
		test.That(t, c.Classify(3, box(w, h), float64(w*h)), test.ShouldEqual, Triangle)
	}
}

func TestClassifyUsesConfiguredThresholds(t *testing.T) {
	cfg := config.Default()
	cfg.SquareWidthHeightThreshold = 0.3
	c := NewClassifier(cfg, nil)
	test.That(t, c.Classify(4, box(125, 100), 12500), test.ShouldEqual, Square)
}

func TestCornerCount(t *testing.T) {
	c := NewClassifier(config.Default(), nil)

	square := geometry.Polygon{{X: 0, Y: 0}, {X: 0, Y: 100}, {X: 100, Y: 100}, {X: 100, Y: 0}}
	test.That(t, c.CornerCount(square), test.ShouldEqual, 4)

	tri := geometry.Polygon{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 50, Y: 80}}
	test.That(t, c.CornerCount(tri), test.ShouldEqual, 3)

	// The notch of an L survives simplification but not the hull.
	ell := geometry.Polygon{
		{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 40},
		{X: 40, Y: 40}, {X: 40, Y: 100}, {X: 0, Y: 100},
	}
	test.That(t, c.CornerCount(ell), test.ShouldEqual, Ambiguous)

	// A small jog is within epsilon and disappears from both.
	jog := geometry.Polygon{
		{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 50, Y: 3}, {X: 100, Y: 3},
		{X: 100, Y: 100}, {X: 0, Y: 100},
	}
	test.That(t, c.CornerCount(jog), test.ShouldEqual, 4)
}

func TestDescribe(t *testing.T) {
	c := NewClassifier(config.Default(), nil)
	rect := geometry.Polygon{{X: 10, Y: 20}, {X: 10, Y: 59}, {X: 109, Y: 59}, {X: 109, Y: 20}}

	obj := c.Describe(rect)
	test.That(t, obj.ID, test.ShouldEqual, 0)
	test.That(t, obj.Box, test.ShouldResemble, geometry.Box{X: 10, Y: 20, Width: 100, Height: 40})
	test.That(t, obj.Area, test.ShouldEqual, 99.0*39.0)
	test.That(t, obj.CornerCount, test.ShouldEqual, 4)
	test.That(t, obj.Label, test.ShouldEqual, Rectangle)
	test.That(t, obj.Boundary, test.ShouldResemble, rect)
}
