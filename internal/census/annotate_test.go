package census

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"go.viam.com/test"

	"github.com/ironsheep/shape-census/internal/detection"
	"github.com/ironsheep/shape-census/internal/geometry"
)

var white = color.NRGBA{255, 255, 255, 255}

func isWhite(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff
}

func TestAnnotate(t *testing.T) {
	canvas := imaging.New(100, 100, white)
	objects := []detection.Object{{
		ID:    1,
		Box:   geometry.Box{X: 20, Y: 30, Width: 40, Height: 40},
		Label: detection.Square,
	}}

	out := Annotate(canvas, objects)
	test.That(t, out.Bounds(), test.ShouldResemble, image.Rect(0, 0, 100, 100))

	test.That(t, isWhite(out.At(20, 50)), test.ShouldBeFalse)
	test.That(t, isWhite(out.At(60, 50)), test.ShouldBeFalse)
	test.That(t, isWhite(out.At(40, 50)), test.ShouldBeTrue)
	test.That(t, isWhite(out.At(90, 90)), test.ShouldBeTrue)

	// The source canvas is untouched.
	test.That(t, isWhite(canvas.At(20, 50)), test.ShouldBeTrue)
}

func TestAnnotate_NoObjects(t *testing.T) {
	canvas := imaging.New(10, 10, white)
	out := Annotate(canvas, nil)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			test.That(t, isWhite(out.At(x, y)), test.ShouldBeTrue)
		}
	}
}

func TestLabelColor(t *testing.T) {
	seen := map[color.RGBA]detection.ShapeLabel{}
	for _, l := range detection.Labels {
		r, g, b, a := LabelColor(l).RGBA()
		c := color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
		_, dup := seen[c]
		test.That(t, dup, test.ShouldBeFalse)
		seen[c] = l
	}
	test.That(t, LabelColor("star"), test.ShouldResemble, LabelColor(detection.Undefined))
}

func TestSaveAnnotated(t *testing.T) {
	dir := t.TempDir()
	img := Annotate(imaging.New(20, 20, white), nil)

	path := filepath.Join(dir, "out.png")
	test.That(t, SaveAnnotated(path, img), test.ShouldBeNil)
	_, err := os.Stat(path)
	test.That(t, err, test.ShouldBeNil)

	err = SaveAnnotated(filepath.Join(dir, "out.xyz"), img)
	test.That(t, err, test.ShouldNotBeNil)
}
