package census

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ironsheep/shape-census/internal/detection"
)

const (
	boxLineWidth  = 2
	labelFontSize = 12
	// labelOffset places the label to the right of the id above the box.
	labelOffset = 30
	textLift    = 5
)

var labelFont *truetype.Font

func init() {
	var err error
	labelFont, err = truetype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
}

// labelColors gives every shape label its own hue at equal lightness and
// chroma so boxes stay readable on any background.
var labelColors = func() map[detection.ShapeLabel]color.Color {
	colors := make(map[detection.ShapeLabel]color.Color, len(detection.Labels))
	step := 360.0 / float64(len(detection.Labels))
	for i, l := range detection.Labels {
		colors[l] = colorful.Hcl(float64(i)*step, 0.7, 0.55).Clamped()
	}
	return colors
}()

// LabelColor returns the drawing color for a label. Unknown labels use the
// Undefined color.
func LabelColor(l detection.ShapeLabel) color.Color {
	if c, ok := labelColors[l]; ok {
		return c
	}
	return labelColors[detection.Undefined]
}

// Annotate returns a copy of canvas with each object's bounding box, id and
// display name drawn on it. The id sits just above the box's top-left corner
// and the name follows it to the right.
func Annotate(canvas image.Image, objects []detection.Object) *image.RGBA {
	b := canvas.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), canvas, b.Min, draw.Src)

	dc := gg.NewContextForRGBA(out)
	dc.SetFontFace(truetype.NewFace(labelFont, &truetype.Options{Size: labelFontSize}))
	dc.SetLineWidth(boxLineWidth)

	for _, o := range objects {
		c := LabelColor(o.Label)
		dc.SetColor(c)

		x, y := float64(o.Box.X), float64(o.Box.Y)
		dc.DrawRectangle(x, y, float64(o.Box.Width), float64(o.Box.Height))
		dc.Stroke()

		dc.DrawString(strconv.Itoa(o.ID), x, y-textLift)
		dc.DrawString(o.Label.DisplayName(), x+labelOffset, y-textLift)
	}
	return out
}

// SaveAnnotated writes img to path. The format follows the file extension.
func SaveAnnotated(path string, img image.Image) error {
	if err := imaging.Save(img, path); err != nil {
		return errors.Wrapf(err, "failed to save annotated image %s", path)
	}
	return nil
}
