package detection

import (
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/blur"
	"github.com/fogleman/gg"

	"github.com/ironsheep/shape-census/internal/geometry"
)

// RegionFilter keeps a subset of regions. Filters never reorder.
type RegionFilter func([]geometry.Polygon) []geometry.Polygon

// NewAreaFilter returns a filter that keeps regions whose area lies strictly
// between low and high.
func NewAreaFilter(area func(geometry.Polygon) float64, low, high float64) RegionFilter {
	return func(regions []geometry.Polygon) []geometry.Polygon {
		out := make([]geometry.Polygon, 0, len(regions))
		for _, r := range regions {
			a := area(r)
			if a > low && a < high {
				out = append(out, r)
			}
		}
		return out
	}
}

// ExtractRegions returns every outer and nested border in the mask. The mask
// is not modified.
func (d *Detector) ExtractRegions(mask *geometry.Mask) []geometry.Polygon {
	return d.geometry.FindRegions(mask)
}

// SizeFilter returns the area filter for a mask of maskArea pixels: above
// ObjectLowBoundSize and below ObjectUppBoundScreenSize times maskArea.
func (d *Detector) SizeFilter(maskArea int) RegionFilter {
	return NewAreaFilter(d.geometry.Area, d.cfg.ObjectLowBoundSize, d.cfg.UpperBound(maskArea))
}

// Refine erases the accepted regions from the mask, smooths it, and returns
// the regions found on the refined mask that pass the size filter.
//
// The mask is modified in place:
//
//  1. Each region's boundary is stroked in the unset color with the
//     configured erase thickness.
//  2. Each region's interior is filled with the unset color.
//  3. The mask is blurred with the refine kernel and re-binarized so that
//     every nonzero pixel is set.
func (d *Detector) Refine(mask *geometry.Mask, accepted []geometry.Polygon) []geometry.Polygon {
	erased := eraseRegions(mask, accepted, d.cfg.EraseThickness)
	smoothed := blur.Gaussian(erased, kernelRadius(d.cfg.RefineBlurKernel))
	mask.Replace(toGray(smoothed))

	return d.SizeFilter(mask.Area())(d.ExtractRegions(mask))
}

// eraseRegions paints the regions onto an RGBA copy of the mask in black.
// Points sit at pixel centers so a stroke covers the boundary pixels.
func eraseRegions(mask *geometry.Mask, regions []geometry.Polygon, thickness float64) *image.RGBA {
	src := mask.Gray()
	canvas := image.NewRGBA(src.Bounds())
	draw.Draw(canvas, canvas.Bounds(), src, src.Bounds().Min, draw.Src)

	dc := gg.NewContextForRGBA(canvas)
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(thickness)
	for _, r := range regions {
		if len(r) < 2 {
			continue
		}
		dc.NewSubPath()
		for _, p := range r {
			dc.LineTo(float64(p.X)+0.5, float64(p.Y)+0.5)
		}
		dc.ClosePath()
		dc.StrokePreserve()
		dc.Fill()
	}
	return canvas
}

func toGray(img image.Image) *image.Gray {
	g := image.NewGray(img.Bounds())
	draw.Draw(g, g.Bounds(), img, img.Bounds().Min, draw.Src)
	return g
}

// kernelRadius converts an odd kernel size to the blur radius it spans.
func kernelRadius(kernel int) float64 {
	return float64(kernel-1) / 2
}
