package imaging

import (
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/ironsheep/shape-census/internal/config"
	"github.com/ironsheep/shape-census/internal/geometry"
)

// Preprocessed holds the two outputs of Preprocess.
type Preprocessed struct {
	// Canvas is the scaled and bordered color image. Mask coordinates index
	// into it directly, so it is the natural surface for annotation.
	Canvas *image.NRGBA

	// Mask is the adaptive-threshold result: light background set, dark
	// objects unset.
	Mask *geometry.Mask
}

// Preprocess turns a photograph into the binary mask the census runs on.
//
// # Stages
//
//  1. Scale so the longest side equals TargetImageSize (Lanczos)
//  2. Add a BorderSize frame that replicates the outermost pixels
//  3. Denoise with a median filter of radius DenoiseStrength/10
//  4. Sharpen with a 3x3 unsharp kernel
//  5. Convert to grayscale
//  6. Gaussian blur spanning BlurKernel pixels
//  7. Adaptive threshold with AdaptiveBlockSize and AdaptiveC
//
// The input image is never modified.
func Preprocess(img image.Image, cfg config.Config) (*Preprocessed, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, errors.New("image has no pixels")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid preprocessing parameters")
	}

	canvas := AddBorder(ScaleToFit(img, cfg.TargetImageSize), cfg.BorderSize)

	denoised := effect.Median(canvas, cfg.DenoiseStrength/10)
	sharpened := effect.Sharpen(denoised)
	gray := effect.Grayscale(sharpened)
	smoothed := toGray(blur.Gaussian(gray, kernelRadius(cfg.BlurKernel)))

	return &Preprocessed{
		Canvas: canvas,
		Mask:   AdaptiveThreshold(smoothed, cfg.AdaptiveBlockSize, cfg.AdaptiveC),
	}, nil
}

// ScaleToFit resizes img so its longest side equals size, keeping the aspect
// ratio. An image already at that size is copied unchanged.
func ScaleToFit(img image.Image, size int) *image.NRGBA {
	b := img.Bounds()
	if size <= 0 || max(b.Dx(), b.Dy()) == size {
		return imaging.Clone(img)
	}
	if b.Dx() >= b.Dy() {
		return imaging.Resize(img, size, 0, imaging.Lanczos)
	}
	return imaging.Resize(img, 0, size, imaging.Lanczos)
}

// AddBorder surrounds img with a frame of the given width. Frame pixels copy
// the nearest edge pixel so the border adds no new contrast.
func AddBorder(img *image.NRGBA, width int) *image.NRGBA {
	if width <= 0 {
		return imaging.Clone(img)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w+2*width, h+2*width))

	for y := 0; y < out.Rect.Dy(); y++ {
		sy := clamp(y-width, 0, h-1)
		for x := 0; x < out.Rect.Dx(); x++ {
			sx := clamp(x-width, 0, w-1)
			si := img.PixOffset(b.Min.X+sx, b.Min.Y+sy)
			di := out.PixOffset(x, y)
			copy(out.Pix[di:di+4], img.Pix[si:si+4])
		}
	}
	return out
}

// AdaptiveThreshold marks a pixel set when it is brighter than the Gaussian
// weighted mean of its blockSize neighborhood minus c.
//
// The neighborhood weights use sigma = 0.3*((blockSize-1)/2 - 1) + 0.8, the
// conventional sigma for a Gaussian kernel of that size.
func AdaptiveThreshold(gray *image.Gray, blockSize int, c float64) *geometry.Mask {
	b := gray.Bounds()
	mean := imaging.Blur(gray, blockSigma(blockSize))
	mask := geometry.NewMask(b.Dx(), b.Dy())

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			v := float64(gray.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
			m := float64(mean.Pix[mean.PixOffset(x, y)])
			if v > m-c {
				mask.Set(x, y, true)
			}
		}
	}
	return mask
}

func blockSigma(blockSize int) float64 {
	return 0.3*(float64(blockSize-1)*0.5-1) + 0.8
}

// kernelRadius converts an odd kernel size to the blur radius it spans.
func kernelRadius(kernel int) float64 {
	return float64(kernel-1) / 2
}

func toGray(img image.Image) *image.Gray {
	g := image.NewGray(img.Bounds())
	draw.Draw(g, g.Bounds(), img, img.Bounds().Min, draw.Src)
	return g
}

// clamp constrains an integer value to the range [lo, hi].
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
