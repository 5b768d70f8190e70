package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/shape-census/internal/config"
)

// smallConfig keeps the filters small so tests run quickly.
func smallConfig() config.Config {
	cfg := config.Default()
	cfg.TargetImageSize = 200
	cfg.BorderSize = 20
	cfg.DenoiseStrength = 10
	cfg.BlurKernel = 3
	cfg.AdaptiveBlockSize = 101
	return cfg
}

// sceneWithSquare is a light field with one dark square centered in it.
func sceneWithSquare(size, side int) *image.RGBA {
	img := solidImage(size, size, color.RGBA{200, 200, 200, 255})
	lo := (size - side) / 2
	for y := lo; y < lo+side; y++ {
		for x := lo; x < lo+side; x++ {
			img.Set(x, y, color.RGBA{40, 40, 40, 255})
		}
	}
	return img
}

func TestPreprocess(t *testing.T) {
	cfg := smallConfig()
	out, err := Preprocess(sceneWithSquare(200, 60), cfg)
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}

	want := 200 + 2*cfg.BorderSize
	if out.Canvas.Bounds().Dx() != want || out.Canvas.Bounds().Dy() != want {
		t.Errorf("canvas: got %dx%d, want %dx%d", out.Canvas.Bounds().Dx(), out.Canvas.Bounds().Dy(), want, want)
	}
	if out.Mask.Width() != want || out.Mask.Height() != want {
		t.Errorf("mask: got %dx%d, want %dx%d", out.Mask.Width(), out.Mask.Height(), want, want)
	}

	center := cfg.BorderSize + 100
	if out.Mask.At(center, center) {
		t.Error("dark object center should be unset")
	}
	if !out.Mask.At(2, 2) {
		t.Error("border pixel should be set")
	}
	if !out.Mask.At(cfg.BorderSize+10, cfg.BorderSize+10) {
		t.Error("light background should be set")
	}
}

func TestPreprocess_ScalesLongestSide(t *testing.T) {
	cfg := smallConfig()
	cfg.BorderSize = 0

	out, err := Preprocess(solidImage(400, 100, color.White), cfg)
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	if out.Mask.Width() != 200 || out.Mask.Height() != 50 {
		t.Errorf("mask: got %dx%d, want 200x50", out.Mask.Width(), out.Mask.Height())
	}
}

func TestPreprocess_Errors(t *testing.T) {
	if _, err := Preprocess(image.NewRGBA(image.Rect(0, 0, 0, 0)), smallConfig()); err == nil {
		t.Error("Preprocess should fail on an empty image")
	}

	cfg := smallConfig()
	cfg.BlurKernel = 4
	if _, err := Preprocess(solidImage(10, 10, color.White), cfg); err == nil {
		t.Error("Preprocess should fail on an even blur kernel")
	}
}

func TestScaleToFit(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		size          int
		wantW, wantH  int
	}{
		{"landscape", 300, 150, 100, 100, 50},
		{"portrait", 150, 300, 100, 50, 100},
		{"upscale", 50, 50, 100, 100, 100},
		{"already sized", 100, 40, 100, 100, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScaleToFit(solidImage(tt.width, tt.height, color.White), tt.size)
			if got.Bounds().Dx() != tt.wantW || got.Bounds().Dy() != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", got.Bounds().Dx(), got.Bounds().Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestAddBorder_ReplicatesEdges(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	src.Set(1, 0, color.NRGBA{0, 255, 0, 255})
	src.Set(0, 1, color.NRGBA{0, 0, 255, 255})
	src.Set(1, 1, color.NRGBA{255, 255, 255, 255})

	out := AddBorder(src, 3)
	if out.Bounds().Dx() != 8 || out.Bounds().Dy() != 8 {
		t.Fatalf("got %dx%d, want 8x8", out.Bounds().Dx(), out.Bounds().Dy())
	}

	tests := []struct {
		x, y int
		want color.NRGBA
	}{
		{0, 0, color.NRGBA{255, 0, 0, 255}},
		{7, 0, color.NRGBA{0, 255, 0, 255}},
		{0, 7, color.NRGBA{0, 0, 255, 255}},
		{7, 7, color.NRGBA{255, 255, 255, 255}},
		{3, 3, color.NRGBA{255, 0, 0, 255}},
		{4, 1, color.NRGBA{0, 255, 0, 255}},
	}
	for _, tt := range tests {
		if got := out.NRGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d): got %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}

	if same := AddBorder(src, 0); same.Bounds() != src.Bounds() {
		t.Errorf("zero border changed bounds to %v", same.Bounds())
	}
}

func TestAdaptiveThreshold(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 120, 120))
	for i := range gray.Pix {
		gray.Pix[i] = 200
	}
	for y := 45; y < 75; y++ {
		for x := 45; x < 75; x++ {
			gray.SetGray(x, y, color.Gray{Y: 30})
		}
	}

	mask := AdaptiveThreshold(gray, 51, 5)
	if mask.At(60, 60) {
		t.Error("dark square center should be unset")
	}
	if !mask.At(10, 10) {
		t.Error("uniform background should be set")
	}
	if !mask.At(40, 60) {
		t.Error("light pixel next to the square should be set")
	}
}

func TestAdaptiveThreshold_UniformImage(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 30, 20))
	for i := range gray.Pix {
		gray.Pix[i] = 90
	}

	mask := AdaptiveThreshold(gray, 11, 5)
	if mask.Count() != 30*20 {
		t.Errorf("uniform image should be fully set, got %d of %d", mask.Count(), 30*20)
	}

	mask = AdaptiveThreshold(gray, 11, -5)
	if mask.Count() != 0 {
		t.Errorf("negative offset on a uniform image should set nothing, got %d", mask.Count())
	}
}

func TestBlockSigma(t *testing.T) {
	if got := blockSigma(201); got < 30.49 || got > 30.51 {
		t.Errorf("blockSigma(201) = %v, want 30.5", got)
	}
	if got := blockSigma(3); got < 0.79 || got > 0.81 {
		t.Errorf("blockSigma(3) = %v, want 0.8", got)
	}
}
