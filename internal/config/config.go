// Package config holds the tuning parameters of the shape-census pipeline.
//
// A Config is a plain value passed into each stage; nothing in the module
// reads process-wide thresholds. Default reproduces the reference behavior
// and Load overlays a YAML file on top of it.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the full set of pipeline parameters.
type Config struct {
	// Preprocessing.
	TargetImageSize   int     `yaml:"target_image_size"`
	BorderSize        int     `yaml:"border_size"`
	DenoiseStrength   float64 `yaml:"denoise_strength"`
	BlurKernel        int     `yaml:"blur_kernel"`
	AdaptiveBlockSize int     `yaml:"adaptive_block_size"`
	AdaptiveC         float64 `yaml:"adaptive_c"`

	// Region extraction and refinement.
	ObjectLowBoundSize       float64 `yaml:"object_low_bound_size"`
	ObjectUppBoundScreenSize float64 `yaml:"object_upp_bound_screen_size"`
	RefineBlurKernel         int     `yaml:"refine_blur_kernel"`
	EraseThickness           float64 `yaml:"erase_thickness"`

	// Classification.
	ShapeEpsilon               float64 `yaml:"shape_epsilon"`
	HullEpsilon                float64 `yaml:"hull_epsilon"`
	SquareWidthHeightThreshold float64 `yaml:"square_width_height_threshold"`
	CircleWidthHeightThreshold float64 `yaml:"circle_width_height_threshold"`
	CircleRatioMatchThreshold  float64 `yaml:"circle_ratio_match_threshold"`
}

// Default returns the reference parameters.
func Default() Config {
	return Config{
		TargetImageSize:   540,
		BorderSize:        100,
		DenoiseStrength:   15,
		BlurKernel:        5,
		AdaptiveBlockSize: 201,
		AdaptiveC:         5,

		ObjectLowBoundSize:       800,
		ObjectUppBoundScreenSize: 0.8,
		RefineBlurKernel:         9,
		EraseThickness:           2,

		ShapeEpsilon:               6.7,
		HullEpsilon:                6.5,
		SquareWidthHeightThreshold: 0.15,
		CircleWidthHeightThreshold: 0.15,
		CircleRatioMatchThreshold:  0.15,
	}
}

// Load reads a YAML file and overlays it on Default. Keys missing from the
// file keep their default value. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "failed to parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Validate reports the first parameter that would make the pipeline
// meaningless.
func (c Config) Validate() error {
	switch {
	case c.TargetImageSize <= 0:
		return errors.New("target_image_size must be positive")
	case c.BorderSize < 0:
		return errors.New("border_size must not be negative")
	case c.DenoiseStrength < 0:
		return errors.New("denoise_strength must not be negative")
	case !oddPositive(c.BlurKernel):
		return errors.New("blur_kernel must be a positive odd number")
	case !oddPositive(c.AdaptiveBlockSize) || c.AdaptiveBlockSize < 3:
		return errors.New("adaptive_block_size must be an odd number of at least 3")
	case !oddPositive(c.RefineBlurKernel):
		return errors.New("refine_blur_kernel must be a positive odd number")
	case c.ObjectLowBoundSize < 0:
		return errors.New("object_low_bound_size must not be negative")
	case c.ObjectUppBoundScreenSize <= 0 || c.ObjectUppBoundScreenSize > 1:
		return errors.New("object_upp_bound_screen_size must be in (0, 1]")
	case c.EraseThickness <= 0:
		return errors.New("erase_thickness must be positive")
	case c.ShapeEpsilon <= 0 || c.HullEpsilon <= 0:
		return errors.New("shape_epsilon and hull_epsilon must be positive")
	case !fraction(c.SquareWidthHeightThreshold),
		!fraction(c.CircleWidthHeightThreshold),
		!fraction(c.CircleRatioMatchThreshold):
		return errors.New("shape thresholds must be in (0, 1)")
	}
	return nil
}

// UpperBound is the exclusive maximum region area for a mask of maskArea
// pixels.
func (c Config) UpperBound(maskArea int) float64 {
	return c.ObjectUppBoundScreenSize * float64(maskArea)
}

func oddPositive(n int) bool { return n > 0 && n%2 == 1 }

func fraction(v float64) bool { return v > 0 && v < 1 }
