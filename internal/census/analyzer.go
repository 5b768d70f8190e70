package census

import (
	"image"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ironsheep/shape-census/internal/config"
	"github.com/ironsheep/shape-census/internal/detection"
	"github.com/ironsheep/shape-census/internal/imaging"
)

// Result is everything one census run produces.
type Result struct {
	Report detection.Report

	// Canvas is the scaled, bordered photograph the mask was built from.
	// Object boxes are in its coordinates.
	Canvas *image.NRGBA

	// Annotated is Canvas with the objects drawn on it.
	Annotated *image.RGBA
}

// Analyzer runs the census on photographs. It is safe for concurrent use.
type Analyzer struct {
	cfg      config.Config
	logger   *zap.SugaredLogger
	detector *detection.Detector
}

// NewAnalyzer creates an analyzer for cfg. A nil logger discards output.
func NewAnalyzer(cfg config.Config, logger *zap.SugaredLogger) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid census config")
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Analyzer{
		cfg:      cfg,
		logger:   logger,
		detector: detection.NewDetector(cfg, detection.WithLogger(logger.Named("detector"))),
	}, nil
}

// AnalyzeFile loads the image at path and analyzes it under its file name.
// A file that cannot be read or decoded yields an *imaging.LoadError.
func (a *Analyzer) AnalyzeFile(path string) (*Result, error) {
	img, err := imaging.LoadImage(path)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeImage(filepath.Base(path), img)
}

// AnalyzeImage runs preprocessing, detection, aggregation and annotation on
// an already decoded image. img is not modified.
func (a *Analyzer) AnalyzeImage(name string, img image.Image) (*Result, error) {
	start := time.Now()

	pre, err := imaging.Preprocess(img, a.cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to preprocess %s", name)
	}
	a.logger.Debugw("preprocessed",
		"name", name,
		"width", pre.Mask.Width(),
		"height", pre.Mask.Height(),
		"set_pixels", pre.Mask.Count(),
	)

	report := a.detector.Census(name, pre.Mask)
	a.logger.Infow("census complete",
		"name", name,
		"objects", report.Total,
		"elapsed", time.Since(start),
	)

	return &Result{
		Report:    report,
		Canvas:    pre.Canvas,
		Annotated: Annotate(pre.Canvas, report.Objects),
	}, nil
}
