package detection

import (
	"go.uber.org/zap"

	"github.com/ironsheep/shape-census/internal/config"
	"github.com/ironsheep/shape-census/internal/geometry"
)

// Detector runs the two-pass region census on a binary mask.
// It holds only configuration and is safe for concurrent use on different
// masks.
type Detector struct {
	cfg        config.Config
	geometry   Geometry
	classifier *Classifier
	logger     *zap.SugaredLogger
}

// Option customizes a Detector.
type Option func(*Detector)

// WithGeometry substitutes the polygon primitives.
func WithGeometry(g Geometry) Option {
	return func(d *Detector) { d.geometry = g }
}

// WithLogger sets the logger used for per-pass debug output.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(d *Detector) { d.logger = logger }
}

// NewDetector creates a detector for the given configuration.
func NewDetector(cfg config.Config, opts ...Option) *Detector {
	d := &Detector{
		cfg:      cfg,
		geometry: geometry.Primitives{},
		logger:   zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.classifier = NewClassifier(cfg, d.geometry)
	return d
}

// Classifier returns the classifier the detector labels objects with.
func (d *Detector) Classifier() *Classifier { return d.classifier }

// Detect finds and classifies the objects in mask.
//
// The mask is modified in place by the refinement pass; clone it first if
// the caller still needs it.
//
// # Algorithm
//
//  1. Pass 1: extract every border and keep those inside the size bounds.
//  2. Refine: erase the pass-1 regions from the mask, blur it, and extract
//     and size-filter again.
//  3. Classify each pass-2 region and number it from 1 in discovery order.
//
// Pass 1 only decides what to erase; the objects come from pass 2.
//
// Returns objects in discovery order. Use Aggregate to sort and tally them.
func (d *Detector) Detect(mask *geometry.Mask) []Object {
	raw := d.ExtractRegions(mask)
	accepted := d.SizeFilter(mask.Area())(raw)
	d.logger.Debugw("pass 1 complete", "regions", len(raw), "accepted", len(accepted))

	stable := d.Refine(mask, accepted)
	d.logger.Debugw("pass 2 complete", "accepted", len(stable))

	objects := make([]Object, 0, len(stable))
	for i, region := range stable {
		obj := d.classifier.Describe(region)
		obj.ID = i + 1
		d.logger.Debugw("classified object",
			"id", obj.ID,
			"area", obj.Area,
			"corners", obj.CornerCount,
			"label", obj.Label,
		)
		objects = append(objects, obj)
	}
	return objects
}

// Census runs Detect and aggregates the result under the given name.
func (d *Detector) Census(name string, mask *geometry.Mask) Report {
	return Aggregate(name, d.Detect(mask))
}
