// Package detection implements the two-pass shape census over a binary mask.
//
// The package finds the objects in a thresholded photograph, classifies each
// one as a triangle, square, rectangle, pentagon, hexagon, circle or
// undefined shape, and summarizes the result per image.
//
// # Pipeline
//
// Detector.Detect runs the stages in order, each consuming the complete
// output of the previous one:
//
//  1. ExtractRegions: every outer and hole border of the set pixels
//  2. SizeFilter: keep borders whose area is above ObjectLowBoundSize and
//     below ObjectUppBoundScreenSize of the mask area
//  3. Refine: erase the accepted borders (outline and interior), blur the
//     mask, then extract and size-filter again
//  4. Classifier: corner count with a convex hull cross-check, then aspect
//     ratio and circle-fit tests
//
// Aggregate then sorts the objects by area and produces a Report.
//
// # Mask Polarity
//
// Adaptive thresholding leaves open background set and dark objects unset.
// The first pass therefore sees each object as a hole in the background;
// erasing and blurring merges fragmented outlines so the second pass yields
// one hole border per object.
//
// # Determinism
//
// Nothing in the pipeline is random and no state is shared between calls.
// Running Detect twice on identical masks produces identical objects, and
// different masks can be processed concurrently with one Detector.
//
// # Limitations
//
//   - Classification relies on corner counts, so strongly rotated or
//     perspective-distorted rectangles still classify by their aspect ratio
//     only through the axis-aligned bounding box
//   - Circles smaller than roughly 23 pixels in radius simplify to four
//     corners and are reported as squares
//   - Objects lighter than their background are consumed by the first pass
package detection
