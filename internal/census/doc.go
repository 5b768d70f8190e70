// Package census runs the complete shape census for one photograph.
//
// An Analyzer loads an image, preprocesses it into a binary mask, runs the
// two-pass detector and returns the report together with an annotated copy
// of the scaled image. Annotate draws each object's bounding box, id and
// label; EncodePNG turns any result image into base64 PNG for transport.
package census
