// Package geometry provides the binary-mask and polygon primitives the shape
// census is built on.
//
// # Masks
//
// A Mask is a two-valued pixel grid backed by an *image.Gray. Any nonzero
// pixel is set; zero is unset. Pixels outside the grid read as unset, so a
// region touching the edge still has a closed border.
//
// # Contours
//
// FindContours implements Suzuki–Abe border following over the whole mask and
// returns every outer and hole border together with its nesting hierarchy.
// Borders are chain-compressed: interior points of straight horizontal,
// vertical and diagonal runs are dropped, leaving only the turning points.
//
// # Polygons
//
// Polygons are closed rings of integer points. Simplify runs a closed
// Douglas–Peucker reduction, ConvexHull a monotone-chain hull, Area the
// shoelace formula and Bounds an inclusive pixel bounding box.
//
// # Coordinate System
//
// All coordinates follow the image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
package geometry
