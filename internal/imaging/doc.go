// Package imaging loads photographs and turns them into binary masks.
//
// Loading goes through LoadImage, which applies EXIF orientation and reports
// failures as *LoadError. ImageCache keeps decoded images keyed by path for
// long-running processes such as the MCP server.
//
// Preprocess is the front half of the census pipeline: scale, border,
// denoise, sharpen, grayscale, blur and adaptive threshold. Its output mask
// has the open background set and dark objects unset.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. After Preprocess every
// coordinate refers to the scaled, bordered canvas, not the source file.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Preprocess never modifies its input
// and can run concurrently on different images.
package imaging
