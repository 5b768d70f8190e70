// Package server implements the MCP (Model Context Protocol) server for the
// shape census.
//
// The server speaks JSON-RPC 2.0 over stdio, one request per line on stdin
// and one response per line on stdout. Logs go to stderr.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_load: Load an image and report its metadata
//   - image_dimensions: Width and height of an image
//   - shape_census: Count and classify the objects in a photograph,
//     optionally returning the annotated image as base64 PNG
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the server, so a
// shape_census call after image_load does not decode the file again.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
package server
