package server

import (
	"encoding/json"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/ironsheep/shape-census/internal/census"
	"github.com/ironsheep/shape-census/internal/detection"
	"github.com/ironsheep/shape-census/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "shape_census").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warnw("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": s.marshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "shape_census":
		return s.handleShapeCensus(args)
	default:
		return nil, errors.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	resp := &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
		},
	}
	if data != "" {
		resp.Error.Data = data
	}
	return resp
}

// marshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it logs a warning and returns an empty string.
func (s *Server) marshalJSON(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		s.logger.Warnw("failed to marshal tool result", "error", err)
		return ""
	}
	return string(b)
}

type imagePathArgs struct {
	Path string `json:"path"`
}

func (a imagePathArgs) validate() error {
	if a.Path == "" {
		return errors.New("path is required")
	}
	return nil
}

func decodeArgs(args json.RawMessage, v interface{ validate() error }) error {
	if len(args) == 0 {
		args = []byte("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return errors.Wrap(err, "invalid arguments")
	}
	return v.validate()
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type shapeCensusArgs struct {
	Path         string  `json:"path"`
	IncludeImage bool    `json:"include_image"`
	Scale        float64 `json:"scale"`
}

func (a shapeCensusArgs) validate() error {
	if a.Path == "" {
		return errors.New("path is required")
	}
	if a.Scale < 0 {
		return errors.Errorf("scale must not be negative, got %v", a.Scale)
	}
	return nil
}

// CensusResult is the shape_census tool result.
type CensusResult struct {
	detection.Report

	// Summary is the plain-text report.
	Summary string `json:"summary"`

	// Annotated is present when include_image was requested.
	Annotated *census.EncodedImage `json:"annotated,omitempty"`
}

func (s *Server) handleShapeCensus(args json.RawMessage) (interface{}, error) {
	var a shapeCensusArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	res, err := s.analyzer.AnalyzeImage(filepath.Base(a.Path), img)
	if err != nil {
		return nil, err
	}

	out := &CensusResult{
		Report:  res.Report,
		Summary: res.Report.Text(),
	}
	if a.IncludeImage {
		out.Annotated, err = census.EncodePNG(res.Annotated, a.Scale)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
