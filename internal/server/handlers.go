package server

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ironsheep/label-extract/internal/annotation"
	"github.com/ironsheep/label-extract/internal/batch"
	"github.com/ironsheep/label-extract/internal/extract"
	"github.com/ironsheep/label-extract/internal/reconstruct"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "label_extract").
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
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.log.Warn("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "label_reconstruct":
		return s.handleLabelReconstruct(args)
	case "label_extract":
		return s.handleLabelExtract(ctx, args)
	case "label_discover":
		return s.handleLabelDiscover()
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// ReconstructResult reports one reconstruction.
type ReconstructResult struct {
	Profile         string   `json:"profile"`
	Conclusive      bool     `json:"conclusive"`
	FallbackApplied bool     `json:"fallback_applied"`
	Header          string   `json:"header,omitempty"`
	Lines           []string `json:"lines"`
	// Candidates are the surviving fragments in display format.
	Candidates []string `json:"candidates"`
}

func newReconstructResult(res *reconstruct.Result) *ReconstructResult {
	out := &ReconstructResult{
		Profile:         res.Profile.Name,
		Conclusive:      res.Conclusive,
		FallbackApplied: res.FallbackApplied,
		Lines:           []string{},
		Candidates:      make([]string, len(res.Candidates)),
	}
	for i, c := range res.Candidates {
		out.Candidates[i] = c.String()
	}
	if res.Conclusive {
		out.Header = res.Header.Description
		out.Lines = res.Lines()
	}
	return out
}

type labelReconstructArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleLabelReconstruct(args json.RawMessage) (interface{}, error) {
	var a labelReconstructArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	f, err := os.Open(a.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open annotations: %w", err)
	}
	defer f.Close()

	doc, err := annotation.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", a.Path, err)
	}

	res, err := s.opts.Extractor.Engine.Reconstruct(doc.TextAnnotations)
	if err != nil {
		return nil, err
	}
	return newReconstructResult(res), nil
}

// ExtractResult reports one label_extract call.
type ExtractResult struct {
	Identifier string   `json:"identifier"`
	Transcript string   `json:"transcript"`
	Lines      []string `json:"lines"`
	Crops      []string `json:"crops"`
}

type labelExtractArgs struct {
	Identifier string `json:"identifier"`
}

func (s *Server) handleLabelExtract(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a labelExtractArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Identifier == "" || filepath.Base(a.Identifier) != a.Identifier {
		return nil, fmt.Errorf("invalid identifier %q", a.Identifier)
	}

	x := s.opts.Extractor
	out := extract.TranscriptPath(s.opts.OutputDir, a.Identifier)
	res, err := x.Extract(ctx, a.Identifier, out)
	if err != nil {
		return nil, err
	}

	crops := make([]string, len(res.Values))
	for i := range res.Values {
		crops[i] = x.CropPath(a.Identifier, i)
	}
	return &ExtractResult{
		Identifier: a.Identifier,
		Transcript: out,
		Lines:      res.Lines(),
		Crops:      crops,
	}, nil
}

// DiscoverResult reports what a batch run would process.
type DiscoverResult struct {
	Identifiers []string `json:"identifiers"`
	Skipped     []string `json:"skipped"`
	Errors      []string `json:"errors"`
}

func (s *Server) handleLabelDiscover() (interface{}, error) {
	out := &DiscoverResult{Identifiers: []string{}, Skipped: []string{}, Errors: []string{}}

	ids := batch.Discover(s.opts.Root, func(err error) {
		out.Errors = append(out.Errors, err.Error())
	})

	skip := make(map[string]bool, len(s.opts.Skip))
	for _, id := range s.opts.Skip {
		skip[id] = true
	}
	for _, id := range ids {
		if skip[id] {
			out.Skipped = append(out.Skipped, id)
			continue
		}
		out.Identifiers = append(out.Identifiers, id)
	}
	return out, nil
}
