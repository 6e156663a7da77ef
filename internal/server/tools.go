package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "label_reconstruct",
			Description: "Reconstruct the text lines of a label from an OCR annotation file. Returns the selected layout, the section header and the \"<header> - <value>\" lines, or the surviving candidates when the line count does not match.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Path to the JSON annotation file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "label_extract",
			Description: "Extract one label by identifier: writes <identifier>.extract.txt and one reference crop per line to the output directory.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"identifier": map[string]interface{}{
						"type":        "string",
						"description": "Label identifier, the annotation file name without extension",
					},
				},
				"required": []string{"identifier"},
			},
		},
		{
			Name:        "label_discover",
			Description: "List the label identifiers a batch run would process, along with skipped identifiers and unreadable entries.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
