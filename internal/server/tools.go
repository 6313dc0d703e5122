package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var (
	imageFileProperty = map[string]interface{}{
		"type":        "string",
		"description": "Input image file name as listed by paint_editor_list_inputs. A trailing ' [input]' annotation is accepted",
	}
	nodeIDProperty = map[string]interface{}{
		"type":        []string{"string", "integer"},
		"description": "Node id the edit was saved under",
	}
)

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "paint_editor_list_inputs",
			Description: "List the image files in the input directory that can be opened in the paint editor.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "paint_editor_execute",
			Description: "Run the paint editor node: returns the edited image, the mask of regions enclosed by drawn strokes, and the original image as base64 PNGs. Without a saved edit the original is returned as the edited image with an empty mask.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_file": imageFileProperty,
					"node_id":    nodeIDProperty,
					"include_tensors": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return the outputs as float32 tensors ([1,H,W,3] images, [1,H,W] mask). Default false",
						"default":     false,
					},
				},
				"required": []string{"image_file"},
			},
		},
		{
			Name:        "paint_editor_is_changed",
			Description: "Return a token that changes whenever the node's output would change. Hosts compare it with the previous token to decide whether to re-execute.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_file": imageFileProperty,
					"node_id":    nodeIDProperty,
				},
				"required": []string{"image_file"},
			},
		},
		{
			Name:        "paint_editor_save",
			Description: "Save an edited bitmap for a node, replacing any earlier edit.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"node_id": nodeIDProperty,
					"image_data": map[string]interface{}{
						"type":        "string",
						"description": "Edited canvas as a data URL (data:image/png;base64,...)",
					},
				},
				"required": []string{"node_id", "image_data"},
			},
		},
		{
			Name:        "paint_editor_mask_preview",
			Description: "Render the derived mask tinted over the edited image as a base64 PNG, to check which regions were selected.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_file": imageFileProperty,
					"node_id":    nodeIDProperty,
				},
				"required": []string{"image_file"},
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
