package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ironsheep/paint-editor-node/internal/imaging"
)

// maxPayloadBytes bounds a single request line or HTTP body.
const maxPayloadBytes = 64 << 20

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "paint_editor_execute").
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
		s.log.Warn().Err(err).Str("tool", params.Name).Msg("tool execution failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return s.toolResponse(req.ID, params.Name, result)
}

// toolResponse wraps a tool result in MCP's text content. A result that
// cannot be encoded (for example a tensor holding NaN) becomes an internal
// error rather than empty content.
func (s *Server) toolResponse(id interface{}, tool string, result interface{}) *MCPResponse {
	text, err := marshalJSON(result)
	if err != nil {
		s.log.Error().Err(err).Str("tool", tool).Msg("failed to encode tool result")
		return s.errorResponse(id, -32603, "Internal error", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": text,
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "paint_editor_list_inputs":
		return s.handleListInputs()
	case "paint_editor_execute":
		return s.handleExecute(ctx, args)
	case "paint_editor_is_changed":
		return s.handleIsChanged(ctx, args)
	case "paint_editor_save":
		return s.handleSaveTool(ctx, args)
	case "paint_editor_mask_preview":
		return s.handleMaskPreview(ctx, args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
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

// marshalJSON converts a value to a pretty-printed JSON string.
func marshalJSON(v interface{}) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(b), nil
}

// unmarshalArgs decodes tool arguments; absent arguments decode as empty.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// ListInputsResult lists the selectable input images.
type ListInputsResult struct {
	Files []string `json:"files"`
}

func (s *Server) handleListInputs() (interface{}, error) {
	files, err := s.node.Inputs()
	if err != nil {
		return nil, err
	}
	return &ListInputsResult{Files: files}, nil
}

type executeArgs struct {
	ImageFile      string `json:"image_file"`
	NodeID         NodeID `json:"node_id"`
	IncludeTensors bool   `json:"include_tensors"`
}

// ExecuteResult contains the node's three outputs.
type ExecuteResult struct {
	EditedImage    *imaging.EncodedImage `json:"edited_image"`
	DrawnMask      *imaging.EncodedImage `json:"drawn_mask"`
	OriginalImage  *imaging.EncodedImage `json:"original_image"`
	HasEdit        bool                  `json:"has_edit"`
	EnclosedPixels int                   `json:"enclosed_pixels"`

	// Tensors holds the outputs in the host layout when requested.
	Tensors *ExecuteTensors `json:"tensors,omitempty"`
}

// ExecuteTensors holds the node outputs as host tensors.
type ExecuteTensors struct {
	EditedImage   *imaging.Tensor `json:"edited_image"`
	DrawnMask     *imaging.Tensor `json:"drawn_mask"`
	OriginalImage *imaging.Tensor `json:"original_image"`
}

func (s *Server) handleExecute(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a executeArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.ImageFile == "" {
		return nil, fmt.Errorf("image_file is required")
	}

	res, err := s.node.Execute(ctx, a.ImageFile, string(a.NodeID))
	if err != nil {
		return nil, err
	}

	out := &ExecuteResult{
		HasEdit:        res.HasEdit,
		EnclosedPixels: res.Mask.Count(),
	}
	if out.EditedImage, err = imaging.EncodePNG(res.Edited); err != nil {
		return nil, err
	}
	if out.DrawnMask, err = imaging.EncodePNG(res.Mask.Gray()); err != nil {
		return nil, err
	}
	if out.OriginalImage, err = imaging.EncodePNG(res.Original); err != nil {
		return nil, err
	}

	if a.IncludeTensors {
		edited, enclosed, original := res.Tensors()
		out.Tensors = &ExecuteTensors{
			EditedImage:   edited,
			DrawnMask:     enclosed,
			OriginalImage: original,
		}
	}
	return out, nil
}

type isChangedArgs struct {
	ImageFile string `json:"image_file"`
	NodeID    NodeID `json:"node_id"`
}

func (s *Server) handleIsChanged(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a isChangedArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return map[string]string{
		"token": s.node.IsChanged(ctx, a.ImageFile, string(a.NodeID)),
	}, nil
}

type saveArgs struct {
	NodeID    NodeID `json:"node_id"`
	ImageData string `json:"image_data"`
}

func (s *Server) handleSaveTool(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a saveArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if err := s.node.Save(ctx, string(a.NodeID), a.ImageData); err != nil {
		return nil, err
	}
	return map[string]string{"status": "success"}, nil
}

// MaskPreviewResult contains the mask tinted over the edited image.
type MaskPreviewResult struct {
	*imaging.EncodedImage
	EnclosedPixels int `json:"enclosed_pixels"`
}

func (s *Server) handleMaskPreview(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a executeArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.ImageFile == "" {
		return nil, fmt.Errorf("image_file is required")
	}

	overlay, res, err := s.node.Preview(ctx, a.ImageFile, string(a.NodeID))
	if err != nil {
		return nil, err
	}
	enc, err := imaging.EncodePNG(overlay)
	if err != nil {
		return nil, err
	}
	return &MaskPreviewResult{EncodedImage: enc, EnclosedPixels: res.Mask.Count()}, nil
}
