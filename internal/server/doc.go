// Package server exposes the paint editor node over two transports.
//
// # Host Protocol
//
// The host drives the node over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - paint_editor_list_inputs: List selectable input images
//   - paint_editor_execute: Edited image, enclosure mask and original image
//   - paint_editor_is_changed: Cache token for the host's re-execution check
//   - paint_editor_save: Store an edited bitmap for a node
//   - paint_editor_mask_preview: Mask tinted over the edited image
//
// # Browser Endpoint
//
// The browser editor posts the edited canvas to the HTTP endpoint:
//
//	POST /paint_editor/save  {"node_id": 12, "image_data": "data:image/png;base64,..."}
//
// It responds {"status":"success"}, 400 with "Missing data" when either
// field is empty, or 500 when the body cannot be read. GET
// /view?filename=<name>&type=input serves the input image the canvas is
// initialized from.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// Edits that cannot be decoded are not tool errors: paint_editor_execute then
// returns the original image with an empty mask.
package server
