package server

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NodeID is a node identifier. The browser editor sends it as a JSON number
// or string; both decode to the same decimal string.
type NodeID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *NodeID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = NodeID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("node_id must be a string or number: %w", err)
	}
	*id = NodeID(n.String())
	return nil
}
