package workspace

import (
	"encoding/json"
	"fmt"
)

// Hydrate loads a workspace from a serialized file set. Both interchange
// shapes are accepted: the flat {"path": "content"} object and the explicit
// [{"path":..., "content":..., "type":...}] record list. Output always goes
// back out through FileMap regardless of which shape came in.
func Hydrate(data []byte) (*Workspace, error) {
	var records []File
	if err := json.Unmarshal(data, &records); err == nil {
		return FromRecords(records), nil
	}

	var flat map[string]string
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("workspace: unrecognized file-set shape: %w", err)
	}
	return FromFileMap(flat), nil
}
