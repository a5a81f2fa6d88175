package core

import (
	"fmt"

	"github.com/go-barry/vista/helper"
	"github.com/mitchellh/copystructure"
)

// MergeParams merges layers left to right into a new map. A later layer
// replaces a top-level key wholesale, nested objects and JSON nulls
// included. Query layers are the exception: a key given without "=" only
// sets nil when no earlier layer has that key. A layer that is not a JSON
// object is kept under "data". The layers themselves are not modified.
func MergeParams(layers ...any) (map[string]any, error) {
	out := map[string]any{}

	for _, layer := range layers {
		switch v := layer.(type) {
		case nil:
		case helper.Params:
			for k, val := range v {
				if val != nil {
					out[k] = *val
				} else if _, exists := out[k]; !exists {
					out[k] = nil
				}
			}
		case map[string]any:
			for k, val := range v {
				out[k] = val
			}
		default:
			out["data"] = v
		}
	}

	copied, err := copystructure.Copy(out)
	if err != nil {
		return nil, fmt.Errorf("copy params: %w", err)
	}
	return copied.(map[string]any), nil
}
