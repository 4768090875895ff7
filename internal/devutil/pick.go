// Package devutil holds small debug helpers for the cmds.
package devutil

import "encoding/json"

// Pick flattens any struct or map to map[string]any via JSON and keeps
// only the requested keys. Used by the cmds' verbose row dumps, where a
// full employee record would drown the log.
func Pick(v any, keys ...string) map[string]any {
	b, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}

	var flat map[string]any
	if err := json.Unmarshal(b, &flat); err != nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if val, ok := flat[k]; ok {
			out[k] = val
		}
	}
	return out
}
