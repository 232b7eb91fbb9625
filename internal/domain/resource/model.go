package resource

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Resource is one record as returned by the listing or detail endpoint.
// The API's field set varies per resource type, so records are decoded
// generically; typed read models exist only where the public site needs them.
type Resource map[string]any

// ID returns the server-assigned identifier as a string.
// Identifiers are opaque and immutable; the client never fabricates one.
// PRE: none
// POST: returns "" if the record carries no id
func (r Resource) ID() string {
	v, ok := r["id"]
	if !ok {
		return ""
	}
	switch id := v.(type) {
	case string:
		return id
	case float64:
		// JSON numbers decode as float64; ids are integral.
		return strconv.FormatInt(int64(id), 10)
	case json.Number:
		return id.String()
	default:
		return fmt.Sprintf("%v", id)
	}
}

// String returns the named field as a string, or "" when absent.
func (r Resource) String(name string) string {
	v, ok := r[name]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprintf("%v", s)
	}
}

// StringList returns the named field as a list of strings. Scalar sub-lists
// arrive as JSON arrays of strings; anything else is stringified.
func (r Resource) StringList(name string) []string {
	v, ok := r[name]
	if !ok || v == nil {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		} else {
			out = append(out, fmt.Sprintf("%v", item))
		}
	}
	return out
}

// RecordList returns the named field as a list of small records
// (e.g. "education" entries).
func (r Resource) RecordList(name string) []map[string]string {
	v, ok := r[name]
	if !ok || v == nil {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]string, 0, len(arr))
	for _, item := range arr {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		rec := make(map[string]string, len(m))
		for k, val := range m {
			if s, ok := val.(string); ok {
				rec[k] = s
			} else if val != nil {
				rec[k] = fmt.Sprintf("%v", val)
			}
		}
		out = append(out, rec)
	}
	return out
}
