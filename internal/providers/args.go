// Package providers holds helpers shared by the per-upstream adapters.
// Intent arguments arrive as loosely-typed maps (decoded JSON), so every
// adapter needs the same defensive extraction.
package providers

import (
	"github.com/SYNCODE-SLIIT/sports-analysis/pkg/fields"
)

// StringArg returns the first present, non-empty argument among keys,
// coerced to string (numeric IDs arrive as float64 from JSON).
func StringArg(args map[string]interface{}, keys ...string) (string, bool) {
	for _, key := range keys {
		value, ok := args[key]
		if !ok || value == nil {
			continue
		}
		s := fields.AsString(value)
		if s != "" {
			return s, true
		}
	}
	return "", false
}

// StringsArg returns a list argument as []string. Accepts []string,
// []interface{} of strings, or a single string.
func StringsArg(args map[string]interface{}, key string) []string {
	value, ok := args[key]
	if !ok || value == nil {
		return nil
	}
	switch v := value.(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	}
	return nil
}
