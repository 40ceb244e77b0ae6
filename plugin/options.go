package plugin

import (
	"math"
)

// Options carries per-stage configuration. Recognized keys are specific to
// each stage (the validator recognizes "strict", the generator "format" and
// "dataset_uri", and so on); unknown keys are ignored.
type Options map[string]any

// GetString safely extracts a string value with a default fallback.
func (o Options) GetString(key, defaultValue string) string {
	if value, exists := o[key]; exists {
		if str, ok := value.(string); ok {
			return str
		}
	}
	return defaultValue
}

// GetBool safely extracts a boolean value with a default fallback.
func (o Options) GetBool(key string, defaultValue bool) bool {
	if value, exists := o[key]; exists {
		if b, ok := value.(bool); ok {
			return b
		}
	}
	return defaultValue
}

// GetInt safely extracts an integer value with a default fallback and bounds
// checking. JSON-decoded numbers arrive as float64 and are accepted when the
// conversion is exact.
func (o Options) GetInt(key string, defaultValue int) int {
	value, exists := o[key]
	if !exists {
		return defaultValue
	}
	switch v := value.(type) {
	case int:
		return v
	case int64:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return defaultValue
		}
		return int(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return defaultValue
		}
		result := int(v)
		if float64(result) != v {
			return defaultValue
		}
		return result
	}
	return defaultValue
}

// GetStringSlice safely extracts a string slice. Both []string and []any
// holding strings are accepted; anything else yields the default.
func (o Options) GetStringSlice(key string, defaultValue []string) []string {
	value, exists := o[key]
	if !exists {
		return defaultValue
	}
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				return defaultValue
			}
			out = append(out, str)
		}
		return out
	}
	return defaultValue
}

// GetStringMap safely extracts a map of string to string. Both
// map[string]string and map[string]any holding strings are accepted.
func (o Options) GetStringMap(key string) map[string]string {
	value, exists := o[key]
	if !exists {
		return nil
	}
	switch v := value.(type) {
	case map[string]string:
		return v
	case map[string]any:
		out := make(map[string]string, len(v))
		for k, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil
			}
			out[k] = str
		}
		return out
	}
	return nil
}
