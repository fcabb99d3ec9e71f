package sanitize

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

type FieldType string

const (
	TypeString      FieldType = "string"
	TypeNumber      FieldType = "number"
	TypeURL         FieldType = "url"
	TypeStringArray FieldType = "string_array"
	TypeObject      FieldType = "object"
)

// Rule declares how a single field may be written. Fields absent from a
// schema are dropped without error; that is how protected fields stay
// untouchable on non-privileged operations.
type Rule struct {
	Type FieldType
	// Keys lists the allowed nested keys for TypeObject.
	Keys []string
}

type Schema map[string]Rule

// Apply filters input down to declared fields and normalizes each surviving
// value. It never returns an error: undeclared fields and values that fail
// their type's sanitizer are silently dropped. An empty result means the
// caller should report NO_CHANGES instead of issuing a no-op write.
func Apply(s Schema, input map[string]interface{}) map[string]interface{} {
	out := map[string]interface{}{}
	if len(s) == 0 || len(input) == 0 {
		return out
	}
	for name, raw := range input {
		rule, ok := s[name]
		if !ok {
			continue
		}
		switch rule.Type {
		case TypeString:
			if v, ok := toCleanString(raw); ok {
				out[name] = v
			}
		case TypeNumber:
			if v, ok := toNumber(raw); ok {
				out[name] = v
			}
		case TypeURL:
			if v, ok := toAbsoluteURL(raw); ok {
				out[name] = v
			}
		case TypeStringArray:
			if v, ok := toStringArray(raw); ok {
				out[name] = v
			}
		case TypeObject:
			if v, ok := toFilteredObject(raw, rule.Keys); ok {
				out[name] = v
			}
		}
	}
	return out
}

func toCleanString(raw interface{}) (string, bool) {
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v), true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	default:
		return "", false
	}
}

func toNumber(raw interface{}) (float64, bool) {
	var n float64
	switch v := raw.(type) {
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func toAbsoluteURL(raw interface{}) (string, bool) {
	s, ok := raw.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", false
	}
	if !u.IsAbs() || u.Host == "" {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	return u.String(), true
}

func toStringArray(raw interface{}) ([]string, bool) {
	var items []interface{}
	switch v := raw.(type) {
	case []interface{}:
		items = v
	case []string:
		items = make([]interface{}, 0, len(v))
		for _, s := range v {
			items = append(items, s)
		}
	default:
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out, true
}

func toFilteredObject(raw interface{}, keys []string) (map[string]interface{}, bool) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, false
	}
	allowed := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		allowed[k] = struct{}{}
	}
	out := map[string]interface{}{}
	for k, v := range obj {
		if _, ok := allowed[k]; ok {
			out[k] = v
		}
	}
	return out, true
}

// URLList filters raw down to the valid absolute http(s) URLs it contains.
func URLList(raw interface{}) []string {
	arr, ok := toStringArray(raw)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, s := range arr {
		if u, ok := toAbsoluteURL(s); ok {
			out = append(out, u)
		}
	}
	return out
}

// RateRange validates a min/max pair after sanitization, falling back to the
// stored values for whichever side the update does not touch. A stored max of
// zero means no ceiling, but a max supplied in the update is always binding.
func RateRange(updates map[string]interface{}, currentMin, currentMax float64) error {
	min := currentMin
	max := currentMax
	maxSupplied := false
	if v, ok := updates["min_rate"].(float64); ok {
		min = v
	}
	if v, ok := updates["max_rate"].(float64); ok {
		max = v
		maxSupplied = true
	}
	if min < 0 || max < 0 {
		return fmt.Errorf("rates must be non-negative")
	}
	if (maxSupplied || max > 0) && min > max {
		return fmt.Errorf("min_rate %v exceeds max_rate %v", min, max)
	}
	return nil
}
