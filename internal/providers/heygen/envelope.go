package heygen

import (
	"strconv"
	"strings"
)

// maxEnvelopeDepth is the deepest {data: ...} nesting the provider has been
// seen to return.
const maxEnvelopeDepth = 2

// Payload strips up to two {data: ...} envelopes from a decoded body. Bodies
// without an envelope are returned unchanged.
func Payload(body any) any {
	for i := 0; i < maxEnvelopeDepth; i++ {
		m, ok := body.(map[string]any)
		if !ok {
			return body
		}
		inner, ok := m["data"]
		if !ok {
			return body
		}
		body = inner
	}
	return body
}

// Collection returns the items under key in the unwrapped payload, or the
// payload itself when it is a bare array. It never returns nil; non-object
// items are skipped.
func Collection(body any, key string) []map[string]any {
	var raw []any
	switch p := Payload(body).(type) {
	case []any:
		raw = p
	case map[string]any:
		raw, _ = p[key].([]any)
	}
	items := make([]map[string]any, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(map[string]any); ok {
			items = append(items, m)
		}
	}
	return items
}

// Object returns the unwrapped payload as an object, whether the provider
// nested the detail under data or put it at the top level.
func Object(body any) map[string]any {
	if m, ok := Payload(body).(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// String returns the first non-empty value among keys. Numeric identifiers
// are rendered without exponent.
func String(m map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// Float returns the first numeric value among keys.
func Float(m map[string]any, keys ...string) float64 {
	for _, k := range keys {
		switch v := m[k].(type) {
		case float64:
			return v
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return f
			}
		}
	}
	return 0
}

// Bool reports whether key holds boolean true.
func Bool(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}
