package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// EncodePayload serializes v to compact JSON.
// The top-level value must encode to a JSON object; anything that
// json.Marshal rejects (cycles, channels, funcs, NaN) fails as well.
func EncodePayload(v any) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil payload", ErrInvalidPayload)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if len(b) == 0 || b[0] != '{' {
		return nil, fmt.Errorf("%w: top-level value is not an object", ErrInvalidPayload)
	}
	return b, nil
}

// PrettyPrint renders v as indented JSON for previews.
// Byte slices holding valid JSON are re-indented as-is.
func PrettyPrint(v any) string {
	if raw, ok := v.([]byte); ok {
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err == nil {
			return buf.String()
		}
		return fmt.Sprintf("%d bytes", len(raw))
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// PayloadA returns the built-in "A" beacon.
func PayloadA() map[string]any {
	return map[string]any{
		"type":    "A",
		"message": "Hello from iOS",
		"items":   []any{"alpha", "beta"},
		"meta":    map[string]any{"env": "dev"},
	}
}

// PayloadB returns the built-in "B" beacon.
func PayloadB() map[string]any {
	return map[string]any{
		"type": "B",
		"user": map[string]any{"id": 42, "email": "demo@example.com"},
		"flags": map[string]any{
			"beta": true,
			"gdpr": false,
		},
	}
}

// BuiltinPayload resolves a built-in beacon by name ("a" or "b").
func BuiltinPayload(name string) (map[string]any, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "a":
		return PayloadA(), true
	case "b":
		return PayloadB(), true
	default:
		return nil, false
	}
}
