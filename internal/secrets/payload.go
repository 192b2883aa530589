package secrets

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrInvalidEncoding = errors.New("secrets: payload is not valid UTF-8")
	ErrNoJSONObject    = errors.New("secrets: payload contains no JSON object")
	ErrInvalidJSON     = errors.New("secrets: payload is not a valid JSON object")
)

// ParsePayload decodes a secret payload into a JSON object. Anything before the first '{'
// (a BOM, a log marker) is discarded.
func ParsePayload(data []byte) (map[string]any, error) {
	if !utf8.Valid(data) {
		return nil, ErrInvalidEncoding
	}

	raw := string(data)
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return nil, ErrNoJSONObject
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(raw[start:]), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return out, nil
}
