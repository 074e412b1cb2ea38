package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	validations "github.com/reoring/validations"
)

// YAML decodes the first document of b, which must be a mapping. yaml.v3
// rejects repeated mapping keys on its own.
func YAML(b []byte) (validations.Input, error) {
	return YAMLReader(bytes.NewReader(b))
}

// YAMLReader is YAML for an io.Reader.
func YAMLReader(r io.Reader) (validations.Input, error) {
	var node any
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrNotObject)
		}
		return nil, fmt.Errorf("source: %w", err)
	}
	m := StringMap(node)
	if m == nil {
		return nil, fmt.Errorf("%w: got %T", ErrNotObject, node)
	}
	return m, nil
}

// StringMap converts YAML-decoded values (which may contain map[any]any)
// into JSON-like map[string]any recursively. Non-map roots return nil and
// non-string keys are dropped.
func StringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = Normalize(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = Normalize(vv)
		}
		return out
	default:
		return nil
	}
}

// Normalize applies StringMap to every nested mapping of v.
func Normalize(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return StringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = Normalize(t[i])
		}
		return arr
	default:
		return v
	}
}
