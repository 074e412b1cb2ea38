package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"

	validations "github.com/reoring/validations"
)

var (
	// ErrNotObject is returned when the document root is not an object.
	ErrNotObject = errors.New("source: root must be an object")
	// ErrDuplicateKey is returned when an object repeats a key.
	ErrDuplicateKey = errors.New("source: duplicate key")
	// ErrTooDeep is returned when nesting exceeds the configured depth.
	ErrTooDeep = errors.New("source: nesting too deep")
	// ErrTrailingData is returned when more tokens follow the root value.
	ErrTrailingData = errors.New("source: trailing data after root value")
)

// DefaultMaxDepth bounds container nesting.
const DefaultMaxDepth = 512

type config struct {
	allowDuplicates bool
	maxDepth        int
}

// Option configures decoding.
type Option func(*config)

// AllowDuplicateKeys keeps the last occurrence of a repeated key instead of
// failing.
func AllowDuplicateKeys() Option { return func(c *config) { c.allowDuplicates = true } }

// MaxDepth overrides DefaultMaxDepth. Non-positive values are ignored.
func MaxDepth(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// JSON decodes a JSON object document.
func JSON(b []byte, opts ...Option) (validations.Input, error) {
	return JSONReader(bytes.NewReader(b), opts...)
}

// JSONReader decodes a JSON object document from r, consuming it fully.
func JSONReader(r io.Reader, opts ...Option) (validations.Input, error) {
	cfg := config{maxDepth: DefaultMaxDepth}
	for _, o := range opts {
		o(&cfg)
	}
	dec := j.NewDecoder(r)
	dec.UseNumber()
	d := &decoder{dec: dec, cfg: cfg}

	tok, err := dec.Token()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty document", ErrNotObject)
	}
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	if delim, ok := tok.(j.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: got %s", ErrNotObject, describe(tok))
	}
	obj, err := d.object("", 1)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, fmt.Errorf("source: %w", err)
		}
		return nil, ErrTrailingData
	}
	return obj, nil
}

type decoder struct {
	dec *j.Decoder
	cfg config
}

// object reads members after '{' up to and including '}'.
func (d *decoder) object(path string, depth int) (map[string]any, error) {
	if depth > d.cfg.maxDepth {
		return nil, fmt.Errorf("%w at %s", ErrTooDeep, pointer(path))
	}
	out := map[string]any{}
	for {
		tok, err := d.next()
		if err != nil {
			return nil, err
		}
		if delim, ok := tok.(j.Delim); ok && delim == '}' {
			return out, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("source: expected object key at %s, got %s", pointer(path), describe(tok))
		}
		if _, dup := out[key]; dup && !d.cfg.allowDuplicates {
			return nil, fmt.Errorf("%w %q at %s", ErrDuplicateKey, key, pointer(path))
		}
		tok, err = d.next()
		if err != nil {
			return nil, err
		}
		v, err := d.value(tok, path+"/"+escape(key), depth)
		if err != nil {
			return nil, err
		}
		out[key] = v
	}
}

// array reads elements after '[' up to and including ']'.
func (d *decoder) array(path string, depth int) ([]any, error) {
	if depth > d.cfg.maxDepth {
		return nil, fmt.Errorf("%w at %s", ErrTooDeep, pointer(path))
	}
	out := []any{}
	for i := 0; ; i++ {
		tok, err := d.next()
		if err != nil {
			return nil, err
		}
		if delim, ok := tok.(j.Delim); ok && delim == ']' {
			return out, nil
		}
		v, err := d.value(tok, path+"/"+strconv.Itoa(i), depth)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

func (d *decoder) value(tok j.Token, path string, depth int) (any, error) {
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			return d.object(path, depth+1)
		case '[':
			return d.array(path, depth+1)
		}
		return nil, fmt.Errorf("source: unexpected %q at %s", rune(v), pointer(path))
	case j.Number:
		return json.Number(v), nil
	case float64:
		return json.Number(strconv.FormatFloat(v, 'g', -1, 64)), nil
	case string, bool, nil:
		return v, nil
	}
	return nil, fmt.Errorf("source: unexpected token %s at %s", describe(tok), pointer(path))
}

func (d *decoder) next() (j.Token, error) {
	tok, err := d.dec.Token()
	if err == io.EOF {
		return nil, fmt.Errorf("source: %w", io.ErrUnexpectedEOF)
	}
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	return tok, nil
}

func describe(tok j.Token) string {
	switch v := tok.(type) {
	case j.Delim:
		return strconv.QuoteRune(rune(v))
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	default:
		return "number"
	}
}

func pointer(path string) string {
	if path == "" {
		return "/"
	}
	return path
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escape(key string) string { return pointerEscaper.Replace(key) }
