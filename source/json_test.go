package source

import (
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"reflect"
	"strings"
	"testing"
)

func TestJSON_PreservesNumbersAndNesting(t *testing.T) {
	in, err := JSON([]byte(`{"age": 33, "ratio": 1.5, "big": 12345678901234567890, "tags": ["a", 1, null, []], "meta": {"ok": true, "empty": {}}, "nil": null}`))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if got, ok := in["age"].(json.Number); !ok || got != "33" {
		t.Fatalf("age: expected json.Number 33, got %#v", in["age"])
	}
	if got := in["big"]; got != json.Number("12345678901234567890") {
		t.Fatalf("big: lost precision: %#v", got)
	}
	want := []any{"a", json.Number("1"), nil, []any{}}
	if !reflect.DeepEqual(in["tags"], want) {
		t.Fatalf("tags: got %#v want %#v", in["tags"], want)
	}
	meta, ok := in["meta"].(map[string]any)
	if !ok || meta["ok"] != true || !reflect.DeepEqual(meta["empty"], map[string]any{}) {
		t.Fatalf("meta: got %#v", in["meta"])
	}
	v, present := in["nil"]
	if !present || v != nil {
		t.Fatalf("nil: expected present null, got %#v (present=%v)", v, present)
	}
}

func TestJSON_RootMustBeObject(t *testing.T) {
	for _, doc := range []string{`[]`, `"x"`, `1`, `null`, ``, `   `} {
		_, err := JSON([]byte(doc))
		if !errors.Is(err, ErrNotObject) {
			t.Fatalf("%q: expected ErrNotObject, got %v", doc, err)
		}
	}
}

func TestJSON_DuplicateKeys(t *testing.T) {
	_, err := JSON([]byte(`{"a":1,"b":{"c":1,"c":2}}`))
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
	if !strings.Contains(err.Error(), `"c" at /b`) {
		t.Fatalf("expected location in error, got %v", err)
	}

	in, err := JSON([]byte(`{"a":1,"a":2}`), AllowDuplicateKeys())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if in["a"] != json.Number("2") {
		t.Fatalf("expected last value to win, got %#v", in["a"])
	}

	// same key in sibling objects is fine
	if _, err := JSON([]byte(`{"x":{"k":1},"y":{"k":2}}`)); err != nil {
		t.Fatalf("err: %v", err)
	}
}

func TestJSON_Malformed(t *testing.T) {
	for _, doc := range []string{`{"a":`, `{"a":1`, `{"a":1}}`, `{"a":1} {}`} {
		if _, err := JSON([]byte(doc)); err == nil {
			t.Fatalf("%q: expected error", doc)
		}
	}
	_, err := JSON([]byte(`{"a":1} {}`))
	if !errors.Is(err, ErrTrailingData) {
		t.Fatalf("expected ErrTrailingData, got %v", err)
	}
}

func TestJSON_MaxDepth(t *testing.T) {
	doc := `{"a":{"b":{"c":[[1]]}}}`
	if _, err := JSON([]byte(doc), MaxDepth(5)); err != nil {
		t.Fatalf("depth 5: %v", err)
	}
	_, err := JSON([]byte(doc), MaxDepth(4))
	if !errors.Is(err, ErrTooDeep) {
		t.Fatalf("expected ErrTooDeep, got %v", err)
	}
	if !strings.Contains(err.Error(), "/a/b/c/0") {
		t.Fatalf("expected pointer in error, got %v", err)
	}
}

func TestJSONReader_EscapesPointer(t *testing.T) {
	_, err := JSONReader(strings.NewReader(`{"a/b":{"~":1,"~":2}}`))
	if err == nil || !strings.Contains(err.Error(), "/a~1b") {
		t.Fatalf("expected escaped pointer, got %v", err)
	}
}

func TestYAML(t *testing.T) {
	in, err := YAML([]byte("age: 33\nname: ''\ntags: [a, b]\nmeta:\n  1: one\n  k: v\nnothing: ~\n"))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if in["age"] != 33 || in["name"] != "" || in["nothing"] != nil {
		t.Fatalf("unexpected scalars: %#v", in)
	}
	if !reflect.DeepEqual(in["tags"], []any{"a", "b"}) {
		t.Fatalf("tags: %#v", in["tags"])
	}
	if !reflect.DeepEqual(in["meta"], map[string]any{"k": "v"}) {
		t.Fatalf("meta: non-string keys should be dropped, got %#v", in["meta"])
	}

	if _, err := YAML([]byte("- a\n- b\n")); !errors.Is(err, ErrNotObject) {
		t.Fatalf("expected ErrNotObject, got %v", err)
	}
	if _, err := YAMLReader(strings.NewReader("")); !errors.Is(err, ErrNotObject) {
		t.Fatalf("expected ErrNotObject for empty, got %v", err)
	}
	if _, err := YAML([]byte("a: 1\na: 2\n")); err == nil || errors.Is(err, io.EOF) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
}

func TestForm(t *testing.T) {
	in := Form(url.Values{"one": {"x"}, "many": {"a", "b"}, "none": {}})
	want := map[string]any{"one": "x", "many": []any{"a", "b"}, "none": ""}
	if !reflect.DeepEqual(map[string]any(in), want) {
		t.Fatalf("got %#v want %#v", in, want)
	}
}
