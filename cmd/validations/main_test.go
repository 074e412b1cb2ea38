package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/validations/i18n"
	"github.com/reoring/validations/internal/config"
	"github.com/reoring/validations/internal/logger"
	"github.com/reoring/validations/schemadoc"
)

const schemaDoc = `
fields:
  - name: age
    guard: filled
    predicates:
      - gt?: 18
  - name: nick
    presence: optional
    guard: maybe
    predicates:
      - max_size?: 4
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	t.Cleanup(func() { i18n.SetLanguage("en") })
	var stdout, stderr bytes.Buffer
	args = append([]string{"--env-file", filepath.Join(t.TempDir(), "none.env")}, args...)
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestCheck(t *testing.T) {
	schema := writeFile(t, "user.yaml", schemaDoc)

	t.Run("valid input exits 0", func(t *testing.T) {
		code, out, _ := execute(t, `{"age": 30}`, "check", "--schema", schema)
		assert.Equal(t, exitOK, code)
		var res map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.Equal(t, true, res["success"])
	})

	t.Run("invalid input exits 1 with messages", func(t *testing.T) {
		input := writeFile(t, "in.json", `{"nick": "roberta"}`)
		code, out, stderr := execute(t, "", "check", "--schema", schema, "--input", input)
		assert.Equal(t, exitInvalid, code)
		assert.Empty(t, stderr)
		var res struct {
			Success bool                `json:"success"`
			Errors  map[string][]string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.False(t, res.Success)
		assert.Equal(t, map[string][]string{
			"age":  {"is missing", "must be greater than 18"},
			"nick": {"size cannot be greater than 4"},
		}, res.Errors)
	})

	t.Run("yaml input by extension", func(t *testing.T) {
		input := writeFile(t, "in.yaml", "age: 19\nnick: ~\n")
		code, _, _ := execute(t, "", "check", "--schema", schema, "-i", input)
		assert.Equal(t, exitOK, code)
	})

	t.Run("fault exits 2", func(t *testing.T) {
		code, out, stderr := execute(t, `{"age": "old"}`, "check", "--schema", schema, "--log-format", "json")
		assert.Equal(t, exitFault, code)
		assert.Empty(t, out)
		assert.Contains(t, stderr, "incomparable_operands")
		assert.Contains(t, stderr, "comparison of string with int failed")
	})

	t.Run("japanese messages", func(t *testing.T) {
		code, out, _ := execute(t, `{"age": ""}`, "check", "--schema", schema, "--lang", "ja")
		assert.Equal(t, exitInvalid, code)
		assert.Contains(t, out, "を入力してください")
	})

	t.Run("usage errors exit 2", func(t *testing.T) {
		code, _, stderr := execute(t, `{}`, "check")
		assert.Equal(t, exitFault, code)
		assert.Contains(t, stderr, "schema is required")

		code, _, _ = execute(t, `[]`, "check", "--schema", schema)
		assert.Equal(t, exitFault, code)

		code, _, _ = execute(t, `{}`, "check", "--schema", schema, "--format", "toml")
		assert.Equal(t, exitFault, code)

		code, _, _ = execute(t, `{}`, "check", "--schema", filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Equal(t, exitFault, code)

		code, _, _ = execute(t, `{}`, "check", "--schema", schema, "--log-level", "loud")
		assert.Equal(t, exitFault, code)

		code, _, stderr = execute(t, `{}`, "check", "--schema", schema, "--lang", "fr")
		assert.Equal(t, exitFault, code)
		assert.Contains(t, stderr, "language not supported")
	})

	t.Run("schema from environment", func(t *testing.T) {
		t.Setenv("VALIDATIONS_SCHEMA", schema)
		code, _, _ := execute(t, `{"age": 50}`, "check")
		assert.Equal(t, exitOK, code)
	})
}

func TestPredicates(t *testing.T) {
	code, out, _ := execute(t, "", "predicates")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "gt?")
	assert.Contains(t, out, "must be greater than %{num}")
	assert.Contains(t, out, "satisfies?")
}

func TestRouter(t *testing.T) {
	s, err := schemadoc.Parse([]byte(schemaDoc))
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	h := newRouter(s, logger.New(logger.WithOutput(buf)), 1<<10)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/validate", strings.NewReader(`{"age": 1}`)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "must be greater than 18")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/validate", strings.NewReader(`{"age": []}`)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "empty list is blank under the filled guard")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/validate", strings.NewReader(`{"age": [1]}`)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.NotEmpty(t, entry["request_id"])

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/validate", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServe(t *testing.T) {
	a := &app{
		cfg: config.Config{
			Schema:          writeFile(t, "user.yaml", schemaDoc),
			Addr:            "127.0.0.1:0",
			MaxBodyBytes:    1 << 20,
			ShutdownTimeout: time.Second,
		},
		log: logger.Discard(),
	}
	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan string, 1)
	done := make(chan error, 1)
	go func() { done <- a.serve(ctx, ready) }()

	var addr string
	select {
	case addr = <-ready:
	case err := <-done:
		t.Fatalf("serve exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Post("http://"+addr+"/validate", "application/json", strings.NewReader(`{"age": 40}`))
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"success": true, "errors": {}}`, string(b))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
