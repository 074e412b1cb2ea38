package config_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/validations/i18n"
	"github.com/reoring/validations/internal/config"
	"github.com/reoring/validations/internal/logger"
)

func missing(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(missing(t))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "en", cfg.Lang)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.Schema)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("VALIDATIONS_LOG_LEVEL", "debug")
	t.Setenv("VALIDATIONS_ADDR", "127.0.0.1:9000")
	t.Setenv("VALIDATIONS_SHUTDOWN_TIMEOUT", "250ms")
	t.Setenv("VALIDATIONS_SCHEMA", "user.yaml")

	cfg, err := config.Load(missing(t))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, 250*time.Millisecond, cfg.ShutdownTimeout)
	assert.Equal(t, "user.yaml", cfg.Schema)
}

func TestLoad_DotenvDoesNotOverrideProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("VALIDATIONS_LANG=ja\nVALIDATIONS_LOG_FORMAT=json\n"), 0o600))
	t.Setenv("VALIDATIONS_LOG_FORMAT", "text")
	// godotenv sets variables directly; register cleanup through t.Setenv.
	t.Setenv("VALIDATIONS_LANG", "")
	require.NoError(t, os.Unsetenv("VALIDATIONS_LANG"))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ja", cfg.Lang)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_ParseError(t *testing.T) {
	t.Setenv("VALIDATIONS_MAX_BODY_BYTES", "lots")
	_, err := config.Load(missing(t))
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestValidate(t *testing.T) {
	cfg := config.Config{LogLevel: "loud", LogFormat: "xml", MaxBodyBytes: 0, ShutdownTimeout: -time.Second}
	err := cfg.Validate()
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "loud")
	assert.Contains(t, err.Error(), "xml")
	assert.Contains(t, err.Error(), "max body bytes")
	assert.Contains(t, err.Error(), "shutdown timeout")
}

func TestValidate_Lang(t *testing.T) {
	base := config.Config{LogLevel: "info", LogFormat: "text", MaxBodyBytes: 1}

	for _, lang := range []string{"en", "ja"} {
		cfg := base
		cfg.Lang = lang
		assert.NoError(t, cfg.Validate(), lang)
	}

	cfg := base
	cfg.Lang = "fr"
	err := cfg.Validate()
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.ErrorIs(t, err, i18n.ErrLanguageNotSupported)
	assert.Contains(t, err.Error(), `"fr"`)

	// a catalog decides its own languages
	cfg.Catalog = "messages.yaml"
	assert.NoError(t, cfg.Validate())
}

func TestLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := config.Config{LogLevel: "warn", LogFormat: "json"}
	log := cfg.Logger(logger.WithOutput(buf))
	log.Info("dropped")
	log.Warn("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
}

func TestApplyMessages(t *testing.T) {
	t.Cleanup(func() { i18n.SetLanguage("en") })

	require.NoError(t, config.Config{Lang: "ja"}.ApplyMessages())
	assert.Equal(t, "を入力してください", i18n.T(i18n.KeyFilled, nil))

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fr:\n  filled: \"doit être rempli\"\n"), 0o600))
	require.NoError(t, config.Config{Lang: "fr", Catalog: path}.ApplyMessages())
	assert.Equal(t, "doit être rempli", i18n.T(i18n.KeyFilled, nil))

	assert.ErrorIs(t, config.Config{Lang: "de", Catalog: path}.ApplyMessages(), i18n.ErrLanguageNotSupported)
	assert.Error(t, config.Config{Catalog: filepath.Join(t.TempDir(), "none.yaml")}.ApplyMessages())
}
