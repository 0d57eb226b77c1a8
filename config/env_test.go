package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFilesMergesJSONThenDotEnv(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "app.json")
	envPath := filepath.Join(dir, ".env")

	require.NoError(t, os.WriteFile(jsonPath, []byte(`{
		"app_port": "4000",
		"gateway_retries": 5,
		"hashing_secret": "from-json"
	}`), 0o644))
	require.NoError(t, os.WriteFile(envPath, []byte("HASHING_SECRET=\"from-env\"\n# comment\nMAIL_DRIVER=mailgun\n"), 0o644))

	require.NoError(t, loadFromFiles(jsonPath, envPath))
	t.Cleanup(func() { _ = loadFromFiles("missing.json", "missing.env") })

	assert.Equal(t, "4000", get("APP_PORT", ""))
	assert.Equal(t, "5", get("GATEWAY_RETRIES", ""))
	assert.Equal(t, "from-env", get("HASHING_SECRET", ""))
	assert.Equal(t, "mailgun", get("MAIL_DRIVER", ""))
	assert.Equal(t, "usd", get("CURRENCY", ""), "defaults survive the merge")
}

func TestLoadFromFilesMissingFilesKeepDefaults(t *testing.T) {
	require.NoError(t, loadFromFiles(filepath.Join(t.TempDir(), "nope.json"), "nope.env"))

	assert.Equal(t, defaultAppPort, get("APP_PORT", ""))
	assert.Equal(t, "local", get("STORAGE_DISK", ""))
}

func TestLoadFromFilesRejectsBrokenJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	assert.Error(t, loadFromFiles(path, "nope.env"))
}

func TestDurationAndIntFallbacks(t *testing.T) {
	Set("TEST_DURATION", "90s")
	Set("TEST_BAD_DURATION", "soon")
	Set("TEST_INT", "7")
	Set("TEST_BAD_INT", "seven")

	assert.Equal(t, 90*time.Second, Duration("TEST_DURATION", time.Second))
	assert.Equal(t, time.Second, Duration("TEST_BAD_DURATION", time.Second))
	assert.Equal(t, time.Minute, Duration("TEST_UNSET_DURATION", time.Minute))
	assert.Equal(t, 7, Int("TEST_INT", 1))
	assert.Equal(t, 1, Int("TEST_BAD_INT", 1))
}

func TestGetFallsBackToProcessEnvironment(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	assert.Equal(t, "sk_test_123", Get("STRIPE_SECRET_KEY", ""))
	assert.Equal(t, "fallback", Get("SOMETHING_NOBODY_SET", "fallback"))
}
