package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"API_PORT", "UPSTREAM_TIMEOUT_SECONDS", "CORS_ALLOWED_ORIGINS", "LEETCODE_BASE_URL", "USER_AGENT"} {
		t.Setenv(key, "") // restores the original value on cleanup
		os.Unsetenv(key)
	}

	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.APIPort)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "https://leetcode.com", cfg.LeetCodeBaseURL)
	assert.Contains(t, cfg.UserAgent, "Mozilla/5.0")
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("UPSTREAM_TIMEOUT_SECONDS", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("CODEFORCES_BASE_URL", "http://127.0.0.1:1234/")
	t.Setenv("MAX_RESPONSE_BYTES", "not-a-number")

	cfg := FromEnv()

	assert.Equal(t, "9090", cfg.APIPort)
	assert.Equal(t, 3*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "http://127.0.0.1:1234", cfg.CodeForcesBaseURL)
	assert.Equal(t, int64(5*1024*1024), cfg.MaxResponseBytes)
}

func TestLoadWithoutDotEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("API_PORT", "7070")

	err := Load()

	assert.Error(t, err)
	if assert.NotNil(t, AppConfig) {
		assert.Equal(t, "7070", AppConfig.APIPort)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("LOG_LEVEL", "") // restores the original value on cleanup
	os.Unsetenv("LOG_LEVEL")
	assert.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\n"), 0o600))

	assert.NoError(t, Load())
	assert.Equal(t, "debug", AppConfig.LogLevel)
}
