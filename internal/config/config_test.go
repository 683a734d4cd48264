package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TASKDASH_API_URL", "TASKDASH_TOKEN", "TASKDASH_TOKEN_FILE", "TASKDASH_USER_ID",
		"TASKDASH_TIMEOUT", "TASKDASH_RATE", "TASKDASH_RETRIES", "TASKDASH_OUTPUT_DIR",
		"TASKDASH_OUTPUT_FORMAT", "TASKDASH_LOG_LEVEL", "TASKDASH_LOG_JSON",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Run("Should apply defaults", func(t *testing.T) {
		clearEnv(t)
		cfg, err := LoadFromEnv(filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
		assert.Equal(t, 30*time.Second, cfg.API.Timeout)
		assert.Equal(t, []string{"json", "html"}, cfg.Output.Format)
		assert.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("Should read environment variables", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TASKDASH_USER_ID", "7")
		t.Setenv("TASKDASH_TIMEOUT", "5s")
		t.Setenv("TASKDASH_OUTPUT_FORMAT", "csv, XLSX")
		cfg, err := LoadFromEnv(filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)
		assert.Equal(t, "7", cfg.API.UserID)
		assert.Equal(t, 5*time.Second, cfg.API.Timeout)
		assert.Equal(t, []string{"csv", "xlsx"}, cfg.Output.Format)
	})

	t.Run("Should reject a bad timeout", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TASKDASH_TIMEOUT", "soon")
		_, err := LoadFromEnv(filepath.Join(t.TempDir(), "missing.env"))
		assert.Error(t, err)
	})
}

func TestConfig_Session(t *testing.T) {
	t.Run("Should read the token file when no token is set", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token")
		require.NoError(t, os.WriteFile(path, []byte("abc\n"), 0o600))

		cfg := &Config{API: APIConfig{UserID: "1", TokenFile: path}}
		s, err := cfg.Session()
		require.NoError(t, err)
		assert.Equal(t, "abc", s.Token)
		assert.Equal(t, "1", s.UserID)
	})

	t.Run("Should prefer the direct token", func(t *testing.T) {
		cfg := &Config{API: APIConfig{Token: "direct", TokenFile: "/does/not/exist"}}
		s, err := cfg.Session()
		require.NoError(t, err)
		assert.Equal(t, "direct", s.Token)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		API:    APIConfig{BaseURL: "http://x", UserID: "1", Token: "t", Timeout: time.Second},
		Output: OutputConfig{Format: []string{"json", "xlsx"}},
	}
	require.NoError(t, valid.Validate())

	missingUser := valid
	missingUser.API.UserID = ""
	assert.Error(t, missingUser.Validate())

	missingToken := valid
	missingToken.API.Token = ""
	assert.Error(t, missingToken.Validate())

	badFormat := valid
	badFormat.Output.Format = []string{"pdf"}
	assert.Error(t, badFormat.Validate())
}

func TestParseList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, ParseList(" a, ,B "))
	assert.Nil(t, ParseList(""))
}
