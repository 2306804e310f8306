package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("DB_HOST: filehost\nDB_NAME: foodgram\nPAGE_SIZE: 10\n"), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("DB_HOST", "envhost")
	config = Config{}
	LoadConfig()

	assert.Equal(t, "envhost", GetConfig("DB_HOST"))
	assert.Equal(t, "foodgram", GetConfig("DB_NAME"))
	assert.Equal(t, 10, PageSize())
	assert.Equal(t, "8000", GetConfig("APP_PORT"))
	assert.Equal(t, "", GetConfig("UNKNOWN"))
}

func TestSlugValidation(t *testing.T) {
	InitValidator()
	type payload struct {
		Slug string `validate:"slug"`
	}
	assert.NoError(t, Validate.Struct(payload{Slug: "break-fast_1"}))
	assert.Error(t, Validate.Struct(payload{Slug: "not a slug"}))
}
