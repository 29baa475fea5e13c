package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	t.Run("reads yaml keys", func(t *testing.T) {
		path := writeConfigFile(t, "DB_HOST: db.local\nJWT_SECRET: s3cret\nSHOPPING_CART_EXT: .txt\n")
		LoadConfigFile(path)

		assert.Equal(t, "db.local", GetConfig("DB_HOST"))
		assert.Equal(t, "s3cret", GetConfig("JWT_SECRET"))
		assert.Equal(t, ".txt", GetConfig("SHOPPING_CART_EXT"))
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := writeConfigFile(t, "DB_HOST: db.local\n")
		t.Setenv("DB_HOST", "db.env")
		LoadConfigFile(path)

		assert.Equal(t, "db.env", GetConfig("DB_HOST"))
	})

	t.Run("defaults apply when missing", func(t *testing.T) {
		LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.Equal(t, DefaultShoppingCartExt, GetConfig("SHOPPING_CART_EXT"))
		assert.Equal(t, DefaultArtifactStorage, GetConfig("ARTIFACT_STORAGE"))
		assert.Equal(t, DefaultAppPort, GetConfig("APP_PORT"))
		assert.NotEmpty(t, GetConfig("ARTIFACT_DIR"))
	})

	t.Run("unknown key is empty", func(t *testing.T) {
		assert.Equal(t, "", GetConfig("NOPE"))
	})
}
