package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "READ_TIMEOUT", "CANVAS_WIDTH", "BUILDER_URL", "OPENAPI_PATH", "ENV_FILE"} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())

	cfg := Load()
	require.Equal(t, "3000", cfg.Port)
	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, 10, cfg.ReadTimeout)
	require.Equal(t, 375.0, cfg.CanvasWidth)
	require.Equal(t, "http://localhost:3001", cfg.BuilderURL)
	require.Equal(t, "docs/builder.openapi.yaml", cfg.OpenAPIPath)
	require.True(t, cfg.IsDevelopment())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("READ_TIMEOUT", "not-a-number")
	t.Setenv("CANVAS_WIDTH", "414")
	t.Setenv("ENV", "production")

	cfg := Load()
	require.Equal(t, "4000", cfg.Port)
	require.Equal(t, 10, cfg.ReadTimeout)
	require.Equal(t, 414.0, cfg.CanvasWidth)
	require.False(t, cfg.IsDevelopment())
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "builder.env")
	require.NoError(t, os.WriteFile(path, []byte("TEMPLATES_DIR=/srv/templates\n"), 0o644))

	t.Setenv("TEMPLATES_DIR", "")
	os.Unsetenv("TEMPLATES_DIR")
	t.Setenv("ENV_FILE", path)

	cfg := Load()
	require.Equal(t, "/srv/templates", cfg.TemplatesDir)
}
