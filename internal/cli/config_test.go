package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)
	cfg, _, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, Config{Color: "auto", Context: 3}, cfg)
}

func TestLoadConfig_Cascade(t *testing.T) {
	dir := isolate(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeFiles(t, map[string]string{
		filepath.Join(home, ".magicstring", "config.json"): `{"context": 1, "hires": "true", "include_content": true}`,
		filepath.Join(dir, ".magicstring.toml"):            "context = 5\ncolor = \"never\"\n",
	})
	t.Setenv("MAGICSTRING_HIRES", "boundary")

	cfg, loader, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, Config{Hires: "boundary", IncludeContent: true, Color: "never", Context: 5}, cfg)

	origins := loader.Origins()
	assert.Equal(t, "env", origins["hires"].Kind)
	assert.Equal(t, "toml_file", origins["context"].Kind)
	assert.Equal(t, "json_file", origins["include_content"].Kind)
}

func TestLoadConfig_NearestFileInParent(t *testing.T) {
	dir := isolate(t)
	writeFiles(t, map[string]string{
		filepath.Join(dir, ".magicstring.yaml"): "context: 7\n",
		filepath.Join(dir, "sub", "x.txt"):      "",
	})
	t.Chdir(filepath.Join(dir, "sub"))

	cfg, _, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Context)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"MAGICSTRING_COLOR":   "rainbow",
		"MAGICSTRING_HIRES":   "max",
		"MAGICSTRING_CONTEXT": "-1",
	}
	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			isolate(t)
			t.Setenv(name, value)
			_, _, err := loadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestConfigCommand(t *testing.T) {
	isolate(t)
	t.Setenv("MAGICSTRING_CONTEXT", "9")

	code, out, _, err := runMain(t, "config")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	var cfg Config
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, 9, cfg.Context)

	_, out, _, err = runMain(t, "config", "--origins")
	require.NoError(t, err)
	assert.Contains(t, out, "color\tdefault\n")
	assert.Contains(t, out, "context\tenv\n")
}
