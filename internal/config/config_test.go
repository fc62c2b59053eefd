package config

import (
	"path/filepath"
	"testing"

	"github.com/geocine/lokator/fileio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromStringTOML(t *testing.T) {
	content := `
default-file = "Default.json"
naming = "simple"

[settings]
global-directory = "shared"
cleanup-extracted = true
`

	cfg, err := LoadFromString(content, "toml")
	require.NoError(t, err)

	assert.Equal(t, "Default.json", cfg.DefaultFile)
	assert.Equal(t, "simple", cfg.Naming)
	assert.Equal(t, map[string]string{
		"global-directory":  "shared",
		"cleanup-extracted": "true",
	}, cfg.SettingsMap())
}

func TestLoadFromStringYAML(t *testing.T) {
	content := `
default-file: Default.json
naming: aaa
verbose: true
settings:
  assets-directory: fixtures
`

	cfg, err := LoadFromString(content, "yaml")
	require.NoError(t, err)

	assert.Equal(t, "Default.json", cfg.DefaultFile)
	assert.Equal(t, "aaa", cfg.Naming)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "fixtures", cfg.SettingsMap()["assets-directory"])
}

func TestLoadFromStringErrors(t *testing.T) {
	_, err := LoadFromString("default-file = ", "toml")
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadFromString("", "json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadFromStringEmptySettings(t *testing.T) {
	cfg, err := LoadFromString(`naming = "exact"`, "toml")
	require.NoError(t, err)
	assert.NotNil(t, cfg.Settings)
	assert.Empty(t, cfg.SettingsMap())
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "global-directory", EnvKey("LOKATOR_GLOBAL_DIRECTORY"))
	assert.Equal(t, "default-file", EnvKey("LOKATOR_DEFAULT_FILE"))
	assert.Equal(t, "naming", EnvKey("LOKATOR_NAMING"))
}

func TestUpdateFromEnv(t *testing.T) {
	t.Setenv("LOKATOR_GLOBAL_DIRECTORY", "/env/shared")
	t.Setenv("LOKATOR_DEFAULT_FILE", "Env.txt")
	t.Setenv("LOKATOR_VERBOSE", "true")

	cfg := NewDefaultConfig()
	cfg.UpdateFromEnv()

	assert.Equal(t, "Env.txt", cfg.DefaultFile)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "/env/shared", cfg.SettingsMap()["global-directory"])
}

func TestUpdateFromMapIgnoresOtherVariables(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.UpdateFromMap(map[string]string{
		"HOME":           "/home/me",
		"LOKATOR_":       "empty",
		"LOKATOR_NAMING": "exact",
	})

	assert.Equal(t, "exact", cfg.Naming)
	assert.Empty(t, cfg.SettingsMap())
}

func TestFind(t *testing.T) {
	fs := fileio.NewMemory()
	root := "/project"

	assert.Empty(t, Find(fs, root))

	require.NoError(t, fs.WriteAtomic(filepath.Join(root, "lokator.yml"), []byte("naming: exact"), 0o644))
	assert.Equal(t, filepath.Join(root, "lokator.yml"), Find(fs, root))

	require.NoError(t, fs.WriteAtomic(filepath.Join(root, "lokator.toml"), []byte(`naming = "simple"`), 0o644))
	assert.Equal(t, filepath.Join(root, "lokator.toml"), Find(fs, root))
}

func TestLoadPrecedence(t *testing.T) {
	fs := fileio.NewMemory()
	root := "/project"

	require.NoError(t, fs.WriteAtomic(filepath.Join(root, "lokator.toml"), []byte(`
default-file = "File.txt"
naming = "simple"

[settings]
global-directory = "from-file"
assets-directory = "from-file"
extract-directory = "from-file"
`), 0o644))
	require.NoError(t, fs.WriteAtomic(filepath.Join(root, DotEnvFile), []byte(
		"LOKATOR_ASSETS_DIRECTORY=from-dotenv\nLOKATOR_EXTRACT_DIRECTORY=from-dotenv\nOTHER=ignored\n"), 0o644))
	t.Setenv("LOKATOR_EXTRACT_DIRECTORY", "from-env")

	cfg, err := Load(fs, root, "")
	require.NoError(t, err)
	cfg.Merge(map[string]string{"naming": "exact"})

	settings := cfg.SettingsMap()
	assert.Equal(t, "from-file", settings["global-directory"])
	assert.Equal(t, "from-dotenv", settings["assets-directory"])
	assert.Equal(t, "from-env", settings["extract-directory"])
	assert.Equal(t, "File.txt", cfg.DefaultFile)
	assert.Equal(t, "exact", cfg.Naming)
	assert.NotContains(t, settings, "other")
}

func TestLoadWithoutFiles(t *testing.T) {
	cfg, err := Load(fileio.NewMemory(), "/project", "")
	require.NoError(t, err)
	assert.Empty(t, cfg.DefaultFile)
}

func TestLoadExplicitPath(t *testing.T) {
	fs := fileio.NewMemory()
	require.NoError(t, fs.WriteAtomic("/project/conf/lokator.yaml", []byte("default-file: A.txt"), 0o644))

	cfg, err := Load(fs, "/project", "conf/lokator.yaml")
	require.NoError(t, err)
	assert.Equal(t, "A.txt", cfg.DefaultFile)

	_, err = Load(fs, "/project", "missing.toml")
	assert.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.DefaultFile = "Default.txt"
	cfg.Set("global-directory", "shared")

	data, err := cfg.Marshal()
	require.NoError(t, err)

	loaded, err := LoadFromString(string(data), "toml")
	require.NoError(t, err)
	assert.Equal(t, "Default.txt", loaded.DefaultFile)
	assert.Equal(t, "shared", loaded.SettingsMap()["global-directory"])
}
