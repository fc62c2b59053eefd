// Package config loads lokator configuration: a lokator.toml or lokator.yaml
// file, a .env file and LOKATOR_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/geocine/lokator/fileio"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix marks environment variables read by UpdateFromEnv
const EnvPrefix = "LOKATOR_"

// DotEnvFile is read from the root directory when present
const DotEnvFile = ".env"

// FileNames are the configuration files looked up in the root directory, in
// order
var FileNames = []string{"lokator.toml", "lokator.yaml", "lokator.yml"}

var (
	ErrUnsupportedFormat = errors.New("unsupported config format")
	ErrInvalidConfig     = errors.New("invalid config")
)

// Config is the top-level configuration
type Config struct {
	DefaultFile string                 `toml:"default-file" yaml:"default-file"`
	Naming      string                 `toml:"naming" yaml:"naming"`
	Verbose     bool                   `toml:"verbose" yaml:"verbose"`
	Settings    map[string]interface{} `toml:"settings" yaml:"settings"`
}

// NewDefaultConfig returns an empty config
func NewDefaultConfig() *Config {
	return &Config{
		Settings: make(map[string]interface{}),
	}
}

// Find returns the first configuration file present in dir, or ""
func Find(files fileio.Files, dir string) string {
	for _, name := range FileNames {
		p := filepath.Join(dir, name)
		if files.FileExists(p) {
			return p
		}
	}
	return ""
}

// LoadFromFile loads configuration from a TOML or YAML file; the format
// follows the extension
func LoadFromFile(files fileio.Files, path string) (*Config, error) {
	data, err := files.ReadAll(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := LoadFromString(string(data), formatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromString parses configuration in the given format ("toml" or "yaml")
func LoadFromString(content, format string) (*Config, error) {
	cfg := NewDefaultConfig()

	switch format {
	case "toml":
		if err := toml.Unmarshal([]byte(content), cfg); err != nil {
			return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
		}
	case "yaml":
		if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
			return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if cfg.Settings == nil {
		cfg.Settings = make(map[string]interface{})
	}
	return cfg, nil
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return strings.TrimPrefix(filepath.Ext(path), ".")
	}
}

// UpdateFromDotEnv applies the LOKATOR_ variables of a .env file. A missing
// file is not an error.
func (c *Config) UpdateFromDotEnv(files fileio.Files, path string) error {
	if !files.FileExists(path) {
		return nil
	}

	f, err := files.OpenRead(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidConfig, path, err)
	}
	c.UpdateFromMap(vars)
	return nil
}

// UpdateFromEnv updates config from environment variables
// Variables starting with LOKATOR_ are used
// LOKATOR_GLOBAL_DIRECTORY -> global-directory
// LOKATOR_DEFAULT_FILE     -> default-file
func (c *Config) UpdateFromEnv() {
	vars := make(map[string]string)
	for _, env := range os.Environ() {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}
		vars[parts[0]] = parts[1]
	}
	c.UpdateFromMap(vars)
}

// UpdateFromMap applies the LOKATOR_ entries of vars. Keys are applied in
// sorted order so the result does not depend on map iteration.
func (c *Config) UpdateFromMap(vars map[string]string) {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		if strings.HasPrefix(k, EnvPrefix) && len(k) > len(EnvPrefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		c.Set(EnvKey(k), vars[k])
	}
}

// EnvKey converts a LOKATOR_ variable name to its config key
func EnvKey(name string) string {
	key := strings.TrimPrefix(name, EnvPrefix)
	key = strings.ToLower(key)
	return strings.ReplaceAll(key, "_", "-")
}

// Set sets a configuration value. default-file, naming and verbose are
// top-level values; every other key is a file manager setting.
func (c *Config) Set(key, value string) {
	switch key {
	case "default-file":
		c.DefaultFile = value
	case "naming":
		c.Naming = value
	case "verbose":
		c.Verbose = strings.EqualFold(value, "true") || value == "1"
	default:
		if c.Settings == nil {
			c.Settings = make(map[string]interface{})
		}
		c.Settings[key] = value
	}
}

// Merge overlays explicit settings
func (c *Config) Merge(settings map[string]string) {
	for k, v := range settings {
		c.Set(k, v)
	}
}

// SettingsMap returns the file manager settings as strings
func (c *Config) SettingsMap() map[string]string {
	out := make(map[string]string, len(c.Settings))
	for k, v := range c.Settings {
		if v == nil {
			continue
		}
		out[k] = fmt.Sprint(v)
	}
	return out
}

// Load reads, in increasing precedence, the config file (explicit path or
// the first of FileNames in root), the .env file in root and the process
// environment
func Load(files fileio.Files, root, path string) (*Config, error) {
	if path == "" {
		path = Find(files, root)
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}

	cfg := NewDefaultConfig()
	if path != "" {
		loaded, err := LoadFromFile(files, path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.UpdateFromDotEnv(files, filepath.Join(root, DotEnvFile)); err != nil {
		return nil, err
	}
	cfg.UpdateFromEnv()
	return cfg, nil
}

// Marshal encodes the config as TOML
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
