package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/geocine/lokator/fileio"
	"github.com/geocine/lokator/filemanager"
	"github.com/geocine/lokator/internal/config"
	"github.com/geocine/lokator/naming"
)

// ErrConfigExists is returned by Init when the project already has a config
// file and Force is not set
var ErrConfigExists = errors.New("config file already exists")

// InitOptions captures options for setting up a project
type InitOptions struct {
	Root        string
	GlobalDir   string // default: testdata/shared
	AssetsDir   string // default: testdata
	DefaultFile string
	Naming      string // default: assert-act-arrange
	Force       bool
}

// SetDefaults fills the unset options
func (o *InitOptions) SetDefaults() {
	if o.Root == "" {
		o.Root = "."
	}
	if o.AssetsDir == "" {
		o.AssetsDir = filemanager.DefaultAssetsDirectory
	}
	if o.GlobalDir == "" {
		o.GlobalDir = filepath.ToSlash(filepath.Join(o.AssetsDir, "shared"))
	}
	if o.Naming == "" {
		o.Naming = "assert-act-arrange"
	}
}

// Init writes lokator.toml to the project root and creates the assets and
// global directories. It returns the path of the written config file.
func Init(fs fileio.FileSystem, opts InitOptions) (string, error) {
	opts.SetDefaults()
	if _, err := naming.Parse(opts.Naming); err != nil {
		return "", err
	}

	if existing := config.Find(fs, opts.Root); existing != "" && !opts.Force {
		return "", fmt.Errorf("%w: %s", ErrConfigExists, existing)
	}

	cfg := config.NewDefaultConfig()
	cfg.DefaultFile = opts.DefaultFile
	cfg.Naming = opts.Naming
	cfg.Set(filemanager.KeyGlobalDirectory, opts.GlobalDir)
	if opts.AssetsDir != filemanager.DefaultAssetsDirectory {
		cfg.Set(filemanager.KeyAssetsDirectory, opts.AssetsDir)
	}

	content, err := cfg.Marshal()
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}

	path := filepath.Join(opts.Root, config.FileNames[0])
	if err := fs.WriteAtomic(path, content, 0o644); err != nil {
		return "", err
	}

	for _, dir := range []string{opts.AssetsDir, opts.GlobalDir} {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(opts.Root, dir)
		}
		if err := fs.CreateDirectory(dir); err != nil {
			return "", err
		}
	}

	return path, nil
}
