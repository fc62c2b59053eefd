package cli

import (
	"fmt"
	"path/filepath"

	"github.com/geocine/lokator/filemanager"
	"github.com/geocine/lokator/internal/config"
	"github.com/geocine/lokator/internal/report"
)

// InventoryOptions selects the project to scan and the output format
type InventoryOptions struct {
	Root       string
	ConfigFile string
	Format     string
}

// Inventory scans the project's test data and renders it
func Inventory(fs report.FileSystem, opts InventoryOptions) (string, *report.Inventory, error) {
	root, err := workingRoot(fs, opts.Root)
	if err != nil {
		return "", nil, err
	}

	cfg, err := config.Load(fs, root, opts.ConfigFile)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	fmOpts, err := filemanager.DecodeOptions(cfg.SettingsMap())
	if err != nil {
		return "", nil, err
	}

	global := fmOpts.GlobalDirectory
	if global != "" && !filepath.IsAbs(global) {
		global = filepath.Join(root, global)
	}

	inv, err := report.Scan(fs, root, fmOpts.AssetsDirectory, global)
	if err != nil {
		return "", nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	out, err := report.Render(inv, opts.Format)
	if err != nil {
		return "", nil, err
	}
	return out, inv, nil
}
