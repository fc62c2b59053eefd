package cli

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/geocine/lokator"
	"github.com/geocine/lokator/fileio"
	"github.com/geocine/lokator/naming"
)

// ResolveOptions describes one lookup made from the command line
type ResolveOptions struct {
	Root       string
	ConfigFile string
	Naming     string
	SourceFile string
	TestName   string
	Named      string // explicit file name, bypasses the naming convention
	Default    bool   // resolve the configured default file
	Settings   map[string]string
	Verbose    bool
	Logger     *log.Logger
}

// Resolve sets up a Lokator the way a test suite would and resolves a single
// file. Extracted archive entries are left in place for the caller.
func Resolve(fs fileio.FileSystem, opts ResolveOptions) (string, error) {
	lopts := []lokator.Option{
		lokator.WithFileSystem(fs),
		lokator.WithConfigFile(opts.ConfigFile),
		lokator.WithSettings(opts.Settings),
		lokator.WithVerbose(opts.Verbose),
	}
	if opts.Logger != nil {
		lopts = append(lopts, lokator.WithLogger(opts.Logger))
	}
	if opts.Root != "" {
		lopts = append(lopts, lokator.WithRootDirectory(opts.Root))
	}
	if opts.Naming != "" {
		n, err := naming.Parse(opts.Naming)
		if err != nil {
			return "", err
		}
		lopts = append(lopts, lokator.WithNamingStrategy(n))
	}

	source := opts.SourceFile
	if source != "" && !filepath.IsAbs(source) {
		abs, err := filepath.Abs(source)
		if err != nil {
			return "", fmt.Errorf("failed to resolve source file '%s': %w", source, err)
		}
		source = abs
	}

	l := lokator.New(lopts...)
	if err := l.Setup(); err != nil {
		return "", err
	}
	defer l.TearDown()

	d := l.Daten(lokator.Identity{Method: opts.TestName, SourceFile: source})
	switch {
	case opts.Default:
		return d.AsFilePathUsing(lokator.DefaultFile)
	case opts.Named != "":
		return d.AsFilePathNamed(opts.Named)
	case opts.TestName == "":
		return "", fmt.Errorf("a test name, --named or --default is required")
	default:
		return d.AsFilePath()
	}
}

// workingRoot returns root made absolute, or the nearest go.mod ancestor of
// the working directory
func workingRoot(fs fileio.Files, root string) (string, error) {
	if root != "" {
		return filepath.Abs(root)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("cannot get working directory: %w", err)
	}
	found, err := lokator.FindRoot(fs, wd)
	if err != nil {
		return wd, nil
	}
	return found, nil
}
