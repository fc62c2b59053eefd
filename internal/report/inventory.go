// Package report lists the test data a project carries: every assets
// directory, the per-test folders and archives below it and the shared
// global directory.
package report

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/geocine/lokator/fileio"
	"github.com/geocine/lokator/filemanager"
	"github.com/geocine/lokator/internal/archive"
)

// Location kinds
const (
	KindDirectory = "directory"
	KindArchive   = "archive"
)

// FileSystem is what a scan needs from the file system
type FileSystem interface {
	fileio.FileSystem
	Walk(root string, fn filepath.WalkFunc) error
}

// Location is one place a file can be resolved from
type Location struct {
	Name      string   `yaml:"name"`
	Kind      string   `yaml:"kind"`
	Path      string   `yaml:"path"`
	Files     []string `yaml:"files"`
	Conflicts []string `yaml:"conflicts,omitempty"`
	Error     string   `yaml:"error,omitempty"`
}

// Inventory is the result of a scan
type Inventory struct {
	Root            string     `yaml:"root"`
	AssetsDirectory string     `yaml:"assets-directory"`
	GlobalDirectory string     `yaml:"global-directory,omitempty"`
	Locations       []Location `yaml:"locations"`
}

// FileCount returns the number of files across all locations
func (inv *Inventory) FileCount() int {
	n := 0
	for _, loc := range inv.Locations {
		n += len(loc.Files)
	}
	return n
}

// HasConflicts reports whether any location holds ambiguous names
func (inv *Inventory) HasConflicts() bool {
	for _, loc := range inv.Locations {
		if len(loc.Conflicts) > 0 {
			return true
		}
	}
	return false
}

// skipped directories, besides those the go tool ignores
var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
}

// Scan walks root for directories named assetsDir and lists what each one
// holds. globalDir, when set, is listed as well.
func Scan(fs FileSystem, root, assetsDir, globalDir string) (*Inventory, error) {
	inv := &Inventory{
		Root:            root,
		AssetsDirectory: assetsDir,
		GlobalDirectory: globalDir,
	}

	var assetDirs []string
	err := fs.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() || p == root {
			return nil
		}
		name := info.Name()
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || skipDirs[name] {
			return filepath.SkipDir
		}
		if globalDir != "" && p == globalDir {
			return filepath.SkipDir
		}
		if name == assetsDir {
			assetDirs = append(assetDirs, p)
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, dir := range assetDirs {
		locs, err := scanAssets(fs, root, dir, globalDir)
		if err != nil {
			return nil, err
		}
		inv.Locations = append(inv.Locations, locs...)
	}

	if globalDir != "" {
		locs, err := scanShared(fs, root, globalDir)
		if err != nil {
			return nil, err
		}
		inv.Locations = append(inv.Locations, locs...)
	}

	return inv, nil
}

// scanAssets lists the loose files of an assets directory, one location per
// class folder and one per archive. The global directory and its archive are
// left to scanShared.
func scanAssets(fs FileSystem, root, dir, globalDir string) ([]Location, error) {
	var locs []Location

	files, err := fs.ListFiles(dir)
	if err != nil {
		return nil, err
	}

	var loose []string
	var archives []string
	for _, f := range files {
		if globalDir != "" && f == globalDir+archive.Extension {
			continue
		}
		if strings.EqualFold(filepath.Ext(f), archive.Extension) {
			archives = append(archives, f)
			continue
		}
		loose = append(loose, filepath.Base(f))
	}
	if len(loose) > 0 {
		locs = append(locs, newLocation(filepath.Base(filepath.Dir(dir)), KindDirectory, rel(root, dir), loose))
	}

	classDirs, err := subdirectories(fs, dir)
	if err != nil {
		return nil, err
	}
	for _, classDir := range classDirs {
		if classDir == globalDir {
			continue
		}
		names, err := baseNames(fs, classDir)
		if err != nil {
			return nil, err
		}
		locs = append(locs, newLocation(filepath.Base(classDir), KindDirectory, rel(root, classDir), names))
	}

	for _, a := range archives {
		locs = append(locs, archiveLocation(fs, root, a))
	}
	return locs, nil
}

// scanShared lists the global directory and its archive sibling
func scanShared(fs FileSystem, root, dir string) ([]Location, error) {
	var locs []Location

	if fs.DirectoryExists(dir) {
		names, err := baseNames(fs, dir)
		if err != nil {
			return nil, err
		}
		locs = append(locs, newLocation("(global)", KindDirectory, rel(root, dir), names))
	}
	if a := dir + archive.Extension; fs.FileExists(a) {
		loc := archiveLocation(fs, root, a)
		loc.Name = "(global)"
		locs = append(locs, loc)
	}
	return locs, nil
}

func archiveLocation(fs FileSystem, root, archivePath string) Location {
	name := strings.TrimSuffix(filepath.Base(archivePath), filepath.Ext(archivePath))

	a, err := archive.Open(fs, archivePath)
	if err != nil {
		return Location{Name: name, Kind: KindArchive, Path: rel(root, archivePath), Error: err.Error()}
	}
	defer a.Close()

	var entries []string
	for _, e := range a.Entries() {
		entries = append(entries, e.Name)
	}
	loc := newLocation(name, KindArchive, rel(root, archivePath), entries)

	// lookups only see the top level and the folder named after the class
	loc.Conflicts = conflicts(a, name)
	return loc
}

func newLocation(name, kind, p string, files []string) Location {
	return Location{
		Name:      name,
		Kind:      kind,
		Path:      p,
		Files:     files,
		Conflicts: stemConflicts(files),
	}
}

func conflicts(a *archive.Archive, folder string) []string {
	var names []string
	for _, e := range append(a.EntriesIn(""), a.EntriesIn(folder)...) {
		names = append(names, path.Base(e.Name))
	}
	return stemConflicts(names)
}

// stemConflicts returns the stems a lookup cannot resolve to a single file.
// A file named exactly like the stem wins, so it is not a conflict.
func stemConflicts(files []string) []string {
	byStem := make(map[string][]string)
	for _, f := range files {
		base := path.Base(filepath.ToSlash(f))
		s := filemanager.Stem(base)
		byStem[s] = append(byStem[s], base)
	}

	var out []string
	for s, names := range byStem {
		hits := filemanager.Match(names, s)
		if len(hits) < 2 {
			continue
		}
		ambiguous := make([]string, 0, len(hits))
		for _, i := range hits {
			ambiguous = append(ambiguous, names[i])
		}
		sort.Strings(ambiguous)
		out = append(out, s+" ("+strings.Join(ambiguous, ", ")+")")
	}
	sort.Strings(out)
	return out
}

func subdirectories(fs FileSystem, dir string) ([]string, error) {
	var dirs []string
	err := fs.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if p == dir || !info.IsDir() {
			return nil
		}
		dirs = append(dirs, p)
		return filepath.SkipDir
	})
	return dirs, err
}

func baseNames(fs FileSystem, dir string) ([]string, error) {
	files, err := fs.ListFiles(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}
	return names, nil
}

func rel(root, p string) string {
	r, err := filepath.Rel(root, p)
	if err != nil {
		return p
	}
	return filepath.ToSlash(r)
}
