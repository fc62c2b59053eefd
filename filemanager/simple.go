package filemanager

import (
	"fmt"
	"io"
	"log"
	"path"
	"path/filepath"

	"github.com/geocine/lokator/fileio"
	"github.com/geocine/lokator/internal/archive"
	"github.com/geocine/lokator/naming"
)

// Simple searches the local directory, its archive sibling and the shared
// global directory, in that order
type Simple struct {
	fs        fileio.FileSystem
	logger    *log.Logger
	root      string
	opts      Options
	globalDir string
	extractor *archive.Extractor
	ready     bool
}

// NewSimple creates a Simple strategy on the given file system
func NewSimple(fs fileio.FileSystem) *Simple {
	return &Simple{
		fs:     fs,
		logger: log.New(io.Discard, "", 0),
	}
}

// SetLogger sets the logger used to report archive extraction
func (s *Simple) SetLogger(logger *log.Logger) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s.logger = logger
}

// Setup binds the strategy to a root directory and settings. It may be called
// again to rebind; a failed call leaves the previous binding in place.
func (s *Simple) Setup(rootDirectory string, settings map[string]string) error {
	opts, err := DecodeOptions(settings)
	if err != nil {
		return err
	}

	root, err := filepath.Abs(rootDirectory)
	if err != nil {
		return fmt.Errorf("failed to resolve root directory '%s': %w", rootDirectory, err)
	}

	globalDir := ""
	if opts.GlobalDirectory != "" {
		globalDir = resolveAgainst(root, opts.GlobalDirectory)
	}

	extractDir := opts.ExtractDirectory
	if extractDir == "" {
		extractDir = s.fs.TempDir("lokator")
	} else {
		extractDir = resolveAgainst(root, extractDir)
	}

	s.root = root
	s.opts = opts
	s.globalDir = globalDir
	extractor := archive.NewExtractor(s.fs, filepath.Clean(extractDir))
	if s.extractor != nil {
		extractor.Track(s.extractor.Extracted()...)
	}
	s.extractor = extractor
	s.ready = true
	return nil
}

// TearDown ends the session. Extracted files stay on disk for inspection
// unless cleanup-extracted is set.
func (s *Simple) TearDown() error {
	if !s.ready {
		return nil
	}
	s.ready = false

	if s.opts.CleanupExtracted {
		return s.extractor.Cleanup()
	}
	s.extractor.Reset()
	return nil
}

// Root returns the bound root directory
func (s *Simple) Root() string {
	return s.root
}

// GlobalDirectory returns the shared directory, or "" when none is configured
func (s *Simple) GlobalDirectory() string {
	return s.globalDir
}

// ExtractDirectory returns where archive entries are extracted to
func (s *Simple) ExtractDirectory() string {
	if s.extractor == nil {
		return ""
	}
	return s.extractor.Dir()
}

// LocalDirectory returns the assets directory of the test declared in
// sourceFile. Relative source paths are taken relative to the root.
func (s *Simple) LocalDirectory(sourceFile string) string {
	source := resolveAgainst(s.root, sourceFile)
	assets := s.opts.AssetsDirectory
	if assets == "" {
		assets = DefaultAssetsDirectory
	}
	return filepath.Join(filepath.Dir(source), assets, naming.ClassName(source))
}

// DefaultDirectory is the local directory used for default-file lookups,
// which carry no test identity: <root>/<assets>
func (s *Simple) DefaultDirectory() string {
	return filepath.Join(s.root, s.opts.AssetsDirectory)
}

// GetFilePath resolves the file for fileName as seen through the naming
// strategy n. It returns "" when no location holds a match.
func (s *Simple) GetFilePath(n naming.Strategy, fileName, sourceFile string) (string, error) {
	if !s.ready {
		return "", ErrNotSetup
	}
	if n == nil {
		return "", ErrNilNamingStrategy
	}

	name := n.Stem(fileName, sourceFile)
	if name == "" {
		return "", nil
	}
	return s.search(name, s.LocalDirectory(sourceFile))
}

// GetDefaultFilePath resolves defaultFileName without any naming convention
func (s *Simple) GetDefaultFilePath(defaultFileName string) (string, error) {
	if !s.ready {
		return "", ErrNotSetup
	}
	if defaultFileName == "" {
		return "", nil
	}
	return s.search(defaultFileName, s.DefaultDirectory())
}

func (s *Simple) search(name, localDir string) (string, error) {
	locations := []string{localDir}
	if s.globalDir != "" && s.globalDir != localDir {
		locations = append(locations, s.globalDir)
	}

	for _, dir := range locations {
		found, err := s.fromDirectory(dir, name)
		if err != nil || found != "" {
			return found, err
		}

		found, err = s.fromArchive(dir+archive.Extension, filepath.Base(dir), name)
		if err != nil || found != "" {
			return found, err
		}
	}

	return "", nil
}

func (s *Simple) fromDirectory(dir, name string) (string, error) {
	if !s.fs.DirectoryExists(dir) {
		return "", nil
	}

	files, err := s.fs.ListFiles(dir)
	if err != nil {
		return "", err
	}

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}

	hits := Match(names, name)
	switch len(hits) {
	case 0:
		return "", nil
	case 1:
		return files[hits[0]], nil
	default:
		candidates := make([]string, len(hits))
		for i, h := range hits {
			candidates[i] = names[h]
		}
		return "", &AmbiguousMatchError{Location: dir, Name: name, Candidates: candidates}
	}
}

// fromArchive looks for name among the top-level entries of the archive and
// the entries of a folder carrying the archived directory's name
func (s *Simple) fromArchive(archivePath, folder, name string) (string, error) {
	if !s.fs.FileExists(archivePath) {
		return "", nil
	}

	a, err := archive.Open(s.fs, archivePath)
	if err != nil {
		return "", err
	}
	defer a.Close()

	entries := a.EntriesIn("")
	if folder != "" && folder != "." {
		entries = append(entries, a.EntriesIn(folder)...)
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = path.Base(e.Name)
	}

	hits := Match(names, name)
	switch len(hits) {
	case 0:
		return "", nil
	case 1:
		target, err := s.extractor.Extract(a, entries[hits[0]])
		if err != nil {
			return "", err
		}
		s.logger.Printf("extracted %s from %s", entries[hits[0]].Name, archivePath)
		return target, nil
	default:
		candidates := make([]string, len(hits))
		for i, h := range hits {
			candidates[i] = entries[h].Name
		}
		return "", &AmbiguousMatchError{Location: archivePath, Name: name, Candidates: candidates}
	}
}

func resolveAgainst(root, p string) string {
	if filepath.IsAbs(p) || root == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}
