// Package fileio provides the file-system capabilities consumed by the fixture
// resolution pipeline. Every operation is a thin pass-through to an afero
// backend so tests can swap the OS file system for an in-memory one.
package fileio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// File is a read handle returned by OpenRead. It supports random access so
// archives can be read without buffering them in memory.
type File interface {
	io.Reader
	io.ReaderAt
	io.Seeker
	io.Closer
	Stat() (os.FileInfo, error)
}

// Directory abstracts directory operations
type Directory interface {
	DirectoryExists(path string) bool
	ListFiles(path string) ([]string, error)
	CreateDirectory(path string) error
	RemoveAll(path string) error
}

// Files abstracts file operations
type Files interface {
	FileExists(path string) bool
	ReadAll(path string) ([]byte, error)
	ReadAllText(path string) (string, error)
	OpenRead(path string) (File, error)
	WriteAtomic(path string, content []byte, perm os.FileMode) error
	TempDir(subPath string) string
}

// FileSystem is the full capability set
type FileSystem interface {
	Directory
	Files
}

// AferoFileSystem implements FileSystem on top of an afero backend
type AferoFileSystem struct {
	fs afero.Afero
}

// New wraps the given afero backend
func New(backend afero.Fs) *AferoFileSystem {
	return &AferoFileSystem{fs: afero.Afero{Fs: backend}}
}

// NewOS returns a file system backed by the operating system
func NewOS() *AferoFileSystem {
	return New(afero.NewOsFs())
}

// NewMemory returns a volatile in-memory file system
func NewMemory() *AferoFileSystem {
	return New(afero.NewMemMapFs())
}

// Backend exposes the underlying afero file system
func (a *AferoFileSystem) Backend() afero.Fs {
	return a.fs.Fs
}

// DirectoryExists checks if a directory exists
func (a *AferoFileSystem) DirectoryExists(path string) bool {
	ok, err := a.fs.DirExists(path)
	return err == nil && ok
}

// ListFiles returns the full paths of the regular files directly inside path,
// sorted by name. Subdirectories are not descended into.
func (a *AferoFileSystem) ListFiles(path string) ([]string, error) {
	entries, err := a.fs.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory '%s': %w", path, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, filepath.Join(path, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// CreateDirectory creates a directory and any missing parents
func (a *AferoFileSystem) CreateDirectory(path string) error {
	if err := a.fs.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", path, err)
	}
	return nil
}

// RemoveAll removes a file or directory tree
func (a *AferoFileSystem) RemoveAll(path string) error {
	if err := a.fs.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove '%s': %w", path, err)
	}
	return nil
}

// FileExists checks if a regular file exists
func (a *AferoFileSystem) FileExists(path string) bool {
	info, err := a.fs.Stat(path)
	return err == nil && !info.IsDir()
}

// ReadAll reads a whole file
func (a *AferoFileSystem) ReadAll(path string) ([]byte, error) {
	data, err := a.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read '%s': %w", path, err)
	}
	return data, nil
}

// ReadAllText reads a whole file into a string
func (a *AferoFileSystem) ReadAllText(path string) (string, error) {
	data, err := a.ReadAll(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// OpenRead opens a file for reading
func (a *AferoFileSystem) OpenRead(path string) (File, error) {
	f, err := a.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open '%s': %w", path, err)
	}
	return f, nil
}

// WriteAtomic writes content to path using the temp file + rename pattern so a
// reader never observes a partially written file. Parent directories are
// created as needed.
func (a *AferoFileSystem) WriteAtomic(path string, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := a.CreateDirectory(dir); err != nil {
		return err
	}

	tmpFile, err := a.fs.TempFile(dir, ".tmp-*")
	if err != nil {
		return &TempFileError{Dir: dir, Cause: err}
	}

	tmpPath := tmpFile.Name()
	needsCleanup := true

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
		}
		if needsCleanup {
			_ = a.fs.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(content); err != nil {
		return &TempWriteError{Path: tmpPath, Cause: err}
	}

	if err := tmpFile.Sync(); err != nil {
		return &TempWriteError{Path: tmpPath, Cause: err}
	}

	// Close before rename (required on some systems)
	if err := tmpFile.Close(); err != nil {
		tmpFile = nil
		return &TempWriteError{Path: tmpPath, Cause: err}
	}
	tmpFile = nil

	if err := a.fs.Rename(tmpPath, path); err != nil {
		return &RenameError{Old: tmpPath, New: path, Cause: err}
	}
	needsCleanup = false

	if err := a.fs.Chmod(path, perm); err != nil {
		return &ChmodError{Path: path, Mode: perm, Cause: err}
	}

	return nil
}

// TempDir returns (and creates) a directory below the backend's temp root
func (a *AferoFileSystem) TempDir(subPath string) string {
	return afero.GetTempDir(a.fs.Fs, subPath)
}

// Walk walks the tree rooted at root in lexical order, calling fn for every
// file and directory
func (a *AferoFileSystem) Walk(root string, fn filepath.WalkFunc) error {
	return a.fs.Walk(root, fn)
}
