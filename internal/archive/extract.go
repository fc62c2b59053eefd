package archive

import (
	"archive/zip"
	"encoding/hex"
	"path"
	"path/filepath"
	"sort"

	"github.com/geocine/lokator/fileio"
	"lukechampine.com/blake3"
)

// Extractor copies archive entries into a working directory. The target of
// an entry is deterministic: <dir>/<archive fingerprint>/<entry base name>.
type Extractor struct {
	fs        fileio.FileSystem
	dir       string
	extracted map[string]struct{}
}

// NewExtractor creates an extractor rooted at dir
func NewExtractor(fs fileio.FileSystem, dir string) *Extractor {
	return &Extractor{
		fs:        fs,
		dir:       dir,
		extracted: make(map[string]struct{}),
	}
}

// Dir returns the extraction root
func (e *Extractor) Dir() string {
	return e.dir
}

// Target returns where entry of the archive at archivePath is extracted to
func (e *Extractor) Target(archivePath, entryName string) string {
	return filepath.Join(e.dir, Fingerprint([]byte(archivePath))[:16], path.Base(entryName))
}

// Extract writes entry to its target and returns the target path. An existing
// target whose content fingerprint matches the entry is reused as-is, so
// repeated calls within a session never fail on an already extracted file.
func (e *Extractor) Extract(a *Archive, entry *zip.File) (string, error) {
	data, err := a.ReadEntry(entry)
	if err != nil {
		return "", err
	}

	sum := Fingerprint(data)
	target := e.Target(a.Path(), entry.Name)
	if e.fs.FileExists(target) {
		if existing, err := e.fs.ReadAll(target); err == nil && Fingerprint(existing) == sum {
			e.extracted[target] = struct{}{}
			return target, nil
		}
	}

	if err := e.fs.WriteAtomic(target, data, 0o644); err != nil {
		return "", &Error{Archive: a.Path(), Entry: entry.Name, Cause: err}
	}
	e.extracted[target] = struct{}{}
	return target, nil
}

// Extracted lists the files written or reused since the last Reset
func (e *Extractor) Extracted() []string {
	paths := make([]string, 0, len(e.extracted))
	for p := range e.extracted {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Track records paths as extracted so Cleanup removes them too. A rebound
// session uses it to adopt the files of the extractor it replaces.
func (e *Extractor) Track(paths ...string) {
	for _, p := range paths {
		e.extracted[p] = struct{}{}
	}
}

// Cleanup removes every file recorded by Extracted and forgets them
func (e *Extractor) Cleanup() error {
	for _, p := range e.Extracted() {
		if err := e.fs.RemoveAll(p); err != nil {
			return err
		}
	}
	e.Reset()
	return nil
}

// Reset forgets extracted files without touching the disk
func (e *Extractor) Reset() {
	e.extracted = make(map[string]struct{})
}

// Fingerprint returns the BLAKE3 digest of data as a hex string
func Fingerprint(data []byte) string {
	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:])
}
