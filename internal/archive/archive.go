// Package archive looks up fixture files inside zip archives and extracts
// them to a working directory so they can be opened as ordinary files.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/geocine/lokator/fileio"
)

// Extension is the file extension of archives that stand in for a directory
const Extension = ".zip"

// Error reports a corrupt archive or an unreadable entry
type Error struct {
	Archive string
	Entry   string
	Cause   error
}

func (e *Error) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("archive %s: %v", e.Archive, e.Cause)
	}
	return fmt.Sprintf("archive %s: entry %s: %v", e.Archive, e.Entry, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// Archive is an open zip file
type Archive struct {
	path   string
	file   fileio.File
	reader *zip.Reader
}

// Open opens the archive at path for reading
func Open(files fileio.Files, archivePath string) (*Archive, error) {
	f, err := files.OpenRead(archivePath)
	if err != nil {
		return nil, &Error{Archive: archivePath, Cause: err}
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, &Error{Archive: archivePath, Cause: err}
	}

	reader, err := zip.NewReader(f, info.Size())
	if err != nil {
		_ = f.Close()
		return nil, &Error{Archive: archivePath, Cause: err}
	}

	return &Archive{path: archivePath, file: f, reader: reader}, nil
}

// Path returns the location of the archive on disk
func (a *Archive) Path() string {
	return a.path
}

// Close releases the archive handle
func (a *Archive) Close() error {
	return a.file.Close()
}

// Entries returns the file entries (directories excluded) sorted by name
func (a *Archive) Entries() []*zip.File {
	entries := make([]*zip.File, 0, len(a.reader.File))
	for _, f := range a.reader.File {
		if strings.HasSuffix(f.Name, "/") || f.FileInfo().IsDir() {
			continue
		}
		entries = append(entries, f)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// EntriesIn returns the file entries located directly in folder. The empty
// folder selects the archive's top level.
func (a *Archive) EntriesIn(folder string) []*zip.File {
	want := strings.Trim(folder, "/")
	if want == "" {
		want = "."
	}

	var matched []*zip.File
	for _, f := range a.Entries() {
		if path.Dir(f.Name) == want {
			matched = append(matched, f)
		}
	}
	return matched
}

// ReadEntry reads the full content of an entry. Checksum failures surface
// here as errors wrapping zip.ErrChecksum.
func (a *Archive) ReadEntry(entry *zip.File) ([]byte, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, &Error{Archive: a.path, Entry: entry.Name, Cause: err}
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, &Error{Archive: a.path, Entry: entry.Name, Cause: err}
	}
	return data, nil
}
