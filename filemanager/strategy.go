// Package filemanager resolves the data file a test should consume.
//
// Search order, first match wins:
//  1. the test's local directory: <dir of source file>/<assets>/<class name>
//  2. a zip archive standing in for that directory: <local directory>.zip
//  3. the shared global directory from the settings, then <global>.zip
//
// A miss is not an error: the strategy returns an empty path and leaves it to
// the caller to report the missing file.
package filemanager

import (
	"errors"
	"fmt"
	"strings"

	"github.com/geocine/lokator/naming"
)

// Settings keys understood by Simple
const (
	KeyGlobalDirectory  = "global-directory"
	KeyAssetsDirectory  = "assets-directory"
	KeyExtractDirectory = "extract-directory"
	KeyCleanupExtracted = "cleanup-extracted"
)

// DefaultAssetsDirectory is the subfolder beside a test's source file that
// holds its data. The go tool ignores directories with this name.
const DefaultAssetsDirectory = "testdata"

var (
	ErrNotSetup          = errors.New("file manager has not been set up")
	ErrNilNamingStrategy = errors.New("naming strategy is nil")
)

// Strategy locates data files for tests
type Strategy interface {
	Setup(rootDirectory string, settings map[string]string) error
	TearDown() error
	GetFilePath(n naming.Strategy, fileName, sourceFile string) (string, error)
	GetDefaultFilePath(defaultFileName string) (string, error)
}

// AmbiguousMatchError is returned when more than one file in a single
// location matches the requested name under different extensions
type AmbiguousMatchError struct {
	Location   string
	Name       string
	Candidates []string
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("ambiguous match for '%s' in %s: %s", e.Name, e.Location, strings.Join(e.Candidates, ", "))
}

// Match returns the indexes of names that satisfy the lookup of name. An
// exact file name match takes precedence over stem matches.
func Match(names []string, name string) []int {
	var exact, stems []int
	for i, candidate := range names {
		if candidate == name {
			exact = append(exact, i)
			continue
		}
		if Stem(candidate) == name {
			stems = append(stems, i)
		}
	}
	if len(exact) > 0 {
		return exact
	}
	return stems
}

// Stem strips the last extension. Dotfiles keep their name.
func Stem(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return name
	}
	return name[:i]
}
