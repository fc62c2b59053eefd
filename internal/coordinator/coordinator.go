// Package coordinator binds a naming strategy and a file-management strategy
// for the lifetime of a test suite and guards resolution behind Setup.
package coordinator

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/geocine/lokator/filemanager"
	"github.com/geocine/lokator/naming"
)

// ErrNotInitialized is returned by every resolution made outside a Setup
// session
var ErrNotInitialized = errors.New("the coordinator has not been initialized. Hint: call Setup()")

// State of a Coordinator
type State int

const (
	Unset State = iota
	Ready
	TornDown
)

func (s State) String() string {
	switch s {
	case Unset:
		return "unset"
	case Ready:
		return "ready"
	case TornDown:
		return "torn down"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Coordinator resolves data files for tests
type Coordinator struct {
	naming      naming.Strategy
	fileManager filemanager.Strategy
	settings    map[string]string
	defaultFile string
	root        string
	state       State
}

// New creates an unset Coordinator
func New(
	namingStrategy naming.Strategy,
	fileManager filemanager.Strategy,
	settings map[string]string,
	defaultFile string,
	rootDirectory string,
) *Coordinator {
	copied := make(map[string]string, len(settings))
	for k, v := range settings {
		copied[k] = v
	}
	return &Coordinator{
		naming:      namingStrategy,
		fileManager: fileManager,
		settings:    copied,
		defaultFile: defaultFile,
		root:        rootDirectory,
	}
}

// State reports the lifecycle state
func (c *Coordinator) State() State {
	return c.state
}

// IsSetup reports whether resolution is currently possible
func (c *Coordinator) IsSetup() bool {
	return c.state == Ready
}

// DefaultFile returns the configured default file name
func (c *Coordinator) DefaultFile() string {
	return c.defaultFile
}

// Setup binds the file manager to the root directory and settings. Calling
// it again rebinds. On failure the coordinator keeps its previous state.
func (c *Coordinator) Setup() error {
	if c.naming == nil || c.fileManager == nil {
		return fmt.Errorf("%w: naming and file management strategies are required", ErrNotInitialized)
	}
	if err := c.fileManager.Setup(c.root, c.settings); err != nil {
		return fmt.Errorf("failed to set up file manager: %w", err)
	}
	c.state = Ready
	return nil
}

// TearDown releases the file manager's session. The strategies stay bound so
// Setup can be called again for the next suite.
func (c *Coordinator) TearDown() error {
	if c.state != Ready {
		return nil
	}
	c.state = TornDown
	return c.fileManager.TearDown()
}

// GetFilePath resolves the data file of the test method declared in
// sourceFile through the bound naming strategy
func (c *Coordinator) GetFilePath(method, sourceFile string) (string, error) {
	if c.state != Ready {
		return "", ErrNotInitialized
	}
	return c.fileManager.GetFilePath(c.naming, method, sourceFile)
}

// GetNamedFilePath resolves an explicitly named file for the test declared in
// sourceFile. The naming convention is bypassed.
func (c *Coordinator) GetNamedFilePath(fileName, sourceFile string) (string, error) {
	if c.state != Ready {
		return "", ErrNotInitialized
	}
	return c.fileManager.GetFilePath(naming.Exact{}, fileName, sourceFile)
}

// GetDefaultFilePath resolves the configured default file
func (c *Coordinator) GetDefaultFilePath() (string, error) {
	if c.state != Ready {
		return "", ErrNotInitialized
	}
	return c.fileManager.GetDefaultFilePath(c.defaultFile)
}

// Expected returns the directory and stem a lookup searched first, for
// reporting misses. exact selects explicit-name lookups; an empty
// sourceFile selects the default-file lookup.
func (c *Coordinator) Expected(name, sourceFile string, exact bool) (directory, stem string) {
	stem = name
	if !exact && c.naming != nil {
		stem = c.naming.Stem(name, sourceFile)
	}

	type locator interface {
		LocalDirectory(sourceFile string) string
		DefaultDirectory() string
	}
	if l, ok := c.fileManager.(locator); ok {
		if sourceFile == "" {
			return l.DefaultDirectory(), stem
		}
		return l.LocalDirectory(sourceFile), stem
	}
	if sourceFile == "" {
		return c.root, stem
	}
	return filepath.Dir(sourceFile), stem
}
