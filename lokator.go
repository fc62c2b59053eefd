// Package lokator finds the data file a test should consume.
//
// A test suite builds one Lokator, sets it up in TestMain and tears it down
// when the suite ends:
//
//	var dl = lokator.New()
//
//	func TestMain(m *testing.M) {
//		if err := dl.Setup(); err != nil {
//			log.Fatal(err)
//		}
//		code := m.Run()
//		dl.TearDown()
//		os.Exit(code)
//	}
//
//	func TestParse_ValidHeader_Succeeds(t *testing.T) {
//		input := dl.For(t).AsString() // testdata/<file>/ValidHeader.*
//		...
//	}
//
// Files are looked up beside the test source in testdata/<class name>, then
// in a zip archive of that directory, then in the shared global directory.
package lokator

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/geocine/lokator/fileio"
	"github.com/geocine/lokator/filemanager"
	"github.com/geocine/lokator/internal/config"
	"github.com/geocine/lokator/internal/coordinator"
	"github.com/geocine/lokator/naming"
)

// Option configures a Lokator
type Option func(*Lokator)

// WithNamingStrategy sets the naming convention; it takes precedence over
// the configured one
func WithNamingStrategy(n naming.Strategy) Option {
	return func(l *Lokator) { l.naming = n }
}

// WithFileManager replaces the default file management strategy
func WithFileManager(fm filemanager.Strategy) Option {
	return func(l *Lokator) { l.fileManager = fm }
}

// WithDefaultFile sets the file served by the Using(DefaultFile) accessors
func WithDefaultFile(name string) Option {
	return func(l *Lokator) {
		l.defaultFile = name
		l.defaultFileSet = true
	}
}

// WithRootDirectory sets the directory relative settings are resolved
// against. Defaults to the nearest ancestor holding go.mod.
func WithRootDirectory(dir string) Option {
	return func(l *Lokator) { l.root = dir }
}

// WithSettings adds file manager settings. They override every other source.
func WithSettings(settings map[string]string) Option {
	return func(l *Lokator) {
		for k, v := range settings {
			l.settings[k] = v
		}
	}
}

// WithConfigFile reads configuration from path instead of looking for
// lokator.toml or lokator.yaml in the root directory
func WithConfigFile(path string) Option {
	return func(l *Lokator) { l.configFile = path }
}

// WithFileSystem swaps the file system, e.g. for fileio.NewMemory()
func WithFileSystem(fs fileio.FileSystem) Option {
	return func(l *Lokator) { l.fs = fs }
}

// WithLogger sets where selected files are reported
func WithLogger(logger *log.Logger) Option {
	return func(l *Lokator) { l.logger = logger }
}

// WithVerbose reports every selected file
func WithVerbose(verbose bool) Option {
	return func(l *Lokator) { l.verbose = verbose }
}

// Lokator holds the strategies, default file and settings of one test suite
type Lokator struct {
	fs             fileio.FileSystem
	naming         naming.Strategy
	fileManager    filemanager.Strategy
	defaultFile    string
	defaultFileSet bool
	root           string
	settings       map[string]string
	configFile     string
	logger         *log.Logger
	verbose        bool

	coordinator *coordinator.Coordinator
}

// New creates a Lokator. Call Setup before resolving files.
func New(opts ...Option) *Lokator {
	l := &Lokator{
		fs:       fileio.NewOS(),
		settings: make(map[string]string),
		logger:   log.New(os.Stderr, "lokator: ", 0),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Setup loads configuration and binds the strategies. Configuration is read
// from the config file, the .env file, LOKATOR_ environment variables and
// the explicit settings, later sources winning. Setup may be called again
// to rebind; on failure the previous binding stays in effect.
func (l *Lokator) Setup() error {
	root, err := l.rootDirectory()
	if err != nil {
		return err
	}

	cfg, err := config.Load(l.fs, root, l.configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.Merge(l.settings)

	namingStrategy := l.naming
	if namingStrategy == nil {
		namingStrategy, err = naming.Parse(cfg.Naming)
		if err != nil {
			return err
		}
	}

	defaultFile := cfg.DefaultFile
	if l.defaultFileSet {
		defaultFile = l.defaultFile
	}

	verbose := l.verbose || cfg.Verbose

	fm := l.fileManager
	if fm == nil {
		fm = filemanager.NewSimple(l.fs)
	}
	if s, ok := fm.(*filemanager.Simple); ok && verbose {
		s.SetLogger(l.logger)
	}

	c := coordinator.New(namingStrategy, fm, cfg.SettingsMap(), defaultFile, root)
	if err := c.Setup(); err != nil {
		return err
	}

	l.coordinator = c
	l.fileManager = fm
	l.verbose = verbose
	return nil
}

// TearDown ends the session started by Setup
func (l *Lokator) TearDown() error {
	if l.coordinator == nil {
		return nil
	}
	return l.coordinator.TearDown()
}

// IsSetup reports whether files can be resolved
func (l *Lokator) IsSetup() bool {
	return l.coordinator != nil && l.coordinator.IsSetup()
}

// Root returns the root directory; it is resolved by Setup when not given
func (l *Lokator) Root() string {
	return l.root
}

// Daten returns the data accessor for the test identified by id
func (l *Lokator) Daten(id Identity) *Daten {
	return &Daten{lokator: l, id: id}
}

// For returns the data accessor for the calling test. Failures are
// reported through tb.
func (l *Lokator) For(tb testing.TB) *Fixture {
	tb.Helper()
	return &Fixture{tb: tb, daten: l.Daten(callerAt(tb, 2))}
}

func (l *Lokator) rootDirectory() (string, error) {
	if l.root != "" {
		abs, err := filepath.Abs(l.root)
		if err != nil {
			return "", fmt.Errorf("failed to resolve root directory '%s': %w", l.root, err)
		}
		l.root = abs
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("cannot get working directory: %w", err)
	}
	root, err := FindRoot(l.fs, wd)
	if errors.Is(err, ErrRootNotFound) {
		root = wd
	} else if err != nil {
		return "", err
	}
	l.root = root
	return root, nil
}

// FindRoot walks up from dir to the nearest directory containing go.mod
func FindRoot(files fileio.Files, dir string) (string, error) {
	for {
		if files.FileExists(filepath.Join(dir, "go.mod")) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrRootNotFound
		}
		dir = parent
	}
}

func (l *Lokator) logf(format string, args ...interface{}) {
	if !l.verbose || l.logger == nil {
		return
	}
	l.logger.Printf(format, args...)
}
