package lokator

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/geocine/lokator/fileio"
)

// Using selects a file registered with the Lokator rather than one derived
// from the test name
type Using int

const (
	// DefaultFile is the file set with WithDefaultFile or default-file
	DefaultFile Using = iota
)

func (u Using) String() string {
	switch u {
	case DefaultFile:
		return "default-file"
	default:
		return fmt.Sprintf("Using(%d)", int(u))
	}
}

// ErrNoDefaultFile is returned by the Using(DefaultFile) accessors when no
// default file is configured
var ErrNoDefaultFile = errors.New("no default file configured")

// Reader is a buffered reader over a data file. Close releases the file.
type Reader struct {
	*bufio.Reader
	io.Closer
}

// Daten gives access to the data file of one test. A file name derived from
// the test name is searched by the plain accessors, an explicit file name by
// the Named ones and a registered file by the Using ones.
type Daten struct {
	lokator *Lokator
	id      Identity
}

type lookup struct {
	name       string
	exact      bool
	registered bool
}

// Identity returns the test the accessor resolves for
func (d *Daten) Identity() Identity {
	return d.id
}

func (d *Daten) byTest() lookup {
	return lookup{name: d.id.Method}
}

func (d *Daten) byName(fileName string) lookup {
	return lookup{name: fileName, exact: true}
}

func (d *Daten) byUsing(u Using) (lookup, error) {
	switch u {
	case DefaultFile:
		return lookup{registered: true}, nil
	default:
		return lookup{}, fmt.Errorf("%w: %s", ErrUnknownUsing, u)
	}
}

// resolve turns a lookup into the path of an existing file. Misses become a
// NotFoundError before anything is read.
func (d *Daten) resolve(q lookup) (string, error) {
	c := d.lokator.coordinator
	if c == nil || !c.IsSetup() {
		return "", ErrNotInitialized
	}

	var (
		p   string
		err error
	)
	switch {
	case q.registered:
		if c.DefaultFile() == "" {
			return "", ErrNoDefaultFile
		}
		p, err = c.GetDefaultFilePath()
	case q.exact:
		p, err = c.GetNamedFilePath(q.name, d.id.SourceFile)
	default:
		p, err = c.GetFilePath(q.name, d.id.SourceFile)
	}
	if err != nil {
		return "", err
	}

	if p == "" {
		var dir, stem string
		if q.registered {
			dir, stem = c.Expected(c.DefaultFile(), "", true)
		} else {
			dir, stem = c.Expected(q.name, d.id.SourceFile, q.exact)
		}
		return "", &NotFoundError{Directory: dir, File: stem}
	}
	if !d.lokator.fs.FileExists(p) {
		return "", &NotFoundError{Directory: filepath.Dir(p), File: filepath.Base(p)}
	}

	d.lokator.logf("source data has been selected. FileName=`%s`", filepath.Base(p))
	return p, nil
}

func (d *Daten) text(q lookup) (string, error) {
	p, err := d.resolve(q)
	if err != nil {
		return "", err
	}
	return d.lokator.fs.ReadAllText(p)
}

func (d *Daten) bytes(q lookup) ([]byte, error) {
	p, err := d.resolve(q)
	if err != nil {
		return nil, err
	}
	return d.lokator.fs.ReadAll(p)
}

func (d *Daten) stream(q lookup) (fileio.File, error) {
	p, err := d.resolve(q)
	if err != nil {
		return nil, err
	}
	return d.lokator.fs.OpenRead(p)
}

func (d *Daten) reader(q lookup) (*Reader, error) {
	f, err := d.stream(q)
	if err != nil {
		return nil, err
	}
	return &Reader{Reader: bufio.NewReader(f), Closer: f}, nil
}

// AsFilePath returns the path of the test's data file
func (d *Daten) AsFilePath() (string, error) {
	return d.resolve(d.byTest())
}

// AsFilePathNamed returns the path of fileName
func (d *Daten) AsFilePathNamed(fileName string) (string, error) {
	return d.resolve(d.byName(fileName))
}

// AsFilePathUsing returns the path of a registered file
func (d *Daten) AsFilePathUsing(u Using) (string, error) {
	q, err := d.byUsing(u)
	if err != nil {
		return "", err
	}
	return d.resolve(q)
}

// AsString returns the content of the test's data file
func (d *Daten) AsString() (string, error) {
	return d.text(d.byTest())
}

// AsStringNamed returns the content of fileName
func (d *Daten) AsStringNamed(fileName string) (string, error) {
	return d.text(d.byName(fileName))
}

// AsStringUsing returns the content of a registered file
func (d *Daten) AsStringUsing(u Using) (string, error) {
	q, err := d.byUsing(u)
	if err != nil {
		return "", err
	}
	return d.text(q)
}

// AsBytes returns the content of the test's data file
func (d *Daten) AsBytes() ([]byte, error) {
	return d.bytes(d.byTest())
}

// AsBytesNamed returns the content of fileName
func (d *Daten) AsBytesNamed(fileName string) ([]byte, error) {
	return d.bytes(d.byName(fileName))
}

// AsBytesUsing returns the content of a registered file
func (d *Daten) AsBytesUsing(u Using) ([]byte, error) {
	q, err := d.byUsing(u)
	if err != nil {
		return nil, err
	}
	return d.bytes(q)
}

// AsStream opens the test's data file. The caller closes it.
func (d *Daten) AsStream() (fileio.File, error) {
	return d.stream(d.byTest())
}

// AsStreamNamed opens fileName
func (d *Daten) AsStreamNamed(fileName string) (fileio.File, error) {
	return d.stream(d.byName(fileName))
}

// AsStreamUsing opens a registered file
func (d *Daten) AsStreamUsing(u Using) (fileio.File, error) {
	q, err := d.byUsing(u)
	if err != nil {
		return nil, err
	}
	return d.stream(q)
}

// AsReader opens the test's data file for buffered reading. The caller
// closes it.
func (d *Daten) AsReader() (*Reader, error) {
	return d.reader(d.byTest())
}

// AsReaderNamed opens fileName for buffered reading
func (d *Daten) AsReaderNamed(fileName string) (*Reader, error) {
	return d.reader(d.byName(fileName))
}

// AsReaderUsing opens a registered file for buffered reading
func (d *Daten) AsReaderUsing(u Using) (*Reader, error) {
	q, err := d.byUsing(u)
	if err != nil {
		return nil, err
	}
	return d.reader(q)
}
