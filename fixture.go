package lokator

import (
	"testing"

	"github.com/geocine/lokator/fileio"
)

// Fixture is a Daten bound to a running test. Every failure, including a
// missing file or a Lokator that was never set up, fails the test.
// Streams and readers are closed when the test ends.
type Fixture struct {
	tb    testing.TB
	daten *Daten
}

// Daten returns the underlying error-returning accessor
func (f *Fixture) Daten() *Daten {
	return f.daten
}

func (f *Fixture) check(err error) bool {
	f.tb.Helper()
	if err != nil {
		f.tb.Fatalf("lokator: %v", err)
		return false
	}
	return true
}

func (f *Fixture) closeLater(c interface{ Close() error }) {
	f.tb.Cleanup(func() { _ = c.Close() })
}

// AsFilePath returns the path of the test's data file
func (f *Fixture) AsFilePath() string {
	f.tb.Helper()
	p, err := f.daten.AsFilePath()
	f.check(err)
	return p
}

// AsFilePathNamed returns the path of fileName
func (f *Fixture) AsFilePathNamed(fileName string) string {
	f.tb.Helper()
	p, err := f.daten.AsFilePathNamed(fileName)
	f.check(err)
	return p
}

// AsFilePathUsing returns the path of a registered file
func (f *Fixture) AsFilePathUsing(u Using) string {
	f.tb.Helper()
	p, err := f.daten.AsFilePathUsing(u)
	f.check(err)
	return p
}

// AsString returns the content of the test's data file
func (f *Fixture) AsString() string {
	f.tb.Helper()
	s, err := f.daten.AsString()
	f.check(err)
	return s
}

// AsStringNamed returns the content of fileName
func (f *Fixture) AsStringNamed(fileName string) string {
	f.tb.Helper()
	s, err := f.daten.AsStringNamed(fileName)
	f.check(err)
	return s
}

// AsStringUsing returns the content of a registered file
func (f *Fixture) AsStringUsing(u Using) string {
	f.tb.Helper()
	s, err := f.daten.AsStringUsing(u)
	f.check(err)
	return s
}

// AsBytes returns the content of the test's data file
func (f *Fixture) AsBytes() []byte {
	f.tb.Helper()
	b, err := f.daten.AsBytes()
	f.check(err)
	return b
}

// AsBytesNamed returns the content of fileName
func (f *Fixture) AsBytesNamed(fileName string) []byte {
	f.tb.Helper()
	b, err := f.daten.AsBytesNamed(fileName)
	f.check(err)
	return b
}

// AsBytesUsing returns the content of a registered file
func (f *Fixture) AsBytesUsing(u Using) []byte {
	f.tb.Helper()
	b, err := f.daten.AsBytesUsing(u)
	f.check(err)
	return b
}

// AsStream opens the test's data file
func (f *Fixture) AsStream() fileio.File {
	f.tb.Helper()
	s, err := f.daten.AsStream()
	if f.check(err) {
		f.closeLater(s)
	}
	return s
}

// AsStreamNamed opens fileName
func (f *Fixture) AsStreamNamed(fileName string) fileio.File {
	f.tb.Helper()
	s, err := f.daten.AsStreamNamed(fileName)
	if f.check(err) {
		f.closeLater(s)
	}
	return s
}

// AsStreamUsing opens a registered file
func (f *Fixture) AsStreamUsing(u Using) fileio.File {
	f.tb.Helper()
	s, err := f.daten.AsStreamUsing(u)
	if f.check(err) {
		f.closeLater(s)
	}
	return s
}

// AsReader opens the test's data file for buffered reading
func (f *Fixture) AsReader() *Reader {
	f.tb.Helper()
	r, err := f.daten.AsReader()
	if f.check(err) {
		f.closeLater(r)
	}
	return r
}

// AsReaderNamed opens fileName for buffered reading
func (f *Fixture) AsReaderNamed(fileName string) *Reader {
	f.tb.Helper()
	r, err := f.daten.AsReaderNamed(fileName)
	if f.check(err) {
		f.closeLater(r)
	}
	return r
}

// AsReaderUsing opens a registered file for buffered reading
func (f *Fixture) AsReaderUsing(u Using) *Reader {
	f.tb.Helper()
	r, err := f.daten.AsReaderUsing(u)
	if f.check(err) {
		f.closeLater(r)
	}
	return r
}
