package lokator

import (
	"runtime"
	"testing"
)

// Identity names the test a file is resolved for: the test name and the
// path of the source file that declares it
type Identity struct {
	Method     string
	SourceFile string
}

// Caller returns the identity of the test calling it. Subtest names keep
// their '/' separators; naming strategies rewrite them.
func Caller(tb testing.TB) Identity {
	tb.Helper()
	return callerAt(tb, 2)
}

// callerAt reads the source file skip frames above itself
func callerAt(tb testing.TB, skip int) Identity {
	_, file, _, ok := runtime.Caller(skip)
	if !ok {
		file = ""
	}
	return Identity{Method: tb.Name(), SourceFile: file}
}
