package testhelpers

import (
	"path/filepath"
	"runtime"
)

// RepoRoot returns the absolute path to the repository root
func RepoRoot() string {
	// this file lives at <repo>/test/helpers.go
	_, file, _, _ := runtime.Caller(0)
	testDir := filepath.Dir(file)
	return filepath.Dir(testDir)
}

// IntegrationData joins under test/integration/testdata/...
func IntegrationData(parts ...string) string {
	base := []string{RepoRoot(), "test", "integration", "testdata"}
	return filepath.Join(append(base, parts...)...)
}

// SharedPath builds a path under the global directory used by the
// integration suite
func SharedPath(parts ...string) string {
	base := []string{"shared"}
	return IntegrationData(append(base, parts...)...)
}
