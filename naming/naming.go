// Package naming derives the expected data-file stem from the identity of a
// test. Strategies are pure: no I/O, same input always yields the same stem.
package naming

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnknownStrategy is returned by Parse for an unrecognised strategy name
var ErrUnknownStrategy = errors.New("unknown naming strategy")

// Strategy maps a test method name and the path of the file that declares
// the test to a file stem.
type Strategy interface {
	Stem(method, sourceFile string) string
}

// Exact uses the given name unchanged. It backs lookups of explicitly named
// files, which must not be rewritten by a test-name convention.
type Exact struct{}

// Stem returns method as-is
func (Exact) Stem(method, _ string) string {
	return method
}

// Simple uses the test name as the stem. Subtest separators become
// underscores. With Qualify set the class name is prepended, which keeps
// stems unique when several test files share an assets directory.
type Simple struct {
	Qualify bool
}

// Stem returns the sanitized method name, optionally class-qualified
func (s Simple) Stem(method, sourceFile string) string {
	stem := Sanitize(method)
	if s.Qualify {
		if class := ClassName(sourceFile); class != "" {
			return class + "_" + stem
		}
	}
	return stem
}

// AssertActArrange follows the MethodUnderTest_Scenario_ExpectedResult
// convention. The scenario part names the data file, so every test that
// exercises the same scenario shares one file.
//
//	TestParse_ValidHeader_Succeeds -> ValidHeader
//	ValidHeader_ShouldSucceed      -> ValidHeader
//	ComputesTotal                  -> ComputesTotal
type AssertActArrange struct{}

// assertion words recognised as the trailing part of a two-part name
var assertionPrefixes = []string{"Should", "Returns", "Throws", "Fails", "Succeeds", "Expect"}

// Stem returns the scenario portion of method
func (AssertActArrange) Stem(method, _ string) string {
	name := trimTestPrefix(Sanitize(method))

	parts := strings.Split(name, "_")
	switch {
	case len(parts) >= 3:
		if scenario := strings.Join(parts[1:len(parts)-1], "_"); strings.Trim(scenario, "_") != "" {
			return scenario
		}
		return name
	case len(parts) == 2 && isAssertion(parts[1]) && parts[0] != "":
		return parts[0]
	default:
		return name
	}
}

func isAssertion(part string) bool {
	for _, prefix := range assertionPrefixes {
		if strings.HasPrefix(part, prefix) {
			return true
		}
	}
	return false
}

// trimTestPrefix removes Go's Test prefix from TestXxx and Test_Xxx names.
// A bare "Test" or a lowercase continuation ("Testing") is left alone.
func trimTestPrefix(name string) string {
	rest, ok := strings.CutPrefix(name, "Test")
	if !ok || rest == "" {
		return name
	}
	if rest[0] == '_' {
		if len(rest) == 1 {
			return name
		}
		return rest[1:]
	}
	if rest[0] >= 'A' && rest[0] <= 'Z' || rest[0] >= '0' && rest[0] <= '9' {
		return rest
	}
	return name
}

// Sanitize turns a test name into something usable as a file stem. Subtest
// names from testing.T use '/' as separator and spaces are rewritten by the
// testing package already, so only the separator needs replacing.
func Sanitize(method string) string {
	return strings.ReplaceAll(method, "/", "_")
}

// ClassName returns the stem of the declaring source file with Go's _test
// suffix removed: ".../order_test.go" -> "order".
func ClassName(sourceFile string) string {
	if sourceFile == "" {
		return ""
	}
	base := filepath.Base(sourceFile)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimSuffix(stem, "_test")
}

// Parse returns the strategy registered under name. The empty name selects
// the default AssertActArrange strategy.
func Parse(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "assert-act-arrange", "aaa":
		return AssertActArrange{}, nil
	case "simple":
		return Simple{}, nil
	case "qualified":
		return Simple{Qualify: true}, nil
	case "exact":
		return Exact{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}
