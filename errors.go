package lokator

import (
	"errors"
	"fmt"

	"github.com/geocine/lokator/internal/coordinator"
)

var (
	// ErrNotInitialized is returned when files are requested outside a
	// Setup/TearDown session
	ErrNotInitialized = coordinator.ErrNotInitialized

	ErrNotFound     = errors.New("data file not found")
	ErrRootNotFound = errors.New("could not find root directory (no go.mod found)")
	ErrUnknownUsing = errors.New("unknown registered file")
)

// NotFoundError reports a miss: the directory searched first and the file
// stem that was expected there
type NotFoundError struct {
	Directory string
	File      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unable to find the requested input file. Directory=`%s`, File=`%s`", e.Directory, e.File)
}

// Is makes errors.Is(err, ErrNotFound) match
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
