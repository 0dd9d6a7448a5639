package mobileconfig

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by a Store when no record exists for the
// requested identifier.
var ErrNotFound = errors.New("not found")

// ExecutionError reports a system command that exited non-zero. Op
// names the operation that failed and Subject carries the path or
// profile identifier it was invoked with.
type ExecutionError struct {
	Op      string
	Subject string
	Status  int
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("failed to %s %s: %s exited with status %d", e.Op, e.Subject, profilesPath, e.Status)
}
