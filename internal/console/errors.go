package console

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingDependency is returned when a requested shell's backing
	// library is not available.
	ErrMissingDependency = errors.New("console: missing dependency")

	// ErrAllCandidatesExhausted is returned when automatic selection finds
	// no available shell. It also matches ErrMissingDependency.
	ErrAllCandidatesExhausted = fmt.Errorf("%w: no interactive shell is available", ErrMissingDependency)

	// ErrConflictingShells is returned when more than one shell is requested.
	ErrConflictingShells = errors.New("console: --yaegi, --lua and --plain are mutually exclusive")

	// ErrUnknownShell is returned when a requested shell is not a candidate.
	ErrUnknownShell = errors.New("console: unknown shell")
)

// MissingDependencyError names the library a requested shell needs.
type MissingDependencyError struct {
	Shell   string
	Library string
	Feature string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("console: %s is required to %s (binary built without the %s shell)",
		e.Library, e.Feature, e.Shell)
}

// Unwrap makes errors.Is(err, ErrMissingDependency) hold.
func (e *MissingDependencyError) Unwrap() error {
	return ErrMissingDependency
}
