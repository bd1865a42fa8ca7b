package nextflap

import (
	"fmt"

	sdk "github.com/planforge-ai/sdk"
)

// InstallScript is the repository-relative script that builds and installs
// the native NextFLAP binary.
const InstallScript = "scripts/install-nextflap.sh"

// DependencyError indicates the external NextFLAP implementation could not be
// resolved. It carries the underlying resolution failure and a concrete
// remediation command.
//
// DependencyError matches sdk.ErrDependencyMissing via errors.Is.
type DependencyError struct {
	// Cause is the underlying resolution failure.
	Cause error

	// Remediation is the command that installs the missing implementation.
	Remediation string
}

func newDependencyError(cause error) *DependencyError {
	return &DependencyError{
		Cause:       cause,
		Remediation: "bash " + InstallScript,
	}
}

// Error returns the resolution failure together with the install command and
// the reason installation is nontrivial.
func (e *DependencyError) Error() string {
	return fmt.Sprintf(
		"NextFLAP implementation not found: %v\n\n"+
			"To install NextFLAP:\n"+
			"   %s\n\n"+
			"Note: building NextFLAP requires system dependencies (g++, libz3-dev).",
		e.Cause, e.Remediation)
}

// Unwrap returns the underlying resolution failure.
func (e *DependencyError) Unwrap() error {
	return e.Cause
}

// Is reports a match for sdk.ErrDependencyMissing, so callers can detect the
// missing-installation case without importing this package's error type.
func (e *DependencyError) Is(target error) bool {
	return target == sdk.ErrDependencyMissing
}
