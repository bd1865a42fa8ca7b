package sdk

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Sentinel errors for common SDK error conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrEngineNotFound indicates the requested engine was not found in the registry.
	ErrEngineNotFound = errors.New("engine not found")

	// ErrSessionNotFound indicates the requested planning session does not exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrDependencyMissing indicates the external planner implementation backing
	// an engine adapter could not be resolved. The wrapping error carries the
	// underlying cause and a remediation command.
	ErrDependencyMissing = errors.New("engine dependency missing")

	// ErrEngineNotInitialized indicates an execution method was invoked on an
	// engine adapter whose construction never completed successfully, or that
	// was already destroyed. This signals a programming error, not a missing
	// installation.
	ErrEngineNotInitialized = errors.New("engine not initialized")

	// ErrInvalidConfig indicates the provided configuration is invalid or incomplete.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnsupportedProblem indicates the problem uses modeling features outside
	// the engine's supported kind.
	ErrUnsupportedProblem = errors.New("problem kind not supported by engine")
)

// Error kinds categorize errors by their type.
const (
	// KindNotFound represents errors where a resource was not found.
	KindNotFound = "not_found"

	// KindValidation represents errors related to input validation.
	KindValidation = "validation"

	// KindExecution represents errors that occur during solve or validate execution.
	KindExecution = "execution"

	// KindConfiguration represents errors related to configuration.
	KindConfiguration = "configuration"

	// KindDependency represents errors where an external planner implementation
	// cannot be resolved.
	KindDependency = "dependency"

	// KindNotInitialized represents misuse errors where an execution method is
	// called on an adapter that is not in the ready state.
	KindNotInitialized = "not_initialized"

	// KindTimeout represents errors related to operation timeouts.
	KindTimeout = "timeout"

	// KindNetwork represents errors related to network operations.
	KindNetwork = "network"

	// KindInternal represents internal SDK errors.
	KindInternal = "internal"
)

// SDKError is a structured error type that wraps underlying errors with
// additional context about the operation that failed and the category of error.
//
// SDKError implements the error interface and supports error unwrapping,
// making it compatible with errors.Is() and errors.As().
//
// Example usage:
//
//	err := &SDKError{
//		Op:   "Planner.Solve",
//		Kind: KindExecution,
//		Err:  solveErr,
//	}
type SDKError struct {
	// Op is the operation that failed (e.g., "Planner.Solve", "Registry.Get").
	Op string

	// Kind categorizes the error (e.g., KindNotFound, KindDependency).
	Kind string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional context about the error (optional).
	// This can include engine names, session IDs, or other debugging information.
	Context map[string]any
}

// Error implements the error interface, returning a formatted error message
// that includes the operation, kind, and underlying error.
func (e *SDKError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("sdk: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("sdk: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("sdk: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and errors.As()
// to work correctly with wrapped errors.
func (e *SDKError) Unwrap() error {
	return e.Err
}

// Is implements error matching for SDKError, allowing comparison based on
// the underlying error or the SDKError itself.
func (e *SDKError) Is(target error) bool {
	if target == nil {
		return false
	}

	// Check if target is an SDKError with matching Kind
	if t, ok := target.(*SDKError); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	// Delegate to underlying error
	return errors.Is(e.Err, target)
}

// WithContext returns a new SDKError with the provided context added.
// This is useful for adding debugging information to errors.
//
// Example:
//
//	err = err.WithContext(map[string]any{
//		"engine":     "nextflap",
//		"session_id": session.ID,
//	})
func (e *SDKError) WithContext(ctx map[string]any) *SDKError {
	newErr := *e
	if newErr.Context == nil {
		newErr.Context = make(map[string]any)
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// NewNotFoundError creates a new SDKError with KindNotFound.
func NewNotFoundError(op string, err error) *SDKError {
	return &SDKError{
		Op:   op,
		Kind: KindNotFound,
		Err:  err,
	}
}

// NewValidationError creates a new SDKError with KindValidation.
func NewValidationError(op string, err error) *SDKError {
	return &SDKError{
		Op:   op,
		Kind: KindValidation,
		Err:  err,
	}
}

// NewExecutionError creates a new SDKError with KindExecution.
func NewExecutionError(op string, err error) *SDKError {
	return &SDKError{
		Op:   op,
		Kind: KindExecution,
		Err:  err,
	}
}

// NewConfigurationError creates a new SDKError with KindConfiguration.
func NewConfigurationError(op string, err error) *SDKError {
	return &SDKError{
		Op:   op,
		Kind: KindConfiguration,
		Err:  err,
	}
}

// NewDependencyError creates a new SDKError with KindDependency.
// The underlying error should carry the resolution failure and remediation.
func NewDependencyError(op string, err error) *SDKError {
	return &SDKError{
		Op:   op,
		Kind: KindDependency,
		Err:  err,
	}
}

// NewNotInitializedError creates a new SDKError with KindNotInitialized
// wrapping ErrEngineNotInitialized.
func NewNotInitializedError(op string) *SDKError {
	return &SDKError{
		Op:   op,
		Kind: KindNotInitialized,
		Err:  ErrEngineNotInitialized,
	}
}

// NewTimeoutError creates a new SDKError with KindTimeout.
func NewTimeoutError(op string, err error) *SDKError {
	return &SDKError{
		Op:   op,
		Kind: KindTimeout,
		Err:  err,
	}
}

// NewInternalError creates a new SDKError with KindInternal.
func NewInternalError(op string, err error) *SDKError {
	return &SDKError{
		Op:   op,
		Kind: KindInternal,
		Err:  err,
	}
}

// CloseWithLog attempts to close the provided resource and logs any error
// at warning level. This is intended for use in defer statements to ensure
// cleanup errors are not silently ignored.
//
// The name parameter should describe the resource being closed (e.g., "queue
// client", "registry connection"). If logger is nil, slog.Default() is used.
//
// Example usage:
//
//	defer sdk.CloseWithLog(queueClient, logger, "queue client")
//	defer sdk.CloseWithLog(registryClient, logger, "registry connection")
func CloseWithLog(closer io.Closer, logger *slog.Logger, name string) {
	if closer == nil {
		return
	}

	if logger == nil {
		logger = slog.Default()
	}

	if err := closer.Close(); err != nil {
		logger.Warn("failed to close resource",
			"resource", name,
			"error", err)
	}
}
