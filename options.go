package sdk

import (
	"io"
	"log/slog"
	"time"

	"github.com/planforge-ai/sdk/engine"
	"github.com/planforge-ai/sdk/problem"
	"go.opentelemetry.io/otel/trace"
)

// FrameworkOption configures the Framework.
type FrameworkOption func(*frameworkConfig)

// frameworkConfig holds configuration for the Framework instance.
type frameworkConfig struct {
	configPath string
	logger     *slog.Logger
	tracer     trace.Tracer
}

// WithConfig sets the configuration file path for the framework.
// The config file contains framework-level settings like registry endpoints,
// queue addresses, and default solve budgets.
func WithConfig(path string) FrameworkOption {
	return func(c *frameworkConfig) {
		c.configPath = path
	}
}

// WithLogger sets a custom logger for the framework.
// If not provided, a default logger will be created.
func WithLogger(logger *slog.Logger) FrameworkOption {
	return func(c *frameworkConfig) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer for distributed tracing.
// This enables observability across session execution.
func WithTracer(tracer trace.Tracer) FrameworkOption {
	return func(c *frameworkConfig) {
		c.tracer = tracer
	}
}

// SessionOption configures session creation.
type SessionOption func(*sessionConfig)

// sessionConfig holds configuration for creating a session.
type sessionConfig struct {
	name       string
	engineName string
	problem    *problem.Problem
	timeout    time.Duration
	callback   engine.ResultCallback
	metadata   map[string]interface{}
}

// WithSessionName sets the session's human-readable name.
func WithSessionName(name string) SessionOption {
	return func(c *sessionConfig) {
		c.name = name
	}
}

// WithSessionEngine sets the engine that will solve the session's problem.
// The engine must be registered with the framework before the session starts.
func WithSessionEngine(engineName string) SessionOption {
	return func(c *sessionConfig) {
		c.engineName = engineName
	}
}

// WithSessionProblem sets the planning problem for the session.
// Every session requires a problem.
func WithSessionProblem(p *problem.Problem) SessionOption {
	return func(c *sessionConfig) {
		c.problem = p
	}
}

// WithSessionTimeout sets the wall-clock budget forwarded to the engine.
// Zero means no budget; the engine runs until it finishes or is stopped.
func WithSessionTimeout(timeout time.Duration) SessionOption {
	return func(c *sessionConfig) {
		c.timeout = timeout
	}
}

// WithSessionCallback sets a callback that receives intermediate and final
// results as the engine produces them.
func WithSessionCallback(cb engine.ResultCallback) SessionOption {
	return func(c *sessionConfig) {
		c.callback = cb
	}
}

// WithSessionMetadata adds arbitrary metadata to the session.
func WithSessionMetadata(key string, value interface{}) SessionOption {
	return func(c *sessionConfig) {
		if c.metadata == nil {
			c.metadata = make(map[string]interface{})
		}
		c.metadata[key] = value
	}
}

// ListOption configures listing operations.
type ListOption func(*listConfig)

// listConfig holds configuration for listing operations.
type listConfig struct {
	limit  int
	offset int
	status string
}

// WithLimit sets the maximum number of items to return.
func WithLimit(limit int) ListOption {
	return func(c *listConfig) {
		c.limit = limit
	}
}

// WithOffset sets the number of items to skip (for pagination).
func WithOffset(offset int) ListOption {
	return func(c *listConfig) {
		c.offset = offset
	}
}

// WithStatus filters sessions by status.
func WithStatus(status string) ListOption {
	return func(c *listConfig) {
		c.status = status
	}
}

// SolveOption configures a one-shot solve.
type SolveOption func(*solveConfig)

// solveConfig holds configuration for a one-shot solve.
type solveConfig struct {
	timeout  time.Duration
	callback engine.ResultCallback
	output   io.Writer
}

// WithTimeout sets the wall-clock budget for the solve.
func WithTimeout(timeout time.Duration) SolveOption {
	return func(c *solveConfig) {
		c.timeout = timeout
	}
}

// WithCallback sets a callback that receives intermediate and final results.
func WithCallback(cb engine.ResultCallback) SolveOption {
	return func(c *solveConfig) {
		c.callback = cb
	}
}

// WithOutput sets a writer that receives the engine's native output while
// the solve is running.
func WithOutput(w io.Writer) SolveOption {
	return func(c *solveConfig) {
		c.output = w
	}
}
