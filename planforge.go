package sdk

import (
	"context"
	"log/slog"
	"os"

	"github.com/planforge-ai/sdk/engine"
	"github.com/planforge-ai/sdk/problem"
)

// NewFramework creates a new PlanForge framework instance.
// The framework provides the main SDK interface for session management and
// engine registry access.
//
// Example:
//
//	framework, err := sdk.NewFramework(
//	    sdk.WithLogger(logger),
//	    sdk.WithConfig("/path/to/config.yaml"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer framework.Shutdown(context.Background())
func NewFramework(opts ...FrameworkOption) (Framework, error) {
	cfg := &frameworkConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	// Create default logger if not provided
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	f := &defaultFramework{
		logger:     cfg.logger,
		tracer:     cfg.tracer,
		configPath: cfg.configPath,
		engines:    newEngineRegistry(cfg.logger),
		sessions:   make(map[string]*Session),
		cancels:    make(map[string]context.CancelFunc),
	}

	return f, nil
}

// SolveOnce runs a single solve against an engine without creating a session.
// It blocks until the engine finishes and returns the engine's result.
//
// Example:
//
//	result, err := sdk.SolveOnce(ctx, planner, prob,
//	    sdk.WithTimeout(5*time.Minute),
//	    sdk.WithOutput(os.Stderr),
//	)
func SolveOnce(ctx context.Context, e engine.Engine, prob *problem.Problem, opts ...SolveOption) (*engine.PlanGenerationResult, error) {
	cfg := &solveConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return e.Solve(ctx, engine.SolveRequest{
		Problem:  prob,
		Timeout:  cfg.timeout,
		Callback: cfg.callback,
		Output:   cfg.output,
	})
}
