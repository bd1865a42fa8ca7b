package sdk

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/planforge-ai/sdk/engine"
	"github.com/planforge-ai/sdk/problem"
	"github.com/planforge-ai/sdk/types"
	"go.opentelemetry.io/otel/trace"
)

// Framework provides the main SDK interface for interacting with the
// PlanForge system. It manages planning sessions, the engine registry, and
// lifecycle operations.
//
// The Framework acts as the central orchestrator, coordinating between:
//   - Engines: planner adapters that solve and validate planning problems
//   - Sessions: individual solve runs with their own problem, engine, and budget
type Framework interface {
	// Session management

	// CreateSession creates a new planning session with the provided
	// configuration. Returns the created session or an error if creation fails.
	CreateSession(ctx context.Context, opts ...SessionOption) (*Session, error)

	// StartSession initiates execution of a session. The session's engine
	// begins solving the session's problem in the background.
	StartSession(ctx context.Context, sessionID string) error

	// StopSession halts execution of a running session.
	// The in-flight solve is cancelled.
	StopSession(ctx context.Context, sessionID string) error

	// GetSession retrieves session details by ID.
	// Returns an error if the session is not found.
	GetSession(ctx context.Context, sessionID string) (*Session, error)

	// ListSessions returns a list of sessions matching the provided options.
	// Supports filtering and pagination.
	ListSessions(ctx context.Context, opts ...ListOption) ([]*Session, error)

	// Registry access

	// Engines returns the engine registry for registering and discovering
	// planner engines.
	Engines() EngineRegistry

	// Lifecycle

	// Start initializes the framework and prepares it for operation.
	// This should be called before using any framework functionality.
	Start(ctx context.Context) error

	// Shutdown gracefully stops the framework and releases resources.
	// Running sessions are cancelled and their engines' results discarded.
	Shutdown(ctx context.Context) error
}

// Session states.
const (
	SessionPending   = "pending"
	SessionRunning   = "running"
	SessionStopped   = "stopped"
	SessionCompleted = "completed"
	SessionFailed    = "failed"
)

// Session represents one solve run executed by the PlanForge framework.
// A session binds a problem to an engine with a wall-clock budget.
type Session struct {
	// ID is the unique identifier for this session.
	ID string `json:"id"`

	// Name is a human-readable name for the session.
	Name string `json:"name"`

	// EngineName identifies the engine solving this session's problem.
	EngineName string `json:"engine_name"`

	// Status indicates the current state of the session.
	// Values: "pending", "running", "stopped", "completed", "failed"
	Status string `json:"status"`

	// Problem is the planning problem to solve.
	Problem *problem.Problem `json:"problem,omitempty"`

	// Result is the engine's final result, set once the session completes.
	Result *engine.PlanGenerationResult `json:"result,omitempty"`

	// Error holds the failure message when Status is "failed".
	Error string `json:"error,omitempty"`

	// CreatedAt is the timestamp when the session was created.
	CreatedAt time.Time `json:"created_at"`

	// StartedAt is the timestamp when the solve began.
	StartedAt *time.Time `json:"started_at,omitempty"`

	// CompletedAt is the timestamp when the session finished.
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Metadata stores additional session-specific information.
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	timeout  time.Duration
	callback engine.ResultCallback
}

// EngineRegistry manages engine registration and discovery.
type EngineRegistry interface {
	// Register adds an engine to the registry.
	// Returns an error if an engine with the same name already exists.
	Register(e engine.Engine) error

	// Get retrieves an engine by name.
	// Returns an error if the engine is not found.
	Get(name string) (engine.Engine, error)

	// List returns descriptors for all registered engines.
	List() []engine.Descriptor

	// Select returns a registered engine whose supported kind covers the
	// given problem kind. Returns an error if no registered engine qualifies.
	Select(kind types.ProblemKind) (engine.Engine, error)

	// Unregister removes an engine from the registry.
	Unregister(name string) error
}

// defaultFramework is the concrete implementation of Framework.
type defaultFramework struct {
	logger     *slog.Logger
	tracer     trace.Tracer
	configPath string
	engines    *engineRegistry
	sessions   map[string]*Session
	cancels    map[string]context.CancelFunc
	sessionsMu sync.RWMutex
	wg         sync.WaitGroup
	started    bool
}

// CreateSession creates a new session with the provided options.
func (f *defaultFramework) CreateSession(ctx context.Context, opts ...SessionOption) (*Session, error) {
	cfg := &sessionConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.problem == nil {
		return nil, NewValidationError("Framework.CreateSession",
			fmt.Errorf("session requires a problem"))
	}
	if cfg.engineName == "" {
		return nil, NewValidationError("Framework.CreateSession",
			fmt.Errorf("session requires an engine name"))
	}

	session := &Session{
		ID:         uuid.New().String(),
		Name:       cfg.name,
		EngineName: cfg.engineName,
		Status:     SessionPending,
		Problem:    cfg.problem,
		CreatedAt:  time.Now(),
		Metadata:   cfg.metadata,
		timeout:    cfg.timeout,
		callback:   cfg.callback,
	}

	f.sessionsMu.Lock()
	f.sessions[session.ID] = session
	f.sessionsMu.Unlock()

	f.logger.Info("session created",
		slog.String("session_id", session.ID),
		slog.String("engine", session.EngineName),
	)

	return session, nil
}

// StartSession starts execution of a session. The solve runs in the
// background; poll GetSession or use a session callback to observe results.
func (f *defaultFramework) StartSession(ctx context.Context, sessionID string) error {
	f.sessionsMu.Lock()
	defer f.sessionsMu.Unlock()

	session, ok := f.sessions[sessionID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	if session.Status != SessionPending {
		return fmt.Errorf("session cannot be started from status: %s", session.Status)
	}

	eng, err := f.engines.Get(session.EngineName)
	if err != nil {
		return err
	}

	if !eng.Supports(session.Problem.Kind) {
		return NewValidationError("Framework.StartSession",
			fmt.Errorf("%w: engine %q does not support problem kind %v",
				ErrUnsupportedProblem, session.EngineName, session.Problem.Kind))
	}

	now := time.Now()
	session.Status = SessionRunning
	session.StartedAt = &now

	solveCtx, cancel := context.WithCancel(context.Background())
	f.cancels[sessionID] = cancel

	f.wg.Add(1)
	go f.runSession(solveCtx, session, eng)

	f.logger.Info("session started",
		slog.String("session_id", sessionID),
	)

	return nil
}

// runSession executes the solve and records the outcome on the session.
func (f *defaultFramework) runSession(ctx context.Context, session *Session, eng engine.Engine) {
	defer f.wg.Done()

	if f.tracer != nil {
		var span trace.Span
		ctx, span = f.tracer.Start(ctx, "session.Solve")
		defer span.End()
	}

	result, err := eng.Solve(ctx, engine.SolveRequest{
		Problem:  session.Problem,
		Timeout:  session.timeout,
		Callback: session.callback,
	})

	f.sessionsMu.Lock()
	defer f.sessionsMu.Unlock()

	delete(f.cancels, session.ID)

	// A stop may have landed while the solve was finishing
	if session.Status != SessionRunning {
		return
	}

	now := time.Now()
	session.CompletedAt = &now
	if err != nil {
		session.Status = SessionFailed
		session.Error = err.Error()
		f.logger.Error("session failed",
			slog.String("session_id", session.ID),
			slog.String("error", err.Error()),
		)
		return
	}

	session.Status = SessionCompleted
	session.Result = result
	f.logger.Info("session completed",
		slog.String("session_id", session.ID),
		slog.String("status", string(result.Status)),
	)
}

// StopSession stops a running session.
func (f *defaultFramework) StopSession(ctx context.Context, sessionID string) error {
	f.sessionsMu.Lock()
	defer f.sessionsMu.Unlock()

	session, ok := f.sessions[sessionID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	if session.Status != SessionRunning {
		return fmt.Errorf("session is not running: %s", session.Status)
	}

	if cancel, ok := f.cancels[sessionID]; ok {
		cancel()
		delete(f.cancels, sessionID)
	}

	now := time.Now()
	session.Status = SessionStopped
	session.CompletedAt = &now

	f.logger.Info("session stopped",
		slog.String("session_id", sessionID),
	)

	return nil
}

// GetSession retrieves a session by ID.
func (f *defaultFramework) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	f.sessionsMu.RLock()
	defer f.sessionsMu.RUnlock()

	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	return session, nil
}

// ListSessions returns a list of sessions.
func (f *defaultFramework) ListSessions(ctx context.Context, opts ...ListOption) ([]*Session, error) {
	cfg := &listConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	f.sessionsMu.RLock()
	defer f.sessionsMu.RUnlock()

	sessions := make([]*Session, 0, len(f.sessions))
	for _, session := range f.sessions {
		if cfg.status != "" && session.Status != cfg.status {
			continue
		}
		sessions = append(sessions, session)
	}

	// Apply offset
	if cfg.offset > 0 {
		if cfg.offset >= len(sessions) {
			return []*Session{}, nil
		}
		sessions = sessions[cfg.offset:]
	}

	// Apply limit
	if cfg.limit > 0 && cfg.limit < len(sessions) {
		sessions = sessions[:cfg.limit]
	}

	return sessions, nil
}

// Engines returns the engine registry.
func (f *defaultFramework) Engines() EngineRegistry {
	return f.engines
}

// Start initializes the framework.
func (f *defaultFramework) Start(ctx context.Context) error {
	if f.started {
		return fmt.Errorf("framework already started")
	}

	f.logger.Info("starting PlanForge framework")
	f.started = true
	return nil
}

// Shutdown gracefully stops the framework.
func (f *defaultFramework) Shutdown(ctx context.Context) error {
	if !f.started {
		return nil
	}

	f.logger.Info("shutting down PlanForge framework")

	// Stop all running sessions
	f.sessionsMu.Lock()
	for id, session := range f.sessions {
		if session.Status == SessionRunning {
			if cancel, ok := f.cancels[id]; ok {
				cancel()
				delete(f.cancels, id)
			}
			now := time.Now()
			session.Status = SessionStopped
			session.CompletedAt = &now
			f.logger.Info("stopped session during shutdown", slog.String("session_id", id))
		}
	}
	f.sessionsMu.Unlock()

	// Wait for in-flight solves to observe cancellation
	done := make(chan struct{})
	go func() {
		f.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	f.started = false
	return nil
}

// engineRegistry is the concrete implementation of EngineRegistry.
type engineRegistry struct {
	logger  *slog.Logger
	engines map[string]engine.Engine
	mu      sync.RWMutex
}

func newEngineRegistry(logger *slog.Logger) *engineRegistry {
	return &engineRegistry{
		logger:  logger,
		engines: make(map[string]engine.Engine),
	}
}

func (r *engineRegistry) Register(e engine.Engine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.engines[e.Name()]; exists {
		return fmt.Errorf("engine already registered: %s", e.Name())
	}

	r.engines[e.Name()] = e
	r.logger.Info("engine registered",
		slog.String("name", e.Name()),
		slog.Int("features", e.SupportedKind().Len()),
	)
	return nil
}

func (r *engineRegistry) Get(name string) (engine.Engine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.engines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEngineNotFound, name)
	}
	return e, nil
}

func (r *engineRegistry) List() []engine.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	descriptors := make([]engine.Descriptor, 0, len(r.engines))
	for _, e := range r.engines {
		descriptors = append(descriptors, engine.ToDescriptor(e))
	}
	return descriptors
}

func (r *engineRegistry) Select(kind types.ProblemKind) (engine.Engine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.engines {
		if e.Supports(kind) {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: no engine supports kind %v", ErrEngineNotFound, kind)
}

func (r *engineRegistry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.engines[name]; !exists {
		return fmt.Errorf("%w: %s", ErrEngineNotFound, name)
	}

	delete(r.engines, name)
	r.logger.Info("engine unregistered", slog.String("name", name))
	return nil
}
