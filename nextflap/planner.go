package nextflap

import (
	"context"
	"log/slog"

	sdk "github.com/planforge-ai/sdk"
	"github.com/planforge-ai/sdk/engine"
	"github.com/planforge-ai/sdk/problem"
	"github.com/planforge-ai/sdk/types"
)

// Name is the fixed identifier token this engine exposes to the framework.
const Name = "nextflap"

// state tracks the adapter lifecycle. Execution operations succeed only in
// stateReady; the zero value is stateUnready so a zero-value Planner behaves
// like one whose construction never completed.
type state int

const (
	stateUnready state = iota
	stateReady
	stateDestroyed
)

// config holds construction options for a Planner.
type config struct {
	options map[string]any
	factory Factory
	impl    Impl
	logger  *slog.Logger
}

// Option configures a Planner under construction.
type Option func(*config)

// WithOptions sets the free-form engine options forwarded verbatim to the
// implementation factory. The adapter does not interpret them.
func WithOptions(options map[string]any) Option {
	return func(c *config) {
		for k, v := range options {
			c.options[k] = v
		}
	}
}

// WithOption sets a single engine option.
func WithOption(key string, value any) Option {
	return func(c *config) {
		c.options[key] = value
	}
}

// WithFactory sets the factory used to resolve the external implementation.
// Defaults to DefaultFactory.
func WithFactory(f Factory) Option {
	return func(c *config) {
		c.factory = f
	}
}

// WithImpl binds the planner to an already-resolved implementation, skipping
// factory resolution entirely.
func WithImpl(impl Impl) Option {
	return func(c *config) {
		c.impl = impl
	}
}

// WithLogger sets a custom logger for the planner.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// Planner adapts the external NextFLAP implementation to the engine.Engine
// contract. It performs no planning itself: every capability query and
// execution request is forwarded to the bound implementation.
//
// A Planner is not safe for concurrent use; run one planner per concurrent
// session.
type Planner struct {
	impl   Impl
	st     state
	logger *slog.Logger
}

// Planner must satisfy the shared engine contract.
var _ engine.Engine = (*Planner)(nil)

// NewPlanner resolves the external NextFLAP implementation and binds it to a
// new planner.
//
// Resolution happens exactly once, here. If the implementation is absent the
// returned error is a *DependencyError (matching sdk.ErrDependencyMissing)
// naming the install command; the planner is not usable in any degraded mode.
// Options are forwarded verbatim to the implementation factory.
func NewPlanner(opts ...Option) (*Planner, error) {
	cfg := &config{options: make(map[string]any)}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	impl := cfg.impl
	if impl == nil {
		factory := cfg.factory
		if factory == nil {
			factory = DefaultFactory
		}
		var err error
		impl, err = factory(cfg.options)
		if err != nil {
			return nil, err
		}
	}

	cfg.logger.Info("engine ready", slog.String("engine", Name))

	return &Planner{
		impl:   impl,
		st:     stateReady,
		logger: cfg.logger,
	}, nil
}

func (p *Planner) ready() bool {
	return p != nil && p.st == stateReady
}

func (p *Planner) requireReady(op string) error {
	if !p.ready() {
		return sdk.NewNotInitializedError(op)
	}
	return nil
}

// Name returns the fixed engine identifier.
func (p *Planner) Name() string {
	return Name
}

// SupportedKind returns the implementation's supported problem kind, or the
// empty kind when the planner is not ready.
func (p *Planner) SupportedKind() types.ProblemKind {
	if !p.ready() {
		return types.ProblemKind{}
	}
	return p.impl.SupportedKind()
}

// Supports reports whether a problem of the given kind can be handled:
// true iff kind is a subset of the supported kind.
func (p *Planner) Supports(kind types.ProblemKind) bool {
	return engine.Supports(p.SupportedKind(), kind)
}

// SupportsPlan reports whether the implementation can validate plans of the
// given kind.
func (p *Planner) SupportsPlan(kind types.PlanKind) bool {
	if !p.ready() {
		return false
	}
	return p.impl.SupportsPlan(kind)
}

// Credits returns the implementation's attribution metadata.
func (p *Planner) Credits() *engine.Credits {
	if !p.ready() {
		return nil
	}
	return p.impl.Credits()
}

// Solve forwards the request to the external implementation unchanged and
// returns its result unchanged.
//
// Callback, timeout, and output semantics are defined entirely by the
// implementation; the adapter makes no independent timing guarantee. If the
// planner is not in the ready state, Solve fails with
// sdk.ErrEngineNotInitialized.
func (p *Planner) Solve(ctx context.Context, req engine.SolveRequest) (*engine.PlanGenerationResult, error) {
	if err := p.requireReady("Planner.Solve"); err != nil {
		return nil, err
	}
	return p.impl.Solve(ctx, req)
}

// Validate forwards the problem and plan to the external implementation
// unchanged and returns its result unchanged. If the planner is not in the
// ready state, Validate fails with sdk.ErrEngineNotInitialized.
func (p *Planner) Validate(ctx context.Context, prob *problem.Problem, plan *problem.Plan) (*engine.ValidationResult, error) {
	if err := p.requireReady("Planner.Validate"); err != nil {
		return nil, err
	}
	return p.impl.Validate(ctx, prob, plan)
}

// Destroy asks the external implementation to release its resources and moves
// the planner to its terminal state. It is an idempotent no-op on a planner
// that is not ready, including one whose construction never completed.
func (p *Planner) Destroy(ctx context.Context) error {
	if !p.ready() {
		return nil
	}
	err := p.impl.Destroy(ctx)
	p.st = stateDestroyed
	if p.logger != nil {
		p.logger.Info("engine destroyed", slog.String("engine", Name))
	}
	return err
}

// SupportedKind returns the supported problem kind of the installed NextFLAP
// implementation. It resolves the implementation through DefaultFactory and
// fails with a *DependencyError when NextFLAP is absent.
func SupportedKind() (types.ProblemKind, error) {
	impl, err := DefaultFactory(nil)
	if err != nil {
		return types.ProblemKind{}, err
	}
	defer impl.Destroy(context.Background())
	return impl.SupportedKind(), nil
}

// Supports reports whether the installed NextFLAP implementation can handle
// problems of the given kind: true iff kind is a subset of SupportedKind().
func Supports(kind types.ProblemKind) (bool, error) {
	supported, err := SupportedKind()
	if err != nil {
		return false, err
	}
	return kind.IsSubsetOf(supported), nil
}

// SupportsPlan reports whether the installed NextFLAP implementation can
// validate plans of the given kind.
func SupportsPlan(kind types.PlanKind) (bool, error) {
	impl, err := DefaultFactory(nil)
	if err != nil {
		return false, err
	}
	defer impl.Destroy(context.Background())
	return impl.SupportsPlan(kind), nil
}

// Credits returns attribution metadata for the installed NextFLAP
// implementation.
func Credits() (*engine.Credits, error) {
	impl, err := DefaultFactory(nil)
	if err != nil {
		return nil, err
	}
	defer impl.Destroy(context.Background())
	return impl.Credits(), nil
}
