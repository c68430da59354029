package lang

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/klauspost/readahead"

	"github.com/bitland/interrotron/log"
)

// DefaultMaxOps is the operations ceiling applied when none is
// configured. Zero or a negative ceiling disables the check.
const DefaultMaxOps = 0

// Engine is a rule evaluation instance: the default registry overlaid
// with instance bindings, plus the operations ceiling applied to every
// call. An Engine is immutable after construction and safe for
// concurrent use; per-call state lives in the [Evaluator].
type Engine struct {
	registry Frame
	logger   log.Logger
	maxOps   int
}

// Option configures an [Engine] under construction.
type Option func(*Engine)

// WithVars overlays instance bindings on the default registry.
// Same-name entries replace defaults.
func WithVars(vars Frame) Option {
	return func(e *Engine) { maps.Copy(e.registry, vars) }
}

// WithMaxOps sets the operations ceiling for every call made through
// the engine. Zero or less disables the ceiling.
func WithMaxOps(n int) Option {
	return func(e *Engine) { e.maxOps = n }
}

// WithLogger sets the logger used for evaluation tracing.
func WithLogger(l log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New constructs an engine with the given options applied over the
// default registry.
func New(opts ...Option) *Engine {
	e := &Engine{
		registry: Builtins(),
		maxOps:   DefaultMaxOps,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Names returns the sorted names bound in the engine's registry.
func (e *Engine) Names() []string {
	return slices.Sorted(maps.Keys(e.registry))
}

// Compile tokenizes and parses rule source once, returning a rule that
// may be called any number of times with different bindings. Identical
// source shares its parse across compilations.
func (e *Engine) Compile(ctx context.Context, source string) (*Rule, error) {
	if err := ctx.Err(); err != nil {
		return nil, WrapError(err)
	}

	root, err := parseCached(source)
	if err != nil {
		e.logger.ErrorContext(ctx, "compile failed", slog.Any("error", err))

		return nil, err
	}

	e.logger.TraceContext(ctx, "compiled rule", slog.String("source", source))

	return &Rule{engine: e, root: root, source: source}, nil
}

// CompileReader reads rule source from r and compiles it. The reader is
// wrapped with asynchronous read-ahead buffering.
func (e *Engine) CompileReader(ctx context.Context, r io.Reader) (*Rule, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	src, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return e.Compile(ctx, string(src))
}

// Run compiles source and calls it once with the given bindings.
func (e *Engine) Run(ctx context.Context, source string, vars Frame) (Value, error) {
	rule, err := e.Compile(ctx, source)
	if err != nil {
		return Nil(), err
	}

	return rule.Call(ctx, vars)
}

// Rule is a compiled rule: a parsed syntax tree bound to the engine
// that compiled it. The tree is immutable and shared across calls; each
// call builds its own environment and evaluator, so a Rule is safe for
// concurrent use.
type Rule struct {
	engine *Engine
	root   *Node
	source string
}

// Source returns the rule source text as compiled.
func (r *Rule) Source() string { return r.source }

// Call evaluates the rule against a fresh single-frame environment: the
// engine registry overlaid by the call bindings.
func (r *Rule) Call(ctx context.Context, vars Frame) (Value, error) {
	if err := ctx.Err(); err != nil {
		return Nil(), WrapError(err)
	}

	frame := maps.Clone(r.engine.registry)
	maps.Copy(frame, vars)

	ev := NewEvaluator(NewEnv(frame), r.engine.maxOps, r.engine.logger)

	v, err := ev.Eval(r.root)
	if err != nil {
		r.engine.logger.ErrorContext(ctx, "call failed",
			slog.String("source", r.source),
			slog.Int("ops", ev.Ops()),
			slog.Any("error", err),
		)

		return Nil(), err
	}

	r.engine.logger.TraceContext(ctx, "call complete",
		slog.String("source", r.source),
		slog.Int("ops", ev.Ops()),
		slog.String("result", v.String()),
	)

	return v, nil
}

//nolint:gochecknoglobals
var defaultEngine = sync.OnceValue(func() *Engine { return New() })

// Compile compiles rule source with a shared default engine.
func Compile(ctx context.Context, source string) (*Rule, error) {
	return defaultEngine().Compile(ctx, source)
}

// Run compiles and calls rule source once with a shared default engine.
func Run(ctx context.Context, source string, vars Frame) (Value, error) {
	return defaultEngine().Run(ctx, source, vars)
}
