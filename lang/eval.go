package lang

import (
	"log/slog"

	"github.com/bitland/interrotron/log"
)

// Evaluator walks a syntax tree against a binding environment, counting
// every node visit against an optional operations ceiling. Each top-level
// call constructs its own Evaluator, so compiled rules may be invoked
// concurrently without locking.
type Evaluator struct {
	env    *Env
	logger log.Logger
	maxOps int
	ops    int
}

// NewEvaluator constructs an evaluator over the given environment.
// A maxOps of zero or less disables the operations ceiling.
func NewEvaluator(env *Env, maxOps int, logger log.Logger) *Evaluator {
	return &Evaluator{env: env, maxOps: maxOps, logger: logger}
}

// Env returns the evaluator's binding environment, letting macros
// resolve or bind names mid-expansion.
func (ev *Evaluator) Env() *Env { return ev.env }

// Ops returns the number of node visits performed so far.
func (ev *Evaluator) Ops() int { return ev.ops }

// Eval evaluates one node to a runtime value. Every visit, including
// those made by macro expansions, counts against the ceiling.
func (ev *Evaluator) Eval(n *Node) (Value, error) {
	ev.ops++
	if ev.maxOps > 0 && ev.ops > ev.maxOps {
		return Nil(), ErrOpsThreshold.With(
			slog.Int("max_ops", ev.maxOps),
		)
	}

	if n == nil {
		return Nil(), nil
	}

	switch n.Kind {
	case NodeLeaf:
		if n.isIdent() {
			return ev.env.Resolve(n.Tok.Text)
		}

		return n.Val, nil

	case NodeList:
		return ev.evalList(n)

	default:
		return Nil(), ErrSyntax.With(
			slog.Int("node_kind", int(n.Kind)),
		)
	}
}

// evalList evaluates a list form. The head decides the call shape: a
// macro receives the raw tail nodes and its returned node is evaluated
// next; a function receives the evaluated tail values; anything else
// evaluates the tail for effect and yields the head's own value.
func (ev *Evaluator) evalList(n *Node) (Value, error) {
	if len(n.Nodes) == 0 {
		return Nil(), nil
	}

	head, err := ev.Eval(n.Nodes[0])
	if err != nil {
		return Nil(), err
	}

	tail := n.Nodes[1:]

	switch head.Kind {
	case KindMacro:
		next, err := head.Macro(ev, tail)
		if err != nil {
			return Nil(), err
		}

		ev.logger.Trace("macro expanded",
			slog.String("operator", operatorName(n.Nodes[0])),
			slog.Int("ops", ev.ops),
		)

		return ev.Eval(next)

	case KindFunc:
		args, err := ev.evalArgs(tail)
		if err != nil {
			return Nil(), err
		}

		if !head.Func.Variadic && len(args) != head.Func.Arity {
			return Nil(), ErrInvalidArgument.With(
				slog.String("operator", operatorName(n.Nodes[0])),
				slog.Int("want", head.Func.Arity),
				slog.Int("have", len(args)),
			)
		}

		return head.Func.Call(args)

	default:
		// Not callable: the arguments still evaluate for effect,
		// then the form collapses to the head's value.
		if _, err := ev.evalArgs(tail); err != nil {
			return Nil(), err
		}

		return head, nil
	}
}

// evalArgs evaluates argument nodes left to right.
func (ev *Evaluator) evalArgs(nodes []*Node) ([]Value, error) {
	args := make([]Value, len(nodes))

	for i, n := range nodes {
		v, err := ev.Eval(n)
		if err != nil {
			return nil, err
		}

		args[i] = v
	}

	return args, nil
}

// operatorName names the operator position for diagnostics.
func operatorName(n *Node) string {
	if n != nil && n.Kind == NodeLeaf && n.Tok.Text != "" {
		return n.Tok.Text
	}

	return "<anonymous>"
}
