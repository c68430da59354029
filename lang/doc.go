// Package lang implements an embeddable, deliberately non-Turing-complete
// rule language for evaluating business-rule expressions supplied as
// untrusted text. Rules cannot define functions, loop, or recurse, and an
// optional operations ceiling bounds total evaluation work, so hosts can
// run arbitrary rule text without risking arbitrary code execution or
// unbounded computation.
//
// # Grammar
//
// Rule source is S-expression text. A program is a (possibly nested)
// parenthesized list whose first element is the operator:
//
//	Form    → Atom | '(' Form* ')'
//	Atom    → Number | String | DateTime | Symbol
//
// Numbers are decimal integers or floats (float iff a decimal point is
// present). Strings are single- or double-quoted with backslash escapes
// preserved verbatim. Date-times are written #dt{2024-01-02T15:04:05Z}.
// Symbols are runs of letters, underscore, and the characters > < + ! =
// * / % -. The keyword fn is reserved but carries no semantics.
//
// # Example
//
//	eng := lang.New(
//		lang.WithVars(lang.Frame{"threshold": lang.Int(100)}),
//		lang.WithMaxOps(10000),
//	)
//
//	rule, err := eng.Compile(ctx, `(if (> total threshold) "flag" "pass")`)
//	if err != nil {
//		return err
//	}
//
//	v, err := rule.Call(ctx, lang.Frame{"total": lang.Int(250)})
//
// Compile parses once; Call re-evaluates the shared tree against fresh
// bindings each time.
//
// # Functions and macros
//
// Operator dispatch is structural: a function receives its arguments
// evaluated, a macro receives the raw unevaluated nodes plus the
// evaluator and returns one node to evaluate next. The default registry
// binds the macros if, cond, and, or; the functions array, comparisons,
// arithmetic, rounding, sequence accessors, coercions, str, rand, now;
// and the constants true, false, nil. Instance bindings overlay the
// defaults, and call bindings overlay both.
//
// # Scoping
//
// The binding environment is a stack of frames resolved innermost first.
// A top-level call runs against a single frame (registry overlaid by
// call bindings); the stack exists for hosts and macros that push
// nested scopes.
//
// # Concurrency
//
// Engines and compiled rules are immutable after construction. Each call
// builds its own environment and evaluator, so both may be shared across
// goroutines freely.
package lang
