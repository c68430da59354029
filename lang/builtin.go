package lang

import (
	"log/slog"
	"maps"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Builtins returns a copy of the default registry: every name bound at
// library scope before instance and call overrides are layered on top.
// The shared defaults are composed once and never mutated.
func Builtins() Frame {
	return maps.Clone(defaults())
}

//nolint:gochecknoglobals
var defaults = sync.OnceValue(func() Frame {
	reg := Frame{
		"true":  Bool(true),
		"false": Bool(false),
		"nil":   Nil(),

		"if":   NewMacro(macroIf),
		"cond": NewMacro(macroCond),
		"and":  NewMacro(macroAnd),
		"or":   NewMacro(macroOr),

		"array": NewVariadic(func(args []Value) (Value, error) {
			return Seq(args...), nil
		}),

		">":  compareFunc(func(c int) bool { return c > 0 }),
		"<":  compareFunc(func(c int) bool { return c < 0 }),
		">=": compareFunc(func(c int) bool { return c >= 0 }),
		"<=": compareFunc(func(c int) bool { return c <= 0 }),

		"=": NewFunc(2, func(args []Value) (Value, error) {
			return Bool(args[0].Equal(args[1])), nil
		}),
		"!=": NewFunc(2, func(args []Value) (Value, error) {
			return Bool(!args[0].Equal(args[1])), nil
		}),

		"+": foldFunc(func(a, b int64) int64 { return a + b },
			func(a, b float64) float64 { return a + b }),
		"-": foldFunc(func(a, b int64) int64 { return a - b },
			func(a, b float64) float64 { return a - b }),
		"*": foldFunc(func(a, b int64) int64 { return a * b },
			func(a, b float64) float64 { return a * b }),

		"/": NewFunc(2, divide),
		"%": NewFunc(2, modulo),

		"floor": roundFunc(math.Floor),
		"ceil":  roundFunc(math.Ceil),
		"round": roundFunc(math.Round),

		"max":    seqFunc("max", seqMax),
		"min":    seqFunc("min", seqMin),
		"first":  seqFunc("first", seqFirst),
		"last":   seqFunc("last", seqLast),
		"length": seqFunc("length", seqLength),

		"to_i":     NewFunc(1, toInt),
		"to_f":     NewFunc(1, toFloat),
		"upcase":   textFunc(strings.ToUpper),
		"downcase": textFunc(strings.ToLower),

		"str": NewVariadic(func(args []Value) (Value, error) {
			var sb strings.Builder
			for _, a := range args {
				sb.WriteString(a.text())
			}

			return Text(sb.String()), nil
		}),

		"rand": NewFunc(0, func([]Value) (Value, error) {
			return Float(rand.Float64()), nil
		}),
		"now": NewFunc(0, func([]Value) (Value, error) {
			return Time(time.Now()), nil
		}),
	}

	reg["not"] = NewFunc(1, func(args []Value) (Value, error) {
		return Bool(!args[0].Truthy()), nil
	})
	reg["!"] = reg["not"]

	return reg
})

// macroIf evaluates the predicate and returns the then node when truthy,
// else the else node. The untaken branch is never evaluated; a missing
// else branch yields nil.
func macroIf(ev *Evaluator, args []*Node) (*Node, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, ErrInvalidArgument.With(
			slog.String("macro", "if"),
			slog.Int("args", len(args)),
		)
	}

	pred, err := ev.Eval(args[0])
	if err != nil {
		return nil, err
	}

	if pred.Truthy() {
		return args[1], nil
	}

	if len(args) == 3 {
		return args[2], nil
	}

	return NewValueNode(Nil()), nil
}

// macroCond walks predicate/result pairs left to right and returns the
// first truthy predicate's result node unevaluated. A trailing unpaired
// argument is the default; without one the fallback is nil.
func macroCond(ev *Evaluator, args []*Node) (*Node, error) {
	if len(args) < 3 {
		return nil, ErrInvalidArgument.With(
			slog.String("macro", "cond"),
			slog.Int("args", len(args)),
		)
	}

	i := 0
	for ; i+1 < len(args); i += 2 {
		pred, err := ev.Eval(args[i])
		if err != nil {
			return nil, err
		}

		if pred.Truthy() {
			return args[i+1], nil
		}
	}

	if i < len(args) {
		return args[i], nil
	}

	return NewValueNode(Nil()), nil
}

// macroAnd evaluates each argument in order and short-circuits to a
// literal false on the first falsy value; otherwise it returns the last
// argument's node.
func macroAnd(ev *Evaluator, args []*Node) (*Node, error) {
	if len(args) == 0 {
		return NewValueNode(Nil()), nil
	}

	for _, arg := range args {
		v, err := ev.Eval(arg)
		if err != nil {
			return nil, err
		}

		if !v.Truthy() {
			return NewValueNode(Bool(false)), nil
		}
	}

	return args[len(args)-1], nil
}

// macroOr evaluates each argument in order and returns the first truthy
// argument's node; with none truthy the result is a literal false.
func macroOr(ev *Evaluator, args []*Node) (*Node, error) {
	for _, arg := range args {
		v, err := ev.Eval(arg)
		if err != nil {
			return nil, err
		}

		if v.Truthy() {
			return arg, nil
		}
	}

	return NewValueNode(Bool(false)), nil
}

// compareFunc builds a binary comparison over the total order defined by
// [Compare].
func compareFunc(test func(int) bool) Value {
	return NewFunc(2, func(args []Value) (Value, error) {
		c, err := Compare(args[0], args[1])
		if err != nil {
			return Nil(), err
		}

		return Bool(test(c)), nil
	})
}

// foldFunc builds a variadic left-fold over numeric arguments. The
// result stays integral until a float participates.
func foldFunc(ints func(a, b int64) int64, floats func(a, b float64) float64) Value {
	return NewVariadic(func(args []Value) (Value, error) {
		if len(args) == 0 {
			return Nil(), ErrInvalidArgument.With(
				slog.String("reason", "at least one argument required"),
			)
		}

		acc := args[0]
		if acc.Kind != KindInt && acc.Kind != KindFloat {
			return Nil(), ErrType.With(slog.String("got", acc.Kind.String()))
		}

		for _, arg := range args[1:] {
			switch arg.Kind {
			case KindInt:
				if acc.Kind == KindInt {
					acc = Int(ints(acc.Int, arg.Int))
				} else {
					acc = Float(floats(acc.Float, float64(arg.Int)))
				}
			case KindFloat:
				acc = Float(floats(acc.asFloat(), arg.Float))
			default:
				return Nil(), ErrType.With(
					slog.String("got", arg.Kind.String()),
				)
			}
		}

		return acc, nil
	})
}

func divide(args []Value) (Value, error) {
	a, b := args[0], args[1]

	if a.Kind == KindInt && b.Kind == KindInt {
		if b.Int == 0 {
			return Nil(), ErrInvalidArgument.With(
				slog.String("reason", "division by zero"),
			)
		}

		return Int(a.Int / b.Int), nil
	}

	if (a.Kind != KindInt && a.Kind != KindFloat) ||
		(b.Kind != KindInt && b.Kind != KindFloat) {
		return Nil(), ErrType.With(
			slog.String("left", a.Kind.String()),
			slog.String("right", b.Kind.String()),
		)
	}

	if b.asFloat() == 0 {
		return Nil(), ErrInvalidArgument.With(
			slog.String("reason", "division by zero"),
		)
	}

	return Float(a.asFloat() / b.asFloat()), nil
}

func modulo(args []Value) (Value, error) {
	a, b := args[0], args[1]

	if a.Kind != KindInt || b.Kind != KindInt {
		return Nil(), ErrType.With(
			slog.String("left", a.Kind.String()),
			slog.String("right", b.Kind.String()),
		)
	}

	if b.Int == 0 {
		return Nil(), ErrInvalidArgument.With(
			slog.String("reason", "division by zero"),
		)
	}

	return Int(a.Int % b.Int), nil
}

// roundFunc builds a unary rounding function. Integers pass through
// unchanged; floats round to an integer.
func roundFunc(round func(float64) float64) Value {
	return NewFunc(1, func(args []Value) (Value, error) {
		switch args[0].Kind {
		case KindInt:
			return args[0], nil
		case KindFloat:
			return Int(int64(round(args[0].Float))), nil
		default:
			return Nil(), ErrType.With(
				slog.String("got", args[0].Kind.String()),
			)
		}
	})
}

// seqFunc builds a unary accessor over an ordered sequence.
func seqFunc(name string, apply func([]Value) (Value, error)) Value {
	return NewFunc(1, func(args []Value) (Value, error) {
		if args[0].Kind != KindSeq {
			return Nil(), ErrType.With(
				slog.String("function", name),
				slog.String("got", args[0].Kind.String()),
			)
		}

		return apply(args[0].Seq)
	})
}

func seqMax(seq []Value) (Value, error) { return seqExtreme(seq, 1) }

func seqMin(seq []Value) (Value, error) { return seqExtreme(seq, -1) }

// seqExtreme returns the element ordered last (sign > 0) or first
// (sign < 0) under [Compare]. An empty sequence yields nil.
func seqExtreme(seq []Value, sign int) (Value, error) {
	if len(seq) == 0 {
		return Nil(), nil
	}

	best := seq[0]

	for _, e := range seq[1:] {
		c, err := Compare(e, best)
		if err != nil {
			return Nil(), err
		}

		if sign > 0 && c > 0 || sign < 0 && c < 0 {
			best = e
		}
	}

	return best, nil
}

func seqFirst(seq []Value) (Value, error) {
	if len(seq) == 0 {
		return Nil(), nil
	}

	return seq[0], nil
}

func seqLast(seq []Value) (Value, error) {
	if len(seq) == 0 {
		return Nil(), nil
	}

	return seq[len(seq)-1], nil
}

func seqLength(seq []Value) (Value, error) {
	return Int(int64(len(seq))), nil
}

// toInt coerces a value to an integer. Floats truncate toward zero;
// text parses a leading decimal integer, defaulting to 0.
func toInt(args []Value) (Value, error) {
	switch args[0].Kind {
	case KindInt:
		return args[0], nil
	case KindFloat:
		return Int(int64(args[0].Float)), nil
	case KindText:
		return Int(leadingInt(args[0].Text)), nil
	default:
		return Nil(), ErrType.With(
			slog.String("got", args[0].Kind.String()),
		)
	}
}

// toFloat coerces a value to a float. Text parses a leading decimal
// number, defaulting to 0.
func toFloat(args []Value) (Value, error) {
	switch args[0].Kind {
	case KindInt:
		return Float(float64(args[0].Int)), nil
	case KindFloat:
		return args[0], nil
	case KindText:
		s := args[0].Text

		end := len(leadingNumber(s))
		if end == 0 {
			return Float(0), nil
		}

		f, err := strconv.ParseFloat(s[:end], 64)
		if err != nil {
			return Float(0), nil
		}

		return Float(f), nil
	default:
		return Nil(), ErrType.With(
			slog.String("got", args[0].Kind.String()),
		)
	}
}

// leadingInt parses the longest leading decimal integer of s, returning
// 0 when none exists.
func leadingInt(s string) int64 {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}

	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	i, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}

	return i
}

// leadingNumber returns the longest leading decimal number of s,
// optionally signed and with a fractional part.
func leadingNumber(s string) string {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}

	digits := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		digits++
	}

	if end < len(s) && s[end] == '.' {
		frac := end + 1
		for frac < len(s) && s[frac] >= '0' && s[frac] <= '9' {
			frac++
		}

		if frac > end+1 {
			end = frac
		}
	}

	if digits == 0 {
		return ""
	}

	return s[:end]
}

// textFunc builds a unary text transform.
func textFunc(apply func(string) string) Value {
	return NewFunc(1, func(args []Value) (Value, error) {
		if args[0].Kind != KindText {
			return Nil(), ErrType.With(
				slog.String("got", args[0].Kind.String()),
			)
		}

		return Text(apply(args[0].Text)), nil
	})
}
