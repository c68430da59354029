package lang

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the variant held by a [Value].
type Kind int

const (
	// KindNil is the absence of a value.
	KindNil Kind = iota

	// KindBool is a boolean.
	KindBool

	// KindInt is a signed integer.
	KindInt

	// KindFloat is a floating-point number.
	KindFloat

	// KindTime is a calendar date-time.
	KindTime

	// KindText is a text string.
	KindText

	// KindSeq is an ordered sequence of values.
	KindSeq

	// KindFunc is a native function applied to evaluated arguments.
	KindFunc

	// KindMacro is a callable applied to unevaluated argument nodes.
	KindMacro
)

// String returns a string representation of the value kind.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "Nil"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindTime:
		return "Time"
	case KindText:
		return "Text"
	case KindSeq:
		return "Seq"
	case KindFunc:
		return "Func"
	case KindMacro:
		return "Macro"
	default:
		return "Unknown"
	}
}

// Func is a native function callable over evaluated argument values.
// Arity is the required argument count unless Variadic is set.
type Func struct {
	Call     func(args []Value) (Value, error)
	Arity    int
	Variadic bool
}

// Macro is a callable bound to an operator position that receives the
// per-call [Evaluator] and the raw, unevaluated operand nodes, and returns
// a single node to be evaluated next.
type Macro func(ev *Evaluator, args []*Node) (*Node, error)

// Value is the closed tagged variant for every runtime value the engine
// produces or consumes. Exactly the field selected by Kind is meaningful.
type Value struct {
	Macro Macro
	Func  *Func
	Text  string
	Seq   []Value
	Time  time.Time
	Int   int64
	Float float64
	Kind  Kind
	Bool  bool
}

// Nil returns the nil value.
func Nil() Value { return Value{Kind: KindNil} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Int returns an integer value.
func Int(i int64) Value { return Value{Kind: KindInt, Int: i} }

// Float returns a floating-point value.
func Float(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// Time returns a date-time value.
func Time(t time.Time) Value { return Value{Kind: KindTime, Time: t} }

// Text returns a text value.
func Text(s string) Value { return Value{Kind: KindText, Text: s} }

// Seq returns an ordered sequence value.
func Seq(vs ...Value) Value { return Value{Kind: KindSeq, Seq: vs} }

// NewFunc returns a function value with a fixed arity.
func NewFunc(arity int, call func(args []Value) (Value, error)) Value {
	return Value{Kind: KindFunc, Func: &Func{Arity: arity, Call: call}}
}

// NewVariadic returns a function value accepting any number of arguments.
func NewVariadic(call func(args []Value) (Value, error)) Value {
	return Value{Kind: KindFunc, Func: &Func{Variadic: true, Call: call}}
}

// NewMacro returns a macro value.
func NewMacro(m Macro) Value {
	return Value{Kind: KindMacro, Macro: m}
}

// Truthy reports whether the value is considered true in a boolean
// context. Only nil and false are falsy.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNil:
		return false
	case KindBool:
		return v.Bool
	default:
		return true
	}
}

// Equal reports structural equality between two values. Integers and
// floats compare numerically across kinds; functions and macros are never
// equal.
func (v Value) Equal(o Value) bool {
	if (v.Kind == KindInt || v.Kind == KindFloat) &&
		(o.Kind == KindInt || o.Kind == KindFloat) {
		return v.asFloat() == o.asFloat() &&
			(v.Kind != KindInt || o.Kind != KindInt || v.Int == o.Int)
	}

	if v.Kind != o.Kind {
		return false
	}

	switch v.Kind {
	case KindNil:
		return true
	case KindBool:
		return v.Bool == o.Bool
	case KindTime:
		return v.Time.Equal(o.Time)
	case KindText:
		return v.Text == o.Text
	case KindSeq:
		if len(v.Seq) != len(o.Seq) {
			return false
		}

		for i := range v.Seq {
			if !v.Seq[i].Equal(o.Seq[i]) {
				return false
			}
		}

		return true
	case KindFunc, KindMacro:
		return false
	default:
		return false
	}
}

// asFloat converts a numeric value to float64. The caller must ensure the
// kind is KindInt or KindFloat.
func (v Value) asFloat() float64 {
	if v.Kind == KindInt {
		return float64(v.Int)
	}

	return v.Float
}

// Compare orders two values, returning a negative, zero, or positive
// result. Numbers compare numerically, date-times chronologically, and
// text lexicographically; any other pairing is a type mismatch.
func Compare(a, b Value) (int, error) {
	numeric := func(v Value) bool {
		return v.Kind == KindInt || v.Kind == KindFloat
	}

	switch {
	case numeric(a) && numeric(b):
		if a.Kind == KindInt && b.Kind == KindInt {
			switch {
			case a.Int < b.Int:
				return -1, nil
			case a.Int > b.Int:
				return 1, nil
			default:
				return 0, nil
			}
		}

		af, bf := a.asFloat(), b.asFloat()
		switch {
		case af < bf:
			return -1, nil
		case af > bf:
			return 1, nil
		default:
			return 0, nil
		}

	case a.Kind == KindTime && b.Kind == KindTime:
		return a.Time.Compare(b.Time), nil

	case a.Kind == KindText && b.Kind == KindText:
		return strings.Compare(a.Text, b.Text), nil

	default:
		return 0, ErrType.With(
			slog.String("left", a.Kind.String()),
			slog.String("right", b.Kind.String()),
		)
	}
}

// String returns a display representation of the value.
func (v Value) String() string {
	switch v.Kind {
	case KindNil:
		return "nil"
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	case KindTime:
		return v.Time.Format(time.RFC3339)
	case KindText:
		return v.Text
	case KindSeq:
		parts := make([]string, len(v.Seq))
		for i, e := range v.Seq {
			parts[i] = e.String()
		}

		return "[" + strings.Join(parts, " ") + "]"
	case KindFunc:
		return "<function>"
	case KindMacro:
		return "<macro>"
	default:
		return "<unknown>"
	}
}

// text returns the stringification used by the str builtin, where nil
// contributes nothing.
func (v Value) text() string {
	if v.Kind == KindNil {
		return ""
	}

	return v.String()
}

// Any converts the value to its plain Go representation. Functions and
// macros are returned as-is.
func (v Value) Any() any {
	switch v.Kind {
	case KindNil:
		return nil
	case KindBool:
		return v.Bool
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	case KindTime:
		return v.Time
	case KindText:
		return v.Text
	case KindSeq:
		out := make([]any, len(v.Seq))
		for i, e := range v.Seq {
			out[i] = e.Any()
		}

		return out
	default:
		return v
	}
}

// From converts a plain Go value to a runtime value. Supported inputs are
// nil, booleans, integer and float types, strings, time.Time, []any, and
// Value itself.
func From(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Nil(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return Int(int64(t)), nil
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case uint64:
		return Int(int64(t)), nil
	case float32:
		return Float(float64(t)), nil
	case float64:
		return Float(t), nil
	case string:
		return Text(t), nil
	case time.Time:
		return Time(t), nil
	case []any:
		seq := make([]Value, len(t))

		for i, e := range t {
			v, err := From(e)
			if err != nil {
				return Nil(), err
			}

			seq[i] = v
		}

		return Seq(seq...), nil
	default:
		return Nil(), ErrType.With(
			slog.String("go_type", fmt.Sprintf("%T", x)),
		)
	}
}
