// Package runtime holds the evaluator's runtime value model: primitives,
// environments, classes, instances, and callables (spec.md §3).
package runtime

import "strconv"

// Value is any glox runtime value. It is a marker interface; callers
// type-switch to inspect a concrete value.
type Value interface {
	value()
}

// Nil is the singleton nil value.
type Nil struct{}

func (Nil) value() {}

// NilValue is the one Nil instance; nil is not a pointer in glox, so every
// absent value compares equal to this.
var NilValue = Nil{}

// Bool wraps a boolean.
type Bool bool

func (Bool) value() {}

// Number wraps a 64-bit float, glox's only numeric type.
type Number float64

func (Number) value() {}

// String wraps a string.
type String string

func (String) value() {}

// IsTruthy implements spec.md §4.5's truthiness rule: only Nil and false
// are falsy; everything else (including 0) is truthy.
func IsTruthy(v Value) bool {
	switch n := v.(type) {
	case Nil:
		return false
	case Bool:
		return bool(n)
	default:
		return true
	}
}

// Equal implements spec.md §3's equality rule: structural for primitives;
// callables, classes and instances are never equal to anything, not even
// to themselves (the source's never-equal choice; see DESIGN.md for the
// Open Question this resolves).
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case Number:
		y, ok := b.(Number)
		return ok && x == y
	case String:
		y, ok := b.(String)
		return ok && x == y
	default:
		return false
	}
}

// Stringify renders a value's display form, used by `print` and by
// Number<->String concatenation (spec.md §9's mixed-type '+' decision).
func Stringify(v Value) string {
	switch n := v.(type) {
	case Nil:
		return "nil"
	case Bool:
		if bool(n) {
			return "true"
		}
		return "false"
	case Number:
		return FormatNumber(float64(n))
	case String:
		return string(n)
	case *Class:
		return n.Name
	case *Instance:
		return n.Class.Name + " instance"
	case Callable:
		return n.CallableName()
	default:
		return "?"
	}
}

// FormatNumber renders a float64 the way glox's print statement and string
// concatenation do: integral values print without a trailing ".0", matching
// the original rlox source's Display impl for Literal::Num (SPEC_FULL.md §4).
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
