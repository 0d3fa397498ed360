package wander

import (
	"log/slog"
	"maps"
	"slices"
	"strconv"
)

// Builtin is a function provided by the interpreter.
type Builtin struct {
	Name        string
	Description string
	Parameters  []string
	fn          func(args []Value) (Value, error)
}

// TypeName implements [Value].
func (*Builtin) TypeName() string { return "Function" }

// String renders the built-in's signature, e.g. "not(value)".
func (b *Builtin) String() string {
	sig := b.Name + "("

	for i, p := range b.Parameters {
		if i > 0 {
			sig += ", "
		}

		sig += p
	}

	return sig + ")"
}

// Arity returns the number of arguments the built-in accepts.
func (b *Builtin) Arity() int { return len(b.Parameters) }

func (*Builtin) wanderValue() {}

// builtins is the fixed registry consulted before the environment when
// resolving a call target. It is never modified after initialization.
var builtins = map[string]*Builtin{
	"not": {
		Name:        "not",
		Description: "logical negation of a Bool",
		Parameters:  []string{"value"},
		fn: func(args []Value) (Value, error) {
			b, err := boolArg("not", args, 0)
			if err != nil {
				return nil, err
			}

			return !b, nil
		},
	},
	"and": {
		Name:        "and",
		Description: "logical conjunction of two Bools",
		Parameters:  []string{"left", "right"},
		fn: func(args []Value) (Value, error) {
			return binaryBool("and", args, func(a, b Bool) Bool { return a && b })
		},
	},
	"or": {
		Name:        "or",
		Description: "logical disjunction of two Bools",
		Parameters:  []string{"left", "right"},
		fn: func(args []Value) (Value, error) {
			return binaryBool("or", args, func(a, b Bool) Bool { return a || b })
		},
	},
	"eq": {
		Name:        "eq",
		Description: "whether two values are the same variant with equal payloads",
		Parameters:  []string{"left", "right"},
		fn: func(args []Value) (Value, error) {
			return Bool(Equal(args[0], args[1])), nil
		},
	},
}

// LookupBuiltin returns the built-in function named name.
func LookupBuiltin(name string) (*Builtin, bool) {
	b, ok := builtins[name]

	return b, ok
}

// Builtins returns the sorted names of all built-in functions.
func Builtins() []string {
	return slices.Sorted(maps.Keys(builtins))
}

func binaryBool(name string, args []Value, op func(a, b Bool) Bool) (Value, error) {
	a, err := boolArg(name, args, 0)
	if err != nil {
		return nil, err
	}

	b, err := boolArg(name, args, 1)
	if err != nil {
		return nil, err
	}

	return op(a, b), nil
}

// boolArg returns args[i] as a Bool, or an [ErrCall] wrapping
// [ErrArgumentType].
func boolArg(name string, args []Value, i int) (Bool, error) {
	b, ok := args[i].(Bool)
	if !ok {
		return false, ErrCall.
			Wrap(ErrArgumentType.With(
				slog.String("expected", "Bool"),
				slog.String("found", args[i].TypeName()),
			)).
			With(
				slog.String("function", name),
				slog.String("argument", strconv.Itoa(i+1)),
			)
	}

	return b, nil
}
