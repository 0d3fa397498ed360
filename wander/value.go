package wander

import (
	"strings"

	"github.com/ardnew/ligature/ligature"
)

// Value is the result of evaluating Wander code. The interface is sealed;
// the variants are [Literal], [Bool], [AttributeValue], [StatementValue],
// [*Closure], [*Builtin], and [Nothing].
type Value interface {
	// TypeName names the variant for diagnostics, e.g. "Integer" or
	// "Function".
	TypeName() string
	String() string

	wanderValue()
}

// Literal is a value from the shared data model: an entity, string,
// integer, float, or byte sequence.
type Literal struct {
	ligature.Value
}

// TypeName implements [Value].
func (l Literal) TypeName() string {
	if l.Value == nil {
		return "Nothing"
	}

	return l.Kind().String()
}

// String implements [Value].
func (l Literal) String() string {
	if l.Value == nil {
		return Nothing.String()
	}

	return l.Value.String()
}

func (Literal) wanderValue() {}

// Bool is a boolean value.
type Bool bool

// TypeName implements [Value].
func (Bool) TypeName() string { return "Bool" }

// String implements [Value].
func (b Bool) String() string {
	if b {
		return "true"
	}

	return "false"
}

func (Bool) wanderValue() {}

// AttributeValue is an attribute literal used as a value, e.g. "@<name>".
type AttributeValue struct {
	ligature.Attribute
}

// TypeName implements [Value].
func (AttributeValue) TypeName() string { return "Attribute" }

func (AttributeValue) wanderValue() {}

// StatementValue is a statement literal used as a value.
type StatementValue struct {
	ligature.Statement
}

// TypeName implements [Value].
func (StatementValue) TypeName() string { return "Statement" }

func (StatementValue) wanderValue() {}

// Closure is a user-defined function bundled with the environment that was
// active where the function literal was evaluated. The environment is held
// by reference.
type Closure struct {
	Definition *FunctionDefinition
	env        *Environment
}

// TypeName implements [Value].
func (*Closure) TypeName() string { return "Function" }

// String renders the function literal.
func (c *Closure) String() string {
	var sb strings.Builder

	formatExpression(&sb, c.Definition)

	return sb.String()
}

// Arity returns the number of parameters the function accepts.
func (c *Closure) Arity() int { return len(c.Definition.Parameters) }

func (*Closure) wanderValue() {}

// nothing is the type of [Nothing].
type nothing struct{}

// Nothing is the value of a script or scope that ends without an
// expression.
var Nothing Value = nothing{}

func (nothing) TypeName() string { return "Nothing" }

func (nothing) String() string { return "nothing" }

func (nothing) wanderValue() {}

// Equal reports whether a and b are the same variant holding equal
// payloads. Functions are equal only to themselves.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Literal:
		y, ok := b.(Literal)

		return ok && ligature.Equal(x.Value, y.Value)

	case Bool:
		y, ok := b.(Bool)

		return ok && x == y

	case AttributeValue:
		y, ok := b.(AttributeValue)

		return ok && x.Attribute == y.Attribute

	case StatementValue:
		y, ok := b.(StatementValue)

		return ok && x.Statement.Equal(y.Statement)

	case *Closure:
		y, ok := b.(*Closure)

		return ok && x == y

	case *Builtin:
		y, ok := b.(*Builtin)

		return ok && x == y

	case nothing:
		_, ok := b.(nothing)

		return ok

	default:
		return false
	}
}

// Unwrap returns the data model value held by v, if any.
func Unwrap(v Value) (ligature.Value, bool) {
	l, ok := v.(Literal)
	if !ok || l.Value == nil {
		return nil, false
	}

	return l.Value, true
}
