package wander

import "github.com/ardnew/ligature/lig"

// ToNative converts a Value to its native Go type for JSON and YAML output.
// Data model values convert with [lig.ToNative], statements with
// [lig.StatementToMap], and functions to their source text.
func ToNative(v Value) any {
	switch v := v.(type) {
	case Literal:
		return lig.ToNative(v.Value)

	case Bool:
		return bool(v)

	case AttributeValue:
		return v.Identifier().Name()

	case StatementValue:
		return lig.StatementToMap(v.Statement)

	case *Closure, *Builtin:
		return v.String()

	default:
		return nil
	}
}
