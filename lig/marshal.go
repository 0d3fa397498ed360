package lig

import "github.com/ardnew/ligature/ligature"

// ToNative converts a Value to its native Go type.
//
//	Entity   string (the identifier, without brackets)
//	String   string
//	Integer  int64, or *big.Int when out of int64 range
//	Float    float64
//	Bytes    string ("0x" prefixed hexadecimal)
func ToNative(v ligature.Value) any {
	switch v := v.(type) {
	case ligature.Entity:
		return v.Identifier().Name()

	case ligature.String:
		return string(v)

	case ligature.Integer:
		n := v.Big()
		if n.IsInt64() {
			return n.Int64()
		}

		return n

	case ligature.Float:
		return float64(v)

	case ligature.Bytes:
		return v.String()

	default:
		return nil
	}
}

// StatementToMap converts a statement to a native Go map. The "kind" key
// names the value variant so that entities and strings stay distinct.
func StatementToMap(s ligature.Statement) map[string]any {
	kind := ""
	if s.Value != nil {
		kind = s.Value.Kind().String()
	}

	return map[string]any{
		"entity":    s.Entity.Identifier().Name(),
		"attribute": s.Attribute.Identifier().Name(),
		"value":     ToNative(s.Value),
		"kind":      kind,
		"context":   s.Context.Identifier().Name(),
	}
}

// StatementsToMaps converts each statement with [StatementToMap].
func StatementsToMaps(statements []ligature.Statement) []map[string]any {
	result := make([]map[string]any, len(statements))
	for i, s := range statements {
		result[i] = StatementToMap(s)
	}

	return result
}
