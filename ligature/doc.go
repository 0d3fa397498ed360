// Package ligature defines the value model shared by the lig statement
// reader and the Wander interpreter.
//
// # Values
//
// A [Value] is one of five immutable variants:
//
//	Entity   <name>
//	String   "text"
//	Integer  24601        (arbitrary precision)
//	Float    3.03
//	Bytes    0x00ff
//
// Values compare with [Equal], which never widens between [Integer] and
// [Float].
//
// # Statements
//
// A [Statement] relates an [Entity] to a [Value] through an [Attribute]
// within a context entity:
//
//	<entity> @<attribute> <value> <context>
//
// # Errors
//
// Literal constructors report malformed text with [ErrFormat]. Readers
// report grammar mismatches with [ErrParse]. Both are [*Error] values that
// carry structured [log/slog] attributes and an optional [Position].
package ligature
