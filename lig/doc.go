// Package lig reads and writes the lig statement format.
//
// A lig document is a whitespace separated sequence of statements, each an
// entity, an attribute, a value, and a context entity:
//
//	<betty> @<name> "Betty" <people>
//	<betty> @<age> 24601 <people>
//	<betty> @<height> 3.03 <people>
//	<betty> @<knows> <bob> <people>
//	<betty> @<key> 0x00ff <people>  # comments run to end of line
//
// [ReadDocument] parses a whole document; [ReadEntity], [ReadAttribute], and
// [ReadValue] parse exactly one literal. Any lexical or grammatical mismatch
// fails the whole call with [ligature.ErrParse], located by line and column.
//
// Parsed statements render back to text with [Write], to JSON and YAML with
// [FormatJSON] and [FormatYAML], and can be narrowed with an expr-lang
// predicate using [Filter].
package lig
