// Package wander implements the Wander expression language.
//
// A Wander script is a sequence of elements, optionally separated by
// semicolons. An element is either a let statement or an expression:
//
//	-- comments run to end of line
//	let x = 5
//	let identity = fn(value) { value }
//	{ let x = 7; identity(x) }        -- 7; the outer x is still 5
//
// Expressions are literals (true, false, integers, floats, strings, bytes,
// entities like <name>, attributes like @<name>, and statements like
// <e> @<a> 3.03 <ctx>), names, braced scopes, function literals, and calls.
//
// # Evaluation
//
// [Run] parses and evaluates source. Evaluation is lexically scoped: every
// scope and every function call gets a new [Environment] frame, let binds in
// the innermost frame, and a function literal captures the frame chain in
// which it is evaluated. A script or scope yields the value of its last
// expression, or [Nothing].
//
// Call targets are resolved against the built-in functions first (see
// [Builtins]) and then the environment.
//
// # Errors
//
// Parse failures are [ligature.ErrParse]. Evaluation fails with
// [ErrUnboundName] or [ErrCall]; built-in argument type errors additionally
// match [ErrArgumentType]. Every error is located at the offending node.
package wander
