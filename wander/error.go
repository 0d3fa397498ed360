package wander

import "github.com/ardnew/ligature/ligature"

// Predefined errors (sentinel values).
//
// Evaluation also propagates [ligature.ErrParse] and [ligature.ErrFormat]
// unchanged from parsing and literal construction.
var (
	// ErrUnboundName reports a reference or call target that is not bound in
	// any frame and is not a built-in.
	ErrUnboundName = ligature.NewError("unbound name")

	// ErrCall reports an arity mismatch, a call to a non-function value, an
	// argument of the wrong type passed to a built-in, or a call nested deeper
	// than the configured limit.
	ErrCall = ligature.NewError("call error")

	// ErrArgumentType is wrapped by [ErrCall] when a built-in receives an
	// argument of the wrong type.
	ErrArgumentType = ligature.NewError("argument type mismatch")

	// ErrCallDepth is wrapped by [ErrCall] when nested calls exceed the limit
	// set with [WithMaxDepth].
	ErrCallDepth = ligature.NewError("maximum call depth exceeded")
)
