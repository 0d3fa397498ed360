package wander

import (
	"maps"
	"slices"

	"github.com/ardnew/ligature/ligature"
)

// Environment is one frame of a lexical scope chain. Lookups walk from the
// frame outward through its parents; bindings are only ever written to the
// frame they are made in.
//
// Frames are shared by reference. A closure keeps the frames it captured
// alive for as long as the closure itself is reachable.
type Environment struct {
	parent   *Environment
	bindings map[string]Value
}

// NewEnvironment returns an empty root frame.
func NewEnvironment() *Environment {
	return &Environment{bindings: make(map[string]Value)}
}

// NewEnclosed returns an empty frame whose parent is e.
func (e *Environment) NewEnclosed() *Environment {
	return &Environment{parent: e, bindings: make(map[string]Value)}
}

// Parent returns the enclosing frame, or nil for a root frame.
func (e *Environment) Parent() *Environment { return e.parent }

// Lookup returns the value bound to name in the nearest frame that binds
// it.
func (e *Environment) Lookup(name ligature.Identifier) (Value, bool) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.bindings[name.Name()]; ok {
			return v, true
		}
	}

	return nil, false
}

// Bind binds name to v in this frame, replacing any binding of name made
// earlier in the same frame and shadowing bindings in enclosing frames.
func (e *Environment) Bind(name ligature.Identifier, v Value) {
	e.bindings[name.Name()] = v
}

// Names returns the sorted names visible from this frame.
func (e *Environment) Names() []string {
	seen := make(map[string]struct{})

	for f := e; f != nil; f = f.parent {
		for name := range f.bindings {
			seen[name] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(seen))
}
