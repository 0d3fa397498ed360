package wander

import (
	"context"
	"io"
	"strings"

	"github.com/ardnew/ligature/ligature"
)

// Node is implemented by every syntax tree node.
type Node interface {
	// Position returns where the node begins in source.
	Position() ligature.Position
}

// Element is a top-level item of a [Script] or [Scope] body: either an
// [Expression] or a [*LetStatement].
type Element interface {
	Node

	element()
}

// Expression is an [Element] that produces a value. The variants are
// [*ValueExpression], [*ReferenceExpression], [*Scope],
// [*FunctionDefinition], and [*FunctionCall].
type Expression interface {
	Element

	expression()
}

// Script is a parsed Wander program.
type Script struct {
	Elements []Element
}

// LetStatement binds Name to the value of Expression in the innermost
// frame.
type LetStatement struct {
	Name       ligature.Identifier
	Expression Expression
	Pos        ligature.Position
}

// ValueExpression is a literal.
type ValueExpression struct {
	Value Value
	Pos   ligature.Position
}

// ReferenceExpression is a bare name resolved through the environment.
type ReferenceExpression struct {
	Name ligature.Identifier
	Pos  ligature.Position
}

// Scope is a braced block introducing a new frame.
type Scope struct {
	Elements []Element
	Pos      ligature.Position
}

// FunctionDefinition is a function literal.
type FunctionDefinition struct {
	Parameters []ligature.Identifier
	Body       []Element
	Pos        ligature.Position
}

// FunctionCall applies the function named Name to Arguments.
type FunctionCall struct {
	Name      ligature.Identifier
	Arguments []Expression
	Pos       ligature.Position
}

func (n *LetStatement) Position() ligature.Position        { return n.Pos }
func (n *ValueExpression) Position() ligature.Position     { return n.Pos }
func (n *ReferenceExpression) Position() ligature.Position { return n.Pos }
func (n *Scope) Position() ligature.Position               { return n.Pos }
func (n *FunctionDefinition) Position() ligature.Position  { return n.Pos }
func (n *FunctionCall) Position() ligature.Position        { return n.Pos }

func (*LetStatement) element()        {}
func (*ValueExpression) element()     {}
func (*ReferenceExpression) element() {}
func (*Scope) element()               {}
func (*FunctionDefinition) element()  {}
func (*FunctionCall) element()        {}

func (*ValueExpression) expression()     {}
func (*ReferenceExpression) expression() {}
func (*Scope) expression()               {}
func (*FunctionDefinition) expression()  {}
func (*FunctionCall) expression()        {}

// Print writes a formatted representation of the script to the writer.
func (s *Script) Print(ctx context.Context, w io.Writer) error {
	lw := &lineWriter{w: w}

	lw.put("\n", "Script")
	printElements(ctx, lw, s.Elements, 1)

	return lw.err
}

func printElements(
	ctx context.Context,
	lw *lineWriter,
	elements []Element,
	indent int,
) {
	if len(elements) == 0 {
		lw.put("\n", strings.Repeat("  ", indent)+"(empty)")

		return
	}

	for _, el := range elements {
		printElement(ctx, lw, el, indent)
	}
}

func printElement(
	ctx context.Context,
	lw *lineWriter,
	el Element,
	indent int,
) {
	prefix := strings.Repeat("  ", indent)

	switch n := el.(type) {
	case *LetStatement:
		lw.put("\n", prefix+"Let", n.Name.Name())
		printElement(ctx, lw, n.Expression, indent+1)

	case *ValueExpression:
		lw.put("\n", prefix+"Value", n.Value.TypeName(), n.Value.String())

	case *ReferenceExpression:
		lw.put("\n", prefix+"Reference", n.Name.Name())

	case *Scope:
		lw.put("\n", prefix+"Scope")
		printElements(ctx, lw, n.Elements, indent+1)

	case *FunctionDefinition:
		lw.put("\n", prefix+"Function", "("+joinNames(n.Parameters)+")")
		printElements(ctx, lw, n.Body, indent+1)

	case *FunctionCall:
		lw.put("\n", prefix+"Call", n.Name.Name())

		for _, arg := range n.Arguments {
			printElement(ctx, lw, arg, indent+1)
		}
	}
}

// lineWriter writes ": " joined items followed by eol. It keeps the first
// write error and drops all output after it.
type lineWriter struct {
	w   io.Writer
	err error
}

func (lw *lineWriter) put(eol string, item ...string) {
	if lw.err != nil {
		return
	}

	_, lw.err = io.WriteString(lw.w, strings.Join(item, ": ")+eol)
}
