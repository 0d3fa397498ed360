package wander

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ardnew/ligature/ligature"
)

// Format writes the script in canonical Wander syntax to the writer, one
// top-level element per line. The output parses back to an equivalent
// script.
func (s *Script) Format(_ context.Context, w io.Writer) error {
	for _, el := range s.Elements {
		var sb strings.Builder

		formatElement(&sb, el)

		if _, err := fmt.Fprintln(w, sb.String()); err != nil {
			return err
		}
	}

	return nil
}

// String returns the script in canonical syntax with elements separated by
// "; ".
func (s *Script) String() string {
	var sb strings.Builder

	formatBody(&sb, s.Elements)

	return sb.String()
}

func formatElement(sb *strings.Builder, el Element) {
	if let, ok := el.(*LetStatement); ok {
		sb.WriteString("let ")
		sb.WriteString(let.Name.Name())
		sb.WriteString(" = ")
		formatExpression(sb, let.Expression)

		return
	}

	if expr, ok := el.(Expression); ok {
		formatExpression(sb, expr)
	}
}

func formatExpression(sb *strings.Builder, expr Expression) {
	switch n := expr.(type) {
	case *ValueExpression:
		sb.WriteString(n.Value.String())

	case *ReferenceExpression:
		sb.WriteString(n.Name.Name())

	case *Scope:
		formatBlock(sb, n.Elements)

	case *FunctionDefinition:
		sb.WriteString("fn(")
		sb.WriteString(joinNames(n.Parameters))
		sb.WriteString(") ")
		formatBlock(sb, n.Body)

	case *FunctionCall:
		sb.WriteString(n.Name.Name())
		sb.WriteByte('(')

		for i, arg := range n.Arguments {
			if i > 0 {
				sb.WriteString(", ")
			}

			formatExpression(sb, arg)
		}

		sb.WriteByte(')')
	}
}

func formatBlock(sb *strings.Builder, elements []Element) {
	if len(elements) == 0 {
		sb.WriteString("{}")

		return
	}

	sb.WriteString("{ ")
	formatBody(sb, elements)
	sb.WriteString(" }")
}

func formatBody(sb *strings.Builder, elements []Element) {
	for i, el := range elements {
		if i > 0 {
			sb.WriteString("; ")
		}

		formatElement(sb, el)
	}
}

func joinNames(ids []ligature.Identifier) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.Name()
	}

	return strings.Join(names, ", ")
}
