package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/ligature/ligature"
	"github.com/ardnew/ligature/wander"
)

var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// functionCall describes the call whose argument list encloses the cursor.
type functionCall struct {
	name     string
	argIndex int // 0-based
	inCall   bool
}

// detectFunctionCall reports the innermost call whose argument list contains
// the cursor, and which argument the cursor is in. Parentheses and braces
// inside the argument list are skipped, as is anything quoted.
func detectFunctionCall(input string, cursor int) functionCall {
	cursor = min(max(cursor, 0), len(input))
	text := input[:cursor]

	open := openParen(text)
	if open < 0 {
		return functionCall{}
	}

	start := open
	for start > 0 && isNameByte(text[start-1]) {
		start--
	}

	name := text[start:open]
	if name == "" || !ligature.IsIdentifier(name) {
		return functionCall{}
	}

	argIndex := 0
	depth := 0

	scanUnquoted(text[open+1:], func(c byte) {
		switch c {
		case '(', '{':
			depth++
		case ')', '}':
			depth--
		case ',':
			if depth == 0 {
				argIndex++
			}
		}
	})

	return functionCall{name: name, argIndex: argIndex, inCall: true}
}

// openParen returns the index of the '(' that is still unclosed at the end of
// text, or -1.
func openParen(text string) int {
	var stack []int

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '"':
			i = skipString(text, i)
		case '(':
			stack = append(stack, i)
		case ')':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if len(stack) == 0 {
		return -1
	}

	return stack[len(stack)-1]
}

// scanUnquoted calls fn for every byte of text outside string literals.
func scanUnquoted(text string, fn func(c byte)) {
	for i := 0; i < len(text); i++ {
		if text[i] == '"' {
			i = skipString(text, i)

			continue
		}

		fn(text[i])
	}
}

// skipString returns the index of the quote closing the string that opens at
// text[i], or the last index if the string is unterminated.
func skipString(text string, i int) int {
	for i++; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}

	return len(text) - 1
}

func isNameByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// getSignature returns the signature of the function a call to name would
// reach, resolving built-ins before env as the evaluator does. It returns an
// empty signature if name is unbound or not a function.
func getSignature(env *wander.Environment, name string) (signature string, params []string) {
	if b, ok := wander.LookupBuiltin(name); ok {
		return b.String(), b.Parameters
	}

	v, ok := lookup(env, name)
	if !ok {
		return "", nil
	}

	switch fn := v.(type) {
	case *wander.Builtin:
		params = fn.Parameters
	case *wander.Closure:
		params = make([]string, len(fn.Definition.Parameters))
		for i, p := range fn.Definition.Parameters {
			params[i] = p.Name()
		}
	default:
		return "", nil
	}

	return name + "(" + strings.Join(params, ", ") + ")", params
}

// lookup finds the value bound to name in env.
func lookup(env *wander.Environment, name string) (wander.Value, bool) {
	id, err := ligature.NewIdentifier(name)
	if err != nil {
		return nil, false
	}

	return env.Lookup(id)
}

// renderSignatureHint renders a signature with the parameter at argIndex
// highlighted.
func renderSignatureHint(signature string, params []string, argIndex int) string {
	open := strings.IndexByte(signature, '(')
	if open < 0 {
		return signatureStyle.Render(signature)
	}

	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(signature[:open]))
	b.WriteString(signatureStyle.Render("("))

	for i, p := range params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		if i == argIndex {
			b.WriteString(currentParamStyle.Render(p))
		} else {
			b.WriteString(signatureStyle.Render(p))
		}
	}

	if argIndex >= len(params) {
		b.WriteString(errorStyle.Render(" …"))
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
