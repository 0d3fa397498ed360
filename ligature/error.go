package ligature

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
//
// Every error returned by this module is derived from one of these, or from
// an evaluator sentinel in package wander, and can be identified with
// [errors.Is] regardless of any attributes attached with [Error.With].
var (
	ErrFormat = NewError("invalid literal format")
	ErrParse  = NewError("parse error")
)

// Position identifies a location in source text.
// Line and Column are 1-based; Offset is a 0-based byte offset.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String returns "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	root  *Error      // Sentinel this error was derived from
	pos   *Position   // Optional source position
	src   string      // Source text pos refers to, for Snippet
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
// The returned value acts as its own category for [errors.Is].
func NewError(msg string) *Error {
	e := &Error{msg: msg}
	e.root = e

	return e
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	e := &Error{err: err}
	e.root = e

	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg> at <pos>: <err>"
	//   2. "<msg>: <err>"
	//   3. "<msg>"
	//   4. "<err>"
	part := make([]string, 0, 2)

	if e.msg != "" {
		msg := e.msg
		if e.pos != nil {
			msg += " at " + e.pos.String()
		}

		part = append(part, msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel (or a decoration of the
// sentinel) this error was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.root == nil {
		return false
	}

	return e.root == t.root
}

// Position returns the source position attached with [Error.WithPosition].
func (e *Error) Position() (Position, bool) {
	if e.pos == nil {
		return Position{}, false
	}

	return *e.pos, true
}

// Attrs returns a copy of the structured attributes attached to the error.
func (e *Error) Attrs() []slog.Attr {
	return append([]slog.Attr(nil), e.attrs...)
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.pos != nil {
		attrs = append(attrs,
			slog.Int("line", e.pos.Line),
			slog.Int("column", e.pos.Column),
		)
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	if snippet := e.Snippet(); snippet != "" {
		attrs = append(attrs, slog.String("snippet", snippet))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.err = err

	return &c
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	c := *e
	c.attrs = newAttrs

	return &c
}

// WithPosition returns a copy of the error located at pos.
func (e *Error) WithPosition(pos Position) *Error {
	c := *e
	c.pos = &pos

	return &c
}

// WithSource returns a copy of the error that renders [Error.Snippet] from
// source, the complete text its position refers to.
func (e *Error) WithSource(source string) *Error {
	c := *e
	c.src = source

	return &c
}

// Snippet returns the source line containing the error position followed by
// a line with a caret under the offending column:
//
//	  2 | let b = missing
//	              ^
//
// It is empty unless both a position and the source are attached.
func (e *Error) Snippet() string {
	if e.pos == nil || e.src == "" {
		return ""
	}

	lines := strings.Split(e.src, "\n")
	if e.pos.Line < 1 || e.pos.Line > len(lines) {
		return ""
	}

	line := strings.TrimSuffix(lines[e.pos.Line-1], "\r")
	num := strconv.Itoa(e.pos.Line)

	var buf strings.Builder

	buf.WriteString("  ")
	buf.WriteString(num)
	buf.WriteString(" | ")
	buf.WriteString(line)
	buf.WriteByte('\n')

	// Columns count runes. Tabs are kept so the caret lines up with them.
	buf.WriteString(strings.Repeat(" ", len(num)+5))

	col := 1
	for _, r := range line {
		if col >= e.pos.Column {
			break
		}

		if r == '\t' {
			buf.WriteByte('\t')
		} else {
			buf.WriteByte(' ')
		}

		col++
	}

	buf.WriteString(strings.Repeat(" ", max(0, e.pos.Column-col)))
	buf.WriteString("^\n")

	return buf.String()
}

// AttachSource attaches source to err when err is, or wraps, a positioned
// [Error]. Other errors are returned unchanged.
func AttachSource(err error, source string) error {
	var le *Error
	if !errors.As(err, &le) || le.pos == nil {
		return err
	}

	return le.WithSource(source)
}
