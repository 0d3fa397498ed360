package lig

import (
	"context"
	"io"
	"log/slog"

	"github.com/klauspost/readahead"

	"github.com/ardnew/ligature/ligature"
)

// ReadDocument parses zero or more statements from input.
// Empty input (or input holding only whitespace and comments) yields an
// empty, non-nil slice. On error no statements are returned.
func ReadDocument(
	ctx context.Context,
	input string,
	opts ...Option,
) ([]ligature.Statement, error) {
	cfg := makeConfig(opts...)
	r := &reader{lex: newLexer(input)}

	statements := make([]ligature.Statement, 0)

	for {
		tok, err := r.peek()
		if err != nil {
			return nil, ligature.AttachSource(err, input)
		}

		if tok.kind == tokenEOF {
			break
		}

		s, err := r.readStatement()
		if err != nil {
			err = ligature.AttachSource(err, input)

			cfg.logger.TraceContext(ctx, "read document failed",
				slog.Int("statement_count", len(statements)),
				slog.Any("error", err))

			return nil, err
		}

		statements = append(statements, s)
	}

	cfg.logger.TraceContext(ctx, "read document",
		slog.Int("source_bytes", len(input)),
		slog.Int("statement_count", len(statements)))

	return statements, nil
}

// ReadReader parses a document from an io.Reader.
func ReadReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) ([]ligature.Statement, error) {
	// Wrap reader with async read-ahead so input is fetched while earlier
	// chunks are copied.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ligature.WrapError(err).
			With(slog.String("source", "reader"))
	}

	return ReadDocument(ctx, string(data), opts...)
}

// ReadEntity parses input as exactly one entity literal, e.g. "<name>".
func ReadEntity(
	ctx context.Context,
	input string,
	opts ...Option,
) (ligature.Entity, error) {
	tok, err := readOne(ctx, input, tokenEntity, opts...)
	if err != nil {
		return ligature.Entity{}, err
	}

	return ligature.EntityOf(tok.id), nil
}

// ReadAttribute parses input as exactly one attribute literal, e.g.
// "@<name>".
func ReadAttribute(
	ctx context.Context,
	input string,
	opts ...Option,
) (ligature.Attribute, error) {
	tok, err := readOne(ctx, input, tokenAttribute, opts...)
	if err != nil {
		return ligature.Attribute{}, err
	}

	return ligature.AttributeOf(tok.id), nil
}

// ReadValue parses input as exactly one value literal: an entity, string,
// float, integer, or bytes literal.
func ReadValue(
	ctx context.Context,
	input string,
	opts ...Option,
) (ligature.Value, error) {
	tok, err := readOne(ctx, input, tokenEOF, opts...)
	if err != nil {
		return nil, err
	}

	return tok.value, nil
}

// readOne reads a single token of the given kind followed by end of input.
// A want of tokenEOF accepts any value token.
func readOne(
	ctx context.Context,
	input string,
	want tokenKind,
	opts ...Option,
) (token, error) {
	cfg := makeConfig(opts...)
	r := &reader{lex: newLexer(input)}

	var (
		tok token
		err error
	)

	if want == tokenEOF {
		tok, err = r.readValue()
	} else {
		tok, err = r.expect(want)
	}

	if err == nil {
		err = r.expectEOF()
	}

	if err != nil {
		err = ligature.AttachSource(err, input)

		cfg.logger.TraceContext(ctx, "read literal failed",
			slog.String("input", input),
			slog.Any("error", err))

		return token{}, err
	}

	cfg.logger.TraceContext(ctx, "read literal",
		slog.String("kind", tok.kind.String()),
		slog.String("text", tok.text))

	return tok, nil
}

// reader is a recursive descent parser over the token stream with one token
// of lookahead. A reader is built per call and never shared.
type reader struct {
	lex    *lexer
	peeked *token
}

func (r *reader) peek() (token, error) {
	if r.peeked != nil {
		return *r.peeked, nil
	}

	tok, err := r.lex.next()
	if err != nil {
		return token{}, err
	}

	r.peeked = &tok

	return tok, nil
}

func (r *reader) take() (token, error) {
	tok, err := r.peek()
	if err != nil {
		return token{}, err
	}

	r.peeked = nil

	return tok, nil
}

// readStatement parses: entity attribute value entity.
func (r *reader) readStatement() (ligature.Statement, error) {
	e, err := r.expect(tokenEntity)
	if err != nil {
		return ligature.Statement{}, err
	}

	a, err := r.expect(tokenAttribute)
	if err != nil {
		return ligature.Statement{}, err
	}

	v, err := r.readValue()
	if err != nil {
		return ligature.Statement{}, err
	}

	c, err := r.expect(tokenEntity)
	if err != nil {
		return ligature.Statement{}, err
	}

	return ligature.Statement{
		Entity:    ligature.EntityOf(e.id),
		Attribute: ligature.AttributeOf(a.id),
		Value:     v.value,
		Context:   ligature.EntityOf(c.id),
	}, nil
}

// readValue parses: entity | string | float | integer | bytes.
func (r *reader) readValue() (token, error) {
	tok, err := r.take()
	if err != nil {
		return token{}, err
	}

	switch tok.kind {
	case tokenEntity, tokenString, tokenFloat, tokenInteger, tokenBytes:
		return tok, nil

	default:
		return token{}, errExpected(tok, "value")
	}
}

func (r *reader) expect(kind tokenKind) (token, error) {
	tok, err := r.take()
	if err != nil {
		return token{}, err
	}

	if tok.kind != kind {
		return token{}, errExpected(tok, kind.String())
	}

	return tok, nil
}

func (r *reader) expectEOF() error {
	_, err := r.expect(tokenEOF)

	return err
}

func errExpected(tok token, expected string) *ligature.Error {
	found := tok.text
	if tok.kind == tokenEOF {
		found = tok.kind.String()
	}

	return ligature.ErrParse.WithPosition(tok.pos).
		With(
			slog.String("expected", expected),
			slog.String("found", found),
		)
}

func errUnexpected(pos ligature.Position, input string) *ligature.Error {
	return ligature.ErrParse.WithPosition(pos).
		With(
			slog.String("error", "unexpected character"),
			slog.String("input", input),
		)
}
