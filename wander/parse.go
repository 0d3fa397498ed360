package wander

import (
	"context"
	"log/slog"

	"github.com/ardnew/ligature/ligature"
)

// Parse parses Wander source into a [Script].
// Malformed source fails with [ligature.ErrParse] located at the offending
// token, with the source attached for [ligature.Error.Snippet].
func Parse(ctx context.Context, source string, opts ...Option) (*Script, error) {
	cfg := makeConfig(opts...)

	p := &parser{lex: newLexer(source)}

	script, err := p.parseScript()
	if err != nil {
		err = ligature.AttachSource(err, source)

		cfg.logger.TraceContext(ctx, "parse failed",
			slog.Int("source_bytes", len(source)),
			slog.Any("error", err))

		return nil, err
	}

	cfg.logger.TraceContext(ctx, "parse complete",
		slog.Int("source_bytes", len(source)),
		slog.Int("element_count", len(script.Elements)))

	return script, nil
}

// parser holds the state of a single parse. It is built per call and never
// shared.
type parser struct {
	lex    *lexer
	peeked *token
}

// parseScript parses: (Element ';'?)* EOF.
func (p *parser) parseScript() (*Script, error) {
	elements, err := p.parseElements(tokenEOF)
	if err != nil {
		return nil, err
	}

	return &Script{Elements: elements}, nil
}

// parseElements parses elements up to, but not including, a token of kind
// end. Elements may be separated by optional semicolons.
func (p *parser) parseElements(end tokenKind) ([]Element, error) {
	elements := make([]Element, 0)

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}

		switch tok.kind {
		case end:
			return elements, nil

		case tokenSemicolon:
			p.peeked = nil

			continue

		case tokenEOF:
			return nil, errExpected(tok, end.String())
		}

		el, err := p.parseElement()
		if err != nil {
			return nil, err
		}

		elements = append(elements, el)
	}
}

// parseElement parses: LetStatement | Expression.
func (p *parser) parseElement() (Element, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	if tok.kind == tokenLet {
		return p.parseLet()
	}

	return p.parseExpression()
}

// parseLet parses: 'let' Name '=' Expression.
func (p *parser) parseLet() (*LetStatement, error) {
	let, err := p.expect(tokenLet)
	if err != nil {
		return nil, err
	}

	name, err := p.expect(tokenName)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(tokenEquals); err != nil {
		return nil, err
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &LetStatement{Name: name.id, Expression: expr, Pos: let.pos}, nil
}

// parseExpression parses any expression. A let statement is rejected here.
func (p *parser) parseExpression() (Expression, error) {
	tok, err := p.take()
	if err != nil {
		return nil, err
	}

	switch tok.kind {
	case tokenTrue, tokenFalse:
		return &ValueExpression{Value: Bool(tok.kind == tokenTrue), Pos: tok.pos}, nil

	case tokenString, tokenInteger, tokenFloat, tokenBytes:
		return &ValueExpression{Value: Literal{tok.value}, Pos: tok.pos}, nil

	case tokenAttribute:
		return &ValueExpression{
			Value: AttributeValue{ligature.AttributeOf(tok.id)},
			Pos:   tok.pos,
		}, nil

	case tokenEntity:
		return p.parseEntityOrStatement(tok)

	case tokenName:
		return p.parseReferenceOrCall(tok)

	case tokenLBrace:
		elements, err := p.parseBlockBody()
		if err != nil {
			return nil, err
		}

		return &Scope{Elements: elements, Pos: tok.pos}, nil

	case tokenFn:
		return p.parseFunction(tok)

	case tokenLet:
		return nil, ligature.ErrParse.WithPosition(tok.pos).
			With(
				slog.String("error", "let is not an expression"),
				slog.String("expected", "expression"),
			)

	default:
		return nil, errExpected(tok, "expression")
	}
}

// parseEntityOrStatement parses an entity literal, or a statement literal
// when the entity is followed by an attribute:
// Entity Attribute Value Entity.
func (p *parser) parseEntityOrStatement(entity token) (Expression, error) {
	next, err := p.peek()
	if err != nil {
		return nil, err
	}

	if next.kind != tokenAttribute {
		return &ValueExpression{Value: Literal{entity.value}, Pos: entity.pos}, nil
	}

	p.peeked = nil

	value, err := p.take()
	if err != nil {
		return nil, err
	}

	switch value.kind {
	case tokenEntity, tokenString, tokenInteger, tokenFloat, tokenBytes:
	default:
		return nil, errExpected(value, "value")
	}

	within, err := p.expect(tokenEntity)
	if err != nil {
		return nil, err
	}

	return &ValueExpression{
		Value: StatementValue{ligature.Statement{
			Entity:    ligature.EntityOf(entity.id),
			Attribute: ligature.AttributeOf(next.id),
			Value:     value.value,
			Context:   ligature.EntityOf(within.id),
		}},
		Pos: entity.pos,
	}, nil
}

// parseReferenceOrCall parses: Name | Name '(' Arguments? ')'.
func (p *parser) parseReferenceOrCall(name token) (Expression, error) {
	next, err := p.peek()
	if err != nil {
		return nil, err
	}

	if next.kind != tokenLParen {
		return &ReferenceExpression{Name: name.id, Pos: name.pos}, nil
	}

	p.peeked = nil

	args := make([]Expression, 0)

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}

		if tok.kind == tokenRParen {
			p.peeked = nil

			break
		}

		if len(args) > 0 {
			if _, err := p.expect(tokenComma); err != nil {
				return nil, err
			}
		}

		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)
	}

	return &FunctionCall{Name: name.id, Arguments: args, Pos: name.pos}, nil
}

// parseFunction parses: 'fn' '(' Parameters? ')' '{' Element* '}'.
func (p *parser) parseFunction(fn token) (*FunctionDefinition, error) {
	if _, err := p.expect(tokenLParen); err != nil {
		return nil, err
	}

	params := make([]ligature.Identifier, 0)
	seen := make(map[string]bool)

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}

		if tok.kind == tokenRParen {
			p.peeked = nil

			break
		}

		if len(params) > 0 {
			if _, err := p.expect(tokenComma); err != nil {
				return nil, err
			}
		}

		param, err := p.expect(tokenName)
		if err != nil {
			return nil, err
		}

		if seen[param.text] {
			return nil, ligature.ErrParse.WithPosition(param.pos).
				With(
					slog.String("error", "duplicate parameter"),
					slog.String("name", param.text),
				)
		}

		seen[param.text] = true
		params = append(params, param.id)
	}

	if _, err := p.expect(tokenLBrace); err != nil {
		return nil, err
	}

	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}

	return &FunctionDefinition{Parameters: params, Body: body, Pos: fn.pos}, nil
}

// parseBlockBody parses the elements of a block after its opening brace,
// and consumes the closing brace.
func (p *parser) parseBlockBody() ([]Element, error) {
	elements, err := p.parseElements(tokenRBrace)
	if err != nil {
		return nil, err
	}

	p.peeked = nil // '}'

	return elements, nil
}

// Helper methods

func (p *parser) peek() (token, error) {
	if p.peeked != nil {
		return *p.peeked, nil
	}

	tok, err := p.lex.next()
	if err != nil {
		return token{}, err
	}

	p.peeked = &tok

	return tok, nil
}

func (p *parser) take() (token, error) {
	tok, err := p.peek()
	if err != nil {
		return token{}, err
	}

	p.peeked = nil

	return tok, nil
}

func (p *parser) expect(kind tokenKind) (token, error) {
	tok, err := p.take()
	if err != nil {
		return token{}, err
	}

	if tok.kind != kind {
		return token{}, errExpected(tok, kind.String())
	}

	return tok, nil
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
