package wander

import (
	"log/slog"
	"unicode"
	"unicode/utf8"

	"github.com/ardnew/ligature/ligature"
)

// tokenKind identifies the lexical class of a token.
type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenName
	tokenLet
	tokenFn
	tokenTrue
	tokenFalse
	tokenEntity
	tokenAttribute
	tokenString
	tokenInteger
	tokenFloat
	tokenBytes
	tokenLParen
	tokenRParen
	tokenLBrace
	tokenRBrace
	tokenComma
	tokenEquals
	tokenSemicolon
)

var tokenNames = [...]string{
	tokenEOF:       "end of input",
	tokenName:      "name",
	tokenLet:       "let",
	tokenFn:        "fn",
	tokenTrue:      "true",
	tokenFalse:     "false",
	tokenEntity:    "entity",
	tokenAttribute: "attribute",
	tokenString:    "string",
	tokenInteger:   "integer",
	tokenFloat:     "float",
	tokenBytes:     "bytes",
	tokenLParen:    "(",
	tokenRParen:    ")",
	tokenLBrace:    "{",
	tokenRBrace:    "}",
	tokenComma:     ",",
	tokenEquals:    "=",
	tokenSemicolon: ";",
}

func (k tokenKind) String() string {
	if k < 0 || int(k) >= len(tokenNames) {
		return "unknown"
	}

	return tokenNames[k]
}

// keywords maps reserved words to their token kinds.
var keywords = map[string]tokenKind{
	"let":   tokenLet,
	"fn":    tokenFn,
	"true":  tokenTrue,
	"false": tokenFalse,
}

// Keywords returns the reserved words of the language.
func Keywords() []string {
	return []string{"false", "fn", "let", "true"}
}

var punctuation = map[rune]tokenKind{
	'(': tokenLParen,
	')': tokenRParen,
	'{': tokenLBrace,
	'}': tokenRBrace,
	',': tokenComma,
	'=': tokenEquals,
	';': tokenSemicolon,
}

// token is a single lexeme. Names, entities, and attributes carry their
// validated identifier; data model literals carry their value.
type token struct {
	kind  tokenKind
	text  string
	pos   ligature.Position
	id    ligature.Identifier
	value ligature.Value
}

// lexer splits Wander source into tokens. Literal alternatives are tried in
// a fixed order so that "@<" wins over "<" and "0x" bytes win over float,
// which wins over integer.
type lexer struct {
	input []byte
	pos   int
	line  int
	col   int
}

func newLexer(source string) *lexer {
	return &lexer{
		input: []byte(source),
		line:  1,
		col:   1,
	}
}

// next returns the next token, or a token of kind tokenEOF at end of input.
func (l *lexer) next() (token, error) {
	l.skipWhitespaceAndComments()

	pos := l.position()

	if l.eof() {
		return token{kind: tokenEOF, pos: pos}, nil
	}

	ch := l.peek()

	if kind, ok := punctuation[ch]; ok {
		l.advance()

		return token{kind: kind, text: string(ch), pos: pos}, nil
	}

	switch {
	case ch == '@':
		return l.lexAttribute(pos)

	case ch == '<':
		return l.lexEntity(pos)

	case ch == '"':
		return l.lexString(pos)

	case isDigit(ch):
		return l.lexNumber(pos)

	case isNameStart(ch):
		return l.lexName(pos)

	default:
		return token{}, ligature.ErrParse.WithPosition(pos).
			With(
				slog.String("error", "unexpected character"),
				slog.String("input", string(ch)),
			)
	}
}

// lexName lexes an identifier or keyword.
func (l *lexer) lexName(pos ligature.Position) (token, error) {
	start := l.pos

	for !l.eof() && isNameContinue(l.peek()) {
		l.advance()
	}

	text := string(l.input[start:l.pos])

	if kind, ok := keywords[text]; ok {
		return token{kind: kind, text: text, pos: pos}, nil
	}

	id, err := ligature.NewIdentifier(text)
	if err != nil {
		return token{}, ligature.ErrParse.WithPosition(pos).Wrap(err)
	}

	return token{kind: tokenName, text: text, pos: pos, id: id}, nil
}

// lexEntity lexes '<' identifier '>'.
func (l *lexer) lexEntity(pos ligature.Position) (token, error) {
	start := l.pos

	id, err := l.lexBracketed(pos)
	if err != nil {
		return token{}, err
	}

	return token{
		kind:  tokenEntity,
		text:  string(l.input[start:l.pos]),
		pos:   pos,
		id:    id,
		value: ligature.EntityOf(id),
	}, nil
}

// lexAttribute lexes '@<' identifier '>'.
func (l *lexer) lexAttribute(pos ligature.Position) (token, error) {
	start := l.pos

	l.advance() // '@'

	if l.peek() != '<' {
		return token{}, ligature.ErrParse.WithPosition(pos).
			With(slog.String("expected", "@<"), slog.String("input", "@"))
	}

	id, err := l.lexBracketed(pos)
	if err != nil {
		return token{}, err
	}

	return token{
		kind: tokenAttribute,
		text: string(l.input[start:l.pos]),
		pos:  pos,
		id:   id,
	}, nil
}

func (l *lexer) lexBracketed(pos ligature.Position) (ligature.Identifier, error) {
	start := l.pos

	l.advance() // '<'

	nameStart := l.pos

	for !l.eof() && isNameContinue(l.peek()) {
		l.advance()
	}

	name := string(l.input[nameStart:l.pos])

	if !l.expect('>') {
		return ligature.Identifier{}, ligature.ErrParse.WithPosition(pos).
			With(
				slog.String("expected", ">"),
				slog.String("input", string(l.input[start:l.pos])),
			)
	}

	id, err := ligature.NewIdentifier(name)
	if err != nil {
		return ligature.Identifier{}, ligature.ErrParse.WithPosition(pos).
			Wrap(err).
			With(slog.String("input", string(l.input[start:l.pos])))
	}

	return id, nil
}

// lexString lexes a double-quoted string literal.
func (l *lexer) lexString(pos ligature.Position) (token, error) {
	start := l.pos

	l.advance() // opening quote

	for {
		if l.eof() || l.peek() == '\n' {
			return token{}, ligature.ErrParse.WithPosition(pos).
				With(
					slog.String("error", "unterminated string"),
					slog.String("input", string(l.input[start:l.pos])),
				)
		}

		ch := l.peek()
		l.advance()

		if ch == '\\' {
			if !l.eof() {
				l.advance()
			}

			continue
		}

		if ch == '"' {
			break
		}
	}

	text := string(l.input[start:l.pos])

	s, err := ligature.ParseString(text)
	if err != nil {
		return token{}, ligature.ErrParse.WithPosition(pos).Wrap(err).
			With(slog.String("input", text))
	}

	return token{kind: tokenString, text: text, pos: pos, value: s}, nil
}

// lexNumber lexes a bytes, float, or integer literal.
func (l *lexer) lexNumber(pos ligature.Position) (token, error) {
	start := l.pos

	kind := tokenInteger

	if l.peekN(2) == "0x" {
		kind = tokenBytes

		l.advance()
		l.advance()

		for !l.eof() && isHexDigit(l.peek()) {
			l.advance()
		}
	} else {
		l.skipDigits()

		if l.peek() == '.' && isDigit(l.peekAt(1)) {
			kind = tokenFloat

			l.advance()
			l.skipDigits()
		}
	}

	if !l.eof() && (isNameContinue(l.peek()) || l.peek() == '.') {
		for !l.eof() && (isNameContinue(l.peek()) || l.peek() == '.') {
			l.advance()
		}

		return token{}, ligature.ErrParse.WithPosition(pos).
			With(
				slog.String("expected", kind.String()),
				slog.String("input", string(l.input[start:l.pos])),
			)
	}

	text := string(l.input[start:l.pos])

	var (
		value ligature.Value
		err   error
	)

	switch kind {
	case tokenBytes:
		value, err = ligature.ParseBytes(text)
	case tokenFloat:
		value, err = ligature.ParseFloat(text)
	default:
		value, err = ligature.ParseInteger(text)
	}

	if err != nil {
		return token{}, ligature.ErrParse.WithPosition(pos).Wrap(err).
			With(slog.String("input", text))
	}

	return token{kind: kind, text: text, pos: pos, value: value}, nil
}

func (l *lexer) skipDigits() {
	for !l.eof() && isDigit(l.peek()) {
		l.advance()
	}
}

// skipWhitespaceAndComments skips blanks and "--" line comments.
func (l *lexer) skipWhitespaceAndComments() {
	for !l.eof() {
		switch {
		case unicode.IsSpace(l.peek()):
			l.advance()

		case l.peekN(2) == "--":
			for !l.eof() && l.peek() != '\n' {
				l.advance()
			}

		default:
			return
		}
	}
}

// Helper methods

func (l *lexer) peek() rune { return l.peekAt(0) }

func (l *lexer) peekAt(n int) rune {
	if l.pos+n >= len(l.input) {
		return 0
	}

	r, _ := utf8.DecodeRune(l.input[l.pos+n:])

	return r
}

func (l *lexer) peekN(n int) string {
	if l.pos+n > len(l.input) {
		return string(l.input[l.pos:])
	}

	return string(l.input[l.pos : l.pos+n])
}

func (l *lexer) advance() {
	if l.eof() {
		return
	}

	r, size := utf8.DecodeRune(l.input[l.pos:])

	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

func (l *lexer) expect(ch rune) bool {
	if l.peek() == ch {
		l.advance()

		return true
	}

	return false
}

func (l *lexer) eof() bool {
	return l.pos >= len(l.input)
}

func (l *lexer) position() ligature.Position {
	return ligature.Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.col,
	}
}

// Character classification

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isNameStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isNameContinue(r rune) bool { return isNameStart(r) || isDigit(r) }
