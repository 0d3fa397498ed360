package ligature

import (
	"bytes"
	"encoding/hex"
	"log/slog"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Value is a literal in the data model. Exactly one of [Entity], [String],
// [Integer], [Float], or [Bytes]; the interface is sealed.
type Value interface {
	Kind() Kind
	String() string

	value()
}

// Kind indicates the variant of a [Value].
type Kind int

const (
	// KindEntity is an [Entity] value.
	KindEntity Kind = iota

	// KindString is a [String] value.
	KindString

	// KindInteger is an arbitrary-precision [Integer] value.
	KindInteger

	// KindFloat is a double-precision [Float] value.
	KindFloat

	// KindBytes is a [Bytes] value.
	KindBytes
)

// String returns a string representation of the value kind.
func (k Kind) String() string {
	switch k {
	case KindEntity:
		return "Entity"

	case KindString:
		return "String"

	case KindInteger:
		return "Integer"

	case KindFloat:
		return "Float"

	case KindBytes:
		return "Bytes"

	default:
		return "Unknown"
	}
}

// Kind implements [Value].
func (Entity) Kind() Kind { return KindEntity }

// String is a UTF-8 string value.
type String string

// Kind implements [Value].
func (String) Kind() Kind { return KindString }

// String renders the quoted literal form.
func (s String) String() string { return quote(string(s)) }

func (String) value() {}

// Integer is an arbitrary-precision integer value.
type Integer struct {
	n *big.Int
}

// NewInteger returns the Integer equal to n.
func NewInteger(n int64) Integer { return Integer{n: big.NewInt(n)} }

// IntegerOf returns an Integer equal to n. The argument is copied.
func IntegerOf(n *big.Int) Integer { return Integer{n: new(big.Int).Set(n)} }

// Big returns a copy of the integer as a *big.Int.
func (i Integer) Big() *big.Int {
	if i.n == nil {
		return new(big.Int)
	}

	return new(big.Int).Set(i.n)
}

// Kind implements [Value].
func (Integer) Kind() Kind { return KindInteger }

// String renders the decimal literal form.
func (i Integer) String() string {
	if i.n == nil {
		return "0"
	}

	return i.n.String()
}

func (Integer) value() {}

// Float is a double-precision floating point value.
type Float float64

// Kind implements [Value].
func (Float) Kind() Kind { return KindFloat }

// String renders the literal form, which always contains a decimal point.
func (f Float) String() string {
	s := strconv.FormatFloat(float64(f), 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}

	return s
}

func (Float) value() {}

// Bytes is an immutable byte sequence value.
type Bytes struct {
	b string
}

// NewBytes returns a Bytes value holding a copy of b.
func NewBytes(b []byte) Bytes { return Bytes{b: string(b)} }

// Bytes returns a copy of the byte sequence.
func (b Bytes) Bytes() []byte { return []byte(b.b) }

// Len returns the number of bytes.
func (b Bytes) Len() int { return len(b.b) }

// Kind implements [Value].
func (Bytes) Kind() Kind { return KindBytes }

// String renders the "0x" prefixed hexadecimal literal form.
func (b Bytes) String() string { return "0x" + hex.EncodeToString([]byte(b.b)) }

func (Bytes) value() {}

// Equal reports whether a and b are the same variant holding the same
// payload. Integers and floats never compare equal to each other.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if a.Kind() != b.Kind() {
		return false
	}

	switch x := a.(type) {
	case Entity:
		return x == b.(Entity)

	case String:
		return x == b.(String)

	case Integer:
		return x.Big().Cmp(b.(Integer).Big()) == 0

	case Float:
		return x == b.(Float)

	case Bytes:
		return bytes.Equal([]byte(x.b), []byte(b.(Bytes).b))

	default:
		return false
	}
}

// ParseInteger parses a decimal integer literal of arbitrary size.
func ParseInteger(text string) (Integer, error) {
	if text == "" || strings.IndexFunc(text, notDigit) >= 0 {
		return Integer{}, formatError("integer", text)
	}

	n, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return Integer{}, formatError("integer", text)
	}

	return Integer{n: n}, nil
}

// ParseFloat parses a float literal of the form digits '.' digits.
func ParseFloat(text string) (Float, error) {
	whole, frac, ok := strings.Cut(text, ".")
	if !ok || whole == "" || frac == "" ||
		strings.IndexFunc(whole, notDigit) >= 0 ||
		strings.IndexFunc(frac, notDigit) >= 0 {
		return 0, formatError("float", text)
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, ErrFormat.Wrap(err).
			With(slog.String("kind", "float"), slog.String("input", text))
	}

	return Float(f), nil
}

// ParseBytes parses a byte literal: "0x" followed by one or more pairs of
// hexadecimal digits.
func ParseBytes(text string) (Bytes, error) {
	digits, ok := strings.CutPrefix(text, "0x")
	if !ok || digits == "" || len(digits)%2 != 0 {
		return Bytes{}, formatError("bytes", text)
	}

	b, err := hex.DecodeString(digits)
	if err != nil {
		return Bytes{}, ErrFormat.Wrap(err).
			With(slog.String("kind", "bytes"), slog.String("input", text))
	}

	return Bytes{b: string(b)}, nil
}

// ParseString parses a double-quoted string literal and resolves its escape
// sequences. Supported escapes are \b \f \n \r \t \v \" \\ \/ and \uXXXX,
// where a character outside the Basic Multilingual Plane is written as a
// UTF-16 surrogate pair of two \u escapes. The text must be valid UTF-8.
func ParseString(text string) (String, error) {
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		return "", formatError("string", text)
	}

	body := text[1 : len(text)-1]
	if !utf8.ValidString(body) {
		return "", formatError("string", text)
	}

	var sb strings.Builder

	sb.Grow(len(body))

	for i := 0; i < len(body); i++ {
		c := body[i]

		switch c {
		case '"', '\n', '\r':
			return "", formatError("string", text)

		case '\\':
		default:
			sb.WriteByte(c)

			continue
		}

		i++
		if i >= len(body) {
			return "", formatError("string", text)
		}

		switch body[i] {
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'v':
			sb.WriteByte('\v')
		case '"', '\\', '/':
			sb.WriteByte(body[i])
		case 'u':
			r, ok := hexRune(body, i+1)
			if !ok {
				return "", formatError("string", text)
			}

			i += 4

			if utf16.IsSurrogate(r) {
				// A surrogate is only valid as the first half of a pair
				// spelled as two consecutive escapes.
				var lo rune
				if i+2 < len(body) && body[i+1] == '\\' && body[i+2] == 'u' {
					lo, ok = hexRune(body, i+3)
				} else {
					ok = false
				}

				if r = utf16.DecodeRune(r, lo); !ok || r == utf8.RuneError {
					return "", formatError("string", text)
				}

				i += 6
			}

			sb.WriteRune(r)
		default:
			return "", formatError("string", text)
		}
	}

	return String(sb.String()), nil
}

// hexRune decodes the four hex digits of a \u escape starting at s[i].
func hexRune(s string, i int) (rune, bool) {
	if i+4 > len(s) {
		return 0, false
	}

	n, err := strconv.ParseUint(s[i:i+4], 16, 16)
	if err != nil {
		return 0, false
	}

	return rune(n), true
}

// quote renders s as a string literal accepted by [ParseString].
func quote(s string) string {
	var sb strings.Builder

	sb.Grow(len(s) + 2)
	sb.WriteByte('"')

	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\v':
			sb.WriteString(`\v`)
		default:
			if r < 0x20 || r == utf8.RuneError {
				sb.WriteString(`\u`)
				sb.WriteString(leftPad(strconv.FormatInt(int64(r), 16), 4))

				continue
			}

			sb.WriteRune(r)
		}
	}

	sb.WriteByte('"')

	return sb.String()
}

func leftPad(s string, n int) string {
	if len(s) >= n {
		return s
	}

	return strings.Repeat("0", n-len(s)) + s
}

func notDigit(r rune) bool { return r < '0' || r > '9' }

func formatError(kind, input string) *Error {
	return ErrFormat.With(slog.String("kind", kind), slog.String("input", input))
}
