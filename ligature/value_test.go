package ligature

import (
	"errors"
	"math/big"
	"testing"
)

func TestNewIdentifier(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"test", false},
		{"_private", false},
		{"snake_case_2", false},
		{"A", false},
		{"", true},
		{"2fast", true},
		{"has space", true},
		{"dash-ed", true},
		{"<angle>", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			id, err := NewIdentifier(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrFormat) {
					t.Fatalf("expected ErrFormat, got %v", err)
				}

				if !id.IsZero() {
					t.Errorf("expected zero identifier on error, got %q", id)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if id.Name() != tt.input {
				t.Errorf("expected %q, got %q", tt.input, id.Name())
			}
		})
	}
}

func TestEntityAndAttribute_Render(t *testing.T) {
	e, err := NewEntity("testEntity")
	if err != nil {
		t.Fatal(err)
	}

	if e.String() != "<testEntity>" {
		t.Errorf("expected <testEntity>, got %s", e)
	}

	a, err := NewAttribute("name")
	if err != nil {
		t.Fatal(err)
	}

	if a.String() != "@<name>" {
		t.Errorf("expected @<name>, got %s", a)
	}

	if e.Identifier() != EntityOf(e.Identifier()).Identifier() {
		t.Error("EntityOf should preserve identifier")
	}
}

func TestParseInteger(t *testing.T) {
	huge := "123456789012345678901234567890123456789012345678901234567890"

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"0", "0", false},
		{"24601", "24601", false},
		{huge, huge, false},
		{"", "", true},
		{"-5", "", true},
		{"12a", "", true},
		{"1.5", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseInteger(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrFormat) {
					t.Fatalf("expected ErrFormat, got %v", err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			want, _ := new(big.Int).SetString(tt.want, 10)
			if got.Big().Cmp(want) != 0 {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		input   string
		want    Float
		wantErr bool
	}{
		{"3.03", 3.03, false},
		{"0.5", 0.5, false},
		{"3", 0, true},
		{".5", 0, true},
		{"5.", 0, true},
		{"1.2.3", 0, true},
		{"1e5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFloat(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrFormat) {
					t.Fatalf("expected ErrFormat, got %v", err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseBytes(t *testing.T) {
	tests := []struct {
		input   string
		want    []byte
		wantErr bool
	}{
		{"0x00", []byte{0x00}, false},
		{"0xDEADbeef", []byte{0xde, 0xad, 0xbe, 0xef}, false},
		{"0x", nil, true},
		{"0x0", nil, true},
		{"0xzz", nil, true},
		{"00ff", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBytes(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrFormat) {
					t.Fatalf("expected ErrFormat, got %v", err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if string(got.Bytes()) != string(tt.want) {
				t.Errorf("expected %x, got %x", tt.want, got.Bytes())
			}
		})
	}
}

func TestParseString(t *testing.T) {
	tests := []struct {
		input   string
		want    String
		wantErr bool
	}{
		{`"Hello"`, "Hello", false},
		{`""`, "", false},
		{`"tab\there"`, "tab\there", false},
		{`"quote\"d"`, `quote"d`, false},
		{`"slash\/"`, "slash/", false},
		{`"é"`, "é", false},
		{`"unterminated`, "", true},
		{`"bad\q"`, "", true},
		{`"short\u00e"`, "", true},
		{`"inner"quote"`, "", true},
		{`"\u00e9"`, "é", false},
		{`"\ud83d\ude00"`, "\U0001F600", false},
		{`"a\ud83d\ude00b"`, "a\U0001F600b", false},
		{`"\ud83d"`, "", true},
		{`"\ud83dx"`, "", true},
		{`"\ude00\ud83d"`, "", true},
		{`"\ud83d\u0041"`, "", true},
		{`"\ud83d\ude0"`, "", true},
		{"\"\xff\"", "", true},
		{"\"ok\xc3\"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseString(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrFormat) {
					t.Fatalf("expected ErrFormat, got %v", err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestValue_StringRoundTrip(t *testing.T) {
	inputs := []string{
		`"Hello"`,
		`"line\nbreak"`,
		`"back\\slash"`,
	}

	for _, in := range inputs {
		s, err := ParseString(in)
		if err != nil {
			t.Fatalf("parse %s: %v", in, err)
		}

		if s.String() != in {
			t.Errorf("expected %s, got %s", in, s.String())
		}
	}

	if got := Float(3).String(); got != "3.0" {
		t.Errorf("expected 3.0, got %s", got)
	}

	if got := NewBytes([]byte{0xab, 0x01}).String(); got != "0xab01" {
		t.Errorf("expected 0xab01, got %s", got)
	}
}

func TestEqual_VariantAware(t *testing.T) {
	e1, _ := NewEntity("a")
	e2, _ := NewEntity("a")
	e3, _ := NewEntity("b")

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same entity", e1, e2, true},
		{"different entity", e1, e3, false},
		{"same integer", NewInteger(5), NewInteger(5), true},
		{"integer vs float", NewInteger(5), Float(5), false},
		{"string vs entity", String("a"), e1, false},
		{"same bytes", NewBytes([]byte{1}), NewBytes([]byte{1}), true},
		{"different bytes", NewBytes([]byte{1}), NewBytes([]byte{2}), false},
		{"nil vs value", nil, String(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestNewStatement_RequiresAllFields(t *testing.T) {
	e, _ := NewEntity("e")
	a, _ := NewAttribute("a")
	c, _ := NewEntity("c")

	s, err := NewStatement(e, a, Float(3.03), c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.String() != "<e> @<a> 3.03 <c>" {
		t.Errorf("unexpected rendering: %s", s)
	}

	if _, err := NewStatement(e, a, nil, c); !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat for nil value, got %v", err)
	}

	if _, err := NewStatement(Entity{}, a, String("x"), c); !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat for zero entity, got %v", err)
	}
}
