package lig

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/ardnew/ligature/ligature"
)

const sampleDocument = `<betty> @<name> "Betty" <people>
<betty> @<age> 24601 <people>
<betty> @<height> 3.03 <people>
<betty> @<knows> <bob> <people>
<bob> @<key> 0x00ff <secrets>
`

func TestWrite_RoundTrip(t *testing.T) {
	statements, err := ReadDocument(t.Context(), sampleDocument)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}

	got := WriteString(statements)
	if got != sampleDocument {
		t.Errorf("write mismatch:\nwant: %q\ngot:  %q", sampleDocument, got)
	}

	again, err := ReadDocument(t.Context(), got)
	if err != nil {
		t.Fatalf("re-read error: %v", err)
	}

	for i := range statements {
		if !statements[i].Equal(again[i]) {
			t.Errorf("statement %d changed: %s vs %s", i, statements[i], again[i])
		}
	}
}

func TestWrite_EscapesStrings(t *testing.T) {
	input := `<e> @<a> "tab\tquote\"slash\\" <c>` + "\n"

	statements, err := ReadDocument(t.Context(), input)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}

	if got := WriteString(statements); got != input {
		t.Errorf("expected %q, got %q", input, got)
	}
}

func TestToNative(t *testing.T) {
	huge, _ := new(big.Int).SetString("99999999999999999999999", 10)

	tests := []struct {
		name  string
		value ligature.Value
		want  any
	}{
		{"entity", mustEntity(t, "bob"), "bob"},
		{"string", ligature.String("hi"), "hi"},
		{"integer", ligature.NewInteger(7), int64(7)},
		{"float", ligature.Float(1.5), 1.5},
		{"bytes", ligature.NewBytes([]byte{0xca, 0xfe}), "0xcafe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToNative(tt.value); got != tt.want {
				t.Errorf("expected %#v, got %#v", tt.want, got)
			}
		})
	}

	got, ok := ToNative(ligature.IntegerOf(huge)).(*big.Int)
	if !ok || got.Cmp(huge) != 0 {
		t.Errorf("expected *big.Int %s, got %#v", huge, got)
	}
}

func TestFormatJSON(t *testing.T) {
	statements, err := ReadDocument(t.Context(), sampleDocument)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}

	var buf bytes.Buffer
	if err := FormatJSON(t.Context(), &buf, statements, 2); err != nil {
		t.Fatalf("format error: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}

	if len(decoded) != len(statements) {
		t.Fatalf("expected %d objects, got %d", len(statements), len(decoded))
	}

	first := decoded[0]
	if first["entity"] != "betty" || first["value"] != "Betty" || first["kind"] != "String" {
		t.Errorf("unexpected first object: %v", first)
	}

	if decoded[3]["kind"] != "Entity" || decoded[3]["value"] != "bob" {
		t.Errorf("unexpected entity-valued object: %v", decoded[3])
	}
}

func TestFormatYAML(t *testing.T) {
	statements, err := ReadDocument(t.Context(), `<e> @<a> 5 <c>`)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}

	var buf bytes.Buffer
	if err := FormatYAML(t.Context(), &buf, statements, 2); err != nil {
		t.Fatalf("format error: %v", err)
	}

	got := buf.String()
	for _, want := range []string{"entity: e", "attribute: a", "value: 5", "kind: Integer", "context: c"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected YAML to contain %q, got:\n%s", want, got)
		}
	}
}

func TestFilter(t *testing.T) {
	statements, err := ReadDocument(t.Context(), sampleDocument)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}

	tests := []struct {
		name  string
		where string
		want  int
	}{
		{"empty keeps all", "", 5},
		{"by entity", `entity == "betty"`, 4},
		{"by context", `context == "secrets"`, 1},
		{"by kind", `kind == "Entity"`, 1},
		{"by value", `kind == "Integer" && value > 100`, 1},
		{"by attribute prefix", `attribute startsWith "k"`, 2},
		{"none", `entity == "nobody"`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kept, err := Filter(t.Context(), statements, tt.where)
			if err != nil {
				t.Fatalf("filter error: %v", err)
			}

			if len(kept) != tt.want {
				t.Errorf("expected %d statements, got %d", tt.want, len(kept))
			}
		})
	}
}

func TestFilter_NumericValues(t *testing.T) {
	const document = `<a> @<n> 7 <c>
<b> @<n> 250 <c>
<c> @<n> 1.5 <c>
<d> @<n> 99.75 <c>
<e> @<n> 123456789012345678901234567890 <c>
<f> @<n> "250" <c>
`

	statements, err := ReadDocument(t.Context(), document)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}

	tests := []struct {
		name  string
		where string
		want  []string
	}{
		{"integer greater", `kind == "Integer" && value > 100`, []string{"b", "e"}},
		{"integer equal", `kind == "Integer" && value == 7`, []string{"a"}},
		{"float less", `kind == "Float" && value < 50`, []string{"c"}},
		{"mixed numeric", `kind in ["Integer", "Float"] && value >= 7 && value < 100`, []string{"a", "d"}},
		{"big integer", `kind == "Integer" && value > 1e20`, []string{"e"}},
		{"string value", `kind == "String" && value == "250"`, []string{"f"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kept, err := Filter(t.Context(), statements, tt.where)
			if err != nil {
				t.Fatalf("filter error: %v", err)
			}

			got := make([]string, len(kept))
			for i, s := range kept {
				got[i] = s.Entity.Identifier().Name()
			}

			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFilter_Errors(t *testing.T) {
	statements, err := ReadDocument(t.Context(), sampleDocument)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}

	if _, err := Filter(t.Context(), statements, `entity ==`); !errors.Is(err, ErrFilterCompile) {
		t.Errorf("expected ErrFilterCompile, got %v", err)
	}

	if _, err := Filter(t.Context(), statements, `entity + 1`); !errors.Is(err, ErrFilterCompile) {
		t.Errorf("expected ErrFilterCompile for non-boolean, got %v", err)
	}
}
