package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/ligature/ligature"
	"github.com/ardnew/ligature/lig"
)

const people = `
# ages
<betty> @<age> 5 <people>
<bob> @<age> 7 <people>
<betty> @<knows> <bob> <people>
`

func TestRead_Run(t *testing.T) {
	path := writeFile(t, t.TempDir(), "people.lig", people)

	tests := []struct {
		name string
		read Read
		want string
	}{
		{
			"lig",
			Read{Files: []string{path}},
			"<betty> @<age> 5 <people>\n<bob> @<age> 7 <people>\n<betty> @<knows> <bob> <people>\n",
		},
		{
			"where",
			Read{Files: []string{path}, Where: `kind == "Integer" && value > 5`},
			"<bob> @<age> 7 <people>\n",
		},
		{
			"json compact",
			Read{Files: []string{path}, Format: outputJSON, Where: `attribute == "knows"`},
			`[{"attribute":"knows","context":"people","entity":"betty","kind":"Entity","value":"bob"}]` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			if err := tt.read.run(t.Context(), &buf); err != nil {
				t.Fatalf("read error: %v", err)
			}

			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestRead_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "people.lig", people)

	var buf bytes.Buffer

	r := Read{Files: []string{path}, Format: outputYAML, Where: `entity == "bob"`, Indent: 2}
	if err := r.run(t.Context(), &buf); err != nil {
		t.Fatalf("read error: %v", err)
	}

	for _, want := range []string{"entity: bob", "attribute: age", "value: 7", "kind: Integer", "context: people"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected YAML to contain %q, got:\n%s", want, buf.String())
		}
	}

	if strings.Contains(buf.String(), "betty") {
		t.Errorf("filtered statement in output:\n%s", buf.String())
	}
}

func TestRead_Errors(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.lig", people)
	bad := writeFile(t, dir, "bad.lig", "<betty> @<age>")

	tests := []struct {
		name string
		read Read
		want error
	}{
		{"malformed", Read{Files: []string{bad}}, ligature.ErrParse},
		{"filter", Read{Files: []string{good}, Where: "entity +"}, lig.ErrFilterCompile},
		{"missing", Read{Files: []string{dir + "/missing.lig"}}, ErrOpenSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			if err := tt.read.run(t.Context(), &buf); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}

			if buf.Len() != 0 {
				t.Errorf("expected no output on error, got %q", buf.String())
			}
		})
	}
}
