package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ardnew/ligature/pkg"
)

func TestAST_Run(t *testing.T) {
	path := writeFile(t, t.TempDir(), "block"+ScriptExt, "let x = 5\n{\n  let x = 7\n  x\n}")

	var buf bytes.Buffer

	if err := (&AST{Script: path}).run(t.Context(), &buf); err != nil {
		t.Fatalf("ast error: %v", err)
	}

	want := `Script
  Let: x
    Value: Integer: 5
  Scope
    Let: x
      Value: Integer: 7
    Reference: x
`
	if buf.String() != want {
		t.Errorf("AST mismatch:\nwant:\n%s\ngot:\n%s", want, buf.String())
	}

	buf.Reset()

	if err := (&AST{Script: path, Source: true}).run(t.Context(), &buf); err != nil {
		t.Fatalf("format error: %v", err)
	}

	if want := "let x = 5\n{ let x = 7; x }\n"; buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestVersion_Run(t *testing.T) {
	var buf bytes.Buffer

	if err := (&Version{}).run(&buf); err != nil {
		t.Fatalf("version error: %v", err)
	}

	if !strings.HasPrefix(buf.String(), pkg.Name+" ") || !strings.Contains(buf.String(), pkg.Version) {
		t.Errorf("unexpected version output %q", buf.String())
	}

	buf.Reset()

	if err := (&Version{Short: true}).run(&buf); err != nil {
		t.Fatalf("version error: %v", err)
	}

	if buf.String() != pkg.Version+"\n" {
		t.Errorf("expected %q, got %q", pkg.Version+"\n", buf.String())
	}
}
