package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ardnew/ligature/ligature"
	"github.com/ardnew/ligature/wander"
)

func TestEval_Run(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "identity"+ScriptExt, `
-- returns its argument
let identity = fn(value) { value }
identity(<testEntity>)
`)
	writeFile(t, dir, "facts"+ScriptExt, `<betty> @<age> 5 <people>`)

	ctx := WithSearchPath(t.Context(), []string{dir})

	tests := []struct {
		name string
		eval Eval
		want string
	}{
		{"script on path", Eval{Script: "identity"}, "<testEntity>\n"},
		{"expression", Eval{Expr: "not(false)"}, "true\n"},
		{"empty expression result", Eval{Expr: "let x = 1"}, "nothing\n"},
		{"json", Eval{Script: "facts", Output: outputJSON},
			`{"attribute":"age","context":"people","entity":"betty","kind":"Integer","value":5}` + "\n"},
		{"yaml", Eval{Expr: `"hello"`, Output: outputYAML}, "hello\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			if err := tt.eval.run(ctx, &buf); err != nil {
				t.Fatalf("eval error: %v", err)
			}

			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestEval_Errors(t *testing.T) {
	ctx := WithSearchPath(t.Context(), []string{t.TempDir()})

	tests := []struct {
		name string
		eval Eval
		want error
	}{
		{"script not found", Eval{Script: "missing"}, ErrScriptNotFound},
		{"parse error", Eval{Expr: "let = 1"}, ligature.ErrParse},
		{"unbound name", Eval{Expr: "nobody"}, wander.ErrUnboundName},
		{"type error", Eval{Expr: "not(1)"}, wander.ErrCall},
		{"call depth", Eval{Expr: "let f = fn() { f() }; f()", MaxDepth: 10}, wander.ErrCallDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			err := tt.eval.run(ctx, &buf)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}

			if buf.Len() != 0 {
				t.Errorf("expected no output on error, got %q", buf.String())
			}
		})
	}
}
