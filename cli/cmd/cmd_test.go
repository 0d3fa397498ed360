package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/ligature/ligature"
	"github.com/ardnew/ligature/wander"
)

// writeFile writes content to name under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}

	return path
}

func TestResolveScript(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()

	writeFile(t, first, "shared"+ScriptExt, "1")
	writeFile(t, second, "shared"+ScriptExt, "2")
	writeFile(t, second, "bare", "3")
	writeFile(t, second, "only"+ScriptExt, "4")

	ctx := WithSearchPath(t.Context(), []string{first, second})

	tests := []struct {
		name string
		want string
	}{
		{"shared", filepath.Join(first, "shared"+ScriptExt)},
		{"bare", filepath.Join(second, "bare")},
		{"only", filepath.Join(second, "only"+ScriptExt)},
		{"-", "-"},
		{filepath.Join(first, "explicit"), filepath.Join(first, "explicit")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveScript(ctx, tt.name)
			if err != nil {
				t.Fatalf("resolve error: %v", err)
			}

			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}

	if _, err := resolveScript(ctx, "missing"); !errors.Is(err, ErrScriptNotFound) {
		t.Errorf("expected ErrScriptNotFound, got %v", err)
	}
}

func TestOpenSource_Missing(t *testing.T) {
	_, err := openSource(filepath.Join(t.TempDir(), "missing.lig"))
	if !errors.Is(err, ErrOpenSource) {
		t.Errorf("expected ErrOpenSource, got %v", err)
	}
}

func TestOpenSourceFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.lig", "<a> @<n> 1 <c>")
	b := writeFile(t, dir, "b.lig", "<b> @<n> 2 <c>\n")

	link := filepath.Join(dir, "link.lig")
	if err := os.Symlink(a, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	srcs, err := openSourceFiles([]string{a, b, link, a})
	if err != nil {
		t.Fatalf("open error: %v", err)
	}
	defer srcs.Close()

	data, err := io.ReadAll(srcs.Reader())
	if err != nil {
		t.Fatalf("read error: %v", err)
	}

	want := "<a> @<n> 1 <c>\n<b> @<n> 2 <c>\n\n"
	if string(data) != want {
		t.Errorf("expected %q, got %q", want, data)
	}

	if _, err := openSourceFiles([]string{a, filepath.Join(dir, "missing")}); !errors.Is(err, ErrOpenSource) {
		t.Errorf("expected ErrOpenSource, got %v", err)
	}
}

func TestWriteValue(t *testing.T) {
	s, err := ligature.NewStatement(
		mustEntity(t, "betty"), mustAttribute(t, "age"),
		ligature.NewInteger(5), mustEntity(t, "people"))
	if err != nil {
		t.Fatalf("statement: %v", err)
	}

	tests := []struct {
		name   string
		value  wander.Value
		format string
		want   string
	}{
		{"wander integer", wander.Literal{Value: ligature.NewInteger(7)}, outputWander, "7\n"},
		{"wander string", wander.Literal{Value: ligature.String("hi")}, outputWander, "\"hi\"\n"},
		{"json bool", wander.Bool(true), outputJSON, "true\n"},
		{"json nothing", wander.Nothing, outputJSON, "null\n"},
		{"json statement", wander.StatementValue{Statement: s}, outputJSON,
			`{"attribute":"age","context":"people","entity":"betty","kind":"Integer","value":5}` + "\n"},
		{"yaml string", wander.Literal{Value: ligature.String("hi")}, outputYAML, "hi\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			if err := writeValue(t.Context(), &buf, tt.value, tt.format); err != nil {
				t.Fatalf("write error: %v", err)
			}

			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func mustEntity(t *testing.T, name string) ligature.Entity {
	t.Helper()

	e, err := ligature.NewEntity(name)
	if err != nil {
		t.Fatalf("entity %q: %v", name, err)
	}

	return e
}

func mustAttribute(t *testing.T, name string) ligature.Attribute {
	t.Helper()

	a, err := ligature.NewAttribute(name)
	if err != nil {
		t.Fatalf("attribute %q: %v", name, err)
	}

	return a
}
