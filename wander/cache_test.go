package wander

import (
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/ligature/ligature"
)

func TestParseReader_Cache(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	const source = "let x = 5\nx"

	first, err := ParseReader(t.Context(), strings.NewReader(source))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	second, err := ParseReader(t.Context(), strings.NewReader(source))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if first != second {
		t.Errorf("expected cached script to be reused")
	}

	ClearCache()

	third, err := ParseReader(t.Context(), strings.NewReader(source))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if third == first {
		t.Errorf("expected a fresh parse after ClearCache")
	}

	got, err := third.Evaluate(t.Context())
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}

	if got.String() != "5" {
		t.Errorf("expected 5, got %s", got)
	}
}

func TestParseReader_CachesErrors(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	for range 2 {
		script, err := ParseReader(t.Context(), strings.NewReader("let = "))
		if !errors.Is(err, ligature.ErrParse) {
			t.Fatalf("expected ErrParse, got %v", err)
		}

		if script != nil {
			t.Errorf("expected nil script")
		}
	}
}

func TestParseReader_HashCollision(t *testing.T) {
	ClearCache()

	hash := sourceHash
	sourceHash = func(string) uint64 { return 42 }

	t.Cleanup(func() {
		sourceHash = hash

		ClearCache()
	})

	first, err := ParseReader(t.Context(), strings.NewReader("true"))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	second, err := ParseReader(t.Context(), strings.NewReader("<other>"))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if first == second {
		t.Fatal("colliding sources must not share a cached script")
	}

	got, err := second.Evaluate(t.Context())
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}

	if got.String() != "<other>" {
		t.Errorf("expected <other>, got %s", got)
	}

	again, err := ParseReader(t.Context(), strings.NewReader("true"))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if again != first {
		t.Error("expected the cached script for the original source")
	}
}
