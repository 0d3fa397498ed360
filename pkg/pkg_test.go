package pkg

import (
	"os"
	"strings"
	"testing"

	"golang.org/x/mod/semver"
)

func TestVersion(t *testing.T) {
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("read VERSION: %v", err)
	}

	if want := strings.TrimSpace(string(buf)); Version != want {
		t.Errorf("expected Version %q, got %q", want, Version)
	}

	if !semver.IsValid("v" + Version) {
		t.Errorf("Version %q is not a semantic version", Version)
	}
}

func TestIdentity(t *testing.T) {
	if Name != "ligature" {
		t.Errorf("expected Name ligature, got %q", Name)
	}

	if Description == "" {
		t.Error("expected a Description")
	}

	for i, author := range Author {
		if author.Name == "" && author.Email == "" {
			t.Errorf("Author[%d] must define at least Name or Email", i)
		}
	}
}
