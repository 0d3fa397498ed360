// Package pkg holds the identity of the ligature module: its name, version,
// and authors, for use in help text and default paths.
//
//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of the module, embedded at build time
// from the VERSION file.
var Version = strings.TrimSpace(version)

const (
	// Name is the command name and the base name of the configuration and
	// cache directories.
	Name = "ligature"
	// Description is a one-line summary used in help output.
	Description = "Read ligature statements and evaluate Wander scripts"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
