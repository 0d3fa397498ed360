package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ardnew/ligature/pkg"
)

// Version prints the program version.
type Version struct {
	Short bool `help:"Print only the version number" short:"s"`
}

// Run executes the version command.
func (v *Version) Run(_ context.Context) error {
	return v.run(os.Stdout)
}

func (v *Version) run(w io.Writer) error {
	if v.Short {
		_, err := fmt.Fprintln(w, pkg.Version)

		return err
	}

	_, err := fmt.Fprintf(w, "%s %s\n", pkg.Name, pkg.Version)

	return err
}
