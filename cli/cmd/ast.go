package cmd

import (
	"context"
	"io"
	"os"

	"github.com/ardnew/ligature/wander"
)

// AST prints the syntax tree of a Wander script.
type AST struct {
	Script string `arg:"" help:"Script file, name on the search path, or '-' for stdin" default:"-" name:"script" optional:""`
	Source bool   `       help:"Print the script in canonical source form instead"`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) error {
	return a.run(ctx, os.Stdout)
}

func (a *AST) run(ctx context.Context, w io.Writer) error {
	logger := logger("ast")

	path, err := resolveScript(ctx, a.Script)
	if err != nil {
		return err
	}

	src, err := openSource(path)
	if err != nil {
		return err
	}
	defer src.Close()

	script, err := wander.ParseReader(ctx, src, wander.WithLogger(logger))
	if err != nil {
		return err
	}

	if a.Source {
		return script.Format(ctx, w)
	}

	return script.Print(ctx, w)
}
