package cmd

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/ardnew/ligature/cli/cmd/repl"
	"github.com/ardnew/ligature/wander"
)

// Repl starts an interactive Wander session.
type Repl struct {
	Prelude  string `arg:"" help:"Script evaluated before the first prompt, by file or name on the search path" name:"prelude" optional:""`
	CacheDir string `       help:"Directory holding the session history" default:"${cache}" type:"path"`
	MaxDepth int    `       help:"Maximum depth of nested function calls" default:"${maxDepth}"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return ErrNoTerminal
	}

	var prelude io.Reader

	if r.Prelude != "" {
		path, err := resolveScript(ctx, r.Prelude)
		if err != nil {
			return err
		}

		src, err := openSource(path)
		if err != nil {
			return err
		}
		defer src.Close()

		prelude = src
	}

	return repl.Run(ctx, prelude, r.CacheDir, logger("repl"),
		wander.WithMaxDepth(r.MaxDepth))
}
