package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ardnew/ligature/log"
	"github.com/ardnew/ligature/wander"
)

// Eval evaluates a Wander script and prints its result.
type Eval struct {
	Script   string `arg:""    help:"Script file, name on the search path, or '-' for stdin" default:"-" name:"script" optional:""`
	Expr     string `          help:"Evaluate the given source instead of a script"                                            short:"e"`
	MaxDepth int    `          help:"Maximum depth of nested function calls"                 default:"${maxDepth}"`
	Output   string `          help:"Result format"                                          default:"wander" enum:"wander,json,yaml" short:"o"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) error {
	return e.run(ctx, os.Stdout)
}

func (e *Eval) run(ctx context.Context, w io.Writer) error {
	logger := logger("eval")

	script, err := e.parse(ctx, logger)
	if err != nil {
		return err
	}

	result, err := script.Evaluate(ctx,
		wander.WithLogger(logger),
		wander.WithMaxDepth(e.MaxDepth),
	)
	if err != nil {
		return err
	}

	return writeValue(ctx, w, result, e.Output)
}

func (e *Eval) parse(ctx context.Context, logger log.Logger) (*wander.Script, error) {
	if e.Expr != "" {
		return wander.ParseReader(ctx, strings.NewReader(e.Expr), wander.WithLogger(logger))
	}

	path, err := resolveScript(ctx, e.Script)
	if err != nil {
		return nil, err
	}

	src, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	logger.DebugContext(ctx, "evaluate script", slog.String("path", path))

	return wander.ParseReader(ctx, src, wander.WithLogger(logger))
}
