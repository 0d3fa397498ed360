package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/ligature/lig"
)

// Read reads ligature documents and prints their statements.
type Read struct {
	Files  []string `arg:"" help:"Document files, or '-' for stdin" name:"file" optional:"" type:"path"`
	Format string   `       help:"Output format"                     default:"lig" enum:"lig,json,yaml" short:"f"`
	Where  string   `       help:"Keep statements matching this expr predicate over entity, attribute, value, kind, and context" short:"w"`
	Indent int      `       help:"Indent width for json and yaml, or 0 for compact output" default:"2"`
}

// Run executes the read command.
func (r *Read) Run(ctx context.Context) error {
	return r.run(ctx, os.Stdout)
}

func (r *Read) run(ctx context.Context, w io.Writer) error {
	logger := logger("read")

	srcs, err := openSourceFiles(r.Files)
	if err != nil {
		return err
	}
	defer srcs.Close()

	statements, err := lig.ReadReader(ctx, srcs.Reader(), lig.WithLogger(logger))
	if err != nil {
		return err
	}

	statements, err = lig.Filter(ctx, statements, r.Where, lig.WithLogger(logger))
	if err != nil {
		return err
	}

	logger.DebugContext(ctx, "read statements",
		slog.Int("count", len(statements)),
		slog.String("format", r.Format))

	switch r.Format {
	case outputJSON:
		return lig.FormatJSON(ctx, w, statements, r.Indent)
	case outputYAML:
		return lig.FormatYAML(ctx, w, statements, r.Indent)
	default:
		return lig.Write(w, statements)
	}
}
