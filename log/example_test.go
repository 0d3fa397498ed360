package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/ligature/log"
)

func Example_configuration() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelDebug),
		log.WithFormat(log.FormatJSON),
		log.WithPretty(false),
		log.WithTimeLayout("none"))

	logger.Debug("reading document", slog.String("path", "people.lig"))
	// Output: {"level":"DEBUG","msg":"reading document","path":"people.lig"}
}

func Example_levels() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelWarn),
		log.WithPretty(false),
		log.WithTimeLayout("none"))

	logger.Info("not shown")
	logger.Warn("unbound name", slog.String("name", "x"))
	// Output: level=WARN msg="unbound name" name=x
}

func Example_withContext() {
	type requestKey struct{}

	ctx := context.WithValue(context.Background(), requestKey{}, "req-789")

	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelTrace),
		log.WithPretty(false),
		log.WithTimeLayout("none")).
		With(slog.String("component", "wander"))

	logger.TraceContext(ctx, "call", slog.Int("depth", 1))
	// Output: level=TRACE msg=call component=wander depth=1
}
