// Package log provides leveled, structured logging on top of [log/slog].
//
// A [Logger] is configured once, with functional options, when it is made:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// Every level has a context-aware variant. The plain variants use the
// context returned by [DefaultContextProvider]:
//
//	logger.InfoContext(ctx, "document read", slog.Int("statements", n))
//	logger.Trace("call", slog.String("name", "not"))
//
// Levels, from least to most severe, are [LevelTrace], [LevelDebug],
// [LevelInfo], [LevelWarn] and [LevelError]. Trace is used by the reader
// and the evaluator for per-token and per-call detail.
//
// # Zero value
//
// The zero Logger discards everything. Library packages in this module keep
// a Logger in their configuration and only log when a caller supplies one.
//
// # Pretty output
//
// With [WithPretty] (the default), records are colorized with lipgloss when
// the output is a terminal. Grouped attributes and values implementing
// [slog.LogValuer], such as parse errors, are flattened to dotted keys.
//
// # Package-level logging
//
// The package-level functions log through a default logger that writes to
// standard error. [Config] reconfigures it.
package log
