// Package cmd implements the ligature subcommands: eval, read, ast, repl,
// and version.
//
// Each command reads its input from a file argument or standard input and
// writes results to standard output. Diagnostics go to the default logger.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path of
	// the configuration file, without extension.
	ConfigIdentifier = "config"

	// MaxDepthIdentifier is the kong variable identifier containing the
	// default maximum call depth.
	MaxDepthIdentifier = "maxDepth"
)
