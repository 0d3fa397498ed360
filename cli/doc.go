// Package cli contains the command line interface for ligature.
//
// # Usage
//
//	ligature [flags] [script]              evaluate a Wander script (default)
//	ligature eval -e 'not(false)'          evaluate source from the command line
//	ligature read people.lig --where 'entity == "betty"' --format json
//	ligature ast script.wander             print the syntax tree
//	ligature repl [prelude]                start an interactive session
//
// # Script Search Path
//
// A script argument that is not a path to an existing file is looked up by
// name, with and without the ".wander" extension, in each directory given
// with --path (-I), then each directory listed in $WANDERPATH, then the
// scripts directory under the user configuration directory.
//
// # Configuration
//
// Flag defaults are read from the user configuration directory, first from
// config.json and then from config.lig. The latter is a ligature document
// in which each statement about the entity <config> sets the flag named by
// its attribute, with underscores standing for hyphens:
//
//	<config> @<log_level> "info" <cli>
//	<config> @<max_depth> 500 <cli>
//
// Flags given on the command line take precedence.
//
// # Logging Options
//
//   - --log-level: Minimum log level (trace, debug, info, warn, error)
//   - --log-format: Log output format (json, text)
//   - --log-time: Timestamp layout, or "none"
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize and indent log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o ligature .
//
//   - --pprof-mode: Enable profiling (see --help for the available modes)
//   - --pprof-dir: Profile output directory
package cli
