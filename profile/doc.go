// Package profile provides optional runtime profiling for the ligature
// command.
//
// Profiling is compiled in only with the "pprof" build tag. Without it,
// [Modes] is empty and [Profiler.Start] returns a no-op:
//
//	go build -tags pprof .
//	ligature --pprof-mode cpu eval script.wander
//
// A Profiler wraps [github.com/pkg/profile]:
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/profiles", Quiet: true}
//	defer p.Start().Stop()
//
// Profiles are written to Path with names matching the mode (cpu.pprof,
// mem.pprof, trace.out). The default path used by the CLI is "pprof" under
// the user cache directory. Analyze them with go tool pprof:
//
//	go tool pprof -http=: ./ligature /tmp/profiles/cpu.pprof
//
// Building with the tag also imports [net/http/pprof], which registers the
// /debug/pprof/ handlers on [net/http.DefaultServeMux].
package profile
