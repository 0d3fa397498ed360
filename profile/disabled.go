//go:build !pprof

package profile

// Modes returns nil when built without the [Tag] build tag.
func Modes() []string { return nil }

func start(Profiler) Stopper { return ignore{} }
