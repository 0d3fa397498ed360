package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`

// Profiler selects a profiling mode and the directory profiles are written
// to. The zero Profiler does nothing.
type Profiler struct {
	Mode  string
	Path  string
	Quiet bool
}

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// Start begins profiling in p.Mode. It returns a no-op Stopper if p.Mode is
// empty or unknown, or if the binary was built without the [Tag] build tag.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

// Enabled reports whether the binary was built with profiling support.
func Enabled() bool { return len(Modes()) > 0 }

type ignore struct{}

func (ignore) Stop() {}
