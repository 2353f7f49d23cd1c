package executor

import (
	"os"
	"runtime"
	"strings"
	"sync"
)

// EnvOverride is the environment variable that forces the default backend.
const EnvOverride = "BISECT_EXEC"

var (
	defaultOnce sync.Once
	defaultExec Executor
)

// Default returns the process-wide default executor.
//
// Selection runs once: the BISECT_EXEC environment variable wins when set to
// a known backend name; otherwise single-CPU processes get Serial and
// everything else gets Parallel.
func Default() Executor {
	defaultOnce.Do(func() {
		defaultExec = selectDefault()
	})
	return defaultExec
}

func selectDefault() Executor {
	if override := os.Getenv(EnvOverride); override != "" {
		if ex, ok := Parse(override); ok {
			return ex
		}
		// Unknown override, fall through to auto-selection.
	}

	if runtime.GOMAXPROCS(0) == 1 {
		return Serial{}
	}

	return Parallel{}
}

// Parse resolves a backend name to a stateless executor.
// Pool is excluded: it owns goroutines and must be constructed explicitly.
func Parse(s string) (Executor, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "serial":
		return Serial{}, true
	case "parallel":
		return Parallel{}, true
	default:
		return nil, false
	}
}
