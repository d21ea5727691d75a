package lanes

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Kernel identifies a lane-parallel implementation.
type Kernel uint8

const (
	// Generic is the scalar fallback, available everywhere.
	Generic Kernel = iota
	// Unrolled processes four lanes per iteration.
	Unrolled
)

// String returns the string representation of a Kernel.
func (k Kernel) String() string {
	switch k {
	case Generic:
		return "generic"
	case Unrolled:
		return "unrolled"
	default:
		return "unknown"
	}
}

// ParseKernel parses a kernel name.
func ParseKernel(s string) (Kernel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generic":
		return Generic, true
	case "unrolled":
		return Unrolled, true
	default:
		return Generic, false
	}
}

// EnvOverride is the environment variable consulted at init.
const EnvOverride = "VCLOCK_LANES"

var (
	activeKernel Kernel
	hasOverride  bool

	// set by platform-specific init
	hasWideIssue bool
)

func initCapabilities() {
	hasOverride = false
	if override := os.Getenv(EnvOverride); override != "" {
		if k, ok := ParseKernel(override); ok {
			hasOverride = true
			install(k)
			return
		}
	}
	install(selectBest())
}

func selectBest() Kernel {
	switch runtime.GOARCH {
	case "amd64", "arm64":
		if hasWideIssue {
			return Unrolled
		}
	}
	return Generic
}

// Use switches the active kernel. It is not safe to call concurrently with
// other functions of this package and is meant for process startup.
func Use(k Kernel) error {
	if k != Generic && k != Unrolled {
		return fmt.Errorf("lanes: unknown kernel %d", k)
	}
	hasOverride = false
	install(k)
	return nil
}

// ActiveKernel returns the kernel currently in use.
func ActiveKernel() Kernel {
	return activeKernel
}

// IsOverridden reports whether VCLOCK_LANES selected the active kernel.
// A later call to Use clears it.
func IsOverridden() bool {
	return hasOverride
}

func install(k Kernel) {
	activeKernel = k
	if k == Unrolled {
		maxImpl = maxUnrolled
		equalImpl = equalUnrolled
		dominanceImpl = dominanceUnrolled
		lessOrEqualImpl = lessOrEqualUnrolled
		return
	}
	maxImpl = maxGeneric
	equalImpl = equalGeneric
	dominanceImpl = dominanceGeneric
	lessOrEqualImpl = lessOrEqualGeneric
}
