//go:build arm64

package lanes

import "golang.org/x/sys/cpu"

func init() {
	hasWideIssue = cpu.ARM64.HasASIMD
	initCapabilities()
}
