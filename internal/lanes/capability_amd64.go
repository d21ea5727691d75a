//go:build amd64

package lanes

import "golang.org/x/sys/cpu"

func init() {
	hasWideIssue = cpu.X86.HasAVX2
	initCapabilities()
}
