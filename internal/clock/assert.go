//go:build !vclockdebug

package clock

// debugAssertions enables invariant checks on every constructed clock.
// Build with -tags vclockdebug to turn them on.
const debugAssertions = false
