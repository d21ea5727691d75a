//go:build vclockdebug

package clock

const debugAssertions = true
