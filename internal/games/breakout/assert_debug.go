//go:build debug

package breakout

// debugAssertions makes logic faults panic. Enabled with -tags debug.
const debugAssertions = true
