//go:build !debug

package breakout

const debugAssertions = false
