//go:build release

package gamemap

const assertions = false
