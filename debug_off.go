//go:build d3d11nodebug

package d3d11

// debugChecks is disabled in d3d11nodebug builds. See debug.go.
const debugChecks = false
