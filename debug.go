//go:build !d3d11nodebug

package d3d11

// debugChecks enables the expensive consistency checks: cross-stage
// descriptor comparison on reads, dynamic mask subset verification and
// offset alignment re-checks. Build with -tags d3d11nodebug to compile
// them out.
const debugChecks = true
