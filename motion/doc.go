// Package motion reconciles polled vehicle position fixes against known
// track geometry and produces timed motion paths for rendering.
//
// An Engine owns every piece of mutable state: vehicle states, the match
// cache and the clock. It is not safe for concurrent use; the host drives
// it from a single goroutine, typically through a Batch stepped once per
// render frame.
package motion
