// Package tracks loads route track geometry and serves it as independent,
// pre-flattened polylines per uppercase route key.
package tracks
