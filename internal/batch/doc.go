// Package batch resolves many cells at once. Position arrays are split into
// runs of equal identity, each run is handed to its tile's handler in one
// call, and chunks of the arrays are processed on a bounded worker pool.
package batch
