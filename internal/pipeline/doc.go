// Package pipeline fans sequence-pair groups out over a worker pool, runs an
// Engine-like Compartmenter on each, merges the results and ranks them once.
//
// The only contract to implement is Compartmenter (Group).
// This keeps the pipeline swappable and testable.
package pipeline
