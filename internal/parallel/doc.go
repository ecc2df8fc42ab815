// Package parallel reads checklist files with bounded concurrency.
//
// WorkerPool runs load functions on at most maxWorkers goroutines and hands
// results back in submission order, so callers can render them exactly as
// the path list lists them.
package parallel
