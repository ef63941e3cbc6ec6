// Package watch re-runs the tracker view pipeline whenever the dataset or
// its configuration changes on disk. Bursts of file events are coalesced by
// a Debouncer before the pipeline runs.
package watch
