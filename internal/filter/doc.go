// Package filter implements the multi-select filters of the tracker view.
// Each [Multi] owns the ordered options of one categorical dimension and
// exposes the mutations a user interface performs on it (select, unselect,
// click to isolate, bulk restore). A [Set] groups the nine filters of a
// session and seeds them from the loaded dataset.
//
// Filters are not safe for concurrent use. Subscribers are notified
// synchronously, on the goroutine performing the mutation.
package filter
