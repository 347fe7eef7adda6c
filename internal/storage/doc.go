// Package storage persists the month-keyed event archive as JSON.
//
// The archive spans program invocations: each run merges its freshly scraped
// months over the stored ones and writes the result back, so calendar output
// can cover months the source site no longer serves. Archive I/O is strictly
// best-effort for the caller — a missing or corrupt archive degrades to a
// fresh-only run and a failed save never blocks calendar output.
package storage
