// Package indexer owns the embedding lifecycle of catalog content:
// single-item embedding, the sequential batch job, deletion, and
// coverage statistics.
//
// The batch loop is intentionally one item at a time with a jittered
// ~500ms delay between items. That cooperative pacing is the whole rate
// limiting story; do not parallelize the loop without replacing it with
// an explicit limiter. Per-item failures are logged, skipped, and left
// for a re-run; only the success count is reported.
package indexer
