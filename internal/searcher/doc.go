// Package searcher orchestrates similarity search and recommendation:
// embed the query (or look up the anchor's stored vector), load the full
// candidate pool, rank it with an exact linear scan, and shape the top
// results with display snippets.
//
// Provider failures surface to callers wrapped as types.ErrSearchFailed;
// they are never swallowed. Results are produced fresh on every call and
// never cached, trading latency for freshness.
package searcher
