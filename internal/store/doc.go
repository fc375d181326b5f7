// Package store provides SQLite-based persistence for embedded content.
//
// One table, embedded_content, maps the natural key (content_type,
// content_id) to the canonical text, its embedding vector, denormalized
// display metadata, and timestamps. The natural key is unique; Upsert
// fully overwrites the mutable fields of an existing row rather than
// merging, so re-embedding an edited item is idempotent in effect.
//
// Vectors are serialized as little-endian float32 blobs. That encoding is
// internal; nothing outside this package depends on it.
//
// # Basic Usage
//
//	db, err := store.NewSQLiteStore("~/.semindex/index.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	err = db.Upsert(ctx, &store.EmbeddedContent{
//	    ContentType: types.ContentTypeDataset,
//	    ContentID:   "ds-42",
//	    Title:       "Maize Trials 2024",
//	    Content:     canonicalText,
//	    Vector:      vector,
//	})
//
// # Drivers
//
// Two SQLite drivers are supported via build tags: modernc.org/sqlite
// (pure Go, the default) and github.com/mattn/go-sqlite3 (cgo_sqlite tag).
// Schema migrations are versioned with semver and applied on open.
package store
