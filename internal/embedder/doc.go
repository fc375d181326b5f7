// Package embedder wraps remote text-embedding providers behind a single
// interface. One call in, one vector out.
//
// Supported providers:
//   - openai: OpenAI embeddings API (requires a bearer credential)
//   - ollama: local Ollama server (no credential)
//   - local: deterministic hash-based vectors for development and tests
//
// # Design
//
// Providers are constructed with an already-resolved credential and fail
// at construction time when it is missing, so a client with an empty key
// never exists. The client performs no caching and no retries: re-embed
// policy belongs to the batch job, and result freshness is guaranteed by
// re-reading the store on every search.
//
// # Basic Usage
//
//	emb, err := embedder.New(embedder.Config{
//	    Provider: embedder.ProviderOpenAI,
//	    APIKey:   key,
//	})
//	if err != nil {
//	    return err
//	}
//	defer emb.Close()
//
//	vector, err := emb.Embed(ctx, "soil moisture dataset for maize trials")
package embedder
