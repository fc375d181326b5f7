// Package rank implements the similarity engine: exact cosine similarity
// and a full linear-scan top-K ranking over a candidate pool. O(N*D) per
// query, which is the intended algorithm at catalog scale; no approximate
// index is used, and adding one later must preserve identical output.
package rank

import (
	"math"
	"sort"
)

// Candidate pairs an id with its stored vector.
type Candidate struct {
	ID     string
	Vector []float32
}

// Ranked is one candidate with its similarity to the query.
type Ranked struct {
	ID         string
	Similarity float64
}

// CosineSimilarity computes dot(a,b) / (||a||*||b||) in [-1, 1].
// Mismatched dimensions or a zero-magnitude vector yield 0 rather than
// NaN, so degenerate rows can never poison a ranking.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Rank scores every candidate against the query vector and returns the
// top k by descending similarity. Ties keep the candidates' relative
// insertion order, so results are deterministic for a given pool.
func Rank(query []float32, candidates []Candidate, k int) []Ranked {
	scored := make([]Ranked, len(candidates))
	for i, c := range candidates {
		scored[i] = Ranked{
			ID:         c.ID,
			Similarity: CosineSimilarity(query, c.Vector),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	if k < 0 {
		k = 0
	}
	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k]
}
