package domain

import "math"

// CosineSimilarity computes the cosine similarity between two equal-length
// vectors in a single pass. Result is in [-1, 1].
// If either vector has zero norm the result is exactly 0, never an error.
func CosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
