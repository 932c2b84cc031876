package domain

import "math"

// Cosine returns the cosine similarity of a and b in [-1, 1]. Both vectors
// must be finite and have a non-zero magnitude.
func Cosine(a, b AudioFeatureVector) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}

	va, vb := a.Values(), b.Values()
	var dot, normA, normB float64
	for i := range va {
		dot += va[i] * vb[i]
		normA += va[i] * va[i]
		normB += vb[i] * vb[i]
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim > 1.0 {
		sim = 1.0
	} else if sim < -1.0 {
		sim = -1.0
	}
	return sim, nil
}
