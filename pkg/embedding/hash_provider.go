package embedding

import (
	"math"
	"strings"
)

// HashProvider is the deterministic fallback used when no remote embedding
// model is configured. It projects a bag of words into a fixed-length vector
// via a rolling hash. It is a stand-in, not a semantic model: two texts with
// overlapping vocabulary score as similar, nothing more.
type HashProvider struct{}

func NewHashProvider() EmbeddingProvider {
	return &HashProvider{}
}

func (p *HashProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	vec := make([]float32, Dimension)

	words := strings.Fields(strings.ToLower(text))
	for i, word := range words {
		slot := wordHash(word) % Dimension
		// Earlier words weigh more; the projection is order-sensitive.
		vec[slot] += float32(1.0 / float64(1+i))
	}

	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{
			Values: normalizeVector(vec),
		},
	}, nil
}

// wordHash is a 32-bit rolling hash over the word's bytes.
func wordHash(word string) uint32 {
	var h uint32
	for i := 0; i < len(word); i++ {
		h = h*31 + uint32(word[i])
	}
	return h
}

// normalizeVector normalizes a vector to unit length (magnitude = 1).
// A zero vector (empty text) is returned unchanged.
func normalizeVector(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)

	if magnitude == 0 {
		return vec
	}

	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = float32(float64(v) / magnitude)
	}
	return normalized
}
