package embedding

// Dimension is the fixed length of every note embedding stored by the system.
// Remote models that emit wider vectors are folded down to this size so that
// stored vectors stay mutually comparable.
const Dimension = 128

type EmbeddingResponseEmbedding struct {
	Values []float32
}

type EmbeddingResponse struct {
	Embedding EmbeddingResponseEmbedding
}

// EmbeddingProvider defines the interface for generating text embeddings
type EmbeddingProvider interface {
	Generate(text string, taskType string) (*EmbeddingResponse, error)
}
