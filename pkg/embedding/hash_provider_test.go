package embedding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func magnitude(vec []float32) float64 {
	var m float64
	for _, v := range vec {
		m += float64(v) * float64(v)
	}
	return math.Sqrt(m)
}

func TestHashProviderDeterministic(t *testing.T) {
	p := NewHashProvider()

	a, err := p.Generate("buy milk and call maria", "RETRIEVAL_DOCUMENT")
	assert.NoError(t, err)
	b, err := p.Generate("buy milk and call maria", "RETRIEVAL_DOCUMENT")
	assert.NoError(t, err)

	assert.Equal(t, a.Embedding.Values, b.Embedding.Values)
	assert.Len(t, a.Embedding.Values, Dimension)
}

func TestHashProviderNormalized(t *testing.T) {
	p := NewHashProvider()

	res, err := p.Generate("project phoenix kickoff with anna and jonas", "")
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, magnitude(res.Embedding.Values), 1e-6)
}

func TestHashProviderEmptyTextStaysZero(t *testing.T) {
	p := NewHashProvider()

	res, err := p.Generate("", "")
	assert.NoError(t, err)
	assert.Equal(t, 0.0, magnitude(res.Embedding.Values))
}

func TestHashProviderOrderSensitive(t *testing.T) {
	p := NewHashProvider()

	ab, _ := p.Generate("alpha beta", "")
	ba, _ := p.Generate("beta alpha", "")

	// Same vocabulary lands in the same slots but with different position
	// weights, so the vectors differ unless the words collide.
	assert.NotEqual(t, ab.Embedding.Values, ba.Embedding.Values)
}

func TestHashProviderCaseInsensitive(t *testing.T) {
	p := NewHashProvider()

	lower, _ := p.Generate("meeting notes", "")
	upper, _ := p.Generate("MEETING NOTES", "")
	assert.Equal(t, lower.Embedding.Values, upper.Embedding.Values)
}
