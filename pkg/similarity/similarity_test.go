package similarity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCosineSelfIsOne(t *testing.T) {
	v := Vector{0.3, -0.5, 0.8, 0.1}
	score, err := Cosine(v, v)
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestCosineSymmetric(t *testing.T) {
	a := Vector{1, 2, 3}
	b := Vector{-2, 0.5, 4}

	ab, err := Cosine(a, b)
	assert.NoError(t, err)
	ba, err := Cosine(b, a)
	assert.NoError(t, err)
	assert.Equal(t, ab, ba)
}

func TestCosineZeroVector(t *testing.T) {
	zero := Vector{0, 0, 0}
	other := Vector{1, 2, 3}

	score, err := Cosine(zero, other)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, score)

	score, err = Cosine(zero, zero)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestCosineLengthMismatch(t *testing.T) {
	_, err := Cosine(Vector{1, 2}, Vector{1, 2, 3})
	assert.Error(t, err)
}

func TestCosineOrthogonalAndOpposite(t *testing.T) {
	score, err := Cosine(Vector{1, 0}, Vector{0, 1})
	assert.NoError(t, err)
	assert.InDelta(t, 0.0, score, 1e-9)

	score, err = Cosine(Vector{1, 0}, Vector{-1, 0})
	assert.NoError(t, err)
	assert.InDelta(t, -1.0, score, 1e-9)
}

func TestTopN(t *testing.T) {
	target := uuid.New()
	near := uuid.New()
	far := uuid.New()
	noVec := uuid.New()

	candidates := []Candidate{
		{Id: target, Vector: Vector{1, 0}}, // self, skipped
		{Id: far, Vector: Vector{0, 1}},
		{Id: near, Vector: Vector{0.9, 0.1}},
		{Id: noVec}, // no vector, skipped
	}

	scored, err := TopN(target, Vector{1, 0}, candidates, 10)
	assert.NoError(t, err)
	assert.Len(t, scored, 2)
	assert.Equal(t, near, scored[0].Id)
	assert.Equal(t, far, scored[1].Id)

	scored, err = TopN(target, Vector{1, 0}, candidates, 1)
	assert.NoError(t, err)
	assert.Len(t, scored, 1)
	assert.Equal(t, near, scored[0].Id)
}

func TestClustersGreedy(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()

	candidates := []Candidate{
		{Id: a, Vector: Vector{1, 0}},
		{Id: b, Vector: Vector{0.99, 0.05}},
		{Id: c, Vector: Vector{0, 1}},
	}

	clusters, err := Clusters(candidates, 0.9)
	assert.NoError(t, err)
	assert.Len(t, clusters, 2)
	assert.ElementsMatch(t, []uuid.UUID{a, b}, clusters[0])
	assert.Equal(t, []uuid.UUID{c}, clusters[1])
}
