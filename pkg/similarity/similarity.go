package similarity

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
)

// Vector is a fixed-length embedding. All vectors compared against each other
// must share the same length.
type Vector = []float32

// Cosine returns the cosine similarity of a and b in [-1, 1].
// A length mismatch is a data-integrity bug upstream, so it is the one place
// in the system that errors instead of degrading.
func Cosine(a, b Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector length mismatch: %d vs %d", len(a), len(b))
	}

	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}

	if magA == 0 || magB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(magA) * math.Sqrt(magB)), nil
}

// Candidate pairs an id with its embedding for neighbor and cluster queries.
type Candidate struct {
	Id     uuid.UUID
	Vector Vector
}

// Scored is a candidate with its similarity to the query target.
type Scored struct {
	Id    uuid.UUID
	Score float64
}

// TopN returns the n most similar candidates to target, descending by score.
// The target itself and candidates without a vector are skipped.
func TopN(targetId uuid.UUID, target Vector, candidates []Candidate, n int) ([]Scored, error) {
	scored := make([]Scored, 0, len(candidates))
	for _, c := range candidates {
		if c.Id == targetId || len(c.Vector) == 0 {
			continue
		}
		score, err := Cosine(target, c.Vector)
		if err != nil {
			return nil, err
		}
		scored = append(scored, Scored{Id: c.Id, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if n > 0 && len(scored) > n {
		scored = scored[:n]
	}
	return scored, nil
}

// Clusters groups candidates transitively at the given threshold using a
// single greedy pass: each unassigned candidate seeds a cluster and every
// remaining unassigned candidate within threshold of the seed joins it.
// Membership can therefore depend on input order. This is an accepted
// approximation, kept cheap on purpose; do not replace it with transitive
// closure.
func Clusters(candidates []Candidate, threshold float64) ([][]uuid.UUID, error) {
	assigned := make(map[uuid.UUID]bool, len(candidates))
	var clusters [][]uuid.UUID

	for i, seed := range candidates {
		if assigned[seed.Id] || len(seed.Vector) == 0 {
			continue
		}
		cluster := []uuid.UUID{seed.Id}
		assigned[seed.Id] = true

		for _, other := range candidates[i+1:] {
			if assigned[other.Id] || len(other.Vector) == 0 {
				continue
			}
			score, err := Cosine(seed.Vector, other.Vector)
			if err != nil {
				return nil, err
			}
			if score >= threshold {
				cluster = append(cluster, other.Id)
				assigned[other.Id] = true
			}
		}

		clusters = append(clusters, cluster)
	}

	return clusters, nil
}
