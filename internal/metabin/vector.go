package metabin

import "math"

// SimilarityVector is a fixed-length score vector with one coordinate per
// reference-genome axis chosen by the active BasisStrategy. Axes are not named
// inside the vector: two vectors may only be compared if they were built
// against the same ordered axis list.
type SimilarityVector []float64

// Magnitude returns the Euclidean norm of the vector.
func (v SimilarityVector) Magnitude() float64 {
	return magnitude(v)
}

// Sum returns the total of all coordinates.
func (v SimilarityVector) Sum() float64 {
	sum := 0.0
	for _, x := range v {
		sum += x
	}
	return sum
}

// ArgMax returns the index of the largest coordinate (first on ties).
func (v SimilarityVector) ArgMax() int {
	max := 0
	for i, x := range v {
		if x > v[max] {
			max = i
		}
	}
	return max
}

// VectorStrategy folds one BLAST hit into a running per-(contig, genome) score.
type VectorStrategy interface {
	// Update returns the new running score given the current one and a hit
	Update(score float64, m Match) float64
}

// sumStrategy accumulates total alignment strength: each hit contributes its
// identity-weighted aligned span.
type sumStrategy struct{}

func (sumStrategy) Update(score float64, m Match) float64 {
	return score + m.Identity*float64(m.Span())/100.0
}

// bestStrategy keeps only the single strongest hit's identity.
type bestStrategy struct{}

func (bestStrategy) Update(score float64, m Match) float64 {
	return math.Max(score, m.Identity)
}

// VectorBuilder owns the per-(contig, genome) score accumulation for one
// round of vector building. The driver feeds it one Match at a time and asks
// for finished SimilarityVectors over a chosen axis list at the end.
type VectorBuilder struct {
	strategy VectorStrategy

	// minSum and maxSum bound the admissible coordinate total of a vector
	minSum float64
	maxSum float64

	// scores maps contig id -> genome id -> running score
	scores map[string]map[string]float64

	// hits maps contig id -> genome id -> number of hits folded in
	hits map[string]map[string]int

	// maxCoord maps contig id -> index of the max coordinate at store time
	maxCoord map[string]int
}

// NewVectorBuilder creates an empty builder using the passed accumulation
// strategy and admissibility bounds.
func NewVectorBuilder(strategy VectorStrategy, minSum, maxSum float64) *VectorBuilder {
	return &VectorBuilder{
		strategy: strategy,
		minSum:   minSum,
		maxSum:   maxSum,
		scores:   make(map[string]map[string]float64),
		hits:     make(map[string]map[string]int),
		maxCoord: make(map[string]int),
	}
}

// Update folds a hit of contigID against genomeID into the running scores.
func (vb *VectorBuilder) Update(contigID string, m Match, genomeID string) {
	if _, ok := vb.scores[contigID]; !ok {
		vb.scores[contigID] = make(map[string]float64)
		vb.hits[contigID] = make(map[string]int)
	}

	vb.scores[contigID][genomeID] = vb.strategy.Update(vb.scores[contigID][genomeID], m)
	vb.hits[contigID][genomeID]++
}

// Average divides every accumulated score by the number of hits that produced
// it, converting sums into means. A post-pass: call once, after all Updates.
func (vb *VectorBuilder) Average() {
	for contigID, genomes := range vb.scores {
		for genomeID := range genomes {
			if n := vb.hits[contigID][genomeID]; n > 0 {
				genomes[genomeID] /= float64(n)
			}
		}
	}
}

// Vector assembles contigID's scores into a SimilarityVector over the passed
// ordered axis list. Genomes the contig never hit score zero.
func (vb *VectorBuilder) Vector(contigID string, axes []string) SimilarityVector {
	v := make(SimilarityVector, len(axes))
	for i, genomeID := range axes {
		v[i] = vb.scores[contigID][genomeID]
	}
	return v
}

// StoreVector files a finished vector into vectors under contigID, unless its
// coordinate total falls outside the admissible range: a total below the
// minimum means no real evidence, and a total at or above the maximum is
// almost always a repeat-region artifact. Returns whether the vector was kept.
//
// Kept vectors also have their max-coordinate index recorded for the "best"
// comparator.
func (vb *VectorBuilder) StoreVector(vectors map[string]SimilarityVector, contigID string, v SimilarityVector) bool {
	sum := v.Sum()
	if sum < vb.minSum || sum >= vb.maxSum {
		return false
	}

	vectors[contigID] = v
	vb.maxCoord[contigID] = v.ArgMax()
	return true
}

// Scores exposes the raw contig -> genome -> score map, used by the hot-group
// basis selection.
func (vb *VectorBuilder) Scores() map[string]map[string]float64 {
	return vb.scores
}

// MaxCoord returns the recorded max-coordinate index for a stored contig
// vector and whether one was recorded.
func (vb *VectorBuilder) MaxCoord(contigID string) (int, bool) {
	i, ok := vb.maxCoord[contigID]
	return i, ok
}
