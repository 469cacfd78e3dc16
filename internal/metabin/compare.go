package metabin

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// CompareStrategy scores the similarity of two SimilarityVectors. All
// comparators work positionally: both vectors must have been built against
// the same ordered axis list, and a length mismatch is an error.
type CompareStrategy interface {
	Compare(v1, v2 SimilarityVector) (float64, error)
}

// dotProduct is plain Σ v1[i]*v2[i].
type dotProduct struct{}

func (dotProduct) Compare(v1, v2 SimilarityVector) (float64, error) {
	if err := sameLength(v1, v2); err != nil {
		return 0, err
	}

	total := 0.0
	for i := range v1 {
		total += v1[i] * v2[i]
	}
	return total, nil
}

// distanceCompare rewards coordinates that are close in relative terms. Each
// coordinate where either side is nonzero contributes 1/(1+x), x being the
// relative difference |a-b|/max(a,b). Coordinates that are zero on both sides
// carry no evidence and are skipped entirely.
type distanceCompare struct{}

func (distanceCompare) Compare(v1, v2 SimilarityVector) (float64, error) {
	if err := sameLength(v1, v2); err != nil {
		return 0, err
	}

	total := 0.0
	for i := range v1 {
		a, b := v1[i], v2[i]
		if a == 0 && b == 0 {
			continue
		}
		total += 1.0 / (1.0 + relDiff(a, b))
	}
	return total, nil
}

// bestCompare looks only at each vector's own strongest coordinate. If the two
// maxima sit on different axes the vectors disagree about their best reference
// genome and the similarity is zero; otherwise it is 1/(1+relative difference)
// at the shared axis.
type bestCompare struct{}

func (bestCompare) Compare(v1, v2 SimilarityVector) (float64, error) {
	if err := sameLength(v1, v2); err != nil {
		return 0, err
	}
	if len(v1) == 0 {
		return 0, nil
	}

	i1, i2 := v1.ArgMax(), v2.ArgMax()
	if i1 != i2 {
		return 0, nil
	}

	a, b := v1[i1], v2[i2]
	if a == 0 && b == 0 {
		return 0, nil
	}
	return 1.0 / (1.0 + relDiff(a, b)), nil
}

// binningCompare is a binary order-agreement check. Coordinates are walked in
// descending vector-1 order; if vector-2 ever increases across a step where
// vector-1 decreased, the two contigs rank their reference genomes differently
// and the result is 0. Otherwise 1. topSize, when positive, limits the walk to
// the leading (strongest-signal) steps.
type binningCompare struct {
	topSize int
}

func (c binningCompare) Compare(v1, v2 SimilarityVector) (float64, error) {
	if err := sameLength(v1, v2); err != nil {
		return 0, err
	}

	order := sortOrder(v1)
	steps := len(order) - 1
	if c.topSize > 0 && steps > c.topSize {
		steps = c.topSize
	}

	for k := 0; k < steps; k++ {
		i, j := order[k], order[k+1]
		if v1[i] > v1[j] && v2[j] > v2[i] {
			return 0, nil
		}
	}
	return 1, nil
}

// rankingCompare is the graded cousin of binningCompare. Only coordinates
// nonzero in both vectors are comparable. Starting from a base of 1 when any
// comparable pair exists, every ordered pair in vector-1's descending sort
// earns +1 when vector-2 ranks it the same way and -2 when it disagrees, so a
// single inversion outweighs an agreement.
type rankingCompare struct{}

func (rankingCompare) Compare(v1, v2 SimilarityVector) (float64, error) {
	if err := sameLength(v1, v2); err != nil {
		return 0, err
	}

	var shared []int
	for i := range v1 {
		if v1[i] != 0 && v2[i] != 0 {
			shared = append(shared, i)
		}
	}
	if len(shared) < 2 {
		return 0, nil
	}

	sort.SliceStable(shared, func(a, b int) bool {
		return v1[shared[a]] > v1[shared[b]]
	})

	score := 1.0
	for a := 0; a < len(shared); a++ {
		for b := a + 1; b < len(shared); b++ {
			if v2[shared[a]] >= v2[shared[b]] {
				score++
			} else {
				score -= 2
			}
		}
	}
	return score, nil
}

// sortOrder returns coordinate indexes sorted by v descending, stable so
// equal coordinates keep their axis order.
func sortOrder(v SimilarityVector) []int {
	order := make([]int, len(v))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return v[order[a]] > v[order[b]]
	})
	return order
}

// relDiff is |a-b|/max(a,b). Callers guarantee max(a,b) > 0.
func relDiff(a, b float64) float64 {
	return math.Abs(a-b) / math.Max(a, b)
}

func sameLength(v1, v2 SimilarityVector) error {
	if len(v1) != len(v2) {
		return errors.Errorf("vector length mismatch: %d vs %d", len(v1), len(v2))
	}
	return nil
}
