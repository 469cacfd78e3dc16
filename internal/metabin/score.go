package metabin

import (
	"github.com/metabin/metabin/config"
	"github.com/pkg/errors"
)

// Breakdown carries the four sub-scores behind a combined bin-pair score,
// for reporting and tuning.
type Breakdown struct {
	// Coverage is the fraction of coverage coordinates within tolerance
	Coverage float64 `json:"coverage"`

	// Tetra is the cosine similarity of the two tetra profiles
	Tetra float64 `json:"tetra"`

	// Ref is the reference-genome set agreement
	Ref float64 `json:"ref"`

	// Marker is the clamped marker-gene agreement
	Marker float64 `json:"marker"`
}

// Scorer combines the independent bin signals into one merge-decision score:
// a weighted sum of coverage, tetranucleotide, reference-genome, and
// marker-gene agreement, floored to exactly zero below a minimum.
type Scorer struct {
	// covWeight, tetraWeight, refWeight, markerWeight scale the sub-scores
	covWeight    float64
	tetraWeight  float64
	refWeight    float64
	markerWeight float64

	// covTolerance is the relative difference under which two coverage
	// coordinates count as agreeing
	covTolerance float64

	// markerPenalty scales the cost of a marker present in both bins
	markerPenalty float64

	// minScore is the floor: combined scores below it become exactly 0
	minScore float64
}

// NewScorer builds a Scorer from the run's scoring settings.
func NewScorer(c *config.Config) *Scorer {
	return &Scorer{
		covWeight:     c.Scoring.CoverageWeight,
		tetraWeight:   c.Scoring.TetraWeight,
		refWeight:     c.Scoring.RefWeight,
		markerWeight:  c.Scoring.MarkerWeight,
		covTolerance:  c.Scoring.CoverageTolerance,
		markerPenalty: c.Scoring.MarkerPenalty,
		minScore:      c.Scoring.MinScore,
	}
}

// Score computes the merge-decision score for a bin pair. A result of exactly
// zero means "do not merge". The returned Breakdown holds the unweighted
// sub-scores.
func (s *Scorer) Score(b1, b2 *Bin) (float64, Breakdown, error) {
	var bd Breakdown

	cov, err := s.coverageScore(b1, b2)
	if err != nil {
		return 0, bd, err
	}

	tetra, err := tetraScore(b1, b2)
	if err != nil {
		return 0, bd, err
	}

	bd = Breakdown{
		Coverage: cov,
		Tetra:    tetra,
		Ref:      refScore(b1, b2),
		Marker:   s.markerScore(b1, b2),
	}

	score := s.covWeight*bd.Coverage +
		s.tetraWeight*bd.Tetra +
		s.refWeight*bd.Ref +
		s.markerWeight*bd.Marker

	if score < s.minScore {
		return 0, bd, nil
	}
	return score, bd, nil
}

// coverageScore is the fraction of coverage coordinates whose relative
// difference is within tolerance. Coordinates that are zero on both sides
// trivially agree.
func (s *Scorer) coverageScore(b1, b2 *Bin) (float64, error) {
	if len(b1.Coverage) != len(b2.Coverage) {
		return 0, errors.Errorf(
			"coverage length mismatch scoring %s vs %s: %d vs %d",
			b1.ID(), b2.ID(), len(b1.Coverage), len(b2.Coverage),
		)
	}
	if len(b1.Coverage) == 0 {
		return 0, nil
	}

	within := 0
	for i := range b1.Coverage {
		a, b := b1.Coverage[i], b2.Coverage[i]
		if (a == 0 && b == 0) || relDiff(a, b) <= s.covTolerance {
			within++
		}
	}
	return float64(within) / float64(len(b1.Coverage)), nil
}

// tetraScore is the dot product of the two tetra profiles, normalized by the
// cached magnitudes: a cosine similarity in [0, 1].
func tetraScore(b1, b2 *Bin) (float64, error) {
	if len(b1.Tetra) != len(b2.Tetra) {
		return 0, errors.Errorf(
			"tetra length mismatch scoring %s vs %s: %d vs %d",
			b1.ID(), b2.ID(), len(b1.Tetra), len(b2.Tetra),
		)
	}
	if b1.TetraMagnitude == 0 || b2.TetraMagnitude == 0 {
		return 0, nil
	}

	total := 0.0
	for i := range b1.Tetra {
		total += b1.Tetra[i] * b2.Tetra[i]
	}
	return total / (b1.TetraMagnitude * b2.TetraMagnitude), nil
}

// refScore compares the two sorted reference-genome sets. Matching nonempty
// sets are the strongest possible agreement; two empty sets say nothing either
// way and score mildly positive; one empty set is weak evidence; differing
// nonempty sets are a hard disagreement.
func refScore(b1, b2 *Bin) float64 {
	switch {
	case len(b1.RefGenomes) == 0 && len(b2.RefGenomes) == 0:
		return 0.6
	case len(b1.RefGenomes) == 0 || len(b2.RefGenomes) == 0:
		return 0.5
	case refsEqual(b1.RefGenomes, b2.RefGenomes):
		return 1.0
	}
	return 0.0
}

// markerScore counts marker ids unique to one bin as neutral-positive and ids
// present in both bins as contamination evidence (two copies of a single-copy
// gene), weighted by the penalty. Clamped at zero: markers never argue for a
// merge, only against one.
func (s *Scorer) markerScore(b1, b2 *Bin) float64 {
	unique, shared := 0, 0
	for id := range b1.MarkerGenes {
		if _, ok := b2.MarkerGenes[id]; ok {
			shared++
		} else {
			unique++
		}
	}
	for id := range b2.MarkerGenes {
		if _, ok := b1.MarkerGenes[id]; !ok {
			unique++
		}
	}

	total := unique + shared
	if total == 0 {
		return 0
	}

	score := (float64(unique) - s.markerPenalty*float64(shared)) / float64(total)
	if score < 0 {
		return 0
	}
	return score
}

// refsEqual compares two sorted, deduped id slices positionally.
func refsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
