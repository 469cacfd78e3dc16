package metabin

import (
	"math"
	"testing"

	"github.com/metabin/metabin/config"
)

// testConfig mirrors the shipped defaults with an even four-way weighting.
func testConfig(minScore float64) *config.Config {
	return &config.Config{
		Scoring: config.ScoringConfig{
			CoverageWeight:    0.25,
			TetraWeight:       0.25,
			RefWeight:         0.25,
			MarkerWeight:      0.25,
			CoverageTolerance: 0.2,
			MarkerPenalty:     1,
			MinScore:          minScore,
		},
	}
}

// two single-contig bins with identical signals and matching reference sets
// score 0.25+0.25+0.25+0 = 0.75, clearing a 0.5 floor.
func Test_Scorer_Score(t *testing.T) {
	s := NewScorer(testConfig(0.5))

	b1 := newTestBin("contig1", 1000, []float64{5, 5}, []float64{1, 1, 1, 1})
	b2 := newTestBin("contig2", 1000, []float64{5, 5}, []float64{1, 1, 1, 1})
	b1.AddRef("83333.1")
	b2.AddRef("83333.1")

	score, bd, err := s.Score(b1, b2)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}

	if bd.Coverage != 1.0 {
		t.Errorf("coverage sub-score = %f, want 1", bd.Coverage)
	}
	if math.Abs(bd.Tetra-1.0) > 1e-9 {
		t.Errorf("tetra sub-score = %f, want 1", bd.Tetra)
	}
	if bd.Ref != 1.0 {
		t.Errorf("ref sub-score = %f, want 1", bd.Ref)
	}
	if bd.Marker != 0 {
		t.Errorf("marker sub-score = %f, want 0", bd.Marker)
	}
	if math.Abs(score-0.75) > 1e-9 {
		t.Errorf("Score() = %f, want 0.75", score)
	}
}

// a raw weighted sum below the floor becomes exactly 0, not the raw value.
func Test_Scorer_floor(t *testing.T) {
	s := NewScorer(testConfig(0.6))

	// coverage disagrees everywhere, tetra profiles are orthogonal, and the
	// matching refs contribute 0.25: raw score 0.25 < 0.6
	b1 := newTestBin("contig1", 1000, []float64{5, 5}, []float64{1, 1, 0, 0})
	b2 := newTestBin("contig2", 1000, []float64{50, 50}, []float64{0, 0, 1, 1})
	b1.AddRef("83333.1")
	b2.AddRef("83333.1")

	score, _, err := s.Score(b1, b2)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if score != 0.0 {
		t.Errorf("Score() below floor = %f, want exactly 0", score)
	}
}

func Test_Scorer_coverage_tolerance(t *testing.T) {
	s := NewScorer(testConfig(0))

	// 10 vs 11.5 is within 20% relative difference, 10 vs 20 is not
	b1 := newTestBin("contig1", 1000, []float64{10, 10}, []float64{1})
	b2 := newTestBin("contig2", 1000, []float64{11.5, 20}, []float64{1})

	_, bd, err := s.Score(b1, b2)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if bd.Coverage != 0.5 {
		t.Errorf("coverage sub-score = %f, want 0.5", bd.Coverage)
	}
}

func Test_refScore(t *testing.T) {
	withRefs := func(ids ...string) *Bin {
		b := NewBin("contig")
		b.AddRef(ids...)
		return b
	}

	type args struct {
		b1 *Bin
		b2 *Bin
	}
	tests := []struct {
		name string
		args args
		want float64
	}{
		{
			"equal nonempty sets",
			args{withRefs("83333.1", "198214.1"), withRefs("198214.1", "83333.1")},
			1.0,
		},
		{
			"both empty is mild encouragement",
			args{NewBin("c1"), NewBin("c2")},
			0.6,
		},
		{
			"one empty",
			args{withRefs("83333.1"), NewBin("c2")},
			0.5,
		},
		{
			"differing nonempty sets",
			args{withRefs("83333.1"), withRefs("198214.1")},
			0.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := refScore(tt.args.b1, tt.args.b2); got != tt.want {
				t.Errorf("refScore() = %f, want %f", got, tt.want)
			}
		})
	}
}

func Test_Scorer_markerScore(t *testing.T) {
	s := NewScorer(testConfig(0))

	type args struct {
		markers1 []string
		markers2 []string
	}
	tests := []struct {
		name string
		args args
		want float64
	}{
		{
			"no markers anywhere",
			args{nil, nil},
			0,
		},
		{
			// 2 unique, 0 shared: (2-0)/2
			"disjoint markers",
			args{[]string{"PheS"}, []string{"RpoB"}},
			1,
		},
		{
			// 1 unique, 1 shared with penalty 1: (1-1)/2 = 0
			"shared marker cancels",
			args{[]string{"PheS", "RpoB"}, []string{"PheS"}},
			0,
		},
		{
			// all shared: (0-2)/2 clamps to 0
			"contamination clamps at zero",
			args{[]string{"PheS", "RpoB"}, []string{"PheS", "RpoB"}},
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b1, b2 := NewBin("c1"), NewBin("c2")
			b1.MergeMarkers(tt.args.markers1...)
			b2.MergeMarkers(tt.args.markers2...)

			if got := s.markerScore(b1, b2); got != tt.want {
				t.Errorf("markerScore() = %f, want %f", got, tt.want)
			}
		})
	}
}

func Test_Scorer_unscoreable(t *testing.T) {
	s := NewScorer(testConfig(0))

	b1 := newTestBin("contig1", 1000, []float64{5, 5}, []float64{1})
	b2 := newTestBin("contig2", 1000, []float64{5}, []float64{1})

	if _, _, err := s.Score(b1, b2); err == nil {
		t.Error("Score() with mismatched coverage lengths should error")
	}
}
