package metabin

import (
	"math"
	"testing"
)

func Test_dotProduct(t *testing.T) {
	v1 := SimilarityVector{1, 2, 3}
	v2 := SimilarityVector{4, 0, 2}

	got, err := dotProduct{}.Compare(v1, v2)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if got != 10 {
		t.Errorf("Compare() = %f, want 10", got)
	}

	// symmetric by construction
	flipped, _ := dotProduct{}.Compare(v2, v1)
	if got != flipped {
		t.Errorf("Compare() not symmetric: %f vs %f", got, flipped)
	}

	if _, err := (dotProduct{}).Compare(v1, SimilarityVector{1}); err == nil {
		t.Error("Compare() with mismatched lengths should error")
	}
}

func Test_distanceCompare(t *testing.T) {
	type args struct {
		v1 SimilarityVector
		v2 SimilarityVector
	}
	tests := []struct {
		name string
		args args
		want float64
	}{
		{
			// both-zero coordinates carry no evidence and no penalty
			"all zero scores zero",
			args{SimilarityVector{0, 0, 0}, SimilarityVector{0, 0, 0}},
			0,
		},
		{
			// identical nonzero coordinates each contribute 1/(1+0) = 1
			"identical vectors",
			args{SimilarityVector{5, 10, 0}, SimilarityVector{5, 10, 0}},
			2,
		},
		{
			// |10-5|/10 = 0.5 -> 1/1.5, plus an exact match -> 1
			"half off on one coordinate",
			args{SimilarityVector{10, 3}, SimilarityVector{5, 3}},
			1.0/1.5 + 1.0,
		},
		{
			// one-sided coordinate: |4-0|/4 = 1 -> 1/2
			"one side zero still counts",
			args{SimilarityVector{4, 0}, SimilarityVector{0, 0}},
			0.5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := distanceCompare{}.Compare(tt.args.v1, tt.args.v2)
			if err != nil {
				t.Fatalf("Compare() error = %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Compare() = %f, want %f", got, tt.want)
			}
		})
	}
}

func Test_bestCompare(t *testing.T) {
	type args struct {
		v1 SimilarityVector
		v2 SimilarityVector
	}
	tests := []struct {
		name string
		args args
		want float64
	}{
		{
			// maxima on different axes: the vectors disagree about their
			// best genome
			"different best axes",
			args{SimilarityVector{9, 1}, SimilarityVector{1, 9}},
			0,
		},
		{
			"same axis identical",
			args{SimilarityVector{9, 1}, SimilarityVector{9, 2}},
			1,
		},
		{
			// shared best axis, |8-4|/8 = 0.5 -> 1/1.5
			"same axis half off",
			args{SimilarityVector{8, 1}, SimilarityVector{4, 2}},
			1.0 / 1.5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bestCompare{}.Compare(tt.args.v1, tt.args.v2)
			if err != nil {
				t.Fatalf("Compare() error = %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Compare() = %f, want %f", got, tt.want)
			}
		})
	}
}

func Test_binningCompare(t *testing.T) {
	type args struct {
		v1 SimilarityVector
		v2 SimilarityVector
	}
	tests := []struct {
		name    string
		topSize int
		args    args
		want    float64
	}{
		{
			// v2 rises from 6 to 8 across a step where v1 falls from 10 to
			// 5: the two contigs rank their genomes differently
			"order disagreement",
			0,
			args{SimilarityVector{10, 5, 1}, SimilarityVector{6, 8, 2}},
			0,
		},
		{
			"fully concordant",
			0,
			args{SimilarityVector{10, 5, 1}, SimilarityVector{8, 4, 1}},
			1,
		},
		{
			// the disagreement sits past the first step, and topSize 1 only
			// checks the strongest-signal region
			"topSize skips trailing disagreement",
			1,
			args{SimilarityVector{10, 5, 1}, SimilarityVector{8, 1, 3}},
			1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := binningCompare{topSize: tt.topSize}.Compare(tt.args.v1, tt.args.v2)
			if err != nil {
				t.Fatalf("Compare() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Compare() = %f, want %f", got, tt.want)
			}
		})
	}
}

func Test_rankingCompare(t *testing.T) {
	type args struct {
		v1 SimilarityVector
		v2 SimilarityVector
	}
	tests := []struct {
		name string
		args args
		want float64
	}{
		{
			// no coordinate is nonzero in both: nothing is comparable
			"no comparable pair",
			args{SimilarityVector{5, 0}, SimilarityVector{0, 5}},
			0,
		},
		{
			// three shared coordinates in full agreement: 1 + 3 pairs
			"full agreement",
			args{SimilarityVector{10, 5, 1}, SimilarityVector{8, 4, 2}},
			4,
		},
		{
			// pairs (0,1) and (2 others): the 10>5 vs 4<8 inversion costs 2.
			// pairs: (10,5):disagree -2, (10,1):agree +1, (5,1):agree +1
			"one inversion",
			args{SimilarityVector{10, 5, 1}, SimilarityVector{4, 8, 2}},
			1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rankingCompare{}.Compare(tt.args.v1, tt.args.v2)
			if err != nil {
				t.Fatalf("Compare() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Compare() = %f, want %f", got, tt.want)
			}
		})
	}
}
