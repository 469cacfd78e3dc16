package metabin

// PairScore is one scored bin pair, with its sub-score breakdown.
type PairScore struct {
	Bin1 string `json:"bin1"`
	Bin2 string `json:"bin2"`

	// Score is the combined weighted score. Exactly 0 means do not merge
	Score float64 `json:"score"`

	Breakdown Breakdown `json:"breakdown"`
}

// ScoreAllPairs scores every unordered bin pair. A pair that can't be scored
// (coverage or tetra built against different sample/axis counts) is reported
// to stderr and skipped rather than failing the batch: one corrupt bin should
// not sink an overnight run. The callback, when non-nil, runs after each pair
// for progress reporting.
func ScoreAllPairs(bins []*Bin, scorer *Scorer, tick func()) []PairScore {
	var pairs []PairScore
	for i := 0; i < len(bins); i++ {
		for j := i + 1; j < len(bins); j++ {
			score, bd, err := scorer.Score(bins[i], bins[j])
			if err != nil {
				stderr.Printf("unscoreable pair %s vs %s: %v", bins[i].ID(), bins[j].ID(), err)
			} else {
				pairs = append(pairs, PairScore{
					Bin1:      bins[i].ID(),
					Bin2:      bins[j].ID(),
					Score:     score,
					Breakdown: bd,
				})
			}
			if tick != nil {
				tick()
			}
		}
	}
	return pairs
}
