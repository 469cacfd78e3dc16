package metabin

import "sort"

// BasisStrategy chooses which reference genomes become the ordered axes of
// the similarity-vector space.
type BasisStrategy interface {
	// Compute returns the ordered axis list given every contig's raw
	// per-genome scores and the candidate genome ids
	Compute(scores map[string]map[string]float64, candidates []string) []string
}

// normalBasis uses every candidate genome as an axis, unchanged.
type normalBasis struct{}

func (normalBasis) Compute(scores map[string]map[string]float64, candidates []string) []string {
	return candidates
}

// hotGroupBasis greedily picks a compact set of "anchor" genomes that covers
// the strongest signals of every contig: an approximate set cover.
//
// For each contig the topSize highest-scoring genomes form its signal list.
// Each round picks the genome that is the single best (rank-0) hit of the most
// unresolved contigs, then retires every contig whose signal list contains the
// pick anywhere. Retiring a contig decrements its own rank-0 genome's tally so
// resolved contigs aren't counted twice.
type hotGroupBasis struct {
	// topSize is how many leading genomes form a contig's signal list
	topSize int
}

// signal is one contig's ranked genome list.
type signal struct {
	contigID string
	genomes  []string // descending by score, at most topSize long
}

func (h hotGroupBasis) Compute(scores map[string]map[string]float64, candidates []string) []string {
	inBasis := make(map[string]bool, len(candidates))
	for _, id := range candidates {
		inBasis[id] = true
	}

	// ranked signal list per contig. ties broken by genome id so runs are
	// reproducible (the historic behavior was hash-order on ties)
	var signals []*signal
	hits := make(map[string]int)
	for _, contigID := range sortedKeys(scores) {
		genomes := scores[contigID]

		var ranked []string
		for id := range genomes {
			if inBasis[id] && genomes[id] > 0 {
				ranked = append(ranked, id)
			}
		}
		if len(ranked) == 0 {
			continue
		}
		sort.Slice(ranked, func(i, j int) bool {
			if genomes[ranked[i]] != genomes[ranked[j]] {
				return genomes[ranked[i]] > genomes[ranked[j]]
			}
			return ranked[i] < ranked[j]
		})
		if len(ranked) > h.topSize {
			ranked = ranked[:h.topSize]
		}

		signals = append(signals, &signal{contigID: contigID, genomes: ranked})
		hits[ranked[0]]++
	}

	var picked []string
	for len(signals) > 0 {
		// the genome that is rank-0 for the most unresolved contigs wins
		// the round. smallest id on ties
		best := ""
		for id, count := range hits {
			if count > hits[best] || (count == hits[best] && (best == "" || id < best)) {
				best = id
			}
		}
		picked = append(picked, best)

		// every contig whose signal list holds the pick is now explained
		var remaining []*signal
		for _, s := range signals {
			if contains(s.genomes, best) {
				hits[s.genomes[0]]--
			} else {
				remaining = append(remaining, s)
			}
		}
		signals = remaining
	}

	return picked
}

func contains(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
