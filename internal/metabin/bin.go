package metabin

import (
	"math"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Bin is a working hypothesis that a set of contigs derives from one source
// genome. It accumulates every signal used to decide whether two bins should
// be merged: per-sample read coverage, tetranucleotide composition, the set of
// reference genomes judged close to a member contig, and universal marker-gene
// counts.
type Bin struct {
	// ContigIDs of the contigs merged into this bin. The first is the bin's id
	ContigIDs []string `json:"contigs"`

	// Length is the total bp length across member contigs
	Length int `json:"length"`

	// Coverage is the mean read coverage per sequencing sample
	Coverage []float64 `json:"coverage"`

	// Tetra is the 4-mer composition profile, normalized to sum to 1
	Tetra []float64 `json:"tetra"`

	// TetraMagnitude is the Euclidean norm of Tetra, cached for dot products
	TetraMagnitude float64 `json:"tetraMagnitude"`

	// RefGenomes are ids of reference genomes close to a member contig.
	// Kept sorted and deduped so two bins' sets compare positionally
	RefGenomes []string `json:"refGenomes"`

	// MarkerGenes maps universal single-copy marker ids to occurrence counts
	MarkerGenes map[string]int `json:"markerGenes"`

	// TaxonID is set once the bin is believed to be a real genome
	TaxonID string `json:"taxonId,omitempty"`

	// Name is set along with TaxonID
	Name string `json:"name,omitempty"`
}

// NewBin creates a zero-valued bin holding a single contig.
func NewBin(contigID string) *Bin {
	return &Bin{
		ContigIDs:   []string{contigID},
		RefGenomes:  []string{},
		MarkerGenes: make(map[string]int),
	}
}

// ID returns the bin's identifying contig id: the first contig merged in.
func (b *Bin) ID() string {
	if len(b.ContigIDs) == 0 {
		return ""
	}
	return b.ContigIDs[0]
}

// SetCoverage sets the per-sample coverage vector.
func (b *Bin) SetCoverage(cov []float64) {
	b.Coverage = cov
}

// SetTetra sets the tetranucleotide profile from raw 4-mer counts. The counts
// are normalized to sum to 1 and the Euclidean magnitude is cached.
func (b *Bin) SetTetra(counts []float64) {
	total := 0.0
	for _, c := range counts {
		total += c
	}

	tetra := make([]float64, len(counts))
	for i, c := range counts {
		if total > 0 {
			tetra[i] = c / total
		}
	}

	b.Tetra = tetra
	b.TetraMagnitude = magnitude(tetra)
}

// Merge absorbs other into b: contig ids are appended, lengths add exactly,
// coverage and tetra coordinates become the length-weighted means of the two
// bins' coordinates, reference sets union, and marker counts sum per key.
// The other bin is consumed and must not be reused by the caller.
//
// Weighted averaging makes the operation associative up to float rounding:
// merging A into B then B into C equals the direct three-way aggregate.
func (b *Bin) Merge(other *Bin) error {
	if len(b.Coverage) != len(other.Coverage) {
		return errors.Errorf(
			"coverage length mismatch merging %s into %s: %d vs %d",
			other.ID(), b.ID(), len(other.Coverage), len(b.Coverage),
		)
	}
	if len(b.Tetra) != len(other.Tetra) {
		return errors.Errorf(
			"tetra length mismatch merging %s into %s: %d vs %d",
			other.ID(), b.ID(), len(other.Tetra), len(b.Tetra),
		)
	}

	total := float64(b.Length + other.Length)
	for i := range b.Coverage {
		if total > 0 {
			b.Coverage[i] = (b.Coverage[i]*float64(b.Length) + other.Coverage[i]*float64(other.Length)) / total
		}
	}
	for i := range b.Tetra {
		if total > 0 {
			b.Tetra[i] = (b.Tetra[i]*float64(b.Length) + other.Tetra[i]*float64(other.Length)) / total
		}
	}
	b.TetraMagnitude = magnitude(b.Tetra)

	b.ContigIDs = append(b.ContigIDs, other.ContigIDs...)
	b.Length += other.Length

	b.RefGenomes = append(b.RefGenomes, other.RefGenomes...)
	b.RefGenomes = dedupe(b.RefGenomes)

	for id, count := range other.MarkerGenes {
		b.MarkerGenes[id] += count
	}

	return nil
}

// AddRef adds reference genome ids to the bin's set. Blank ids are rejected:
// they only ever come from corrupted upstream data and would poison the
// positional set comparison in scoring.
func (b *Bin) AddRef(genomeIDs ...string) error {
	for _, id := range genomeIDs {
		if strings.TrimSpace(id) == "" {
			return errors.Errorf("blank reference genome id added to bin %s", b.ID())
		}
	}

	b.RefGenomes = dedupe(append(b.RefGenomes, genomeIDs...))
	return nil
}

// IncrementMarker adds count occurrences of a marker gene to the bin.
func (b *Bin) IncrementMarker(id string, count int) {
	b.MarkerGenes[id] += count
}

// ReplaceMarkers discards all existing marker counts and records each of the
// passed marker ids once. Used when re-annotating a bin from scratch.
func (b *Bin) ReplaceMarkers(ids ...string) {
	b.MarkerGenes = make(map[string]int)
	for _, id := range ids {
		b.MarkerGenes[id] = 1
	}
}

// MergeMarkers records each of the passed marker ids with a count of one,
// keeping counts for markers not in the list. Used when folding in a second
// annotation pass without losing the first.
func (b *Bin) MergeMarkers(ids ...string) {
	for _, id := range ids {
		b.MarkerGenes[id] = 1
	}
}

// magnitude is the Euclidean norm of a vector.
func magnitude(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// dedupe sorts ids and removes duplicates.
func dedupe(ids []string) []string {
	sort.Strings(ids)

	deduped := ids[:0]
	for i, id := range ids {
		if i == 0 || ids[i-1] != id {
			deduped = append(deduped, id)
		}
	}
	return deduped
}
