package metabin

import (
	"os"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/pkg/errors"
)

// RepGenome is one representative genome in the lookup index: a genome chosen
// to stand in for a cluster of similar genomes, identified by the amino-acid
// kmer signature of a universal protein (PheS in practice).
type RepGenome struct {
	// ID of the representative genome, eg "83333.1"
	ID string `json:"id"`

	// Name is the genome's scientific name
	Name string `json:"name"`

	// Protein is the identifying protein sequence the signature derives from
	Protein string `json:"protein"`

	// Represented are the genomes this representative stands in for
	Represented []RepScore `json:"represented,omitempty"`

	// kmers is the signature: every K-length window of Protein
	kmers map[string]bool
}

// RepScore ties a represented genome to its similarity with the representative.
type RepScore struct {
	GenomeID string `json:"genomeId"`
	Score    int    `json:"score"`
}

// RepGenomeIndex is a kmer-signature nearest-neighbor index over a fixed
// catalog of representative genomes. Lookups are linear scans: the catalog is
// small (thousands) and signatures are cheap set intersections.
type RepGenomeIndex struct {
	// K is the amino-acid kmer size of every signature
	K int

	genomes map[string]*RepGenome

	// order preserves insertion order so tie-breaking is first-seen
	order []string

	// repOf maps a represented genome id to its current representative
	repOf map[string]string
}

// NewRepGenomeIndex creates an empty index with the passed kmer size.
func NewRepGenomeIndex(k int) *RepGenomeIndex {
	return &RepGenomeIndex{
		K:       k,
		genomes: make(map[string]*RepGenome),
		repOf:   make(map[string]string),
	}
}

// Add registers a representative genome and derives its kmer signature.
// Re-adding an id replaces the previous entry but keeps its position.
func (x *RepGenomeIndex) Add(id, name, protein string) *RepGenome {
	rep := &RepGenome{
		ID:      id,
		Name:    name,
		Protein: protein,
		kmers:   kmerSet(protein, x.K),
	}

	if _, ok := x.genomes[id]; !ok {
		x.order = append(x.order, id)
	}
	x.genomes[id] = rep
	return rep
}

// Get returns the representative with the passed id, or nil.
func (x *RepGenomeIndex) Get(id string) *RepGenome {
	return x.genomes[id]
}

// Len returns the number of representatives in the index.
func (x *RepGenomeIndex) Len() int {
	return len(x.order)
}

// FindClosest returns the representative whose signature shares the most
// kmers with the query protein, and that count. Ties go to the representative
// added first. An empty index returns ("", 0).
func (x *RepGenomeIndex) FindClosest(protein string) (string, int) {
	query := kmerSet(protein, x.K)

	bestID, bestScore := "", -1
	for _, id := range x.order {
		score := sharedKmers(x.genomes[id].kmers, query)
		if score > bestScore {
			bestID, bestScore = id, score
		}
	}
	if bestScore < 0 {
		return "", 0
	}
	return bestID, bestScore
}

// ListClose returns every representative scoring at or above minScore against
// the query protein, mapped to its score.
func (x *RepGenomeIndex) ListClose(protein string, minScore int) map[string]int {
	query := kmerSet(protein, x.K)

	close := make(map[string]int)
	for _, id := range x.order {
		if score := sharedKmers(x.genomes[id].kmers, query); score >= minScore {
			close[id] = score
		}
	}
	return close
}

// Connect records that representedID's closest representative is repID with
// the passed score. A represented genome maps to exactly one representative:
// the last Connect for it wins, dropping any earlier assignment.
func (x *RepGenomeIndex) Connect(repID, representedID string, score int) error {
	rep, ok := x.genomes[repID]
	if !ok {
		return errors.Errorf("unknown representative genome %s", repID)
	}

	if prevID, ok := x.repOf[representedID]; ok {
		prev := x.genomes[prevID]
		for i, rs := range prev.Represented {
			if rs.GenomeID == representedID {
				prev.Represented = append(prev.Represented[:i], prev.Represented[i+1:]...)
				break
			}
		}
	}

	rep.Represented = append(rep.Represented, RepScore{GenomeID: representedID, Score: score})
	x.repOf[representedID] = repID
	return nil
}

// RepOf returns the current representative of a represented genome id and
// whether one is recorded.
func (x *RepGenomeIndex) RepOf(representedID string) (string, bool) {
	id, ok := x.repOf[representedID]
	return id, ok
}

// LoadRepGenomes builds an index from a protein FASTA catalog. Each record's
// id is the genome id and its description, when present, the genome name.
func LoadRepGenomes(path string, k int) (*RepGenomeIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open representative genome catalog %s", path)
	}
	defer f.Close()

	index := NewRepGenomeIndex(k)

	r := fasta.NewReader(f, linear.NewSeq("", nil, alphabet.Protein))
	sc := seqio.NewScanner(r)
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		index.Add(s.ID, s.Desc, strings.ToUpper(s.Seq.String()))
	}
	if err := sc.Error(); err != nil {
		return nil, errors.Wrapf(err, "failed reading representative genome catalog %s", path)
	}

	return index, nil
}

// Protein is one record from a query protein FASTA.
type Protein struct {
	ID  string
	Seq string
}

// LoadProteins reads a protein FASTA into id/sequence pairs, in file order.
func LoadProteins(path string) ([]Protein, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open protein FASTA %s", path)
	}
	defer f.Close()

	var proteins []Protein

	r := fasta.NewReader(f, linear.NewSeq("", nil, alphabet.Protein))
	sc := seqio.NewScanner(r)
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		proteins = append(proteins, Protein{ID: s.ID, Seq: strings.ToUpper(s.Seq.String())})
	}
	if err := sc.Error(); err != nil {
		return nil, errors.Wrapf(err, "failed reading protein FASTA %s", path)
	}

	return proteins, nil
}

// kmerSet returns every k-length window of seq. Sequences shorter than k have
// an empty signature.
func kmerSet(seq string, k int) map[string]bool {
	kmers := make(map[string]bool)
	for i := 0; i+k <= len(seq); i++ {
		kmers[seq[i:i+k]] = true
	}
	return kmers
}

// sharedKmers counts the intersection of two signatures.
func sharedKmers(a, b map[string]bool) int {
	if len(b) < len(a) {
		a, b = b, a
	}

	shared := 0
	for kmer := range a {
		if b[kmer] {
			shared++
		}
	}
	return shared
}
