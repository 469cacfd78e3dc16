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

// TetraSize is the number of axes in a tetranucleotide profile: 4^4 words.
const TetraSize = 256

var baseIndex = map[byte]int{'A': 0, 'C': 1, 'G': 2, 'T': 3}

// complement of the baseIndex codes: A<->T, C<->G.
var complementIndex = [4]int{3, 2, 1, 0}

// TetraProfile counts the 4-mer words of a DNA sequence into a 256-slot
// vector. Each window is counted on both strands, so a sequence and its
// reverse complement produce the same profile. Windows containing ambiguity
// codes are skipped.
func TetraProfile(seq string) []float64 {
	counts := make([]float64, TetraSize)
	seq = strings.ToUpper(seq)

	for i := 0; i+4 <= len(seq); i++ {
		forward, reverse, ok := 0, 0, true
		for j := 0; j < 4; j++ {
			code, known := baseIndex[seq[i+j]]
			if !known {
				ok = false
				break
			}
			forward = forward<<2 | code
			reverse = reverse | complementIndex[code]<<(2*j)
		}
		if !ok {
			continue
		}
		counts[forward]++
		counts[reverse]++
	}

	return counts
}

// ContigProfile is one contig's raw signals as read from an assembly FASTA.
type ContigProfile struct {
	ID     string
	Length int
	Tetra  []float64
}

// LoadContigProfiles reads a contig FASTA and returns each contig's length
// and tetranucleotide counts, in file order.
func LoadContigProfiles(path string) ([]ContigProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open contig FASTA %s", path)
	}
	defer f.Close()

	var profiles []ContigProfile

	r := fasta.NewReader(f, linear.NewSeq("", nil, alphabet.DNA))
	sc := seqio.NewScanner(r)
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		seq := s.Seq.String()
		profiles = append(profiles, ContigProfile{
			ID:     s.ID,
			Length: len(seq),
			Tetra:  TetraProfile(seq),
		})
	}
	if err := sc.Error(); err != nil {
		return nil, errors.Wrapf(err, "failed reading contig FASTA %s", path)
	}

	return profiles, nil
}
