package cmd

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/metabin/metabin/config"
	"github.com/metabin/metabin/internal/metabin"
	"github.com/spf13/cobra"
)

// compareCmd builds per-contig similarity vectors from raw BLAST hits and
// compares every admissible contig pair with the configured comparator.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Build similarity vectors from BLAST hits and compare contig pairs",
	Long: `Build similarity vectors from BLAST hits and compare contig pairs.

The input is a TSV of hits, one "contig genome identity start end" row per
line. Hits accumulate into per-contig vectors under the configured vector
strategy ("sum" or "best", optionally averaged per hit count), the configured
basis strategy picks the reference-genome axes, vectors outside the
admissible coordinate-sum range are dropped as no-evidence or repeat
artifacts, and the surviving pairs are scored with the configured comparator.
The output is a TSV with one row per compared pair.`,
	Run: runCompare,
}

// hitRow is one parsed line of the hits TSV.
type hitRow struct {
	contigID string
	genomeID string
	m        metabin.Match
}

// vectorPair is one compared contig pair.
type vectorPair struct {
	contig1    string
	contig2    string
	similarity float64
}

func runCompare(cmd *cobra.Command, args []string) {
	c := config.New()

	in, _ := cmd.Flags().GetString("in")
	out, _ := cmd.Flags().GetString("out")

	hits, err := readHitsTSV(in)
	if err != nil {
		log.Fatalf("%v", err)
	}

	pairs, err := compareHits(c, hits)
	if err != nil {
		log.Fatalf("%v", err)
	}

	f, err := os.Create(out)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "contig1\tcontig2\tsimilarity")
	for _, p := range pairs {
		fmt.Fprintf(w, "%s\t%s\t%g\n", p.contig1, p.contig2, p.similarity)
	}
	if err := w.Flush(); err != nil {
		log.Fatalf("%v", err)
	}
}

// compareHits runs the full vector path from raw hits to pairwise
// similarities, every stage driven by the run's settings.
func compareHits(c *config.Config, hits []hitRow) ([]vectorPair, error) {
	strategy, err := metabin.NewVectorStrategy(c.Vector.Strategy)
	if err != nil {
		return nil, err
	}
	basis, err := metabin.NewBasisStrategy(c.Basis.Strategy, c.Basis.TopSize)
	if err != nil {
		return nil, err
	}
	comparator, err := metabin.NewCompareStrategy(c.Compare.Strategy, c.Compare.TopSize)
	if err != nil {
		return nil, err
	}

	vb := metabin.NewVectorBuilder(strategy, c.Vector.MinSum, c.Vector.MaxSum)
	seen := make(map[string]bool)
	for _, h := range hits {
		vb.Update(h.contigID, h.m, h.genomeID)
		seen[h.genomeID] = true
	}
	if c.Vector.Average {
		vb.Average()
	}

	candidates := make([]string, 0, len(seen))
	for id := range seen {
		candidates = append(candidates, id)
	}
	sort.Strings(candidates)
	axes := basis.Compute(vb.Scores(), candidates)

	vectors := make(map[string]metabin.SimilarityVector)
	var contigIDs []string
	for contigID := range vb.Scores() {
		contigIDs = append(contigIDs, contigID)
	}
	sort.Strings(contigIDs)

	var stored []string
	for _, contigID := range contigIDs {
		if vb.StoreVector(vectors, contigID, vb.Vector(contigID, axes)) {
			stored = append(stored, contigID)
		}
	}

	var pairs []vectorPair
	for i := 0; i < len(stored); i++ {
		for j := i + 1; j < len(stored); j++ {
			similarity, err := comparator.Compare(vectors[stored[i]], vectors[stored[j]])
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, vectorPair{
				contig1:    stored[i],
				contig2:    stored[j],
				similarity: similarity,
			})
		}
	}
	return pairs, nil
}

// readHitsTSV parses "contig genome identity start end" rows.
func readHitsTSV(path string) ([]hitRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open hits file %s: %v", path, err)
	}
	defer f.Close()

	var hits []hitRow

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 5 {
			return nil, fmt.Errorf("malformed hits line %q", line)
		}

		identity, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("malformed identity in %q: %v", line, err)
		}
		start, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, fmt.Errorf("malformed start in %q: %v", line, err)
		}
		end, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, fmt.Errorf("malformed end in %q: %v", line, err)
		}

		hits = append(hits, hitRow{
			contigID: fields[0],
			genomeID: fields[1],
			m: metabin.Match{
				QueryID:      fields[0],
				SubjectID:    fields[1],
				Identity:     identity,
				SubjectStart: start,
				SubjectEnd:   end,
			},
		})
	}
	return hits, sc.Err()
}

func init() {
	compareCmd.Flags().StringP("in", "i", "", "input TSV of contig/genome/identity/start/end hits")
	compareCmd.Flags().StringP("out", "o", "", "output TSV of pairwise similarities")

	compareCmd.MarkFlagRequired("in")
	compareCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(compareCmd)
}
