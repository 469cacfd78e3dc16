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

// basisCmd runs the configured basis-selection strategy over a table of raw
// contig-vs-genome scores and prints the chosen reference-genome axes.
var basisCmd = &cobra.Command{
	Use:   "basis",
	Short: "Select the reference-genome axes of the similarity-vector space",
	Long: `Select the reference-genome axes of the similarity-vector space.

The input is a TSV of raw scores, one "contig genome score" row per line, as
accumulated from BLAST hits. With the "hotgroup" strategy configured, the
selection greedily picks anchor genomes that cover every contig's strongest
signals; with "normal" it passes every seen genome through unchanged.`,
	Run: runBasis,
}

func runBasis(cmd *cobra.Command, args []string) {
	c := config.New()

	strategy, err := metabin.NewBasisStrategy(c.Basis.Strategy, c.Basis.TopSize)
	if err != nil {
		log.Fatalf("%v", err)
	}

	in, _ := cmd.Flags().GetString("in")
	scores, candidates, err := readScoresTSV(in)
	if err != nil {
		log.Fatalf("%v", err)
	}

	for _, genomeID := range strategy.Compute(scores, candidates) {
		fmt.Println(genomeID)
	}
}

// readScoresTSV parses "contig genome score" rows into the nested score map
// and the sorted list of all genome ids seen.
func readScoresTSV(path string) (map[string]map[string]float64, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open scores file %s: %v", path, err)
	}
	defer f.Close()

	scores := make(map[string]map[string]float64)
	seen := make(map[string]bool)

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			return nil, nil, fmt.Errorf("malformed scores line %q", line)
		}
		score, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("malformed score in %q: %v", line, err)
		}

		contigID, genomeID := fields[0], fields[1]
		if _, ok := scores[contigID]; !ok {
			scores[contigID] = make(map[string]float64)
		}
		scores[contigID][genomeID] = score
		seen[genomeID] = true
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}

	candidates := make([]string, 0, len(seen))
	for id := range seen {
		candidates = append(candidates, id)
	}
	sort.Strings(candidates)

	return scores, candidates, nil
}

func init() {
	basisCmd.Flags().StringP("in", "i", "", "input TSV of contig/genome/score rows")

	basisCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(basisCmd)
}
