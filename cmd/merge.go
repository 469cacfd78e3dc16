package cmd

import (
	"bufio"
	"log"
	"os"
	"strings"

	"github.com/metabin/metabin/internal/metabin"
	"github.com/spf13/cobra"
)

// mergeCmd applies a merge plan (bin id pairs, one per line) to a bin
// collection and writes the merged bins as JSON.
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge bins according to a plan of bin id pairs",
	Long: `Merge bins according to a plan of bin id pairs.

The plan file holds one pair of tab-separated bin ids per line, typically the
mergeable pairs from a "metabin score" run. The second bin of each pair is
absorbed into the first: lengths add, coverage and tetra vectors become
length-weighted means, reference sets union, and marker counts sum. Pairs
naming a bin already absorbed elsewhere follow it to its new home.`,
	Run: runMerge,
}

func runMerge(cmd *cobra.Command, args []string) {
	in, _ := cmd.Flags().GetString("in")
	plan, _ := cmd.Flags().GetString("plan")
	out, _ := cmd.Flags().GetString("out")

	bins := readBins(in)

	index := make(map[string]*metabin.Bin, len(bins))
	for _, b := range bins {
		index[b.ID()] = b
	}

	// absorbed maps a consumed bin's id to the id it now lives in
	absorbed := make(map[string]string)
	resolve := func(id string) string {
		for {
			next, ok := absorbed[id]
			if !ok {
				return id
			}
			id = next
		}
	}

	f, err := os.Open(plan)
	if err != nil {
		log.Fatalf("failed to open merge plan %s: %v", plan, err)
	}
	defer f.Close()

	merged := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			log.Fatalf("malformed merge plan line %q", line)
		}

		id1, id2 := resolve(fields[0]), resolve(fields[1])
		if id1 == id2 {
			continue // already in the same bin
		}

		b1, ok1 := index[id1]
		b2, ok2 := index[id2]
		if !ok1 || !ok2 {
			log.Fatalf("merge plan names unknown bin in %q", line)
		}

		if err := b1.Merge(b2); err != nil {
			log.Fatalf("failed to merge %s into %s: %v", id2, id1, err)
		}
		delete(index, id2)
		absorbed[id2] = id1
		merged++
	}
	if err := sc.Err(); err != nil {
		log.Fatalf("failed reading merge plan %s: %v", plan, err)
	}

	var remaining []*metabin.Bin
	for _, b := range index {
		remaining = append(remaining, b)
	}
	metabin.SortBins(remaining)

	if _, err := metabin.WriteBinsJSON(out, remaining); err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("%d merges applied, %d bins remain", merged, len(remaining))
}

func init() {
	mergeCmd.Flags().StringP("in", "i", "", "input bins (JSON or exchange file)")
	mergeCmd.Flags().StringP("plan", "p", "", "merge plan: one tab-separated bin id pair per line")
	mergeCmd.Flags().StringP("out", "o", "", "output bins JSON")

	mergeCmd.MarkFlagRequired("in")
	mergeCmd.MarkFlagRequired("plan")
	mergeCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(mergeCmd)
}
