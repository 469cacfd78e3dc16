package cmd

import (
	"fmt"
	"log"
	"sort"

	"github.com/metabin/metabin/config"
	"github.com/metabin/metabin/internal/metabin"
	"github.com/spf13/cobra"
)

// closestCmd maps query proteins to their closest representative genomes by
// shared amino-acid kmer count.
var closestCmd = &cobra.Command{
	Use:   "closest",
	Short: "Find the representative genome closest to each query protein",
	Long: `Find the representative genome closest to each query protein.

The catalog is a protein FASTA of representative genomes, one identifying
protein per genome (record id = genome id, description = genome name). Each
query protein is scored against every representative by shared kmer count.
By default only the single closest representative is printed per query; with
--list, every representative at or above the configured minimum score is.`,
	Run: runClosest,
}

func runClosest(cmd *cobra.Command, args []string) {
	c := config.New()

	catalog, _ := cmd.Flags().GetString("catalog")
	query, _ := cmd.Flags().GetString("query")
	list, _ := cmd.Flags().GetBool("list")

	index, err := metabin.LoadRepGenomes(catalog, c.Rep.KmerSize)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if index.Len() == 0 {
		log.Fatalf("no representative genomes in %s", catalog)
	}

	queries, err := metabin.LoadProteins(query)
	if err != nil {
		log.Fatalf("%v", err)
	}

	for _, q := range queries {
		if !list {
			genomeID, score := index.FindClosest(q.Seq)
			fmt.Printf("%s\t%s\t%d\n", q.ID, genomeID, score)
			continue
		}

		close := index.ListClose(q.Seq, c.Rep.MinScore)

		ids := make([]string, 0, len(close))
		for id := range close {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool {
			if close[ids[i]] != close[ids[j]] {
				return close[ids[i]] > close[ids[j]]
			}
			return ids[i] < ids[j]
		})

		for _, id := range ids {
			fmt.Printf("%s\t%s\t%d\n", q.ID, id, close[id])
		}
	}
}

func init() {
	closestCmd.Flags().StringP("catalog", "c", "", "protein FASTA of representative genomes")
	closestCmd.Flags().StringP("query", "q", "", "protein FASTA of queries")
	closestCmd.Flags().BoolP("list", "l", false, "list every representative above the minimum score")

	closestCmd.MarkFlagRequired("catalog")
	closestCmd.MarkFlagRequired("query")

	rootCmd.AddCommand(closestCmd)
}
