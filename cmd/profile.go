package cmd

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/metabin/metabin/internal/metabin"
	"github.com/spf13/cobra"
)

// profileCmd turns a contig assembly FASTA (plus an optional per-sample
// coverage table) into single-contig bins in the exchange format, ready for
// scoring.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Profile assembly contigs into single-contig exchange bins",
	Long: `Profile assembly contigs into single-contig exchange bins.

Each contig becomes one bin with its length and strand-collapsed
tetranucleotide profile. The optional coverage table adds per-sample mean
coverage: one "contig cov1 cov2 ..." row per contig, tab-separated.`,
	Run: runProfile,
}

func runProfile(cmd *cobra.Command, args []string) {
	in, _ := cmd.Flags().GetString("in")
	coverage, _ := cmd.Flags().GetString("coverage")
	out, _ := cmd.Flags().GetString("out")

	profiles, err := metabin.LoadContigProfiles(in)
	if err != nil {
		log.Fatalf("%v", err)
	}

	covs := map[string][]float64{}
	if coverage != "" {
		if covs, err = readCoverageTSV(coverage); err != nil {
			log.Fatalf("%v", err)
		}
	}

	bins := make([]*metabin.Bin, 0, len(profiles))
	for _, p := range profiles {
		b := metabin.NewBin(p.ID)
		b.Length = p.Length
		b.SetTetra(p.Tetra)
		b.SetCoverage(covs[p.ID])
		bins = append(bins, b)
	}
	metabin.SortBins(bins)

	if err := metabin.WriteExchangeFile(out, bins); err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("%d contigs profiled to %s", len(bins), out)
}

// readCoverageTSV parses per-sample coverage rows keyed by contig id.
func readCoverageTSV(path string) (map[string][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	covs := make(map[string][]float64)

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		cov := make([]float64, len(fields)-1)
		for i, field := range fields[1:] {
			if cov[i], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, err
			}
		}
		covs[fields[0]] = cov
	}
	return covs, sc.Err()
}

func init() {
	profileCmd.Flags().StringP("in", "i", "", "input contig FASTA")
	profileCmd.Flags().StringP("coverage", "c", "", "optional TSV of per-sample contig coverage")
	profileCmd.Flags().StringP("out", "o", "", "output exchange file")

	profileCmd.MarkFlagRequired("in")
	profileCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(profileCmd)
}
