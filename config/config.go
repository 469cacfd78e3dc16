// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// ScoringConfig holds the weights and cutoffs of the merge-decision score.
type ScoringConfig struct {
	// the weight of the coverage agreement sub-score
	CoverageWeight float64 `mapstructure:"coverage-weight"`

	// the weight of the tetranucleotide similarity sub-score
	TetraWeight float64 `mapstructure:"tetra-weight"`

	// the weight of the reference-genome agreement sub-score
	RefWeight float64 `mapstructure:"ref-weight"`

	// the weight of the marker-gene agreement sub-score
	MarkerWeight float64 `mapstructure:"marker-weight"`

	// the relative difference under which two coverage coordinates agree
	CoverageTolerance float64 `mapstructure:"coverage-tolerance"`

	// the penalty for a marker gene found in both bins of a pair
	MarkerPenalty float64 `mapstructure:"marker-penalty"`

	// scores below this floor become exactly 0 ("do not merge")
	MinScore float64 `mapstructure:"min-score"`
}

// VectorConfig is settings for building similarity vectors from BLAST hits.
type VectorConfig struct {
	// the hit accumulation strategy: "sum" or "best"
	Strategy string `mapstructure:"strategy"`

	// whether to average accumulated sums by their hit counts
	Average bool `mapstructure:"average"`

	// the minimum admissible coordinate total of a stored vector
	MinSum float64 `mapstructure:"min-sum"`

	// vectors totalling at or above this are repeat-region artifacts
	MaxSum float64 `mapstructure:"max-sum"`
}

// BasisConfig is settings for reference-axis selection.
type BasisConfig struct {
	// the axis selection strategy: "normal" or "hotgroup"
	Strategy string `mapstructure:"strategy"`

	// how many leading genomes form a contig's hot-group signal list
	TopSize int `mapstructure:"top-size"`
}

// CompareConfig is settings for pairwise vector comparison.
type CompareConfig struct {
	// the comparator: "dot", "distance", "best", "binning" or "ranking"
	Strategy string `mapstructure:"strategy"`

	// for "binning": how many leading sorted pairs to check (0 = all)
	TopSize int `mapstructure:"top-size"`
}

// RepConfig is settings for the representative-genome index.
type RepConfig struct {
	// the amino-acid kmer size of genome signatures
	KmerSize int `mapstructure:"kmer-size"`

	// the minimum shared-kmer score for ListClose
	MinScore int `mapstructure:"min-score"`
}

// Config is the root-level settings struct and is a mix of settings available
// in a settings file and those available from the command line.
type Config struct {
	// Scoring is the merge-decision weighting
	Scoring ScoringConfig `mapstructure:"scoring"`

	// Vector is the hit-accumulation settings
	Vector VectorConfig `mapstructure:"vector"`

	// Basis is the axis-selection settings
	Basis BasisConfig `mapstructure:"basis"`

	// Compare is the comparator settings
	Compare CompareConfig `mapstructure:"compare"`

	// Rep is the representative-genome index settings
	Rep RepConfig `mapstructure:"rep"`
}

// Setup registers every setting's default with viper. Called before flag
// binding so the CLI and an optional settings file can override.
func Setup() {
	viper.SetDefault("scoring.coverage-weight", 0.25)
	viper.SetDefault("scoring.tetra-weight", 0.25)
	viper.SetDefault("scoring.ref-weight", 0.25)
	viper.SetDefault("scoring.marker-weight", 0.25)
	viper.SetDefault("scoring.coverage-tolerance", 0.2)
	viper.SetDefault("scoring.marker-penalty", 1.0)
	viper.SetDefault("scoring.min-score", 0.5)

	viper.SetDefault("vector.strategy", "sum")
	viper.SetDefault("vector.average", false)
	viper.SetDefault("vector.min-sum", 30.0)
	viper.SetDefault("vector.max-sum", 10000.0)

	viper.SetDefault("basis.strategy", "normal")
	viper.SetDefault("basis.top-size", 4)

	viper.SetDefault("compare.strategy", "dot")
	viper.SetDefault("compare.top-size", 0)

	viper.SetDefault("rep.kmer-size", 8)
	viper.SetDefault("rep.min-score", 25)
}

// New returns a new Config struct populated by Viper settings (either from
// the local settings file) and/or command line arguments. Inconsistent
// settings are fatal: scoring work should never start on them.
func New() *Config {
	var c Config

	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode settings into struct, %v", err)
	}
	if err := c.Validate(); err != nil {
		log.Fatalf("invalid settings: %v", err)
	}

	return &c
}

// Validate rejects settings no scoring run could use.
func (c *Config) Validate() error {
	for name, w := range map[string]float64{
		"scoring.coverage-weight": c.Scoring.CoverageWeight,
		"scoring.tetra-weight":    c.Scoring.TetraWeight,
		"scoring.ref-weight":      c.Scoring.RefWeight,
		"scoring.marker-weight":   c.Scoring.MarkerWeight,
	} {
		if w < 0 {
			return errors.Errorf("%s is negative: %f", name, w)
		}
	}

	if c.Scoring.CoverageTolerance < 0 || c.Scoring.CoverageTolerance > 1 {
		return errors.Errorf("scoring.coverage-tolerance %f outside [0, 1]", c.Scoring.CoverageTolerance)
	}
	if c.Scoring.MarkerPenalty < 0 {
		return errors.Errorf("scoring.marker-penalty is negative: %f", c.Scoring.MarkerPenalty)
	}
	if c.Vector.MinSum >= c.Vector.MaxSum {
		return errors.Errorf(
			"vector.min-sum %f must be below vector.max-sum %f",
			c.Vector.MinSum, c.Vector.MaxSum,
		)
	}
	if c.Basis.TopSize < 1 {
		return errors.Errorf("basis.top-size must be positive, got %d", c.Basis.TopSize)
	}
	if c.Compare.TopSize < 0 {
		return errors.Errorf("compare.top-size must not be negative, got %d", c.Compare.TopSize)
	}
	if c.Rep.KmerSize < 1 {
		return errors.Errorf("rep.kmer-size must be positive, got %d", c.Rep.KmerSize)
	}

	return nil
}
