// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"testing"

	"github.com/spf13/viper"
)

// valid returns a config that passes validation, for tests to break one
// field at a time.
func valid() *Config {
	return &Config{
		Scoring: ScoringConfig{
			CoverageWeight:    0.25,
			TetraWeight:       0.25,
			RefWeight:         0.25,
			MarkerWeight:      0.25,
			CoverageTolerance: 0.2,
			MarkerPenalty:     1,
			MinScore:          0.5,
		},
		Vector:  VectorConfig{Strategy: "sum", MinSum: 30, MaxSum: 10000},
		Basis:   BasisConfig{Strategy: "normal", TopSize: 4},
		Compare: CompareConfig{Strategy: "dot"},
		Rep:     RepConfig{KmerSize: 8, MinScore: 25},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			"defaults pass",
			func(c *Config) {},
			false,
		},
		{
			"negative weight",
			func(c *Config) { c.Scoring.TetraWeight = -0.1 },
			true,
		},
		{
			"tolerance above one",
			func(c *Config) { c.Scoring.CoverageTolerance = 1.5 },
			true,
		},
		{
			"inverted vector sums",
			func(c *Config) { c.Vector.MinSum = 20000 },
			true,
		},
		{
			"zero hot group size",
			func(c *Config) { c.Basis.TopSize = 0 },
			true,
		},
		{
			"zero kmer size",
			func(c *Config) { c.Rep.KmerSize = 0 },
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)

			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// Setup's defaults unmarshal into a config that validates.
func TestSetup_defaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	Setup()

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("default settings fail validation: %v", err)
	}

	if c.Scoring.MinScore != 0.5 {
		t.Errorf("default min-score = %f, want 0.5", c.Scoring.MinScore)
	}
	if c.Basis.TopSize != 4 {
		t.Errorf("default top-size = %d, want 4", c.Basis.TopSize)
	}
}
