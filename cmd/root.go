// Package cmd is for command line interactions with the metabin application
package cmd

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/metabin/metabin/config"
	"github.com/metabin/metabin/internal/metabin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "metabin",
	Short: `Score metagenomic contig bins against each other and against a
catalog of representative genomes`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func init() {
	cobra.OnInitialize(initSettings)

	// settings is an optional parameter for a settings file (that overrides the defaults)
	rootCmd.PersistentFlags().StringP("settings", "s", "", "path to a YAML settings file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "whether to log progress to stdout")
	viper.BindPFlag("settings", rootCmd.PersistentFlags().Lookup("settings"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initSettings registers setting defaults and layers the optional settings
// file on top. Bad settings files are fatal before any scoring work begins.
func initSettings() {
	config.Setup()

	if settings := viper.GetString("settings"); settings != "" {
		viper.SetConfigFile(settings)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatalf("failed to read settings file %s: %v", settings, err)
		}
	}
}

// readBins loads a bin collection from either a bins JSON file or a
// tab-delimited exchange file, decided by extension.
func readBins(path string) []*metabin.Bin {
	var bins []*metabin.Bin
	var err error

	if strings.EqualFold(filepath.Ext(path), ".json") {
		bins, err = metabin.ReadBinsJSON(path)
	} else {
		bins, err = metabin.ReadExchangeFile(path)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
	if len(bins) == 0 {
		log.Fatalf("no bins found in %s", path)
	}

	return bins
}
