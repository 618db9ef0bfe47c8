// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the vnfetch CLI.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aryoshi/vnfetch/internal/fetch"
	"github.com/aryoshi/vnfetch/internal/secrets"
	"github.com/aryoshi/vnfetch/internal/session"
	"github.com/aryoshi/vnfetch/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedToken holds the optional VNDB API token loaded at startup.
var loadedToken string

// rootCmd is the base command for the vnfetch CLI.
var rootCmd = &cobra.Command{
	Use:   "vnfetch",
	Short: "Fetch safe-for-work visual novels from VNDB",
	Long: `vnfetch queries the VNDB database for visual novels matching rating,
vote-count, language, and tag criteria, and filters out adult titles with a
keyword-based content-safety classifier.

Each operation is a subcommand: random, popular, tags, search, and catalog.
Strict filtering scans every tag and the description; lenient filtering
(--strict=false) checks only explicitly adult tags.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		token, err := secrets.LoadToken(viper.GetString("secrets_dir"))
		if err != nil {
			return err
		}
		loadedToken = token
		if token != "" {
			fmt.Fprintln(os.Stderr, "Loaded VNDB API token")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./vnfetch.yaml or ~/.config/vnfetch/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log pipeline progress and filter decisions to stderr")
	rootCmd.PersistentFlags().Bool("json", false, "output results as JSON")
	rootCmd.PersistentFlags().Bool("surface-errors", false, "report transport faults instead of returning empty results")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("vnfetch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "vnfetch"))
		}
	}

	viper.SetDefault("language", "en")
	viper.SetDefault("api_url", types.DefaultAPIURL)
	viper.SetDefault("timeout", "30s")
	viper.SetDefault("user_agent", "vnfetch/0.1")
	viper.SetDefault("secrets_dir", ".secrets/")

	viper.SetEnvPrefix("VNFETCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newFetcher builds a Fetcher from config and the command's global flags.
func newFetcher(cmd *cobra.Command) *fetch.Fetcher {
	f := fetch.New(types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: viper.GetString("user_agent"),
		},
		APIURL:   viper.GetString("api_url"),
		Language: viper.GetString("language"),
		Token:    loadedToken,
	})

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		f.Log = os.Stderr
	}
	if surface, _ := cmd.Flags().GetBool("surface-errors"); surface {
		f.SurfaceErrors = true
	}
	return f
}

// writeResults prints results as a table or JSON per the global flag.
func writeResults(cmd *cobra.Command, results []types.FormattedVN, w io.Writer) error {
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return fetch.FormatJSON(results, w)
	}
	fetch.FormatTable(results, w)
	return nil
}

// writeSummary accumulates results into a session store and prints count
// and averages. Used by the multi-result commands.
func writeSummary(results []types.FormattedVN, w io.Writer) error {
	if len(results) == 0 {
		return nil
	}

	store, err := session.NewStore(session.MemoryDSN)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.AddAll(results); err != nil {
		return err
	}
	stats, err := store.Stats()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Fetched %d VN(s), average rating %.1f/10, average votes %.0f\n",
		stats.Total, stats.AvgRating, stats.AvgVotes)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
