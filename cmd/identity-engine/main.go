// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the identity-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/identity-engine/internal/secrets"
	"github.com/pdiddy/identity-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the identity-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "identity-engine",
	Short: "Resolve email owners and profile their publication record",
	Long: `identity-engine resolves who owns an academic email address and builds a
publication profile for them. It queries ORCID, Scopus, PubMed, CrossRef and
open-web snippets, merges duplicate records across sources, scores the
identity evidence against a confidence gate, and reports authorship roles,
research-field classification and publication analytics.

The resolve subcommand runs the full pipeline; cache subcommands manage the
local snapshot store.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./identity-engine.yaml or ~/.config/identity-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("identity-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "identity-engine"))
		}
	}

	viper.SetEnvPrefix("IDENTITY_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig builds the stage configuration from defaults, the
// config file, and secrets, in that order.
func pipelineConfig() types.PipelineConfig {
	cfg := types.DefaultPipelineConfig()

	if v := viper.GetDuration("fetch.timeout"); v > 0 {
		cfg.Fetch.Timeout = v
	}
	if v := viper.GetInt("fetch.max_records_per_source"); v > 0 {
		cfg.Fetch.MaxRecordsPerSource = v
	}
	if v := viper.GetFloat64("fetch.requests_per_second"); v > 0 {
		cfg.Fetch.RequestsPerSecond = v
	}
	if viper.IsSet("fetch.enable_orcid") {
		cfg.Fetch.EnableORCID = viper.GetBool("fetch.enable_orcid")
	}
	if viper.IsSet("fetch.enable_scopus") {
		cfg.Fetch.EnableScopus = viper.GetBool("fetch.enable_scopus")
	}
	if viper.IsSet("fetch.enable_pubmed") {
		cfg.Fetch.EnablePubMed = viper.GetBool("fetch.enable_pubmed")
	}
	if viper.IsSet("fetch.enable_crossref") {
		cfg.Fetch.EnableCrossRef = viper.GetBool("fetch.enable_crossref")
	}
	if viper.IsSet("fetch.enable_web") {
		cfg.Fetch.EnableWeb = viper.GetBool("fetch.enable_web")
	}

	if v := viper.GetFloat64("scoring.gate"); v > 0 {
		cfg.Scoring.Gate = v
	}
	if v := viper.GetFloat64("match.title_merge_threshold"); v > 0 {
		cfg.Match.TitleMergeThreshold = v
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := viper.GetDuration("cache.ttl"); v > 0 {
		cfg.Cache.TTL = v
	}

	cfg.Fetch.ScopusAPIKey = secretDefault("scopus-api-key", viper.GetString("fetch.scopus_api_key"))
	cfg.Fetch.NCBIAPIKey = secretDefault("ncbi-api-key", viper.GetString("fetch.ncbi_api_key"))
	cfg.Fetch.CrossRefMailto = secretDefault("crossref-mailto", viper.GetString("fetch.crossref_mailto"))
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
