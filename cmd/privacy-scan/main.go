// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the privacy-scan CLI.
// Implements: prd001-harvest, prd002-merge, prd003-classification,
//             prd004-regulation-matching, prd005-corpus-index (CLI surface).
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/privacy-scan/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if non-empty, otherwise the secret value
// for key, otherwise "".
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the privacy-scan CLI.
var rootCmd = &cobra.Command{
	Use:   "privacy-scan",
	Short: "Literature-mining pipeline for privacy-regulated model features",
	Long: `privacy-scan mines academic literature for decision-tree model features and
maps them to the privacy regulations that govern them. Records are harvested
from Crossref and OpenAlex, merged into a deduplicated corpus, classified by
a language-model oracle, and joined against clause-level segments of
authoritative regulation texts.

Each pipeline stage is a subcommand: harvest, merge, classify, features,
attribute, clauses, match, filter, and corpus. Stages communicate through
JSON snapshots under data/, so any stage can be re-run in isolation.`,
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

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./privacy-scan.yaml or ~/.config/privacy-scan/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("privacy-scan")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "privacy-scan"))
		}
	}

	viper.SetEnvPrefix("PRIVACY_SCAN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
