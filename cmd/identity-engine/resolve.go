// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/identity-engine/internal/cache"
	"github.com/pdiddy/identity-engine/internal/fetch"
	"github.com/pdiddy/identity-engine/internal/pipeline"
	"github.com/pdiddy/identity-engine/pkg/types"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [email]",
	Short: "Resolve an email's owner and build their publication profile",
	Long: `Resolve queries every enabled metadata provider for the email, merges the
records across sources, scores the identity evidence, and reports the owner's
publication profile: authorship roles, research fields, collaborators, h-index
estimate and temporal trend.

A fresh cached snapshot is returned without refetching; use --refresh to force
a new run or --no-cache to bypass the snapshot store entirely.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	if email == "" && len(args) > 0 {
		email = args[0]
	}
	if email == "" {
		return fmt.Errorf("email required: pass it as an argument or with --email")
	}

	names, _ := cmd.Flags().GetStringSlice("name")
	contextFile, _ := cmd.Flags().GetString("context-file")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	refresh, _ := cmd.Flags().GetBool("refresh")

	query := types.IdentityQuery{
		Email:     strings.ToLower(strings.TrimSpace(email)),
		NameHints: names,
	}
	if contextFile != "" {
		data, err := os.ReadFile(contextFile)
		if err != nil {
			return fmt.Errorf("reading context file: %w", err)
		}
		query.ContextText = string(data)
	}

	cfg := pipelineConfig()
	ctx := context.Background()

	var store *cache.Store
	if !noCache {
		var err error
		store, err = cache.NewStore(cfg.Cache)
		if err != nil {
			return err
		}
		defer store.Close()

		if !refresh {
			if profile, ok, err := store.Load(ctx, query.Email); err != nil {
				return err
			} else if ok {
				fmt.Fprintln(os.Stderr, "Using cached snapshot (--refresh to refetch)")
				return writeProfile(cmd, profile)
			}
		}
	}

	fetched := fetch.All(ctx, query, fetch.NewProviders(cfg.Fetch), cfg.Fetch, os.Stderr)
	profile := pipeline.Run(pipeline.Input{
		Query:       query,
		Payloads:    fetched.Payloads,
		Unavailable: fetched.Unavailable,
	}, cfg, nil)

	if store != nil {
		if err := store.Save(ctx, profile); err != nil {
			fmt.Fprintf(os.Stderr, "warning: snapshot save failed: %v\n", err)
		}
	}
	return writeProfile(cmd, profile)
}

func writeProfile(cmd *cobra.Command, profile types.Profile) error {
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(profile)
	}
	if yamlOut, _ := cmd.Flags().GetBool("yaml"); yamlOut {
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(profile)
	}
	formatProfile(profile, os.Stdout)
	return nil
}

func init() {
	resolveCmd.Flags().String("email", "", "email address to resolve")
	resolveCmd.Flags().StringSlice("name", nil, "candidate owner name hint (repeatable)")
	resolveCmd.Flags().String("context-file", "", "file with free text surrounding the email (faculty page, signature)")
	resolveCmd.Flags().Bool("json", false, "output the profile as JSON")
	resolveCmd.Flags().Bool("yaml", false, "output the profile as YAML")
	resolveCmd.Flags().Bool("no-cache", false, "bypass the snapshot store entirely")
	resolveCmd.Flags().Bool("refresh", false, "ignore any cached snapshot and refetch")

	rootCmd.AddCommand(resolveCmd)
}
