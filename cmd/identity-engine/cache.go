// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/identity-engine/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the profile snapshot store",
	Long: `Cache manages the local SQLite store of finished identity profiles.
Snapshots are keyed by normalized email and expire after the configured TTL.`,
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached profile snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := cache.NewStore(pipelineConfig().Cache)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.List(context.Background())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No cached snapshots.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%-40s  %s\n", e.Email, e.FetchedAt.Local().Format(time.RFC3339))
		}
		return nil
	},
}

var cacheDeleteCmd = &cobra.Command{
	Use:   "delete [email]",
	Short: "Remove one cached snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := cache.NewStore(pipelineConfig().Cache)
		if err != nil {
			return err
		}
		defer store.Close()
		return store.Delete(context.Background(), args[0])
	},
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove every cached snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := cache.NewStore(pipelineConfig().Cache)
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.Purge(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d snapshot(s).\n", n)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheDeleteCmd)
	cacheCmd.AddCommand(cachePurgeCmd)

	rootCmd.AddCommand(cacheCmd)
}
