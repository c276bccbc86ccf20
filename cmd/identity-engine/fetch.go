// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/identity-engine/internal/fetch"
	"github.com/pdiddy/identity-engine/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [email]",
	Short: "Fetch raw provider payloads for an email without resolving",
	Long: `Fetch queries every enabled metadata provider for the email and writes the
raw response payloads, one file per source, without running identity
resolution. Useful for inspecting what a provider returns or for replaying
payloads through resolve offline.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	if email == "" && len(args) > 0 {
		email = args[0]
	}
	if email == "" {
		return fmt.Errorf("email required: pass it as an argument or with --email")
	}

	names, _ := cmd.Flags().GetStringSlice("name")
	outDir, _ := cmd.Flags().GetString("output")

	query := types.IdentityQuery{
		Email:     strings.ToLower(strings.TrimSpace(email)),
		NameHints: names,
	}

	cfg := pipelineConfig()
	out := fetch.All(context.Background(), query, fetch.NewProviders(cfg.Fetch), cfg.Fetch, os.Stderr)

	if outDir == "" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payloadDumps(out.Payloads))
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", outDir, err)
	}
	for _, p := range out.Payloads {
		path := filepath.Join(outDir, string(p.Source)+payloadExt(p.Source))
		if err := os.WriteFile(path, p.Body, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s (%d bytes)\n", path, len(p.Body))
	}
	for _, src := range out.Unavailable {
		fmt.Fprintf(os.Stderr, "source unavailable: %s\n", src)
	}
	return nil
}

// payloadDump keeps the body printable instead of base64-encoded.
type payloadDump struct {
	Source types.Source `json:"source"`
	Body   string       `json:"body"`
}

func payloadDumps(payloads []types.SourcePayload) []payloadDump {
	dumps := make([]payloadDump, 0, len(payloads))
	for _, p := range payloads {
		dumps = append(dumps, payloadDump{Source: p.Source, Body: string(p.Body)})
	}
	return dumps
}

func payloadExt(src types.Source) string {
	if src == types.SourcePubMed {
		return ".xml"
	}
	return ".json"
}

func init() {
	fetchCmd.Flags().String("email", "", "email address to query")
	fetchCmd.Flags().StringSlice("name", nil, "candidate owner name hint (repeatable)")
	fetchCmd.Flags().String("output", "", "directory to write one payload file per source (default: JSON to stdout)")

	rootCmd.AddCommand(fetchCmd)
}
