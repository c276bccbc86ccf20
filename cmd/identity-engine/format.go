// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pdiddy/identity-engine/pkg/types"
)

// formatProfile writes a human-readable profile report to w.
func formatProfile(p types.Profile, w io.Writer) {
	fmt.Fprintf(w, "Email:      %s\n", p.Email)
	fmt.Fprintf(w, "State:      %s\n", p.Confidence.State)

	switch p.Confidence.State {
	case types.StateUndetermined:
		fmt.Fprintln(w, "\nNo candidate cleared the confidence gate; analysis skipped.")
	case types.StateAmbiguous:
		fmt.Fprintf(w, "Owner:      %s (%.2f) — ambiguous, margin %.2f\n",
			p.Confidence.Best.Name, p.Confidence.Best.Confidence, p.Confidence.Margin)
		fmt.Fprintln(w, "\nContenders:")
		for _, c := range p.Confidence.Candidates {
			fmt.Fprintf(w, "  %-30s %.2f\n", c.Name, c.Confidence)
		}
	default:
		fmt.Fprintf(w, "Owner:      %s (confidence %.2f)\n",
			p.Confidence.Best.Name, p.Confidence.Best.Confidence)
	}

	if len(p.Confidence.Best.Signals) > 0 {
		fmt.Fprintln(w, "\nEvidence:")
		for _, s := range p.Confidence.Best.Signals {
			fmt.Fprintf(w, "  %-14s %.2f  %s\n", s.Kind, s.Weight, s.Detail)
		}
	}

	if len(p.Records) > 0 {
		fmt.Fprintf(w, "\n%-4s  %-52s  %-6s  %-21s  %s\n",
			"Rank", "Title", "Year", "Role", "Field")
		fmt.Fprintln(w, strings.Repeat("-", 100))
		for i, ar := range p.Records {
			title := ar.Record.Title
			if len(title) > 52 {
				title = title[:49] + "..."
			}
			year := ""
			if y := ar.Record.Year(); y > 0 {
				year = fmt.Sprintf("%d", y)
			}
			role := "unmatched"
			if ar.Role.Resolved {
				role = string(ar.Role.ContributionLabel)
			}
			fmt.Fprintf(w, "%-4d  %-52s  %-6s  %-21s  %s\n",
				i+1, title, year, role, ar.Classification.ResearchField)
		}
	}

	a := p.Analytics
	if a.TotalRecords > 0 {
		fmt.Fprintf(w, "\nPublications: %d   h-index: %d   span: %d years   trend: %s\n",
			a.TotalRecords, a.HIndexEstimate, a.CareerSpanYears, a.Trend)
		if a.MostProductiveYear != "" {
			fmt.Fprintf(w, "Most productive year: %s\n", a.MostProductiveYear)
		}
		if len(a.Collaborators) > 0 {
			fmt.Fprintf(w, "Top collaborators: %s\n", strings.Join(topCollaborators(a.Collaborators, 5), ", "))
		}
	}

	d := p.Diagnostics
	if d.MalformedRecords > 0 || len(d.UnavailableSources) > 0 || d.ClusteringConflicts > 0 {
		fmt.Fprintln(w, "\nDiagnostics:")
		if len(d.UnavailableSources) > 0 {
			srcs := make([]string, len(d.UnavailableSources))
			for i, s := range d.UnavailableSources {
				srcs[i] = string(s)
			}
			fmt.Fprintf(w, "  unavailable sources: %s\n", strings.Join(srcs, ", "))
		}
		if d.MalformedRecords > 0 {
			fmt.Fprintf(w, "  malformed records dropped: %d\n", d.MalformedRecords)
		}
		if d.ClusteringConflicts > 0 {
			fmt.Fprintf(w, "  clustering conflicts: %d\n", d.ClusteringConflicts)
		}
	}
}

// topCollaborators returns the n most frequent co-authors, count ties
// broken alphabetically for stable output.
func topCollaborators(m map[string]int, n int) []string {
	type pair struct {
		name  string
		count int
	}
	pairs := make([]pair, 0, len(m))
	for name, count := range m {
		pairs = append(pairs, pair{name, count})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].name < pairs[j].name
	})
	if len(pairs) > n {
		pairs = pairs[:n]
	}
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = fmt.Sprintf("%s (%d)", p.name, p.count)
	}
	return out
}
