// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the full identity analysis over pre-fetched
// provider payloads: normalize, dedup, signal extraction, confidence
// scoring, and — only when the score clears the gate — role
// resolution, classification, and analytics. Record-level failures are
// collected in diagnostics; nothing short of programmer error aborts a
// run.
package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/identity-engine/internal/analytics"
	"github.com/pdiddy/identity-engine/internal/classify"
	"github.com/pdiddy/identity-engine/internal/dedup"
	"github.com/pdiddy/identity-engine/internal/normalize"
	"github.com/pdiddy/identity-engine/internal/roles"
	"github.com/pdiddy/identity-engine/internal/score"
	"github.com/pdiddy/identity-engine/internal/signals"
	"github.com/pdiddy/identity-engine/internal/similarity"
	"github.com/pdiddy/identity-engine/pkg/types"
)

// Input carries everything the run needs: the query and whatever the
// fetch stage managed to collect. Sources that failed upstream are
// listed so diagnostics can report them.
type Input struct {
	Query       types.IdentityQuery
	Payloads    []types.SourcePayload
	Unavailable []types.Source
}

// Run executes the pipeline. rec may be nil, in which case the built-in
// pattern recognizer is used. Run never returns an error: every failure
// mode lands in the profile's diagnostics.
func Run(in Input, cfg types.PipelineConfig, rec signals.Recognizer) types.Profile {
	if rec == nil {
		rec = signals.PatternRecognizer{}
	}
	email := strings.ToLower(strings.TrimSpace(in.Query.Email))

	profile := types.Profile{
		Email: email,
		Diagnostics: types.Diagnostics{
			UnavailableSources: in.Unavailable,
		},
	}

	records := normalizeAll(in.Payloads, &profile.Diagnostics)

	merged := dedup.Merge(records, cfg.Match)
	profile.Diagnostics.ClusteringConflicts = merged.Conflicts

	sigs := signals.Extract(in.Query.ContextText, email, rec, cfg.Scoring)
	candidates := candidatePool(in.Query.NameHints, sigs)
	sigs = append(sigs, score.AuthorshipSignals(merged.Records, email, candidates, cfg.Match, cfg.Scoring)...)

	profile.Confidence = score.Aggregate(sigs, cfg.Scoring)
	if profile.Confidence.State == types.StateUndetermined {
		// Below the gate nothing downstream runs; the profile carries the
		// diagnostics and score breakdown only.
		profile.Analytics = types.AnalyticsSnapshot{Trend: types.TrendUnknown}
		return profile
	}

	variants := roles.Variants(append([]string{profile.Confidence.Best.Name}, in.Query.NameHints...))
	for _, m := range merged.Records {
		profile.Records = append(profile.Records, types.AnalyzedRecord{
			Record:         m,
			Role:           roles.Resolve(m, variants, email, cfg.Match),
			Classification: classify.Record(m),
		})
	}

	profile.Analytics = analytics.Build(profile.Records)
	return profile
}

// normalizeAll runs every payload through the normalizer, folding drops
// and payload-level failures into diagnostics.
func normalizeAll(payloads []types.SourcePayload, diag *types.Diagnostics) []types.RawRecord {
	var out []types.RawRecord
	for _, p := range payloads {
		res, err := normalize.Payload(p)
		if err != nil {
			var malformed *normalize.MalformedPayloadError
			if errors.As(err, &malformed) {
				diag.MalformedRecords++
				diag.Notes = append(diag.Notes, malformed.Error())
				continue
			}
			diag.Notes = append(diag.Notes, fmt.Sprintf("%s payload: %v", p.Source, err))
			continue
		}
		diag.MalformedRecords += res.Dropped
		diag.Notes = append(diag.Notes, res.Notes...)
		out = append(out, res.Records...)
	}
	return out
}

// candidatePool merges caller name hints with every candidate the
// signal extractor surfaced, deduplicated on the folded name key.
func candidatePool(hints []string, sigs []types.Signal) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		key := similarity.NameKey(name)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, name)
	}
	for _, h := range hints {
		add(h)
	}
	for _, s := range sigs {
		add(s.Candidate)
	}
	return out
}
