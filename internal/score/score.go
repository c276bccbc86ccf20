// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score aggregates weak identity signals into one bounded
// confidence value per candidate name. Signals combine additively and
// clamp to [0,1], so each corroborating independent signal strictly
// increases confidence up to the cap; weak snippet-only evidence is
// held under its own ceiling. Zero signals yield confidence 0 and the
// undetermined state, which gates all downstream analysis.
package score

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/identity-engine/internal/similarity"
	"github.com/pdiddy/identity-engine/pkg/types"
)

// AuthorshipSignals derives evidence from the merged record set: a
// candidate listed as first or corresponding author on a record whose
// contact email matches the target is strong corroboration. One signal
// per qualifying record, each worth cfg.AuthorshipWeight; the aggregate
// contribution is capped later in Aggregate.
func AuthorshipSignals(records []types.MergedRecord, email string, candidates []string, match types.MatchConfig, cfg types.ScoringConfig) []types.Signal {
	if email == "" {
		return nil
	}
	var out []types.Signal
	for _, rec := range records {
		if !strings.EqualFold(rec.CorrespondingEmail, email) {
			continue
		}
		for _, cand := range candidates {
			if !authorshipQualifies(rec, cand, match.AuthorMatchThreshold) {
				continue
			}
			out = append(out, types.Signal{
				Kind:      types.SignalAuthorship,
				Candidate: cand,
				Weight:    cfg.AuthorshipWeight,
				Detail:    fmt.Sprintf("first/corresponding author on %q", rec.Title),
			})
		}
	}
	return out
}

// authorshipQualifies reports whether the candidate is the record's
// first author, or any listed author when the record's contact email
// already matched (corresponding authorship).
func authorshipQualifies(rec types.MergedRecord, candidate string, threshold float64) bool {
	for i, a := range rec.Authors {
		if similarity.NameRatio(a, candidate) >= threshold {
			// Email match established by the caller: any position
			// qualifies as corresponding, the first position doubly so.
			return i == 0 || rec.CorrespondingEmail != ""
		}
	}
	return false
}

// Aggregate folds all signals into per-candidate scores and classifies
// the run outcome. Candidates are keyed by folded name so "Jane Smith"
// and "jane smith" accumulate together; the display name is the first
// form seen.
func Aggregate(sigs []types.Signal, cfg types.ScoringConfig) types.IdentityConfidence {
	type bucket struct {
		name    string
		signals []types.Signal
	}
	buckets := make(map[string]*bucket)
	var order []string

	for _, s := range sigs {
		key := similarity.NameKey(s.Candidate)
		if key == "" {
			continue
		}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{name: s.Candidate}
			buckets[key] = b
			order = append(order, key)
		}
		b.signals = append(b.signals, s)
	}

	if len(order) == 0 {
		return types.IdentityConfidence{State: types.StateUndetermined}
	}

	var candidates []types.CandidateScore
	for _, key := range order {
		b := buckets[key]
		candidates = append(candidates, types.CandidateScore{
			Name:       b.name,
			Confidence: combine(b.signals, cfg),
			Signals:    b.signals,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})

	conf := types.IdentityConfidence{
		Best:       candidates[0],
		Candidates: candidates,
		Margin:     candidates[0].Confidence,
	}
	if len(candidates) > 1 {
		conf.Margin = candidates[0].Confidence - candidates[1].Confidence
	}

	switch {
	case conf.Best.Confidence < cfg.Gate:
		conf.State = types.StateUndetermined
	case len(candidates) > 1 && conf.Margin < cfg.AmbiguityMargin:
		conf.State = types.StateAmbiguous
	default:
		conf.State = types.StateResolved
	}
	return conf
}

// combine applies the capped additive model for one candidate. The
// authorship contribution is capped on its own before joining the sum;
// a candidate backed only by weak-source signals cannot exceed the weak
// ceiling.
func combine(sigs []types.Signal, cfg types.ScoringConfig) float64 {
	var authorship, other float64
	weakOnly := true

	for _, s := range sigs {
		if s.Weight < 0 {
			continue
		}
		switch s.Kind {
		case types.SignalAuthorship:
			authorship += s.Weight
			weakOnly = false
		case types.SignalWeakSource:
			other += s.Weight
		default:
			other += s.Weight
			weakOnly = false
		}
	}

	if authorship > cfg.AuthorshipCap {
		authorship = cfg.AuthorshipCap
	}
	total := authorship + other

	if weakOnly && total > cfg.WeakSourceCeiling {
		total = cfg.WeakSourceCeiling
	}
	if total > 1 {
		total = 1
	}
	if total < 0 {
		total = 0
	}
	return total
}
