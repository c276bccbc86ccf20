// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analytics computes the read-only publication profile over a
// set of analyzed records: yearly and journal distributions, role
// tallies, an h-index estimate, the collaboration map, and a coarse
// temporal trend. Everything here is a pure aggregation; the snapshot
// is recomputed fresh on every run.
package analytics

import (
	"sort"
	"strconv"

	"github.com/pdiddy/identity-engine/internal/similarity"
	"github.com/pdiddy/identity-engine/pkg/types"
)

// Build aggregates the analyzed record set into one snapshot.
func Build(records []types.AnalyzedRecord) types.AnalyticsSnapshot {
	snap := types.AnalyticsSnapshot{
		TotalRecords:  len(records),
		ByYear:        map[string]int{},
		ByJournal:     map[string]int{},
		ByField:       map[string]int{},
		Collaborators: map[string]int{},
		Trend:         types.TrendUnknown,
	}
	if len(records) == 0 {
		snap.ByYear = nil
		snap.ByJournal = nil
		snap.ByField = nil
		snap.Collaborators = nil
		return snap
	}

	var citations []int
	for _, ar := range records {
		rec := ar.Record

		year := types.UnknownYearBucket
		if y := rec.Year(); y > 0 {
			year = strconv.Itoa(y)
		}
		snap.ByYear[year]++

		if rec.Journal != "" {
			snap.ByJournal[rec.Journal]++
		}
		snap.ByField[ar.Classification.ResearchField]++

		tallyRole(&snap.Roles, ar.Role)
		countCollaborators(snap.Collaborators, rec, ar.Role)

		c := rec.CitationCount
		if c < 0 {
			c = 0
		}
		citations = append(citations, c)
	}

	snap.HIndexEstimate = hIndex(citations)
	snap.CareerSpanYears, snap.MostProductiveYear = yearSpan(snap.ByYear)
	snap.Trend = trend(snap.ByYear)

	if len(snap.ByJournal) == 0 {
		snap.ByJournal = nil
	}
	if len(snap.Collaborators) == 0 {
		snap.Collaborators = nil
	}
	return snap
}

func tallyRole(t *types.RoleTally, role types.AuthorRole) {
	if !role.Resolved {
		t.Unresolved++
		return
	}
	if role.IsFirst {
		t.FirstAuthor++
	}
	if role.IsLast && !role.IsFirst {
		t.LastAuthor++
	}
	if role.IsCorresponding {
		t.CorrespondingAuthor++
	}
	if role.ContributionLabel == types.LabelCoAuthor {
		t.CoAuthor++
	}
}

// countCollaborators adds every listed author except the target's
// matched name, once per merged record.
func countCollaborators(out map[string]int, rec types.MergedRecord, role types.AuthorRole) {
	target := ""
	if role.Resolved {
		target = similarity.NameKey(role.MatchedName)
	}
	seen := map[string]bool{}
	for _, a := range rec.Authors {
		key := similarity.NameKey(a)
		if key == "" || seen[key] || key == target {
			continue
		}
		seen[key] = true
		out[a]++
	}
}

// hIndex is the largest h such that h publications have at least h
// citations each.
func hIndex(citations []int) int {
	sort.Sort(sort.Reverse(sort.IntSlice(citations)))
	h := 0
	for i, c := range citations {
		if c >= i+1 {
			h = i + 1
		} else {
			break
		}
	}
	return h
}

// yearSpan returns last dated year minus first plus one, and the dated
// year with the highest count. Ties on count resolve to the later year.
func yearSpan(byYear map[string]int) (int, string) {
	first, last := 0, 0
	bestYear, bestCount := "", 0
	for y, n := range byYear {
		if y == types.UnknownYearBucket {
			continue
		}
		yr, err := strconv.Atoi(y)
		if err != nil {
			continue
		}
		if first == 0 || yr < first {
			first = yr
		}
		if yr > last {
			last = yr
		}
		if n > bestCount || (n == bestCount && y > bestYear) {
			bestCount = n
			bestYear = y
		}
	}
	if first == 0 {
		return 0, ""
	}
	return last - first + 1, bestYear
}

// trend fits a least-squares slope to per-year counts over the dated
// years and buckets it: |slope| under half a publication per year is
// stable.
func trend(byYear map[string]int) types.TrendLabel {
	var years []int
	for y := range byYear {
		if y == types.UnknownYearBucket {
			continue
		}
		if yr, err := strconv.Atoi(y); err == nil {
			years = append(years, yr)
		}
	}
	if len(years) < 2 {
		return types.TrendUnknown
	}
	sort.Ints(years)

	// Zero-filled series over the full span keeps gap years from hiding a
	// decline.
	var xs, ys []float64
	for yr := years[0]; yr <= years[len(years)-1]; yr++ {
		xs = append(xs, float64(yr))
		ys = append(ys, float64(byYear[strconv.Itoa(yr)]))
	}

	n := float64(len(xs))
	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return types.TrendStable
	}
	slope := (n*sumXY - sumX*sumY) / denom

	switch {
	case slope > 0.5:
		return types.TrendIncreasing
	case slope < -0.5:
		return types.TrendDecreasing
	default:
		return types.TrendStable
	}
}
