// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dedup groups raw records that describe the same real-world
// publication and merges each cluster into a single enriched record.
// Clustering is transitive-closure safe: merges follow union-find
// semantics, so A~B and B~C place all three in one cluster even when A
// and C alone would not meet a rule.
package dedup

import (
	"sort"

	"github.com/pdiddy/identity-engine/internal/similarity"
	"github.com/pdiddy/identity-engine/pkg/types"
)

// Output holds the merged set and clustering statistics.
type Output struct {
	Records []types.MergedRecord

	// DupsRemoved counts raw records absorbed into an existing cluster.
	DupsRemoved int

	// Conflicts counts pairs that shared an identity key but disagreed
	// on publication year by more than the tolerance. They still merge
	// (the key is authoritative) but are reported for diagnostics.
	Conflicts int
}

// Merge clusters the raw record set for one identity and reconciles each
// cluster. Pure and deterministic: no I/O, no randomness. Every input
// record lands in exactly one merged record.
func Merge(records []types.RawRecord, cfg types.MatchConfig) Output {
	if len(records) == 0 {
		return Output{}
	}

	uf := newUnionFind(len(records))
	conflicts := 0

	// Pairwise rules in strict priority order: DOI, then PMID, then
	// normalized-title similarity with year agreement.
	for i := 0; i < len(records); i++ {
		for j := i + 1; j < len(records); j++ {
			a, b := records[i], records[j]

			if a.DOI != "" && a.DOI == b.DOI {
				if !yearsAgree(a.Year(), b.Year(), cfg.YearTolerance) {
					conflicts++
				}
				uf.union(i, j)
				continue
			}
			if a.PMID != "" && a.PMID == b.PMID {
				if !yearsAgree(a.Year(), b.Year(), cfg.YearTolerance) {
					conflicts++
				}
				uf.union(i, j)
				continue
			}
			if titlesMatch(a, b, cfg) {
				uf.union(i, j)
			}
		}
	}

	// Collect clusters in first-seen order for deterministic output.
	clusterOf := make(map[int][]int)
	var order []int
	for i := range records {
		root := uf.find(i)
		if _, seen := clusterOf[root]; !seen {
			order = append(order, root)
		}
		clusterOf[root] = append(clusterOf[root], i)
	}

	out := Output{Conflicts: conflicts}
	for _, root := range order {
		members := clusterOf[root]
		cluster := make([]types.RawRecord, len(members))
		for k, idx := range members {
			cluster[k] = records[idx]
		}
		out.Records = append(out.Records, reconcile(cluster))
		out.DupsRemoved += len(members) - 1
	}
	return out
}

// Reapply treats each merged record as a single-source input and runs
// the clustering again. Dedup is idempotent: the output equals the input
// set. Exposed for the caller that appends late-arriving sources within
// a run.
func Reapply(merged []types.MergedRecord, cfg types.MatchConfig) []types.MergedRecord {
	var raws []types.RawRecord
	for _, m := range merged {
		src := types.SourceWeb
		if len(m.ContributingSources) > 0 {
			src = m.ContributingSources[0]
		}
		raws = append(raws, types.RawRecord{
			Source:             src,
			Title:              m.Title,
			Journal:            m.Journal,
			Date:               m.Date,
			DOI:                m.DOI,
			PMID:               m.PMID,
			Authors:            m.Authors,
			Abstract:           m.Abstract,
			Keywords:           m.Keywords,
			CitationCount:      m.CitationCount,
			CorrespondingEmail: m.CorrespondingEmail,
		})
	}
	re := Merge(raws, cfg)
	// Restore the full source sets; Merge only saw the primary tag.
	for i := range re.Records {
		if i < len(merged) && len(re.Records) == len(merged) {
			re.Records[i].ContributingSources = merged[i].ContributingSources
		}
	}
	return re.Records
}

func titlesMatch(a, b types.RawRecord, cfg types.MatchConfig) bool {
	if a.Title == "" || b.Title == "" {
		return false
	}
	if similarity.Ratio(a.Title, b.Title) < cfg.TitleMergeThreshold {
		return false
	}
	return yearsAgree(a.Year(), b.Year(), cfg.YearTolerance)
}

// yearsAgree allows a bounded gap; an unknown year on either side always
// passes, since partial metadata must not block a merge.
func yearsAgree(a, b, tolerance int) bool {
	if a == 0 || b == 0 {
		return true
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}

// reconcile builds one MergedRecord from a cluster. Field policy:
// longest title; journal/date/doi/pmid from the first contributor with a
// non-empty value in source priority order; authors from the contributor
// listing the most (ties by source priority); longest abstract; keyword
// union.
func reconcile(cluster []types.RawRecord) types.MergedRecord {
	byPriority := make([]types.RawRecord, len(cluster))
	copy(byPriority, cluster)
	sort.SliceStable(byPriority, func(i, j int) bool {
		return types.SourcePriority[byPriority[i].Source] < types.SourcePriority[byPriority[j].Source]
	})

	m := types.MergedRecord{CitationCount: -1}

	for _, r := range byPriority {
		if len(r.Title) > len(m.Title) {
			m.Title = r.Title
		}
		if m.Journal == "" {
			m.Journal = r.Journal
		}
		if m.Date == "" {
			m.Date = r.Date
		}
		if m.DOI == "" {
			m.DOI = r.DOI
		}
		if m.PMID == "" {
			m.PMID = r.PMID
		}
		if m.CorrespondingEmail == "" {
			m.CorrespondingEmail = r.CorrespondingEmail
		}
		if len(r.Abstract) > len(m.Abstract) {
			m.Abstract = r.Abstract
		}
		// Strictly more authors wins; priority order makes ties stick
		// with the higher-priority source.
		if len(r.Authors) > len(m.Authors) {
			m.Authors = append([]string(nil), r.Authors...)
		}
		if r.CitationCount > m.CitationCount {
			m.CitationCount = r.CitationCount
		}
	}

	seenKw := make(map[string]bool)
	for _, r := range byPriority {
		for _, k := range r.Keywords {
			key := similarity.Fold(k)
			if !seenKw[key] {
				seenKw[key] = true
				m.Keywords = append(m.Keywords, k)
			}
		}
	}

	seenSrc := make(map[types.Source]bool)
	for _, r := range cluster {
		if !seenSrc[r.Source] {
			seenSrc[r.Source] = true
			m.ContributingSources = append(m.ContributingSources, r.Source)
		}
	}
	return m
}

// unionFind is a plain disjoint-set with path compression.
type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &unionFind{parent: parent}
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		// Attach the later root to the earlier so cluster roots stay
		// stable in input order.
		if ra < rb {
			u.parent[rb] = ra
		} else {
			u.parent[ra] = rb
		}
	}
}
