// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dedup

import (
	"testing"

	"github.com/pdiddy/identity-engine/pkg/types"
)

func testCfg() types.MatchConfig {
	return types.MatchConfig{
		TitleMergeThreshold:  0.90,
		YearTolerance:        1,
		AuthorMatchThreshold: 0.85,
	}
}

func TestMergeByDOIIgnoresTitleDifferences(t *testing.T) {
	records := []types.RawRecord{
		{Source: types.SourceScopus, Title: "Short Title", DOI: "10.1000/x", Date: "2020", CitationCount: -1},
		{Source: types.SourceCrossRef, Title: "A Completely Different Rendering of the Same Work", DOI: "10.1000/x", Date: "2020", CitationCount: -1},
	}
	out := Merge(records, testCfg())
	if len(out.Records) != 1 {
		t.Fatalf("merged = %d, want 1", len(out.Records))
	}
	if out.DupsRemoved != 1 {
		t.Errorf("dups removed = %d, want 1", out.DupsRemoved)
	}
	m := out.Records[0]
	if m.Title != "A Completely Different Rendering of the Same Work" {
		t.Errorf("title = %q, want the longest", m.Title)
	}
	if len(m.ContributingSources) != 2 {
		t.Errorf("contributing sources = %v, want 2", m.ContributingSources)
	}
}

func TestMergeByPMID(t *testing.T) {
	records := []types.RawRecord{
		{Source: types.SourcePubMed, Title: "Trial Report", PMID: "123", CitationCount: -1},
		{Source: types.SourceWeb, Title: "Trial report [full text]", PMID: "123", CitationCount: -1},
	}
	out := Merge(records, testCfg())
	if len(out.Records) != 1 {
		t.Fatalf("merged = %d, want 1", len(out.Records))
	}
}

func TestSimilarTitlesMerge(t *testing.T) {
	records := []types.RawRecord{
		{Source: types.SourceScopus, Title: "Clinical outcomes of dental implants in elderly patients", Date: "2020", CitationCount: -1},
		{Source: types.SourceORCID, Title: "Clinical outcomes of dental implants in elderly patients.", Date: "2021", CitationCount: -1},
	}
	out := Merge(records, testCfg())
	if len(out.Records) != 1 {
		t.Fatalf("merged = %d, want 1 (title similarity with year within tolerance)", len(out.Records))
	}
}

func TestDissimilarTitlesStayDistinct(t *testing.T) {
	records := []types.RawRecord{
		{Source: types.SourceScopus, Title: "Clinical outcomes of dental implants", Date: "2020", CitationCount: -1},
		{Source: types.SourcePubMed, Title: "Economic policy in the eurozone", Date: "2020", CitationCount: -1},
	}
	out := Merge(records, testCfg())
	if len(out.Records) != 2 {
		t.Fatalf("merged = %d, want 2 distinct records", len(out.Records))
	}
}

func TestSimilarTitlesFarYearsStayDistinct(t *testing.T) {
	records := []types.RawRecord{
		{Source: types.SourceScopus, Title: "Annual review of periodontology", Date: "2015", CitationCount: -1},
		{Source: types.SourcePubMed, Title: "Annual review of periodontology", Date: "2021", CitationCount: -1},
	}
	out := Merge(records, testCfg())
	if len(out.Records) != 2 {
		t.Fatalf("merged = %d, want 2 (years differ beyond tolerance)", len(out.Records))
	}
}

func TestTransitiveClosure(t *testing.T) {
	// A merges with B by DOI, B merges with C by PMID; A and C share
	// nothing directly but must land in one cluster.
	records := []types.RawRecord{
		{Source: types.SourceScopus, Title: "Work Alpha", DOI: "10.1/a", CitationCount: -1},
		{Source: types.SourceCrossRef, Title: "Work Alpha extended", DOI: "10.1/a", PMID: "77", CitationCount: -1},
		{Source: types.SourcePubMed, Title: "Entirely different record title", PMID: "77", CitationCount: -1},
	}
	out := Merge(records, testCfg())
	if len(out.Records) != 1 {
		t.Fatalf("merged = %d, want 1 transitive cluster", len(out.Records))
	}
	if out.DupsRemoved != 2 {
		t.Errorf("dups removed = %d, want 2", out.DupsRemoved)
	}
}

func TestReconcileSourcePriority(t *testing.T) {
	records := []types.RawRecord{
		{Source: types.SourceORCID, Title: "Work", DOI: "10.1/w", Journal: "Orcid Journal", Date: "2019", CitationCount: -1},
		{Source: types.SourceScopus, Title: "Work", DOI: "10.1/w", Journal: "Scopus Journal", Date: "2020", CitationCount: 12},
	}
	out := Merge(records, testCfg())
	if len(out.Records) != 1 {
		t.Fatalf("merged = %d, want 1", len(out.Records))
	}
	m := out.Records[0]
	if m.Journal != "Scopus Journal" {
		t.Errorf("journal = %q, scopus should outrank orcid", m.Journal)
	}
	if m.Date != "2020" {
		t.Errorf("date = %q, want scopus date", m.Date)
	}
	if m.CitationCount != 12 {
		t.Errorf("citations = %d, want 12", m.CitationCount)
	}
}

func TestReconcileFullestAuthorListWins(t *testing.T) {
	records := []types.RawRecord{
		{Source: types.SourceScopus, Title: "Work", DOI: "10.1/w", Authors: []string{"Smith J"}, CitationCount: -1},
		{Source: types.SourceWeb, Title: "Work", DOI: "10.1/w", Authors: []string{"Smith J", "Doe A", "Lee K"}, CitationCount: -1},
	}
	out := Merge(records, testCfg())
	m := out.Records[0]
	if len(m.Authors) != 3 {
		t.Fatalf("authors = %v, want the fuller list", m.Authors)
	}
	if m.Authors[0] != "Smith J" || m.Authors[2] != "Lee K" {
		t.Errorf("author order not preserved: %v", m.Authors)
	}
}

func TestKeywordUnion(t *testing.T) {
	records := []types.RawRecord{
		{Source: types.SourceScopus, Title: "Work", DOI: "10.1/w", Keywords: []string{"Cardiology", "outcomes"}, CitationCount: -1},
		{Source: types.SourcePubMed, Title: "Work", DOI: "10.1/w", Keywords: []string{"cardiology", "elderly"}, CitationCount: -1},
	}
	out := Merge(records, testCfg())
	m := out.Records[0]
	if len(m.Keywords) != 3 {
		t.Errorf("keywords = %v, want case-insensitive union of 3", m.Keywords)
	}
}

func TestDOIConflictCounted(t *testing.T) {
	records := []types.RawRecord{
		{Source: types.SourceScopus, Title: "Work", DOI: "10.1/w", Date: "2010", CitationCount: -1},
		{Source: types.SourceCrossRef, Title: "Work", DOI: "10.1/w", Date: "2020", CitationCount: -1},
	}
	out := Merge(records, testCfg())
	if len(out.Records) != 1 {
		t.Fatalf("merged = %d, DOI match must still merge", len(out.Records))
	}
	if out.Conflicts != 1 {
		t.Errorf("conflicts = %d, want 1", out.Conflicts)
	}
}

func TestIdempotence(t *testing.T) {
	records := []types.RawRecord{
		{Source: types.SourceScopus, Title: "Alpha study of implants", DOI: "10.1/a", Date: "2020", CitationCount: 5},
		{Source: types.SourceCrossRef, Title: "Alpha study of implants (extended)", DOI: "10.1/a", Date: "2020", CitationCount: -1},
		{Source: types.SourcePubMed, Title: "Beta trial of stents", PMID: "99", Date: "2018", CitationCount: -1},
		{Source: types.SourceWeb, Title: "Gamma survey of outcomes", Date: "2021", CitationCount: -1},
	}
	first := Merge(records, testCfg())
	again := Reapply(first.Records, testCfg())

	if len(again) != len(first.Records) {
		t.Fatalf("reapplied set size = %d, want %d", len(again), len(first.Records))
	}
	for i := range again {
		if again[i].Title != first.Records[i].Title || again[i].DOI != first.Records[i].DOI {
			t.Errorf("record %d changed on reapply: %+v vs %+v", i, again[i], first.Records[i])
		}
	}
}

func TestEmptyInput(t *testing.T) {
	out := Merge(nil, testCfg())
	if len(out.Records) != 0 || out.DupsRemoved != 0 {
		t.Errorf("unexpected output for empty input: %+v", out)
	}
}
