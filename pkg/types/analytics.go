// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// UnknownYearBucket keys records whose publication year could not be
// determined. Counted in totals, excluded from trend slope computation.
const UnknownYearBucket = "unknown"

// TrendLabel is the coarse direction of publication count over recent
// years.
type TrendLabel string

const (
	TrendIncreasing TrendLabel = "increasing"
	TrendStable     TrendLabel = "stable"
	TrendDecreasing TrendLabel = "decreasing"

	// TrendUnknown is reported when fewer than two dated years exist.
	TrendUnknown TrendLabel = "unknown"
)

// RoleTally counts the target's contribution labels across the record
// set.
type RoleTally struct {
	FirstAuthor         int `json:"first_author" yaml:"first_author"`
	LastAuthor          int `json:"last_author" yaml:"last_author"`
	CorrespondingAuthor int `json:"corresponding_author" yaml:"corresponding_author"`
	CoAuthor            int `json:"co_author" yaml:"co_author"`
	Unresolved          int `json:"unresolved" yaml:"unresolved"`
}

// AnalyticsSnapshot is a read-only aggregate over the merged record set
// for one identity. Recomputed fresh each run; never treated as
// authoritative state (the external cache may store it, but every run is
// independent).
type AnalyticsSnapshot struct {
	TotalRecords int `json:"total_records" yaml:"total_records"`

	// ByYear maps 4-digit year (or the "unknown" bucket) to counts.
	ByYear map[string]int `json:"by_year,omitempty" yaml:"by_year,omitempty"`

	ByJournal map[string]int `json:"by_journal,omitempty" yaml:"by_journal,omitempty"`
	ByField   map[string]int `json:"by_field,omitempty" yaml:"by_field,omitempty"`

	Roles RoleTally `json:"roles" yaml:"roles"`

	// HIndexEstimate is computed from provider citation counts; missing
	// counts are treated as zero. Approximate, not bibliometric-grade.
	HIndexEstimate int `json:"h_index_estimate" yaml:"h_index_estimate"`

	// Collaborators maps co-author name to the number of merged records
	// shared with the target. Each co-author counts once per merged
	// record, so duplicates removed by dedup never double count.
	Collaborators map[string]int `json:"collaborators,omitempty" yaml:"collaborators,omitempty"`

	// CareerSpanYears is last dated year minus first plus one, 0 when no
	// dated records exist.
	CareerSpanYears int `json:"career_span_years" yaml:"career_span_years"`

	// MostProductiveYear is the dated year with the highest count.
	MostProductiveYear string `json:"most_productive_year,omitempty" yaml:"most_productive_year,omitempty"`

	Trend TrendLabel `json:"trend" yaml:"trend"`
}
