// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout per provider call (default 30s).
	// A call that exceeds it is abandoned; the run proceeds with whatever
	// was collected.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with requests
	// (e.g. "identity-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the provider fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Per-provider toggles. A disabled provider contributes zero
	// payloads, same as an unavailable one.
	EnableORCID    bool `json:"enable_orcid" yaml:"enable_orcid"`
	EnableScopus   bool `json:"enable_scopus" yaml:"enable_scopus"`
	EnablePubMed   bool `json:"enable_pubmed" yaml:"enable_pubmed"`
	EnableCrossRef bool `json:"enable_crossref" yaml:"enable_crossref"`
	EnableWeb      bool `json:"enable_web" yaml:"enable_web"`

	// ScopusAPIKey authenticates Scopus Search API requests. Without it
	// the Scopus adapter reports itself unavailable.
	ScopusAPIKey string `json:"scopus_api_key,omitempty" yaml:"scopus_api_key,omitempty"`

	// NCBIAPIKey raises PubMed eUtils rate limits. Optional.
	NCBIAPIKey string `json:"ncbi_api_key,omitempty" yaml:"ncbi_api_key,omitempty"`

	// CrossRefMailto is sent for polite-pool access. Optional.
	CrossRefMailto string `json:"crossref_mailto,omitempty" yaml:"crossref_mailto,omitempty"`

	// MaxRecordsPerSource bounds how many entries each provider returns
	// (default 50).
	MaxRecordsPerSource int `json:"max_records_per_source" yaml:"max_records_per_source"`

	// RequestsPerSecond is the politeness rate limit applied per
	// provider (default 3).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

// MatchConfig centralizes the fuzzy-matching thresholds. Originally these
// lived as inline heuristics scattered through the analyzers; they are
// deliberately named and tunable here.
type MatchConfig struct {
	// TitleMergeThreshold is the minimum normalized-title similarity for
	// two records to merge absent a shared DOI/PMID (default 0.90).
	TitleMergeThreshold float64 `json:"title_merge_threshold" yaml:"title_merge_threshold"`

	// YearTolerance is the maximum publication-year gap allowed for a
	// title-based merge (default 1). Unknown years always pass.
	YearTolerance int `json:"year_tolerance" yaml:"year_tolerance"`

	// AuthorMatchThreshold is the minimum similarity for matching the
	// target against an author-name string (default 0.85).
	AuthorMatchThreshold float64 `json:"author_match_threshold" yaml:"author_match_threshold"`
}

// ScoringConfig holds the identity-confidence signal weights and the
// gate. Weights are tunable constants, not magic numbers in logic.
type ScoringConfig struct {
	// Gate is the minimum confidence required before role resolution,
	// classification and analytics run (default 0.5). A score exactly at
	// the gate passes; below it the run is undetermined.
	Gate float64 `json:"gate" yaml:"gate"`

	// CoOccurrenceWeight rewards the exact email and candidate name
	// appearing within ContextWindow characters (default 0.4).
	CoOccurrenceWeight float64 `json:"co_occurrence_weight" yaml:"co_occurrence_weight"`

	// NERPersonWeight rewards a PERSON entity hit on the candidate
	// (default 0.2).
	NERPersonWeight float64 `json:"ner_person_weight" yaml:"ner_person_weight"`

	// AuthorshipWeight rewards first/corresponding authorship on a
	// record whose contact email matches the target (default 0.3 per
	// record, summed contribution capped at AuthorshipCap).
	AuthorshipWeight float64 `json:"authorship_weight" yaml:"authorship_weight"`

	// AuthorshipCap bounds the total authorship contribution (default 0.6).
	AuthorshipCap float64 `json:"authorship_cap" yaml:"authorship_cap"`

	// WeakSourceWeight is the small positive weight for snippet-only
	// evidence (default 0.1).
	WeakSourceWeight float64 `json:"weak_source_weight" yaml:"weak_source_weight"`

	// WeakSourceCeiling bounds confidence built from weak signals alone
	// (default 0.3).
	WeakSourceCeiling float64 `json:"weak_source_ceiling" yaml:"weak_source_ceiling"`

	// AmbiguityMargin: when the top two candidates score within this
	// margin the result state is ambiguous (default 0.05).
	AmbiguityMargin float64 `json:"ambiguity_margin" yaml:"ambiguity_margin"`

	// ContextWindow is the character window around the email inside
	// which co-occurrence counts (default 300).
	ContextWindow int `json:"context_window" yaml:"context_window"`
}

// CacheConfig holds settings for the sqlite snapshot cache.
type CacheConfig struct {
	// Dir is the directory holding identity.db (default ".identity-engine").
	Dir string `json:"dir" yaml:"dir"`

	// TTL is how long a stored snapshot stays fresh (default 24h). A
	// fresh-enough snapshot short-circuits the whole pipeline.
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Fetch   FetchConfig   `json:"fetch" yaml:"fetch"`
	Match   MatchConfig   `json:"match" yaml:"match"`
	Scoring ScoringConfig `json:"scoring" yaml:"scoring"`
	Cache   CacheConfig   `json:"cache" yaml:"cache"`
}

// DefaultPipelineConfig returns the documented defaults for every stage.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Fetch: FetchConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   30 * time.Second,
				UserAgent: "identity-engine/0.1",
			},
			EnableORCID:         true,
			EnableScopus:        true,
			EnablePubMed:        true,
			EnableCrossRef:      true,
			EnableWeb:           true,
			MaxRecordsPerSource: 50,
			RequestsPerSecond:   3,
		},
		Match: MatchConfig{
			TitleMergeThreshold:  0.90,
			YearTolerance:        1,
			AuthorMatchThreshold: 0.85,
		},
		Scoring: ScoringConfig{
			Gate:               0.5,
			CoOccurrenceWeight: 0.4,
			NERPersonWeight:    0.2,
			AuthorshipWeight:   0.3,
			AuthorshipCap:      0.6,
			WeakSourceWeight:   0.1,
			WeakSourceCeiling:  0.3,
			AmbiguityMargin:    0.05,
			ContextWindow:      300,
		},
		Cache: CacheConfig{
			Dir: ".identity-engine",
			TTL: 24 * time.Hour,
		},
	}
}
