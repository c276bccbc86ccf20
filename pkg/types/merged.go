// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// MergedRecord is the canonical publication produced by the dedup engine
// from a cluster of RawRecords. It always has at least one contributing
// source. Never mutated after creation except to append late-arriving
// sources within the same analysis run.
type MergedRecord struct {
	// Title is the reconciled title: the longest among contributors.
	Title string `json:"title" yaml:"title"`

	// Journal, Date, DOI and PMID come from the first contributor that
	// supplies a non-empty value, in source priority order.
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`
	Date    string `json:"date,omitempty" yaml:"date,omitempty"`

	// DOI, when present on any contributor, is the record's primary
	// identity key.
	DOI  string `json:"doi,omitempty" yaml:"doi,omitempty"`
	PMID string `json:"pmid,omitempty" yaml:"pmid,omitempty"`

	// Authors is taken whole from the contributor listing the most
	// authors; a fuller list is required for correct role inference.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the longest non-empty abstract among contributors.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Keywords is the union of contributor keywords, original casing
	// preserved for the first occurrence.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// CitationCount is the maximum reported by any contributor, or -1
	// when none reported one.
	CitationCount int `json:"citation_count" yaml:"citation_count"`

	// CorrespondingEmail is the contact email from the highest-priority
	// contributor that supplies one.
	CorrespondingEmail string `json:"corresponding_email,omitempty" yaml:"corresponding_email,omitempty"`

	// ContributingSources is the set of providers whose raw records were
	// merged into this one.
	ContributingSources []Source `json:"contributing_sources" yaml:"contributing_sources"`
}

// Year returns the 4-digit publication year, or 0 when unknown.
func (m MergedRecord) Year() int {
	return yearOf(m.Date)
}

// HasSource reports whether src contributed to this record.
func (m MergedRecord) HasSource(src Source) bool {
	for _, s := range m.ContributingSources {
		if s == src {
			return true
		}
	}
	return false
}

// ContributionLabel categorizes the target's role on a publication.
type ContributionLabel string

const (
	LabelPrimaryInvestigator ContributionLabel = "primary-investigator"
	LabelSeniorAuthor        ContributionLabel = "senior-author"
	LabelCorresponding       ContributionLabel = "corresponding-author"
	LabelCoAuthor            ContributionLabel = "co-author"
)

// AuthorRole describes the target identity's position among a merged
// record's authors. Derived; recomputed if the author list changes.
type AuthorRole struct {
	// Resolved is false when the target could not be matched against any
	// author name above the fuzzy threshold. The remaining fields are
	// zero in that case.
	Resolved bool `json:"resolved" yaml:"resolved"`

	// Position is the 1-based index in Authors, 0 when unresolved.
	Position int `json:"position" yaml:"position"`

	// TotalAuthors is the length of the merged author list.
	TotalAuthors int `json:"total_authors" yaml:"total_authors"`

	// MatchedName is the author string the target matched.
	MatchedName string `json:"matched_name,omitempty" yaml:"matched_name,omitempty"`

	IsFirst         bool `json:"is_first" yaml:"is_first"`
	IsLast          bool `json:"is_last" yaml:"is_last"`
	IsCorresponding bool `json:"is_corresponding" yaml:"is_corresponding"`

	// ContributionLabel is the display label chosen by the role policy.
	// Corresponding-author takes display precedence when it co-occurs
	// with first or last authorship; the flags stay true regardless.
	ContributionLabel ContributionLabel `json:"contribution_label,omitempty" yaml:"contribution_label,omitempty"`
}

// ClinicalRelevance grades how directly a publication bears on clinical
// practice.
type ClinicalRelevance string

const (
	RelevanceNone     ClinicalRelevance = "none"
	RelevanceLow      ClinicalRelevance = "low"
	RelevanceModerate ClinicalRelevance = "moderate"
	RelevanceHigh     ClinicalRelevance = "high"
	RelevanceUnscored ClinicalRelevance = "unscored"
)

// FieldUndetermined is the research field assigned when no taxonomy
// keyword matches the record text.
const FieldUndetermined = "undetermined"

// ThematicClassification labels a merged record's research area. Derived
// from title+abstract+keywords; idempotent for identical input text.
type ThematicClassification struct {
	// ResearchField is the single top-level label, or "undetermined".
	ResearchField string `json:"research_field" yaml:"research_field"`

	// SubFields lists every taxonomy field that matched.
	SubFields []string `json:"sub_fields,omitempty" yaml:"sub_fields,omitempty"`

	// DomainSpecialties lists finer-grained specialty tags.
	DomainSpecialties []string `json:"domain_specialties,omitempty" yaml:"domain_specialties,omitempty"`

	ClinicalRelevance ClinicalRelevance `json:"clinical_relevance" yaml:"clinical_relevance"`
}

// AnalyzedRecord bundles a merged record with its derived annotations.
// This is the unit the analytics stage consumes.
type AnalyzedRecord struct {
	Record         MergedRecord           `json:"record" yaml:"record"`
	Role           AuthorRole             `json:"role" yaml:"role"`
	Classification ThematicClassification `json:"classification" yaml:"classification"`
}
