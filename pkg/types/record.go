// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the identity-engine
// pipeline: raw and merged publication records, author roles, thematic
// classifications, identity confidence, analytics snapshots, and stage
// configuration.
package types

// Source identifies a bibliographic provider. The set is closed; adapters
// are selected through the fetch.Provider interface, never by runtime
// string lookup.
type Source string

const (
	SourceORCID    Source = "orcid"
	SourceScopus   Source = "scopus"
	SourcePubMed   Source = "pubmed"
	SourceCrossRef Source = "crossref"
	SourceWeb      Source = "web"
)

// SourcePriority orders providers by typical metadata completeness.
// Lower is better. Reconciliation during merge consults this order when
// several contributors supply the same field.
var SourcePriority = map[Source]int{
	SourceScopus:   0,
	SourcePubMed:   1,
	SourceCrossRef: 2,
	SourceORCID:    3,
	SourceWeb:      4,
}

// SourcePayload is one provider's response body for one identity query,
// handed to the normalizer together with its source tag.
type SourcePayload struct {
	// Source tags which provider produced the payload.
	Source Source `json:"source" yaml:"source"`

	// Body is the raw response (JSON for most providers, XML for PubMed,
	// snippet text for web search). Kept opaque until normalization.
	Body []byte `json:"body" yaml:"body"`
}

// RawRecord is one provider's view of one publication. Immutable once
// created; produced once per provider call by the normalizer.
type RawRecord struct {
	// Source is the provider that supplied this record.
	Source Source `json:"source" yaml:"source"`

	// Title is the publication title as given by the provider.
	Title string `json:"title" yaml:"title"`

	// Journal is the venue name, if known.
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`

	// Date is the publication date: a 4-digit year when only a year is
	// known, or an ISO date (YYYY-MM-DD) when more precision exists.
	// Empty when the provider supplied no usable date.
	Date string `json:"date,omitempty" yaml:"date,omitempty"`

	// DOI is the normalized DOI (lowercase, no resolver prefix), if any.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// PMID is the PubMed identifier, if any.
	PMID string `json:"pmid,omitempty" yaml:"pmid,omitempty"`

	// Authors lists author names in the provider's order. Order is
	// authoritative for role inference downstream; never re-sort.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the abstract text, if supplied.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Keywords are provider-supplied subject terms.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// CitationCount is the provider's citation count, or -1 when unknown.
	CitationCount int `json:"citation_count" yaml:"citation_count"`

	// CorrespondingEmail is the contact email attached to the record,
	// when the provider exposes one.
	CorrespondingEmail string `json:"corresponding_email,omitempty" yaml:"corresponding_email,omitempty"`

	// RawPayload preserves the provider fragment this record was built
	// from, for audit. Opaque to the rest of the pipeline.
	RawPayload []byte `json:"-" yaml:"-"`
}

// Year returns the 4-digit publication year, or 0 when the date is
// missing or unparseable.
func (r RawRecord) Year() int {
	return yearOf(r.Date)
}

func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	y := 0
	for _, c := range date[:4] {
		if c < '0' || c > '9' {
			return 0
		}
		y = y*10 + int(c-'0')
	}
	return y
}
