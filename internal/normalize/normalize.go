// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize converts heterogeneous provider payloads into the
// canonical RawRecord shape. Each provider has an explicit input schema
// validated here at the boundary; MalformedPayload is the single failure
// channel into the rest of the pipeline. A record missing title, DOI and
// PMID alike is dropped, never fatal to the run.
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/identity-engine/internal/similarity"
	"github.com/pdiddy/identity-engine/pkg/types"
)

// MalformedPayloadError reports a provider payload (or one entry within
// it) that failed schema validation. Recoverable: the caller counts it in
// diagnostics and continues.
type MalformedPayloadError struct {
	Source types.Source
	Reason string
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed %s payload: %s", e.Source, e.Reason)
}

// Result is the outcome of normalizing one provider payload.
type Result struct {
	// Records are the canonical records extracted from the payload.
	Records []types.RawRecord

	// Dropped counts entries rejected for missing all identity fields.
	Dropped int

	// Notes explain each drop for diagnostics.
	Notes []string
}

// Payload dispatches on the source tag to the provider-specific schema.
// A payload-level parse failure returns MalformedPayloadError and no
// records; entry-level failures only increment Dropped.
func Payload(p types.SourcePayload) (Result, error) {
	switch p.Source {
	case types.SourceORCID:
		return parseORCID(p.Body)
	case types.SourceScopus:
		return parseScopus(p.Body)
	case types.SourcePubMed:
		return parsePubMed(p.Body)
	case types.SourceCrossRef:
		return parseCrossRef(p.Body)
	case types.SourceWeb:
		return parseWeb(p.Body)
	default:
		return Result{}, &MalformedPayloadError{Source: p.Source, Reason: "unknown source tag"}
	}
}

// finishRecord validates and polishes a candidate record. It normalizes
// the DOI/PMID, cleans author names (order preserved; order is
// load-bearing for role inference), and rejects records with no identity
// field at all.
func finishRecord(r types.RawRecord) (types.RawRecord, error) {
	r.Title = strings.TrimSpace(r.Title)
	r.Journal = strings.TrimSpace(r.Journal)
	r.DOI = similarity.NormalizeDOI(r.DOI)
	r.PMID = similarity.NormalizePMID(r.PMID)
	r.Date = normalizeDate(r.Date)

	if r.Title == "" && r.DOI == "" && r.PMID == "" {
		return types.RawRecord{}, &MalformedPayloadError{
			Source: r.Source,
			Reason: "entry has no title, DOI, or PMID",
		}
	}

	authors := make([]string, 0, len(r.Authors))
	for _, a := range r.Authors {
		if n := similarity.NormalizeName(a); n != "" {
			authors = append(authors, n)
		}
	}
	r.Authors = authors

	keywords := make([]string, 0, len(r.Keywords))
	for _, k := range r.Keywords {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	r.Keywords = keywords

	if r.CitationCount < 0 {
		r.CitationCount = -1
	}
	return r, nil
}

var (
	isoDateRe = regexp.MustCompile(`^(\d{4})-(\d{1,2})(?:-(\d{1,2}))?`)
	yearRe    = regexp.MustCompile(`\b(1[89]\d{2}|20\d{2})\b`)
)

// normalizeDate reduces a provider date to a 4-digit year when only a
// year is available, or an ISO date when more precision exists. Anything
// unparseable becomes empty, which downstream buckets as "unknown".
func normalizeDate(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return ""
	}
	if m := isoDateRe.FindStringSubmatch(date); m != nil {
		if m[3] != "" {
			return fmt.Sprintf("%s-%02s-%02s", m[1], pad2(m[2]), pad2(m[3]))
		}
		return fmt.Sprintf("%s-%02s-01", m[1], pad2(m[2]))
	}
	if m := yearRe.FindString(date); m != "" {
		return m
	}
	return ""
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// splitAuthorString parses a single authors string into ordered names.
// Providers that return one flat string (Scopus dc:creator, web snippets)
// separate authors with semicolons or " and ".
func splitAuthorString(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	s = strings.ReplaceAll(s, " and ", ";")
	s = strings.ReplaceAll(s, " & ", ";")
	parts := strings.Split(s, ";")
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

// firstEmail extracts the first email address from free text, used to
// pick up corresponding-author contacts embedded in abstracts.
func firstEmail(text string) string {
	return strings.ToLower(emailRe.FindString(text))
}
