// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/identity-engine/pkg/types"
)

// crossrefResponse mirrors the CrossRef works query envelope.
type crossrefResponse struct {
	Message struct {
		Items []crossrefWork `json:"items"`
	} `json:"message"`
}

type crossrefWork struct {
	Title          []string `json:"title"`
	ContainerTitle []string `json:"container-title"`
	DOI            string   `json:"DOI"`
	Abstract       string   `json:"abstract"`
	Subject        []string `json:"subject"`
	CitedByCount   int      `json:"is-referenced-by-count"`
	Issued         struct {
		DateParts [][]int `json:"date-parts"`
	} `json:"issued"`
	Author []struct {
		Given  string `json:"given"`
		Family string `json:"family"`
	} `json:"author"`
}

// parseCrossRef extracts one record per work item. CrossRef abstracts
// arrive as JATS XML fragments; tags are stripped before storage.
func parseCrossRef(body []byte) (Result, error) {
	var cr crossrefResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return Result{}, &MalformedPayloadError{Source: types.SourceCrossRef, Reason: err.Error()}
	}

	var res Result
	for _, w := range cr.Message.Items {
		raw, _ := json.Marshal(w)
		r := types.RawRecord{
			Source:        types.SourceCrossRef,
			DOI:           w.DOI,
			Abstract:      stripJATS(w.Abstract),
			Keywords:      w.Subject,
			CitationCount: w.CitedByCount,
			RawPayload:    raw,
		}
		if len(w.Title) > 0 {
			r.Title = w.Title[0]
		}
		if len(w.ContainerTitle) > 0 {
			r.Journal = w.ContainerTitle[0]
		}
		r.Date = crossrefDate(w.Issued.DateParts)

		for _, a := range w.Author {
			name := strings.TrimSpace(a.Family + " " + a.Given)
			if name != "" {
				r.Authors = append(r.Authors, name)
			}
		}

		rec, err := finishRecord(r)
		if err != nil {
			res.Dropped++
			res.Notes = append(res.Notes, err.Error())
			continue
		}
		res.Records = append(res.Records, rec)
	}
	return res, nil
}

func crossrefDate(parts [][]int) string {
	if len(parts) == 0 || len(parts[0]) == 0 {
		return ""
	}
	p := parts[0]
	switch len(p) {
	case 1:
		return fmt.Sprintf("%04d", p[0])
	case 2:
		return fmt.Sprintf("%04d-%02d", p[0], p[1])
	default:
		return fmt.Sprintf("%04d-%02d-%02d", p[0], p[1], p[2])
	}
}

// stripJATS removes XML tags from a CrossRef JATS abstract fragment.
func stripJATS(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
