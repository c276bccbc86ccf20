// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pdiddy/identity-engine/pkg/types"
)

// scopusResponse mirrors the Scopus Search API envelope.
type scopusResponse struct {
	SearchResults struct {
		Entry []scopusEntry `json:"entry"`
	} `json:"search-results"`
}

type scopusEntry struct {
	Title       string `json:"dc:title"`
	Publication string `json:"prism:publicationName"`
	CoverDate   string `json:"prism:coverDate"`
	DOI         string `json:"prism:doi"`
	Description string `json:"dc:description"`
	Creator     string `json:"dc:creator"`
	CitedBy     string `json:"citedby-count"`
	Keywords    string `json:"authkeywords"`
	// Authors is populated when the view includes the author expansion.
	Authors struct {
		Author []struct {
			AuthName string `json:"authname"`
		} `json:"author"`
	} `json:"author,omitempty"`
}

// parseScopus extracts one record per search entry. The author expansion
// is preferred over the single dc:creator string when present.
func parseScopus(body []byte) (Result, error) {
	var sr scopusResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return Result{}, &MalformedPayloadError{Source: types.SourceScopus, Reason: err.Error()}
	}

	var res Result
	for _, e := range sr.SearchResults.Entry {
		raw, _ := json.Marshal(e)
		r := types.RawRecord{
			Source:        types.SourceScopus,
			Title:         e.Title,
			Journal:       e.Publication,
			Date:          e.CoverDate,
			DOI:           e.DOI,
			Abstract:      e.Description,
			CitationCount: -1,
			RawPayload:    raw,
		}

		for _, a := range e.Authors.Author {
			if a.AuthName != "" {
				r.Authors = append(r.Authors, a.AuthName)
			}
		}
		if len(r.Authors) == 0 {
			r.Authors = splitAuthorString(e.Creator)
		}

		if e.Keywords != "" {
			for _, k := range strings.Split(e.Keywords, "|") {
				r.Keywords = append(r.Keywords, strings.TrimSpace(k))
			}
		}
		if n, err := strconv.Atoi(e.CitedBy); err == nil {
			r.CitationCount = n
		}
		r.CorrespondingEmail = firstEmail(e.Description)

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
