// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"encoding/json"
	"strings"

	"github.com/pdiddy/identity-engine/pkg/types"
)

// webResults mirrors the search-snippet payload produced by the web
// adapter. Snippets carry no structural metadata; records built from
// them are inherently weak evidence and the scorer treats them as such.
type webResults struct {
	Results []webResult `json:"results"`
}

type webResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// parseWeb extracts one record per snippet that looks like a
// publication: the snippet text doubles as a stand-in abstract so the
// classifier and signal extractor can see it.
func parseWeb(body []byte) (Result, error) {
	var wr webResults
	if err := json.Unmarshal(body, &wr); err != nil {
		return Result{}, &MalformedPayloadError{Source: types.SourceWeb, Reason: err.Error()}
	}

	var res Result
	for _, w := range wr.Results {
		raw, _ := json.Marshal(w)
		r := types.RawRecord{
			Source:             types.SourceWeb,
			Title:              cleanSnippetTitle(w.Title),
			Abstract:           strings.TrimSpace(w.Snippet),
			CitationCount:      -1,
			CorrespondingEmail: firstEmail(w.Snippet),
			RawPayload:         raw,
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

// cleanSnippetTitle trims the " - PublisherName" tail search engines
// append to result titles.
func cleanSnippetTitle(title string) string {
	if idx := strings.LastIndex(title, " - "); idx > 20 {
		title = title[:idx]
	}
	return strings.TrimSpace(title)
}
