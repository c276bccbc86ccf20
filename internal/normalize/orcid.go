// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"encoding/json"
	"fmt"

	"github.com/pdiddy/identity-engine/pkg/types"
)

// orcidWorks mirrors the ORCID public API /works response: work
// summaries grouped by external identifier.
type orcidWorks struct {
	Group []struct {
		WorkSummary []orcidWorkSummary `json:"work-summary"`
	} `json:"group"`
}

type orcidWorkSummary struct {
	Title struct {
		Title struct {
			Value string `json:"value"`
		} `json:"title"`
	} `json:"title"`
	JournalTitle struct {
		Value string `json:"value"`
	} `json:"journal-title"`
	PublicationDate struct {
		Year  orcidDatePart `json:"year"`
		Month orcidDatePart `json:"month"`
		Day   orcidDatePart `json:"day"`
	} `json:"publication-date"`
	ExternalIDs struct {
		ExternalID []struct {
			Type  string `json:"external-id-type"`
			Value string `json:"external-id-value"`
		} `json:"external-id"`
	} `json:"external-ids"`
}

type orcidDatePart struct {
	Value string `json:"value"`
}

// parseORCID extracts one record per work summary. ORCID works carry no
// author list of their own; the dedup stage fills authors from richer
// sources sharing the work's DOI.
func parseORCID(body []byte) (Result, error) {
	var works orcidWorks
	if err := json.Unmarshal(body, &works); err != nil {
		return Result{}, &MalformedPayloadError{Source: types.SourceORCID, Reason: err.Error()}
	}

	var res Result
	for _, group := range works.Group {
		for _, ws := range group.WorkSummary {
			raw, _ := json.Marshal(ws)
			r := types.RawRecord{
				Source:        types.SourceORCID,
				Title:         ws.Title.Title.Value,
				Journal:       ws.JournalTitle.Value,
				Date:          orcidDate(ws),
				CitationCount: -1,
				RawPayload:    raw,
			}
			for _, id := range ws.ExternalIDs.ExternalID {
				switch id.Type {
				case "doi":
					r.DOI = id.Value
				case "pmid":
					r.PMID = id.Value
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
	}
	return res, nil
}

func orcidDate(ws orcidWorkSummary) string {
	y := ws.PublicationDate.Year.Value
	if y == "" {
		return ""
	}
	m, d := ws.PublicationDate.Month.Value, ws.PublicationDate.Day.Value
	if m == "" {
		return y
	}
	if d == "" {
		return fmt.Sprintf("%s-%s", y, m)
	}
	return fmt.Sprintf("%s-%s-%s", y, m, d)
}
