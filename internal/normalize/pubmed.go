// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/pdiddy/identity-engine/pkg/types"
)

// pubmedArticleSet mirrors the eUtils efetch XML for db=pubmed.
type pubmedArticleSet struct {
	XMLName  xml.Name        `xml:"PubmedArticleSet"`
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	MedlineCitation struct {
		PMID    string `xml:"PMID"`
		Article struct {
			Title   string `xml:"ArticleTitle"`
			Journal struct {
				Title        string `xml:"Title"`
				JournalIssue struct {
					PubDate struct {
						Year  string `xml:"Year"`
						Month string `xml:"Month"`
						Day   string `xml:"Day"`
					} `xml:"PubDate"`
				} `xml:"JournalIssue"`
			} `xml:"Journal"`
			Abstract struct {
				Text []string `xml:"AbstractText"`
			} `xml:"Abstract"`
			AuthorList struct {
				Authors []pubmedAuthor `xml:"Author"`
			} `xml:"AuthorList"`
			ELocationIDs []struct {
				Type  string `xml:"EIdType,attr"`
				Value string `xml:",chardata"`
			} `xml:"ELocationID"`
		} `xml:"Article"`
		KeywordList struct {
			Keywords []string `xml:"Keyword"`
		} `xml:"KeywordList"`
	} `xml:"MedlineCitation"`
}

type pubmedAuthor struct {
	LastName string `xml:"LastName"`
	ForeName string `xml:"ForeName"`
	Initials string `xml:"Initials"`
	// Affiliations often carry the corresponding email in free text.
	Affiliations []string `xml:"AffiliationInfo>Affiliation"`
}

// parsePubMed extracts one record per PubmedArticle. Author order in the
// XML matches the byline and is preserved exactly.
func parsePubMed(body []byte) (Result, error) {
	var set pubmedArticleSet
	if err := xml.Unmarshal(body, &set); err != nil {
		return Result{}, &MalformedPayloadError{Source: types.SourcePubMed, Reason: err.Error()}
	}

	var res Result
	for _, art := range set.Articles {
		mc := art.MedlineCitation
		r := types.RawRecord{
			Source:        types.SourcePubMed,
			Title:         mc.Article.Title,
			Journal:       mc.Article.Journal.Title,
			PMID:          mc.PMID,
			Abstract:      strings.Join(mc.Article.Abstract.Text, " "),
			Keywords:      mc.KeywordList.Keywords,
			CitationCount: -1,
		}

		pd := mc.Article.Journal.JournalIssue.PubDate
		switch {
		case pd.Year == "":
			// leave empty
		case pd.Month == "":
			r.Date = pd.Year
		case pd.Day == "":
			r.Date = fmt.Sprintf("%s-%s", pd.Year, monthNumber(pd.Month))
		default:
			r.Date = fmt.Sprintf("%s-%s-%s", pd.Year, monthNumber(pd.Month), pd.Day)
		}

		for _, id := range mc.Article.ELocationIDs {
			if id.Type == "doi" {
				r.DOI = strings.TrimSpace(id.Value)
			}
		}

		for _, a := range mc.Article.AuthorList.Authors {
			name := pubmedAuthorName(a)
			if name == "" {
				continue
			}
			r.Authors = append(r.Authors, name)
			if r.CorrespondingEmail == "" {
				for _, aff := range a.Affiliations {
					if e := firstEmail(aff); e != "" {
						r.CorrespondingEmail = e
						break
					}
				}
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

func pubmedAuthorName(a pubmedAuthor) string {
	switch {
	case a.LastName == "":
		return ""
	case a.ForeName != "":
		return a.LastName + " " + a.ForeName
	case a.Initials != "":
		return a.LastName + " " + a.Initials
	default:
		return a.LastName
	}
}

// monthNumber maps PubMed's three-letter month abbreviations to digits.
// Numeric months pass through.
func monthNumber(m string) string {
	months := map[string]string{
		"jan": "01", "feb": "02", "mar": "03", "apr": "04",
		"may": "05", "jun": "06", "jul": "07", "aug": "08",
		"sep": "09", "oct": "10", "nov": "11", "dec": "12",
	}
	if n, ok := months[strings.ToLower(m)]; ok {
		return n
	}
	return m
}
