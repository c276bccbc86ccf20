// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"errors"
	"testing"

	"github.com/pdiddy/identity-engine/pkg/types"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"year only", "2019", "2019"},
		{"iso date", "2019-03-07", "2019-03-07"},
		{"iso year-month", "2019-3", "2019-03-01"},
		{"year in text", "Published 2021 by Elsevier", "2021"},
		{"garbage", "n.d.", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeDate(tt.in); got != tt.want {
				t.Errorf("normalizeDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFinishRecordDropsEmptyIdentity(t *testing.T) {
	_, err := finishRecord(types.RawRecord{Source: types.SourceWeb, Abstract: "some text"})
	var malformed *MalformedPayloadError
	if !errors.As(err, &malformed) {
		t.Fatalf("finishRecord error = %v, want MalformedPayloadError", err)
	}
	if malformed.Source != types.SourceWeb {
		t.Errorf("malformed source = %s, want web", malformed.Source)
	}
}

func TestFinishRecordPreservesAuthorOrder(t *testing.T) {
	rec, err := finishRecord(types.RawRecord{
		Source:  types.SourcePubMed,
		Title:   "A Study",
		Authors: []string{"Dr. Smith J", "  Doe   A ", "Prof. Lee K"},
	})
	if err != nil {
		t.Fatalf("finishRecord: %v", err)
	}
	want := []string{"Smith J", "Doe A", "Lee K"}
	if len(rec.Authors) != len(want) {
		t.Fatalf("authors = %v, want %v", rec.Authors, want)
	}
	for i := range want {
		if rec.Authors[i] != want[i] {
			t.Errorf("authors[%d] = %q, want %q", i, rec.Authors[i], want[i])
		}
	}
}

func TestParseORCID(t *testing.T) {
	body := []byte(`{
	  "group": [
	    {"work-summary": [
	      {"title": {"title": {"value": "Dental Implant Outcomes"}},
	       "journal-title": {"value": "J Oral Sci"},
	       "publication-date": {"year": {"value": "2020"}},
	       "external-ids": {"external-id": [
	         {"external-id-type": "doi", "external-id-value": "10.1000/abc"}]}}
	    ]},
	    {"work-summary": [
	      {"title": {"title": {"value": ""}},
	       "publication-date": {"year": {"value": "2018"}}}
	    ]}
	  ]}`)

	res, err := Payload(types.SourcePayload{Source: types.SourceORCID, Body: body})
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	if len(res.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(res.Records))
	}
	if res.Dropped != 1 {
		t.Errorf("dropped = %d, want 1", res.Dropped)
	}
	r := res.Records[0]
	if r.DOI != "10.1000/abc" || r.Date != "2020" || r.Journal != "J Oral Sci" {
		t.Errorf("unexpected record: %+v", r)
	}
}

func TestParseScopus(t *testing.T) {
	body := []byte(`{
	  "search-results": {"entry": [
	    {"dc:title": "Cardiac Outcomes in Elderly Patients",
	     "prism:publicationName": "Eur Heart J",
	     "prism:coverDate": "2021-06-15",
	     "prism:doi": "10.1093/eurheartj/ehab123",
	     "dc:description": "BACKGROUND: contact j.smith@uni.edu for data.",
	     "dc:creator": "Smith J.",
	     "citedby-count": "42",
	     "authkeywords": "cardiology | elderly | outcomes"}
	  ]}}`)

	res, err := Payload(types.SourcePayload{Source: types.SourceScopus, Body: body})
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	if len(res.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(res.Records))
	}
	r := res.Records[0]
	if r.CitationCount != 42 {
		t.Errorf("citations = %d, want 42", r.CitationCount)
	}
	if len(r.Keywords) != 3 {
		t.Errorf("keywords = %v, want 3 entries", r.Keywords)
	}
	if r.CorrespondingEmail != "j.smith@uni.edu" {
		t.Errorf("corresponding email = %q", r.CorrespondingEmail)
	}
	if r.Date != "2021-06-15" {
		t.Errorf("date = %q, want 2021-06-15", r.Date)
	}
}

func TestParsePubMed(t *testing.T) {
	body := []byte(`<?xml version="1.0"?>
	<PubmedArticleSet>
	  <PubmedArticle>
	    <MedlineCitation>
	      <PMID>31234567</PMID>
	      <Article>
	        <Journal>
	          <JournalIssue><PubDate><Year>2019</Year><Month>Mar</Month></PubDate></JournalIssue>
	          <Title>The Lancet</Title>
	        </Journal>
	        <ArticleTitle>Randomized Trial of Something</ArticleTitle>
	        <Abstract><AbstractText>We conducted a randomized controlled trial.</AbstractText></Abstract>
	        <AuthorList>
	          <Author><LastName>Smith</LastName><ForeName>Jane</ForeName>
	            <AffiliationInfo><Affiliation>Uni Hospital. jane.smith@uni.edu</Affiliation></AffiliationInfo>
	          </Author>
	          <Author><LastName>Doe</LastName><Initials>A</Initials></Author>
	        </AuthorList>
	        <ELocationID EIdType="doi">10.1016/S0140-6736(19)30001-1</ELocationID>
	      </Article>
	      <KeywordList><Keyword>trial</Keyword></KeywordList>
	    </MedlineCitation>
	  </PubmedArticle>
	</PubmedArticleSet>`)

	res, err := Payload(types.SourcePayload{Source: types.SourcePubMed, Body: body})
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	if len(res.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(res.Records))
	}
	r := res.Records[0]
	if r.PMID != "31234567" {
		t.Errorf("pmid = %q", r.PMID)
	}
	if r.Date != "2019-03" && r.Date != "2019-03-01" {
		t.Errorf("date = %q, want March 2019", r.Date)
	}
	if len(r.Authors) != 2 || r.Authors[0] != "Smith Jane" || r.Authors[1] != "Doe A" {
		t.Errorf("authors = %v", r.Authors)
	}
	if r.CorrespondingEmail != "jane.smith@uni.edu" {
		t.Errorf("corresponding email = %q", r.CorrespondingEmail)
	}
	if r.DOI == "" {
		t.Error("doi not extracted from ELocationID")
	}
}

func TestParseCrossRef(t *testing.T) {
	body := []byte(`{
	  "message": {"items": [
	    {"title": ["Machine Learning in Dentistry"],
	     "container-title": ["J Dent Res"],
	     "DOI": "10.1177/00220345211000000",
	     "abstract": "<jats:p>We review <jats:italic>applications</jats:italic>.</jats:p>",
	     "subject": ["Dentistry"],
	     "is-referenced-by-count": 7,
	     "issued": {"date-parts": [[2022, 4]]},
	     "author": [{"given": "Jane", "family": "Smith"}]}
	  ]}}`)

	res, err := Payload(types.SourcePayload{Source: types.SourceCrossRef, Body: body})
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	if len(res.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(res.Records))
	}
	r := res.Records[0]
	if r.Abstract != "We review applications ." && r.Abstract != "We review applications." {
		t.Errorf("abstract = %q, JATS tags not stripped", r.Abstract)
	}
	if r.Date != "2022-04" && r.Date != "2022-04-01" {
		t.Errorf("date = %q", r.Date)
	}
	if r.Authors[0] != "Smith Jane" {
		t.Errorf("authors = %v", r.Authors)
	}
}

func TestParseWebDropsTitlelessSnippets(t *testing.T) {
	body := []byte(`{"results": [
	  {"title": "Dental Implant Study - ResearchGate Publication Page", "snippet": "by J Smith. Contact: smith@uni.edu", "url": "https://example.org/1"},
	  {"title": "", "snippet": "no title here", "url": "https://example.org/2"}
	]}`)

	res, err := Payload(types.SourcePayload{Source: types.SourceWeb, Body: body})
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	if len(res.Records) != 1 || res.Dropped != 1 {
		t.Fatalf("records = %d dropped = %d, want 1/1", len(res.Records), res.Dropped)
	}
	if got := res.Records[0].Title; got != "Dental Implant Study" {
		t.Errorf("title = %q, publisher tail not trimmed", got)
	}
}

func TestPayloadParseFailure(t *testing.T) {
	_, err := Payload(types.SourcePayload{Source: types.SourceScopus, Body: []byte("{broken")})
	var malformed *MalformedPayloadError
	if !errors.As(err, &malformed) {
		t.Fatalf("error = %v, want MalformedPayloadError", err)
	}
}
