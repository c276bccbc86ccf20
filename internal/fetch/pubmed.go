// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"github.com/pdiddy/identity-engine/internal/httputil"
	"github.com/pdiddy/identity-engine/pkg/types"
)

// pubmedSearchBase and pubmedFetchBase are the NCBI eUtils endpoints.
// Declared as vars so tests can substitute an httptest server.
var (
	pubmedSearchBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
	pubmedFetchBase  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"
)

// PubMedProvider runs the two-step eUtils flow: esearch resolves the
// email to PMIDs, efetch pulls the article XML.
type PubMedProvider struct {
	Client  *http.Client
	Limiter *rate.Limiter
}

func (p *PubMedProvider) Source() types.Source { return types.SourcePubMed }

func (p *PubMedProvider) Enabled(cfg types.FetchConfig) bool { return cfg.EnablePubMed }

func (p *PubMedProvider) Fetch(ctx context.Context, query types.IdentityQuery, cfg types.FetchConfig) (types.SourcePayload, error) {
	ids, err := p.search(ctx, query.Email, cfg)
	if err != nil {
		return types.SourcePayload{}, err
	}
	if len(ids) == 0 {
		return types.SourcePayload{Source: types.SourcePubMed, Body: []byte(`<PubmedArticleSet></PubmedArticleSet>`)}, nil
	}

	if err := wait(ctx, p.Limiter); err != nil {
		return types.SourcePayload{}, err
	}
	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(ids, ",")},
		"retmode": {"xml"},
	}
	if cfg.NCBIAPIKey != "" {
		params.Set("api_key", cfg.NCBIAPIKey)
	}
	body, err := p.get(ctx, pubmedFetchBase+"?"+params.Encode(), cfg)
	if err != nil {
		return types.SourcePayload{}, err
	}
	return types.SourcePayload{Source: types.SourcePubMed, Body: body}, nil
}

type esearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

func (p *PubMedProvider) search(ctx context.Context, email string, cfg types.FetchConfig) ([]string, error) {
	if err := wait(ctx, p.Limiter); err != nil {
		return nil, err
	}
	params := url.Values{
		"db":      {"pubmed"},
		"term":    {email},
		"retmode": {"json"},
		"retmax":  {fmt.Sprintf("%d", maxRecords(cfg))},
	}
	if cfg.NCBIAPIKey != "" {
		params.Set("api_key", cfg.NCBIAPIKey)
	}

	body, err := p.get(ctx, pubmedSearchBase+"?"+params.Encode(), cfg)
	if err != nil {
		return nil, err
	}

	var er esearchResponse
	if err := json.Unmarshal(body, &er); err != nil {
		return nil, fmt.Errorf("parsing esearch response: %w", err)
	}
	return er.ESearchResult.IDList, nil
}

func (p *PubMedProvider) get(ctx context.Context, reqURL string, cfg types.FetchConfig) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, p.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("PubMed eUtils request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("PubMed eUtils returned HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
