// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/pdiddy/identity-engine/internal/httputil"
	"github.com/pdiddy/identity-engine/pkg/types"
)

// scopusSearchBase is the Scopus Search API endpoint. Declared as a var
// so tests can substitute an httptest server.
var scopusSearchBase = "https://api.elsevier.com/content/search/scopus"

// ScopusProvider queries the Scopus Search API by author email. An API
// key is mandatory; without one the provider reports itself
// unavailable.
type ScopusProvider struct {
	Client  *http.Client
	Limiter *rate.Limiter
}

func (p *ScopusProvider) Source() types.Source { return types.SourceScopus }

func (p *ScopusProvider) Enabled(cfg types.FetchConfig) bool { return cfg.EnableScopus }

func (p *ScopusProvider) Fetch(ctx context.Context, query types.IdentityQuery, cfg types.FetchConfig) (types.SourcePayload, error) {
	if cfg.ScopusAPIKey == "" {
		return types.SourcePayload{}, fmt.Errorf("scopus API key not configured")
	}
	if err := wait(ctx, p.Limiter); err != nil {
		return types.SourcePayload{}, err
	}

	params := url.Values{
		"query": {fmt.Sprintf("AUTHEMAIL(%s)", query.Email)},
		"count": {fmt.Sprintf("%d", maxRecords(cfg))},
	}
	reqURL := scopusSearchBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return types.SourcePayload{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("X-ELS-APIKey", cfg.ScopusAPIKey)

	resp, err := httputil.DoWithRetry(ctx, p.Client, req, 0)
	if err != nil {
		return types.SourcePayload{}, fmt.Errorf("Scopus API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.SourcePayload{}, fmt.Errorf("Scopus API returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.SourcePayload{}, fmt.Errorf("reading Scopus response: %w", err)
	}
	return types.SourcePayload{Source: types.SourceScopus, Body: body}, nil
}
