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

// crossrefWorksBase is the CrossRef works endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossrefWorksBase = "https://api.crossref.org/works"

// CrossRefProvider queries the CrossRef works API. CrossRef has no
// email index, so the query is built from the caller's name hints and
// falls back to the bare email string.
type CrossRefProvider struct {
	Client  *http.Client
	Limiter *rate.Limiter
}

func (p *CrossRefProvider) Source() types.Source { return types.SourceCrossRef }

func (p *CrossRefProvider) Enabled(cfg types.FetchConfig) bool { return cfg.EnableCrossRef }

func (p *CrossRefProvider) Fetch(ctx context.Context, query types.IdentityQuery, cfg types.FetchConfig) (types.SourcePayload, error) {
	if err := wait(ctx, p.Limiter); err != nil {
		return types.SourcePayload{}, err
	}

	params := url.Values{
		"rows": {fmt.Sprintf("%d", maxRecords(cfg))},
	}
	if len(query.NameHints) > 0 {
		params.Set("query.author", query.NameHints[0])
	} else {
		params.Set("query", query.Email)
	}
	if cfg.CrossRefMailto != "" {
		params.Set("mailto", cfg.CrossRefMailto)
	}
	reqURL := crossrefWorksBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return types.SourcePayload{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, p.Client, req, 0)
	if err != nil {
		return types.SourcePayload{}, fmt.Errorf("CrossRef API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.SourcePayload{}, fmt.Errorf("CrossRef API returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.SourcePayload{}, fmt.Errorf("reading CrossRef response: %w", err)
	}
	return types.SourcePayload{Source: types.SourceCrossRef, Body: body}, nil
}
