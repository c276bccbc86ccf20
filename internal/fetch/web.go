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

// webSearchBase is the snippet-search endpoint. The engine expects a
// JSON body of the form {"results": [{"title", "snippet", "url"}]};
// any search gateway speaking that shape works. Declared as a var so
// tests can substitute an httptest server.
var webSearchBase = "https://search.meshintelligence.net/v1/search"

// WebProvider searches the open web for pages mentioning the exact
// email. Snippet evidence is inherently weak; the scorer accounts for
// that.
type WebProvider struct {
	Client  *http.Client
	Limiter *rate.Limiter
}

func (p *WebProvider) Source() types.Source { return types.SourceWeb }

func (p *WebProvider) Enabled(cfg types.FetchConfig) bool { return cfg.EnableWeb }

func (p *WebProvider) Fetch(ctx context.Context, query types.IdentityQuery, cfg types.FetchConfig) (types.SourcePayload, error) {
	if err := wait(ctx, p.Limiter); err != nil {
		return types.SourcePayload{}, err
	}

	params := url.Values{
		// Quoted so the engine matches the exact address, not its tokens.
		"q":     {fmt.Sprintf("%q", query.Email)},
		"count": {fmt.Sprintf("%d", maxRecords(cfg))},
	}
	reqURL := webSearchBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return types.SourcePayload{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, p.Client, req, 0)
	if err != nil {
		return types.SourcePayload{}, fmt.Errorf("web search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.SourcePayload{}, fmt.Errorf("web search returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.SourcePayload{}, fmt.Errorf("reading web search response: %w", err)
	}
	return types.SourcePayload{Source: types.SourceWeb, Body: body}, nil
}
