// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/pdiddy/identity-engine/internal/httputil"
	"github.com/pdiddy/identity-engine/pkg/types"
)

// orcidSearchBase and orcidRecordBase are the ORCID public API
// endpoints. Declared as vars so tests can substitute an httptest
// server.
var (
	orcidSearchBase = "https://pub.orcid.org/v3.0/search"
	orcidRecordBase = "https://pub.orcid.org/v3.0"
)

// ORCIDProvider resolves the email to an ORCID iD via the public search
// API, then fetches that researcher's works listing.
type ORCIDProvider struct {
	Client  *http.Client
	Limiter *rate.Limiter
}

func (p *ORCIDProvider) Source() types.Source { return types.SourceORCID }

func (p *ORCIDProvider) Enabled(cfg types.FetchConfig) bool { return cfg.EnableORCID }

func (p *ORCIDProvider) Fetch(ctx context.Context, query types.IdentityQuery, cfg types.FetchConfig) (types.SourcePayload, error) {
	id, err := p.findID(ctx, query.Email, cfg)
	if err != nil {
		return types.SourcePayload{}, err
	}
	if id == "" {
		// No registered iD for this email: an empty works payload, not an
		// error.
		return types.SourcePayload{Source: types.SourceORCID, Body: []byte(`{"group":[]}`)}, nil
	}

	if err := wait(ctx, p.Limiter); err != nil {
		return types.SourcePayload{}, err
	}
	reqURL := fmt.Sprintf("%s/%s/works", orcidRecordBase, id)
	body, err := p.get(ctx, reqURL, cfg)
	if err != nil {
		return types.SourcePayload{}, err
	}
	return types.SourcePayload{Source: types.SourceORCID, Body: body}, nil
}

// orcidSearchResponse mirrors the expanded-search envelope; only the
// identifier path is needed.
type orcidSearchResponse struct {
	Result []struct {
		OrcidIdentifier struct {
			Path string `json:"path"`
		} `json:"orcid-identifier"`
	} `json:"result"`
}

func (p *ORCIDProvider) findID(ctx context.Context, email string, cfg types.FetchConfig) (string, error) {
	if err := wait(ctx, p.Limiter); err != nil {
		return "", err
	}
	params := url.Values{"q": {fmt.Sprintf("email:%s", email)}}
	body, err := p.get(ctx, orcidSearchBase+"?"+params.Encode(), cfg)
	if err != nil {
		return "", err
	}

	var sr orcidSearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return "", fmt.Errorf("parsing ORCID search response: %w", err)
	}
	if len(sr.Result) == 0 {
		return "", nil
	}
	return sr.Result[0].OrcidIdentifier.Path, nil
}

func (p *ORCIDProvider) get(ctx context.Context, reqURL string, cfg types.FetchConfig) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, p.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("ORCID API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ORCID API returned HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
