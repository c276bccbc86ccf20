// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch queries the publication metadata providers and returns
// their raw payloads for normalization. Providers run concurrently; a
// provider that fails or times out is reported unavailable and the run
// proceeds with whatever the others returned.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/pdiddy/identity-engine/pkg/types"
)

// Provider fetches one source's raw payload. Each provider implements
// this interface per the Strategy pattern.
type Provider interface {
	Source() types.Source
	Enabled(cfg types.FetchConfig) bool
	Fetch(ctx context.Context, query types.IdentityQuery, cfg types.FetchConfig) (types.SourcePayload, error)
}

// Output holds the collected payloads and per-provider failures.
type Output struct {
	Payloads    []types.SourcePayload
	Unavailable []types.Source
	Errors      []string
}

// NewProviders constructs the full provider set with a shared HTTP
// client and a per-provider politeness limiter.
func NewProviders(cfg types.FetchConfig) []Provider {
	client := &http.Client{Timeout: cfg.Timeout}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 3
	}
	limiter := func() *rate.Limiter {
		return rate.NewLimiter(rate.Limit(rps), 1)
	}
	return []Provider{
		&ORCIDProvider{Client: client, Limiter: limiter()},
		&ScopusProvider{Client: client, Limiter: limiter()},
		&PubMedProvider{Client: client, Limiter: limiter()},
		&CrossRefProvider{Client: client, Limiter: limiter()},
		&WebProvider{Client: client, Limiter: limiter()},
	}
}

// All fans the query out to every enabled provider concurrently and
// collects payloads. Provider errors are warnings, never fatal.
func All(ctx context.Context, query types.IdentityQuery, providers []Provider, cfg types.FetchConfig, w io.Writer) Output {
	type providerResult struct {
		payload types.SourcePayload
		err     error
		source  types.Source
	}

	var enabled []Provider
	for _, p := range providers {
		if p.Enabled(cfg) {
			enabled = append(enabled, p)
		}
	}

	ch := make(chan providerResult, len(enabled))
	var wg sync.WaitGroup
	for _, p := range enabled {
		wg.Add(1)
		go func(p Provider) {
			defer wg.Done()
			payload, err := p.Fetch(ctx, query, cfg)
			ch <- providerResult{payload: payload, err: err, source: p.Source()}
		}(p)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	var out Output
	for pr := range ch {
		if pr.err != nil {
			out.Unavailable = append(out.Unavailable, pr.source)
			out.Errors = append(out.Errors, fmt.Sprintf("%s: %v", pr.source, pr.err))
			fmt.Fprintf(w, "warning: provider %s failed: %v\n", pr.source, pr.err)
			continue
		}
		out.Payloads = append(out.Payloads, pr.payload)
	}
	return out
}

// wait blocks on the politeness limiter; a nil limiter means no limit.
func wait(ctx context.Context, l *rate.Limiter) error {
	if l == nil {
		return nil
	}
	return l.Wait(ctx)
}

func maxRecords(cfg types.FetchConfig) int {
	if cfg.MaxRecordsPerSource > 0 {
		return cfg.MaxRecordsPerSource
	}
	return 50
}
