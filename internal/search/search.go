// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search paginates remote search queries into bounded, ordered
// sequences of paper records.
package search

import (
	"context"
	"fmt"

	"github.com/pdiddy/paper-harvester/pkg/types"
)

// Backend fetches one page of results from a remote search service. Each
// backend implements this interface per the Strategy pattern so the client
// can be tested against stubs without live network access.
type Backend interface {
	Name() string
	// Page returns up to count records starting at the given offset, plus
	// the total number of results the service reports for the query.
	Page(ctx context.Context, query string, start, count int, sort types.SortKey) ([]types.PaperRecord, int, error)
}

// Gate limits and retries outbound requests. Satisfied by *ratelimit.Gate.
type Gate interface {
	Execute(ctx context.Context, op func() error) (int, error)
}

const (
	defaultPageSize   = 100
	defaultMaxResults = 10
)

// Client paginates a backend, producing a bounded sequence of distinct
// papers for each query.
type Client struct {
	backend Backend
	gate    Gate
	cfg     types.SearchConfig
}

// NewClient creates a search client over the given backend. Every page
// request is issued through gate.
func NewClient(backend Backend, gate Gate, cfg types.SearchConfig) *Client {
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxResults
	}
	return &Client{backend: backend, gate: gate, cfg: cfg}
}

// Results returns up to MaxResults distinct papers for query, ordered as the
// remote service returned them. Pagination stops at the cap, at an empty
// page, or once the reported total is reached. A page failure after retry
// exhaustion returns the papers fetched so far together with the error, so
// the caller can keep the truncated set.
func (c *Client) Results(ctx context.Context, query string) ([]types.PaperRecord, error) {
	var papers []types.PaperRecord
	seen := make(map[string]bool)
	start := 0

	for len(papers) < c.cfg.MaxResults {
		count := c.cfg.PageSize
		if rem := c.cfg.MaxResults - len(papers); rem < count {
			count = rem
		}

		var page []types.PaperRecord
		var total int
		_, err := c.gate.Execute(ctx, func() error {
			var pageErr error
			page, total, pageErr = c.backend.Page(ctx, query, start, count, c.cfg.SortBy)
			return pageErr
		})
		if err != nil {
			return papers, fmt.Errorf("searching %s for %q (offset %d): %w", c.backend.Name(), query, start, err)
		}
		if len(page) == 0 {
			break
		}

		for _, p := range page {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			papers = append(papers, p)
			if len(papers) == c.cfg.MaxResults {
				break
			}
		}

		start += len(page)
		if total > 0 && start >= total {
			break
		}
	}
	return papers, nil
}
