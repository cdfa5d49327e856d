package types

import (
	"fmt"
	"time"
)

// SortKey is the ordering criterion requested from the remote search service.
type SortKey string

const (
	SortRelevance   SortKey = "relevance"
	SortLastUpdated SortKey = "last_updated_date"
	SortSubmitted   SortKey = "submitted_date"
)

// ParseSortKey validates a user-supplied sort key string.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case SortRelevance, SortLastUpdated, SortSubmitted:
		return SortKey(s), nil
	}
	return "", fmt.Errorf("invalid sort key %q: must be one of relevance, last_updated_date, submitted_date", s)
}

// ArxivValue returns the sortBy parameter value the arXiv API expects.
func (k SortKey) ArxivValue() string {
	switch k {
	case SortLastUpdated:
		return "lastUpdatedDate"
	case SortSubmitted:
		return "submittedDate"
	default:
		return "relevance"
	}
}

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-harvester/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// PageSize is the pagination chunk size for search requests (default 100).
	PageSize int `json:"page_size" yaml:"page_size"`

	// MaxResults is the hard cap on papers returned per query (default 10).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// SortBy is the ordering requested from the remote service.
	SortBy SortKey `json:"sort_by" yaml:"sort_by"`
}

// FetchConfig holds settings for the download-and-convert stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Delay is the minimum spacing between outbound requests (default 10s).
	// It applies to every network call, not just retries.
	Delay time.Duration `json:"delay" yaml:"delay"`

	// Retries is the number of re-attempts after a failed request (default 5).
	// Zero means a single attempt.
	Retries int `json:"retries" yaml:"retries"`

	// OutputDir is the root under which pdfs/ and mds/ are created.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Markdown enables PDF-to-markdown conversion after download.
	Markdown bool `json:"markdown" yaml:"markdown"`
}
