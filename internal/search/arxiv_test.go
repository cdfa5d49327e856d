// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-harvester/pkg/types"
)

const sampleFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:opensearch="http://a9.com/-/spec/opensearch/1.1/">
  <opensearch:totalResults>42</opensearch:totalResults>
  <entry>
    <id>http://arxiv.org/abs/2301.07041v2</id>
    <title>Test Paper Title</title>
    <summary> This is the abstract of the test paper. </summary>
    <published>2023-01-17T18:58:28Z</published>
    <updated>2023-02-01T10:00:00Z</updated>
    <author><name>Alice Smith</name></author>
    <author><name>Bob Jones</name></author>
    <link title="pdf" href="http://arxiv.org/pdf/2301.07041v2" rel="related" type="application/pdf"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2302.00001v1</id>
    <title>Second Paper</title>
    <summary>Other abstract.</summary>
    <published>2023-02-01T00:00:00Z</published>
    <updated>2023-02-01T00:00:00Z</updated>
    <author><name>Carol White</name></author>
  </entry>
</feed>`

// overrideArxivBase points the backend at a test server and returns a cleanup.
func overrideArxivBase(tsURL string) func() {
	orig := arxivAPIBase
	arxivAPIBase = tsURL
	return func() { arxivAPIBase = orig }
}

func TestArxivPage_ParsesFeed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprint(w, sampleFeedXML)
	}))
	defer ts.Close()
	defer overrideArxivBase(ts.URL)()

	b := &ArxivBackend{Client: ts.Client(), UserAgent: "test/1.0"}
	records, total, err := b.Page(context.Background(), "quantum computing", 0, 10, types.SortRelevance)
	require.NoError(t, err)

	assert.Equal(t, 42, total)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "2301.07041", first.ID)
	assert.Equal(t, "Test Paper Title", first.Title)
	assert.Equal(t, "This is the abstract of the test paper.", first.Abstract)
	assert.Equal(t, []string{"Alice Smith", "Bob Jones"}, first.Authors)
	assert.Equal(t, "http://arxiv.org/pdf/2301.07041v2", first.PDFURL)
	assert.Equal(t, 2023, first.Published.Year())

	// No pdf link on the second entry: fall back to the constructed URL.
	second := records[1]
	assert.Equal(t, "2302.00001", second.ID)
	assert.Equal(t, arxivPDFBase+"2302.00001", second.PDFURL)
}

func TestArxivPage_SendsPaginationAndSortParams(t *testing.T) {
	var gotQuery map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"search_query": r.URL.Query().Get("search_query"),
			"start":        r.URL.Query().Get("start"),
			"max_results":  r.URL.Query().Get("max_results"),
			"sortBy":       r.URL.Query().Get("sortBy"),
			"sortOrder":    r.URL.Query().Get("sortOrder"),
		}
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprint(w, sampleFeedXML)
	}))
	defer ts.Close()
	defer overrideArxivBase(ts.URL)()

	b := &ArxivBackend{Client: ts.Client(), UserAgent: "test/1.0"}
	_, _, err := b.Page(context.Background(), "  quantum   computing ", 20, 10, types.SortLastUpdated)
	require.NoError(t, err)

	assert.Equal(t, "all:quantum computing", gotQuery["search_query"])
	assert.Equal(t, "20", gotQuery["start"])
	assert.Equal(t, "10", gotQuery["max_results"])
	assert.Equal(t, "lastUpdatedDate", gotQuery["sortBy"])
	assert.Equal(t, "descending", gotQuery["sortOrder"])
}

func TestArxivPage_Non200IsError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()
	defer overrideArxivBase(ts.URL)()

	b := &ArxivBackend{Client: ts.Client(), UserAgent: "test/1.0"}
	_, _, err := b.Page(context.Background(), "anything", 0, 10, types.SortRelevance)
	assert.ErrorContains(t, err, "HTTP 503")
}

func TestExtractArxivID(t *testing.T) {
	tests := []struct {
		name  string
		idURL string
		want  string
	}{
		{"versioned", "http://arxiv.org/abs/2301.07041v1", "2301.07041"},
		{"higher version", "http://arxiv.org/abs/2301.07041v12", "2301.07041"},
		{"unversioned", "http://arxiv.org/abs/2301.07041", "2301.07041"},
		{"old style", "http://arxiv.org/abs/hep-th/9901001v1", "hep-th/9901001"},
		{"no abs segment", "http://example.com/2301.07041", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractArxivID(tt.idURL); got != tt.want {
				t.Errorf("extractArxivID(%q) = %q, want %q", tt.idURL, got, tt.want)
			}
		})
	}
}

func TestSortKeyArxivValues(t *testing.T) {
	assert.Equal(t, "relevance", types.SortRelevance.ArxivValue())
	assert.Equal(t, "lastUpdatedDate", types.SortLastUpdated.ArxivValue())
	assert.Equal(t, "submittedDate", types.SortSubmitted.ArxivValue())
}
