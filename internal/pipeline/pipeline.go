// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives search, download, and conversion across queries.
// Execution is sequential: one query at a time, one paper at a time, one
// network request at a time. Failures stay local to a paper or query; the
// run as a whole never aborts because a single item failed.
package pipeline

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paper-harvester/internal/convert"
	"github.com/pdiddy/paper-harvester/internal/store"
	"github.com/pdiddy/paper-harvester/pkg/types"
)

// Status is the terminal state of one paper's trip through the pipeline.
type Status string

const (
	StatusDownloaded    Status = "downloaded"
	StatusSkipped       Status = "skipped"
	StatusFailed        Status = "failed"
	StatusConverted     Status = "converted"
	StatusConvertFailed Status = "convert_failed"
)

// Outcome records what happened to one paper. Produced once per paper.
type Outcome struct {
	Query    string
	Paper    types.PaperRecord
	Status   Status
	Attempts int
	PDFPath  string
	MDPath   string
	Err      string
}

// Searcher yields papers for a query. Satisfied by *search.Client.
type Searcher interface {
	Results(ctx context.Context, query string) ([]types.PaperRecord, error)
}

// Gate limits and retries outbound requests. Satisfied by *ratelimit.Gate.
type Gate interface {
	Execute(ctx context.Context, op func() error) (int, error)
}

// Recorder persists outcomes as they are produced. A Recorder failure is
// logged and does not affect the run.
type Recorder interface {
	Record(ctx context.Context, o Outcome) error
}

// Summary aggregates per-paper outcomes across the whole run.
type Summary struct {
	Downloaded    int
	Skipped       int
	Failed        int
	Converted     int
	ConvertFailed int
	Outcomes      []Outcome
}

// Total returns the number of papers processed.
func (s Summary) Total() int {
	return s.Downloaded + s.Skipped + s.Failed
}

func (s *Summary) tally(o Outcome) {
	s.Outcomes = append(s.Outcomes, o)
	switch o.Status {
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	case StatusDownloaded, StatusConverted, StatusConvertFailed:
		s.Downloaded++
	}
	switch o.Status {
	case StatusConverted:
		s.Converted++
	case StatusConvertFailed:
		s.ConvertFailed++
	}
}

// Pipeline sequences search → download → (optional) convert for each query.
type Pipeline struct {
	Searcher  Searcher
	Gate      Gate
	Store     *store.Store
	Client    *http.Client
	Extractor convert.TextExtractor
	Recorder  Recorder
	Markdown  bool
	UserAgent string
	Log       zerolog.Logger
}

// Run processes each query in order and returns the aggregated outcomes.
func (p *Pipeline) Run(ctx context.Context, queries []string) Summary {
	var sum Summary
	for _, query := range queries {
		p.runQuery(ctx, query, &sum)
	}
	p.Log.Info().
		Int("downloaded", sum.Downloaded).
		Int("skipped", sum.Skipped).
		Int("failed", sum.Failed).
		Int("converted", sum.Converted).
		Msg("run complete")
	return sum
}

// runQuery searches one query and processes its papers. A directory
// bootstrap failure or a search failure with no retained results is fatal to
// this query only; subsequent queries still run.
func (p *Pipeline) runQuery(ctx context.Context, query string, sum *Summary) {
	log := p.Log.With().Str("query", query).Logger()
	log.Info().Msg("searching")

	if err := p.Store.EnsureDirs(query); err != nil {
		log.Error().Err(err).Msg("directory bootstrap failed, skipping query")
		return
	}

	papers, err := p.Searcher.Results(ctx, query)
	if err != nil {
		// Already-yielded papers are retained; the result set is truncated.
		log.Error().Err(err).Int("retained", len(papers)).Msg("search failed")
	}

	var outcomes []Outcome
	for i, paper := range papers {
		log.Info().Str("paper", paper.ID).Msgf("downloading %d/%d: %s", i+1, len(papers), paper.Title)

		o := p.processPaper(ctx, query, paper)
		switch o.Status {
		case StatusSkipped:
			log.Info().Str("paper", paper.ID).Msg("skipped, PDF already exists")
		case StatusFailed:
			log.Error().Str("paper", paper.ID).Int("attempts", o.Attempts).Str("reason", o.Err).Msg("download failed")
		case StatusConvertFailed:
			log.Error().Str("paper", paper.ID).Str("reason", o.Err).Msg("conversion failed, PDF retained")
		case StatusConverted:
			log.Info().Str("paper", paper.ID).Msg("converted to markdown")
		default:
			log.Info().Str("paper", paper.ID).Msg("downloaded")
		}

		sum.tally(o)
		outcomes = append(outcomes, o)

		if p.Recorder != nil {
			if recErr := p.Recorder.Record(ctx, o); recErr != nil {
				log.Warn().Err(recErr).Str("paper", paper.ID).Msg("ledger record failed")
			}
		}
	}

	if len(outcomes) > 0 {
		if err := WriteManifest(p.Store.ManifestPath(query), query, outcomes); err != nil {
			log.Warn().Err(err).Msg("manifest write failed")
		}
	}
}

// processPaper takes one paper to a terminal state: skipped, failed,
// downloaded, converted, or convert_failed.
func (p *Pipeline) processPaper(ctx context.Context, query string, paper types.PaperRecord) Outcome {
	o := Outcome{Query: query, Paper: paper}

	paths := p.Store.Resolve(query, paper)
	o.PDFPath = paths.PDF

	// Unconditional skip: no network calls for papers already on disk.
	if store.Exists(paths.PDF) {
		o.Status = StatusSkipped
		return o
	}

	attempts, err := p.Gate.Execute(ctx, func() error {
		return download(ctx, p.Client, paper.PDFURL, paths.PDF, p.UserAgent)
	})
	o.Attempts = attempts
	if err != nil {
		o.Status = StatusFailed
		o.Err = err.Error()
		return o
	}
	o.Status = StatusDownloaded

	if !p.Markdown {
		return o
	}

	md, err := convert.ToMarkdown(p.Extractor, paths.PDF)
	if err == nil {
		err = store.WriteAtomic(paths.MD, []byte(md))
	}
	if err != nil {
		o.Status = StatusConvertFailed
		o.Err = err.Error()
		return o
	}

	o.Status = StatusConverted
	o.MDPath = paths.MD
	return o
}
