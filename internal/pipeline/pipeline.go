// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the search → fetch → parse → filter → write flow.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/industry-papers/internal/output"
	"github.com/pdiddy/industry-papers/internal/pubmed"
	"github.com/pdiddy/industry-papers/pkg/types"
)

const defaultBatchSize = 200

// Fetcher is the remote API surface the pipeline needs; *entrez.Client
// implements it.
type Fetcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]string, error)
	Fetch(ctx context.Context, ids []string) ([]byte, error)
}

// Cache is the optional record cache; *cache.Store implements it.
type Cache interface {
	Get(pmid string) ([]byte, bool, error)
	Put(pmid string, raw []byte) error
}

// Options holds the per-run parameters.
type Options struct {
	// Query is the PubMed query string.
	Query string

	// MaxResults caps the number of search results. Zero means fetch
	// nothing and succeed.
	MaxResults int

	// BatchSize is the maximum IDs per efetch call (default 200).
	BatchSize int

	// RequestDelay is the pause between consecutive efetch batches.
	RequestDelay time.Duration
}

// Result holds the run counters.
type Result struct {
	// IDsFound is the number of PMIDs the search returned.
	IDsFound int

	// Parsed is the number of records parsed successfully.
	Parsed int

	// ParseSkipped is the number of records skipped for parse failures.
	ParseSkipped int

	// BatchesFailed is the number of efetch batches that failed after retries.
	BatchesFailed int

	// Written is the number of papers written to the sink.
	Written int

	// CacheHits is the number of records served from the local cache.
	CacheHits int
}

// Pipeline wires the stages together.
type Pipeline struct {
	Client Fetcher
	Parser *pubmed.Parser

	// Cache is consulted before fetching and updated after parsing.
	// Nil disables caching.
	Cache Cache

	Log *zap.SugaredLogger
}

// New builds a Pipeline. A nil logger is replaced with a no-op one.
func New(client Fetcher, parser *pubmed.Parser, c Cache, log *zap.SugaredLogger) *Pipeline {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Pipeline{Client: client, Parser: parser, Cache: c, Log: log}
}

// Run executes one pipeline run, writing filtered papers to sink in
// search-result order and progress messages to w. The search call failing
// is fatal; individual record and batch failures are logged and skipped,
// unless every fetch batch fails.
func (p *Pipeline) Run(ctx context.Context, opts Options, sink output.Sink, w io.Writer) (Result, error) {
	var res Result

	if opts.MaxResults < 0 {
		return res, fmt.Errorf("max results must not be negative, got %d", opts.MaxResults)
	}
	if opts.MaxResults == 0 {
		return res, sink.Flush()
	}

	ids, err := p.Client.Search(ctx, opts.Query, opts.MaxResults)
	if err != nil {
		return res, fmt.Errorf("searching PubMed: %w", err)
	}
	if len(ids) > opts.MaxResults {
		ids = ids[:opts.MaxResults]
	}
	res.IDsFound = len(ids)
	p.Log.Debugw("search complete", "query", opts.Query, "ids", len(ids))

	if len(ids) == 0 {
		return res, sink.Flush()
	}

	papers, fetchRes, err := p.collectRecords(ctx, ids, opts, w)
	res.Parsed = fetchRes.Parsed
	res.ParseSkipped = fetchRes.ParseSkipped
	res.BatchesFailed = fetchRes.BatchesFailed
	res.CacheHits = fetchRes.CacheHits
	if err != nil {
		return res, err
	}

	// Output order follows search-result order.
	for _, id := range ids {
		paper, ok := papers[id]
		if !ok || !paper.HasCompanyAuthors() {
			continue
		}
		if err := sink.Write(paper); err != nil {
			return res, fmt.Errorf("writing paper %s: %w", id, err)
		}
		res.Written++
	}

	return res, sink.Flush()
}

// fetchOutcome holds the counters accumulated while collecting records.
type fetchOutcome struct {
	Parsed        int
	ParseSkipped  int
	BatchesFailed int
	CacheHits     int
}

// collectRecords gathers one parsed Paper per PMID, serving from the cache
// where possible and fetching the rest in batches.
func (p *Pipeline) collectRecords(ctx context.Context, ids []string, opts Options, w io.Writer) (map[string]*types.Paper, fetchOutcome, error) {
	papers := make(map[string]*types.Paper, len(ids))
	var out fetchOutcome

	toFetch := make([]string, 0, len(ids))
	for _, id := range ids {
		raw, ok := p.cacheGet(id)
		if !ok {
			toFetch = append(toFetch, id)
			continue
		}
		out.CacheHits++
		paper, err := p.Parser.ParseRecord(raw)
		if err != nil {
			out.ParseSkipped++
			p.Log.Warnw("skipping cached record", "pmid", id, "error", err)
			continue
		}
		out.Parsed++
		papers[paper.PubmedID] = paper
	}
	if out.CacheHits > 0 {
		fmt.Fprintf(w, "%d record(s) served from cache\n", out.CacheHits)
	}

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	batches := 0
	for start := 0; start < len(toFetch); start += batchSize {
		end := min(start+batchSize, len(toFetch))
		batch := toFetch[start:end]

		if batches > 0 && opts.RequestDelay > 0 {
			time.Sleep(opts.RequestDelay)
		}
		batches++

		setXML, err := p.Client.Fetch(ctx, batch)
		if err != nil {
			out.BatchesFailed++
			fmt.Fprintf(w, "warning: fetch batch failed (%d record(s) skipped): %v\n", len(batch), err)
			continue
		}

		records, err := pubmed.SplitRecords(setXML)
		if err != nil {
			out.BatchesFailed++
			fmt.Fprintf(w, "warning: unreadable fetch batch (%d record(s) skipped): %v\n", len(batch), err)
			continue
		}

		for _, raw := range records {
			paper, err := p.Parser.ParseRecord(raw)
			if err != nil {
				out.ParseSkipped++
				p.Log.Warnw("skipping record", "error", err)
				continue
			}
			out.Parsed++
			papers[paper.PubmedID] = paper
			p.cachePut(paper.PubmedID, raw)
		}
	}

	if batches > 0 && out.BatchesFailed == batches {
		return nil, out, fmt.Errorf("all %d fetch batch(es) failed", batches)
	}
	return papers, out, nil
}

func (p *Pipeline) cacheGet(pmid string) ([]byte, bool) {
	if p.Cache == nil {
		return nil, false
	}
	raw, ok, err := p.Cache.Get(pmid)
	if err != nil {
		p.Log.Warnw("cache read failed", "pmid", pmid, "error", err)
		return nil, false
	}
	return raw, ok
}

func (p *Pipeline) cachePut(pmid string, raw []byte) {
	if p.Cache == nil {
		return
	}
	if err := p.Cache.Put(pmid, raw); err != nil {
		p.Log.Warnw("cache write failed", "pmid", pmid, "error", err)
	}
}
