package orchestrator

import (
	"context"
	"errors"
	"sync"

	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/cachestore"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/config"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/differ"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/extractor"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/fetcher"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/models"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/signature"
	"github.com/rs/zerolog"
)

// Pipeline stages recorded in RunError entries.
const (
	StageFetch   = "fetch"
	StageExtract = "extract"
	StageCache   = "cache"
)

// WarningCacheNotPersisted is appended to run metadata when the result is
// valid but the cache write failed; the next run will re-report the same
// change.
const WarningCacheNotPersisted = "cache not persisted"

// ScrapeOrchestrator drives the fetch, extract, signature, diff and cache
// pipeline for single sources and for concurrent batches. A failure in one
// source never affects another.
type ScrapeOrchestrator struct {
	fetcher *fetcher.Fetcher
	extract *extractor.Extractor
	engine  *signature.Engine
	store   cachestore.Store
	differ  *differ.ContentDiffer
	retry   RetryPolicy
	cfg     config.BatchConfig
	logger  zerolog.Logger
}

// NewScrapeOrchestrator creates a new ScrapeOrchestrator.
func NewScrapeOrchestrator(
	f *fetcher.Fetcher,
	ex *extractor.Extractor,
	engine *signature.Engine,
	store cachestore.Store,
	cd *differ.ContentDiffer,
	cfg config.BatchConfig,
	logger zerolog.Logger,
) *ScrapeOrchestrator {
	return &ScrapeOrchestrator{
		fetcher: f,
		extract: ex,
		engine:  engine,
		store:   store,
		differ:  cd,
		retry:   NewRetryPolicy(cfg, logger),
		cfg:     cfg,
		logger:  logger.With().Str("component", "ScrapeOrchestrator").Logger(),
	}
}

// RunOne executes the full pipeline for a single source. Exactly one of
// the returned result and error entry is non-nil.
func (so *ScrapeOrchestrator) RunOne(ctx context.Context, src models.Source) (*models.RunResult, *models.RunError) {
	cached, found, err := so.store.Load(src.ID)
	if err != nil {
		// A corrupt or unreadable record degrades to first-seen rather
		// than losing the source.
		so.logger.Warn().Err(err).Str("source_id", src.ID).Msg("Cache load failed, treating source as first seen")
		cached, found = nil, false
	}

	input := fetcher.FetchInput{URL: src.URL}
	if found {
		input.PreviousETag = cached.ETag
		input.PreviousLastModified = cached.LastModified
	}

	var fr *models.FetchResult
	fetchErr := so.retry.Do(ctx, func() error {
		var err error
		fr, err = so.fetcher.Fetch(ctx, input)
		return err
	})

	if errors.Is(fetchErr, fetcher.ErrNotModified) {
		if !found {
			return nil, so.runError(src, StageFetch, errors.New("server returned 304 without a cached record"))
		}
		return so.notModifiedResult(src, cached, fr), nil
	}
	if fetchErr != nil {
		return nil, so.runError(src, StageFetch, fetchErr)
	}

	content, err := so.extract.Extract(src, fr)
	if err != nil {
		return nil, so.runError(src, StageExtract, err)
	}

	sig := so.engine.Compute(src.URL, fr, content)
	state := so.engine.Classify(sig, cached, found)

	result := &models.RunResult{
		SourceID:   src.ID,
		URL:        src.URL,
		Updated:    state != signature.Unchanged,
		NewContent: content.Text,
		Meta: models.RunMeta{
			ContentType:  string(content.Kind),
			SelectorUsed: content.SelectorUsed,
			Signature:    sig,
			FetchedAt:    fr.FetchedAt,
			Warning:      content.Warning,
		},
	}

	switch state {
	case signature.FirstSeen:
		result.DiffSummary = so.differ.Summarize("", content.Text)
	case signature.Changed:
		result.OldContent = cached.Content
		result.DiffSummary = so.differ.Summarize(cached.Content, content.Text)
	default:
		result.OldContent = cached.Content
		result.DiffSummary = differ.NoChangeSummary
	}

	record := &models.CacheRecord{
		Signature:    sig,
		Content:      content.Text,
		ETag:         fr.ETag,
		LastModified: fr.LastModified,
		FetchedAt:    fr.FetchedAt,
	}
	if err := so.store.Save(src.ID, record); err != nil {
		so.logger.Error().Err(err).Str("source_id", src.ID).Msg("Cache save failed, result still reported")
		result.Meta.Warning = appendWarning(result.Meta.Warning, WarningCacheNotPersisted)
	}

	so.logger.Info().
		Str("source_id", src.ID).
		Bool("updated", result.Updated).
		Str("state", string(state)).
		Msg("Source processed")

	return result, nil
}

// notModifiedResult builds the unchanged result for a 304 answer. The
// extractor and signature engine never run; only the cached record's
// timestamp is refreshed.
func (so *ScrapeOrchestrator) notModifiedResult(src models.Source, cached *models.CacheRecord, fr *models.FetchResult) *models.RunResult {
	result := &models.RunResult{
		SourceID:    src.ID,
		URL:         src.URL,
		Updated:     false,
		DiffSummary: differ.NoChangeSummary,
		NewContent:  cached.Content,
		OldContent:  cached.Content,
		Meta: models.RunMeta{
			ContentType: string(src.EffectiveKind()),
			Signature:   cached.Signature,
			FetchedAt:   fr.FetchedAt,
		},
	}

	refreshed := *cached
	refreshed.FetchedAt = fr.FetchedAt
	if err := so.store.Save(src.ID, &refreshed); err != nil {
		so.logger.Error().Err(err).Str("source_id", src.ID).Msg("Cache refresh failed after 304")
		result.Meta.Warning = appendWarning(result.Meta.Warning, WarningCacheNotPersisted)
	}

	so.logger.Info().Str("source_id", src.ID).Msg("Source not modified (304)")
	return result
}

// RunBatch runs all sources through a bounded worker pool. Entries in the
// report preserve the input order. Cancellation stops dispatching new
// sources; already dispatched ones finish or fail on their own.
func (so *ScrapeOrchestrator) RunBatch(ctx context.Context, sources []models.Source) *models.BatchReport {
	type slot struct {
		result *models.RunResult
		runErr *models.RunError
	}
	slots := make([]slot, len(sources))

	workers := so.cfg.Concurrency
	if workers < 1 {
		workers = 1
	}
	if workers > len(sources) && len(sources) > 0 {
		workers = len(sources)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				result, runErr := so.RunOne(ctx, sources[i])
				slots[i] = slot{result: result, runErr: runErr}
			}
		}()
	}

	skipped := 0
dispatch:
	for i := range sources {
		select {
		case <-ctx.Done():
			skipped = len(sources) - i
			so.logger.Warn().Int("skipped", skipped).Msg("Batch cancelled, remaining sources skipped")
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	report := &models.BatchReport{Skipped: skipped}
	for _, s := range slots {
		switch {
		case s.result != nil:
			report.Attempted++
			if s.result.Updated {
				report.Updated++
			}
			report.Results = append(report.Results, *s.result)
		case s.runErr != nil:
			report.Attempted++
			report.Errored++
			report.Errors = append(report.Errors, *s.runErr)
		}
	}

	so.logger.Info().
		Int("attempted", report.Attempted).
		Int("updated", report.Updated).
		Int("errored", report.Errored).
		Int("skipped", report.Skipped).
		Msg("Batch complete")

	return report
}

func (so *ScrapeOrchestrator) runError(src models.Source, stage string, err error) *models.RunError {
	so.logger.Error().Err(err).Str("source_id", src.ID).Str("stage", stage).Msg("Pipeline run failed")
	return &models.RunError{
		SourceID: src.ID,
		URL:      src.URL,
		Stage:    stage,
		Message:  err.Error(),
	}
}

func appendWarning(existing, warning string) string {
	if existing == "" {
		return warning
	}
	return existing + "; " + warning
}
