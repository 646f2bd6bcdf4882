package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/regsense/regsense/internal/domain"
	"github.com/regsense/regsense/internal/feeds"
	"github.com/regsense/regsense/internal/storage"
)

// Indexer mirrors new alerts into a search index after the commit.
// Indexing is best-effort; failures are logged, never surfaced.
type Indexer interface {
	IndexAlerts(ctx context.Context, alerts []domain.Alert) error
}

// Ingestor drives one ingestion run: registry order, fetch, normalize,
// dedup, then a single bulk commit of everything admitted.
type Ingestor struct {
	fetcher feeds.Fetcher
	store   storage.AlertStore
	sources []domain.FeedSource
	indexer Indexer
}

type Option func(*Ingestor)

func WithIndexer(idx Indexer) Option {
	return func(in *Ingestor) {
		in.indexer = idx
	}
}

func New(fetcher feeds.Fetcher, store storage.AlertStore, sources []domain.FeedSource, opts ...Option) *Ingestor {
	in := &Ingestor{
		fetcher: fetcher,
		store:   store,
		sources: sources,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Run ingests every configured source. Per-source failures are recorded in
// the result and never abort the run; only a failed final commit does.
func (in *Ingestor) Run(ctx context.Context) (*domain.IngestResult, error) {
	return in.RunSources(ctx, in.sources)
}

// RunSources is Run with an explicit source list override.
func (in *Ingestor) RunSources(ctx context.Context, sources []domain.FeedSource) (*domain.IngestResult, error) {
	runID := uuid.New()
	log := slog.With("run_id", runID)

	result := &domain.IngestResult{Errors: []string{}}

	existing, err := in.store.Links(ctx)
	if err != nil {
		return nil, fmt.Errorf("load existing links: %w", err)
	}
	deduper := NewDeduper(existing)

	var staged []domain.Alert
	for _, src := range sources {
		log.Info("Fetching feed", "source", src.Name, "url", src.URL)

		fetched, err := in.fetcher.Fetch(ctx, src)
		if err != nil {
			msg := fmt.Sprintf("Failed to fetch %s: %v", src.Name, err)
			log.Error("Feed fetch failed", "source", src.Name, "error", err)
			result.Errors = append(result.Errors, msg)
			continue
		}

		if len(fetched.Entries) == 0 && fetched.Diagnostic != nil {
			msg := fmt.Sprintf("Feed error for %s: %v", src.Name, fetched.Diagnostic)
			log.Warn("Feed yielded no entries", "source", src.Name, "error", fetched.Diagnostic)
			result.Errors = append(result.Errors, msg)
			continue
		}

		if fetched.Diagnostic != nil {
			// Malformed document that still yielded entries: process what we got.
			log.Warn("Feed partially parsed", "source", src.Name, "error", fetched.Diagnostic)
		}

		result.FeedsFetched++

		for _, entry := range fetched.Entries {
			result.EntriesFound++

			candidate := feeds.Normalize(entry, src)
			if !deduper.Admit(candidate.Link) {
				result.DuplicatesSkipped++
				continue
			}

			staged = append(staged, candidate)
			result.NewAlerts++
		}
	}

	inserted := []domain.Alert{}
	if len(staged) > 0 {
		inserted, err = in.store.InsertBulk(ctx, staged)
		if err != nil {
			return nil, fmt.Errorf("commit new alerts: %w", err)
		}
	}

	if in.indexer != nil && len(inserted) > 0 {
		if err := in.indexer.IndexAlerts(ctx, inserted); err != nil {
			log.Error("Search indexing failed", "error", err, "count", len(inserted))
		}
	}

	log.Info("Ingestion complete",
		"new_alerts", result.NewAlerts,
		"duplicates_skipped", result.DuplicatesSkipped,
		"errors", len(result.Errors),
	)
	return result, nil
}
