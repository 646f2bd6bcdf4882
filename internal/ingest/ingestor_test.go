package ingest_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regsense/regsense/internal/domain"
	"github.com/regsense/regsense/internal/feeds"
	"github.com/regsense/regsense/internal/ingest"
	"github.com/regsense/regsense/internal/storage"
	"github.com/regsense/regsense/internal/storage/inmem"
)

type fakeFetcher struct {
	results map[string]*feeds.FetchResult
	errs    map[string]error
}

func (f *fakeFetcher) Fetch(ctx context.Context, src domain.FeedSource) (*feeds.FetchResult, error) {
	if err, ok := f.errs[src.URL]; ok {
		return nil, err
	}
	if res, ok := f.results[src.URL]; ok {
		return res, nil
	}
	return &feeds.FetchResult{}, nil
}

func entry(title, link string) *gofeed.Item {
	return &gofeed.Item{
		Title:       title,
		Link:        link,
		Published:   "Mon, 02 Jan 2026 10:00:00 GMT",
		Description: "body of " + title,
	}
}

func source(name, url string) domain.FeedSource {
	return domain.FeedSource{Name: name, URL: url, Category: "General", Jurisdiction: "Guernsey"}
}

func TestIngestor_Run_CreatesAlerts(t *testing.T) {
	store := inmem.NewStore()
	fetcher := &fakeFetcher{results: map[string]*feeds.FetchResult{
		"https://a.gg/feed": {Entries: []*gofeed.Item{
			entry("Alpha", "https://a.gg/news/1"),
			entry("Beta", "https://a.gg/news/2"),
		}},
	}}

	result, err := ingest.New(fetcher, store, []domain.FeedSource{source("A", "https://a.gg/feed")}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.FeedsFetched)
	assert.Equal(t, 2, result.EntriesFound)
	assert.Equal(t, 2, result.NewAlerts)
	assert.Equal(t, 0, result.DuplicatesSkipped)
	assert.Empty(t, result.Errors)

	stored, err := store.List(context.Background(), storage.ListFilter{})
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "Alpha", stored[0].Title)
	assert.Equal(t, "Guernsey", stored[0].Source)
	assert.False(t, stored[0].Analysed)
}

func TestIngestor_Run_Idempotent(t *testing.T) {
	store := inmem.NewStore()
	fetcher := &fakeFetcher{results: map[string]*feeds.FetchResult{
		"https://a.gg/feed": {Entries: []*gofeed.Item{
			entry("Alpha", "https://a.gg/news/1"),
			entry("Beta", "https://a.gg/news/2"),
		}},
	}}
	sources := []domain.FeedSource{source("A", "https://a.gg/feed")}

	ing := ingest.New(fetcher, store, sources)

	first, err := ing.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, first.NewAlerts)

	second, err := ing.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, second.NewAlerts)
	assert.Equal(t, second.EntriesFound, second.DuplicatesSkipped)

	stored, err := store.List(context.Background(), storage.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestIngestor_Run_CrossSourceDedup(t *testing.T) {
	store := inmem.NewStore()
	shared := "https://a.gg/news/shared"
	fetcher := &fakeFetcher{results: map[string]*feeds.FetchResult{
		"https://a.gg/feed": {Entries: []*gofeed.Item{entry("From A", shared)}},
		"https://b.gg/feed": {Entries: []*gofeed.Item{entry("From B", shared)}},
	}}
	sources := []domain.FeedSource{
		source("A", "https://a.gg/feed"),
		source("B", "https://b.gg/feed"),
	}

	result, err := ingest.New(fetcher, store, sources).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.NewAlerts)
	assert.Equal(t, 1, result.DuplicatesSkipped)

	stored, err := store.List(context.Background(), storage.ListFilter{})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	// Registry order wins: the first source's entry is the one stored.
	assert.Equal(t, "From A", stored[0].Title)
}

func TestIngestor_Run_EmptyLinkSkipped(t *testing.T) {
	store := inmem.NewStore()
	fetcher := &fakeFetcher{results: map[string]*feeds.FetchResult{
		"https://a.gg/feed": {Entries: []*gofeed.Item{
			entry("No link", ""),
			entry("Linked", "https://a.gg/news/1"),
		}},
	}}

	result, err := ingest.New(fetcher, store, []domain.FeedSource{source("A", "https://a.gg/feed")}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.NewAlerts)
	assert.Equal(t, 1, result.DuplicatesSkipped)
}

func TestIngestor_Run_FetchFailureContinues(t *testing.T) {
	store := inmem.NewStore()
	fetcher := &fakeFetcher{
		errs: map[string]error{
			"https://down.gg/feed": errors.New("connection refused"),
		},
		results: map[string]*feeds.FetchResult{
			"https://up.gg/feed": {Entries: []*gofeed.Item{entry("Works", "https://up.gg/news/1")}},
		},
	}
	sources := []domain.FeedSource{
		source("Down", "https://down.gg/feed"),
		source("Up", "https://up.gg/feed"),
	}

	result, err := ingest.New(fetcher, store, sources).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.FeedsFetched)
	assert.Equal(t, 1, result.NewAlerts)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Down")
	assert.Contains(t, result.Errors[0], "connection refused")
}

func TestIngestor_Run_MalformedFeedWithZeroEntries(t *testing.T) {
	store := inmem.NewStore()
	fetcher := &fakeFetcher{results: map[string]*feeds.FetchResult{
		"https://bad.gg/feed": {Diagnostic: errors.New("unexpected EOF")},
	}}

	result, err := ingest.New(fetcher, store, []domain.FeedSource{source("Bad", "https://bad.gg/feed")}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, result.FeedsFetched)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Feed error for Bad")
}

func TestIngestor_Run_MalformedFeedWithEntriesStillProcessed(t *testing.T) {
	store := inmem.NewStore()
	fetcher := &fakeFetcher{results: map[string]*feeds.FetchResult{
		"https://partial.gg/feed": {
			Entries:    []*gofeed.Item{entry("Survivor", "https://partial.gg/news/1")},
			Diagnostic: errors.New("malformed trailing tag"),
		},
	}}

	result, err := ingest.New(fetcher, store, []domain.FeedSource{source("Partial", "https://partial.gg/feed")}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.FeedsFetched)
	assert.Equal(t, 1, result.NewAlerts)
	assert.Empty(t, result.Errors)
}

type failingCommitStore struct {
	storage.AlertStore
}

func (s *failingCommitStore) InsertBulk(ctx context.Context, alerts []domain.Alert) ([]domain.Alert, error) {
	return nil, fmt.Errorf("store unreachable")
}

func TestIngestor_Run_CommitFailureIsFatal(t *testing.T) {
	store := &failingCommitStore{AlertStore: inmem.NewStore()}
	fetcher := &fakeFetcher{results: map[string]*feeds.FetchResult{
		"https://a.gg/feed": {Entries: []*gofeed.Item{entry("Alpha", "https://a.gg/news/1")}},
	}}

	_, err := ingest.New(fetcher, store, []domain.FeedSource{source("A", "https://a.gg/feed")}).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commit new alerts")
}

type recordingIndexer struct {
	indexed []domain.Alert
	err     error
}

func (r *recordingIndexer) IndexAlerts(ctx context.Context, alerts []domain.Alert) error {
	r.indexed = append(r.indexed, alerts...)
	return r.err
}

func TestIngestor_Run_IndexesNewAlerts(t *testing.T) {
	store := inmem.NewStore()
	idx := &recordingIndexer{}
	fetcher := &fakeFetcher{results: map[string]*feeds.FetchResult{
		"https://a.gg/feed": {Entries: []*gofeed.Item{entry("Alpha", "https://a.gg/news/1")}},
	}}

	_, err := ingest.New(fetcher, store, []domain.FeedSource{source("A", "https://a.gg/feed")}, ingest.WithIndexer(idx)).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, idx.indexed, 1)
	assert.NotZero(t, idx.indexed[0].ID, "indexed alerts carry store-assigned ids")
}

func TestIngestor_Run_IndexerFailureDoesNotFailRun(t *testing.T) {
	store := inmem.NewStore()
	idx := &recordingIndexer{err: errors.New("es down")}
	fetcher := &fakeFetcher{results: map[string]*feeds.FetchResult{
		"https://a.gg/feed": {Entries: []*gofeed.Item{entry("Alpha", "https://a.gg/news/1")}},
	}}

	result, err := ingest.New(fetcher, store, []domain.FeedSource{source("A", "https://a.gg/feed")}, ingest.WithIndexer(idx)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.NewAlerts)
}
