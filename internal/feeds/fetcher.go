package feeds

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/regsense/regsense/internal/domain"
)

const defaultFetchTimeout = 30 * time.Second

// FetchResult carries the entries a feed yielded plus an optional parse
// diagnostic. Diagnostic being set with entries present means the document
// was malformed but still usable; callers decide how far to degrade.
type FetchResult struct {
	Entries    []*gofeed.Item
	Diagnostic error
}

// Fetcher retrieves and parses one syndication feed. Each source is
// attempted exactly once per call, no internal retry.
type Fetcher interface {
	Fetch(ctx context.Context, src domain.FeedSource) (*FetchResult, error)
}

// HTTPFetcher fetches feeds over HTTP(S) and parses them with gofeed.
type HTTPFetcher struct {
	client *http.Client
	parser *gofeed.Parser
}

func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: defaultFetchTimeout},
		parser: gofeed.NewParser(),
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, src domain.FeedSource) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request for %s: %w", src.Name, err)
	}
	req.Header.Set("User-Agent", "regsense/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", src.Name, resp.Status)
	}

	feed, parseErr := f.parser.Parse(resp.Body)
	if feed == nil {
		return &FetchResult{Diagnostic: parseErr}, nil
	}

	return &FetchResult{Entries: feed.Items, Diagnostic: parseErr}, nil
}
