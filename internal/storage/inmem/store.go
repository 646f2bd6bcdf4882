// Package inmem holds an in-memory AlertStore used by tests and local
// development. It mirrors the semantics of the postgres store, including
// the unique-link backstop.
package inmem

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/regsense/regsense/internal/apperr"
	"github.com/regsense/regsense/internal/domain"
	"github.com/regsense/regsense/internal/storage"
)

type Store struct {
	mu     sync.Mutex
	alerts []domain.Alert
	nextID int64
}

var _ storage.AlertStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{nextID: 1}
}

func (s *Store) Links(ctx context.Context) (map[string]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	links := make(map[string]struct{}, len(s.alerts))
	for _, a := range s.alerts {
		links[a.Link] = struct{}{}
	}
	return links, nil
}

func (s *Store) InsertBulk(ctx context.Context, alerts []domain.Alert) ([]domain.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[string]struct{}, len(s.alerts))
	for _, a := range s.alerts {
		existing[a.Link] = struct{}{}
	}

	inserted := make([]domain.Alert, 0, len(alerts))
	for _, a := range alerts {
		if _, dup := existing[a.Link]; dup {
			return nil, fmt.Errorf("insert alert %q: duplicate link %q", a.Title, a.Link)
		}
		existing[a.Link] = struct{}{}

		a.ID = s.nextID
		s.nextID++
		if a.CreatedAt.IsZero() {
			a.CreatedAt = time.Now().UTC()
		}
		s.alerts = append(s.alerts, a)
		inserted = append(inserted, a)
	}
	return inserted, nil
}

func (s *Store) ListPending(ctx context.Context, limit int) ([]domain.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pending []domain.Alert
	for _, a := range s.alerts {
		if !a.Analysed {
			pending = append(pending, a)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].ID < pending[j].ID })
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (s *Store) ApplyClassification(ctx context.Context, id int64, c domain.Classification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.alerts {
		if s.alerts[i].ID == id {
			cc := c
			s.alerts[i].Classification = &cc
			s.alerts[i].Analysed = true
			return nil
		}
	}
	return apperr.NewNotFound("alert", id)
}

func (s *Store) List(ctx context.Context, filter storage.ListFilter) ([]domain.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []domain.Alert
	for _, a := range s.alerts {
		if filter.FeedCategory != nil && a.FeedCategory != *filter.FeedCategory {
			continue
		}
		if filter.Category != nil && category(a) != *filter.Category {
			continue
		}
		if filter.Severity != nil && severity(a) != *filter.Severity {
			continue
		}
		if filter.Analysed != nil && a.Analysed != *filter.Analysed {
			continue
		}
		matched = append(matched, a)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []domain.Alert{}, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (s *Store) Stats(ctx context.Context) (*domain.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &domain.Stats{}
	byFeedCategory := map[string]int64{}
	bySeverity := map[string]int64{}
	byCategory := map[string]int64{}

	for _, a := range s.alerts {
		stats.Total++
		if a.Analysed {
			stats.Analysed++
		}
		byFeedCategory[a.FeedCategory]++
		if sev := severity(a); sev != "" {
			bySeverity[sev]++
		}
		if cat := category(a); cat != "" {
			byCategory[cat]++
		}
	}
	stats.Pending = stats.Total - stats.Analysed
	stats.ByFeedCategory = groupCounts(byFeedCategory)
	stats.BySeverity = groupCounts(bySeverity)
	stats.ByCategory = groupCounts(byCategory)
	return stats, nil
}

func (s *Store) Get(ctx context.Context, id int64) (*domain.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.alerts {
		if a.ID == id {
			found := a
			return &found, nil
		}
	}
	return nil, apperr.NewNotFound("alert", id)
}

func category(a domain.Alert) string {
	if a.Classification == nil {
		return ""
	}
	return a.Classification.Category
}

func severity(a domain.Alert) string {
	if a.Classification == nil {
		return ""
	}
	return a.Classification.Severity
}

func groupCounts(counts map[string]int64) []domain.GroupCount {
	groups := make([]domain.GroupCount, 0, len(counts))
	for value, count := range counts {
		groups = append(groups, domain.GroupCount{Value: value, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Value < groups[j].Value
	})
	return groups
}
