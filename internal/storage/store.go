package storage

import (
	"context"

	"github.com/regsense/regsense/internal/domain"
)

// ListFilter narrows an alert listing. Nil fields are not applied.
type ListFilter struct {
	FeedCategory *string
	Category     *string
	Severity     *string
	Analysed     *bool
	Limit        int
	Offset       int
}

// AlertStore is the persistence boundary for alerts. Implementations are
// expected to enforce link uniqueness with a constraint as a backstop to
// the in-memory dedup check.
type AlertStore interface {
	// Links returns every link currently stored, as the dedup seed set.
	Links(ctx context.Context) (map[string]struct{}, error)
	// InsertBulk commits new alerts in one transaction and returns them
	// with store-assigned ids, in insertion order.
	InsertBulk(ctx context.Context, alerts []domain.Alert) ([]domain.Alert, error)
	// ListPending returns up to limit unanalysed alerts, ascending id.
	ListPending(ctx context.Context, limit int) ([]domain.Alert, error)
	// ApplyClassification sets all classification fields and the analysed
	// flag on one alert in a single transaction.
	ApplyClassification(ctx context.Context, id int64, c domain.Classification) error
	// List returns matching alerts ordered by ascending id.
	List(ctx context.Context, filter ListFilter) ([]domain.Alert, error)
	// Stats aggregates alert counts for the dashboard.
	Stats(ctx context.Context) (*domain.Stats, error)
	// Get returns one alert by id or apperr.NotFoundError.
	Get(ctx context.Context, id int64) (*domain.Alert, error)
}
