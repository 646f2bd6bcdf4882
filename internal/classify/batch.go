package classify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/regsense/regsense/internal/storage"
)

// Batch classifies pending alerts in ascending-id order. One extraction
// failure never aborts the batch; a persistence failure does.
type Batch struct {
	store   storage.AlertStore
	invoker *Invoker
}

func NewBatch(store storage.AlertStore, invoker *Invoker) *Batch {
	return &Batch{store: store, invoker: invoker}
}

// ClassifyPending selects up to limit unanalysed alerts and runs each one
// through the extraction step, committing per alert so a mid-batch failure
// leaves earlier results in place. Returns the ids updated, in order.
func (b *Batch) ClassifyPending(ctx context.Context, limit int) ([]int64, error) {
	pending, err := b.store.ListPending(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("select pending alerts: %w", err)
	}
	if len(pending) == 0 {
		slog.Info("No pending alerts to analyse")
		return []int64{}, nil
	}

	slog.Info("Analysing pending alerts", "count", len(pending))

	classified := []int64{}
	for _, alert := range pending {
		c, err := b.invoker.Classify(ctx, alert)
		if err != nil {
			// Left unanalysed; a future batch picks it up again.
			slog.Error("Failed to analyse alert", "id", alert.ID, "error", err)
			continue
		}

		if err := b.store.ApplyClassification(ctx, alert.ID, *c); err != nil {
			return classified, fmt.Errorf("commit classification for alert %d: %w", alert.ID, err)
		}

		classified = append(classified, alert.ID)
		slog.Info("Alert classified", "id", alert.ID, "category", c.Category, "severity", c.Severity)
	}

	slog.Info("Batch complete", "analysed", len(classified), "selected", len(pending))
	return classified, nil
}
