package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/regsense/regsense/internal/apperr"
	"github.com/regsense/regsense/internal/domain"
	"github.com/regsense/regsense/internal/storage"
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const alertColumns = `id, title, link, source, feed_category, published_date, raw_content,
	summary, category, subcategories, severity, affected_sectors, action_items,
	effective_date, key_entities, analysed, created_at`

// Store is the postgres AlertStore. The unique index on link backs up the
// in-memory dedup check during ingestion.
type Store struct {
	db *pgxpool.Pool
}

var _ storage.AlertStore = (*Store)(nil)

func NewStore(pool *ConnectionPool) *Store {
	return &Store{db: pool.conn}
}

func (s *Store) Links(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.Query(ctx, `SELECT link FROM alerts`)
	if err != nil {
		return nil, fmt.Errorf("query links: %w", err)
	}
	defer rows.Close()

	links := map[string]struct{}{}
	for rows.Next() {
		var link string
		if err := rows.Scan(&link); err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		links[link] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate links: %w", err)
	}
	return links, nil
}

func (s *Store) InsertBulk(ctx context.Context, alerts []domain.Alert) ([]domain.Alert, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback(ctx)

	inserted := make([]domain.Alert, 0, len(alerts))
	for _, a := range alerts {
		row := tx.QueryRow(ctx, `
			INSERT INTO alerts (title, link, source, feed_category, published_date, raw_content)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at`,
			a.Title, a.Link, a.Source, a.FeedCategory, a.PublishedDate, a.RawContent,
		)
		if err := row.Scan(&a.ID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("insert alert %q: %w", a.Link, err)
		}
		inserted = append(inserted, a)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit insert: %w", err)
	}
	return inserted, nil
}

func (s *Store) ListPending(ctx context.Context, limit int) ([]domain.Alert, error) {
	rows, err := s.db.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM alerts WHERE analysed = false ORDER BY id ASC LIMIT $1`, alertColumns),
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query pending alerts: %w", err)
	}
	defer rows.Close()
	return scanAlerts(rows)
}

func (s *Store) ApplyClassification(ctx context.Context, id int64, c domain.Classification) error {
	subcategories, err := marshalList(c.Subcategories)
	if err != nil {
		return err
	}
	sectors, err := marshalList(c.AffectedSectors)
	if err != nil {
		return err
	}
	actions, err := marshalList(c.ActionItems)
	if err != nil {
		return err
	}
	entities, err := marshalList(c.KeyEntities)
	if err != nil {
		return err
	}

	tag, err := s.db.Exec(ctx, `
		UPDATE alerts
		SET summary = $2, category = $3, subcategories = $4, severity = $5,
			affected_sectors = $6, action_items = $7, effective_date = $8,
			key_entities = $9, analysed = true
		WHERE id = $1`,
		id, c.Summary, c.Category, subcategories, c.Severity, sectors, actions, c.EffectiveDate, entities,
	)
	if err != nil {
		return fmt.Errorf("update alert %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NewNotFound("alert", id)
	}
	return nil
}

func (s *Store) List(ctx context.Context, filter storage.ListFilter) ([]domain.Alert, error) {
	q := qb.Select(alertColumns).From("alerts").OrderBy("id ASC")

	if filter.FeedCategory != nil {
		q = q.Where(sq.Eq{"feed_category": *filter.FeedCategory})
	}
	if filter.Category != nil {
		q = q.Where(sq.Eq{"category": *filter.Category})
	}
	if filter.Severity != nil {
		q = q.Where(sq.Eq{"severity": *filter.Severity})
	}
	if filter.Analysed != nil {
		q = q.Where(sq.Eq{"analysed": *filter.Analysed})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query alerts: %w", err)
	}
	defer rows.Close()
	return scanAlerts(rows)
}

func (s *Store) Stats(ctx context.Context) (*domain.Stats, error) {
	stats := &domain.Stats{}

	row := s.db.QueryRow(ctx, `
		SELECT count(*), count(*) FILTER (WHERE analysed) FROM alerts`)
	if err := row.Scan(&stats.Total, &stats.Analysed); err != nil {
		return nil, fmt.Errorf("count alerts: %w", err)
	}
	stats.Pending = stats.Total - stats.Analysed

	var err error
	stats.ByFeedCategory, err = s.groupCounts(ctx, "feed_category", false)
	if err != nil {
		return nil, err
	}
	stats.BySeverity, err = s.groupCounts(ctx, "severity", true)
	if err != nil {
		return nil, err
	}
	stats.ByCategory, err = s.groupCounts(ctx, "category", true)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// groupCounts aggregates alert counts by one column, descending count.
// skipEmpty leaves out rows where the column is still unset (unanalysed).
func (s *Store) groupCounts(ctx context.Context, column string, skipEmpty bool) ([]domain.GroupCount, error) {
	q := qb.Select(column, "count(*) AS cnt").
		From("alerts").
		GroupBy(column).
		OrderBy("cnt DESC", column+" ASC")
	if skipEmpty {
		q = q.Where(sq.NotEq{column: ""})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s stats query: %w", column, err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s stats: %w", column, err)
	}
	defer rows.Close()

	groups := []domain.GroupCount{}
	for rows.Next() {
		var g domain.GroupCount
		if err := rows.Scan(&g.Value, &g.Count); err != nil {
			return nil, fmt.Errorf("scan %s stats: %w", column, err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s stats: %w", column, err)
	}
	return groups, nil
}

func (s *Store) Get(ctx context.Context, id int64) (*domain.Alert, error) {
	row := s.db.QueryRow(ctx, fmt.Sprintf(`SELECT %s FROM alerts WHERE id = $1`, alertColumns), id)

	alert, err := scanAlert(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NewNotFound("alert", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get alert %d: %w", id, err)
	}
	return &alert, nil
}

func scanAlerts(rows pgx.Rows) ([]domain.Alert, error) {
	alerts := []domain.Alert{}
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alerts: %w", err)
	}
	return alerts, nil
}

func scanAlert(row pgx.Row) (domain.Alert, error) {
	var (
		a        domain.Alert
		c        domain.Classification
		rawLists [4][]byte
	)

	err := row.Scan(
		&a.ID, &a.Title, &a.Link, &a.Source, &a.FeedCategory, &a.PublishedDate, &a.RawContent,
		&c.Summary, &c.Category, &rawLists[0], &c.Severity, &rawLists[1], &rawLists[2],
		&c.EffectiveDate, &rawLists[3], &a.Analysed, &a.CreatedAt,
	)
	if err != nil {
		return domain.Alert{}, err
	}

	if a.Analysed {
		targets := []*[]string{&c.Subcategories, &c.AffectedSectors, &c.ActionItems, &c.KeyEntities}
		for i, raw := range rawLists {
			if err := json.Unmarshal(raw, targets[i]); err != nil {
				return domain.Alert{}, fmt.Errorf("decode list field of alert %d: %w", a.ID, err)
			}
		}
		a.Classification = &c
	}
	return a, nil
}

func marshalList(items []string) ([]byte, error) {
	if items == nil {
		items = []string{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal list field: %w", err)
	}
	return raw, nil
}
