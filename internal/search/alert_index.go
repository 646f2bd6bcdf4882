// Package search mirrors alerts into an Elasticsearch index so the
// dashboard can do full-text lookups. Indexing is best-effort and happens
// after the relational commit; postgres stays the source of truth.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/operator"

	"github.com/regsense/regsense/internal/domain"
	"github.com/regsense/regsense/pkg/utils"
)

type Config struct {
	Addresses []string
	IndexName string
	Username  string
	Password  string
}

type alertDocument struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Link         string    `json:"link"`
	Source       string    `json:"source"`
	FeedCategory string    `json:"feed_category"`
	Summary      string    `json:"summary"`
	Category     string    `json:"category"`
	Severity     string    `json:"severity"`
	RawContent   string    `json:"raw_content"`
	CreatedAt    time.Time `json:"created_at"`
	IndexedAt    time.Time `json:"indexed_at"`
}

// Hit is one search result: the matching alert id plus display fields.
type Hit struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Link         string  `json:"link"`
	FeedCategory string  `json:"feed_category"`
	Severity     string  `json:"severity"`
	Score        float64 `json:"score"`
}

type AlertIndex struct {
	client    *elasticsearch.TypedClient
	indexName string
}

func NewAlertIndex(ctx context.Context, config Config) (*AlertIndex, error) {
	cfg := elasticsearch.Config{
		Addresses: config.Addresses,
	}
	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	client, err := elasticsearch.NewTypedClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	idx := &AlertIndex{client: client, indexName: config.IndexName}
	if err := idx.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}
	return idx, nil
}

func (x *AlertIndex) EnsureIndex(ctx context.Context) error {
	exists, err := x.client.Indices.Exists(x.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}
	if exists {
		slog.Info("Index already exists", "index", x.indexName)
		return nil
	}

	numberOfShards := "1"
	numberOfReplicas := "0"
	settings := types.IndexSettings{
		NumberOfShards:   &numberOfShards,
		NumberOfReplicas: &numberOfReplicas,
	}

	titleProp := types.NewTextProperty()
	titleProp.Fields = map[string]types.Property{
		"keyword": types.NewKeywordProperty(),
	}

	mappings := types.TypeMapping{
		Properties: map[string]types.Property{
			"id":            types.NewLongNumberProperty(),
			"title":         titleProp,
			"link":          types.NewKeywordProperty(),
			"source":        types.NewKeywordProperty(),
			"feed_category": types.NewKeywordProperty(),
			"summary":       types.NewTextProperty(),
			"category":      types.NewKeywordProperty(),
			"severity":      types.NewKeywordProperty(),
			"raw_content":   types.NewTextProperty(),
			"created_at":    types.NewDateProperty(),
			"indexed_at":    types.NewDateProperty(),
		},
	}

	created, err := x.client.Indices.Create(x.indexName).
		Settings(&settings).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	if !created.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created successfully", "index", x.indexName)
	return nil
}

// IndexAlerts writes alerts into the index, keyed by alert id so
// re-indexing is an overwrite, not a duplicate.
func (x *AlertIndex) IndexAlerts(ctx context.Context, alerts []domain.Alert) error {
	var failed int
	for _, alert := range alerts {
		doc := toDocument(alert)
		docID := strconv.FormatInt(doc.ID, 10)

		if _, err := x.client.Index(x.indexName).Id(docID).Document(doc).Do(ctx); err != nil {
			failed++
			slog.Error("Failed to index alert", "id", doc.ID, "error", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("failed to index %d out of %d alerts", failed, len(alerts))
	}
	slog.Info("Alerts indexed", "count", len(alerts), "index", x.indexName)
	return nil
}

// Search runs a multi_match over title, summary, and raw content,
// returning the best hits by relevance.
func (x *AlertIndex) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	or := operator.Or
	res, err := x.client.Search().
		Index(x.indexName).
		Query(&types.Query{
			MultiMatch: &types.MultiMatchQuery{
				Query:    query,
				Fields:   []string{"title^2.0", "summary^1.5", "raw_content"},
				Operator: &or,
			},
		}).
		Size(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("search alerts: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits.Hits))
	for _, h := range res.Hits.Hits {
		var doc alertDocument
		if err := json.Unmarshal(h.Source_, &doc); err != nil {
			return nil, fmt.Errorf("decode search hit: %w", err)
		}

		hit := Hit{
			ID:           doc.ID,
			Title:        doc.Title,
			Link:         doc.Link,
			FeedCategory: doc.FeedCategory,
			Severity:     doc.Severity,
		}
		if h.Score_ != nil {
			hit.Score = utils.RoundDecimal(float64(*h.Score_), 4)
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

func toDocument(alert domain.Alert) alertDocument {
	doc := alertDocument{
		ID:           alert.ID,
		Title:        alert.Title,
		Link:         alert.Link,
		Source:       alert.Source,
		FeedCategory: alert.FeedCategory,
		RawContent:   alert.RawContent,
		CreatedAt:    alert.CreatedAt,
		IndexedAt:    time.Now(),
	}
	if alert.Classification != nil {
		doc.Summary = alert.Classification.Summary
		doc.Category = alert.Classification.Category
		doc.Severity = alert.Classification.Severity
	}
	return doc
}
