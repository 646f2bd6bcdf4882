package router

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/regsense/regsense/internal/apperr"
	"github.com/regsense/regsense/internal/classify"
	"github.com/regsense/regsense/internal/domain"
	"github.com/regsense/regsense/internal/ingest"
	"github.com/regsense/regsense/internal/search"
	"github.com/regsense/regsense/internal/storage"
	"github.com/regsense/regsense/pkg/pagination"
)

const (
	DefaultAnalyseLimit = 10
	MaxAnalyseLimit     = 200
)

// Searcher is the full-text lookup behind GET /api/alerts/search.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]search.Hit, error)
}

type AlertsRouter struct {
	e        *echo.Echo
	store    storage.AlertStore
	ingestor *ingest.Ingestor
	batch    *classify.Batch
	searcher Searcher
}

type AlertsRouterOption func(*AlertsRouter)

// WithSearcher enables the search endpoint. Without it the endpoint
// answers 503.
func WithSearcher(s Searcher) AlertsRouterOption {
	return func(r *AlertsRouter) {
		r.searcher = s
	}
}

func NewAlertsRouter(
	e *echo.Echo,
	store storage.AlertStore,
	ingestor *ingest.Ingestor,
	batch *classify.Batch,
	opts ...AlertsRouterOption,
) *AlertsRouter {
	r := &AlertsRouter{
		e:        e,
		store:    store,
		ingestor: ingestor,
		batch:    batch,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *AlertsRouter) Bind() {
	g := r.e.Group("/api/alerts")
	g.POST("/fetch", r.fetchHandler)
	g.POST("/analyse", r.analyseHandler)
	g.GET("", r.listHandler)
	g.GET("/stats", r.statsHandler)
	g.GET("/search", r.searchHandler)
	g.GET("/:id", r.getHandler)
}

type AnalyseResponse struct {
	AnalysedCount int     `json:"analysed_count"`
	AnalysedIDs   []int64 `json:"analysed_ids"`
}

type ListAlertsResponse struct {
	Count  int            `json:"count"`
	Alerts []domain.Alert `json:"alerts"`
}

type SearchAlertsResponse struct {
	Count int          `json:"count"`
	Hits  []search.Hit `json:"hits"`
}

// fetchHandler godoc
// @Summary Ingest all configured feeds
// @Description Fetches every registered feed, deduplicates by link and stores new alerts
// @Tags alerts
// @Produce json
// @Success 200 {object} domain.IngestResult
// @Router /api/alerts/fetch [post]
func (r *AlertsRouter) fetchHandler(c echo.Context) error {
	result, err := r.ingestor.Run(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// analyseHandler godoc
// @Summary Classify pending alerts
// @Description Runs up to limit unanalysed alerts through the extraction model
// @Tags alerts
// @Produce json
// @Param limit query int false "batch size, 1 to 200" default(10)
// @Success 200 {object} AnalyseResponse
// @Failure 400 {object} map[string]string
// @Router /api/alerts/analyse [post]
func (r *AlertsRouter) analyseHandler(c echo.Context) error {
	limit := DefaultAnalyseLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return apperr.NewValidationWrap("limit must be an integer", err)
		}
		limit = parsed
	}
	if limit < 1 || limit > MaxAnalyseLimit {
		return apperr.NewValidation("limit must be between 1 and 200")
	}

	ids, err := r.batch.ClassifyPending(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, AnalyseResponse{
		AnalysedCount: len(ids),
		AnalysedIDs:   ids,
	})
}

// listHandler godoc
// @Summary List alerts
// @Description Lists alerts in ascending id order with optional filters
// @Tags alerts
// @Produce json
// @Param feed_category query string false "filter by feed category"
// @Param category query string false "filter by classified category"
// @Param severity query string false "filter by classified severity"
// @Param analysed query bool false "filter by analysed flag"
// @Param limit query int false "page size, max 200" default(50)
// @Param offset query int false "page offset" default(0)
// @Success 200 {object} ListAlertsResponse
// @Router /api/alerts [get]
func (r *AlertsRouter) listHandler(c echo.Context) error {
	var page pagination.OffsetRequest
	if err := c.Bind(&page); err != nil {
		return apperr.NewValidationWrap("invalid pagination parameters", err)
	}
	if err := page.Validate(); err != nil {
		return err
	}

	filter := storage.ListFilter{
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	if v := c.QueryParam("feed_category"); v != "" {
		filter.FeedCategory = &v
	}
	if v := c.QueryParam("category"); v != "" {
		filter.Category = &v
	}
	if v := c.QueryParam("severity"); v != "" {
		filter.Severity = &v
	}
	if v := c.QueryParam("analysed"); v != "" {
		analysed, err := strconv.ParseBool(v)
		if err != nil {
			return apperr.NewValidationWrap("analysed must be a boolean", err)
		}
		filter.Analysed = &analysed
	}

	alerts, err := r.store.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ListAlertsResponse{
		Count:  len(alerts),
		Alerts: alerts,
	})
}

// statsHandler godoc
// @Summary Alert statistics
// @Description Totals plus per-group counts for the dashboard
// @Tags alerts
// @Produce json
// @Success 200 {object} domain.Stats
// @Router /api/alerts/stats [get]
func (r *AlertsRouter) statsHandler(c echo.Context) error {
	stats, err := r.store.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// searchHandler godoc
// @Summary Full-text alert search
// @Description Searches indexed alerts by title, summary and content
// @Tags alerts
// @Produce json
// @Param q query string true "search query"
// @Param limit query int false "max hits" default(10)
// @Success 200 {object} SearchAlertsResponse
// @Failure 503 {object} map[string]string
// @Router /api/alerts/search [get]
func (r *AlertsRouter) searchHandler(c echo.Context) error {
	if r.searcher == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
	}

	query := c.QueryParam("q")
	if query == "" {
		return apperr.NewValidation("q parameter is required")
	}

	limit := DefaultAnalyseLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return apperr.NewValidation("limit must be a positive integer")
		}
		limit = parsed
	}
	if limit > pagination.MaxLimit {
		limit = pagination.MaxLimit
	}

	hits, err := r.searcher.Search(c.Request().Context(), query, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, SearchAlertsResponse{
		Count: len(hits),
		Hits:  hits,
	})
}

// getHandler godoc
// @Summary Get one alert
// @Tags alerts
// @Produce json
// @Param id path int true "alert id"
// @Success 200 {object} domain.Alert
// @Failure 404 {object} map[string]string
// @Router /api/alerts/{id} [get]
func (r *AlertsRouter) getHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperr.NewValidationWrap("id must be an integer", err)
	}

	alert, err := r.store.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, alert)
}
