package pg

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"github.com/regsense/regsense/internal/apperr"
	"github.com/regsense/regsense/internal/domain"
	"github.com/regsense/regsense/internal/storage"
	pkgtesting "github.com/regsense/regsense/pkg/testing"
)

var (
	testCtx   context.Context
	testPool  *ConnectionPool
	testStore *Store
)

func TestMain(m *testing.M) {
	if os.Getenv("SKIP_PG_TESTS") != "" {
		os.Exit(0)
	}

	testCtx = context.Background()

	pg, err := pkgtesting.NewPGContainer(testCtx, pkgtesting.PGConfig{
		Database: "regsense_test_db",
		Username: "test",
		Password: "test",
	})
	if err != nil {
		panic(err)
	}
	defer testcontainers.TerminateContainer(pg.Container)

	testPool, err = NewConnectionPool(testCtx, PoolConfig{ConnStr: pg.ConnString})
	if err != nil {
		panic(err)
	}
	defer testPool.Close()

	testStore = NewStore(testPool)

	os.Exit(m.Run())
}

func truncateAlerts(t *testing.T) {
	t.Helper()
	_, err := testPool.GetConn().Exec(testCtx, "TRUNCATE TABLE alerts RESTART IDENTITY")
	if err != nil {
		t.Fatalf("failed to truncate alerts: %v", err)
	}
}

func newAlert(title, link, feedCategory string) domain.Alert {
	return domain.Alert{
		Title:         title,
		Link:          link,
		Source:        "Guernsey",
		FeedCategory:  feedCategory,
		PublishedDate: "Mon, 02 Jan 2026 10:00:00 GMT",
		RawContent:    "body of " + title,
	}
}

func classification(category, severity string) domain.Classification {
	return domain.Classification{
		Summary:         "Summary.",
		Category:        category,
		Subcategories:   []string{"KYC"},
		Severity:        severity,
		AffectedSectors: []string{"Banking"},
		ActionItems:     []string{"Review procedures"},
		EffectiveDate:   "2026-04-01",
		KeyEntities:     []string{"GFSC"},
	}
}

func TestStore_InsertBulkAndLinks(t *testing.T) {
	truncateAlerts(t)

	inserted, err := testStore.InsertBulk(testCtx, []domain.Alert{
		newAlert("Alpha", "https://example.gg/news/1", "General"),
		newAlert("Beta", "https://example.gg/news/2", "Sanctions"),
	})
	require.NoError(t, err)
	require.Len(t, inserted, 2)

	assert.Greater(t, inserted[1].ID, inserted[0].ID)
	assert.False(t, inserted[0].CreatedAt.IsZero())

	links, err := testStore.Links(testCtx)
	require.NoError(t, err)
	assert.Len(t, links, 2)
	assert.Contains(t, links, "https://example.gg/news/1")
}

func TestStore_InsertBulk_UniqueLinkBackstop(t *testing.T) {
	truncateAlerts(t)

	_, err := testStore.InsertBulk(testCtx, []domain.Alert{
		newAlert("Alpha", "https://example.gg/news/1", "General"),
	})
	require.NoError(t, err)

	_, err = testStore.InsertBulk(testCtx, []domain.Alert{
		newAlert("Alpha again", "https://example.gg/news/1", "General"),
	})
	require.Error(t, err, "unique index on link must reject duplicate inserts")

	// The failed transaction must not leave partial rows behind.
	links, err := testStore.Links(testCtx)
	require.NoError(t, err)
	assert.Len(t, links, 1)
}

func TestStore_ListPendingAndApplyClassification(t *testing.T) {
	truncateAlerts(t)

	inserted, err := testStore.InsertBulk(testCtx, []domain.Alert{
		newAlert("Alpha", "https://example.gg/news/1", "General"),
		newAlert("Beta", "https://example.gg/news/2", "General"),
		newAlert("Gamma", "https://example.gg/news/3", "General"),
	})
	require.NoError(t, err)

	pending, err := testStore.ListPending(testCtx, 2)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, inserted[0].ID, pending[0].ID)
	assert.Equal(t, inserted[1].ID, pending[1].ID)

	require.NoError(t, testStore.ApplyClassification(testCtx, inserted[0].ID, classification("AML/CFT", "High")))

	got, err := testStore.Get(testCtx, inserted[0].ID)
	require.NoError(t, err)
	assert.True(t, got.Analysed)
	require.NotNil(t, got.Classification)
	assert.Equal(t, "AML/CFT", got.Classification.Category)
	assert.Equal(t, "High", got.Classification.Severity)
	assert.Equal(t, []string{"KYC"}, got.Classification.Subcategories)
	assert.Equal(t, []string{"Review procedures"}, got.Classification.ActionItems)

	pending, err = testStore.ListPending(testCtx, 10)
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}

func TestStore_ApplyClassification_UnknownID(t *testing.T) {
	truncateAlerts(t)

	err := testStore.ApplyClassification(testCtx, 12345, classification("Other", "Low"))

	var nf *apperr.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestStore_ListFilters(t *testing.T) {
	truncateAlerts(t)

	inserted, err := testStore.InsertBulk(testCtx, []domain.Alert{
		newAlert("Alpha", "https://example.gg/news/1", "General"),
		newAlert("Beta", "https://example.gg/news/2", "Sanctions"),
		newAlert("Gamma", "https://example.gg/news/3", "Sanctions"),
	})
	require.NoError(t, err)
	require.NoError(t, testStore.ApplyClassification(testCtx, inserted[1].ID, classification("Sanctions", "Critical")))

	feedCategory := "Sanctions"
	byFeed, err := testStore.List(testCtx, storage.ListFilter{FeedCategory: &feedCategory})
	require.NoError(t, err)
	require.Len(t, byFeed, 2)
	assert.Equal(t, inserted[1].ID, byFeed[0].ID, "ascending id order")

	analysed := true
	severity := "Critical"
	filtered, err := testStore.List(testCtx, storage.ListFilter{Analysed: &analysed, Severity: &severity})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Beta", filtered[0].Title)

	paged, err := testStore.List(testCtx, storage.ListFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, inserted[1].ID, paged[0].ID)
}

func TestStore_Stats(t *testing.T) {
	truncateAlerts(t)

	inserted, err := testStore.InsertBulk(testCtx, []domain.Alert{
		newAlert("Alpha", "https://example.gg/news/1", "General"),
		newAlert("Beta", "https://example.gg/news/2", "Sanctions"),
		newAlert("Gamma", "https://example.gg/news/3", "Sanctions"),
	})
	require.NoError(t, err)
	require.NoError(t, testStore.ApplyClassification(testCtx, inserted[0].ID, classification("AML/CFT", "High")))
	require.NoError(t, testStore.ApplyClassification(testCtx, inserted[1].ID, classification("Sanctions", "High")))

	stats, err := testStore.Stats(testCtx)
	require.NoError(t, err)

	assert.EqualValues(t, 3, stats.Total)
	assert.EqualValues(t, 2, stats.Analysed)
	assert.EqualValues(t, 1, stats.Pending)
	assert.Equal(t, stats.Total, stats.Analysed+stats.Pending)

	var feedTotal int64
	for _, g := range stats.ByFeedCategory {
		feedTotal += g.Count
	}
	assert.Equal(t, stats.Total, feedTotal)

	require.Len(t, stats.BySeverity, 1)
	assert.Equal(t, domain.GroupCount{Value: "High", Count: 2}, stats.BySeverity[0])

	// Unanalysed alerts are excluded from category grouping.
	require.Len(t, stats.ByCategory, 2)
	for _, g := range stats.ByCategory {
		assert.NotEmpty(t, g.Value)
	}
}

func TestStore_Get_NotFound(t *testing.T) {
	truncateAlerts(t)

	_, err := testStore.Get(testCtx, 999)

	var nf *apperr.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.EqualValues(t, 999, nf.ID)
}
