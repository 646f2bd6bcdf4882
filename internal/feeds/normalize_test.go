package feeds

import (
	"testing"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"

	"github.com/regsense/regsense/internal/domain"
)

func TestNormalize_FullEntry(t *testing.T) {
	src := domain.FeedSource{
		Name:         "GFSC - Sanctions",
		URL:          "https://example.gg/feed.xml",
		Category:     "Sanctions",
		Jurisdiction: "Guernsey",
	}
	item := &gofeed.Item{
		Title:       "New sanctions regime",
		Link:        "https://example.gg/news/1",
		Published:   "Mon, 02 Jan 2026 10:00:00 GMT",
		Content:     "<p>Full body</p>",
		Description: "Short summary",
	}

	alert := Normalize(item, src)

	assert.Equal(t, "New sanctions regime", alert.Title)
	assert.Equal(t, "https://example.gg/news/1", alert.Link)
	assert.Equal(t, "Guernsey", alert.Source)
	assert.Equal(t, "Sanctions", alert.FeedCategory)
	assert.Equal(t, "Mon, 02 Jan 2026 10:00:00 GMT", alert.PublishedDate)
	assert.Equal(t, "<p>Full body</p>", alert.RawContent)
}

func TestNormalize_ContentFallsBackToDescription(t *testing.T) {
	item := &gofeed.Item{
		Title:       "Notice",
		Link:        "https://example.gg/news/2",
		Description: "Summary only",
	}

	alert := Normalize(item, domain.FeedSource{Category: "General", Jurisdiction: "Guernsey"})

	assert.Equal(t, "Summary only", alert.RawContent)
}

func TestNormalize_Defaults(t *testing.T) {
	alert := Normalize(&gofeed.Item{}, domain.FeedSource{Category: "General", Jurisdiction: "Guernsey"})

	assert.Equal(t, UntitledTitle, alert.Title)
	assert.Equal(t, "", alert.Link)
	assert.Equal(t, "", alert.PublishedDate)
	assert.Equal(t, "", alert.RawContent)
	assert.False(t, alert.Analysed)
	assert.Nil(t, alert.Classification)
}

func TestNormalize_PublishedDateKeptVerbatim(t *testing.T) {
	item := &gofeed.Item{
		Title:     "Notice",
		Link:      "https://example.gg/news/3",
		Published: "sometime next week, probably",
	}

	alert := Normalize(item, domain.FeedSource{})

	assert.Equal(t, "sometime next week, probably", alert.PublishedDate)
}
