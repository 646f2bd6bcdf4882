package feeds

import (
	"github.com/mmcdole/gofeed"

	"github.com/regsense/regsense/internal/domain"
)

// UntitledTitle stands in for entries that carry no title.
const UntitledTitle = "Untitled"

// Normalize maps one raw feed entry and its owning source onto the
// canonical alert shape. Pure: always yields a candidate, possibly with
// empty fields. The published date is kept verbatim; downstream code
// treats it as an opaque display string.
func Normalize(item *gofeed.Item, src domain.FeedSource) domain.Alert {
	title := item.Title
	if title == "" {
		title = UntitledTitle
	}

	raw := item.Content
	if raw == "" {
		raw = item.Description
	}

	return domain.Alert{
		Title:         title,
		Link:          item.Link,
		Source:        src.Jurisdiction,
		FeedCategory:  src.Category,
		PublishedDate: item.Published,
		RawContent:    raw,
	}
}
