package domain

import (
	"time"
)

// Alert is one normalized regulatory announcement. The source-provided
// fields are immutable after creation; Classification stays nil until the
// alert has been analysed (Analysed == true iff Classification != nil).
type Alert struct {
	ID int64 `json:"id"`

	// Source data (from the RSS feed)
	Title         string `json:"title"`
	Link          string `json:"link"`
	Source        string `json:"source"`
	FeedCategory  string `json:"feed_category"`
	PublishedDate string `json:"published_date"`
	RawContent    string `json:"raw_content"`

	Classification *Classification `json:"classification,omitempty"`

	Analysed  bool      `json:"analysed"`
	CreatedAt time.Time `json:"created_at"`
}

// Classification is the structured output of the extraction step, folded
// onto an Alert once it has been analysed.
type Classification struct {
	Summary         string   `json:"summary"`
	Category        string   `json:"category"`
	Subcategories   []string `json:"subcategories"`
	Severity        string   `json:"severity"`
	AffectedSectors []string `json:"affected_sectors"`
	ActionItems     []string `json:"action_items"`
	EffectiveDate   string   `json:"effective_date"`
	KeyEntities     []string `json:"key_entities"`
}
