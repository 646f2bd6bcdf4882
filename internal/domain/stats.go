package domain

// GroupCount is one bucket of a grouped alert count.
type GroupCount struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// Stats aggregates alert counts for the dashboard. Grouped lists are
// ordered by descending count.
type Stats struct {
	Total          int64        `json:"total"`
	Analysed       int64        `json:"analysed"`
	Pending        int64        `json:"pending"`
	ByFeedCategory []GroupCount `json:"by_feed_category"`
	BySeverity     []GroupCount `json:"by_severity"`
	ByCategory     []GroupCount `json:"by_category"`
}
