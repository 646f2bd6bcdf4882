package domain

// IngestResult summarizes one ingestion run. It is created fresh per run
// and returned to the caller, never persisted.
type IngestResult struct {
	FeedsFetched      int      `json:"feeds_fetched"`
	EntriesFound      int      `json:"entries_found"`
	NewAlerts         int      `json:"new_alerts"`
	DuplicatesSkipped int      `json:"duplicates_skipped"`
	Errors            []string `json:"errors"`
}
