package domain

// DefaultJurisdiction applies to every currently configured feed source.
const DefaultJurisdiction = "Guernsey"

// FeedSource is one configured syndication endpoint. The full set of
// sources is fixed at configuration time; there is no runtime mutation.
type FeedSource struct {
	Name         string `json:"name" yaml:"name"`
	URL          string `json:"url" yaml:"url"`
	Category     string `json:"category" yaml:"category"`
	Jurisdiction string `json:"jurisdiction" yaml:"jurisdiction"`
}
