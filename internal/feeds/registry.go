package feeds

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/regsense/regsense/internal/domain"
)

// GFSC feeds (source: https://www.gfsc.gg/rss-feeds). Registry order is
// processing order within an ingestion run.
var defaultSources = []domain.FeedSource{
	// Commission feeds
	{Name: "GFSC - All News", URL: "https://www.gfsc.gg/article.xml", Category: "General"},
	{Name: "GFSC - Financial Crime", URL: "https://www.gfsc.gg/article.xml?tid=55", Category: "Financial Crime"},
	{Name: "GFSC - Sanctions", URL: "https://www.gfsc.gg/article.xml?tid=56", Category: "Sanctions"},
	{Name: "GFSC - Prohibitions", URL: "https://www.gfsc.gg/article.xml?tid=63", Category: "Prohibitions"},
	// Industry sector feeds
	{Name: "GFSC - Banking", URL: "https://www.gfsc.gg/article.xml?tid=50", Category: "Banking"},
	{Name: "GFSC - Banking Consultations", URL: "https://www.gfsc.gg/article.xml?tid=50%2C51", Category: "Banking Consultations"},
	{Name: "GFSC - Fiduciary", URL: "https://www.gfsc.gg/article.xml?tid=53", Category: "Fiduciary"},
	{Name: "GFSC - Fiduciary Consultations", URL: "https://www.gfsc.gg/article.xml?tid=53%2C60", Category: "Fiduciary Consultations"},
	{Name: "GFSC - Insurance", URL: "https://www.gfsc.gg/article.xml?tid=49", Category: "Insurance"},
	{Name: "GFSC - Insurance Consultations", URL: "https://www.gfsc.gg/article.xml?tid=49%2C60", Category: "Insurance Consultations"},
	{Name: "GFSC - Investment", URL: "https://www.gfsc.gg/article.xml?tid=52", Category: "Investment"},
	{Name: "GFSC - Investment Consultations", URL: "https://www.gfsc.gg/article.xml?tid=52%2C60", Category: "Investment Consultations"},
	// Consumer feed
	{Name: "GFSC - Consumer", URL: "https://www.gfsc.gg/article.xml?tid=57", Category: "Consumer"},
}

// DefaultRegistry returns the built-in, ordered set of feed sources.
// Sources without an explicit jurisdiction get the default one.
func DefaultRegistry() []domain.FeedSource {
	sources := make([]domain.FeedSource, len(defaultSources))
	copy(sources, defaultSources)
	for i := range sources {
		if sources[i].Jurisdiction == "" {
			sources[i].Jurisdiction = domain.DefaultJurisdiction
		}
	}
	return sources
}

// LoadRegistry reads an ordered feed-source list from a YAML file,
// replacing the built-in registry. Used when FEEDS_CONFIG is set.
func LoadRegistry(path string) ([]domain.FeedSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feeds config: %w", err)
	}

	var cfg struct {
		Sources []domain.FeedSource `yaml:"sources"`
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse feeds config: %w", err)
	}
	if len(cfg.Sources) == 0 {
		return nil, fmt.Errorf("feeds config %s defines no sources", path)
	}

	for i := range cfg.Sources {
		if cfg.Sources[i].URL == "" {
			return nil, fmt.Errorf("feeds config: source %q has no url", cfg.Sources[i].Name)
		}
		if cfg.Sources[i].Jurisdiction == "" {
			cfg.Sources[i].Jurisdiction = domain.DefaultJurisdiction
		}
	}

	return cfg.Sources, nil
}
