package feeds

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regsense/regsense/internal/domain"
)

func TestDefaultRegistry(t *testing.T) {
	sources := DefaultRegistry()

	require.Len(t, sources, 13)
	assert.Equal(t, "GFSC - All News", sources[0].Name)
	assert.Equal(t, "GFSC - Consumer", sources[len(sources)-1].Name)

	for _, src := range sources {
		assert.NotEmpty(t, src.URL, "source %s has no url", src.Name)
		assert.Equal(t, domain.DefaultJurisdiction, src.Jurisdiction)
	}
}

func TestDefaultRegistry_ReturnsCopy(t *testing.T) {
	first := DefaultRegistry()
	first[0].Name = "mutated"

	second := DefaultRegistry()
	assert.Equal(t, "GFSC - All News", second[0].Name)
}

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	content := `
sources:
  - name: "FCA - News"
    url: "https://example.co.uk/news.xml"
    category: "General"
    jurisdiction: "UK"
  - name: "GFSC - Sanctions"
    url: "https://example.gg/sanctions.xml"
    category: "Sanctions"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	sources, err := LoadRegistry(path)
	require.NoError(t, err)
	require.Len(t, sources, 2)

	assert.Equal(t, "UK", sources[0].Jurisdiction)
	// Missing jurisdiction falls back to the default
	assert.Equal(t, domain.DefaultJurisdiction, sources[1].Jurisdiction)
}

func TestLoadRegistry_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRegistry(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("no sources", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "feeds.yaml")
		require.NoError(t, os.WriteFile(path, []byte("sources: []"), 0o644))

		_, err := LoadRegistry(path)
		assert.ErrorContains(t, err, "defines no sources")
	})

	t.Run("source without url", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "feeds.yaml")
		require.NoError(t, os.WriteFile(path, []byte("sources:\n  - name: broken\n"), 0o644))

		_, err := LoadRegistry(path)
		assert.ErrorContains(t, err, "has no url")
	})
}
