package reader

import (
	"context"
	"testing"

	"github.com/moxxiRan/daily-site/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedManifest(t *testing.T) {
	seed := SeedManifest()
	assert.Equal(t, "AI / 游戏 日报", seed.Site.Title)
	assert.Equal(t, []string{"ai", "game"}, seed.CategoryKeys())
	assert.Equal(t, []string{"2025-09", "2025-08"}, seed.MonthKeys("ai"))
	assert.Equal(t, 4, seed.Count())

	// Each call returns an independent copy
	seed.Site.Title = "Changed"
	assert.Equal(t, "AI / 游戏 日报", SeedManifest().Site.Title)
}

func TestLoadManifest(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		fetcher  Fetcher
		validate func(t *testing.T, m *core.Manifest)
	}{
		{
			name:    "Transport failure",
			fetcher: failingFetcher{},
			validate: func(t *testing.T, m *core.Manifest) {
				assert.Equal(t, "AI / 游戏 日报", m.Site.Title)
				assert.Equal(t, 4, m.Count())
			},
		},
		{
			name:    "Missing manifest",
			fetcher: newMapFetcher(nil),
			validate: func(t *testing.T, m *core.Manifest) {
				assert.Equal(t, 4, m.Count())
			},
		},
		{
			name: "Invalid manifest",
			fetcher: newMapFetcher(map[string]string{
				"manifest.json": `{"months": [`,
			}),
			validate: func(t *testing.T, m *core.Manifest) {
				assert.Equal(t, 4, m.Count())
			},
		},
		{
			name: "Site only",
			fetcher: newMapFetcher(map[string]string{
				"manifest.json": `{"site": {"title": "Remote", "baseUrl": "/ignored"}}`,
			}),
			validate: func(t *testing.T, m *core.Manifest) {
				assert.Equal(t, core.Site{
					Title:       "Remote",
					Description: "每天 10 分钟，跟上 AI 与游戏进展",
					BaseURL:     "/daily-site",
				}, m.Site)
				// Seed data is kept
				assert.Equal(t, 4, m.Count())
			},
		},
		{
			name: "Complete manifest",
			fetcher: newMapFetcher(map[string]string{
				"manifest.json": `{
  "site": {"title": "Remote", "description": ""},
  "categories": {"tech": "Tech"},
  "months": {"tech": {"2025-08": [{"date": "2025-08-05", "title": "Today", "url": "tech/2025/08/05.md"}]}}
}`,
			}),
			validate: func(t *testing.T, m *core.Manifest) {
				assert.Equal(t, "Remote", m.Site.Title)
				assert.Equal(t, "", m.Site.Description)
				// Categories and months are replaced as a whole
				assert.Equal(t, map[string]string{"tech": "Tech"}, m.Categories)
				assert.Equal(t, 1, m.Count())
				require.Len(t, m.Entries("tech", "2025-08"), 1)
				assert.Empty(t, m.Entries("ai", "2025-09"))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := LoadManifest(ctx, tt.fetcher, "/daily-site")
			assert.Equal(t, "/daily-site", m.Site.BaseURL)
			tt.validate(t, m)
		})
	}
}
