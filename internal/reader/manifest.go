package reader

import (
	"context"
	"encoding/json"

	"github.com/moxxiRan/daily-site/internal/core"
)

// Name of the manifest at the root of a published site
const ManifestPath = "manifest.json"

// SeedManifest returns the built-in manifest shown when the published one cannot be loaded.
func SeedManifest() *core.Manifest {
	return &core.Manifest{
		Site: core.Site{
			Title:       "AI / 游戏 日报",
			Description: "每天 10 分钟，跟上 AI 与游戏进展",
		},
		Categories: map[string]string{
			"ai":   "AI 日报",
			"game": "游戏日报",
		},
		Months: map[string]map[string][]core.Entry{
			"ai": {
				"2025-09": {
					{
						Date:    "2025-09-03",
						Title:   "AI 日报 · 2025-09-03",
						Summary: "模型/产品/论文要闻 10 条。",
						Tags:    []string{"AI", "Daily"},
						Content: "## 今日要闻\n1. ……\n2. ……\n\n### 简评\n- 节奏趋于周更，注意评测口径统一。",
					},
					{
						Date:    "2025-09-02",
						Title:   "AI 日报 · 2025-09-02",
						Summary: "监管与开源动态。",
						Tags:    []string{"AI"},
						Content: "## 速读\n- ……",
					},
				},
				"2025-08": {
					{
						Date:    "2025-08-31",
						Title:   "AI 日报 · 2025-08-31",
						Summary: "月末观察：推理成本与评测基线。",
						Tags:    []string{"AI"},
						Content: "…",
					},
				},
			},
			"game": {
				"2025-09": {
					{
						Date:    "2025-09-03",
						Title:   "游戏日报 · 2025-09-03",
						Summary: "新品、买量、版本更新与节点观察。",
						Tags:    []string{"Game", "Daily"},
						Content: "## 今日焦点\n- ……",
					},
				},
			},
		},
	}
}

// publishedManifest keeps track of the fields present in the published document.
type publishedManifest struct {
	Site *struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
	} `json:"site"`
	Categories map[string]string                  `json:"categories"`
	Months     map[string]map[string][]core.Entry `json:"months"`
}

// LoadManifest fetches the published manifest and merges it over the seed manifest.
// The seed manifest is returned when the manifest cannot be fetched or decoded.
// The base URL always comes from the caller.
func LoadManifest(ctx context.Context, f Fetcher, baseURL string) *core.Manifest {
	seed := SeedManifest()
	seed.Site.BaseURL = baseURL

	data, err := f.Fetch(ctx, ManifestPath)
	if err != nil {
		core.CurrentLogger().Warnf("Using the seed manifest: %v", err)
		return seed
	}
	var published publishedManifest
	if err := json.Unmarshal(data, &published); err != nil {
		core.CurrentLogger().Warnf("Using the seed manifest: invalid %s: %v", ManifestPath, err)
		return seed
	}
	return merge(seed, &published)
}

// merge overrides the seed manifest with the fields present in the published manifest.
// Categories and months are replaced as a whole.
func merge(seed *core.Manifest, published *publishedManifest) *core.Manifest {
	result := seed
	if published.Site != nil {
		if published.Site.Title != nil {
			result.Site.Title = *published.Site.Title
		}
		if published.Site.Description != nil {
			result.Site.Description = *published.Site.Description
		}
	}
	if published.Categories != nil {
		result.Categories = published.Categories
	}
	if published.Months != nil {
		result.Months = published.Months
	}
	return result
}
