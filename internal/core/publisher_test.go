package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	SetUpSiteFromTempDir(t)
	publisher := NewPublisher(CurrentConfig())

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"emoji", "# 🎮 今日要闻", "game"},
		{"title", "# 游戏行业速递 2025-09-09", "game"},
		{"default", "# AI 日报", "ai"},
		{"empty", "", "ai"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, publisher.Classify(tt.content))
		})
	}
}

func TestExtractTitleSummary(t *testing.T) {
	tests := []struct {
		name            string
		content         string
		expectedTitle   string
		expectedSummary string
	}{
		{
			name:            "heading",
			content:         "Intro line\n\n# AI 日报\n\n今天的重点是 **推理成本**。",
			expectedTitle:   "AI 日报",
			expectedSummary: "Intro line",
		},
		{
			name:            "first line",
			content:         "\n\n  今日无标题  \n\n正文",
			expectedTitle:   "今日无标题",
			expectedSummary: "今日无标题",
		},
		{
			name:            "heading inside code is ignored",
			content:         "```\n# not a title\n```\nReal first line",
			expectedTitle:   "```",
			expectedSummary: "Real first line",
		},
		{
			name:            "long summary",
			content:         "# Title\n\n" + strings.Repeat("字", 130),
			expectedTitle:   "Title",
			expectedSummary: strings.Repeat("字", 120) + "...",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, summary := ExtractTitleSummary(tt.content)
			assert.Equal(t, tt.expectedTitle, title)
			assert.Equal(t, tt.expectedSummary, summary)
		})
	}
}

func TestPublish(t *testing.T) {
	dir := SetUpSiteFromTempDir(t)
	// 2025-08-05 02:30 in Shanghai
	FreezeAt(t, time.Date(2025, 8, 4, 18, 30, 0, 0, time.UTC))

	publisher := NewPublisher(CurrentConfig())

	// Publish a first report
	publication, err := publisher.Publish("# 🎮 游戏行业速递\n\n第一版内容。", "")
	require.NoError(t, err)
	assert.Equal(t, "game", publication.Category)
	assert.Equal(t, filepath.Join(dir, "public", "game", "2025", "08", "05.md"), publication.Path)
	assert.Equal(t, Entry{
		Date:    "2025-08-05",
		Title:   "🎮 游戏行业速递",
		Summary: "第一版内容。",
		Tags:    []string{"Game", "Daily"},
		URL:     "game/2025/08/05.md",
	}, publication.Entry)
	assert.Equal(t, "# 🎮 游戏行业速递\n\n第一版内容。", mustReadFile(t, publication.Path))

	m, err := ReadManifest(CurrentConfig().ManifestPath())
	require.NoError(t, err)
	assert.Equal(t, "AI / 游戏 日报", m.Site.Title)
	assert.Equal(t, "游戏日报", m.Categories["game"])
	assert.NotNil(t, m.Months["ai"])
	require.Len(t, m.Months["game"]["2025-08"], 1)

	// Republish the same day
	_, err = publisher.Publish("# 🎮 游戏行业速递（修订）\n\n第二版内容。", "")
	require.NoError(t, err)

	m, err = ReadManifest(CurrentConfig().ManifestPath())
	require.NoError(t, err)
	entries := m.Months["game"]["2025-08"]
	require.Len(t, entries, 1)
	assert.Equal(t, "🎮 游戏行业速递（修订）", entries[0].Title)
	assert.Equal(t, "# 🎮 游戏行业速递（修订）\n\n第二版内容。", mustReadFile(t, publication.Path))

	// Next day, forced category
	FreezeAt(t, time.Date(2025, 8, 5, 18, 30, 0, 0, time.UTC))
	publication, err = publisher.Publish("# 🎮 Weekly", "ai")
	require.NoError(t, err)
	assert.Equal(t, "ai/2025/08/06.md", publication.Entry.URL)
	assert.Equal(t, []string{"AI", "Daily"}, publication.Entry.Tags)
}

func TestPublishInsertsFirst(t *testing.T) {
	SetUpSiteFromFiles(t, map[string]string{
		"public/manifest.json": `{
  "site": {"title": "Existing", "description": "", "baseUrl": ""},
  "categories": {"ai": "AI 日报"},
  "months": {"ai": {"2025-08": [{"date": "2025-08-04", "title": "Yesterday", "summary": ""}]}}
}`,
	})
	FreezeAt(t, time.Date(2025, 8, 5, 1, 0, 0, 0, time.UTC))

	_, err := NewPublisher(CurrentConfig()).Publish("# Today", "")
	require.NoError(t, err)

	m, err := ReadManifest(CurrentConfig().ManifestPath())
	require.NoError(t, err)
	assert.Equal(t, "Existing", m.Site.Title)
	entries := m.Months["ai"]["2025-08"]
	require.Len(t, entries, 2)
	assert.Equal(t, "Today", entries[0].Title)
	assert.Equal(t, "Yesterday", entries[1].Title)
	// Missing categories are added
	assert.Equal(t, "游戏日报", m.Categories["game"])
}

func TestPublishCorruptedManifest(t *testing.T) {
	SetUpSiteFromFiles(t, map[string]string{
		"public/manifest.json": `{"months": `,
	})
	FreezeAt(t, time.Date(2025, 8, 5, 1, 0, 0, 0, time.UTC))

	_, err := NewPublisher(CurrentConfig()).Publish("# Today", "")
	require.NoError(t, err)

	m, err := ReadManifest(CurrentConfig().ManifestPath())
	require.NoError(t, err)
	assert.Len(t, m.Months["ai"]["2025-08"], 1)
}

func TestPublishErrors(t *testing.T) {
	SetUpSiteFromTempDir(t)
	publisher := NewPublisher(CurrentConfig())

	_, err := publisher.Publish("  \n\t", "")
	assert.ErrorIs(t, err, ErrEmptyReport)

	_, err = publisher.Publish("# Sport", "sport")
	assert.ErrorContains(t, err, `unknown category "sport"`)
}

func TestPublishDryRun(t *testing.T) {
	SetUpSiteFromTempDir(t)
	FreezeAt(t, time.Date(2025, 8, 5, 1, 0, 0, 0, time.UTC))
	config := CurrentConfig()
	config.DryRun = true

	publication, err := NewPublisher(config).Publish("# Today", "")
	require.NoError(t, err)
	assert.NoFileExists(t, publication.Path)
	_, err = os.Stat(config.ManifestPath())
	assert.True(t, os.IsNotExist(err))
}
