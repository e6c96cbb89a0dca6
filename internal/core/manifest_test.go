package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManifest(t *testing.T) {
	m := NewManifest(Site{Title: "Daily"}, map[string]string{"ai": "AI 日报", "game": "游戏日报"})
	assert.Equal(t, "Daily", m.Site.Title)
	assert.Equal(t, "AI 日报", m.Label("ai"))
	assert.Equal(t, "sport", m.Label("sport"))
	assert.Equal(t, []string{"ai", "game"}, m.CategoryKeys())

	// Every category has a bucket, even when empty
	data, err := m.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"game": {}`)
}

func TestManifestAddAndSort(t *testing.T) {
	m := NewManifest(Site{}, map[string]string{"ai": "AI 日报"})
	m.Add("ai", Entry{Date: "2025-08-03", Title: "A"})
	m.Add("ai", Entry{Date: "2025-08-05", Title: "B"})
	m.Add("ai", Entry{Date: "2025-08-03", Title: "C"}) // Duplicates are kept
	m.Add("ai", Entry{Date: "2025-07-31", Title: "D"})
	m.Add("tech", Entry{Date: "2025-08-01", Title: "E"}) // Undeclared categories are accepted
	m.Sort()

	assert.Equal(t, []string{"2025-08", "2025-07"}, m.MonthKeys("ai"))
	var titles []string
	for _, entry := range m.Months["ai"]["2025-08"] {
		titles = append(titles, entry.Title)
	}
	assert.Equal(t, []string{"B", "A", "C"}, titles)
	assert.Equal(t, 5, m.Count())
	assert.Len(t, m.Entries("tech", "2025-08"), 1)
	assert.Empty(t, m.Entries("game", "2025-08"))
}

func TestManifestUpsert(t *testing.T) {
	m := NewManifest(Site{}, map[string]string{"ai": "AI 日报"})
	m.Add("ai", Entry{Date: "2025-08-04", Title: "Yesterday"})
	m.Add("ai", Entry{Date: "2025-08-05", Title: "First version"})

	m.Upsert("ai", Entry{Date: "2025-08-05", Title: "Second version"})

	entries := m.Months["ai"]["2025-08"]
	require.Len(t, entries, 2)
	assert.Equal(t, "Second version", entries[0].Title)
	assert.Equal(t, "Yesterday", entries[1].Title)

	entry, ok := m.Find("ai", "2025-08-05")
	require.True(t, ok)
	assert.Equal(t, "Second version", entry.Title)
	_, ok = m.Find("ai", "2025-08-06")
	assert.False(t, ok)
}

func TestSortEntries(t *testing.T) {
	entries := []Entry{
		{Date: "2025-08-01", Title: "A"},
		{Date: "2025-08-09", Title: "B"},
		{Date: "2025-08-01", Title: "C"},
		{Date: "", Title: "D"},
	}
	SortEntries(entries)
	var titles []string
	for _, entry := range entries {
		titles = append(titles, entry.Title)
	}
	assert.Equal(t, []string{"B", "A", "C", "D"}, titles)
}

func TestEntry(t *testing.T) {
	entry := Entry{Date: "2025-08-05"}
	assert.Equal(t, "2025-08", entry.Month())
	assert.Equal(t, "05", entry.Day())
	assert.Equal(t, "", Entry{}.Month())
}

func TestManifestMarshal(t *testing.T) {
	m := NewManifest(Site{Title: "AI & Games", Description: "<daily>"}, map[string]string{"ai": "AI 日报"})
	m.Add("ai", Entry{
		Date:  "2025-08-05",
		Title: "OpenAI 发布 GPT-5",
		Tags:  []string{"AI", "Daily"},
		URL:   "ai/2025/08/05.md",
	})

	data, err := m.Marshal()
	require.NoError(t, err)
	assertTrimEqual(t, `
{
  "site": {
    "title": "AI & Games",
    "description": "<daily>",
    "baseUrl": ""
  },
  "categories": {
    "ai": "AI 日报"
  },
  "months": {
    "ai": {
      "2025-08": [
        {
          "date": "2025-08-05",
          "title": "OpenAI 发布 GPT-5",
          "summary": "",
          "tags": [
            "AI",
            "Daily"
          ],
          "url": "ai/2025/08/05.md"
        }
      ]
    }
  }
}`, string(data))

	parsed, err := ParseManifest(data)
	require.NoError(t, err)
	assert.Equal(t, m, parsed)
}

func TestParseManifest(t *testing.T) {
	t.Run("Incomplete document", func(t *testing.T) {
		m, err := ParseManifest([]byte(`{"categories": {"ai": "AI"}}`))
		require.NoError(t, err)
		assert.NotNil(t, m.Months["ai"])
		m.Add("game", Entry{Date: "2025-08-05"})
		assert.Len(t, m.Months["game"]["2025-08"], 1)
	})

	t.Run("Invalid document", func(t *testing.T) {
		_, err := ParseManifest([]byte(`{"months": [}`))
		require.Error(t, err)
	})
}

func TestReadSite(t *testing.T) {
	dir := t.TempDir()

	_, ok := ReadSite(filepath.Join(dir, "missing.json"))
	assert.False(t, ok)

	path := filepath.Join(dir, "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"site": {"title": "Custom", "baseUrl": "/daily-site"}}`), 0644))
	site, ok := ReadSite(path)
	require.True(t, ok)
	assert.Equal(t, Site{Title: "Custom", BaseURL: "/daily-site"}, site)

	require.NoError(t, os.WriteFile(path, []byte(`{"months": {}}`), 0644))
	_, ok = ReadSite(path)
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0644))
	_, ok = ReadSite(path)
	assert.False(t, ok)
}

func TestFallbackTitle(t *testing.T) {
	assert.Equal(t, "游戏行业速递 - 2025年09月09日", FallbackTitle("游戏行业速递", "2025-09-09"))
	assert.Equal(t, "AI 日报 - 2025年08月05日", FallbackTitle("AI 日报", "2025-08-05"))
	assert.Equal(t, "AI 日报", FallbackTitle("AI 日报", "invalid"))
}

func TestManifestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "public", "manifest.json")
	m := NewManifest(Site{Title: "Daily"}, map[string]string{"ai": "AI 日报"})
	require.NoError(t, m.Save(path))

	actual, err := ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "Daily", actual.Site.Title)

	_, err = ReadManifest(filepath.Join(t.TempDir(), "manifest.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
