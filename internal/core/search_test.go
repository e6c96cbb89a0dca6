package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryMatch(t *testing.T) {
	entry := Entry{
		Title:   "OpenAI 发布 GPT-5",
		Summary: "推理能力大幅提升",
		Tags:    []string{"AI", "Daily"},
	}

	tests := []struct {
		name     string
		query    string
		expected bool
	}{
		{"empty query", "", true},
		{"blank query", "   ", true},
		{"title", "gpt-5", true},
		{"summary", "推理", true},
		{"tag", "daily", true},
		{"case-insensitive", "OPENAI", true},
		{"missing", "gemini", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, entry.Match(tt.query))
		})
	}
}

func TestFilter(t *testing.T) {
	entries := []Entry{
		{Date: "2025-08-05", Title: "GPT-5"},
		{Date: "2025-08-04", Title: "Gemini"},
		{Date: "2025-08-03", Title: "GPT-4.5"},
	}
	actual := Filter(entries, "gpt")
	require.Len(t, actual, 2)
	assert.Equal(t, "2025-08-05", actual[0].Date)
	assert.Equal(t, "2025-08-03", actual[1].Date)

	assert.Len(t, Filter(entries, ""), 3)
	assert.Empty(t, Filter(entries, "claude"))
}

func TestManifestSearch(t *testing.T) {
	m := NewManifest(Site{}, map[string]string{"ai": "AI 日报", "game": "游戏日报"})
	m.Add("ai", Entry{Date: "2025-07-30", Title: "Weekly AI recap", Tags: []string{"Weekly"}})
	m.Add("ai", Entry{Date: "2025-08-02", Title: "Daily", Tags: []string{"Weekly"}})
	m.Add("game", Entry{Date: "2025-08-01", Title: "Weekly game recap"})
	m.Add("game", Entry{Date: "2025-08-02", Title: "Other"})

	hits := m.Search("weekly")
	require.Len(t, hits, 3)
	assert.Equal(t, Hit{Category: "ai", Month: "2025-08", Entry: m.Months["ai"]["2025-08"][0]}, hits[0])
	assert.Equal(t, "2025-07-30", hits[1].Entry.Date)
	assert.Equal(t, "game", hits[2].Category)
}
