package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManifest() *Manifest {
	m := NewManifest(Site{Title: "Daily"}, map[string]string{"ai": "AI 日报", "game": "游戏日报"})
	m.Add("ai", Entry{Date: "2025-08-05", Title: "GPT-5", Tags: []string{"AI", "LLM"}, URL: "ai/2025/08/05.md"})
	m.Add("ai", Entry{Date: "2025-08-04", Title: "Gemini", Tags: []string{"AI"}, URL: "ai/2025/08/04.md"})
	m.Add("game", Entry{Date: "2025-08-05", Title: "Switch 2", URL: "game/2025/08/05.md"})
	return m
}

func TestManifestQuery(t *testing.T) {
	m := newTestManifest()

	tests := []struct {
		name     string
		expr     string
		expected []any
	}{
		{
			name:     "site",
			expr:     ".site.title",
			expected: []any{"Daily"},
		},
		{
			name:     "titles",
			expr:     `.months.ai["2025-08"][].title`,
			expected: []any{"GPT-5", "Gemini"},
		},
		{
			name:     "filter by tag",
			expr:     `[.months[][][] | select(.tags // [] | index("LLM")) | .url]`,
			expected: []any{[]any{"ai/2025/08/05.md"}},
		},
		{
			name:     "count",
			expr:     `[.months[][][]] | length`,
			expected: []any{3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := m.Query(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}

	_, err := m.Query(".months[")
	assert.ErrorContains(t, err, "invalid query")

	_, err = m.Query(`error("boom")`)
	assert.ErrorContains(t, err, "boom")
}

func TestFormatValues(t *testing.T) {
	values := []any{"GPT-5", map[string]any{"date": "2025-08-05"}}

	actual, err := FormatValues(values, "text")
	require.NoError(t, err)
	assert.Equal(t, "GPT-5\n{\"date\":\"2025-08-05\"}\n", actual)

	actual, err = FormatValues(values, "json")
	require.NoError(t, err)
	assert.Equal(t, "\"GPT-5\"\n{\n  \"date\": \"2025-08-05\"\n}\n", actual)

	actual, err = FormatValues(values, "yaml")
	require.NoError(t, err)
	assert.Equal(t, "GPT-5\n---\ndate: \"2025-08-05\"\n", actual)

	_, err = FormatValues(values, "xml")
	assert.ErrorContains(t, err, "unsupported format")
}

func TestEvaluateTemplate(t *testing.T) {
	m := newTestManifest()
	hits := m.Search("gpt")

	actual, err := EvaluateTemplate(`{{.Category}}/{{.Month}} {{.Date}} {{.Title | slug}} [{{join ", " .Tags}}] {{json .URL}}`, hits)
	require.NoError(t, err)
	assert.Equal(t, "ai/2025-08 2025-08-05 gpt-5 [AI, LLM] \"ai/2025/08/05.md\"\n", actual)

	_, err = EvaluateTemplate(`{{.Title`, hits)
	assert.Error(t, err)
}
