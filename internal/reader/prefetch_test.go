package reader

import (
	"context"
	"testing"

	"github.com/moxxiRan/daily-site/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefetch(t *testing.T) {
	fetcher := newMapFetcher(map[string]string{
		"ai/2025/08/05.md": "---\ntitle: T\n---\n# Today\n\nFirst paragraph.\n",
	})
	entries := []core.Entry{
		{Date: "2025-08-06", Summary: "Declared", URL: "ai/2025/08/06.md"},
		{Date: "2025-08-05", URL: "ai/2025/08/05.md"},
		{Date: "2025-08-04", URL: "ai/2025/08/04.md"},
		{Date: "2025-08-03", Content: "# Inline\n\nInline paragraph."},
	}

	previews := Prefetch(context.Background(), fetcher, entries, 2)
	require.Len(t, previews, 4)

	// Order is preserved
	for i, preview := range previews {
		assert.Equal(t, entries[i], preview.Entry)
	}

	assert.Equal(t, "Declared", previews[0].Excerpt)
	assert.NoError(t, previews[0].Err)
	assert.Equal(t, "First paragraph.", previews[1].Excerpt)
	assert.NoError(t, previews[1].Err)
	// Failures stay isolated
	assert.Empty(t, previews[2].Excerpt)
	assert.ErrorIs(t, previews[2].Err, ErrNotFound)
	assert.Equal(t, "Inline paragraph.", previews[3].Excerpt)

	// Declared summaries are never fetched
	assert.ElementsMatch(t, []string{"ai/2025/08/05.md", "ai/2025/08/04.md"}, fetcher.Calls())
}

func TestPrefetchEmpty(t *testing.T) {
	assert.Empty(t, Prefetch(context.Background(), failingFetcher{}, nil, 0))
}
