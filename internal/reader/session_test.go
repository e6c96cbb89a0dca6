package reader

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession(t *testing.T) {
	session := NewSession(SeedManifest(), "ai")

	category, month, query, generation := session.Current()
	assert.Equal(t, "ai", category)
	assert.Equal(t, "2025-09", month) // Most recent month
	assert.Empty(t, query)
	assert.Equal(t, []string{"2025-09", "2025-08"}, session.MonthKeys())

	entries := session.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "2025-09-03", entries[0].Date)

	// Search
	searchGeneration := session.Search("监管")
	assert.Greater(t, searchGeneration, generation)
	entries = session.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "2025-09-02", entries[0].Date)

	// Switch month
	session.Search("")
	session.Select("ai", "2025-08")
	entries = session.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "2025-08-31", entries[0].Date)

	// Switch category
	session.Select("game", "")
	_, month, _, _ = session.Current()
	assert.Equal(t, "2025-09", month)
	assert.Len(t, session.Entries(), 1)

	// Unknown category
	session.Select("sport", "")
	_, month, _, _ = session.Current()
	assert.Empty(t, month)
	assert.Empty(t, session.Entries())
	assert.Empty(t, session.MonthKeys())
}

func TestSessionAccept(t *testing.T) {
	session := NewSession(SeedManifest(), "ai")

	_, _, _, generation := session.Current()
	assert.True(t, session.Accept(generation))

	// A result computed before a new selection is stale
	session.Select("ai", "2025-08")
	assert.False(t, session.Accept(generation))

	// Concurrent selections
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session.Select("game", "")
		}()
	}
	wg.Wait()
	_, _, _, last := session.Current()
	assert.Equal(t, generation+11, last)
	assert.True(t, session.Accept(last))
}
