package core

import (
	"strings"
)

// Match returns if the entry matches the query (case-insensitive substring
// of the title, the summary or the tags). An empty query matches everything.
func (e Entry) Match(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	haystack := strings.Join([]string{e.Title, e.Summary, strings.Join(e.Tags, " ")}, " ")
	return strings.Contains(strings.ToLower(haystack), query)
}

// Filter returns the entries matching the query, preserving their order.
func Filter(entries []Entry, query string) []Entry {
	var result []Entry
	for _, entry := range entries {
		if entry.Match(query) {
			result = append(result, entry)
		}
	}
	return result
}

// Hit is an entry found by a search across the whole manifest.
type Hit struct {
	Category string
	Month    string
	Entry    Entry
}

// Search looks for entries in every category and month.
// Hits are grouped by category, most recent first.
func (m *Manifest) Search(query string) []Hit {
	var hits []Hit
	for _, category := range m.CategoryKeys() {
		for _, month := range m.MonthKeys(category) {
			for _, entry := range Filter(m.Entries(category, month), query) {
				hits = append(hits, Hit{
					Category: category,
					Month:    month,
					Entry:    entry,
				})
			}
		}
	}
	return hits
}
