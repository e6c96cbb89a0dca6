package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/moxxiRan/daily-site/internal/helpers"
)

// Site describes the whole daily site.
type Site struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	BaseURL     string `json:"baseUrl"`
}

// Entry is a single daily post listed in the manifest.
type Entry struct {
	Date    string   `json:"date"` // YYYY-MM-DD
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags,omitempty"`
	// Relative path to the Markdown file
	URL string `json:"url,omitempty"`
	// Inline Markdown. Takes precedence over URL.
	Content string `json:"content,omitempty"`
	Slug    string `json:"slug,omitempty"`
}

// Month returns the month bucket (YYYY-MM) of the entry.
func (e Entry) Month() string {
	if len(e.Date) < 7 {
		return e.Date
	}
	return e.Date[:7]
}

// Day returns the day of the month (DD) of the entry.
func (e Entry) Day() string {
	if len(e.Date) < 2 {
		return e.Date
	}
	return e.Date[len(e.Date)-2:]
}

func (e Entry) String() string {
	return fmt.Sprintf("entry %q (%s)", e.Title, e.Date)
}

// Manifest indexes every post by category and month.
type Manifest struct {
	Site       Site                          `json:"site"`
	Categories map[string]string             `json:"categories"`
	Months     map[string]map[string][]Entry `json:"months"`
}

// NewManifest creates an empty manifest with a bucket for each category.
func NewManifest(site Site, categories map[string]string) *Manifest {
	m := &Manifest{
		Site:       site,
		Categories: make(map[string]string),
		Months:     make(map[string]map[string][]Entry),
	}
	for key, label := range categories {
		m.Categories[key] = label
		m.Months[key] = make(map[string][]Entry)
	}
	return m
}

// ensure initializes the maps of a manifest decoded from an incomplete document.
func (m *Manifest) ensure() {
	if m.Categories == nil {
		m.Categories = make(map[string]string)
	}
	if m.Months == nil {
		m.Months = make(map[string]map[string][]Entry)
	}
	for key := range m.Categories {
		if m.Months[key] == nil {
			m.Months[key] = make(map[string][]Entry)
		}
	}
}

// Add appends an entry to its month bucket. Duplicates are kept.
func (m *Manifest) Add(category string, entry Entry) {
	m.ensure()
	if m.Months[category] == nil {
		m.Months[category] = make(map[string][]Entry)
	}
	month := entry.Month()
	m.Months[category][month] = append(m.Months[category][month], entry)
}

// Upsert replaces any entry with the same date and inserts the new entry first in its month.
func (m *Manifest) Upsert(category string, entry Entry) {
	m.ensure()
	if m.Months[category] == nil {
		m.Months[category] = make(map[string][]Entry)
	}
	month := entry.Month()
	result := []Entry{entry}
	for _, existing := range m.Months[category][month] {
		if existing.Date != entry.Date {
			result = append(result, existing)
		}
	}
	m.Months[category][month] = result
}

// Sort orders every month bucket from the most recent date to the oldest.
func (m *Manifest) Sort() {
	for _, months := range m.Months {
		for _, entries := range months {
			SortEntries(entries)
		}
	}
}

// SortEntries orders entries by descending date.
// Dates are compared as strings. Entries sharing the same date keep their relative order.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
}

// Entries returns a sorted copy of the entries of a month.
func (m *Manifest) Entries(category, month string) []Entry {
	entries := append([]Entry(nil), m.Months[category][month]...)
	SortEntries(entries)
	return entries
}

// MonthKeys returns the months of a category, most recent first.
func (m *Manifest) MonthKeys(category string) []string {
	var keys []string
	for key := range m.Months[category] {
		keys = append(keys, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys
}

// CategoryKeys returns the declared categories sorted by key.
func (m *Manifest) CategoryKeys() []string {
	var keys []string
	for key := range m.Categories {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Label returns the display label of a category, or its key when undeclared.
func (m *Manifest) Label(category string) string {
	if label, ok := m.Categories[category]; ok && label != "" {
		return label
	}
	return category
}

// Count returns the number of entries in the manifest.
func (m *Manifest) Count() int {
	count := 0
	for _, months := range m.Months {
		for _, entries := range months {
			count += len(entries)
		}
	}
	return count
}

// Find returns the entry of a category published at the given date.
func (m *Manifest) Find(category, date string) (Entry, bool) {
	for _, entry := range m.Months[category][Entry{Date: date}.Month()] {
		if entry.Date == date {
			return entry, true
		}
	}
	return Entry{}, false
}

// Marshal serializes the manifest as indented JSON.
func (m *Manifest) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	// Keep "&" and "<" readable in titles
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the manifest atomically.
func (m *Manifest) Save(path string) error {
	data, err := m.Marshal()
	if err != nil {
		return fmt.Errorf("failed to serialize manifest: %w", err)
	}
	if err := helpers.WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}
	return nil
}

// ParseManifest decodes a manifest. Missing sections are initialized empty.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	m.ensure()
	return &m, nil
}

// ReadManifest loads the manifest stored at the given path.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return m, nil
}

// ReadSite returns the site metadata declared in a manifest file, if any.
func ReadSite(path string) (Site, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Site{}, false
	}
	var doc struct {
		Site *Site `json:"site"`
	}
	if err := json.Unmarshal(data, &doc); err != nil || doc.Site == nil {
		return Site{}, false
	}
	return *doc.Site, true
}

// FallbackTitle returns the title used for a post without front matter title or heading.
// Ex: "AI 日报 - 2025年08月05日"
func FallbackTitle(prefix, date string) string {
	parts := strings.SplitN(date, "-", 3)
	if len(parts) != 3 {
		return prefix
	}
	return fmt.Sprintf("%s - %s年%s月%s日", prefix, parts[0], parts[1], parts[2])
}
