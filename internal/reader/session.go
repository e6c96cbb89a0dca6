package reader

import (
	"sync"

	"github.com/moxxiRan/daily-site/internal/core"
)

// Session is the navigation state of a reader: the current category, month and query.
// Every change of selection bumps a generation number. Results computed for an older
// generation must be discarded (see Accept).
type Session struct {
	mu         sync.Mutex
	manifest   *core.Manifest
	category   string
	month      string
	query      string
	generation uint64
}

// NewSession starts on the most recent month of the category.
func NewSession(manifest *core.Manifest, category string) *Session {
	s := &Session{manifest: manifest}
	s.Select(category, "")
	return s
}

// Select changes the current category and month.
// An empty month selects the most recent month of the category.
func (s *Session) Select(category, month string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if month == "" {
		if months := s.manifest.MonthKeys(category); len(months) > 0 {
			month = months[0]
		}
	}
	s.category = category
	s.month = month
	s.generation++
	return s.generation
}

// Search changes the current query.
func (s *Session) Search(query string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = query
	s.generation++
	return s.generation
}

// Current returns the current selection.
func (s *Session) Current() (category, month, query string, generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.category, s.month, s.query, s.generation
}

// Accept returns if a result computed for the given generation is still relevant.
func (s *Session) Accept(generation uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return generation == s.generation
}

// Manifest returns the manifest browsed by the session.
func (s *Session) Manifest() *core.Manifest {
	return s.manifest
}

// MonthKeys returns the months of the current category, most recent first.
func (s *Session) MonthKeys() []string {
	category, _, _, _ := s.Current()
	return s.manifest.MonthKeys(category)
}

// Entries returns the entries of the current month matching the current query, most recent first.
func (s *Session) Entries() []core.Entry {
	category, month, query, _ := s.Current()
	return core.Filter(s.manifest.Entries(category, month), query)
}
