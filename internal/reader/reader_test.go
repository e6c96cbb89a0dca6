package reader

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// mapFetcher serves resources from memory.
type mapFetcher struct {
	mu        sync.Mutex
	resources map[string]string
	calls     []string
}

func newMapFetcher(resources map[string]string) *mapFetcher {
	return &mapFetcher{resources: resources}
}

func (f *mapFetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, path)
	content, ok := f.resources[path]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return []byte(content), nil
}

func (f *mapFetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// failingFetcher simulates a network failure.
type failingFetcher struct{}

func (failingFetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	return nil, errors.New("connection refused")
}
