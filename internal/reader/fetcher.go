package reader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotFound is returned when a resource is missing.
var ErrNotFound = errors.New("resource not found")

// Fetcher retrieves the resources of a published site (manifest, posts).
// Paths are relative to the site root and use forward slashes.
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// FSFetcher reads resources from the content root on disk.
type FSFetcher struct {
	root string
}

func NewFSFetcher(root string) *FSFetcher {
	return &FSFetcher{root: root}
}

func (f *FSFetcher) Fetch(ctx context.Context, relativePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cleaned, err := cleanPath(relativePath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(f.root, filepath.FromSlash(cleaned)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", relativePath, ErrNotFound)
	}
	return data, err
}

// HTTPFetcher downloads resources from the site base URL.
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
}

func NewHTTPFetcher(baseURL string) *HTTPFetcher {
	return &HTTPFetcher{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, resource string) ([]byte, error) {
	requestURL, err := f.resolve(resource)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}
	// Always get the latest published version
	req.Header.Set("Cache-Control", "no-store")

	res, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", requestURL, ErrNotFound)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d for %s", res.StatusCode, requestURL)
	}
	return io.ReadAll(res.Body)
}

// resolve accepts absolute URLs as-is (entries may point to another host).
func (f *HTTPFetcher) resolve(resource string) (string, error) {
	if u, err := url.Parse(resource); err == nil && u.IsAbs() {
		return resource, nil
	}
	cleaned, err := cleanPath(resource)
	if err != nil {
		return "", err
	}
	return f.baseURL + "/" + cleaned, nil
}

func cleanPath(relativePath string) (string, error) {
	cleaned := path.Clean("/" + strings.TrimPrefix(relativePath, "./"))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return "", fmt.Errorf("invalid resource path %q", relativePath)
	}
	return cleaned, nil
}
