package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/moxxiRan/daily-site/internal/helpers"
	"golang.org/x/sync/errgroup"
)

// Name of the object listing the hash of every pushed file
const remoteIndexKey = ".daily-index.json"

// RemoteIndex maps the keys present on a remote to the hash of their content.
type RemoteIndex map[string]string

// PushResult summarizes the changes applied to a remote.
type PushResult struct {
	Uploaded  []string
	Deleted   []string
	Unchanged int
}

func (r PushResult) String() string {
	return fmt.Sprintf("%d uploaded, %d deleted, %d unchanged", len(r.Uploaded), len(r.Deleted), r.Unchanged)
}

// Push uploads the content root to the remote.
// Only files whose content changed since the last push are uploaded,
// and files no longer present locally are deleted.
func (c *Config) Push(ctx context.Context, remote Remote) (*PushResult, error) {
	previous, err := readRemoteIndex(ctx, remote)
	if err != nil {
		return nil, err
	}

	current, err := c.localIndex()
	if err != nil {
		return nil, err
	}

	result := &PushResult{}
	for _, key := range sortedKeys(current) {
		if previous[key] == current[key] {
			result.Unchanged++
			continue
		}
		result.Uploaded = append(result.Uploaded, key)
	}
	for _, key := range sortedKeys(previous) {
		if _, ok := current[key]; !ok {
			result.Deleted = append(result.Deleted, key)
		}
	}

	if c.DryRun {
		return result, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.ConfigFile.Content.Parallel)
	for _, key := range result.Uploaded {
		g.Go(func() error {
			data, err := os.ReadFile(filepath.Join(c.ContentDir(), filepath.FromSlash(key)))
			if err != nil {
				return err
			}
			CurrentLogger().Debugf("Uploading %s", key)
			if err := remote.PutObject(ctx, key, data); err != nil {
				return fmt.Errorf("failed to upload %s: %w", key, err)
			}
			return nil
		})
	}
	for _, key := range result.Deleted {
		g.Go(func() error {
			CurrentLogger().Debugf("Deleting %s", key)
			err := remote.DeleteObject(ctx, key)
			if err != nil && !errors.Is(err, ErrObjectNotExist) {
				return fmt.Errorf("failed to delete %s: %w", key, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Save the index last for an interrupted push to be resumed
	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := remote.PutObject(ctx, remoteIndexKey, data); err != nil {
		return nil, fmt.Errorf("failed to save remote index: %w", err)
	}
	return result, nil
}

func readRemoteIndex(ctx context.Context, remote Remote) (RemoteIndex, error) {
	data, err := remote.GetObject(ctx, remoteIndexKey)
	if errors.Is(err, ErrObjectNotExist) {
		return RemoteIndex{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read remote index: %w", err)
	}
	var index RemoteIndex
	if err := json.Unmarshal(data, &index); err != nil {
		CurrentLogger().Warnf("Ignoring corrupted remote index: %v", err)
		return RemoteIndex{}, nil
	}
	return index, nil
}

// localIndex hashes every file of the content root.
func (c *Config) localIndex() (RemoteIndex, error) {
	index := RemoteIndex{}
	root := c.ContentDir()
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		relativePath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		// Hidden files are never published
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if c.MustExcludeFile(relativePath, d.IsDir()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		hash, err := helpers.HashFromFile(path)
		if err != nil {
			return err
		}
		index[filepath.ToSlash(relativePath)] = hash
		return nil
	})
	if err != nil {
		return nil, err
	}
	return index, nil
}

func sortedKeys(index RemoteIndex) []string {
	var keys []string
	for key := range index {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
