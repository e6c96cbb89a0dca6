package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/moxxiRan/daily-site/internal/markdown"
	"github.com/moxxiRan/daily-site/pkg/console"
	godiffpatch "github.com/sourcegraph/go-diff-patch"
	"golang.org/x/sync/errgroup"
)

var (
	regexYear  = regexp.MustCompile(`^\d{4}$`)
	regexMonth = regexp.MustCompile(`^\d{2}$`)
	regexDay   = regexp.MustCompile(`^\d{2}$`)
)

// Post is a Markdown file found under <root>/<category>/<YYYY>/<MM>/<DD>.md
type Post struct {
	Category     string
	Date         string // YYYY-MM-DD, determined from the path
	Path         string
	RelativePath string // POSIX path relative to the content root
}

func (p Post) String() string {
	return fmt.Sprintf("post %s", p.RelativePath)
}

// Builder regenerates the manifest from the content root.
type Builder struct {
	config   *Config
	progress io.Writer
}

// NewBuilder creates a builder for the given site configuration.
func NewBuilder(config *Config, options ...func(*Builder)) *Builder {
	b := &Builder{
		config: config,
	}
	for _, option := range options {
		option(b)
	}
	return b
}

// WithProgress reports the processed files on the given writer.
func WithProgress(w io.Writer) func(*Builder) {
	return func(b *Builder) {
		b.progress = w
	}
}

// Scan lists the posts of every configured category.
// Unreadable directories are skipped with a warning.
func (b *Builder) Scan() []Post {
	var posts []Post
	for _, category := range b.config.ConfigFile.CategoryKeys() {
		categoryDir := filepath.Join(b.config.ContentDir(), category)
		if b.config.MustExcludeFile(category, true) {
			continue
		}
		for _, year := range b.subdirs(categoryDir, regexYear) {
			yearDir := filepath.Join(categoryDir, year)
			if b.config.MustExcludeFile(category+"/"+year, true) {
				continue
			}
			for _, month := range b.subdirs(yearDir, regexMonth) {
				monthDir := filepath.Join(yearDir, month)
				if b.config.MustExcludeFile(category+"/"+year+"/"+month, true) {
					continue
				}
				for _, filename := range b.files(monthDir) {
					relativePath := strings.Join([]string{category, year, month, filename}, "/")
					if b.config.MustExcludeFile(relativePath, false) {
						CurrentLogger().Debugf("Ignoring %s", relativePath)
						continue
					}
					day := strings.TrimSuffix(filename, filepath.Ext(filename))
					posts = append(posts, Post{
						Category:     category,
						Date:         fmt.Sprintf("%s-%s-%s", year, month, day),
						Path:         filepath.Join(monthDir, filename),
						RelativePath: relativePath,
					})
				}
			}
		}
	}
	return posts
}

// subdirs returns the directory names matching the pattern.
func (b *Builder) subdirs(dir string, pattern *regexp.Regexp) []string {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		CurrentLogger().Warnf("Unable to read directory %s: %v", dir, err)
		return nil
	}
	var result []string
	for _, entry := range entries {
		if !pattern.MatchString(entry.Name()) {
			continue
		}
		// NB: os.Stat follows symlinks
		stat, err := os.Stat(filepath.Join(dir, entry.Name()))
		if err != nil || !stat.IsDir() {
			continue
		}
		result = append(result, entry.Name())
	}
	return result
}

// files returns the Markdown files named after a day of the month.
func (b *Builder) files(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		CurrentLogger().Warnf("Unable to read directory %s: %v", dir, err)
		return nil
	}
	var result []string
	for _, entry := range entries {
		filename := entry.Name()
		if !b.config.ConfigFile.SupportExtension(filename) {
			continue
		}
		if !regexDay.MatchString(strings.TrimSuffix(filename, filepath.Ext(filename))) {
			CurrentLogger().Debugf("Ignoring %s: not named after a day", filepath.Join(dir, filename))
			continue
		}
		stat, err := os.Stat(filepath.Join(dir, filename))
		if err != nil || !stat.Mode().IsRegular() {
			continue
		}
		result = append(result, filename)
	}
	return result
}

// NewEntry determines the manifest entry of a parsed post.
func (b *Builder) NewEntry(post Post, file *markdown.File) Entry {
	category := b.config.ConfigFile.Category(post.Category)

	title := file.Title()
	if title == "" {
		title = FallbackTitle(category.TitlePrefix, post.Date)
	}

	tags := file.Tags()
	// An explicit empty list disables the default tags
	if tags == nil {
		tags = append([]string(nil), category.Tags...)
	}

	return Entry{
		Date:    post.Date,
		Title:   title,
		Summary: file.Summary(markdown.ManifestExcerpt),
		Tags:    tags,
		URL:     post.RelativePath,
	}
}

// Build scans the content root and returns the new manifest.
// Posts are parsed concurrently. Unreadable posts are skipped with a warning.
func (b *Builder) Build(ctx context.Context) (*Manifest, error) {
	posts := b.Scan()
	CurrentLogger().Infof("Found %d post(s) in %s", len(posts), b.config.ContentDir())

	var progress *console.ProgressLog
	if b.progress != nil && len(posts) > 0 {
		progress = console.NewProgressLog(len(posts), console.ToWriter(b.progress))
	}

	entries := make([]*Entry, len(posts))
	var mu sync.Mutex
	done := 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.config.ConfigFile.Content.Parallel)
	for i, post := range posts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			file, err := markdown.ParseFile(post.Path)
			if err != nil {
				CurrentLogger().Warnf("Skipping %s: %v", post.RelativePath, err)
			} else {
				entry := b.NewEntry(post, file)
				entries[i] = &entry
				CurrentLogger().Debugf("Parsed %s: %q", post.RelativePath, entry.Title)
			}

			if progress != nil {
				mu.Lock()
				done++
				progress.Log(done, post.RelativePath)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if progress != nil {
		progress.Clear("")
	}

	manifest := NewManifest(b.Site(), b.config.ConfigFile.Labels())
	for i, entry := range entries {
		if entry == nil {
			continue
		}
		manifest.Add(posts[i].Category, *entry)
	}
	manifest.Sort()
	return manifest, nil
}

// Site returns the site metadata, preferring the hand-authored manifest of the project.
func (b *Builder) Site() Site {
	if site, ok := ReadSite(b.config.SiteManifestPath()); ok {
		return site
	}
	site := b.config.ConfigFile.Site
	return Site{
		Title:       site.Title,
		Description: site.Description,
		BaseURL:     site.BaseURL,
	}
}

// Write saves the manifest in the content root.
func (b *Builder) Write(manifest *Manifest) error {
	if b.config.DryRun {
		CurrentLogger().Infof("Dry-run: skipping write of %s", b.config.ManifestPath())
		return nil
	}
	return manifest.Save(b.config.ManifestPath())
}

// Diff returns the unified diff between the current manifest and the given one.
// An empty string is returned when nothing changed.
func (b *Builder) Diff(manifest *Manifest) (string, error) {
	after, err := manifest.Marshal()
	if err != nil {
		return "", err
	}
	before, err := os.ReadFile(b.config.ManifestPath())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}
	if string(before) == string(after) {
		return "", nil
	}
	name := b.config.ConfigFile.Content.Manifest
	return godiffpatch.GeneratePatch(name, string(before), string(after)), nil
}
