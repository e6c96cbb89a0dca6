package core

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/moxxiRan/daily-site/internal/helpers"
	"github.com/moxxiRan/daily-site/internal/markdown"
	"github.com/moxxiRan/daily-site/pkg/clock"
	"github.com/moxxiRan/daily-site/pkg/text"
)

// Title used when a report contains no text at all
const defaultReportTitle = "日报"

// ErrEmptyReport is returned when publishing a blank report.
var ErrEmptyReport = errors.New("empty report")

// Publisher files a new daily report and registers it in the manifest.
type Publisher struct {
	config *Config
}

// Publication describes a published report.
type Publication struct {
	Category string
	Path     string
	Entry    Entry
}

func (p Publication) String() string {
	return fmt.Sprintf("%s report %q (%s)", p.Category, p.Entry.Title, p.Entry.URL)
}

func NewPublisher(config *Config) *Publisher {
	return &Publisher{
		config: config,
	}
}

// Classify determines the category of a report from the configured keywords.
// The default category is used when no keyword matches.
func (p *Publisher) Classify(content string) string {
	for _, key := range p.config.ConfigFile.CategoryKeys() {
		for _, keyword := range p.config.ConfigFile.Categories[key].Keywords {
			if keyword != "" && strings.Contains(content, keyword) {
				return key
			}
		}
	}
	return p.config.ConfigFile.Publish.DefaultCategory
}

// Publish writes the report for today in the given category (classified when empty)
// and inserts it first in the manifest, replacing any report published the same day.
func (p *Publisher) Publish(content string, category string) (*Publication, error) {
	if text.IsBlank(content) {
		return nil, ErrEmptyReport
	}
	if category == "" {
		category = p.Classify(content)
	}
	if _, ok := p.config.ConfigFile.Categories[category]; !ok {
		return nil, fmt.Errorf("unknown category %q", category)
	}

	now := clock.NowIn(p.config.Location())
	date := now.Format("2006-01-02")
	relativePath := fmt.Sprintf("%s/%s.md", category, now.Format("2006/01/02"))
	path := filepath.Join(p.config.ContentDir(), filepath.FromSlash(relativePath))

	title, summary := ExtractTitleSummary(content)
	entry := Entry{
		Date:    date,
		Title:   title,
		Summary: summary,
		Tags:    append([]string(nil), p.config.ConfigFile.Category(category).Tags...),
		URL:     relativePath,
	}
	publication := &Publication{
		Category: category,
		Path:     path,
		Entry:    entry,
	}
	if p.config.DryRun {
		CurrentLogger().Infof("Dry-run: skipping write of %s", path)
		return publication, nil
	}

	if err := helpers.WriteFileAtomic(path, []byte(content), 0644); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}
	CurrentLogger().Infof("Report written to %s", path)

	manifest := p.loadOrInitManifest()
	manifest.Upsert(category, entry)
	if err := manifest.Save(p.config.ManifestPath()); err != nil {
		return nil, err
	}
	CurrentLogger().Infof("Manifest %s updated", p.config.ManifestPath())

	return publication, nil
}

// loadOrInitManifest reads the current manifest, or starts a new one when missing or corrupted.
func (p *Publisher) loadOrInitManifest() *Manifest {
	builder := NewBuilder(p.config)
	manifest, err := ReadManifest(p.config.ManifestPath())
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			CurrentLogger().Warnf("Ignoring current manifest: %v", err)
		}
		return NewManifest(builder.Site(), p.config.ConfigFile.Labels())
	}
	for key, label := range p.config.ConfigFile.Labels() {
		if _, ok := manifest.Categories[key]; !ok {
			manifest.Categories[key] = label
		}
		if manifest.Months[key] == nil {
			manifest.Months[key] = make(map[string][]Entry)
		}
	}
	return manifest
}

// ExtractTitleSummary determines the title and summary of a raw report.
// The title is the first level-1 heading, else the first non-blank line.
func ExtractTitleSummary(content string) (string, string) {
	_, body, _ := markdown.SplitFrontMatter(content)

	title := body.TopHeading()
	if title == "" {
		for _, line := range body.Lines() {
			if !text.IsBlank(line) {
				title = strings.TrimSpace(line)
				break
			}
		}
	}
	if title == "" {
		title = defaultReportTitle
	}

	return title, markdown.Excerpt(body, markdown.PublishExcerpt)
}
