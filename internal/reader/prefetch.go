package reader

import (
	"context"

	"github.com/moxxiRan/daily-site/internal/core"
	"github.com/moxxiRan/daily-site/internal/markdown"
	"golang.org/x/sync/errgroup"
)

// Preview is the excerpt of an entry shown on its card.
type Preview struct {
	Entry   core.Entry
	Excerpt string
	Err     error
}

// Prefetch computes the excerpt of every entry concurrently.
// Entries declaring a summary are not fetched.
// A failed fetch only affects its own preview, which falls back to the summary.
func Prefetch(ctx context.Context, f Fetcher, entries []core.Entry, parallel int) []Preview {
	previews := make([]Preview, len(entries))

	var g errgroup.Group
	if parallel > 0 {
		g.SetLimit(parallel)
	}
	for i, entry := range entries {
		previews[i].Entry = entry
		if entry.Summary != "" {
			previews[i].Excerpt = entry.Summary
			continue
		}
		g.Go(func() error {
			content, err := loadContent(ctx, f, entry)
			if err != nil {
				previews[i].Err = err
				return nil
			}
			_, body, _ := markdown.SplitFrontMatter(content)
			previews[i].Excerpt = markdown.Excerpt(body, markdown.ManifestExcerpt)
			return nil
		})
	}
	// Errors are reported per preview
	_ = g.Wait()

	return previews
}
