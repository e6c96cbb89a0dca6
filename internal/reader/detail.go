package reader

import (
	"context"
	"errors"

	"github.com/jinzhu/copier"
	"github.com/moxxiRan/daily-site/internal/core"
	"github.com/moxxiRan/daily-site/internal/markdown"
	pkgmarkdown "github.com/moxxiRan/daily-site/pkg/markdown"
	"github.com/moxxiRan/daily-site/pkg/text"
)

// LoadFailedPlaceholder replaces the body of a post that cannot be fetched.
const LoadFailedPlaceholder = "（加载 Markdown 失败）"

var errNoContent = errors.New("entry has no content nor url")

// Detail is everything needed to render a single post.
// It is built once when the post is opened and passed explicitly to the renderers.
type Detail struct {
	Category string
	Entry    core.Entry
	Body     markdown.Document // normalized with promoted labels, without front matter nor citation lines
	Meta     markdown.Meta
	TOC      []markdown.Heading
	Sections markdown.SectionDocument
	Err      error // set when the post cannot be fetched
}

// OpenDetail loads and processes the Markdown of a post.
// Inline content takes precedence over the URL.
// A fetch failure never fails: the body is replaced by a placeholder.
func OpenDetail(ctx context.Context, f Fetcher, category string, entry core.Entry) *Detail {
	detail := &Detail{
		Category: category,
	}
	// The entry belongs to a shared manifest
	if err := copier.CopyWithOption(&detail.Entry, &entry, copier.Option{DeepCopy: true}); err != nil {
		detail.Entry = entry
	}

	content, err := loadContent(ctx, f, entry)
	if err != nil {
		core.CurrentLogger().Warnf("Failed to load %s: %v", entry, err)
		detail.Err = err
		content = LoadFailedPlaceholder
	}

	_, body, _ := markdown.SplitFrontMatter(content)
	body = markdown.Normalize(body, markdown.NormalizeOptions{})
	stripped, meta := markdown.ExtractMeta(body)
	// Cards are split before the labels become headings
	detail.Sections = markdown.SplitSections(stripped, meta)
	detail.Body = markdown.Normalize(stripped, markdown.NormalizeOptions{PromoteLabels: true})
	detail.TOC = markdown.BuildTOC(detail.Body)
	detail.Meta = meta
	return detail
}

func loadContent(ctx context.Context, f Fetcher, entry core.Entry) (string, error) {
	if entry.Content != "" {
		return entry.Content, nil
	}
	if entry.URL == "" {
		return "", errNoContent
	}
	data, err := f.Fetch(ctx, entry.URL)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Failed returns if the post content could not be loaded.
func (d *Detail) Failed() bool {
	return d.Err != nil
}

// ReadingTime returns the estimated reading time of the post, in minutes.
func (d *Detail) ReadingTime() int {
	return ReadingTime(d.Body.String())
}

// HTML renders the body. Level-2 headings receive the ids of the outline.
func (d *Detail) HTML() string {
	return pkgmarkdown.ToHTMLWith(d.Body.String(), d.Registry())
}

// Registry returns the renderers used for the post.
func (d *Detail) Registry() *pkgmarkdown.Registry {
	return pkgmarkdown.NewRegistry().
		Register(pkgmarkdown.KindBlockquote, pkgmarkdown.ClassBlockquote("quote")).
		Register(pkgmarkdown.KindCode, pkgmarkdown.LanguageCodeBlock()).
		Register(pkgmarkdown.KindHeading2, pkgmarkdown.AnchoredHeading(d.headingIDs())).
		Register(pkgmarkdown.KindHeading3, pkgmarkdown.ClassHeading("subheading")).
		Register(pkgmarkdown.KindLink, pkgmarkdown.ExternalLink())
}

// headingIDs returns the TOC ids in document order.
// A heading only takes the next id when its text matches the outline entry
// (setext headings or headings inside quotes are absent from the outline).
func (d *Detail) headingIDs() func(headingText string) string {
	next := 0
	return func(headingText string) string {
		headingText = text.CollapseSpaces(headingText)
		if headingText == "" || markdown.IsReservedHeading(headingText) {
			return ""
		}
		if next >= len(d.TOC) || d.TOC[next].Text != headingText {
			return ""
		}
		id := d.TOC[next].ID
		next++
		return id
	}
}
