package markdown

import (
	"strings"

	"github.com/moxxiRan/daily-site/pkg/text"
)

// ExcerptOptions controls the length of an excerpt.
type ExcerptOptions struct {
	MaxLength int    // in runes
	Ellipsis  string // appended only when the excerpt was truncated
}

var (
	// ManifestExcerpt is used when building the manifest from posts without a summary.
	ManifestExcerpt = ExcerptOptions{MaxLength: 160}
	// PublishExcerpt is used when a new post is published.
	PublishExcerpt = ExcerptOptions{MaxLength: 120, Ellipsis: "..."}
)

// Excerpt returns a short plain-text summary of a Markdown body.
// The first line that is not blank, a heading, a blockquote, a list item or code is used.
// When no such line exists, the whole body is minified instead.
func Excerpt(body Document, options ExcerptOptions) string {
	if body.IsBlank() {
		return ""
	}

	content := body.MustTransform(StripCodeBlocks())

	iterator := content.Iterator()
	for iterator.SkipUntil(func(line text.Line) bool { return isParagraphLine(line.Text) }) {
		// A line made only of markup (ex: an image) is not a paragraph
		paragraph := StripInline(iterator.Next().Text)
		if paragraph != "" {
			return text.Truncate(paragraph, options.MaxLength, options.Ellipsis)
		}
	}

	var minified []string
	for _, line := range content.Lines() {
		if ok, title, _ := IsHeading(strings.TrimSpace(line)); ok {
			line = title
		}
		minified = append(minified, TrimListMarker(line))
	}
	return text.Truncate(StripInline(strings.Join(minified, " ")), options.MaxLength, options.Ellipsis)
}

func isParagraphLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if ok, _, _ := IsHeading(trimmed); ok {
		return false
	}
	if IsBlockquote(trimmed) || IsListItem(trimmed) || isThematicBreak(trimmed) {
		return false
	}
	return true
}

func isThematicBreak(line string) bool {
	compact := strings.ReplaceAll(line, " ", "")
	if len(compact) < 3 {
		return false
	}
	for _, marker := range []string{"-", "*", "_"} {
		if strings.Trim(compact, marker) == "" {
			return true
		}
	}
	return false
}
