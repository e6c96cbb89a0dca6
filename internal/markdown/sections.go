package markdown

import (
	"fmt"
	"strings"

	"github.com/moxxiRan/daily-site/pkg/text"
)

// Section is a card extracted from a level-2 heading.
type Section struct {
	Title   string   `json:"title"`
	Body    Document `json:"body"` // without the citation lines
	Meta    Meta     `json:"meta"`
	Insight string   `json:"insight,omitempty"`
	Bullets []string `json:"bullets,omitempty"`
}

func (s Section) String() string {
	return fmt.Sprintf("## %s", s.Title)
}

// SectionDocument is a document split into cards.
type SectionDocument struct {
	Sections []Section `json:"sections"`
	Related  []Link    `json:"related,omitempty"`
}

// SplitSections splits a document on its level-2 headings.
// The text before the first heading is dropped. A section without its own citation
// inherits the given document-level citation. The related links section is returned apart.
func SplitSections(document Document, inherited Meta) SectionDocument {
	var result SectionDocument

	type rawSection struct {
		title string
		lines []string
	}
	var raws []*rawSection
	var current *rawSection

	var fence codeFence
	for _, line := range document.Lines() {
		if fence.Skip(line) {
			if current != nil {
				current.lines = append(current.lines, line)
			}
			continue
		}
		if ok, headingText, level := IsHeading(line); ok && level == 2 {
			current = &rawSection{title: PlainText(headingText)}
			raws = append(raws, current)
			continue
		}
		if current != nil {
			current.lines = append(current.lines, line)
		}
	}

	for _, raw := range raws {
		body := Document(strings.Join(raw.lines, "\n"))
		if IsLabel(raw.title, LabelRelated) {
			result.Related = append(result.Related, body.Links()...)
			continue
		}
		result.Sections = append(result.Sections, NewSection(raw.title, body, inherited))
	}

	return result
}

// NewSection decomposes the body of a section.
func NewSection(title string, body Document, inherited Meta) Section {
	stripped, meta := ExtractMetaLoose(body, MaxSectionMetaLines)
	lines := stripped.TrimBlankLines().Lines()
	return Section{
		Title:   title,
		Body:    stripped.TrimBlankLines(),
		Meta:    meta.Inherit(inherited),
		Insight: extractInsight(lines),
		Bullets: extractBullets(lines),
	}
}

// extractInsight returns the text following the insight label, on the same line or in the next paragraph.
func extractInsight(lines []string) string {
	iterator := text.NewLineIterator(lines)
	var fence codeFence
	for iterator.HasNext() {
		line := iterator.Next()
		if fence.Skip(line.Text) {
			continue
		}
		inline, ok := cutMarker(line.Text, LabelInsight)
		if !ok {
			continue
		}
		if inline = PlainText(inline); inline != "" {
			return inline
		}

		iterator.SkipBlankLines()
		paragraph := iterator.NextWhile(func(l text.Line) bool {
			return !isInsightBoundary(l.Text)
		})
		var parts []string
		for _, p := range paragraph {
			parts = append(parts, strings.TrimLeft(strings.TrimSpace(p.Text), "> "))
		}
		return PlainText(strings.Join(parts, " "))
	}
	return ""
}

func isInsightBoundary(line string) bool {
	if text.IsBlank(line) || IsListItem(line) || isFenceDelimiter(line) {
		return true
	}
	if ok, _, _ := IsHeading(strings.TrimSpace(line)); ok {
		return true
	}
	if _, ok := cutMarker(line, LabelSummary); ok {
		return true
	}
	if _, ok := cutMarker(line, LabelInsight); ok {
		return true
	}
	_, isMeta := matchLooseMeta(line)
	return isMeta
}

// extractBullets returns the list items following the summary label,
// or every list item of the section when no label is present.
func extractBullets(lines []string) []string {
	start := 0
	var inline string
	var fence codeFence
	for i, line := range lines {
		if fence.Skip(line) {
			continue
		}
		if rest, ok := cutMarker(line, LabelSummary); ok {
			start = i + 1
			inline = PlainText(rest)
			break
		}
	}

	var bullets []string
	fence = codeFence{}
	for _, line := range lines[start:] {
		if fence.Skip(line) {
			continue
		}
		if start > 0 {
			if _, ok := cutMarker(line, LabelInsight); ok {
				break
			}
		}
		if !IsListItem(line) {
			continue
		}
		// Heading or quote sigils can follow the list marker
		item := strings.TrimLeft(TrimListMarker(line), "#> \t")
		if bullet := PlainText(item); bullet != "" {
			bullets = append(bullets, bullet)
		}
	}
	if len(bullets) == 0 && inline != "" {
		bullets = append(bullets, inline)
	}
	return bullets
}
