package markdown

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	// MaxTOCEntries caps the outline length.
	MaxTOCEntries = 12
	// AnchorPrefix namespaces heading anchors.
	AnchorPrefix = "toc-"
)

var (
	regexAnchorSeparators = regexp.MustCompile(`[\s.]+`)
	regexAnchorInvalid    = regexp.MustCompile(`[^a-z0-9\p{Han}\p{Hiragana}\p{Katakana}\p{Hangul}]+`)
)

// Heading is an outline entry.
type Heading struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Line int    `json:"line"` // 1-based
}

// Slugify converts a heading text into a URL-safe anchor (without prefix).
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = regexAnchorSeparators.ReplaceAllString(s, "-")
	s = regexAnchorInvalid.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "section"
	}
	return url.PathEscape(s)
}

// Anchors generates unique anchors in document order.
type Anchors struct {
	used map[string]bool
}

func NewAnchors() *Anchors {
	return &Anchors{used: make(map[string]bool)}
}

// Next returns the anchor for the heading text, suffixed by a number when already used.
func (a *Anchors) Next(headingText string) string {
	base := AnchorPrefix + Slugify(headingText)
	id := base
	for i := 1; a.used[id]; i++ {
		id = fmt.Sprintf("%s-%d", base, i)
	}
	a.used[id] = true
	return id
}

// BuildTOC lists the level-2 headings of a document, ignoring structural labels and code blocks.
func BuildTOC(document Document) []Heading {
	var result []Heading

	anchors := NewAnchors()
	var fence codeFence
	for i, line := range document.Lines() {
		if fence.Skip(line) {
			continue
		}
		ok, headingText, level := IsHeading(line)
		if !ok || level != 2 {
			continue
		}
		headingText = PlainText(headingText)
		if headingText == "" || IsReservedHeading(headingText) {
			continue
		}
		result = append(result, Heading{
			ID:   anchors.Next(headingText),
			Text: headingText,
			Line: i + 1,
		})
		if len(result) == MaxTOCEntries {
			break
		}
	}

	return result
}
