package markdown

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/moxxiRan/daily-site/pkg/text"
)

// Document represents a Markdown document (can be a whole file, or just a snippet)
type Document string

// Null object
var EmptyDocument = Document("")

var (
	regexListItem   = regexp.MustCompile(`^\s*(?:[-*+]|\d+\.)\s+`)
	regexBlockquote = regexp.MustCompile(`^\s*>`)
)

// Lines returns the lines present in the Markdown document
func (m Document) Lines() []string {
	return strings.Split(string(m), "\n")
}

func (m Document) IsBlank() bool {
	return text.IsBlank(string(m))
}

func (m Document) Iterator() *text.LineIterator {
	return text.NewLineIteratorFromText(string(m))
}

func (m Document) String() string {
	return string(m)
}

// ExtractLines extracts the lines between start and end (1-based, inclusive).
func (m Document) ExtractLines(start, end int) Document {
	return Document(text.ExtractLines(string(m), start, end))
}

// TrimSpace removes spaces at the start and end of a markdown document.
func (m Document) TrimSpace() Document {
	return Document(strings.TrimSpace(string(m)))
}

// TrimBlankLines removes blank lines at the beginning and end of the document but preserves
// the indentation of the first line.
func (m Document) TrimBlankLines() Document {
	lines := m.Lines()
	start, end := 0, len(lines)
	for start < end && text.IsBlank(lines[start]) {
		start++
	}
	for end > start && text.IsBlank(lines[end-1]) {
		end--
	}
	return Document(strings.TrimRightFunc(strings.Join(lines[start:end], "\n"), unicode.IsSpace))
}

/*
 * Helpers
 */

// IsHeading returns if a given line is a Markdown heading and its level.
func IsHeading(line string) (bool, string, int) {
	if !strings.HasPrefix(line, "#") {
		return false, "", 0
	}
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level > 6 || level >= len(line) || (line[level] != ' ' && line[level] != '\t') {
		return false, "", 0
	}
	return true, strings.TrimSpace(line[level:]), level
}

// IsListItem returns if a line starts a bullet or ordered list item.
func IsListItem(line string) bool {
	return regexListItem.MatchString(line)
}

// TrimListMarker removes the bullet or number starting a list item.
func TrimListMarker(line string) string {
	return regexListItem.ReplaceAllString(line, "")
}

// IsBlockquote returns if a line belongs to a blockquote.
func IsBlockquote(line string) bool {
	return regexBlockquote.MatchString(line)
}

// codeFence tracks whether successive lines are inside a fenced code block.
type codeFence struct {
	open bool
}

// Skip must be called on every line in order. It returns true for fence delimiters and fenced lines.
func (f *codeFence) Skip(line string) bool {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
		f.open = !f.open
		return true
	}
	return f.open
}
