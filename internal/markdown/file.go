package markdown

import (
	"fmt"
	"os"
	"strings"
)

// File is a parsed daily post.
type File struct {
	Path        string
	Content     []byte
	FrontMatter *FrontMatterFields // nil when absent
	Body        Document
}

func (m File) String() string {
	return fmt.Sprintf("Markdown file %q", m.Path)
}

// ParseFile reads and parses a Markdown file.
func ParseFile(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseContent(path, content), nil
}

// ParseContent parses a Markdown file already read.
func ParseContent(path string, content []byte) *File {
	_, body, _ := SplitFrontMatter(string(content))
	return &File{
		Path:        path,
		Content:     content,
		FrontMatter: ParseFrontMatter(string(content)),
		Body:        body,
	}
}

// Title returns the title declared in the Front Matter, or the first level-1 heading.
func (m *File) Title() string {
	if m.FrontMatter != nil && m.FrontMatter.Title != "" {
		return m.FrontMatter.Title
	}
	return m.Body.TopHeading()
}

// Summary returns the summary declared in the Front Matter, or an excerpt of the body.
func (m *File) Summary(options ExcerptOptions) string {
	if m.FrontMatter != nil && m.FrontMatter.Summary != "" {
		return m.FrontMatter.Summary
	}
	return Excerpt(m.Body, options)
}

// Tags returns the tags declared in the Front Matter.
// The result is nil when the key is missing and empty when the list is.
func (m *File) Tags() []string {
	if m.FrontMatter == nil {
		return nil
	}
	return m.FrontMatter.Tags
}

// TopHeading returns the text of the first level-1 heading outside code blocks.
func (m Document) TopHeading() string {
	var fence codeFence
	for _, line := range m.Lines() {
		if fence.Skip(line) {
			continue
		}
		if ok, headingText, level := IsHeading(strings.TrimRight(line, " \t")); ok && level == 1 && headingText != "" {
			return headingText
		}
	}
	return ""
}
