package markdown_test

import (
	"strings"
	"testing"

	"github.com/moxxiRan/daily-site/internal/markdown"
	"github.com/stretchr/testify/assert"
)

func TestExcerpt(t *testing.T) {
	long := strings.Repeat("字", 200)

	tests := []struct {
		name     string
		body     markdown.Document
		options  markdown.ExcerptOptions
		expected string
	}{
		{
			name:     "Empty",
			body:     "",
			options:  markdown.ManifestExcerpt,
			expected: "",
		},
		{
			name:     "Heading and blockquote skipped",
			body:     "# Title\n\n> quote\n\nReal paragraph text.",
			options:  markdown.ManifestExcerpt,
			expected: "Real paragraph text.",
		},
		{
			name:     "Inline syntax stripped",
			body:     "- item\n\nThe **new** model from [OpenAI](https://openai.com) uses `tools`.",
			options:  markdown.ManifestExcerpt,
			expected: "The new model from OpenAI uses tools.",
		},
		{
			name:     "Code blocks skipped",
			body:     "```go\nfmt.Println()\n```\n\nAfter the code.",
			options:  markdown.ManifestExcerpt,
			expected: "After the code.",
		},
		{
			name:     "Image only line skipped",
			body:     "![cover](cover.png)\n\nCaption text.",
			options:  markdown.ManifestExcerpt,
			expected: "Caption text.",
		},
		{
			name:     "Thematic break skipped",
			body:     "***\n\nText.",
			options:  markdown.ManifestExcerpt,
			expected: "Text.",
		},
		{
			name:     "Whole body minified when no paragraph",
			body:     "# Only\n\n- item one\n- item two",
			options:  markdown.ManifestExcerpt,
			expected: "Only item one item two",
		},
		{
			name:     "Manifest length",
			body:     markdown.Document(long),
			options:  markdown.ManifestExcerpt,
			expected: strings.Repeat("字", 160),
		},
		{
			name:     "Publish length",
			body:     markdown.Document(long),
			options:  markdown.PublishExcerpt,
			expected: strings.Repeat("字", 120) + "...",
		},
		{
			name:     "No ellipsis when short enough",
			body:     "Short.",
			options:  markdown.PublishExcerpt,
			expected: "Short.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, markdown.Excerpt(tt.body, tt.options))
		})
	}
}
