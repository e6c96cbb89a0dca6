package markdown_test

import (
	"testing"

	"github.com/moxxiRan/daily-site/internal/markdown"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		md       markdown.Document
		options  markdown.NormalizeOptions
		expected markdown.Document
	}{
		{
			name:     "Invisible characters and CRLF",
			md:       "\uFEFF# Title\r\nline\u200B one\r\n",
			expected: "# Title\nline one\n",
		},
		{
			name:     "Old Mac line endings",
			md:       "a\rb",
			expected: "a\nb",
		},
		{
			name:     "Blockquote followed by paragraph",
			md:       "> quote\nparagraph",
			expected: "> quote\n\nparagraph",
		},
		{
			name:     "Blockquote continued",
			md:       "> line 1\n> line 2\n\nparagraph",
			expected: "> line 1\n> line 2\n\nparagraph",
		},
		{
			name:     "List after paragraph",
			md:       "Intro:\n- a\n- b",
			expected: "Intro:\n\n- a\n- b",
		},
		{
			name:     "List after blockquote",
			md:       "> quote\n- a",
			expected: "> quote\n\n- a",
		},
		{
			name:     "Nested list untouched",
			md:       "- a\n  continued\n  - b",
			expected: "- a\n  continued\n  - b",
		},
		{
			name:     "Code blocks untouched",
			md:       "```\n> quote\ntext\n- item\n```",
			expected: "```\n> quote\ntext\n- item\n```",
		},
		{
			name:     "Labels kept without promotion",
			md:       "**核心洞察：** Big news",
			expected: "**核心洞察：** Big news",
		},
		{
			name:     "Insight promoted",
			md:       "**核心洞察：** Big news",
			options:  markdown.NormalizeOptions{PromoteLabels: true},
			expected: "## 核心洞察\n\nBig news",
		},
		{
			name:     "Summary promoted before list",
			md:       "**内容摘要**：\n- a\n- b",
			options:  markdown.NormalizeOptions{PromoteLabels: true},
			expected: "## 内容摘要\n\n- a\n- b",
		},
		{
			name:     "Successive labels on one line",
			md:       "**核心洞察：** **内容摘要：** y",
			options:  markdown.NormalizeOptions{PromoteLabels: true},
			expected: "## 核心洞察\n\n## 内容摘要\n\ny",
		},
		{
			name:     "Bold sentence not promoted",
			md:       "**Summary** of the day",
			options:  markdown.NormalizeOptions{PromoteLabels: true},
			expected: "**Summary** of the day",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := markdown.Normalize(tt.md, tt.options)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []markdown.Document{
		"\uFEFF# Title\r\n> quote\r\ntext\r\nIntro\r\n- a\r\n- b\r\n",
		"**核心洞察：** first\n**内容摘要：**\n- a\n> q\n- b\n",
		"```\n> q\nx\n```\n> q\n```\ncode\n```\n",
		"## A\n\n> **分类：** AI\n> **来源：** [x](https://x.com)\nBody\n",
		"**核心洞察：** **内容摘要：** y",
	}
	for _, options := range []markdown.NormalizeOptions{{}, {PromoteLabels: true}} {
		for _, md := range inputs {
			once := markdown.Normalize(md, options)
			twice := markdown.Normalize(once, options)
			assert.Equal(t, once, twice)
		}
	}
}
