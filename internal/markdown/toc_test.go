package markdown_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/moxxiRan/daily-site/internal/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"ascii", "Hello World", "hello-world"},
		{"periods", "v1.2 Release", "v1-2-release"},
		{"punctuation collapsed", "What's new?!  Really", "what-s-new-really"},
		{"cjk percent-encoded", "OpenAI 发布 GPT-5!", "openai-%E5%8F%91%E5%B8%83-gpt-5"},
		{"nothing left", "!!!", "section"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, markdown.Slugify(tt.text))
		})
	}
}

func TestAnchors(t *testing.T) {
	anchors := markdown.NewAnchors()
	assert.Equal(t, "toc-news", anchors.Next("News"))
	assert.Equal(t, "toc-news-1", anchors.Next("News"))
	assert.Equal(t, "toc-news-2", anchors.Next("news"))
	assert.Equal(t, "toc-other", anchors.Next("Other"))
}

func TestBuildTOC(t *testing.T) {

	t.Run("Reserved headings excluded", func(t *testing.T) {
		toc := markdown.BuildTOC("## A\n## 核心洞察\n## B")
		assert.Equal(t, []markdown.Heading{
			{ID: "toc-a", Text: "A", Line: 1},
			{ID: "toc-b", Text: "B", Line: 3},
		}, toc)
	})

	t.Run("Only level-2 headings outside code", func(t *testing.T) {
		toc := markdown.UnescapeTestDocument(`# Title
### Detail
”””
## In code
”””
## **Bold** news
## Summary
`)
		actual := markdown.BuildTOC(toc)
		require.Len(t, actual, 1)
		assert.Equal(t, "toc-bold-news", actual[0].ID)
		assert.Equal(t, "Bold news", actual[0].Text)
		assert.Equal(t, 6, actual[0].Line)
	})

	t.Run("Identical headings", func(t *testing.T) {
		toc := markdown.BuildTOC("## Update\n\n## Update")
		require.Len(t, toc, 2)
		assert.NotEqual(t, toc[0].ID, toc[1].ID)
		assert.Equal(t, "toc-update-1", toc[1].ID)
	})

	t.Run("Capped", func(t *testing.T) {
		var sb strings.Builder
		for i := 1; i <= 13; i++ {
			sb.WriteString(fmt.Sprintf("## Heading %d\n", i))
		}
		toc := markdown.BuildTOC(markdown.Document(sb.String()))
		assert.Len(t, toc, 12)
	})

	t.Run("No headings", func(t *testing.T) {
		assert.Empty(t, markdown.BuildTOC("Just text"))
	})

}
