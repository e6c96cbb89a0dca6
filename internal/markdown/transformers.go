package markdown

import (
	"regexp"
	"strings"

	"github.com/moxxiRan/daily-site/pkg/text"
)

// Transformer applies changes on a Markdown document
type Transformer func(document Document) (Document, error)

// Transform applies transformers successively to create a new Markdown document
func (m Document) Transform(transformers ...Transformer) (Document, error) {
	result := m
	for _, transformer := range transformers {
		resultTransformed, err := transformer(result)
		if err != nil {
			return m, err
		}
		result = resultTransformed
	}
	return result, nil
}

// MustTransform is similar to Transform but does not expect an error
func (m Document) MustTransform(transformers ...Transformer) Document {
	result, err := m.Transform(transformers...)
	if err != nil {
		panic(err)
	}
	return result
}

/*
 * Transformers
 */

var (
	reBoldAsterisks     = regexp.MustCompile(`\*\*(.*?)\*\*`)
	reBoldUnderscores   = regexp.MustCompile(`__(.*?)__`)
	reItalicAsterisks   = regexp.MustCompile(`\*(.*?)\*`)
	reItalicUnderscores = regexp.MustCompile(`\b_(.*?)_\b`)
	reInlineCode        = regexp.MustCompile("`([^`].*?)`") // Important: do not match ```
	reImage             = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	reInlineLink        = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	reInlineSyntax      = regexp.MustCompile("[`*_#>\\[\\]()!]")
)

// StripCodeBlocks replaces the lines of fenced and indented code blocks by blank lines.
// Line numbers are preserved.
func StripCodeBlocks() Transformer {
	return func(document Document) (Document, error) {
		var newLines []string

		var fence codeFence
		iterator := document.Iterator()
		for iterator.HasNext() {
			line := iterator.Next()
			if fence.Skip(line.Text) || strings.HasPrefix(line.Text, "    ") {
				newLines = append(newLines, "")
				continue
			}
			newLines = append(newLines, line.Text)
		}

		return Document(strings.Join(newLines, "\n")), nil
	}
}

// SquashBlankLines removes blank lines when multiple successive blank lines are present
func SquashBlankLines() Transformer {
	return func(document Document) (Document, error) {
		return Document(text.SquashBlankLines(string(document))), nil
	}
}

// StripEmphasis remove Markdown emphasis characters.
func StripEmphasis() Transformer {
	return func(document Document) (Document, error) {
		return Document(stripEmphasis(string(document))), nil
	}
}

func stripEmphasis(txt string) string {
	txt = reBoldAsterisks.ReplaceAllString(txt, "$1")
	txt = reBoldUnderscores.ReplaceAllString(txt, "$1")
	txt = reItalicAsterisks.ReplaceAllString(txt, "$1")
	txt = reItalicUnderscores.ReplaceAllString(txt, "$1")
	txt = reInlineCode.ReplaceAllString(txt, "$1")
	return txt
}

// StripInline reduces a Markdown snippet to plain text on a single line:
// images are dropped, links are replaced by their label,
// remaining syntax characters are removed and whitespace is collapsed.
func StripInline(md string) string {
	md = reImage.ReplaceAllString(md, "")
	md = reInlineLink.ReplaceAllString(md, "$1")
	md = reInlineSyntax.ReplaceAllString(md, "")
	return text.CollapseSpaces(md)
}

// PlainText is like StripInline but keeps characters that are not markup in practice
// (ex: underscores inside words, parentheses in sentences).
func PlainText(md string) string {
	md = reImage.ReplaceAllString(md, "")
	md = reInlineLink.ReplaceAllString(md, "$1")
	md = stripEmphasis(md)
	return text.CollapseSpaces(md)
}
