package markdown

import (
	"regexp"
	"strings"

	"github.com/moxxiRan/daily-site/pkg/text"
)

// NormalizeOptions toggles the optional normalization steps.
type NormalizeOptions struct {
	// PromoteLabels turns bold insight/summary labels into level-2 headings.
	PromoteLabels bool
}

var invisibleCharacters = strings.NewReplacer(
	"\uFEFF", "", // BOM
	"\u200B", "", // zero-width space
	"\u200C", "", // zero-width non-joiner
	"\u200D", "", // zero-width joiner
	"\u2060", "", // word joiner
)

var regexBoldLabel = regexp.MustCompile(`^\s*\*\*\s*([^*:：]+?)\s*([:：]?)\s*\*\*\s*([:：]?)\s*(.*)$`)

// Normalize repairs the irregular Markdown produced upstream so that it renders predictably.
// Normalize is idempotent.
func Normalize(document Document, options NormalizeOptions) Document {
	transformers := []Transformer{
		StripInvisibleCharacters(),
		NormalizeLineEndings(),
		SeparateBlockquotes(),
		SeparateLists(),
	}
	if options.PromoteLabels {
		// The text moved after a promoted label may itself need separating
		transformers = append(transformers, PromoteLabels(), SeparateBlockquotes(), SeparateLists())
	}
	return document.MustTransform(transformers...)
}

// StripInvisibleCharacters removes the BOM and zero-width characters.
func StripInvisibleCharacters() Transformer {
	return func(document Document) (Document, error) {
		return Document(invisibleCharacters.Replace(string(document))), nil
	}
}

// NormalizeLineEndings converts CRLF and CR line endings to LF.
func NormalizeLineEndings() Transformer {
	return func(document Document) (Document, error) {
		md := strings.ReplaceAll(string(document), "\r\n", "\n")
		md = strings.ReplaceAll(md, "\r", "\n")
		return Document(md), nil
	}
}

// SeparateBlockquotes inserts a blank line after a blockquote directly followed by a paragraph.
// Otherwise, the paragraph is lazily merged into the quote.
func SeparateBlockquotes() Transformer {
	return func(document Document) (Document, error) {
		var result []string
		var fence codeFence
		iterator := document.Iterator()
		for iterator.HasNext() {
			line := iterator.Next()
			result = append(result, line.Text)
			if fence.Skip(line.Text) {
				continue
			}
			next := line.Next()
			if IsBlockquote(line.Text) && !line.IsLast() && !next.IsBlank() && !IsBlockquote(next.Text) {
				result = append(result, "")
			}
		}
		return Document(strings.Join(result, "\n")), nil
	}
}

// SeparateLists inserts a blank line before a list starting right after a paragraph.
func SeparateLists() Transformer {
	return func(document Document) (Document, error) {
		var result []string
		var fence codeFence
		iterator := document.Iterator()
		for iterator.HasNext() {
			line := iterator.Next()
			if fence.Skip(line.Text) {
				result = append(result, line.Text)
				continue
			}
			prev := line.Prev()
			if IsListItem(line.Text) && !line.IsFirst() && !prev.IsBlank() &&
				!IsBlockquote(prev.Text) && !IsListItem(prev.Text) && !isIndented(prev.Text) && !isFenceDelimiter(prev.Text) {
				result = append(result, "")
			}
			result = append(result, line.Text)
		}
		return Document(strings.Join(result, "\n")), nil
	}
}

// PromoteLabels converts `**核心洞察：**` and `**内容摘要：**` lines into level-2 headings.
// Any text following the label on the same line becomes a paragraph under the heading.
func PromoteLabels() Transformer {
	return func(document Document) (Document, error) {
		var result []string
		var fence codeFence
		for _, line := range document.Lines() {
			if fence.Skip(line) {
				result = append(result, line)
				continue
			}
			label, rest, ok := promoteLabel(line)
			if !ok {
				result = append(result, line)
				continue
			}
			// The text after a label can start with another label
			for ok {
				result = append(result, "## "+label)
				if rest == "" {
					break
				}
				result = append(result, "")
				line = rest
				label, rest, ok = promoteLabel(line)
				if !ok {
					result = append(result, line)
				}
			}
		}
		return Document(strings.Join(result, "\n")), nil
	}
}

// promoteLabel returns the label starting the line and the text following it.
func promoteLabel(line string) (string, string, bool) {
	match := regexBoldLabel.FindStringSubmatch(line)
	if match == nil || !IsReservedHeading(match[1]) {
		return "", "", false
	}
	rest := strings.TrimSpace(match[4])
	if match[2] == "" && match[3] == "" && rest != "" {
		// Bold text starting a sentence, not a label
		return "", "", false
	}
	return strings.TrimSpace(match[1]), rest, true
}

func isIndented(line string) bool {
	return !text.IsBlank(line) && (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t"))
}

func isFenceDelimiter(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")
}
