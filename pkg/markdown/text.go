package markdown

import (
	"bytes"
	"regexp"
	"strings"
	"unicode/utf8"
)

// How many spaces to indent headings per level
const indentHeading = 2

// How many spaces to indent code blocks
const indentCode = 4

var (
	reBoldAsterisks     = regexp.MustCompile(`\*\*(.*?)\*\*`)
	reBoldUnderscores   = regexp.MustCompile(`__(.*?)__`)
	reItalicAsterisks   = regexp.MustCompile(`\*([^*\s][^*]*?)\*`)
	reItalicUnderscores = regexp.MustCompile(`\b_(.*?)_\b`)
	reImage             = regexp.MustCompile(`!\[(.*?)\]\(.*?\)`)
	reLink              = regexp.MustCompile(`\[(.*?)\]\((\S*?)(?:\s+".*?")?\)`)
	reAutolink          = regexp.MustCompile(`<(https?://.*?)>`)
)

// ToText converts Markdown to plain text suitable for a terminal.
// Links keep their destination between parentheses.
func ToText(md string) string {
	var res bytes.Buffer

	insideCode := false
	insideQuote := false
	lines := strings.Split(md, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Code blocks
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			insideCode = !insideCode
			continue
		}
		if insideCode {
			res.WriteString(strings.Repeat(" ", indentCode))
			res.WriteString(line)
			res.WriteString("\n")
			continue
		}

		line = inlineToText(line)

		// Headings
		if ok, headingTitle, level := IsHeading(line); ok {
			insideQuote = false
			switch level {
			case 1:
				res.WriteString(headingTitle + "\n")
				res.WriteString(strings.Repeat("=", utf8.RuneCountInString(headingTitle)) + "\n")
			case 2:
				res.WriteString(headingTitle + "\n")
				res.WriteString(strings.Repeat("-", utf8.RuneCountInString(headingTitle)) + "\n")
			default:
				res.WriteString(strings.Repeat(" ", (level-2)*indentHeading))
				res.WriteString(headingTitle + "\n")
			}
			continue
		}

		// Quotes
		if strings.HasPrefix(trimmed, ">") {
			if !insideQuote {
				res.WriteRune('"')
			}
			res.WriteString(strings.TrimSpace(strings.TrimLeft(line, " >")))
			if i == len(lines)-1 || !strings.HasPrefix(strings.TrimSpace(lines[i+1]), ">") {
				res.WriteRune('"')
				insideQuote = false
			} else {
				res.WriteRune(' ')
				insideQuote = true
				continue
			}
			res.WriteString("\n")
			continue
		}

		insideQuote = false
		res.WriteString(line)
		res.WriteString("\n")
	}

	return strings.TrimSpace(res.String())
}

func inlineToText(txt string) string {
	txt = reBoldAsterisks.ReplaceAllString(txt, "$1")
	txt = reBoldUnderscores.ReplaceAllString(txt, "$1")
	txt = reItalicAsterisks.ReplaceAllString(txt, "$1")
	txt = reItalicUnderscores.ReplaceAllString(txt, "$1")
	txt = reImage.ReplaceAllString(txt, "[$1]")
	txt = reLink.ReplaceAllStringFunc(txt, func(match string) string {
		parts := reLink.FindStringSubmatch(match)
		if parts[1] == parts[2] || parts[2] == "" {
			return parts[1]
		}
		return parts[1] + " (" + parts[2] + ")"
	})
	txt = reAutolink.ReplaceAllString(txt, "$1")
	return txt
}
