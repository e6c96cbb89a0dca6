package markdown

import (
	"fmt"
	"regexp"
	"strings"
)

// Regex to match links
const regexLinkRaw = `\[([^\]]*)\][(]([^\s)]*)?(?:\s+"(.*?)")?[)]`

var regexLink = regexp.MustCompile(regexLinkRaw)

type Link struct {
	Text  string `json:"text"`
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
	Line  int    `json:"line"`
}

// External returns if the link targets another site.
func (l Link) External() bool {
	return strings.HasPrefix(l.URL, "http://") || strings.HasPrefix(l.URL, "https://")
}

func (l Link) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`[%s](%s`, l.Text, l.URL))
	if l.Title != "" {
		sb.WriteString(fmt.Sprintf(` "%s"`, l.Title))
	}
	sb.WriteString(")")
	return sb.String()
}

/*
 * Document
 */

// Links returns the links (not images) present outside code blocks.
func (m Document) Links() []Link {
	var results []Link

	text := m.MustTransform(StripCodeBlocks()).String()

	matches := regexLink.FindAllStringSubmatchIndex(text, -1)
	for _, match := range matches {
		if match[0] > 0 && text[match[0]-1] == '!' {
			// Golang doesn't support negative lookbehind
			continue
		}
		linkText := text[match[2]:match[3]]
		linkURL := ""
		if match[4] != -1 {
			linkURL = text[match[4]:match[5]]
		}
		linkTitle := ""
		if match[6] != -1 {
			linkTitle = text[match[6]:match[7]]
		}
		linkLine := strings.Count(text[:match[0]], "\n") + 1

		results = append(results, Link{
			Text:  linkText,
			URL:   linkURL,
			Title: linkTitle,
			Line:  linkLine,
		})
	}

	return results
}
