package markdown

import (
	"strings"

	"github.com/moxxiRan/daily-site/pkg/text"
)

// IsHeading returns if a given line is a Markdown heading and its level.
func IsHeading(line string) (bool, string, int) {
	if !strings.HasPrefix(line, "#") {
		return false, "", 0
	}
	level := strings.IndexFunc(line, func(r rune) bool { return r != '#' })
	if level < 1 || level > 6 || (line[level] != ' ' && line[level] != '\t') {
		return false, "", 0
	}
	return true, strings.TrimSpace(line[level:]), level
}

// StripTopHeading removes the leading level-1 heading, already displayed as the title.
func StripTopHeading(md string) string {
	lines := strings.Split(md, "\n")
	i := 0

	// Skip leading blank lines
	for i < len(lines) && text.IsBlank(lines[i]) {
		i++
	}
	if i == len(lines) {
		return ""
	}

	if ok, _, level := IsHeading(lines[i]); ok && level == 1 {
		i++
		for i < len(lines) && text.IsBlank(lines[i]) {
			i++
		}
	}

	return strings.Join(lines[i:], "\n")
}
