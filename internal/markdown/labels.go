package markdown

import (
	"strings"
)

// Labels used by daily posts to mark special lines and sections.
const (
	LabelCategory = "分类"
	LabelSources  = "来源"
	LabelInsight  = "核心洞察"
	LabelSummary  = "内容摘要"
	LabelRelated  = "相关链接"
)

// Accepted spellings for each label. The first one is the canonical form.
var labelAliases = map[string][]string{
	LabelCategory: {LabelCategory, "Category"},
	LabelSources:  {LabelSources, "Sources", "Source"},
	LabelInsight:  {LabelInsight, "Core Insight", "Insight"},
	LabelSummary:  {LabelSummary, "Summary"},
	LabelRelated:  {LabelRelated, "Related Links"},
}

// IsLabel returns if the text is exactly one of the spellings of the label (case-insensitive).
func IsLabel(s string, label string) bool {
	s = strings.TrimSpace(s)
	for _, alias := range labelAliases[label] {
		if strings.EqualFold(s, alias) {
			return true
		}
	}
	return false
}

// IsReservedHeading returns if a heading text is a structural label rather than a topic.
func IsReservedHeading(s string) bool {
	return IsLabel(s, LabelInsight) || IsLabel(s, LabelSummary)
}

// CutLabel checks if the text starts with the label, ignoring emphasis markers around it,
// and returns the remaining text after the optional colon.
//
// Ex: "**分类：** AI" => "AI", true
func CutLabel(s string, label string) (string, bool) {
	s = strings.TrimLeft(s, " \t*_")
	for _, alias := range labelAliases[label] {
		if len(s) < len(alias) || !strings.EqualFold(s[:len(alias)], alias) {
			continue
		}
		rest := s[len(alias):]
		if rest != "" && isWordStart(rest) {
			// Ex: "Summarys"
			continue
		}
		rest = strings.TrimLeft(rest, " \t*_:：")
		rest = strings.TrimRight(rest, " \t*_")
		return strings.TrimSpace(rest), true
	}
	return "", false
}

func isWordStart(s string) bool {
	c := s[0]
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// cleanMarkerLine removes the block syntax that may wrap a label (heading, blockquote).
func cleanMarkerLine(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "#> \t")
	return line
}

// cutMarker is like CutLabel for structural labels inside a section:
// the label must end the line, be followed by a colon, or be a heading.
//
// Ex: "**核心洞察：** text" => "text", true
// Ex: "Summary of the day" => "", false
func cutMarker(line string, label string) (string, bool) {
	heading := strings.HasPrefix(strings.TrimSpace(line), "#")
	cleaned := cleanMarkerLine(line)
	rest, ok := CutLabel(cleaned, label)
	if !ok {
		return "", false
	}
	if rest == "" || heading {
		return rest, true
	}
	prefix := cleaned[:strings.LastIndex(cleaned, rest)]
	if !strings.ContainsAny(prefix, ":：") {
		return "", false
	}
	return rest, true
}
