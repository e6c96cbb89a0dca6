package text

import "strings"

// UnescapeTestContent replaces the character ” by a backtick.
// Raw string literals cannot contain backticks, so test posts write fences as ”””.
func UnescapeTestContent(content string) string {
	return strings.ReplaceAll(content, "”", "`")
}
