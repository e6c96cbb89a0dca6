package reader

import (
	"math"
	"regexp"
	"strings"
	"time"
)

// Words read per minute
const readingSpeed = 260

var (
	regexMarkup = regexp.MustCompile("[#>*`\\-\\[\\]()]|\\d+\\.|\n")
	weekdays    = []string{"日", "一", "二", "三", "四", "五", "六"}
)

// ReadingTime estimates the minutes needed to read a Markdown text (at least one).
// Words are separated by spaces, so CJK paragraphs count as a single word.
func ReadingTime(md string) int {
	words := len(strings.Fields(regexMarkup.ReplaceAllString(md, " ")))
	minutes := int(math.Round(float64(words) / readingSpeed))
	return max(1, minutes)
}

// FormatDate formats an ISO date with its weekday (ex: 2025-09-03（周三）).
// Invalid dates are returned unchanged.
func FormatDate(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return t.Format(time.DateOnly) + "（周" + weekdays[t.Weekday()] + "）"
}
