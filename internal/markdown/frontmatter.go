package markdown

import (
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/moxxiRan/daily-site/pkg/text"
)

const frontMatterFence = "---"

var regexFrontMatterKey = regexp.MustCompile(`^(\w+)\s*:\s*(.*)$`)

// FrontMatter represents the raw Front Matter (without the fences)
type FrontMatter string

// FrontMatterFields contains the only attributes a daily post can declare.
// Empty fields were absent or unusable.
type FrontMatterFields struct {
	Title   string   `yaml:"title"`
	Date    string   `yaml:"date"`
	Summary string   `yaml:"summary"`
	Tags    []string `yaml:"tags"`
}

// SplitFrontMatter separates the Front Matter from the body.
// The Front Matter is only recognized when the very first line is "---" and a closing fence exists.
func SplitFrontMatter(content string) (FrontMatter, Document, bool) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t") != frontMatterFence {
		return "", Document(content), false
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t") == frontMatterFence {
			raw := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return FrontMatter(raw), Document(body), true
		}
	}
	return "", Document(content), false
}

// ParseFrontMatter extracts the known fields from a Markdown text.
// It returns nil when no Front Matter is present. Malformed values never fail the parsing:
// the YAML decoding is tried first, then a tolerant line-based scan.
func ParseFrontMatter(content string) *FrontMatterFields {
	raw, _, ok := SplitFrontMatter(content)
	if !ok {
		return nil
	}
	if fields, err := raw.Decode(); err == nil {
		return fields
	}
	return raw.Scan()
}

// Decode parses the Front Matter as strict YAML.
func (f FrontMatter) Decode() (*FrontMatterFields, error) {
	var fields FrontMatterFields
	document := frontMatterFence + "\n" + string(f) + "\n" + frontMatterFence + "\n"
	if _, err := frontmatter.Parse(strings.NewReader(document), &fields); err != nil {
		return nil, err
	}
	fields.Title = strings.TrimSpace(fields.Title)
	fields.Date = strings.TrimSpace(fields.Date)
	fields.Summary = strings.TrimSpace(fields.Summary)
	fields.Tags = cleanTags(fields.Tags)
	return &fields, nil
}

// Scan parses the Front Matter line by line.
// Only `key: value` lines are considered. Tags are either inline (`[a, b]`) or a list of `- item` lines.
func (f FrontMatter) Scan() *FrontMatterFields {
	var fields FrontMatterFields

	iterator := f.Document().Iterator()
	for iterator.HasNext() {
		line := iterator.Next()
		match := regexFrontMatterKey.FindStringSubmatch(strings.TrimSpace(line.Text))
		if match == nil {
			continue
		}
		key, value := match[1], strings.TrimSpace(match[2])
		switch key {
		case "title":
			fields.Title = unquote(value)
		case "date":
			fields.Date = unquote(value)
		case "summary":
			fields.Summary = unquote(value)
		case "tags":
			if strings.HasPrefix(value, "[") {
				value = strings.TrimSuffix(strings.TrimPrefix(value, "["), "]")
				fields.Tags = cleanTags(strings.Split(value, ","))
				continue
			}
			if value != "" {
				fields.Tags = cleanTags([]string{value})
				continue
			}
			items := iterator.NextWhile(func(l text.Line) bool {
				return strings.HasPrefix(strings.TrimSpace(l.Text), "-")
			})
			var tags []string
			for _, item := range items {
				tags = append(tags, strings.TrimPrefix(strings.TrimSpace(item.Text), "-"))
			}
			fields.Tags = cleanTags(tags)
		}
	}

	return &fields
}

// Document returns the Front Matter as a Markdown document to reuse line-based helpers.
func (f FrontMatter) Document() Document {
	return Document(f)
}

func unquote(value string) string {
	value = strings.TrimPrefix(value, `"`)
	value = strings.TrimSuffix(value, `"`)
	return strings.TrimSpace(value)
}

// cleanTags trims the tags and drops the blank ones.
// A declared but empty list stays non-nil to differentiate it from a missing key.
func cleanTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	result := []string{}
	for _, tag := range tags {
		tag = unquote(strings.TrimSpace(tag))
		if tag != "" {
			result = append(result, tag)
		}
	}
	return result
}
