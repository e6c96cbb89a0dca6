package markdown

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

// MaxSectionMetaLines is how many lines at the start of a section may carry its citation block.
const MaxSectionMetaLines = 12

var regexStrictMeta = regexp.MustCompile(`^\s*>\s*(?:\*\*)?\s*(分类|来源|(?i:category|sources?))\s*(?:\*\*)?\s*[:：]\s*(?:\*\*)?\s*(.*?)\s*$`)

// Source is a citation link.
type Source struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Meta is the citation block attached to a document or a section.
type Meta struct {
	Category string   `json:"category,omitempty"`
	Sources  []Source `json:"sources,omitempty"`
}

// IsEmpty returns if no citation information is present.
func (m Meta) IsEmpty() bool {
	return m.Category == "" && len(m.Sources) == 0
}

// Inherit completes the missing fields using the parent values.
func (m Meta) Inherit(parent Meta) Meta {
	if m.Category == "" {
		m.Category = parent.Category
	}
	if len(m.Sources) == 0 {
		m.Sources = parent.Sources
	}
	return m
}

// metaLine is the result of matching a single line against the citation syntax.
type metaLine struct {
	label string // LabelCategory or LabelSources
	value string
}

// metaMatcher recognizes a citation line.
type metaMatcher func(line string) (metaLine, bool)

// matchStrictMeta accepts only well-formed citation lines: `> **分类：** AI`, `> 来源: [a](b)`
func matchStrictMeta(line string) (metaLine, bool) {
	match := regexStrictMeta.FindStringSubmatch(line)
	if match == nil {
		return metaLine{}, false
	}
	label := LabelCategory
	if IsLabel(match[1], LabelSources) {
		label = LabelSources
	}
	return metaLine{label: label, value: match[2]}, true
}

// matchLooseMeta accepts damaged citation lines (missing bold, missing colon, full-width characters,
// replacement characters left by a bad encoding).
func matchLooseMeta(line string) (metaLine, bool) {
	line = width.Fold.String(line)
	line = strings.ReplaceAll(line, "\uFFFD", "")
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, ">") {
		return metaLine{}, false
	}
	line = strings.TrimLeft(line, "> \t")
	// A plain quote may start with the same word: require a usable value
	if value, ok := CutLabel(line, LabelCategory); ok && value != "" {
		return metaLine{label: LabelCategory, value: value}, true
	}
	if value, ok := CutLabel(line, LabelSources); ok && len(parseSources(value)) > 0 {
		return metaLine{label: LabelSources, value: value}, true
	}
	return metaLine{}, false
}

// metaScan searches for at most one category line and one sources line.
type metaScan struct {
	meta          Meta
	categoryFound bool
	sourcesFound  bool
	matchedLines  map[int]bool // 0-based indices
}

func newMetaScan(initial Meta, categoryFound, sourcesFound bool) *metaScan {
	return &metaScan{
		meta:          initial,
		categoryFound: categoryFound,
		sourcesFound:  sourcesFound,
		matchedLines:  make(map[int]bool),
	}
}

// Run inspects the lines (limit < 0 means all lines) ignoring code blocks.
func (s *metaScan) Run(lines []string, limit int, match metaMatcher) {
	var fence codeFence
	for i, line := range lines {
		if limit >= 0 && i >= limit {
			break
		}
		if s.categoryFound && s.sourcesFound {
			break
		}
		if fence.Skip(line) {
			continue
		}
		result, ok := match(line)
		if !ok {
			continue
		}
		switch result.label {
		case LabelCategory:
			if s.categoryFound {
				continue
			}
			s.categoryFound = true
			s.meta.Category = cleanCategory(result.value)
		case LabelSources:
			if s.sourcesFound {
				continue
			}
			s.sourcesFound = true
			s.meta.Sources = parseSources(result.value)
		}
		s.matchedLines[i] = true
	}
}

// Remaining returns the lines that were not recognized as citation lines.
func (s *metaScan) Remaining(lines []string) []string {
	var result []string
	for i, line := range lines {
		if !s.matchedLines[i] {
			result = append(result, line)
		}
	}
	return result
}

// ExtractMetaStrict extracts the well-formed citation lines and removes them from the document.
func ExtractMetaStrict(document Document) (Document, Meta) {
	lines := document.Lines()
	scan := newMetaScan(Meta{}, false, false)
	scan.Run(lines, -1, matchStrictMeta)
	return Document(strings.Join(scan.Remaining(lines), "\n")), scan.meta
}

// ExtractMetaLoose extracts damaged citation lines among the first maxLines lines
// (maxLines < 0 means the whole document) and removes them from the document.
func ExtractMetaLoose(document Document, maxLines int) (Document, Meta) {
	lines := document.Lines()
	scan := newMetaScan(Meta{}, false, false)
	scan.Run(lines, maxLines, matchLooseMeta)
	return Document(strings.Join(scan.Remaining(lines), "\n")), scan.meta
}

// ExtractMeta extracts the citation block of a document using the strict syntax first,
// then falls back to the tolerant syntax for what is still missing.
// Matched lines are removed from the returned document.
func ExtractMeta(document Document) (Document, Meta) {
	lines := document.Lines()

	strict := newMetaScan(Meta{}, false, false)
	strict.Run(lines, -1, matchStrictMeta)
	lines = strict.Remaining(lines)

	loose := newMetaScan(strict.meta, strict.categoryFound, strict.sourcesFound)
	loose.Run(lines, -1, matchLooseMeta)
	lines = loose.Remaining(lines)

	return Document(strings.Join(lines, "\n")), loose.meta
}

// ExtractMetaAndTOC returns the document without its citation lines, the citation block, and the outline.
func ExtractMetaAndTOC(document Document) (Document, Meta, []Heading) {
	stripped, meta := ExtractMeta(document)
	return stripped, meta, BuildTOC(stripped)
}

func cleanCategory(value string) string {
	return PlainText(strings.Trim(value, " \t*_"))
}

func parseSources(value string) []Source {
	var sources []Source
	for _, link := range Document(value).Links() {
		if link.URL == "" {
			continue
		}
		sources = append(sources, Source{
			Label: PlainText(link.Text),
			Href:  link.URL,
		})
	}
	return sources
}
