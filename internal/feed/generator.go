package feed

import (
	"bytes"
	"encoding/xml"
	"strings"
	"time"

	"github.com/moxxiRan/daily-site/pkg/clock"
)

// Same layout as the HTTP date (RFC 1123 in GMT)
const lastBuildDateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Run renders a RSS 2.0 document.
func (g *Generator) Run(channel Channel, items []Item) (string, error) {
	var buf bytes.Buffer

	buf.WriteString(xml.Header)
	buf.WriteString(`<rss version="2.0">`)
	buf.WriteString("\n  <channel>\n")

	g.writeCDATA(&buf, "title", channel.Title, 4)
	g.writeElement(&buf, "link", channel.Link, 4)
	g.writeCDATA(&buf, "description", channel.Description, 4)
	g.writeElement(&buf, "lastBuildDate", clock.Now().UTC().Format(lastBuildDateLayout), 4)

	for _, item := range items {
		g.writeItem(&buf, item)
	}

	buf.WriteString("  </channel>\n</rss>\n")

	return buf.String(), nil
}

func (g *Generator) writeItem(buf *bytes.Buffer, item Item) {
	buf.WriteString("    <item>\n")

	g.writeCDATA(buf, "title", item.Title, 6)
	g.writeElement(buf, "link", item.Link, 6)
	if item.GUID != "" {
		buf.WriteString(`      <guid isPermaLink="false">`)
		xml.EscapeText(buf, []byte(item.GUID))
		buf.WriteString("</guid>\n")
	}
	if !item.PubDate.IsZero() {
		g.writeElement(buf, "pubDate", item.PubDate.Format(time.RFC1123Z), 6)
	}
	g.writeCDATA(buf, "description", item.Description, 6)
	for _, category := range item.Categories {
		g.writeElement(buf, "category", category, 6)
	}

	buf.WriteString("    </item>\n")
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	buf.WriteString(strings.Repeat(" ", indent))
	buf.WriteString("<" + tag + ">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</" + tag + ">\n")
}

// writeCDATA writes the element even when empty.
func (g *Generator) writeCDATA(buf *bytes.Buffer, tag, content string, indent int) {
	buf.WriteString(strings.Repeat(" ", indent))
	buf.WriteString("<" + tag + "><![CDATA[")
	// A CDATA section cannot contain its own terminator
	buf.WriteString(strings.ReplaceAll(content, "]]>", "]]]]><![CDATA[>"))
	buf.WriteString("]]></" + tag + ">\n")
}
