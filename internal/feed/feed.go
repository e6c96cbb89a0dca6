package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/moxxiRan/daily-site/internal/core"
)

// Channel describes the feed of a single category for a single month.
type Channel struct {
	Title       string
	Link        string
	Description string
}

// Item is a single post of the feed.
type Item struct {
	Title       string
	Link        string
	GUID        string
	Description string
	Categories  []string
	PubDate     time.Time
}

// FromManifest collects the entries of a category month.
// pageURL is the address of the reader page, used as the channel link
// and as the base of every item link.
func FromManifest(m *core.Manifest, category, month, pageURL string, location *time.Location) (Channel, []Item) {
	if location == nil {
		location = time.UTC
	}
	channel := Channel{
		Title:       fmt.Sprintf("%s %s", m.Label(category), month),
		Link:        pageURL,
		Description: m.Site.Description,
	}

	var items []Item
	for _, entry := range m.Entries(category, month) {
		link := EntryLink(pageURL, category, entry)
		item := Item{
			Title:       entry.Title,
			Link:        link,
			GUID:        entry.Slug,
			Description: entry.Summary,
			Categories:  entry.Tags,
		}
		if item.GUID == "" {
			item.GUID = uuid.NewSHA1(uuid.NameSpaceURL, []byte(category+"/"+entry.Date)).String()
		}
		if date, err := time.ParseInLocation(time.DateOnly, entry.Date, location); err == nil {
			item.PubDate = date
		}
		items = append(items, item)
	}
	return channel, items
}

// EntryLink returns the deep link opening the entry in the reader page.
func EntryLink(pageURL, category string, entry core.Entry) string {
	return fmt.Sprintf("%s#/p/%s/%s/%s", strings.TrimSuffix(pageURL, "#"), category, entry.Month(), entry.Day())
}

// Filename returns the name of the downloaded feed file.
func Filename(category, month string) string {
	return slug.Make(category) + "-" + month + "-rss.xml"
}
