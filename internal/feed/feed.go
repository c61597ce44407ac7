// Package feed writes the RSS 2.0 and Atom documents advertised by automatic feed links.
package feed

import (
	"fmt"
	"io"
	"strings"

	"github.com/gorilla/feeds"

	"github.com/hasanfardous/startup-wp/internal/model"
)

// Limit is how many posts a feed carries.
const Limit = 10

// Site is the channel metadata.
type Site struct {
	Title       string
	BaseURL     string
	Description string
	Language    string
}

// Build collects the newest posts among items into a feed. The feed's Updated
// time is the date of its newest entry.
func Build(site Site, items []*model.ContentItem) *feeds.Feed {
	base := strings.TrimSuffix(site.BaseURL, "/")
	f := &feeds.Feed{
		Title:       site.Title,
		Link:        &feeds.Link{Href: base + "/"},
		Description: site.Description,
	}
	for _, it := range items {
		if len(f.Items) == Limit {
			break
		}
		if it.Type != "post" {
			continue
		}
		entry := &feeds.Item{
			Title:       it.Title,
			Link:        &feeds.Link{Href: base + it.Permalink},
			Id:          base + it.Permalink,
			Description: it.Excerpt,
			Created:     it.Date,
		}
		if it.Author != "" {
			entry.Author = &feeds.Author{Name: it.Author}
		}
		if f.Updated.IsZero() && !it.Date.IsZero() {
			f.Updated = it.Date
		}
		f.Items = append(f.Items, entry)
	}
	return f
}

// Write encodes the newest posts among items as an RSS feed.
func Write(w io.Writer, site Site, items []*model.ContentItem) error {
	rss := (&feeds.Rss{Feed: Build(site, items)}).RssFeed()
	rss.Language = site.Language
	if err := feeds.WriteXML(rss, w); err != nil {
		return fmt.Errorf("failed to encode feed: %w", err)
	}
	return nil
}

// WriteAtom encodes the same entries as Write as an Atom feed.
func WriteAtom(w io.Writer, site Site, items []*model.ContentItem) error {
	if err := Build(site, items).WriteAtom(w); err != nil {
		return fmt.Errorf("failed to encode atom feed: %w", err)
	}
	return nil
}
