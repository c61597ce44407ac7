package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasanfardous/startup-wp/internal/model"
)

// rssDoc is the subset of RSS 2.0 the tests read back.
type rssDoc struct {
	Version string `xml:"version,attr"`
	Channel struct {
		Title         string `xml:"title"`
		Link          string `xml:"link"`
		Language      string `xml:"language"`
		LastBuildDate string `xml:"lastBuildDate"`
		Items         []struct {
			Title       string `xml:"title"`
			Link        string `xml:"link"`
			PubDate     string `xml:"pubDate"`
			Description string `xml:"description"`
		} `xml:"item"`
	} `xml:"channel"`
}

func testItems() []*model.ContentItem {
	items := []*model.ContentItem{{Title: "About", Type: "page", Permalink: "/about/"}}
	for i := 0; i < 12; i++ {
		items = append(items, &model.ContentItem{
			Title:     fmt.Sprintf("Post %d", i),
			Type:      "post",
			Permalink: fmt.Sprintf("/posts/%d/", i),
			Date:      time.Date(2024, 1, 12-i, 0, 0, 0, 0, time.UTC),
			Excerpt:   `Tom & Jerry say "hi" <3`,
		})
	}
	return items
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	site := Site{Title: "Startup", BaseURL: "https://example.com/", Language: "en-US"}
	require.NoError(t, Write(&buf, site, testItems()))

	var doc rssDoc
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "2.0", doc.Version)
	assert.Equal(t, "Startup", doc.Channel.Title)
	assert.Equal(t, "https://example.com/", doc.Channel.Link)
	assert.Equal(t, "en-US", doc.Channel.Language)
	require.Len(t, doc.Channel.Items, Limit)
	assert.Equal(t, "Post 0", doc.Channel.Items[0].Title)
	assert.Equal(t, "https://example.com/posts/0/", doc.Channel.Items[0].Link)
	assert.Equal(t, `Tom & Jerry say "hi" <3`, doc.Channel.Items[0].Description)
	assert.Equal(t, "Fri, 12 Jan 2024 00:00:00 +0000", doc.Channel.Items[0].PubDate)
	assert.Equal(t, doc.Channel.Items[0].PubDate, doc.Channel.LastBuildDate)
	assert.NotContains(t, buf.String(), "&amp;amp;")
}

func TestBuildSkipsNonPosts(t *testing.T) {
	f := Build(Site{BaseURL: "https://example.com"}, testItems())
	require.Len(t, f.Items, Limit)
	for _, it := range f.Items {
		assert.NotEqual(t, "About", it.Title)
	}
	assert.Equal(t, time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC), f.Updated)
}

func TestWriteAtom(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAtom(&buf, Site{Title: "Startup", BaseURL: "https://example.com"}, testItems()))

	var doc struct {
		Title   string `xml:"title"`
		Entries []struct {
			Title string `xml:"title"`
		} `xml:"entry"`
	}
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "Startup", doc.Title)
	assert.Len(t, doc.Entries, Limit)
}
