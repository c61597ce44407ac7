package model

import (
	"html/template"
	"time"
)

// ContentItem represents a single piece of content (post, page, attachment, slide).
// The theme only reads these; the site layer builds them.
type ContentItem struct {
	ID           int
	Title        string
	Date         time.Time
	Type         string
	SourcePath   string
	Permalink    string
	ContentHTML  template.HTML
	// Text is ContentHTML with markup removed and entities decoded.
	Text         string
	Excerpt      string
	Thumbnail    string
	Author       string
	Categories   []string
	Tags         []string
	CommentCount int
	CommentsOpen *bool
	PingsOpen    *bool
	Frontmatter  map[string]interface{}
	Layout       string
}

// Kind classifies a resolved request.
type Kind int

const (
	KindUnknown Kind = iota
	KindSingular
	KindArchive
	KindSearch
	KindNotFound
	KindAttachment
)

var kindNames = map[Kind]string{
	KindUnknown:    "unknown",
	KindSingular:   "singular",
	KindArchive:    "archive",
	KindSearch:     "search",
	KindNotFound:   "404",
	KindAttachment: "attachment",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// ParseKind maps a kind name back to its Kind. Unrecognized names give KindUnknown.
func ParseKind(s string) Kind {
	for k, name := range kindNames {
		if name == s {
			return k
		}
	}
	return KindUnknown
}

// QueryContext is the resolved classification of one request plus its matched items.
type QueryContext struct {
	Kind        Kind
	Items       []*ContentItem
	Path        string
	SearchQuery string
	// Taxonomy and Term are set for term archives (e.g. "category", "news").
	Taxonomy  string
	Term      string
	FrontPage bool
}

// IsSingular reports whether the context shows a single item. Attachments count.
func (q QueryContext) IsSingular() bool {
	return q.Kind == KindSingular || q.Kind == KindAttachment
}

// Item returns the queried item of a singular context, or nil.
func (q QueryContext) Item() *ContentItem {
	if !q.IsSingular() || len(q.Items) == 0 {
		return nil
	}
	return q.Items[0]
}
