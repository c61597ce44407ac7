// Package content turns a directory of markdown files into content items.
package content

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hasanfardous/startup-wp/internal/model"
)

// ExcerptWords is the length of a generated excerpt.
const ExcerptWords = 55

var dateFormats = []string{"2006-01-02T15:04:05Z07:00", "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}

// Directory names are plural on disk; item types are singular.
var typeAliases = map[string]string{
	"posts":       "post",
	"pages":       "page",
	"sliders":     "slider",
	"slides":      "slider",
	"attachments": "attachment",
	"media":       "attachment",
}

// Elements whose text runs into the surrounding text without a break.
var inlineElements = map[string]bool{
	"a": true, "abbr": true, "b": true, "code": true, "del": true, "em": true, "i": true,
	"kbd": true, "mark": true, "s": true, "small": true, "span": true, "strong": true,
	"sub": true, "sup": true,
}

// Loader reads markdown content. The zero value is not usable; use NewLoader.
type Loader struct {
	md     goldmark.Markdown
	logger *zap.Logger
}

func NewLoader(logger *zap.Logger) *Loader {
	return &Loader{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithHardWraps(),
			),
		),
		logger: logger,
	}
}

// Load walks dir and returns every markdown file as an item, newest first.
func (l *Loader) Load(dir string) ([]*model.ContentItem, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("content directory '%s' not found", dir)
	}

	var items []*model.ContentItem
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("error accessing path '%s' during walk: %w", path, walkErr)
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read file '%s': %w", path, err)
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %s: %w", path, err)
		}

		item, err := l.parse(rel, raw)
		if err != nil {
			return fmt.Errorf("failed to parse '%s': %w", path, err)
		}
		item.SourcePath = path
		item.ID = len(items) + 1
		items = append(items, item)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("error during content collection walk: %w", walkErr)
	}

	SortByDate(items)
	l.logger.Debug("content loaded", zap.String("dir", dir), zap.Int("items", len(items)))
	return items, nil
}

func (l *Loader) parse(rel string, raw []byte) (*model.ContentItem, error) {
	var fm map[string]interface{}
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		l.logger.Warn("no usable frontmatter, treating as pure markdown",
			zap.String("path", rel), zap.Error(err))
		body = raw
		fm = nil
	}
	if fm == nil {
		fm = make(map[string]interface{})
	}

	var buf bytes.Buffer
	if err := l.md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}

	item := &model.ContentItem{
		Title:        titleFor(rel, fm),
		Type:         typeFor(rel, fm),
		Permalink:    l.permalinkFor(rel, fm),
		ContentHTML:  template.HTML(buf.String()),
		Text:         PlainText(buf.String()),
		Frontmatter:  fm,
		Excerpt:      stringField(fm, "summary"),
		Thumbnail:    stringField(fm, "thumbnail"),
		Author:       stringField(fm, "author"),
		Layout:       stringField(fm, "layout"),
		Categories:   l.terms(rel, fm, "categories"),
		Tags:         l.terms(rel, fm, "tags"),
		CommentCount: intField(fm, "comment_count"),
		CommentsOpen: boolField(fm, "comments"),
		PingsOpen:    boolField(fm, "pings"),
	}
	if item.Excerpt == "" {
		item.Excerpt = Excerpt(item.Text, ExcerptWords)
	}
	if dateStr := stringField(fm, "date"); dateStr != "" {
		d, ok := parseDate(dateStr)
		if !ok {
			l.logger.Warn("could not parse date; use YYYY-MM-DD or RFC3339",
				zap.String("path", rel), zap.String("date", dateStr))
		}
		item.Date = d
	}
	return item, nil
}

// SortByDate orders items newest first. Undated items go last, keeping their order.
func SortByDate(items []*model.ContentItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date.IsZero() {
			return false
		}
		if items[j].Date.IsZero() {
			return true
		}
		return items[i].Date.After(items[j].Date)
	})
}

// PlainText returns the decoded text of an HTML fragment with whitespace collapsed.
func PlainText(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	var sb strings.Builder
	extractText(doc, &sb)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func extractText(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.Data {
		case "script", "style":
			return
		}
	}
	block := n.Type == html.ElementNode && !inlineElements[n.Data]
	if block {
		sb.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractText(c, sb)
	}
	if block {
		sb.WriteByte(' ')
	}
}

// Excerpt keeps the first n words of text, marking a cut with "[…]".
func Excerpt(text string, n int) string {
	words := strings.Fields(text)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ") + " […]"
}

func titleFor(rel string, fm map[string]interface{}) string {
	if t := stringField(fm, "title"); t != "" {
		return t
	}
	base := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return cases.Title(language.English).String(base)
}

func typeFor(rel string, fm map[string]interface{}) string {
	if t := stringField(fm, "type"); t != "" {
		return normalizeType(t)
	}
	parts := strings.Split(filepath.ToSlash(filepath.Dir(rel)), "/")
	if len(parts) > 0 && parts[0] != "." && parts[0] != "" {
		return normalizeType(parts[0])
	}
	return "page"
}

func normalizeType(t string) string {
	t = strings.ToLower(t)
	if alias, ok := typeAliases[t]; ok {
		return alias
	}
	return t
}

// permalinkFor is always rooted: ".." segments cannot climb above "/".
func (l *Loader) permalinkFor(rel string, fm map[string]interface{}) string {
	p := stringField(fm, "permalink")
	if p == "" {
		p = strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel))
	}
	clean := path.Clean("/" + strings.ReplaceAll(p, `\`, "/"))
	if strings.Contains(p, "..") {
		l.logger.Warn("permalink normalized", zap.String("path", rel),
			zap.String("permalink", p), zap.String("result", clean))
	}
	if clean == "/" {
		return "/"
	}
	return clean + "/"
}

// terms drops names that have no usable slug, since they could never get an archive.
func (l *Loader) terms(rel string, fm map[string]interface{}, key string) []string {
	names := listField(fm, key)
	out := names[:0]
	for _, name := range names {
		if model.Slug(name) == "" {
			l.logger.Warn("dropping term without a slug", zap.String("path", rel),
				zap.String("taxonomy", key), zap.String("term", name))
			continue
		}
		out = append(out, name)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func parseDate(s string) (time.Time, bool) {
	for _, format := range dateFormats {
		if d, err := time.Parse(format, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

func stringField(fm map[string]interface{}, key string) string {
	switch v := fm[key].(type) {
	case string:
		return v
	case time.Time:
		// YAML decodes unquoted dates as timestamps.
		return v.Format(time.RFC3339)
	}
	return ""
}

func listField(fm map[string]interface{}, key string) []string {
	switch v := fm[key].(type) {
	case string:
		return []string{v}
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func intField(fm map[string]interface{}, key string) int {
	switch v := fm[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func boolField(fm map[string]interface{}, key string) *bool {
	if v, ok := fm[key].(bool); ok {
		return &v
	}
	return nil
}
