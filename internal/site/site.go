// Package site is the host the theme renders against: it owns the loaded
// content, resolves request paths to query contexts and answers the
// conditional predicates templates ask about.
package site

import (
	"net/url"
	"sort"
	"strings"

	"github.com/hasanfardous/startup-wp/internal/config"
	"github.com/hasanfardous/startup-wp/internal/model"
)

// Taxonomy archive bases.
const (
	CategoryBase = "category"
	TagBase      = "tag"
)

// Site is an immutable snapshot of everything one render needs. Safe for
// concurrent readers; rebuild a new Site instead of mutating one.
type Site struct {
	cfg     config.Config
	items   []*model.ContentItem
	byLink  map[string]*model.ContentItem
	widgets map[string][]model.Widget
	menus   map[string][]model.MenuItem
}

// New builds a site from loaded items. widgets maps a widget area id to its instances.
func New(cfg config.Config, items []*model.ContentItem, widgets map[string][]model.Widget) *Site {
	s := &Site{
		cfg:     cfg,
		items:   items,
		byLink:  make(map[string]*model.ContentItem, len(items)),
		widgets: widgets,
		menus:   cfg.Menus,
	}
	for _, it := range items {
		if !routable(it) {
			continue
		}
		if _, dup := s.byLink[it.Permalink]; !dup {
			s.byLink[it.Permalink] = it
		}
	}
	return s
}

// Config returns the site configuration the snapshot was built with.
func (s *Site) Config() config.Config { return s.cfg }

// Items returns every loaded item, newest first.
func (s *Site) Items() []*model.ContentItem { return s.items }

// Resolve classifies a request path (plus query string) into a query context.
func (s *Site) Resolve(path string, query url.Values) model.QueryContext {
	path = normalizePath(path)
	ctx := model.QueryContext{Path: path}

	if q, ok := query["s"]; ok {
		ctx.Kind = model.KindSearch
		ctx.SearchQuery = strings.TrimSpace(strings.Join(q, " "))
		ctx.Items = s.Search(ctx.SearchQuery)
		return ctx
	}

	if path == "/" {
		ctx.Kind = model.KindArchive
		ctx.FrontPage = true
		ctx.Items = s.Posts()
		return ctx
	}

	if taxonomy, term, ok := splitTermPath(path); ok {
		items := s.byTerm(taxonomy, term)
		if len(items) > 0 {
			ctx.Kind = model.KindArchive
			ctx.Taxonomy = taxonomy
			ctx.Term = term
			ctx.Items = items
			return ctx
		}
	}

	if it, ok := s.byLink[path]; ok {
		ctx.Kind = model.KindSingular
		if it.Type == "attachment" {
			ctx.Kind = model.KindAttachment
		}
		ctx.Items = []*model.ContentItem{it}
		return ctx
	}

	ctx.Kind = model.KindNotFound
	return ctx
}

// Posts returns items of type post, newest first.
func (s *Site) Posts() []*model.ContentItem {
	return s.ofType("post")
}

// Pages returns items of type page ordered by title.
func (s *Site) Pages() []*model.ContentItem {
	pages := s.ofType("page")
	sort.SliceStable(pages, func(i, j int) bool { return pages[i].Title < pages[j].Title })
	return pages
}

// Sliders returns slider items oldest first.
func (s *Site) Sliders() []*model.ContentItem {
	sliders := s.ofType("slider")
	sort.SliceStable(sliders, func(i, j int) bool { return sliders[i].Date.Before(sliders[j].Date) })
	return sliders
}

// Search matches posts and pages whose title or body contains every word of q.
func (s *Site) Search(q string) []*model.ContentItem {
	words := strings.Fields(strings.ToLower(q))
	var out []*model.ContentItem
	for _, it := range s.items {
		if it.Type != "post" && it.Type != "page" {
			continue
		}
		hay := strings.ToLower(it.Title + " " + it.Text)
		matched := true
		for _, w := range words {
			if !strings.Contains(hay, w) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, it)
		}
	}
	return out
}

// Routes lists every path a static build should render.
func (s *Site) Routes() []string {
	routes := []string{"/"}
	for _, it := range s.items {
		if routable(it) && s.byLink[it.Permalink] == it && it.Permalink != "/" {
			routes = append(routes, it.Permalink)
		}
	}
	for _, tax := range []string{CategoryBase, TagBase} {
		for _, term := range s.terms(tax) {
			routes = append(routes, model.TermLink(tax, term))
		}
	}
	return routes
}

// CommentsOpen reports whether the item accepts comments, falling back to the site default.
func (s *Site) CommentsOpen(it *model.ContentItem) bool {
	if it == nil {
		return false
	}
	if it.CommentsOpen != nil {
		return *it.CommentsOpen
	}
	return s.cfg.CommentsOpen
}

// PingsOpen reports whether the item accepts pingbacks, falling back to the site default.
func (s *Site) PingsOpen(it *model.ContentItem) bool {
	if it == nil {
		return false
	}
	if it.PingsOpen != nil {
		return *it.PingsOpen
	}
	return s.cfg.PingsOpen
}

// ThreadedComments reports the site-wide threaded comments option.
func (s *Site) ThreadedComments() bool { return s.cfg.ThreadComments }

// IsActiveSidebar reports whether the widget area holds at least one widget.
func (s *Site) IsActiveSidebar(id string) bool { return len(s.widgets[id]) > 0 }

// Widgets returns the widgets placed in an area.
func (s *Site) Widgets(id string) []model.Widget { return s.widgets[id] }

// MenuItems returns the menu assigned to a location; ok is false when none is assigned.
func (s *Site) MenuItems(location string) ([]model.MenuItem, bool) {
	items, ok := s.menus[location]
	return items, ok && len(items) > 0
}

func (s *Site) ofType(t string) []*model.ContentItem {
	var out []*model.ContentItem
	for _, it := range s.items {
		if it.Type == t {
			out = append(out, it)
		}
	}
	return out
}

func (s *Site) termsOf(it *model.ContentItem, taxonomy string) []string {
	if taxonomy == CategoryBase {
		return it.Categories
	}
	return it.Tags
}

func (s *Site) byTerm(taxonomy, slug string) []*model.ContentItem {
	var out []*model.ContentItem
	for _, it := range s.Posts() {
		for _, term := range s.termsOf(it, taxonomy) {
			if model.Slug(term) == slug {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

func (s *Site) terms(taxonomy string) []string {
	seen := map[string]bool{}
	var out []string
	for _, it := range s.Posts() {
		for _, term := range s.termsOf(it, taxonomy) {
			slug := model.Slug(term)
			if slug == "" || seen[slug] {
				continue
			}
			seen[slug] = true
			out = append(out, term)
		}
	}
	sort.Strings(out)
	return out
}

func routable(it *model.ContentItem) bool {
	return it.Type != "slider"
}

func splitTermPath(path string) (taxonomy, term string, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 {
		return "", "", false
	}
	if parts[0] != CategoryBase && parts[0] != TagBase {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	p = strings.TrimSuffix(p, "index.html")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}
