package theme

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hasanfardous/startup-wp/internal/model"
)

//go:embed templates/*.html
var defaultTemplates embed.FS

// Page regions rendered around the content loop, in order.
const (
	regionHeader  = "header"
	regionSidebar = "sidebar"
	regionFooter  = "footer"
)

// Renderer assembles pages from the theme's template partials.
type Renderer struct {
	startup *Startup
	tpl     *template.Template
	logger  *zap.Logger
}

// NewRenderer parses the built-in templates, then any .html files under
// overrideDir, which replace built-ins of the same name.
func NewRenderer(s *Startup, overrideDir string, logger *zap.Logger) (*Renderer, error) {
	tpl, err := template.New("theme").Funcs(funcMap()).ParseFS(defaultTemplates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse built-in templates: %w", err)
	}

	if overrideDir != "" {
		overrides, err := findLayouts(overrideDir)
		if err != nil {
			return nil, err
		}
		if len(overrides) > 0 {
			if tpl, err = tpl.ParseFiles(overrides...); err != nil {
				return nil, fmt.Errorf("failed to parse layout overrides in '%s': %w", overrideDir, err)
			}
			logger.Info("layout overrides loaded", zap.String("dir", overrideDir), zap.Int("files", len(overrides)))
		}
	}

	return &Renderer{startup: s, tpl: tpl, logger: logger}, nil
}

func findLayouts(dir string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find layout files in '%s': %w", dir, err)
	}
	return files, nil
}

// HasPartial reports whether a template for p exists.
func (r *Renderer) HasPartial(p Partial) bool {
	return r.tpl.Lookup(string(p)+".html") != nil
}

// Render writes the full page for ctx: header, one partial per item (or the
// no-results partial), the sidebar when it has widgets, then the footer.
func (r *Renderer) Render(w io.Writer, ctx model.QueryContext, host Host) error {
	req := r.startup.Prepare(ctx, host)
	page := r.pageData(req)

	var buf bytes.Buffer
	if err := r.exec(&buf, regionHeader, page); err != nil {
		return err
	}
	if len(ctx.Items) == 0 {
		if err := r.exec(&buf, string(PartialNone), &model.ItemData{Page: page}); err != nil {
			return err
		}
	}
	for _, item := range ctx.Items {
		partial := PartialFor(ctx, item, r.HasPartial)
		if item.Layout != "" && partial != Partial(item.Layout) {
			r.logger.Warn("item layout not usable, using default",
				zap.String("permalink", item.Permalink),
				zap.String("layout", item.Layout),
				zap.String("partial", string(partial)))
		}
		data := &model.ItemData{
			Page:         page,
			Item:         item,
			CommentsOpen: host.CommentsOpen(item),
			ShowMeta:     item.Type == "post",
		}
		if err := r.exec(&buf, string(partial), data); err != nil {
			return err
		}
	}
	if host.IsActiveSidebar(SidebarID) {
		if err := r.exec(&buf, regionSidebar, page); err != nil {
			return err
		}
	}
	if err := r.exec(&buf, regionFooter, page); err != nil {
		return err
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func (r *Renderer) exec(w io.Writer, name string, data interface{}) error {
	if err := r.tpl.ExecuteTemplate(w, name+".html", data); err != nil {
		return fmt.Errorf("failed to execute template '%s': %w", name, err)
	}
	return nil
}

// pageData gathers everything the templates read, so rendering itself never
// calls back into the host.
func (r *Renderer) pageData(req *Request) *model.PageData {
	th := req.Theme
	cfg := th.Site
	reg := req.Registry

	page := &model.PageData{
		SiteTitle:    cfg.SiteTitle,
		Tagline:      cfg.Tagline,
		HomeURL:      strings.TrimSuffix(cfg.BaseURL, "/") + "/",
		Language:     cfg.Language,
		Charset:      cfg.Charset,
		Direction:    cfg.TextDirection,
		BodyClass:    strings.Join(req.Classes, " "),
		Head:         req.HeadHTML(),
		Footer:       req.FooterHTML(),
		Context:      req.Ctx,
		MenuID:       "primary-menu",
		Sliders:      req.Host.Sliders(),
		Features:     make(map[string]bool),
		ContentWidth: th.ContentWidth,
	}
	for _, f := range reg.Features() {
		page.Features[f] = true
	}
	if reg.Supports(FeatureTitleTag) {
		page.DocTitle = DocumentTitle(req.Ctx, cfg.SiteTitle, cfg.Tagline)
	}
	if opts := reg.SupportOptions(FeatureHTML5); opts != nil {
		page.HTML5SearchForm = opts["search-form"] == true
	}

	page.ArchiveTitle = ArchiveTitle(req.Ctx)
	page.Menu = r.menu(req)
	page.Logo = customLogo(req)

	if area, ok := reg.WidgetArea(SidebarID); ok {
		for _, w := range req.Host.Widgets(SidebarID) {
			page.Sidebar = append(page.Sidebar, wrapWidget(area, w))
		}
	}
	return page
}

// menu returns the assigned primary menu, or a list of pages when none is assigned.
func (r *Renderer) menu(req *Request) []model.MenuItem {
	if items, ok := req.Host.MenuItems(MenuPrimary); ok {
		return items
	}
	var fallback []model.MenuItem
	for _, p := range req.Host.Pages() {
		fallback = append(fallback, model.MenuItem{Title: p.Title, URL: p.Permalink})
	}
	return fallback
}

func customLogo(req *Request) *model.Logo {
	if !req.Registry.Supports(FeatureCustomLogo) || req.Theme.Site.CustomLogo == "" {
		return nil
	}
	opts := req.Registry.SupportOptions(FeatureCustomLogo)
	logo := &model.Logo{URL: req.Theme.Site.CustomLogo}
	if w, ok := opts["width"].(int); ok {
		logo.Width = w
	}
	if h, ok := opts["height"].(int); ok {
		logo.Height = h
	}
	return logo
}

func wrapWidget(area WidgetArea, w model.Widget) model.SidebarWidget {
	esc := template.HTMLEscapeString
	return model.SidebarWidget{
		Widget:      w,
		Before:      template.HTML(fmt.Sprintf(area.BeforeWidget, esc(w.ID), esc("widget_"+w.Type))),
		After:       template.HTML(area.AfterWidget),
		BeforeTitle: template.HTML(area.BeforeTitle),
		AfterTitle:  template.HTML(area.AfterTitle),
	}
}

// DocumentTitle builds the <title> text for a context.
func DocumentTitle(ctx model.QueryContext, siteTitle, tagline string) string {
	const sep = " – "
	switch ctx.Kind {
	case model.KindArchive:
		if ctx.FrontPage {
			if tagline != "" {
				return siteTitle + sep + tagline
			}
			return siteTitle
		}
		if ctx.Term != "" {
			return termName(ctx) + sep + siteTitle
		}
	case model.KindSearch:
		return fmt.Sprintf("Search Results for “%s”%s%s", ctx.SearchQuery, sep, siteTitle)
	case model.KindNotFound:
		return "Page not found" + sep + siteTitle
	case model.KindSingular, model.KindAttachment:
		if it := ctx.Item(); it != nil {
			return it.Title + sep + siteTitle
		}
	}
	return siteTitle
}

// ArchiveTitle is the heading of a term archive or a non-empty search, else "".
func ArchiveTitle(ctx model.QueryContext) string {
	switch {
	case ctx.Kind == model.KindSearch && len(ctx.Items) > 0:
		return fmt.Sprintf("Search Results for: %s", ctx.SearchQuery)
	case ctx.Kind == model.KindArchive && ctx.Taxonomy == "category":
		return "Category: " + termName(ctx)
	case ctx.Kind == model.KindArchive && ctx.Taxonomy == "tag":
		return "Tag: " + termName(ctx)
	}
	return ""
}

// termName recovers the display name of the archive's term from its items.
func termName(ctx model.QueryContext) string {
	for _, it := range ctx.Items {
		terms := it.Tags
		if ctx.Taxonomy == "category" {
			terms = it.Categories
		}
		for _, t := range terms {
			if model.Slug(t) == ctx.Term {
				return t
			}
		}
	}
	return ctx.Term
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"safe": func(s string) template.HTML { return template.HTML(s) },
		"isoDate": func(t time.Time) string {
			return t.Format(time.RFC3339)
		},
		"humanDate": func(t time.Time) string {
			return t.Format("January 2, 2006")
		},
		"termLink": model.TermLink,
		"commentsLabel": func(n int) string {
			switch n {
			case 0:
				return "Leave a Comment"
			case 1:
				return "1 Comment"
			default:
				return fmt.Sprintf("%d Comments", n)
			}
		},
	}
}
