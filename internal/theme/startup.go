package theme

import (
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/hasanfardous/startup-wp/internal/config"
	"github.com/hasanfardous/startup-wp/internal/model"
)

// Registered names.
const (
	MenuPrimary = "menu-1"
	SidebarID   = "sidebar-1"

	handleCommentReply = "comment-reply"
	handleJQuery       = "jquery"
)

// Host is what the theme consumes from the site it renders.
type Host interface {
	BaseBodyClasses(ctx model.QueryContext) []string
	CommentsOpen(item *model.ContentItem) bool
	PingsOpen(item *model.ContentItem) bool
	ThreadedComments() bool
	IsActiveSidebar(id string) bool
	Widgets(id string) []model.Widget
	MenuItems(location string) ([]model.MenuItem, bool)
	Pages() []*model.ContentItem
	Sliders() []*model.ContentItem
}

// Request is the per-render state the request stages fill in.
type Request struct {
	Ctx      model.QueryContext
	Host     Host
	Theme    *config.Theme
	Registry *Registry
	Assets   *Queue
	Classes  []string
	head     []template.HTML
}

// AddHead appends markup to the document head, after styles and head scripts.
func (r *Request) AddHead(h template.HTML) {
	r.head = append(r.head, h)
}

// Startup is the theme: its bootstrap declarations plus the handlers each request runs.
type Startup struct {
	theme    *config.Theme
	registry *Registry
	boot     Pipeline[*Registry]
	request  Pipeline[*Request]
	logger   *zap.Logger
}

// NewStartup wires the theme's handlers and runs the bootstrap stages once.
func NewStartup(th *config.Theme, logger *zap.Logger) *Startup {
	s := &Startup{
		theme:    th,
		registry: NewRegistry(),
		logger:   logger,
	}

	s.boot.Add(StageSetup, setupFeatures)
	s.boot.Add(StageWidgetsInit, registerWidgetAreas)

	s.request.Add(StageEnqueueScripts, enqueueAssets)
	s.request.AddAt(StageHead, 2, feedLinks)
	s.request.Add(StageHead, pingbackHeader)
	s.request.Add(StageHead, customBackgroundCSS)
	s.request.Add(StageBodyClass, bodyClassFilter)

	s.boot.RunAll(s.registry, StageSetup, StageWidgetsInit)
	logger.Debug("theme bootstrapped",
		zap.String("theme", th.Name),
		zap.String("version", th.Version),
		zap.Strings("features", s.registry.Features()))
	return s
}

func (s *Startup) Registry() *Registry { return s.registry }

func (s *Startup) Theme() *config.Theme { return s.theme }

// Prepare runs the request stages for ctx in their fixed order.
func (s *Startup) Prepare(ctx model.QueryContext, host Host) *Request {
	req := &Request{
		Ctx:      ctx,
		Host:     host,
		Theme:    s.theme,
		Registry: s.registry,
		Assets:   NewQueue(s.theme.RTL(), s.logger),
		Classes:  host.BaseBodyClasses(ctx),
	}
	registerHostScripts(req.Assets, s.theme)
	s.request.RunAll(req, StageEnqueueScripts, StageHead, StageBodyClass)
	return req
}

// HeadHTML is everything that goes before </head>: styles, head scripts, then extras.
func (r *Request) HeadHTML() template.HTML {
	var b strings.Builder
	b.WriteString(string(StyleTags(r.Assets.Styles())))
	b.WriteString(string(ScriptTags(r.Assets.HeadScripts())))
	for _, h := range r.head {
		b.WriteString(string(h))
		b.WriteByte('\n')
	}
	return template.HTML(b.String())
}

// FooterHTML is everything that goes before </body>.
func (r *Request) FooterHTML() template.HTML {
	return ScriptTags(r.Assets.FooterScripts())
}

func setupFeatures(r *Registry) {
	r.AddSupport(FeatureFeedLinks)
	r.AddSupport(FeatureTitleTag)
	r.AddSupport(FeatureThumbnails)
	r.RegisterMenuLocation(MenuPrimary, "Primary")
	r.AddSupport(FeatureHTML5, Options{
		"search-form":  true,
		"comment-form": true,
		"comment-list": true,
		"gallery":      true,
		"caption":      true,
		"style":        true,
		"script":       true,
	})
	r.AddSupport(FeatureCustomBackground, Options{
		"default-color": "ffffff",
		"default-image": "",
	})
	r.AddSupport(FeatureSelectiveRefresh)
	r.AddSupport(FeatureCustomLogo, Options{
		"height":      250,
		"width":       250,
		"flex-width":  true,
		"flex-height": true,
	})
}

func registerWidgetAreas(r *Registry) {
	r.RegisterWidgetArea(WidgetArea{
		ID:           SidebarID,
		Name:         "Sidebar",
		Description:  "Add widgets here.",
		BeforeWidget: `<section id="%[1]s" class="widget %[2]s">`,
		AfterWidget:  `</section>`,
		BeforeTitle:  `<h2 class="widget-title">`,
		AfterTitle:   `</h2>`,
	})
}

// registerHostScripts makes the host-provided handles known so theme scripts can depend on them.
func registerHostScripts(q *Queue, th *config.Theme) {
	scripts := th.Site.Scripts
	q.RegisterScript(handleJQuery, scripts[handleJQuery], nil, "", false)
	reply := scripts[handleCommentReply]
	if reply == "" {
		reply = th.JSDir + "/comment-reply.min.js"
	}
	q.RegisterScript(handleCommentReply, reply, nil, th.Version, true)
}

var themeStyles = []struct{ handle, file string }{
	{"startup_wp-font-awesome", "font-awesome.min.css"},
	{"startup_wp-owl-carousel", "owl.carousel.min.css"},
	{"startup_wp-animate-css", "animate.min.css"},
	{"startup_wp-bootstrap-css", "bootstrap.min.css"},
	{"startup_wp-style-css", "style.css"},
}

var themeScripts = []struct{ handle, file string }{
	{"startup_wp_bootstrap-js", "bootstrap.bundle.min.js"},
	{"startup_wp_wow-js", "wow.min.js"},
	{"startup_wp_waypoint-js", "waypoints.min.js"},
	{"startup_wp_counterup-js", "counterup.min.js"},
	{"startup_wp_owl-carousel-js", "owl.carousel.min.js"},
	{"startup_wp-navigation", "navigation.js"},
	{"startup_wp-main-js", "main.js"},
}

func enqueueAssets(r *Request) {
	th := r.Theme
	for _, st := range themeStyles {
		r.Assets.EnqueueStyle(st.handle, th.CSSDir+"/"+st.file, nil, th.Version)
	}
	r.Assets.EnqueueStyle("startup_wp-style", th.StylesheetURI, nil, th.Version)
	r.Assets.AddData("startup_wp-style", "rtl", "replace")

	for _, sc := range themeScripts {
		r.Assets.EnqueueScript(sc.handle, th.JSDir+"/"+sc.file, []string{handleJQuery}, th.Version, true)
	}

	item := r.Ctx.Item()
	if NeedsCommentReply(r.Ctx.IsSingular(), r.Host.CommentsOpen(item), r.Host.ThreadedComments()) {
		r.Assets.Enqueue(handleCommentReply)
	}
}

func feedLinks(r *Request) {
	if !r.Registry.Supports(FeatureFeedLinks) {
		return
	}
	base := strings.TrimSuffix(r.Theme.Site.BaseURL, "/")
	r.AddHead(template.HTML(fmt.Sprintf(
		`<link rel="alternate" type="application/rss+xml" title="%s &raquo; Feed" href="%s/feed/">`,
		template.HTMLEscapeString(r.Theme.Site.SiteTitle), template.HTMLEscapeString(base))))
}

func pingbackHeader(r *Request) {
	if r.Ctx.IsSingular() && r.Host.PingsOpen(r.Ctx.Item()) {
		r.AddHead(template.HTML(fmt.Sprintf(`<link rel="pingback" href="%s">`,
			template.HTMLEscapeString(r.Theme.Site.PingbackURL))))
	}
}

var (
	hexColor = regexp.MustCompile(`^[0-9a-fA-F]{3}([0-9a-fA-F]{3})?$`)
	cssURL   = strings.NewReplacer(`"`, "%22", "(", "%28", ")", "%29", "<", "%3C", ">", "%3E", `\`, "%5C")
)

// customBackground returns the background that differs from the theme default, if any.
func customBackground(r *Request) (color, image string, ok bool) {
	if !r.Registry.Supports(FeatureCustomBackground) {
		return "", "", false
	}
	opts := r.Registry.SupportOptions(FeatureCustomBackground)
	bg := r.Theme.Site.CustomBackground
	color = strings.TrimPrefix(bg.Color, "#")
	if color == fmt.Sprint(opts["default-color"]) || !hexColor.MatchString(color) {
		color = ""
	}
	image = bg.Image
	if image == fmt.Sprint(opts["default-image"]) {
		image = ""
	}
	return color, image, color != "" || image != ""
}

func customBackgroundCSS(r *Request) {
	color, image, ok := customBackground(r)
	if !ok {
		return
	}
	var rules []string
	if color != "" {
		rules = append(rules, "background-color: #"+color+";")
	}
	if image != "" {
		rules = append(rules, fmt.Sprintf(`background-image: url("%s");`, cssURL.Replace(image)))
	}
	r.AddHead(template.HTML(`<style id="custom-background-css">body.custom-background { ` +
		strings.Join(rules, " ") + ` }</style>`))
}

func bodyClassFilter(r *Request) {
	r.Classes = BodyClasses(r.Classes, r.Ctx.IsSingular(), r.Host.IsActiveSidebar(SidebarID))
	if r.Registry.Supports(FeatureCustomLogo) && r.Theme.Site.CustomLogo != "" {
		r.Classes = appendClass(r.Classes, "wp-custom-logo")
	}
	if _, _, ok := customBackground(r); ok {
		r.Classes = appendClass(r.Classes, "custom-background")
	}
}
