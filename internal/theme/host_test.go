package theme

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/hasanfardous/startup-wp/internal/config"
	"github.com/hasanfardous/startup-wp/internal/model"
)

type fakeHost struct {
	commentsOpen bool
	pingsOpen    bool
	threaded     bool
	widgets      []model.Widget
	menu         []model.MenuItem
	pages        []*model.ContentItem
	sliders      []*model.ContentItem
}

func (h *fakeHost) BaseBodyClasses(ctx model.QueryContext) []string {
	if ctx.IsSingular() {
		return []string{"single"}
	}
	return []string{"archive"}
}

func (h *fakeHost) CommentsOpen(*model.ContentItem) bool { return h.commentsOpen }
func (h *fakeHost) PingsOpen(*model.ContentItem) bool    { return h.pingsOpen }
func (h *fakeHost) ThreadedComments() bool               { return h.threaded }
func (h *fakeHost) IsActiveSidebar(string) bool          { return len(h.widgets) > 0 }
func (h *fakeHost) Widgets(string) []model.Widget        { return h.widgets }
func (h *fakeHost) Pages() []*model.ContentItem          { return h.pages }
func (h *fakeHost) Sliders() []*model.ContentItem        { return h.sliders }

func (h *fakeHost) MenuItems(string) ([]model.MenuItem, bool) {
	return h.menu, len(h.menu) > 0
}

func testTheme(cfg config.Config) *config.Theme {
	if cfg.SiteTitle == "" {
		cfg.SiteTitle = "Startup"
	}
	if cfg.PingbackURL == "" {
		cfg.PingbackURL = "/xmlrpc.php"
	}
	cfg.Scripts = map[string]string{"jquery": "/jquery.js"}
	return config.NewTheme(cfg, config.Manifest{Name: "Startup WP", Version: "1.0.0"})
}

func newTestStartup(t *testing.T, cfg config.Config) *Startup {
	t.Helper()
	return NewStartup(testTheme(cfg), zaptest.NewLogger(t))
}

func singular(item *model.ContentItem) model.QueryContext {
	return model.QueryContext{Kind: model.KindSingular, Items: []*model.ContentItem{item}}
}
