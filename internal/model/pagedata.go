package model

import "html/template"

// PageData is the view model the page-level templates (header, sidebar, footer) receive.
type PageData struct {
	SiteTitle    string
	Tagline      string
	HomeURL      string
	Language     string
	Charset      string
	Direction    string
	DocTitle     string
	ArchiveTitle string
	BodyClass    string
	Head         template.HTML
	Footer       template.HTML
	Context      QueryContext

	Menu     []MenuItem
	MenuID   string
	Logo     *Logo
	Sliders  []*ContentItem
	Sidebar  []SidebarWidget
	Features map[string]bool

	HTML5SearchForm bool
	ContentWidth    int
}

// ItemData is what a content partial receives: one item plus its page.
type ItemData struct {
	Page         *PageData
	Item         *ContentItem
	CommentsOpen bool
	ShowMeta     bool
}

// Logo is the custom logo image shown in the header.
type Logo struct {
	URL    string
	Width  int
	Height int
}

// SidebarWidget is a widget with its area's wrappers already applied.
type SidebarWidget struct {
	Widget
	Before      template.HTML
	After       template.HTML
	BeforeTitle template.HTML
	AfterTitle  template.HTML
}
