package config

import "strings"

const defaultContentWidth = 640

// Theme is the read-only configuration every render receives. It is built once
// at startup and never mutated afterwards.
type Theme struct {
	Name          string
	TextDomain    string
	Version       string
	TemplateDir   string
	CSSDir        string
	JSDir         string
	ImgDir        string
	StylesheetURI string
	ContentWidth  int
	Site          Config
}

// NewTheme derives the theme's asset URLs and content width from the site config.
func NewTheme(cfg Config, m Manifest) *Theme {
	base := strings.TrimSuffix(cfg.BaseURL, "/")
	width := defaultContentWidth
	if cfg.ContentWidth > 0 {
		width = cfg.ContentWidth
	}
	return &Theme{
		Name:          m.Name,
		TextDomain:    m.TextDomain,
		Version:       m.Version,
		TemplateDir:   base,
		CSSDir:        base + "/css",
		JSDir:         base + "/js",
		ImgDir:        base + "/img",
		StylesheetURI: base + "/style.css",
		ContentWidth:  width,
		Site:          cfg,
	}
}

// RTL reports whether the site language is written right to left.
func (t *Theme) RTL() bool {
	return strings.EqualFold(t.Site.TextDirection, "rtl")
}
