package config

import "github.com/hasanfardous/startup-wp/internal/model"

// Config is the decoded site configuration (config.yaml, STARTUP_* env, defaults).
type Config struct {
	SiteTitle     string `mapstructure:"siteTitle"`
	Tagline       string `mapstructure:"tagline"`
	OutputDir     string `mapstructure:"outputDir"`
	BaseURL       string `mapstructure:"baseURL"`
	Language      string `mapstructure:"language"`
	Charset       string `mapstructure:"charset"`
	TextDirection string `mapstructure:"textDirection"`

	ContentDir   string `mapstructure:"contentDir"`
	ThemeDir     string `mapstructure:"themeDir"`
	StaticDir    string `mapstructure:"staticDir"`
	WidgetsFile  string `mapstructure:"widgetsFile"`
	ManifestFile string `mapstructure:"manifestFile"`

	ContentWidth   int    `mapstructure:"contentWidth"`
	ThreadComments bool   `mapstructure:"threadComments"`
	CommentsOpen   bool   `mapstructure:"commentsOpen"`
	PingsOpen      bool   `mapstructure:"pingsOpen"`
	PingbackURL    string `mapstructure:"pingbackURL"`

	CustomLogo       string           `mapstructure:"customLogo"`
	CustomBackground CustomBackground `mapstructure:"customBackground"`

	// Menus maps a menu location to its assigned items.
	Menus map[string][]model.MenuItem `mapstructure:"menus"`
	// Scripts maps host-provided script handles (jquery, comment-reply) to URLs.
	Scripts map[string]string `mapstructure:"scripts"`
}

// CustomBackground holds the user's background choice. Empty fields mean "theme default".
type CustomBackground struct {
	Color string `mapstructure:"color"`
	Image string `mapstructure:"image"`
}

// Defaults lists the values viper falls back to.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"siteTitle":      "Startup",
		"tagline":        "",
		"outputDir":      "public",
		"baseURL":        "",
		"language":       "en-US",
		"charset":        "UTF-8",
		"textDirection":  "ltr",
		"contentDir":     "content",
		"themeDir":       "layouts",
		"staticDir":      "static",
		"widgetsFile":    "widgets.yaml",
		"manifestFile":   "theme.toml",
		"contentWidth":   0,
		"threadComments": true,
		"commentsOpen":   true,
		"pingsOpen":      true,
		"pingbackURL":    "/xmlrpc.php",
		"scripts.jquery": "https://code.jquery.com/jquery-3.7.1.min.js",
	}
}
