package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hasanfardous/startup-wp/internal/config"
	"github.com/hasanfardous/startup-wp/internal/content"
	"github.com/hasanfardous/startup-wp/internal/site"
	"github.com/hasanfardous/startup-wp/internal/theme"
)

// project is one loaded snapshot: the theme, its renderer and the site it renders.
type project struct {
	startup  *theme.Startup
	renderer *theme.Renderer
	site     *site.Site
}

func loadProject(cfg config.Config, logger *zap.Logger) (*project, error) {
	manifest, err := config.LoadManifest(cfg.ManifestFile)
	if err != nil {
		return nil, err
	}
	startup := theme.NewStartup(config.NewTheme(cfg, manifest), logger)

	renderer, err := theme.NewRenderer(startup, cfg.ThemeDir, logger)
	if err != nil {
		return nil, err
	}

	items, err := content.NewLoader(logger).Load(cfg.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	widgets, err := site.LoadWidgets(cfg.WidgetsFile)
	if err != nil {
		return nil, err
	}

	logger.Info("project loaded",
		zap.String("theme", manifest.Name),
		zap.String("version", manifest.Version),
		zap.Int("items", len(items)))
	return &project{
		startup:  startup,
		renderer: renderer,
		site:     site.New(cfg, items, widgets),
	}, nil
}
