package cmd

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hasanfardous/startup-wp/internal/config"
	"github.com/hasanfardous/startup-wp/internal/feed"
	"github.com/hasanfardous/startup-wp/internal/model"
	"github.com/hasanfardous/startup-wp/internal/theme"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Renders every page of the site into the output directory",
	Long: `The build command loads Markdown from the content directory, resolves every
route (front page, posts, pages, attachments, term archives), renders each through
the theme and writes the result to the output directory (default './public/').
Static assets are copied alongside, plus a 404 page and an RSS feed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuildProcess(appConfig, logger)
	},
}

func runBuildProcess(cfg config.Config, logger *zap.Logger) error {
	p, err := loadProject(cfg, logger)
	if err != nil {
		return err
	}

	outputDir := cfg.OutputDir
	logger.Info("cleaning output directory", zap.String("dir", outputDir))
	if err := os.RemoveAll(outputDir); err != nil {
		return fmt.Errorf("failed to remove output directory '%s': %w", outputDir, err)
	}
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory '%s': %w", outputDir, err)
	}

	if _, err := os.Stat(cfg.StaticDir); err == nil {
		if err := copyDirContents(cfg.StaticDir, outputDir); err != nil {
			return fmt.Errorf("failed to copy static assets: %w", err)
		}
		logger.Info("static assets copied", zap.String("from", cfg.StaticDir))
	} else {
		logger.Info("static assets directory not found, skipping copy", zap.String("dir", cfg.StaticDir))
	}

	routes := p.site.Routes()
	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	for _, route := range routes {
		route := route
		g.Go(func() error {
			ctx := p.site.Resolve(route, nil)
			return writePage(p, ctx, filepath.Join(outputDir, filepath.FromSlash(route), "index.html"))
		})
	}
	g.Go(func() error {
		ctx := model.QueryContext{Kind: model.KindNotFound, Path: "/404/"}
		return writePage(p, ctx, filepath.Join(outputDir, "404.html"))
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if p.startup.Registry().Supports(theme.FeatureFeedLinks) {
		if err := writeFeeds(p, cfg, filepath.Join(outputDir, "feed")); err != nil {
			return err
		}
	}

	logger.Info("build completed", zap.Int("pages", len(routes)+1), zap.String("output", outputDir))
	return nil
}

func writePage(p *project, ctx model.QueryContext, outputPath string) error {
	var buf bytes.Buffer
	if err := p.renderer.Render(&buf, ctx, p.site); err != nil {
		return fmt.Errorf("failed to render '%s': %w", ctx.Path, err)
	}
	return writeFile(outputPath, buf.Bytes())
}

// writeFeeds writes the RSS feed to dir/index.xml and the Atom feed to dir/atom/index.xml.
func writeFeeds(p *project, cfg config.Config, dir string) error {
	meta := feedSite(cfg)
	var rss, atom bytes.Buffer
	if err := feed.Write(&rss, meta, p.site.Items()); err != nil {
		return err
	}
	if err := feed.WriteAtom(&atom, meta, p.site.Items()); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, "index.xml"), rss.Bytes()); err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, "atom", "index.xml"), atom.Bytes())
}

func feedSite(cfg config.Config) feed.Site {
	return feed.Site{Title: cfg.SiteTitle, BaseURL: cfg.BaseURL, Description: cfg.Tagline, Language: cfg.Language}
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for '%s': %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write '%s': %w", path, err)
	}
	return nil
}

// copyDirContents recursively copies contents from src to dst.
func copyDirContents(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %s: %w", path, err)
		}
		dstPath := filepath.Join(dst, relPath)

		if d.IsDir() {
			if err := os.MkdirAll(dstPath, os.ModePerm); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dstPath, err)
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		return copyFile(path, dstPath)
	})
}

func copyFile(srcFile, dstFile string) error {
	srcF, err := os.Open(srcFile)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", srcFile, err)
	}
	defer srcF.Close()

	dstF, err := os.Create(dstFile)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", dstFile, err)
	}
	defer dstF.Close()

	if _, err := io.Copy(dstF, srcF); err != nil {
		return fmt.Errorf("failed to copy data from %s to %s: %w", srcFile, dstFile, err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
