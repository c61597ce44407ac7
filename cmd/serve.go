package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hasanfardous/startup-wp/internal/config"
	"github.com/hasanfardous/startup-wp/internal/feed"
	"github.com/hasanfardous/startup-wp/internal/model"
	"github.com/hasanfardous/startup-wp/internal/theme"
)

var serverPort int

const reloadDebounce = 500 * time.Millisecond

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site locally and reloads on changes",
	Long: `The serve command loads the site and renders each request on the fly, including
search queries (?s=...). It watches the content, theme and static directories and
swaps in a freshly loaded site after every change.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := newServer(appConfig, logger)
		if err != nil {
			return fmt.Errorf("initial load failed: %w", err)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create file watcher: %w", err)
		}
		defer watcher.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		for _, dir := range []string{appConfig.ContentDir, appConfig.ThemeDir, appConfig.StaticDir} {
			watchTree(watcher, dir, logger)
		}
		go srv.watch(ctx, watcher)

		httpServer := &http.Server{
			Addr:              fmt.Sprintf(":%d", serverPort),
			Handler:           srv,
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = httpServer.Shutdown(shutdownCtx)
		}()

		logger.Info("serving site", zap.String("addr", "http://localhost"+httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	},
}

// server renders requests against the current project snapshot.
type server struct {
	cfg      config.Config
	logger   *zap.Logger
	current  atomic.Pointer[project]
	reloadMu sync.Mutex
}

func newServer(cfg config.Config, logger *zap.Logger) (*server, error) {
	s := &server{cfg: cfg, logger: logger}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// reload loads a new snapshot. On failure the previous one keeps serving.
// Reloads run one at a time so a slow, older load never replaces a newer one.
func (s *server) reload() error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	p, err := loadProject(s.cfg, s.logger)
	if err != nil {
		return err
	}
	s.current.Store(p)
	return nil
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	if s.serveStatic(w, r) {
		return
	}

	p := s.current.Load()
	switch strings.TrimSuffix(r.URL.Path, "/") {
	case "/feed":
		s.serveFeed(w, r, p, feed.Write, "application/rss+xml")
		return
	case "/feed/atom":
		s.serveFeed(w, r, p, feed.WriteAtom, "application/atom+xml")
		return
	}

	ctx := p.site.Resolve(r.URL.Path, r.URL.Query())
	var buf bytes.Buffer
	if err := p.renderer.Render(&buf, ctx, p.site); err != nil {
		s.logger.Error("render failed", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset="+strings.ToLower(s.cfg.Charset))
	if ctx.Kind == model.KindNotFound {
		w.WriteHeader(http.StatusNotFound)
	}
	_, _ = w.Write(buf.Bytes())
}

// serveStatic serves a regular file under the static directory when one matches the path.
func (s *server) serveStatic(w http.ResponseWriter, r *http.Request) bool {
	if s.cfg.StaticDir == "" || strings.HasSuffix(r.URL.Path, "/") {
		return false
	}
	name := filepath.Join(s.cfg.StaticDir, filepath.FromSlash(filepath.Clean("/"+r.URL.Path)))
	info, err := os.Stat(name)
	if err != nil || info.IsDir() {
		return false
	}
	http.ServeFile(w, r, name)
	return true
}

type feedWriter func(io.Writer, feed.Site, []*model.ContentItem) error

func (s *server) serveFeed(w http.ResponseWriter, r *http.Request, p *project, write feedWriter, contentType string) {
	if !p.startup.Registry().Supports(theme.FeatureFeedLinks) {
		http.NotFound(w, r)
		return
	}
	var buf bytes.Buffer
	if err := write(&buf, feedSite(s.cfg), p.site.Items()); err != nil {
		s.logger.Error("feed failed", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType+"; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// watch reloads the project after a burst of filesystem events settles.
func (s *server) watch(ctx context.Context, watcher *fsnotify.Watcher) {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			s.logger.Debug("change detected", zap.String("file", event.Name), zap.String("op", event.Op.String()))
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := watcher.Add(event.Name); err != nil {
					s.logger.Warn("failed to watch new directory", zap.String("dir", event.Name), zap.Error(err))
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, func() {
				if err := s.reload(); err != nil {
					s.logger.Error("reload failed, keeping previous site", zap.Error(err))
					return
				}
				s.logger.Info("site reloaded")
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

// watchTree adds root and every directory below it. fsnotify does not recurse.
func watchTree(watcher *fsnotify.Watcher, root string, logger *zap.Logger) {
	if root == "" || !isDir(root) {
		logger.Debug("directory not found, not watching", zap.String("dir", root))
		return
	}
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			logger.Warn("error walking directory", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				logger.Warn("failed to watch directory", zap.String("dir", path), zap.Error(err))
			}
		}
		return nil
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 1313, "Port to serve the site on")
	rootCmd.AddCommand(serveCmd)
}
