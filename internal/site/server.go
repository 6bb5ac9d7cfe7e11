// Package site serves the portfolio and blog over HTTP.
package site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/consultorvarela/portfolio/internal/analytics"
	"github.com/consultorvarela/portfolio/internal/blog"
	"github.com/consultorvarela/portfolio/internal/config"
	"github.com/consultorvarela/portfolio/internal/contact"
	"github.com/consultorvarela/portfolio/internal/logging"
	"github.com/consultorvarela/portfolio/internal/portfolio"
	"github.com/consultorvarela/portfolio/internal/prefs"
)

const (
	shutdownTimeout = 10 * time.Second
	cleanupInterval = 24 * time.Hour
)

type Options struct {
	Config  *config.Config
	Log     *zap.Logger
	Posts   *blog.Collection
	Contact *contact.Service
	// Tracker is optional; visits are not recorded and /admin/stats is
	// not served without it.
	Tracker *analytics.Tracker
	// Templates defaults to the embedded set.
	Templates fs.FS
	// Static is served under /static when set.
	Static fs.FS
}

type Server struct {
	cfg     *config.Config
	log     *zap.Logger
	posts   *blog.Collection
	contact *contact.Service
	tracker *analytics.Tracker
	tmpl    *Templates
	feed    []byte
	engine  *gin.Engine
}

func New(opts Options) (*Server, error) {
	if opts.Config == nil || opts.Posts == nil || opts.Contact == nil {
		return nil, errors.New("site: config, posts and contact service are required")
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	src := opts.Templates
	if src == nil {
		src = EmbeddedTemplates()
	}
	tmpl, err := ParseTemplates(src)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	feed, err := blog.Feed(opts.Posts, blog.FeedInfo{
		Title:       portfolio.Owner.Name + " | Blog",
		Description: prefs.Text(prefs.DefaultLanguage, "blog.subtitle"),
		BaseURL:     opts.Config.BaseURL,
		Language:    string(prefs.DefaultLanguage),
	})
	if err != nil {
		return nil, fmt.Errorf("building feed: %w", err)
	}

	s := &Server{
		cfg:     opts.Config,
		log:     log,
		posts:   opts.Posts,
		contact: opts.Contact,
		tracker: opts.Tracker,
		tmpl:    tmpl,
		feed:    feed,
	}
	s.engine = s.routes(opts.Static)
	return s, nil
}

// Handler returns the HTTP handler of the site.
func (s *Server) Handler() http.Handler { return s.engine }

// Templates returns the live template set.
func (s *Server) Templates() *Templates { return s.tmpl }

func (s *Server) routes(static fs.FS) *gin.Engine {
	if s.cfg.Mode != "" {
		gin.SetMode(s.cfg.Mode)
	}
	r := gin.New()
	r.Use(logging.Recovery(s.log), logging.Gin(s.log))
	if s.tracker != nil {
		r.Use(s.tracker.Middleware())
	}
	r.Use(withPreferences(s.cfg.SecureCookie))

	if static != nil {
		r.StaticFS("/static", http.FS(static))
	}

	r.GET("/", s.home)
	r.GET("/healthz", s.health)
	r.GET("/feed.xml", s.rss)

	b := r.Group("/blog")
	b.GET("", s.blogIndex)
	b.GET("/:slug", s.blogPost)
	b.GET("/:slug/speech", s.speech)

	p := r.Group("/preferences")
	p.POST("/theme", s.toggleTheme)
	p.POST("/language", s.toggleLanguage)

	r.POST("/contact", s.submitContact)

	if s.tracker != nil && s.cfg.Admin.Password != "" {
		admin := r.Group("/admin", gin.BasicAuth(gin.Accounts{s.cfg.Admin.User: s.cfg.Admin.Password}))
		admin.GET("/stats", s.stats)
		admin.GET("/export/stats", s.exportStats)
		admin.POST("/cleanup", s.cleanup)
	}

	r.NoRoute(s.notFound)
	return r
}

// Run serves on the configured port until ctx is cancelled, then shuts
// down gracefully. While running it purges expired visits once a day and,
// when enabled, reloads templates from the templates directory.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.cfg.Watch && s.cfg.TemplatesDir != "" {
		if err := s.tmpl.Reload(os.DirFS(s.cfg.TemplatesDir)); err != nil {
			return fmt.Errorf("loading templates from %s: %w", s.cfg.TemplatesDir, err)
		}
		go func() {
			if err := s.tmpl.Watch(ctx, s.cfg.TemplatesDir, s.log); err != nil {
				s.log.Error("Template watcher stopped", zap.Error(err))
			}
		}()
	}
	if s.tracker != nil {
		go s.purgeVisits(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Serving site", zap.String("addr", srv.Addr), zap.String("base_url", s.cfg.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("Shutting down")
	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	return multierr.Combine(srv.Shutdown(shutdownCtx), s.Close())
}

// Close waits for pending background work.
func (s *Server) Close() error {
	if s.tracker == nil {
		return nil
	}
	return s.tracker.Close()
}

func (s *Server) purgeVisits(ctx context.Context) {
	t := time.NewTicker(cleanupInterval)
	defer t.Stop()
	for {
		if n, err := s.tracker.Cleanup(ctx); err != nil {
			if ctx.Err() == nil {
				s.log.Warn("Visit cleanup failed", zap.Error(err))
			}
		} else if n > 0 {
			s.log.Info("Purged expired visits", zap.Int64("rows", n))
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}
