package cmd

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/consultorvarela/portfolio/internal/analytics"
	"github.com/consultorvarela/portfolio/internal/blog"
	"github.com/consultorvarela/portfolio/internal/config"
	"github.com/consultorvarela/portfolio/internal/contact"
	"github.com/consultorvarela/portfolio/internal/db"
	"github.com/consultorvarela/portfolio/internal/site"
)

const databaseFile = "portfolio.db"

var (
	servePort      string
	serveWatch     bool
	serveTemplates string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Starts the HTTP server. With --watch, templates are read from
--templates and reloaded whenever they change.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}
		if cmd.Flags().Changed("templates") || (serveWatch && cfg.TemplatesDir == "") {
			cfg.TemplatesDir = serveTemplates
		}
		if serveWatch {
			cfg.Watch = true
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		log, err := cfg.Logging.Prepare()
		if err != nil {
			return fmt.Errorf("preparing logger: %w", err)
		}
		defer func() { _ = log.Sync() }()

		posts, err := blog.Default()
		if err != nil {
			return fmt.Errorf("loading posts: %w", err)
		}
		log.Debug("Posts loaded", zap.Int("count", posts.Len()))

		var (
			tracker  *analytics.Tracker
			recorder contact.Recorder
		)
		if cfg.Analytics.Enabled {
			var database *db.DB
			if database, err = openDatabase(cfg); err != nil {
				return err
			}
			defer func() { err = multierr.Append(err, database.Close()) }()

			tracker, err = analytics.New(database, analytics.Options{
				Salt:            cfg.Analytics.Salt,
				RetentionMonths: cfg.Analytics.RetentionMonths,
			}, log.Named("analytics"))
			if err != nil {
				return err
			}
			recorder = tracker
		}

		opts := site.Options{
			Config:  cfg,
			Log:     log,
			Posts:   posts,
			Contact: contact.NewService(newRelay(cfg, log), recorder, log.Named("contact")),
			Tracker: tracker,
		}
		if fi, err := os.Stat(cfg.StaticDir); err == nil && fi.IsDir() {
			opts.Static = os.DirFS(cfg.StaticDir)
		} else {
			log.Warn("Static directory not found, /static is disabled", zap.String("dir", cfg.StaticDir))
		}

		srv, err := site.New(opts)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx)
	},
}

func openDatabase(cfg *config.Config) (*db.DB, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	database, err := db.Open(filepath.Join(cfg.DataDir, databaseFile))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return database, nil
}

// newRelay picks the contact relay named by the configuration.
func newRelay(cfg *config.Config, log *zap.Logger) contact.Relay {
	switch cfg.Contact.Relay {
	case config.RelaySMTP:
		s := cfg.Contact.SMTP
		return &contact.SMTPRelay{Host: s.Host, Port: s.Port, User: s.User, Pass: s.Pass, To: s.To}
	case config.RelayLog:
		return &contact.LogRelay{Log: log.Named("relay")}
	default:
		e := cfg.Contact.EmailJS
		if e.ServiceID == "" || e.TemplateID == "" || e.PublicKey == "" {
			log.Warn("EmailJS is not configured, contact submissions will fail")
		}
		return &contact.EmailJSRelay{
			ServiceID:  e.ServiceID,
			TemplateID: e.TemplateID,
			PublicKey:  e.PublicKey,
			Client:     &http.Client{Timeout: 15 * time.Second},
		}
	}
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload templates on change")
	serveCmd.Flags().StringVar(&serveTemplates, "templates", "internal/site/templates", "template directory used with --watch")
	rootCmd.AddCommand(serveCmd)
}
