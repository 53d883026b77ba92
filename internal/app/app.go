// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/law-makers/quotes/internal/config"
	"github.com/law-makers/quotes/internal/engine"
	"github.com/law-makers/quotes/internal/engine/dynamic"
	"github.com/law-makers/quotes/internal/engine/rodbrowser"
	"github.com/law-makers/quotes/internal/engine/static"
	"github.com/law-makers/quotes/internal/proxy"
	"github.com/law-makers/quotes/internal/reqctx"
	"github.com/law-makers/quotes/internal/robots"
	"github.com/law-makers/quotes/internal/useragent"
	"github.com/law-makers/quotes/internal/utils/headers"
	"github.com/law-makers/quotes/pkg/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once at startup and shared across all CLI commands.
// Use Close() to ensure proper resource cleanup on shutdown.
type Application struct {
	Config    *config.Config
	Logger    *zerolog.Logger
	Launcher  engine.Launcher
	Extractor *engine.Extractor
	Robots    *robots.Checker
	UserAgent string
	startTime time.Time
}

// New creates and initializes a new Application with all dependencies.
//
// It performs the following initialization steps:
//   - Configures logging based on the provided config
//   - Picks the user agent and parses extra headers
//   - Creates the launcher for the configured driver
//   - Creates the robots.txt checker when enabled
//
// No browser is started here; that happens when a crawl runs.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := SetupLogger(cfg, os.Stderr)

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	hdrs, err := headers.ParseHeaders(cfg.Headers)
	if err != nil {
		return nil, err
	}

	ua := useragent.NewPicker().Pick(cfg.UserAgent)
	logger.Debug().Str("user_agent", ua).Msg("User agent selected")

	if setting := (proxy.Setting{URL: cfg.Proxy, Source: cfg.ProxySource}); setting.Enabled() {
		logger.Info().Str("proxy", setting.String()).Msg("Using proxy")
	}

	launcher, err := NewLauncher(models.DriverName(cfg.Driver), engine.LaunchOptions{
		Headless:          cfg.BrowserHeadless,
		UserAgent:         ua,
		Proxy:             cfg.Proxy,
		ProxyBypass:       cfg.ProxyBypass,
		ChromePath:        cfg.ChromePath,
		DriversDir:        cfg.DriversDir,
		Headers:           hdrs,
		NavigationTimeout: cfg.NavigationTimeout,
	})
	if err != nil {
		return nil, err
	}

	extractor := engine.NewExtractor(engine.Selectors{
		Container: cfg.Selectors.Container,
		Text:      cfg.Selectors.Text,
		Author:    cfg.Selectors.Author,
		Tags:      cfg.Selectors.Tags,
		Next:      cfg.Selectors.Next,
	}, cfg.LegacyPageFallback)

	a := &Application{
		Config:    cfg,
		Logger:    &logger,
		Launcher:  launcher,
		Extractor: extractor,
		UserAgent: ua,
		startTime: time.Now(),
	}

	if cfg.RespectRobots {
		client := &http.Client{Timeout: cfg.NavigationTimeout}
		if cfg.Proxy != "" {
			if u, err := url.Parse(cfg.Proxy); err == nil {
				client.Transport = &http.Transport{Proxy: http.ProxyURL(u)}
			}
		}
		a.Robots = robots.NewChecker(client, config.DefaultRobotsAgent, ua).WithLogger(logger)
	}

	logger.Debug().Str("driver", launcher.Name()).Msg("Application initialized successfully")
	return a, nil
}

// SetupLogger configures the global zerolog logger from cfg and returns it.
// Console output is used unless JSON logging is requested.
func SetupLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)

	var logWriter io.Writer = w
	if !cfg.JSONLog {
		logWriter = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	log.Logger = zerolog.New(logWriter).With().Timestamp().Logger()
	return log.Logger
}

// NewLauncher returns the launcher for the named driver
func NewLauncher(driver models.DriverName, opts engine.LaunchOptions) (engine.Launcher, error) {
	switch driver {
	case models.DriverChromedp, "":
		return dynamic.NewLauncher(opts), nil
	case models.DriverRod:
		return rodbrowser.NewLauncher(opts), nil
	case models.DriverStatic:
		return static.NewLauncher(opts), nil
	default:
		return nil, fmt.Errorf("unknown driver: %s", driver)
	}
}

// RunOptions configures one crawl
type RunOptions struct {
	StartURL string
	MaxPages int
	OnPage   func(engine.PageReport)
}

// Run crawls from opts.StartURL. The Outcome holds whatever records were
// collected, even when the crawl ended in the Failed state. The returned
// error is non-nil only when no browser session could be started.
func (a *Application) Run(ctx context.Context, opts RunOptions) (*engine.Outcome, *models.RunSummary, error) {
	ctx = reqctx.WithRun(ctx, *a.Logger)
	rc := reqctx.FromContext(ctx)

	walkOpts := engine.WalkOptions{
		WaitTimeout: a.Config.WaitTimeout,
		MaxPages:    opts.MaxPages,
		OnPage:      opts.OnPage,
		Logger:      &rc.Logger,
	}
	if a.Robots != nil {
		walkOpts.Allow = a.Robots.Allowed
	}

	summary := &models.RunSummary{
		RunID:     rc.RunID,
		StartURL:  opts.StartURL,
		StartedAt: rc.StartTime,
	}

	out, err := engine.NewWalker(a.Launcher, a.Extractor, walkOpts).Walk(ctx, opts.StartURL)
	summary.Duration = time.Since(rc.StartTime)
	if err != nil {
		summary.State = engine.StateFailed.String()
		summary.Error = err.Error()
		return nil, summary, reqctx.NewRunError(ctx, err)
	}

	summary.Pages = out.Pages
	summary.Records = len(out.Records)
	summary.State = out.State.String()
	if out.Err != nil {
		summary.Error = out.Err.Error()
	}
	return out, summary, nil
}

// Close releases application resources
func (a *Application) Close(ctx context.Context) error {
	a.Logger.Debug().Dur("uptime", a.Uptime()).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
