// Package rodbrowser provides a go-rod implementation of engine.Launcher.
package rodbrowser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/law-makers/quotes/internal/engine"
	"github.com/law-makers/quotes/internal/engine/dynamic"
	"github.com/law-makers/quotes/internal/proxy"
	"github.com/rs/zerolog/log"
)

// Launcher starts Chrome through go-rod
type Launcher struct {
	opts engine.LaunchOptions

	lookPath     func() (string, bool)
	download     func() (string, error)
	localBrowser func(chromePath, driversDir string) string
}

// NewLauncher creates a rod Launcher
func NewLauncher(opts engine.LaunchOptions) *Launcher {
	return &Launcher{
		opts:     opts,
		lookPath: launcher.LookPath,
		download: func() (string, error) {
			return launcher.NewBrowser().Get()
		},
		localBrowser: dynamic.LocalBrowser,
	}
}

// Name returns the driver name
func (l *Launcher) Name() string {
	return "rod"
}

// resolve returns the automatically discovered browser: an installed one when
// present, otherwise the browser rod manages in its cache directory
func (l *Launcher) resolve() (string, error) {
	if path, ok := l.lookPath(); ok {
		return path, nil
	}
	log.Info().Msg("No installed browser found, fetching managed browser")
	return l.download()
}

// Launch starts a browser, trying automatic resolution first and the local
// fallback second
func (l *Launcher) Launch(ctx context.Context) (engine.Session, error) {
	var candidates []string
	auto, err := l.resolve()
	if err != nil {
		log.Warn().Err(err).Msg("Automatic browser resolution failed")
	} else {
		candidates = append(candidates, auto)
	}
	if local := l.localBrowser(l.opts.ChromePath, l.opts.DriversDir); local != "" && local != auto {
		candidates = append(candidates, local)
	}
	if len(candidates) == 0 {
		return nil, engine.DriverResolutionError("no browser found for rod", err)
	}

	var lastErr error
	for _, path := range candidates {
		sess, serr := l.start(ctx, path)
		if serr == nil {
			log.Info().Str("path", path).Msg("Browser ready")
			return sess, nil
		}
		lastErr = serr
		log.Warn().Err(serr).Str("path", path).Msg("Browser failed to start")
	}
	return nil, engine.DriverResolutionError("no usable browser for rod", lastErr)
}

func (l *Launcher) start(ctx context.Context, bin string) (*Session, error) {
	lc := launcher.New().
		Context(ctx).
		Bin(bin).
		Headless(l.opts.Headless).
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-dev-shm-usage")
	if l.opts.Proxy != "" {
		bypass := l.opts.ProxyBypass
		if bypass == "" {
			bypass = proxy.DefaultBypass
		}
		lc = lc.Proxy(l.opts.Proxy).Set("proxy-bypass-list", bypass)
	}
	if ua := strings.TrimSpace(l.opts.UserAgent); ua != "" {
		lc = lc.Set("user-agent", ua)
	}

	controlURL, err := lc.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		lc.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		browser.Close()
		lc.Kill()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	s := &Session{
		browser:    browser,
		page:       page,
		launcher:   lc,
		navTimeout: l.opts.NavigationTimeout,
	}

	if ua := strings.TrimSpace(l.opts.UserAgent); ua != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: ua}); err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to set user agent: %w", err)
		}
	}
	if len(l.opts.Headers) > 0 {
		dict := make([]string, 0, len(l.opts.Headers)*2)
		for k, v := range l.opts.Headers {
			dict = append(dict, k, v)
		}
		if _, err := page.SetExtraHeaders(dict); err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to set extra headers: %w", err)
		}
	}

	go page.EachEvent(func(e *proto.NetworkResponseReceived) {
		if e.Type == proto.NetworkResourceTypeDocument {
			s.status.Store(int64(e.Response.Status))
		}
	})()

	return s, nil
}

// Session is a single rod page
type Session struct {
	browser    *rod.Browser
	page       *rod.Page
	launcher   *launcher.Launcher
	navTimeout time.Duration
	status     atomic.Int64
	closeOnce  sync.Once
}

// Load navigates to req.URL and waits for req.WaitSelector
func (s *Session) Load(ctx context.Context, req engine.LoadRequest) (*engine.Snapshot, error) {
	start := time.Now()
	s.status.Store(0)

	navTimeout := s.navTimeout
	if navTimeout <= 0 {
		navTimeout = 30 * time.Second
	}

	nav := s.page.Context(ctx).Timeout(navTimeout)
	if err := nav.Navigate(req.URL); err != nil {
		return nil, classify(ctx, req.URL, err)
	}
	if err := nav.WaitLoad(); err != nil {
		return nil, classify(ctx, req.URL, err)
	}

	wait := s.page.Context(ctx).Timeout(req.WaitTimeout)
	if _, err := wait.Element(req.WaitSelector); err != nil {
		return nil, classify(ctx, req.URL, err)
	}

	html, err := s.page.Context(ctx).HTML()
	if err != nil {
		return nil, classify(ctx, req.URL, err)
	}

	snap := &engine.Snapshot{URL: req.URL, HTML: html, StatusCode: int(s.status.Load())}
	if info, err := s.page.Info(); err == nil && info.URL != "" {
		snap.URL = info.URL
	}

	log.Debug().
		Str("url", snap.URL).
		Int("status", snap.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Page loaded")

	return snap, nil
}

func classify(ctx context.Context, url string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return engine.PageLoadTimeoutError(url, err)
	}
	return engine.NavigationError(url, err)
}

// Close shuts the browser and kills its process
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.browser.Close()
		if s.launcher != nil {
			s.launcher.Kill()
			s.launcher.Cleanup()
		}
	})
	return err
}
