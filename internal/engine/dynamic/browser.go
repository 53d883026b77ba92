// internal/engine/dynamic/browser.go
package dynamic

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/law-makers/quotes/internal/engine"
	"github.com/law-makers/quotes/internal/proxy"
	"github.com/rs/zerolog/log"
)

// Launcher starts Chrome through chromedp
type Launcher struct {
	opts engine.LaunchOptions

	// findChrome and localBrowser are swapped out in tests
	findChrome   func() string
	localBrowser func(chromePath, driversDir string) string
}

// NewLauncher creates a chromedp Launcher
func NewLauncher(opts engine.LaunchOptions) *Launcher {
	return &Launcher{
		opts:         opts,
		findChrome:   FindChrome,
		localBrowser: LocalBrowser,
	}
}

// Name returns the driver name
func (l *Launcher) Name() string {
	return "chromedp"
}

// candidates lists executables to try in order. An empty path lets chromedp
// use its own default lookup.
func (l *Launcher) candidates() []string {
	auto := l.findChrome()
	out := []string{auto}
	if local := l.localBrowser(l.opts.ChromePath, l.opts.DriversDir); local != "" && local != auto {
		out = append(out, local)
	}
	return out
}

// Launch starts a browser, trying automatic discovery first and the local
// fallback second. It fails with a DriverResolutionError when no candidate
// produces a working browser.
func (l *Launcher) Launch(ctx context.Context) (engine.Session, error) {
	var lastErr error
	for i, path := range l.candidates() {
		source := "auto"
		if i > 0 {
			source = "local"
		}
		log.Debug().Str("path", path).Str("source", source).Msg("Starting Chrome")

		sess, err := l.start(ctx, path)
		if err == nil {
			log.Info().
				Str("path", path).
				Str("source", source).
				Str("version", GetChromeVersion(path)).
				Msg("Browser ready")
			return sess, nil
		}
		lastErr = err
		log.Warn().Err(err).Str("path", path).Str("source", source).Msg("Browser failed to start")
	}
	return nil, engine.DriverResolutionError("no usable Chrome executable", lastErr)
}

func (l *Launcher) start(ctx context.Context, execPath string) (*Session, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocatorOptions(execPath, l.opts)...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	s := &Session{
		ctx:         browserCtx,
		cancel:      browserCancel,
		allocCancel: allocCancel,
		navTimeout:  l.opts.NavigationTimeout,
		status:      new(atomic.Int64),
	}

	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		if e, ok := ev.(*network.EventResponseReceived); ok && e.Type == network.ResourceTypeDocument {
			s.status.Store(e.Response.Status)
		}
	})

	// The first Run allocates the browser and must use the browser context itself
	tasks := chromedp.Tasks{network.Enable()}
	if len(l.opts.Headers) > 0 {
		headers := make(network.Headers, len(l.opts.Headers))
		for k, v := range l.opts.Headers {
			headers[k] = v
		}
		tasks = append(tasks, network.SetExtraHTTPHeaders(headers))
	}
	tasks = append(tasks, chromedp.Navigate("about:blank"))

	if err := chromedp.Run(browserCtx, tasks); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to warm up browser: %w", err)
	}
	return s, nil
}

func allocatorOptions(execPath string, opts engine.LaunchOptions) []chromedp.ExecAllocatorOption {
	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-breakpad", true),
		chromedp.Flag("disable-client-side-phishing-detection", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-hang-monitor", true),
		chromedp.Flag("disable-prompt-on-repost", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("log-level", "3"),
		chromedp.Flag("metrics-recording-only", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("safebrowsing-disable-auto-update", true),
		chromedp.Flag("disable-features", "TranslateUI"),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("window-size", "1920,1080"),
	}

	if execPath != "" {
		allocOpts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(execPath)}, allocOpts...)
	}

	if opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", "new"))
	} else {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}

	if ua := strings.TrimSpace(opts.UserAgent); ua != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(ua))
	}

	if opts.Proxy != "" {
		log.Debug().Str("proxy", proxy.Redact(opts.Proxy)).Msg("Routing browser through proxy")
		allocOpts = append(allocOpts, chromedp.ProxyServer(opts.Proxy))
		bypass := opts.ProxyBypass
		if bypass == "" {
			bypass = proxy.DefaultBypass
		}
		allocOpts = append(allocOpts, chromedp.Flag("proxy-bypass-list", bypass))
	}

	return allocOpts
}
