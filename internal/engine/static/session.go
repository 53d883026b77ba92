// internal/engine/static/session.go
package static

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/quotes/internal/engine"
	"github.com/law-makers/quotes/internal/proxy"
	"github.com/rs/zerolog/log"
)

// maxBodySize caps how much of a response is read
const maxBodySize = 10 << 20

// Launcher creates plain HTTP sessions. Pages are not rendered, so content
// injected by scripts is never seen.
type Launcher struct {
	opts engine.LaunchOptions
}

// NewLauncher creates a static Launcher
func NewLauncher(opts engine.LaunchOptions) *Launcher {
	return &Launcher{opts: opts}
}

// Name returns the driver name
func (l *Launcher) Name() string {
	return "static"
}

// Launch builds the HTTP client. It only fails when the proxy cannot be
// routed by net/http.
func (l *Launcher) Launch(ctx context.Context) (engine.Session, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if l.opts.Proxy != "" {
		u, err := url.Parse(l.opts.Proxy)
		if err != nil {
			return nil, engine.DriverResolutionError("invalid proxy", err)
		}
		switch u.Scheme {
		case "http", "https", "socks5":
		default:
			return nil, engine.DriverResolutionError(
				fmt.Sprintf("proxy scheme %q is not supported by the static driver", u.Scheme), nil)
		}
		transport.Proxy = proxyFunc(u, l.opts.ProxyBypass)
		log.Debug().Str("proxy", proxy.Redact(l.opts.Proxy)).Msg("Routing requests through proxy")
	} else {
		// The resolved proxy setting is authoritative; ignore process environment
		transport.Proxy = nil
	}

	timeout := l.opts.NavigationTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Session{
		client:    &http.Client{Transport: transport, Timeout: timeout},
		userAgent: l.opts.UserAgent,
		headers:   l.opts.Headers,
	}, nil
}

// proxyFunc routes every request through u except hosts on the bypass list
func proxyFunc(u *url.URL, bypass string) func(*http.Request) (*url.URL, error) {
	if bypass == "" {
		bypass = proxy.DefaultBypass
	}
	var skip []string
	for _, h := range strings.Split(bypass, ";") {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			skip = append(skip, h)
		}
	}
	return func(req *http.Request) (*url.URL, error) {
		host := strings.ToLower(req.URL.Hostname())
		for _, s := range skip {
			if host == s || (strings.HasPrefix(s, ".") && strings.HasSuffix(host, s)) {
				return nil, nil
			}
		}
		return u, nil
	}
}

// Session fetches pages with a single HTTP client
type Session struct {
	client    *http.Client
	userAgent string
	headers   map[string]string
	closed    bool
}

// Load fetches req.URL and checks that req.WaitSelector matches. With no
// rendering there is nothing to wait for, so a missing match is reported as
// a PageLoadTimeout right away.
func (s *Session) Load(ctx context.Context, req engine.LoadRequest) (*engine.Snapshot, error) {
	start := time.Now()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, engine.NavigationError(req.URL, fmt.Errorf("failed to create request: %w", err))
	}

	httpReq.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	httpReq.Header.Set("Accept-Language", "en-US,en;q=0.9")
	if s.userAgent != "" {
		httpReq.Header.Set("User-Agent", s.userAgent)
	}
	for key, value := range s.headers {
		httpReq.Header.Set(key, value)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if isTimeout(err) {
			return nil, engine.PageLoadTimeoutError(req.URL, err)
		}
		return nil, engine.NavigationError(req.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, engine.NavigationError(req.URL, fmt.Errorf("failed to read body: %w", err))
	}

	if resp.StatusCode >= 400 {
		return nil, engine.NavigationError(req.URL, fmt.Errorf("unexpected status %d", resp.StatusCode)).
			WithDetail("status", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, engine.NavigationError(req.URL, fmt.Errorf("failed to parse HTML: %w", err))
	}
	if req.WaitSelector != "" && doc.Find(req.WaitSelector).Length() == 0 {
		return nil, engine.PageLoadTimeoutError(req.URL,
			fmt.Errorf("selector %q not present in static HTML", req.WaitSelector))
	}

	final := req.URL
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL.String()
	}

	log.Debug().
		Str("url", final).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Page loaded")

	return &engine.Snapshot{URL: final, HTML: string(body), StatusCode: resp.StatusCode}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Close releases idle connections
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.client.CloseIdleConnections()
	return nil
}
