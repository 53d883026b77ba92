// internal/engine/dynamic/session.go
package dynamic

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/law-makers/quotes/internal/engine"
	"github.com/rs/zerolog/log"
)

// Session is a single Chrome tab driven by chromedp
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	navTimeout  time.Duration
	status      *atomic.Int64
	closeOnce   sync.Once
}

// Load navigates to req.URL and waits for req.WaitSelector
func (s *Session) Load(ctx context.Context, req engine.LoadRequest) (*engine.Snapshot, error) {
	start := time.Now()
	s.status.Store(0)

	navTimeout := s.navTimeout
	if navTimeout <= 0 {
		navTimeout = 30 * time.Second
	}

	navCtx, cancel := context.WithTimeout(s.ctx, navTimeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(navCtx, chromedp.Navigate(req.URL)); err != nil {
		return nil, classify(ctx, req.URL, err)
	}

	var (
		location string
		html     string
	)
	waitCtx, waitCancel := context.WithTimeout(s.ctx, req.WaitTimeout)
	defer waitCancel()
	stopWait := context.AfterFunc(ctx, waitCancel)
	defer stopWait()

	err := chromedp.Run(waitCtx,
		chromedp.WaitReady(req.WaitSelector, chromedp.ByQuery),
		chromedp.Location(&location),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, classify(ctx, req.URL, err)
	}

	snap := &engine.Snapshot{
		URL:        location,
		HTML:       html,
		StatusCode: int(s.status.Load()),
	}
	if snap.URL == "" {
		snap.URL = req.URL
	}

	log.Debug().
		Str("url", snap.URL).
		Int("status", snap.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Page loaded")

	return snap, nil
}

// classify maps a chromedp failure onto the engine error taxonomy. Caller
// cancellation is returned untouched.
func classify(ctx context.Context, url string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return engine.PageLoadTimeoutError(url, err)
	}
	return engine.NavigationError(url, err)
}

// Close shuts the tab and the browser process
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		s.allocCancel()
	})
	return nil
}
