// internal/engine/walker.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/law-makers/quotes/internal/config"
	urlutil "github.com/law-makers/quotes/internal/utils/url"
	"github.com/law-makers/quotes/pkg/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// State is a step of the pagination state machine
type State int

const (
	StateLoading State = iota
	StateExtracting
	StateSeekingNext
	StateDone
	StateFailed
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StateExtracting:
		return "Extracting"
	case StateSeekingNext:
		return "SeekingNext"
	case StateDone:
		return "Done"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no further transitions are possible
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// PageReport is passed to WalkOptions.OnPage after each page is extracted
type PageReport struct {
	Number  int
	URL     string
	Records int
	Total   int
}

// WalkOptions configures a Walker
type WalkOptions struct {
	// WaitTimeout bounds the wait for record containers on each page
	WaitTimeout time.Duration

	// MaxPages stops the crawl after this many pages; 0 means no limit
	MaxPages int

	// Allow, when set, is consulted before each page load. A false result ends
	// the crawl normally.
	Allow func(url string) bool

	// OnPage, when set, is called after each page's records are appended
	OnPage func(PageReport)

	Logger *zerolog.Logger
}

// Outcome is the result of a walk
type Outcome struct {
	Records  []models.Record
	Pages    int
	State    State
	Err      error
	Released bool
	Visited  []string
}

// Walker drives one session from page to page, accumulating records
type Walker struct {
	launcher  Launcher
	extractor *Extractor
	opts      WalkOptions
	logger    zerolog.Logger
}

// NewWalker creates a Walker
func NewWalker(l Launcher, ex *Extractor, opts WalkOptions) *Walker {
	if opts.WaitTimeout <= 0 {
		opts.WaitTimeout = config.DefaultWaitTimeout
	}
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Walker{
		launcher:  l,
		extractor: ex.WithLogger(logger),
		opts:      opts,
		logger:    logger,
	}
}

// Walk crawls from startURL until no next page exists, a page fails to load,
// or MaxPages is reached. Records gathered before a failure are returned in
// the Outcome; the only error returned is a failure to launch the session.
// The session is closed exactly once before Walk returns.
func (w *Walker) Walk(ctx context.Context, startURL string) (out *Outcome, err error) {
	if ctx == nil {
		ctx = context.Background()
	}

	w.logger.Info().
		Str("driver", w.launcher.Name()).
		Str("url", startURL).
		Msg("Starting browser session")

	sess, err := w.launcher.Launch(ctx)
	if err != nil {
		w.logger.Error().Err(err).Str("driver", w.launcher.Name()).Msg("Failed to start browser session")
		return nil, err
	}

	out = &Outcome{
		Records: []models.Record{},
		State:   StateLoading,
	}

	current := startURL

	defer func() {
		// A panicking driver or callback still ends in Failed with its records
		if r := recover(); r != nil {
			w.fail(out, fmt.Errorf("crawl aborted: %v", r), current)
			err = nil
		}
		if cerr := sess.Close(); cerr != nil {
			w.logger.Warn().Err(cerr).Msg("Error closing browser session")
		}
		out.Released = true
		w.logger.Info().
			Str("state", out.State.String()).
			Int("pages", out.Pages).
			Int("records", len(out.Records)).
			Msg("Browser session closed")
	}()

	sel := w.extractor.Selectors()
	visited := make(map[string]bool)

	for {
		if cerr := ctx.Err(); cerr != nil {
			w.fail(out, cerr, current)
			return out, nil
		}

		if w.opts.Allow != nil && !w.opts.Allow(current) {
			w.logger.Warn().Str("url", current).Msg("Page disallowed, stopping crawl")
			w.transition(out, StateDone)
			return out, nil
		}

		visited[urlutil.Normalize(current)] = true
		out.Visited = append(out.Visited, current)

		w.transition(out, StateLoading)
		w.logger.Info().Str("url", current).Msg("Loading page")

		snap, lerr := sess.Load(ctx, LoadRequest{
			URL:          current,
			WaitSelector: sel.Container,
			WaitTimeout:  w.opts.WaitTimeout,
		})
		if lerr != nil {
			w.fail(out, lerr, current)
			return out, nil
		}

		page, perr := ParsePage(snap)
		if perr != nil {
			w.fail(out, perr, current)
			return out, nil
		}

		w.transition(out, StateExtracting)
		records := w.extractor.Records(page)
		out.Records = append(out.Records, records...)
		out.Pages++

		if w.opts.OnPage != nil {
			w.opts.OnPage(PageReport{
				Number:  out.Pages,
				URL:     page.URL,
				Records: len(records),
				Total:   len(out.Records),
			})
		}

		if w.opts.MaxPages > 0 && out.Pages >= w.opts.MaxPages {
			w.logger.Info().Int("max_pages", w.opts.MaxPages).Msg("Page limit reached")
			w.transition(out, StateDone)
			return out, nil
		}

		w.transition(out, StateSeekingNext)
		next, ok := w.extractor.NextURL(page)
		if !ok {
			w.logger.Info().Msg("No more pages, crawl finished")
			w.transition(out, StateDone)
			return out, nil
		}
		if visited[urlutil.Normalize(next)] {
			w.logger.Warn().Str("next", next).Msg("Next page already visited, stopping crawl")
			w.transition(out, StateDone)
			return out, nil
		}

		w.logger.Info().Str("next", next).Msg("Advancing to next page")
		current = next
	}
}

func (w *Walker) transition(out *Outcome, to State) {
	if out.State == to {
		return
	}
	w.logger.Debug().
		Str("from", out.State.String()).
		Str("to", to.String()).
		Msg("Crawl state transition")
	out.State = to
}

func (w *Walker) fail(out *Outcome, err error, url string) {
	out.Err = err
	w.transition(out, StateFailed)

	ev := w.logger.Error()
	if code := CodeOf(err); code != "" {
		ev = ev.Str("code", string(code))
	} else if errors.Is(err, context.Canceled) {
		ev = ev.Str("code", "CANCELED")
	}
	ev.Err(err).
		Str("url", url).
		Int("records", len(out.Records)).
		Msg("Crawl stopped, keeping records collected so far")
}
