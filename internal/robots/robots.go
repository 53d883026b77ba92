// Package robots answers whether a page may be crawled according to the
// site's robots.txt.
package robots

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	urlutil "github.com/law-makers/quotes/internal/utils/url"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/temoto/robotstxt"
)

// Checker fetches robots.txt once per host and caches the matching group
type Checker struct {
	client    *http.Client
	agent     string
	userAgent string
	timeout   time.Duration
	logger    zerolog.Logger

	mu    sync.Mutex
	cache map[string]*robotstxt.Group
}

// NewChecker creates a Checker. agent selects the robots.txt group; userAgent
// is sent with the robots.txt request.
func NewChecker(client *http.Client, agent, userAgent string) *Checker {
	if client == nil {
		client = &http.Client{}
	}
	if agent == "" {
		agent = "*"
	}
	return &Checker{
		client:    client,
		agent:     agent,
		userAgent: userAgent,
		timeout:   10 * time.Second,
		logger:    log.Logger,
		cache:     make(map[string]*robotstxt.Group),
	}
}

// WithLogger sets the logger used for fetch warnings
func (c *Checker) WithLogger(l zerolog.Logger) *Checker {
	c.logger = l
	return c
}

// Allowed reports whether link may be fetched. Unparseable links are
// refused; an unreachable or broken robots.txt allows everything.
func (c *Checker) Allowed(link string) bool {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := urlutil.Host(link)
	group, cached := c.cache[key]
	if !cached {
		group = c.fetch(key)
		c.cache[key] = group
	}
	if group == nil {
		return true
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return group.Test(path)
}

func (c *Checker) fetch(origin string) *robotstxt.Group {
	robotsURL := origin + "/robots.txt"

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		c.logger.Warn().Err(err).Str("url", robotsURL).Msg("Cannot build robots.txt request, allowing crawl")
		return nil
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("url", robotsURL).Msg("robots.txt unreachable, allowing crawl")
		return nil
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		c.logger.Warn().Err(err).Str("url", robotsURL).Msg("robots.txt unreadable, allowing crawl")
		return nil
	}

	c.logger.Debug().Str("url", robotsURL).Int("status", resp.StatusCode).Msg("robots.txt loaded")
	return data.FindGroup(c.agent)
}
