package engine

import (
	"context"
	"time"
)

// Launcher starts browser sessions. Launch is the only place a
// DriverResolutionFailure can surface.
type Launcher interface {
	// Launch starts a browser and returns a session owned by the caller
	Launch(ctx context.Context) (Session, error)

	// Name returns the name of the driver implementation
	Name() string
}

// Session is a single controllable browser tab
type Session interface {
	// Load navigates to req.URL and blocks until req.WaitSelector matches or
	// req.WaitTimeout expires, in which case a PageLoadTimeout error is returned
	Load(ctx context.Context, req LoadRequest) (*Snapshot, error)

	// Close releases the browser. It is safe to call more than once.
	Close() error
}

// LoadRequest describes one page load with its bounded wait
type LoadRequest struct {
	URL          string
	WaitSelector string
	WaitTimeout  time.Duration
}

// Snapshot is the rendered state of a page once its content is present
type Snapshot struct {
	// URL is the final browser location, used as the base for relative links
	URL        string
	HTML       string
	StatusCode int
}

// LaunchOptions configures how a Launcher starts its browser
type LaunchOptions struct {
	Headless  bool
	UserAgent string

	// Proxy is passed to the browser as-is; ProxyBypass is a semicolon list
	Proxy       string
	ProxyBypass string

	// ChromePath and DriversDir are the local fallback used when automatic
	// browser discovery fails
	ChromePath string
	DriversDir string

	Headers           map[string]string
	NavigationTimeout time.Duration
}
