package proxy

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultBypass is the proxy bypass list used when NO_PROXY is unset
const DefaultBypass = "localhost;127.0.0.1"

// Source is one candidate origin of a proxy URL
type Source struct {
	Name  string
	Value string
}

// Setting is the resolved proxy configuration threaded into session construction
type Setting struct {
	URL    string
	Source string
}

// Enabled reports whether a proxy was resolved
func (s Setting) Enabled() bool {
	return s.URL != ""
}

// String returns the proxy URL with credentials redacted
func (s Setting) String() string {
	if !s.Enabled() {
		return "none"
	}
	return fmt.Sprintf("%s (from %s)", Redact(s.URL), s.Source)
}

// Resolve returns the first non-empty source in the order given.
// Callers pass sources from highest to lowest precedence.
func Resolve(sources ...Source) Setting {
	for _, s := range sources {
		if v := strings.TrimSpace(s.Value); v != "" {
			return Setting{URL: v, Source: s.Name}
		}
	}
	return Setting{}
}

// Normalize trims raw and prefixes http:// when it has no scheme, so the
// host:port form common in HTTP_PROXY is accepted
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.Contains(raw, "://") {
		return raw
	}
	return "http://" + raw
}

// Validate checks that raw is a usable proxy URL
func Validate(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid proxy URL: %w", err)
	}
	switch u.Scheme {
	case "http", "https", "socks5", "socks4":
	default:
		return fmt.Errorf("unsupported proxy scheme %q (must be http, https, socks5, or socks4)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("proxy URL %q has no host", Redact(raw))
	}
	return nil
}

// Redact hides the password portion of a proxy URL for logging
func Redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	return u.Redacted()
}

// BypassList converts a NO_PROXY style list into the semicolon separated
// form Chrome expects. An empty input yields DefaultBypass.
func BypassList(noProxy string) string {
	var hosts []string
	for _, h := range strings.FieldsFunc(noProxy, func(r rune) bool { return r == ',' || r == ';' }) {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	if len(hosts) == 0 {
		return DefaultBypass
	}
	return strings.Join(hosts, ";")
}
