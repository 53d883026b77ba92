package config

import (
	"fmt"

	"github.com/law-makers/quotes/internal/proxy"
	urlutil "github.com/law-makers/quotes/internal/utils/url"
)

func validate(c *Config) error {
	if c.NavigationTimeout <= 0 {
		return fmt.Errorf("navigation timeout must be > 0")
	}
	if c.WaitTimeout <= 0 {
		return fmt.Errorf("wait timeout must be > 0")
	}
	if c.MaxPages < 0 {
		return fmt.Errorf("max pages must be >= 0")
	}
	switch c.Driver {
	case "chromedp", "rod", "static":
	default:
		return fmt.Errorf("unknown driver %q (must be chromedp, rod, or static)", c.Driver)
	}
	switch c.OutputFormat {
	case "", "jsonl", "json", "csv":
	default:
		return fmt.Errorf("unknown output format %q (must be jsonl, json, or csv)", c.OutputFormat)
	}
	if c.Proxy != "" {
		if err := proxy.Validate(c.Proxy); err != nil {
			return fmt.Errorf("proxy from %s: %w", c.ProxySource, err)
		}
	}
	if c.StartURL != "" {
		if err := urlutil.ValidateURL(c.StartURL); err != nil {
			return fmt.Errorf("start url: %w", err)
		}
	}
	if c.Selectors.Container == "" || c.Selectors.Next == "" {
		return fmt.Errorf("container and next selectors must not be empty")
	}
	return nil
}
