package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel           = "warn"
	DefaultJSONLog            = false
	DefaultStartURL           = "https://quotes.toscrape.com/"
	DefaultOutputPath         = "resposta.txt"
	DefaultOutputFormat       = ""
	DefaultDriver             = "chromedp"
	DefaultNavigationTimeout  = 30 * time.Second
	DefaultWaitTimeout        = 15 * time.Second
	DefaultBrowserHeadless    = true
	DefaultDriversDir         = "drivers"
	DefaultProxyBypass        = "localhost;127.0.0.1"
	DefaultLegacyPageFallback = true
	DefaultMaxPages           = 0
	DefaultRobotsAgent        = "*"

	DefaultContainerSelector = "div.quote"
	DefaultTextSelector      = "span.text"
	DefaultAuthorSelector    = "small.author"
	DefaultTagsSelector      = "div.tags a.tag"
	DefaultNextSelector      = "li.next > a"
)

// FallbackUserAgents is used when no user agent is configured and the random
// picker produces nothing
var FallbackUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:131.0) Gecko/20100101 Firefox/131.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.6 Safari/605.1.15",
}
