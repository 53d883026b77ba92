package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/law-makers/quotes/internal/proxy"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Selectors holds the CSS selectors used to find records on a page
type Selectors struct {
	Container string
	Text      string
	Author    string
	Tags      string
	Next      string
}

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Crawl
	StartURL           string
	MaxPages           int
	LegacyPageFallback bool
	RespectRobots      bool
	Selectors          Selectors

	// Output
	OutputPath   string
	OutputFormat string
	ShowProgress bool

	// Browser
	Driver            string
	BrowserHeadless   bool
	ChromePath        string
	DriversDir        string
	UserAgent         string
	Headers           []string
	NavigationTimeout time.Duration
	WaitTimeout       time.Duration

	// Proxy
	Proxy       string
	ProxySource string
	ProxyBypass string
}

// Default returns a Config populated with the default values only
func Default() *Config {
	return &Config{
		LogLevel:           DefaultLogLevel,
		JSONLog:            DefaultJSONLog,
		StartURL:           DefaultStartURL,
		MaxPages:           DefaultMaxPages,
		LegacyPageFallback: DefaultLegacyPageFallback,
		Selectors: Selectors{
			Container: DefaultContainerSelector,
			Text:      DefaultTextSelector,
			Author:    DefaultAuthorSelector,
			Tags:      DefaultTagsSelector,
			Next:      DefaultNextSelector,
		},
		OutputPath:        DefaultOutputPath,
		OutputFormat:      DefaultOutputFormat,
		ShowProgress:      true,
		Driver:            DefaultDriver,
		BrowserHeadless:   DefaultBrowserHeadless,
		DriversDir:        DefaultDriversDir,
		NavigationTimeout: DefaultNavigationTimeout,
		WaitTimeout:       DefaultWaitTimeout,
		ProxyBypass:       DefaultProxyBypass,
	}
}

// Load builds a Config by combining defaults, environment variables, an
// optional config file and CLI flags, in increasing order of precedence.
// Caller should pass the executing *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	env, err := LoadEnv()
	if err != nil {
		return nil, err
	}
	return load(cmd, env)
}

func load(cmd *cobra.Command, env *Env) (*Config, error) {
	cfg := Default()
	applyEnv(cfg, env)

	var flags *pflag.FlagSet
	if cmd != nil {
		flags = cmd.Flags()
	}

	if path := stringFlag(flags, "config"); path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := applyFlags(cfg, flags); err != nil {
		return nil, err
	}
	cfg.Proxy = proxy.Normalize(cfg.Proxy)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func applyEnv(cfg *Config, env *Env) {
	if env == nil {
		return
	}

	// Dedicated variable first, then the generic proxy variables
	setting := proxy.Resolve(
		proxy.Source{Name: "PROXY_URL", Value: env.ProxyURL},
		proxy.Source{Name: "HTTP_PROXY", Value: env.HTTPProxy},
		proxy.Source{Name: "HTTPS_PROXY", Value: env.HTTPSProxy},
	)
	cfg.Proxy = setting.URL
	cfg.ProxySource = setting.Source
	if env.NoProxy != "" {
		cfg.ProxyBypass = proxy.BypassList(env.NoProxy)
	}

	if env.ChromePath != "" {
		cfg.ChromePath = env.ChromePath
	}
	if env.DriversDir != "" {
		cfg.DriversDir = env.DriversDir
	}
	if env.UserAgent != "" {
		cfg.UserAgent = env.UserAgent
	}
	if env.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(env.LogLevel)
	}
	if env.Driver != "" {
		cfg.Driver = strings.ToLower(env.Driver)
	}
}

func applyFlags(cfg *Config, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}

	if changed(flags, "user-agent") {
		cfg.UserAgent = stringFlag(flags, "user-agent")
	}
	if changed(flags, "proxy") {
		cfg.Proxy = stringFlag(flags, "proxy")
		cfg.ProxySource = "flag"
	}
	if changed(flags, "driver") {
		cfg.Driver = strings.ToLower(stringFlag(flags, "driver"))
	}
	if changed(flags, "chrome-path") {
		cfg.ChromePath = stringFlag(flags, "chrome-path")
	}
	if boolFlag(flags, "headful") {
		cfg.BrowserHeadless = false
	}
	if changed(flags, "timeout") {
		d, err := time.ParseDuration(stringFlag(flags, "timeout"))
		if err != nil {
			return fmt.Errorf("invalid --timeout: %w", err)
		}
		cfg.NavigationTimeout = d
	}
	if changed(flags, "wait") {
		d, err := time.ParseDuration(stringFlag(flags, "wait"))
		if err != nil {
			return fmt.Errorf("invalid --wait: %w", err)
		}
		cfg.WaitTimeout = d
	}
	if boolFlag(flags, "json") {
		cfg.JSONLog = true
		cfg.ShowProgress = false
	}
	if boolFlag(flags, "quiet") {
		cfg.LogLevel = "error"
		cfg.ShowProgress = false
	}
	if boolFlag(flags, "verbose") {
		cfg.LogLevel = "debug"
		cfg.ShowProgress = false
	}

	// Crawl command flags
	if changed(flags, "output") {
		cfg.OutputPath = stringFlag(flags, "output")
	}
	if changed(flags, "format") {
		cfg.OutputFormat = strings.ToLower(stringFlag(flags, "format"))
	}
	if changed(flags, "max-pages") {
		n, err := flags.GetInt("max-pages")
		if err != nil {
			return err
		}
		cfg.MaxPages = n
	}
	if boolFlag(flags, "no-legacy-fallback") {
		cfg.LegacyPageFallback = false
	}
	if boolFlag(flags, "respect-robots") {
		cfg.RespectRobots = true
	}
	if changed(flags, "header") {
		h, err := flags.GetStringArray("header")
		if err != nil {
			return err
		}
		cfg.Headers = append(cfg.Headers, h...)
	}
	if boolFlag(flags, "no-progress") {
		cfg.ShowProgress = false
	}

	return nil
}

func changed(flags *pflag.FlagSet, name string) bool {
	f := flags.Lookup(name)
	return f != nil && f.Changed
}

func stringFlag(flags *pflag.FlagSet, name string) string {
	if flags == nil {
		return ""
	}
	if f := flags.Lookup(name); f != nil {
		return f.Value.String()
	}
	return ""
}

func boolFlag(flags *pflag.FlagSet, name string) bool {
	if f := flags.Lookup(name); f != nil {
		return f.Value.String() == "true"
	}
	return false
}
