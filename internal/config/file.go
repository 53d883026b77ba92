package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// applyFile overlays values from a configuration file (YAML, TOML or JSON,
// chosen by extension) onto cfg. Only keys present in the file are applied.
func applyFile(cfg *Config, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if v.IsSet("log_level") {
		cfg.LogLevel = v.GetString("log_level")
	}
	if v.IsSet("json_log") {
		cfg.JSONLog = v.GetBool("json_log")
	}
	if v.IsSet("start_url") {
		cfg.StartURL = v.GetString("start_url")
	}
	if v.IsSet("output") {
		cfg.OutputPath = v.GetString("output")
	}
	if v.IsSet("format") {
		cfg.OutputFormat = v.GetString("format")
	}
	if v.IsSet("proxy") {
		cfg.Proxy = v.GetString("proxy")
		cfg.ProxySource = "config"
	}
	if v.IsSet("proxy_bypass") {
		cfg.ProxyBypass = v.GetString("proxy_bypass")
	}
	if v.IsSet("user_agent") {
		cfg.UserAgent = v.GetString("user_agent")
	}
	if v.IsSet("driver") {
		cfg.Driver = v.GetString("driver")
	}
	if v.IsSet("chrome_path") {
		cfg.ChromePath = v.GetString("chrome_path")
	}
	if v.IsSet("drivers_dir") {
		cfg.DriversDir = v.GetString("drivers_dir")
	}
	if v.IsSet("headless") {
		cfg.BrowserHeadless = v.GetBool("headless")
	}
	if v.IsSet("navigation_timeout") {
		cfg.NavigationTimeout = v.GetDuration("navigation_timeout")
	}
	if v.IsSet("wait_timeout") {
		cfg.WaitTimeout = v.GetDuration("wait_timeout")
	}
	if v.IsSet("max_pages") {
		cfg.MaxPages = v.GetInt("max_pages")
	}
	if v.IsSet("legacy_page_fallback") {
		cfg.LegacyPageFallback = v.GetBool("legacy_page_fallback")
	}
	if v.IsSet("respect_robots") {
		cfg.RespectRobots = v.GetBool("respect_robots")
	}
	if v.IsSet("headers") {
		cfg.Headers = v.GetStringSlice("headers")
	}

	sel := v.Sub("selectors")
	if sel != nil {
		if s := sel.GetString("container"); s != "" {
			cfg.Selectors.Container = s
		}
		if s := sel.GetString("text"); s != "" {
			cfg.Selectors.Text = s
		}
		if s := sel.GetString("author"); s != "" {
			cfg.Selectors.Author = s
		}
		if s := sel.GetString("tags"); s != "" {
			cfg.Selectors.Tags = s
		}
		if s := sel.GetString("next"); s != "" {
			cfg.Selectors.Next = s
		}
	}

	return nil
}
