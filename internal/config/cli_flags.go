package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Emit logs as JSON lines on stderr")
	cmd.PersistentFlags().String("proxy", "", "Set HTTP/SOCKS5 proxy (e.g., http://localhost:8080)")
	cmd.PersistentFlags().String("timeout", "", "Navigation timeout per page (default 30s)")
	cmd.PersistentFlags().String("wait", "", "Maximum wait for records to appear on a page (default 15s)")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent string (random when empty)")
	cmd.PersistentFlags().String("config", "", "Path to configuration file (optional)")
	cmd.PersistentFlags().String("driver", "", "Browser driver: chromedp, rod, or static")
	cmd.PersistentFlags().String("chrome-path", "", "Local browser executable used when automatic discovery fails")
	cmd.PersistentFlags().Bool("headful", false, "Show the browser window")
}

// RegisterCrawlFlags registers flags shared by the commands that run a crawl
func RegisterCrawlFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.Flags().StringP("output", "o", "", "File to write records to (default resposta.txt)")
	cmd.Flags().String("format", "", "Output format: jsonl, json, or csv (inferred from extension when empty)")
	cmd.Flags().Int("max-pages", 0, "Stop after this many pages (0 = no limit)")
	cmd.Flags().Bool("no-legacy-fallback", false, "Do not synthesize a /page/2/ link when the next link has no target")
	cmd.Flags().Bool("respect-robots", false, "Skip pages disallowed by robots.txt")
	cmd.Flags().StringArrayP("header", "H", []string{}, "Extra request headers (e.g., -H \"Accept-Language: en\")")
	cmd.Flags().Bool("no-progress", false, "Disable the progress indicator")
}
