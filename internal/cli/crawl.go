// internal/cli/crawl.go
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/law-makers/quotes/internal/app"
	"github.com/law-makers/quotes/internal/config"
	"github.com/law-makers/quotes/internal/engine"
	"github.com/law-makers/quotes/internal/ui"
	"github.com/law-makers/quotes/internal/utils/output"
	"github.com/law-makers/quotes/pkg/models"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// crawlCmd walks every page
var crawlCmd = &cobra.Command{
	Use:   "crawl [start-url]",
	Short: "Collect quotes from every page",
	Long: `Starts at the given URL (quotes.toscrape.com by default), follows the
"Next" link until there is none, and writes every quote found.

If a page does not show any quotes within the wait time the crawl stops and
the quotes gathered so far are written.`,
	Example: `  # Crawl quotes.toscrape.com into resposta.txt
  quotes crawl

  # Use the JavaScript rendered variant and a longer wait
  quotes crawl https://quotes.toscrape.com/js/ --wait 30s

  # Write CSV through a proxy
  quotes crawl -o quotes.csv --proxy http://localhost:8080

  # Fetch without a browser
  quotes crawl --driver static`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCrawl(cmd, args, 0)
	},
}

// pageCmd extracts the first page only
var pageCmd = &cobra.Command{
	Use:   "page [start-url]",
	Short: "Collect quotes from the first page only",
	Example: `  quotes page
  quotes page https://quotes.toscrape.com/tag/love/ -o love.jsonl`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCrawl(cmd, args, 1)
	},
}

func init() {
	rootCmd.AddCommand(crawlCmd)
	rootCmd.AddCommand(pageCmd)

	config.RegisterCrawlFlags(crawlCmd)
	config.RegisterCrawlFlags(pageCmd)
}

func runCrawl(cmd *cobra.Command, args []string, maxPages int) error {
	appCtx := GetAppFromCmd(cmd)
	if appCtx == nil {
		return fmt.Errorf("application not initialized")
	}
	cfg := appCtx.Config

	startURL := cfg.StartURL
	if len(args) == 1 {
		startURL = args[0]
	}
	if maxPages == 0 {
		maxPages = cfg.MaxPages
	}

	var bar *progressbar.ProgressBar
	if cfg.ShowProgress {
		bar = newSpinner(os.Stderr)
	}

	out, summary, err := appCtx.Run(cmd.Context(), app.RunOptions{
		StartURL: startURL,
		MaxPages: maxPages,
		OnPage: func(r engine.PageReport) {
			if bar == nil {
				return
			}
			bar.Describe(fmt.Sprintf("page %d, %d quotes", r.Number, r.Total))
			_ = bar.Add(1)
		},
	})
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}

	format := models.OutputFormat(cfg.OutputFormat)
	if err := output.Save(out.Records, cfg.OutputPath, format); err != nil {
		return fmt.Errorf("failed to write %s: %w", cfg.OutputPath, err)
	}
	summary.OutputPath = cfg.OutputPath

	log.Info().
		Str("run_id", summary.RunID).
		Str("file", cfg.OutputPath).
		Int("records", summary.Records).
		Msg("Output saved")

	printSummary(cmd.OutOrStdout(), summary)
	return nil
}

func newSpinner(w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("starting browser"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func printSummary(w io.Writer, s *models.RunSummary) {
	fmt.Fprintf(w, "\n%s Saved %s from %s to %s\n",
		ui.Success("✓"),
		ui.Bold(fmt.Sprintf("%d quotes", s.Records)),
		ui.Bold(fmt.Sprintf("%d pages", s.Pages)),
		ui.ColorCyan+s.OutputPath+ui.ColorReset)

	if s.State == engine.StateFailed.String() {
		fmt.Fprintf(w, "%s %s\n", ui.Info("Crawl stopped early:"), s.Error)
	}
	fmt.Fprintf(w, "%s\n", ui.Info(fmt.Sprintf("run %s in %s", s.RunID, s.Duration.Round(time.Millisecond))))
}
