// internal/cli/root.go
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/law-makers/quotes/internal/app"
	"github.com/law-makers/quotes/internal/config"
	"github.com/law-makers/quotes/internal/ui"
)

// skipAppAnnotation marks commands that only need logging, not a launcher
const skipAppAnnotation = "skip-app"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "quotes",
	Short: "Collect quotes from a paginated site with a real browser",
	Long: `Quotes drives a browser through every page of a quote listing site,
extracts each quote with its author and tags, and writes them as JSON lines.

Pages that fail to load end the crawl early; everything collected up to that
point is still written.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// ctx is cancelled on interrupt so a running crawl can stop and keep its records.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.Error("Error:"), err)
		os.Exit(1)
	}
}

func init() {
	// Lazily initialize the application before running commands (avoid starting app for -h/help)
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if GetAppFromCmd(cmd) != nil {
			return nil
		}

		cfg, err := config.Load(cmd)
		if err != nil {
			return err
		}
		ui.SetEnabled(os.Getenv("NO_COLOR") == "" && !cfg.JSONLog)

		if cmd.Annotations[skipAppAnnotation] == "true" {
			app.SetupLogger(cfg, os.Stderr)
			return nil
		}

		appCtx, err := app.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		SetApp(cmd, appCtx)
		return nil
	}

	// Ensure app is closed after command runs
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		appCtx := GetAppFromCmd(cmd)
		if appCtx == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), appCtx.Config.NavigationTimeout)
		defer cancel()
		if err := appCtx.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("Error during shutdown")
		}
		SetApp(cmd, nil)
	}
}

func init() {
	// Register centralized flags
	config.RegisterFlags(rootCmd)

	// Customize help and version flag descriptions
	rootCmd.Flags().BoolP("help", "h", false, "Help for Quotes")
	rootCmd.Flags().Bool("version", false, "Version for Quotes")
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		renderHelp(cmd.OutOrStdout(), cmd, true)
	})
	rootCmd.SetUsageFunc(func(cmd *cobra.Command) error {
		renderHelp(cmd.ErrOrStderr(), cmd, false)
		return nil
	})
}

// renderHelp writes colorized help for cmd. The short form used for usage
// errors leaves out descriptions, examples and global flags.
func renderHelp(w io.Writer, cmd *cobra.Command, full bool) {
	if full {
		fmt.Fprintf(w, "\n%s\n", ui.Bold(ui.ColorCyan+strings.ToUpper(cmd.Name())))
		if cmd.Short != "" {
			fmt.Fprintln(w, cmd.Short)
		}
		if cmd.Long != "" && cmd.Long != cmd.Short {
			fmt.Fprintf(w, "\n%s\n", wrapText(cmd.Long, 80))
		}
	}

	heading(w, "Usage")
	if cmd.Runnable() {
		fmt.Fprintf(w, "  %s%s%s\n", ui.ColorCyan, cmd.UseLine(), ui.ColorReset)
	}
	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(w, "  %s%s%s %s<command>%s %s[flags]%s\n",
			ui.ColorCyan, cmd.CommandPath(), ui.ColorReset,
			ui.ColorYellow, ui.ColorReset,
			ui.ColorDim, ui.ColorReset)
	}

	if full && cmd.HasExample() {
		heading(w, "Examples")
		for _, line := range strings.Split(cmd.Example, "\n") {
			line = strings.TrimSpace(line)
			switch {
			case line == "":
			case strings.HasPrefix(line, "#"):
				fmt.Fprintf(w, "\n  %s%s%s\n", ui.ColorDim, line, ui.ColorReset)
			default:
				fmt.Fprintf(w, "  %s$ %s%s\n", ui.ColorGreen, line, ui.ColorReset)
			}
		}
	}

	if cmd.HasAvailableSubCommands() {
		heading(w, "Commands")
		var rows [][2]string
		for _, c := range cmd.Commands() {
			if c.IsAvailableCommand() && c.Name() != "help" {
				rows = append(rows, [2]string{c.Name(), c.Short})
			}
		}
		printRows(w, rows, ui.ColorCyan, 0)
	}

	if cmd.HasAvailableLocalFlags() {
		heading(w, "Flags")
		printFlags(w, cmd.LocalFlags().FlagUsages())
	}
	if full && cmd.HasAvailableInheritedFlags() {
		heading(w, "Global Flags")
		printFlags(w, cmd.InheritedFlags().FlagUsages())
	}

	fmt.Fprintf(w, "\n%sRun \"%s --help\" for more information.%s\n\n",
		ui.ColorDim, cmd.CommandPath(), ui.ColorReset)
}

func heading(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", ui.Bold(ui.ColorWhite+title))
}

// printFlags reflows pflag's usage text into two aligned columns
func printFlags(w io.Writer, usages string) {
	var rows [][2]string
	for _, line := range strings.Split(usages, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, "-") && len(rows) > 0 {
			rows[len(rows)-1][1] += " " + trimmed
			continue
		}
		name, desc, _ := strings.Cut(trimmed, "  ")
		rows = append(rows, [2]string{name, strings.TrimSpace(desc)})
	}
	printRows(w, rows, ui.ColorGreen, 28)
}

func printRows(w io.Writer, rows [][2]string, color string, minWidth int) {
	width := minWidth
	for _, r := range rows {
		width = max(width, len(r[0]))
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %s%-*s%s  %s%s%s\n",
			color, width, r[0], ui.ColorReset,
			ui.ColorDim, r[1], ui.ColorReset)
	}
}

// wrapText wraps each paragraph of text at width columns
func wrapText(text string, width int) string {
	paragraphs := strings.Split(strings.TrimSpace(text), "\n\n")
	for i, para := range paragraphs {
		var b strings.Builder
		n := 0
		for _, word := range strings.Fields(para) {
			switch {
			case n == 0:
			case n+1+len(word) > width:
				b.WriteString("\n")
				n = 0
			default:
				b.WriteString(" ")
				n++
			}
			b.WriteString(word)
			n += len(word)
		}
		paragraphs[i] = b.String()
	}
	return strings.Join(paragraphs, "\n\n")
}
