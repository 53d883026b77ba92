// internal/cli/inspect.go
package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/law-makers/quotes/internal/ui"
	"github.com/law-makers/quotes/internal/utils/output"
	"github.com/law-makers/quotes/pkg/models"
	"github.com/spf13/cobra"
)

var inspectTop int

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Summarize a JSONL output file",
	Example: `  quotes inspect resposta.txt
  quotes inspect quotes.jsonl --top 5`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{skipAppAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := output.LoadJSONL(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		printInspection(cmd.OutOrStdout(), args[0], summarize(records, inspectTop))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().IntVar(&inspectTop, "top", 10, "Number of tags to list")
}

type countEntry struct {
	Name  string
	Count int
}

type inspection struct {
	Records  int
	Authors  int
	Untagged int
	TopTags  []countEntry
}

func summarize(records []models.Record, top int) inspection {
	authors := make(map[string]struct{})
	tags := make(map[string]int)
	res := inspection{Records: len(records)}

	for _, r := range records {
		authors[r.Author] = struct{}{}
		if len(r.Tags) == 0 {
			res.Untagged++
		}
		for _, t := range r.Tags {
			tags[t]++
		}
	}
	res.Authors = len(authors)

	for name, n := range tags {
		res.TopTags = append(res.TopTags, countEntry{Name: name, Count: n})
	}
	sort.Slice(res.TopTags, func(i, j int) bool {
		if res.TopTags[i].Count != res.TopTags[j].Count {
			return res.TopTags[i].Count > res.TopTags[j].Count
		}
		return res.TopTags[i].Name < res.TopTags[j].Name
	})
	if top >= 0 && len(res.TopTags) > top {
		res.TopTags = res.TopTags[:top]
	}
	return res
}

func printInspection(w io.Writer, path string, in inspection) {
	fmt.Fprintf(w, "\n%s\n", ui.Bold(path))
	fmt.Fprintf(w, "  Quotes:    %d\n", in.Records)
	fmt.Fprintf(w, "  Authors:   %d\n", in.Authors)
	fmt.Fprintf(w, "  Untagged:  %d\n", in.Untagged)

	if len(in.TopTags) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", ui.Bold("Top tags"))
	width := 0
	for _, t := range in.TopTags {
		if len(t.Name) > width {
			width = len(t.Name)
		}
	}
	for _, t := range in.TopTags {
		fmt.Fprintf(w, "  %s%s%s%s  %d\n",
			ui.ColorCyan, t.Name, ui.ColorReset,
			strings.Repeat(" ", width-len(t.Name)), t.Count)
	}
}
