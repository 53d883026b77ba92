package output

import (
	"encoding/csv"
	"os"
	"strings"

	"github.com/law-makers/quotes/pkg/models"
)

// TagSeparator joins tags into a single CSV cell
const TagSeparator = "|"

// SaveCSV writes records to a CSV file with a quote,author,tags header.
// Returns an error on failure.
func SaveCSV(records []models.Record, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write([]string{"quote", "author", "tags"}); err != nil {
		return err
	}
	for _, r := range records {
		if err := writer.Write([]string{r.Quote, r.Author, strings.Join(r.Tags, TagSeparator)}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
