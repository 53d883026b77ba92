package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/law-makers/quotes/pkg/models"
)

// FormatFromPath infers the output format from a file extension. Unknown
// extensions, including the default resposta.txt, map to JSONL.
func FormatFromPath(path string) models.OutputFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return models.FormatCSV
	case ".json":
		return models.FormatJSON
	default:
		return models.FormatJSONL
	}
}

// Save writes records to path in format, inferring it from the extension
// when format is empty
func Save(records []models.Record, path string, format models.OutputFormat) error {
	if format == "" {
		format = FormatFromPath(path)
	}

	switch format {
	case models.FormatJSONL:
		return SaveJSONL(records, path)
	case models.FormatJSON:
		return SaveJSON(records, path)
	case models.FormatCSV:
		return SaveCSV(records, path)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
