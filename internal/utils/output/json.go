package output

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/law-makers/quotes/pkg/models"
)

// SaveJSON writes records to filepath as an indented JSON array
func SaveJSON(records []models.Record, filepath string) error {
	if records == nil {
		records = []models.Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return err
	}
	return os.WriteFile(filepath, buf.Bytes(), 0644)
}
