package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/law-makers/quotes/pkg/models"
)

// maxLineSize bounds a single JSONL record when reading
const maxLineSize = 1 << 20

// SaveJSONL writes one JSON object per line to filepath, truncating any
// existing file. Non-ASCII text is written as UTF-8 without escaping.
func SaveJSONL(records []models.Record, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(file)
	if err := WriteJSONL(w, records); err != nil {
		file.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// WriteJSONL encodes records to w as line-delimited JSON
func WriteJSONL(w io.Writer, records []models.Record) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i, r := range records {
		if r.Tags == nil {
			r.Tags = []string{}
		}
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	return nil
}

// ReadJSONL parses line-delimited JSON records from r. Blank lines are skipped.
func ReadJSONL(r io.Reader) ([]models.Record, error) {
	records := []models.Record{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var rec models.Record
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return records, fmt.Errorf("line %d: %w", line, err)
		}
		if rec.Tags == nil {
			rec.Tags = []string{}
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return records, err
	}
	return records, nil
}

// LoadJSONL reads records from a JSONL file
func LoadJSONL(filepath string) ([]models.Record, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadJSONL(file)
}
