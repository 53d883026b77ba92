// internal/engine/extractor.go
package engine

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/quotes/pkg/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
)

// Selectors are the CSS selectors that locate records and pagination on a page
type Selectors struct {
	Container string
	Text      string
	Author    string
	Tags      string
	Next      string
}

// DefaultSelectors matches the markup of quotes.toscrape.com
func DefaultSelectors() Selectors {
	return Selectors{
		Container: "div.quote",
		Text:      "span.text",
		Author:    "small.author",
		Tags:      "div.tags a.tag",
		Next:      "li.next > a",
	}
}

// withDefaults fills empty selectors from DefaultSelectors
func (s Selectors) withDefaults() Selectors {
	d := DefaultSelectors()
	if s.Container == "" {
		s.Container = d.Container
	}
	if s.Text == "" {
		s.Text = d.Text
	}
	if s.Author == "" {
		s.Author = d.Author
	}
	if s.Tags == "" {
		s.Tags = d.Tags
	}
	if s.Next == "" {
		s.Next = d.Next
	}
	return s
}

// Page is a parsed snapshot ready for extraction
type Page struct {
	URL string
	Doc *goquery.Document
}

// ParsePage parses the HTML of a snapshot
func ParsePage(snap *Snapshot) (*Page, error) {
	if snap == nil {
		return nil, fmt.Errorf("nil snapshot")
	}
	root, err := html.Parse(strings.NewReader(snap.HTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Page{URL: snap.URL, Doc: goquery.NewDocumentFromNode(root)}, nil
}

// Extractor pulls records out of parsed pages
type Extractor struct {
	sel            Selectors
	legacyFallback bool
	logger         zerolog.Logger
}

// NewExtractor creates an Extractor. legacyFallback enables the "/page/2/"
// synthesized next link when the next element carries no target.
func NewExtractor(sel Selectors, legacyFallback bool) *Extractor {
	return &Extractor{
		sel:            sel.withDefaults(),
		legacyFallback: legacyFallback,
		logger:         log.Logger,
	}
}

// WithLogger returns a copy of the extractor that logs to l
func (e *Extractor) WithLogger(l zerolog.Logger) *Extractor {
	c := *e
	c.logger = l
	return &c
}

// Selectors returns the selectors in use
func (e *Extractor) Selectors() Selectors {
	return e.sel
}

// Records extracts one record per container in document order. Containers
// with a missing required field are logged and skipped.
func (e *Extractor) Records(p *Page) []models.Record {
	records := []models.Record{}
	if p == nil || p.Doc == nil {
		return records
	}

	containers := p.Doc.Find(e.sel.Container)
	e.logger.Info().
		Str("url", p.URL).
		Int("containers", containers.Length()).
		Msg("Record containers found")

	containers.Each(func(i int, s *goquery.Selection) {
		rec, err := e.record(s)
		if err != nil {
			e.logger.Warn().
				Err(err).
				Str("url", p.URL).
				Int("index", i+1).
				Msg("Skipping record")
			return
		}
		records = append(records, rec)
		e.logger.Debug().
			Str("author", rec.Author).
			Int("tags", len(rec.Tags)).
			Msg("Record collected")
	})

	return records
}

func (e *Extractor) record(s *goquery.Selection) (models.Record, error) {
	text := s.Find(e.sel.Text).First()
	if text.Length() == 0 {
		return models.Record{}, missingField("text", e.sel.Text)
	}
	author := s.Find(e.sel.Author).First()
	if author.Length() == 0 {
		return models.Record{}, missingField("author", e.sel.Author)
	}

	tags := []string{}
	s.Find(e.sel.Tags).Each(func(_ int, t *goquery.Selection) {
		tags = append(tags, normalizeText(t.Text()))
	})

	return models.NewRecord(normalizeText(text.Text()), normalizeText(author.Text()), tags), nil
}

func missingField(field, selector string) error {
	return NewError(ErrCodeFieldExtraction, field+" element not found", nil).
		WithDetail("field", field).
		WithDetail("selector", selector)
}

// normalizeText collapses whitespace runs the way a browser renders text
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
