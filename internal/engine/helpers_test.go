// internal/engine/helpers_test.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// quoteHTML renders one record container in the quotes.toscrape.com markup
func quoteHTML(text, author string, tags ...string) string {
	var b strings.Builder
	b.WriteString(`<div class="quote">`)
	if text != "" {
		fmt.Fprintf(&b, `<span class="text">%s</span>`, text)
	}
	if author != "" {
		fmt.Fprintf(&b, `<span>by <small class="author">%s</small></span>`, author)
	}
	b.WriteString(`<div class="tags">Tags:`)
	for _, t := range tags {
		fmt.Fprintf(&b, ` <a class="tag" href="/tag/%s/">%s</a>`, t, t)
	}
	b.WriteString(`</div></div>`)
	return b.String()
}

// pageHTML wraps containers and an optional pager element in a document
func pageHTML(next string, quotes ...string) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><title>Quotes</title></head><body><div class="col-md-8">`)
	for _, q := range quotes {
		b.WriteString(q)
	}
	b.WriteString(`<nav><ul class="pager">`)
	b.WriteString(next)
	b.WriteString(`</ul></nav></div></body></html>`)
	return b.String()
}

func nextLink(href string) string {
	return fmt.Sprintf(`<li class="next"><a href="%s">Next <span>&rarr;</span></a></li>`, href)
}

// fakeSession serves canned snapshots keyed by URL
type fakeSession struct {
	pages  map[string]string
	errs   map[string]error
	loads  []string
	closed int
}

func (s *fakeSession) Load(ctx context.Context, req LoadRequest) (*Snapshot, error) {
	s.loads = append(s.loads, req.URL)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := s.errs[req.URL]; ok {
		return nil, err
	}
	body, ok := s.pages[req.URL]
	if !ok {
		return nil, PageLoadTimeoutError(req.URL, errors.New("no such page"))
	}
	return &Snapshot{URL: req.URL, HTML: body, StatusCode: 200}, nil
}

func (s *fakeSession) Close() error {
	s.closed++
	return nil
}

type fakeLauncher struct {
	session *fakeSession
	err     error
}

func (l *fakeLauncher) Launch(ctx context.Context) (Session, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.session, nil
}

func (l *fakeLauncher) Name() string { return "fake" }
