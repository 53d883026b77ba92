// internal/engine/pagination.go
package engine

import (
	"strings"

	urlutil "github.com/law-makers/quotes/internal/utils/url"
)

// legacyNextSegment is appended to the current URL when the next element has
// no usable target. It is never appended to a URL that already ends with it.
const legacyNextSegment = "/page/2/"

// NextURL reports the target of the page's "next" element. ok is false when
// the page has no next element, which ends the crawl normally.
func (e *Extractor) NextURL(p *Page) (next string, ok bool) {
	if p == nil || p.Doc == nil {
		return "", false
	}

	link := p.Doc.Find(e.sel.Next).First()
	if link.Length() == 0 {
		return "", false
	}

	for _, attr := range []string{"href", "data-href"} {
		if v, exists := link.Attr(attr); exists && strings.TrimSpace(v) != "" {
			return urlutil.ResolveURL(p.URL, v), true
		}
	}

	if !e.legacyFallback {
		e.logger.Warn().
			Str("url", p.URL).
			Msg("Next element has no target and legacy fallback is disabled")
		return "", false
	}

	if strings.HasSuffix(strings.TrimRight(p.URL, "/")+"/", legacyNextSegment) {
		e.logger.Warn().
			Str("url", p.URL).
			Msg("Next element has no target on a synthesized page, stopping")
		return "", false
	}

	next = urlutil.AppendPath(p.URL, legacyNextSegment)
	e.logger.Warn().
		Str("url", p.URL).
		Str("next", next).
		Msg("Next element has no target, synthesizing page URL")
	return next, true
}
