// internal/engine/pagination_test.go
package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractor_NextURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		pager    string
		fallback bool
		want     string
		wantOK   bool
	}{
		{
			name:   "relative href",
			url:    "https://quotes.toscrape.com/page/1/",
			pager:  nextLink("/page/2/"),
			want:   "https://quotes.toscrape.com/page/2/",
			wantOK: true,
		},
		{
			name:   "absolute href",
			url:    "https://quotes.toscrape.com/",
			pager:  nextLink("https://mirror.example.com/page/2/"),
			want:   "https://mirror.example.com/page/2/",
			wantOK: true,
		},
		{
			name:   "data-href when href empty",
			url:    "https://quotes.toscrape.com/page/3/",
			pager:  `<li class="next"><a href="" data-href="/page/4/">Next</a></li>`,
			want:   "https://quotes.toscrape.com/page/4/",
			wantOK: true,
		},
		{
			name:     "legacy fallback",
			url:      "https://quotes.toscrape.com/",
			pager:    `<li class="next"><a>Next</a></li>`,
			fallback: true,
			want:     "https://quotes.toscrape.com/page/2/",
			wantOK:   true,
		},
		{
			name:     "legacy fallback disabled",
			url:      "https://quotes.toscrape.com/",
			pager:    `<li class="next"><a>Next</a></li>`,
			fallback: false,
			wantOK:   false,
		},
		{
			name:     "no next element",
			url:      "https://quotes.toscrape.com/page/10/",
			pager:    `<li class="previous"><a href="/page/9/">Previous</a></li>`,
			fallback: true,
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := NewExtractor(Selectors{}, tt.fallback)
			page := parse(t, tt.url, pageHTML(tt.pager, quoteHTML("q", "a")))

			got, ok := ex.NextURL(page)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractor_NextURL_FirstMatchOnly(t *testing.T) {
	pager := nextLink("/page/2/") + nextLink("/page/9/")
	page := parse(t, "https://quotes.toscrape.com/", pageHTML(pager))

	got, ok := NewExtractor(Selectors{}, true).NextURL(page)

	assert.True(t, ok)
	assert.Equal(t, "https://quotes.toscrape.com/page/2/", got)
}

func TestExtractor_NextURL_LegacyFallbackOnPageTwo(t *testing.T) {
	page := parse(t, "https://quotes.toscrape.com/page/2", pageHTML(`<li class="next"><a>Next</a></li>`))

	_, ok := NewExtractor(Selectors{}, true).NextURL(page)

	assert.False(t, ok)
}
