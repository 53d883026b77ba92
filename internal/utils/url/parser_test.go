package urlutil

import "testing"

func TestValidate(t *testing.T) {
	valid := []string{
		"http://example.com",
		"https://quotes.toscrape.com/page/2/",
	}
	for _, u := range valid {
		if err := ValidateURL(u); err != nil {
			t.Fatalf("expected valid, got error: %v", err)
		}
	}

	invalid := []string{"ftp://example.com", "//example.com", "http:///", "/page/2/"}
	for _, u := range invalid {
		if err := ValidateURL(u); err == nil {
			t.Fatalf("expected invalid for %s", u)
		}
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		base, href, want string
	}{
		{"https://quotes.toscrape.com/", "/page/2/", "https://quotes.toscrape.com/page/2/"},
		{"https://quotes.toscrape.com/page/2/", "/page/3/", "https://quotes.toscrape.com/page/3/"},
		{"https://quotes.toscrape.com/tag/love/", "page/2/", "https://quotes.toscrape.com/tag/love/page/2/"},
		{"https://quotes.toscrape.com/", "https://other.example/page/2/", "https://other.example/page/2/"},
		{"https://quotes.toscrape.com/", "  /page/2/ ", "https://quotes.toscrape.com/page/2/"},
	}
	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			if got := ResolveURL(tt.base, tt.href); got != tt.want {
				t.Errorf("ResolveURL(%q, %q) = %q, want %q", tt.base, tt.href, got, tt.want)
			}
		})
	}
}

func TestAppendPath(t *testing.T) {
	if got := AppendPath("https://quotes.toscrape.com/", "/page/2/"); got != "https://quotes.toscrape.com/page/2/" {
		t.Errorf("unexpected: %s", got)
	}
	if got := AppendPath("https://quotes.toscrape.com", "page/2/"); got != "https://quotes.toscrape.com/page/2/" {
		t.Errorf("unexpected: %s", got)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("https://quotes.toscrape.com"); got != "https://quotes.toscrape.com/" {
		t.Errorf("unexpected: %s", got)
	}
	if got := Normalize("https://quotes.toscrape.com/page/2/#top"); got != "https://quotes.toscrape.com/page/2/" {
		t.Errorf("unexpected: %s", got)
	}
}

func TestHost(t *testing.T) {
	if got := Host("https://quotes.toscrape.com/page/2/"); got != "https://quotes.toscrape.com" {
		t.Errorf("unexpected: %s", got)
	}
	if got := Host("not a url"); got != "" {
		t.Errorf("expected empty host, got %s", got)
	}
}
