// Package useragent chooses the browser identity presented by a session.
package useragent

import (
	"math/rand"
	"strings"

	browser "github.com/EDDYCJY/fake-useragent"
	"github.com/law-makers/quotes/internal/config"
)

// Picker selects a user agent string
type Picker struct {
	// Random produces a candidate user agent; may return "".
	Random    func() string
	Fallbacks []string
	Intn      func(n int) int
}

// NewPicker returns a Picker backed by fake-useragent and the fixed fallback list
func NewPicker() *Picker {
	return &Picker{
		Random:    browser.Random,
		Fallbacks: config.FallbackUserAgents,
		Intn:      rand.Intn,
	}
}

// Pick returns override when set, otherwise a random user agent.
// When the random source yields nothing a fallback is chosen uniformly.
func (p *Picker) Pick(override string) string {
	if ua := strings.TrimSpace(override); ua != "" {
		return ua
	}
	if p.Random != nil {
		if ua := strings.TrimSpace(safeRandom(p.Random)); ua != "" {
			return ua
		}
	}
	if len(p.Fallbacks) == 0 {
		return ""
	}
	intn := p.Intn
	if intn == nil {
		intn = rand.Intn
	}
	return p.Fallbacks[intn(len(p.Fallbacks))]
}

// safeRandom shields the caller from panics inside the random source
func safeRandom(fn func() string) (ua string) {
	defer func() {
		if recover() != nil {
			ua = ""
		}
	}()
	return fn()
}
