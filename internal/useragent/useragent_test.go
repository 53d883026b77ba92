package useragent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickOverride(t *testing.T) {
	p := &Picker{Random: func() string { return "random-ua" }}
	assert.Equal(t, "custom-ua", p.Pick("  custom-ua "))
}

func TestPickRandom(t *testing.T) {
	p := &Picker{Random: func() string { return "random-ua" }, Fallbacks: []string{"fb"}}
	assert.Equal(t, "random-ua", p.Pick(""))
}

func TestPickFallback(t *testing.T) {
	fallbacks := []string{"a", "b", "c"}
	p := &Picker{
		Random:    func() string { return "" },
		Fallbacks: fallbacks,
		Intn:      func(n int) int { return n - 1 },
	}
	assert.Equal(t, "c", p.Pick(""))

	p.Random = func() string { panic("no data") }
	p.Intn = func(int) int { return 0 }
	assert.Equal(t, "a", p.Pick(""))
}

func TestNewPickerFallbacks(t *testing.T) {
	p := NewPicker()
	p.Random = nil
	ua := p.Pick("")
	assert.Contains(t, p.Fallbacks, ua)
}
