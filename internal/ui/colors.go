package ui

// ANSI color and style codes for CLI output. They are variables so color can
// be switched off with SetEnabled.
var (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorDim   = "\033[2m"

	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorWhite  = "\033[97m"
	ColorRed    = "\033[31m"
)

var palette = [...]*string{
	&ColorReset, &ColorBold, &ColorDim,
	&ColorCyan, &ColorGreen, &ColorYellow, &ColorWhite, &ColorRed,
}

var codes = [...]string{
	"\033[0m", "\033[1m", "\033[2m",
	"\033[36m", "\033[32m", "\033[33m", "\033[97m", "\033[31m",
}

// SetEnabled turns ANSI styling on or off for all helpers
func SetEnabled(on bool) {
	for i, p := range palette {
		if on {
			*p = codes[i]
		} else {
			*p = ""
		}
	}
}

func Bold(s string) string {
	return ColorBold + s + ColorReset
}

func Success(s string) string {
	return ColorGreen + s + ColorReset
}

func Info(s string) string {
	return ColorDim + ColorYellow + s + ColorReset
}

func Error(s string) string {
	return ColorRed + s + ColorReset
}
