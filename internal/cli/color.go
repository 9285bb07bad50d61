// Package cli provides color helpers for human output.
package cli

import "os"

const (
	colorReset = "\x1b[0m"
	colorGreen = "\x1b[32m"
	colorCyan  = "\x1b[36m"
	colorRed   = "\x1b[31m"
)

func colorEnabled() bool {
	if IsJSONOutput() {
		return false
	}
	if noColor {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return true
}

func colorize(text, color string) string {
	if !colorEnabled() || color == "" {
		return text
	}
	return color + text + colorReset
}
