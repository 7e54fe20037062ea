package formatter

import "github.com/SavinRazvan/hydra-logger/core"

// ANSI escape sequences used by the colored plain-text output.
const (
	ansiReset     = "\x1b[0m"
	ansiFaint     = "\x1b[90m"
	ansiGreen     = "\x1b[32m"
	ansiYellow    = "\x1b[33m"
	ansiCyan      = "\x1b[36m"
	ansiBrightRed = "\x1b[1;31m"
	ansiRed       = "\x1b[31m"
)

// levelColor maps a level to the escape sequence applied to its
// bracket token.
func levelColor(l core.Level) string {
	switch l {
	case core.DebugLevel:
		return ansiFaint
	case core.InfoLevel:
		return ansiGreen
	case core.WarningLevel:
		return ansiYellow
	case core.ErrorLevel:
		return ansiRed
	case core.CriticalLevel:
		return ansiBrightRed
	default:
		return ansiFaint
	}
}
