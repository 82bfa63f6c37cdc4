package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// ASCII logo for the application
const ASCIILogo = `
    ╔═══════════════════════════════════════════════════════════╗
    ║  █████╗ ██╗   ██╗████████╗ ██████╗ ███████╗ ██████╗██████╗  ║
    ║ ██╔══██╗██║   ██║╚══██╔══╝██╔═══██╗██╔════╝██╔════╝██╔══██╗ ║
    ║ ███████║██║   ██║   ██║   ██║   ██║███████╗██║     ██████╔╝ ║
    ║ ██╔══██║██║   ██║   ██║   ██║   ██║╚════██║██║     ██╔══██╗ ║
    ║ ██║  ██║╚██████╔╝   ██║   ╚██████╔╝███████║╚██████╗██║  ██║ ║
    ║ ╚═╝  ╚═╝ ╚═════╝    ╚═╝    ╚═════╝ ╚══════╝ ╚═════╝╚═╝  ╚═╝ ║
    ║            HANDS-FREE SOURCE READER - AUTO-SCROLL           ║
    ╚═══════════════════════════════════════════════════════════╝
`

var (
	outputMu  sync.Mutex
	output    io.Writer = os.Stdout
	quietMode bool
	noColor   bool
)

// SetOutput redirects terminal output, mainly for tests
func SetOutput(w io.Writer) {
	outputMu.Lock()
	defer outputMu.Unlock()
	output = w
}

// SetQuietMode suppresses everything except errors
func SetQuietMode(quiet bool) {
	outputMu.Lock()
	defer outputMu.Unlock()
	quietMode = quiet
}

// SetNoColor disables ANSI colors
func SetNoColor(disabled bool) {
	outputMu.Lock()
	defer outputMu.Unlock()
	noColor = disabled
}

// Color functions for terminal output
var (
	Cyan    = colorize("\033[36m%s\033[0m")
	Yellow  = colorize("\033[33m%s\033[0m")
	Red     = colorize("\033[31m%s\033[0m")
	Green   = colorize("\033[32m%s\033[0m")
	Magenta = colorize("\033[35m%s\033[0m")
	Dim     = colorize("\033[2m%s\033[0m")
)

// colorize returns a function that wraps text with ANSI color codes
func colorize(colorString string) func(string) string {
	return func(text string) string {
		outputMu.Lock()
		plain := noColor
		outputMu.Unlock()
		if plain {
			return text
		}
		return fmt.Sprintf(colorString, text)
	}
}

// emit writes a line unless quiet mode hides it
func emit(always bool, format string, args ...interface{}) {
	outputMu.Lock()
	w, quiet := output, quietMode
	outputMu.Unlock()
	if quiet && !always {
		return
	}
	fmt.Fprintf(w, format, args...)
}

// PrintLogo prints the ASCII logo with color
func PrintLogo() {
	emit(false, "%s", Cyan(ASCIILogo))
}

// PrintError prints an error message in red. Errors survive quiet mode.
func PrintError(msg string, args ...interface{}) {
	if len(args) > 0 {
		emit(true, "%s\n", Red(msg+": "+fmt.Sprintf("%v", args[0])))
	} else {
		emit(true, "%s\n", Red(msg))
	}
}

// PrintSuccess prints a success message in green
func PrintSuccess(msg string) {
	emit(false, "%s\n", Green(msg))
}

// PrintInfo prints an info message in cyan
func PrintInfo(label string, value string) {
	emit(false, "%s: %s\n", Cyan(label), Yellow(value))
}

// PrintWarning prints a warning message in yellow
func PrintWarning(msg string, args ...interface{}) {
	if len(args) > 0 {
		emit(false, "%s\n", Yellow(msg+": "+fmt.Sprintf("%v", args[0])))
	} else {
		emit(false, "%s\n", Yellow(msg))
	}
}

// PrintHighlight prints a highlighted message in magenta
func PrintHighlight(msg string) {
	emit(false, "%s\n", Magenta(msg))
}

// Println prints plain text, honouring quiet mode
func Println(msg string) {
	emit(false, "%s\n", msg)
}
