package ui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

var (
	reset = "\033[0m"
	bold  = "\033[1m"
	dim   = "\033[2m"

	fgGray   = "\033[90m"
	fgGreen  = "\033[32m"
	fgYellow = "\033[33m"
	fgBlue   = "\033[34m"
	fgRed    = "\033[31m"
	fgCyan   = "\033[36m"

	symCheck = "✔"
	symCross = "✖"
)

var (
	forceColor   bool
	disableColor bool
	monoTheme    bool

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetColorForcing overrides terminal detection.
func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
}

// SetOutput redirects OK/Fail/Panel output. Nil restores the defaults.
func SetOutput(out, errOut io.Writer) {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	stdout, stderr = out, errOut
}

func isTTY() bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ColorEnabled reports whether C will emit escape codes.
func ColorEnabled() bool {
	if disableColor || monoTheme {
		return false
	}
	return forceColor || isTTY()
}

// C wraps s in color when color output is enabled.
func C(color, s string) string {
	if color == "" || !ColorEnabled() {
		return s
	}
	return color + s + reset
}

func OK(msg string)   { fmt.Fprintln(stdout, C(fgGreen, symCheck+" "+msg)) }
func Fail(msg string) { fmt.Fprintln(stderr, C(fgRed, symCross+" "+msg)) }

// Hint prints a muted follow-up line on stderr.
func Hint(msg string) { fmt.Fprintln(stderr, C(fgGray, "Hint: "+msg)) }

// Width returns the terminal width, or fallback when stdout is not a terminal.
func Width(fallback int) int {
	w, _ := Size(fallback, 0)
	return w
}

// Size returns the terminal size, or the fallbacks when unknown.
func Size(fallbackW, fallbackH int) (int, int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return fallbackW, fallbackH
	}
	return w, h
}
