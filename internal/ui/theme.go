package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name                                          string
	Title, Muted, Accent, Success, Error, Pending string
	BoxUnchecked, BoxChecked                      string
	CornerTL, CornerTR, CornerBL, CornerBR        string
	H, V                                          string
	SymDone, SymUnchecked                         string

	// Colors for the lipgloss styles used by the dashboard.
	TitleColor, SuccessColor, PendingColor, AccentColor, ErrorColor, BorderColor lipgloss.TerminalColor
}

// Theme names.
const (
	ThemeClassic = "classic"
	ThemeNeon    = "neon"
	ThemeMono    = "mono"
)

var current = themeFor(ThemeClassic)

// Themes lists the known theme names.
func Themes() []string {
	return []string{ThemeClassic, ThemeNeon, ThemeMono}
}

// SetTheme switches the current theme. Empty selects classic; unknown
// names are an error and leave the theme unchanged.
func SetTheme(name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = ThemeClassic
	}
	known := false
	for _, t := range Themes() {
		if t == name {
			known = true
		}
	}
	if !known {
		return fmt.Errorf("unknown theme %q (want one of %s)", name, strings.Join(Themes(), ", "))
	}
	current = themeFor(name)
	monoTheme = name == ThemeMono
	return nil
}

func themeFor(name string) Theme {
	switch name {
	case ThemeNeon:
		return Theme{
			Name:  ThemeNeon,
			Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m",
			Success: fgGreen, Error: fgRed, Pending: "\033[93m",
			BoxUnchecked: "◻", BoxChecked: "◼",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			SymDone: "✔", SymUnchecked: "•",
			TitleColor: lipgloss.Color("13"), SuccessColor: lipgloss.Color("10"),
			PendingColor: lipgloss.Color("11"), AccentColor: lipgloss.Color("14"),
			ErrorColor: lipgloss.Color("9"), BorderColor: lipgloss.Color("13"),
		}
	case ThemeMono:
		return Theme{
			Name:  ThemeMono,
			Title: "", Muted: "", Accent: "", Success: "", Error: "", Pending: "",
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			SymDone: "x", SymUnchecked: "-",
			TitleColor: lipgloss.NoColor{}, SuccessColor: lipgloss.NoColor{},
			PendingColor: lipgloss.NoColor{}, AccentColor: lipgloss.NoColor{},
			ErrorColor: lipgloss.NoColor{}, BorderColor: lipgloss.NoColor{},
		}
	default:
		return Theme{
			Name:  ThemeClassic,
			Title: bold, Muted: fgGray, Accent: fgBlue,
			Success: fgGreen, Error: fgRed, Pending: fgYellow,
			BoxUnchecked: "☐", BoxChecked: "☑",
			CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
			H: "─", V: "│",
			SymDone: "✔", SymUnchecked: "•",
			TitleColor: lipgloss.NoColor{}, SuccessColor: lipgloss.Color("42"),
			PendingColor: lipgloss.Color("214"), AccentColor: lipgloss.Color("12"),
			ErrorColor: lipgloss.Color("9"), BorderColor: lipgloss.Color("8"),
		}
	}
}

// Current exposes what renderers need.
func Current() Theme { return current }

// NextTheme is the theme after name in Themes order, wrapping around.
func NextTheme(name string) string {
	themes := Themes()
	for i, t := range themes {
		if t == name {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}
