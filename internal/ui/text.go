package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

var (
	rendererMu sync.Mutex
	renderers  = map[int]*glamour.TermRenderer{}
)

// Truncate shortens s to width cells, ending with "...".
func Truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return truncate.StringWithTail(s, uint(width), "...")
}

// Wrap word-wraps s at width and indents continuation lines by indent spaces.
func Wrap(s string, width, indent int) string {
	if width <= 0 {
		return s
	}
	wrapped := wordwrap.String(s, width)
	if indent <= 0 {
		return wrapped
	}
	return strings.ReplaceAll(wrapped, "\n", "\n"+strings.Repeat(" ", indent))
}

// Markdown formats markdown text for terminal output. Blank input renders
// as nothing; a renderer failure falls back to the raw text.
func Markdown(width int, input string) string {
	input = strings.TrimRight(strings.ReplaceAll(input, "\r\n", "\n"), "\n")
	if strings.TrimSpace(input) == "" {
		return ""
	}
	if width < 1 {
		width = 1
	}

	rendered := input
	if r := markdownRenderer(width); r != nil {
		if formatted, err := r.Render(input); err == nil {
			rendered = formatted
		}
	}
	return strings.Trim(rendered, "\n")
}

func markdownRenderer(width int) *glamour.TermRenderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if cached, ok := renderers[width]; ok {
		return cached
	}
	style := styles.ASCIIStyleConfig
	if ColorEnabled() {
		style = styles.DarkStyleConfig
	}
	style.Item.BlockPrefix = "- "
	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[width] = created
	return created
}
