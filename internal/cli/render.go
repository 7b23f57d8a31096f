package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/task"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
	"github.com/Makepad-fr/tada/internal/view"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// shortIDLen is the minimum number of id characters shown in listings.
const shortIDLen = 4

// renderList draws the panel printed by `tada ls`.
func renderList(user string, s *task.Store, shown []model.Task, group bool, width int) string {
	st := ui.Styles()
	theme := ui.Current()
	all := s.Tasks()
	done, pending := view.Stats(all)
	prefixes := s.PrefixLengths()

	lines := []string{
		fmt.Sprintf("%s  %s  %s %d  %s %d  %s %d",
			st.Title.Render("Tasks"),
			st.Muted.Render("· "+user),
			st.Success.Render(theme.SymDone), done,
			st.Pending.Render(theme.SymUnchecked), pending,
			st.Accent.Render("Total"), len(all),
		),
		st.Muted.Render(ui.ProgressBar(done, done+pending, 28)),
		"",
	}

	inner := max(width-4, 20)
	switch {
	case len(shown) == 0 && len(all) == 0:
		lines = append(lines, st.Muted.Render("No tasks yet"))
	case len(shown) == 0:
		lines = append(lines, st.Muted.Render("No matching tasks"))
	case group:
		p, d := view.Group(shown)
		lines = append(lines, st.Pending.Render(fmt.Sprintf("Pending (%d)", len(p))))
		lines = appendTasks(lines, p, prefixes, inner)
		lines = append(lines, "", st.Success.Render(fmt.Sprintf("Done (%d)", len(d))))
		lines = appendTasks(lines, d, prefixes, inner)
	default:
		lines = appendTasks(lines, shown, prefixes, inner)
	}

	var b strings.Builder
	b.WriteString(ui.PanelString(lines))
	if len(all) == 0 {
		b.WriteString(st.Help.Render(`Tip: tada add "Buy milk" -d "oat, 2 litres"`) + "\n")
	} else {
		b.WriteString(st.Help.Render("Tip: tada done <id> toggles, tada show <id> prints the description") + "\n")
	}
	return b.String()
}

func appendTasks(lines []string, tasks []model.Task, prefixes map[string]int, width int) []string {
	st := ui.Styles()
	theme := ui.Current()
	for _, t := range tasks {
		box := st.Muted.Render(theme.BoxUnchecked)
		title := ui.Truncate(t.Title, width-shortIDLen-6)
		if t.Completed {
			box = st.Success.Render(theme.BoxChecked)
			title = st.Done.Render(title)
		}
		p := prefixes[strings.ToLower(t.ID)]
		id := ui.HighlightID(ui.ShortID(t.ID, p, shortIDLen), p)
		lines = append(lines, fmt.Sprintf("%s %s  %s", box, id, title))

		if t.Description != "" {
			for _, ln := range strings.Split(ui.Wrap(t.Description, width-6, 0), "\n") {
				lines = append(lines, "      "+st.Muted.Render(ln))
			}
		}
	}
	return lines
}

// renderTask is the detail view printed by `tada show`.
func renderTask(t model.Task, width int) string {
	st := ui.Styles()
	status := st.Pending.Render("pending")
	if t.Completed {
		status = st.Success.Render("done")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", st.Title.Render(t.Title))
	fmt.Fprintf(&b, "%s %s\n", st.Muted.Render("id:     "), t.ID)
	fmt.Fprintf(&b, "%s %s\n", st.Muted.Render("status: "), status)
	fmt.Fprintf(&b, "%s %s\n", st.Muted.Render("created:"), t.CreatedAt.Local().Format(tui.CreatedLayout))
	b.WriteString("\n")

	if body := ui.Markdown(max(width-2, 20), t.Description); body != "" {
		b.WriteString(body)
		b.WriteString("\n")
	} else {
		b.WriteString(st.Muted.Render("No description"))
		b.WriteString("\n")
	}
	return b.String()
}

func writeJSON(w io.Writer, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeYAML(w io.Writer, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tasks); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
