package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/ui"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// CreatedLayout is how task creation times are shown.
const CreatedLayout = "2006-01-02 15:04"

// taskItem adapts model.Task to bubbles/list.Item.
type taskItem struct {
	model.Task
}

func (i taskItem) FilterValue() string { return i.Title }

// taskDelegate renders a task on two lines: checkbox, title and
// description, then the creation time.
type taskDelegate struct {
	styles ui.StyleSet
}

func (d taskDelegate) Height() int                               { return 2 }
func (d taskDelegate) Spacing() int                              { return 1 }
func (d taskDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(taskItem)
	if !ok {
		return
	}
	theme := ui.Current()

	box := d.styles.Muted.Render(theme.BoxUnchecked)
	title := it.Title
	if it.Completed {
		box = d.styles.Success.Render(theme.BoxChecked)
		title = d.styles.Done.Render(title)
	}
	preview := strings.Join(strings.Fields(it.DescriptionOr("No description")), " ")
	desc := d.styles.Muted.Render(ui.Truncate(preview, max(m.Width()-len(it.Title)-12, 16)))

	prefix := "  "
	if index == m.Index() {
		prefix = d.styles.Selected.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s — %s\n", prefix, box, title, desc)
	fmt.Fprintf(w, "    %s", d.styles.Help.Render("Created: "+it.CreatedAt.Local().Format(CreatedLayout)))
}
