// Package tui holds the interactive screens: the login prompt and the task
// dashboard. Both write through to storage immediately; quitting never
// loses work.
package tui

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/task"
	"github.com/Makepad-fr/tada/internal/ui"
	"github.com/Makepad-fr/tada/internal/view"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeAddTitle
	modeAddDescription
	modeEditTitle
	modeEditDescription
	modeConfirmDelete
	modeConfirmClear
)

// Default size used until the first WindowSizeMsg arrives.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

type undoEntry struct {
	task  model.Task
	index int
}

// Dashboard is the bubbletea model for the task dashboard.
type Dashboard struct {
	store  *task.Store
	user   string
	keys   keyMap
	styles ui.StyleSet

	list   list.Model
	input  textinput.Model // shared by add & edit
	search textinput.Model
	query  view.Query

	mode    mode
	draft   string // title collected before the description step
	prefill string // description as shown in the input when editing starts
	editID  string // task being edited
	target  string // task awaiting delete confirmation
	undo    *undoEntry
	status  string // last error, shown under the list

	width, height int
}

// NewDashboard builds the dashboard over s for the logged-in user.
func NewDashboard(s *task.Store, user string) Dashboard {
	styles := ui.Styles()
	keys := newKeyMap()

	l := list.New(nil, taskDelegate{styles: styles}, defaultWidth, defaultHeight)
	l.SetShowTitle(false)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("task", "tasks")
	l.KeyMap.Quit.SetEnabled(false)
	l.AdditionalShortHelpKeys = keys.short
	l.AdditionalFullHelpKeys = keys.full

	in := textinput.New()
	in.Prompt = "> "
	in.CharLimit = task.MaxTitleLength

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search titles..."

	m := Dashboard{
		store:  s,
		user:   user,
		keys:   keys,
		styles: styles,
		list:   l,
		input:  in,
		search: search,
		query:  view.Query{Status: view.StatusAll},
		width:  defaultWidth,
		height: defaultHeight,
	}
	m.restyle()
	m.refresh()
	m.resize()
	return m
}

// restyle picks up the current theme.
func (m *Dashboard) restyle() {
	m.styles = ui.Styles()
	m.list.SetDelegate(taskDelegate{styles: m.styles})
	m.list.Styles.HelpStyle = m.styles.Help
	m.list.Styles.PaginationStyle = m.styles.Help
}

// RunDashboard starts the dashboard on the alternate screen.
func RunDashboard(s *task.Store, user string) error {
	p := tea.NewProgram(NewDashboard(s, user), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Dashboard) Init() tea.Cmd { return nil }

func (m Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
		m.resize()
		return m, nil
	}

	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey && keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case modeSearch:
		return m.updateSearch(msg)
	case modeAddTitle, modeAddDescription, modeEditTitle, modeEditDescription:
		return m.updateInput(msg)
	case modeConfirmDelete, modeConfirmClear:
		if isKey {
			return m.updateConfirm(keyMsg)
		}
		return m, nil
	}

	if isKey {
		if next, cmd, handled := m.updateBrowse(keyMsg); handled {
			return next, cmd
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Dashboard) updateBrowse(msg tea.KeyMsg) (Dashboard, tea.Cmd, bool) {
	switch {
	case msg.String() == "esc" && m.query.Search != "":
		m.search.SetValue("")
		m.query.Search = ""
		m.refresh()
		return m, nil, true

	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit, true

	case key.Matches(msg, m.keys.Toggle):
		if sel, ok := m.selected(); ok {
			m.apply(m.store.Toggle(sel.ID))
		}
		return m, nil, true

	case key.Matches(msg, m.keys.Add):
		m.mode = modeAddTitle
		m.status = ""
		m.draft = ""
		m.input.Placeholder = "New task title..."
		m.input.CharLimit = task.MaxTitleLength
		m.input.SetValue("")
		cmd := m.input.Focus()
		return m, cmd, true

	case key.Matches(msg, m.keys.Edit):
		sel, ok := m.selected()
		if !ok {
			return m, nil, true
		}
		m.mode = modeEditTitle
		m.status = ""
		m.editID = sel.ID
		m.input.Placeholder = "Edit title..."
		m.input.CharLimit = task.MaxTitleLength
		m.input.SetValue(sel.Title)
		m.input.CursorEnd()
		cmd := m.input.Focus()
		return m, cmd, true

	case key.Matches(msg, m.keys.Delete):
		if sel, ok := m.selected(); ok {
			m.mode = modeConfirmDelete
			m.target = sel.ID
		}
		return m, nil, true

	case key.Matches(msg, m.keys.Undo):
		if m.undo != nil {
			if err := m.store.Restore(m.undo.task, m.undo.index); err != nil {
				m.status = err.Error()
			} else {
				m.status = ""
				m.undo = nil
			}
			m.refresh()
		}
		return m, nil, true

	case key.Matches(msg, m.keys.Clear):
		if done, _ := view.Stats(m.store.Tasks()); done > 0 {
			m.mode = modeConfirmClear
		}
		return m, nil, true

	case key.Matches(msg, m.keys.Filter):
		m.query.Status = m.query.Status.Next()
		m.refresh()
		m.list.Select(0)
		return m, nil, true

	case key.Matches(msg, m.keys.Theme):
		if err := ui.SetTheme(ui.NextTheme(ui.Current().Name)); err == nil {
			m.restyle()
		}
		return m, nil, true

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		cmd := m.search.Focus()
		return m, cmd, true
	}
	return m, nil, false
}

func (m Dashboard) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			m.mode = modeBrowse
			m.search.Blur()
			return m, nil
		case "esc":
			m.mode = modeBrowse
			m.search.Blur()
			m.search.SetValue("")
			m.query.Search = ""
			m.refresh()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.query.Search {
		m.query.Search = m.search.Value()
		m.refresh()
		m.list.Select(0)
	}
	return m, cmd
}

func (m Dashboard) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			return m.leaveInput(), nil
		case "enter":
			return m.submitInput()
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitInput advances the two-step title → description flow.
func (m Dashboard) submitInput() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	switch m.mode {
	case modeAddTitle:
		if strings.TrimSpace(value) == "" {
			return m, nil
		}
		m.draft = value
		m.mode = modeAddDescription
		m.input.Placeholder = "Description (optional)..."
		m.input.CharLimit = 0
		m.input.SetValue("")
		return m, nil

	case modeAddDescription:
		added, err := m.store.Add(m.draft, value)
		m = m.leaveInput()
		if m.report(err) {
			m.refresh()
			m.selectID(added.ID)
		}
		return m, nil

	case modeEditTitle:
		m.draft = value
		m.mode = modeEditDescription
		m.input.Placeholder = "Edit description..."
		desc := ""
		if t, ok := m.store.Get(m.editID); ok {
			desc = t.Description
		}
		m.input.CharLimit = 0
		m.input.SetValue(desc)
		m.input.CursorEnd()
		m.prefill = m.input.Value()
		return m, nil

	case modeEditDescription:
		title := m.draft
		opts := task.EditOptions{Title: &title}
		// The single-line input flattens newlines, so an untouched
		// prefill keeps the stored description as is.
		if value != m.prefill {
			opts.Description = &value
		}
		_, err := m.store.Edit(m.editID, opts)
		m = m.leaveInput()
		m.apply(model.Task{}, err)
		return m, nil
	}
	return m, nil
}

func (m Dashboard) leaveInput() Dashboard {
	m.mode = modeBrowse
	m.draft = ""
	m.prefill = ""
	m.editID = ""
	m.input.SetValue("")
	m.input.Blur()
	return m
}

func (m Dashboard) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	confirmed := msg.String() == "y" || msg.String() == "Y"
	which := m.mode
	m.mode = modeBrowse
	if !confirmed {
		m.target = ""
		return m, nil
	}

	switch which {
	case modeConfirmDelete:
		index := m.indexOf(m.target)
		removed, err := m.store.Delete(m.target)
		if m.report(err) {
			m.undo = &undoEntry{task: removed, index: index}
		}
		m.target = ""
	case modeConfirmClear:
		n, err := m.store.ClearCompleted()
		if m.report(err) {
			log.Printf("tui: cleared %d completed tasks", n)
		}
	}
	m.refresh()
	return m, nil
}

// apply records the outcome of a store call and redraws.
func (m *Dashboard) apply(_ model.Task, err error) {
	m.report(err)
	m.refresh()
}

// report shows store failures in the status line. Empty titles are
// dropped without comment. It reports whether err was nil.
func (m *Dashboard) report(err error) bool {
	switch {
	case err == nil:
		m.status = ""
		return true
	case errors.Is(err, task.ErrEmptyTitle):
		m.status = ""
	default:
		log.Printf("tui: %v", err)
		m.status = err.Error()
	}
	return false
}

func (m *Dashboard) refresh() {
	visible := view.Apply(m.store.Tasks(), m.query)
	items := make([]list.Item, 0, len(visible))
	for _, t := range visible {
		items = append(items, taskItem{Task: t})
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if len(items) > 0 {
		m.list.Select(min(idx, len(items)-1))
	}
}

func (m *Dashboard) resize() {
	const chrome = 9 // header, tabs, input bar, status, border
	m.list.SetSize(max(m.width-4, 20), max(m.height-chrome, 4))
}

func (m Dashboard) selected() (model.Task, bool) {
	it, ok := m.list.SelectedItem().(taskItem)
	if !ok {
		return model.Task{}, false
	}
	return it.Task, true
}

func (m *Dashboard) selectID(id string) {
	for i, it := range m.list.Items() {
		if t, ok := it.(taskItem); ok && t.ID == id {
			m.list.Select(i)
			return
		}
	}
}

// indexOf is the position of id in the whole collection, for undo.
func (m Dashboard) indexOf(id string) int {
	for i, t := range m.store.Tasks() {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (m Dashboard) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(m.tabs())
	b.WriteString("\n\n")

	if len(m.list.Items()) == 0 {
		empty := "No tasks yet"
		if m.store.Len() > 0 {
			empty = "No matching tasks"
		}
		b.WriteString(m.styles.Muted.Render(empty))
		b.WriteString("\n")
	} else {
		b.WriteString(m.list.View())
	}

	switch m.mode {
	case modeAddTitle, modeAddDescription, modeEditTitle, modeEditDescription:
		b.WriteString("\n")
		b.WriteString(m.styles.Border.Render(m.inputTitle() + "\n" + m.input.View()))
	case modeConfirmDelete:
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render("Delete this task? [y/n]"))
	case modeConfirmClear:
		done, _ := view.Stats(m.store.Tasks())
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Delete %d completed tasks? [y/n]", done)))
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render("✖ " + m.status))
	}
	return m.styles.Border.Render(b.String())
}

func (m Dashboard) header() string {
	tasks := m.store.Tasks()
	done, pending := view.Stats(tasks)
	theme := ui.Current()
	line := fmt.Sprintf("%s  %s  %s %d  %s %d  %s %d",
		m.styles.Title.Render("Task Dashboard"),
		m.styles.Muted.Render("· "+m.user),
		m.styles.Success.Render(theme.SymDone), done,
		m.styles.Pending.Render(theme.SymUnchecked), pending,
		m.styles.Accent.Render("Total"), len(tasks),
	)
	return line + "\n" + m.styles.Muted.Render(ui.ProgressBar(done, done+pending, 28))
}

func (m Dashboard) tabs() string {
	parts := make([]string, 0, len(view.Statuses())+1)
	for _, st := range view.Statuses() {
		style := m.styles.Tab
		if st == m.query.Status {
			style = m.styles.TabOn
		}
		parts = append(parts, style.Render(st.Label()))
	}
	if m.mode == modeSearch || m.query.Search != "" {
		parts = append(parts, "  "+m.search.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Dashboard) inputTitle() string {
	switch m.mode {
	case modeAddTitle:
		return "Add task: title"
	case modeAddDescription:
		return "Add task: description for " + m.draft
	case modeEditTitle:
		return "Edit task: title"
	default:
		return "Edit task: description"
	}
}
