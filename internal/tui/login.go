package tui

import (
	"errors"
	"fmt"

	"github.com/Makepad-fr/tada/internal/session"
	"github.com/Makepad-fr/tada/internal/ui"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrLoginCancelled is returned by RunLogin when the user quits the prompt.
var ErrLoginCancelled = errors.New("login cancelled")

// Login is the username prompt shown before the dashboard.
type Login struct {
	gate   *session.Gate
	styles ui.StyleSet
	input  textinput.Model

	info   session.Info
	done   bool
	status string
}

// NewLogin builds the login prompt over gate.
func NewLogin(gate *session.Gate) Login {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "Username"
	in.CharLimit = 64
	in.Focus()
	return Login{gate: gate, styles: ui.Styles(), input: in}
}

// RunLogin shows the prompt and returns the stored session.
func RunLogin(gate *session.Gate) (session.Info, error) {
	final, err := tea.NewProgram(NewLogin(gate)).Run()
	if err != nil {
		return session.Info{}, err
	}
	m, ok := final.(Login)
	if !ok || !m.done {
		return session.Info{}, ErrLoginCancelled
	}
	return m.info, nil
}

// Info is the session created on submit; ok is false until then.
func (m Login) Info() (session.Info, bool) { return m.info, m.done }

func (m Login) Init() tea.Cmd { return textinput.Blink }

func (m Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			info, err := m.gate.Login(m.input.Value())
			switch {
			case errors.Is(err, session.ErrEmptyUsername):
				return m, nil
			case err != nil:
				m.status = err.Error()
				return m, nil
			}
			m.info, m.done = info, true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Login) View() string {
	body := fmt.Sprintf("%s\n%s\n\n%s",
		m.styles.Title.Render("Welcome Back"),
		m.styles.Muted.Render("Please enter your username to continue"),
		m.input.View(),
	)
	if m.status != "" {
		body += "\n" + m.styles.Error.Render("✖ "+m.status)
	}
	body += "\n\n" + m.styles.Help.Render("enter sign in • esc quit")
	return m.styles.Border.Render(body) + "\n"
}
