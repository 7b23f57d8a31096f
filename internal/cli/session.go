package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/Makepad-fr/tada/internal/session"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// interactive reports whether both ends of env are terminals.
func (a *app) interactive() bool {
	in, ok := a.env.In.(*os.File)
	if !ok || !term.IsTerminal(int(in.Fd())) {
		return false
	}
	out, ok := a.env.Out.(*os.File)
	return ok && term.IsTerminal(int(out.Fd()))
}

func newUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive dashboard (default)",
		Args:  exactArgs(0, "tada ui"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDashboard()
		},
	}
}

// runDashboard shows the login screen when needed, then the dashboard.
func (a *app) runDashboard() error {
	if !a.interactive() {
		return usagef("the dashboard needs a terminal; see `tada --help` for scriptable commands")
	}

	info, err := a.gate.Current()
	if errors.Is(err, session.ErrNotLoggedIn) {
		info, err = tui.RunLogin(a.gate)
		if errors.Is(err, tui.ErrLoginCancelled) {
			return nil
		}
	}
	if err != nil {
		return err
	}

	s, err := a.tasks()
	if err != nil {
		return err
	}
	if err := tui.RunDashboard(s, info.Username); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func newLoginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login [username]",
		Short: "Sign in with a display name",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			switch {
			case len(args) > 0:
				name = joinArgs(args)
			case a.interactive():
				info, err := tui.RunLogin(a.gate)
				if errors.Is(err, tui.ErrLoginCancelled) {
					return nil
				}
				if err != nil {
					return err
				}
				ui.OK("logged in as " + info.Username)
				return nil
			default:
				line, err := a.prompter().Line("Username: ")
				if err != nil {
					return err
				}
				name = line
			}

			info, err := a.gate.Login(name)
			if errors.Is(err, session.ErrEmptyUsername) {
				return usageError{err: err}
			}
			if err != nil {
				return err
			}
			ui.OK("logged in as " + info.Username)
			if os.Getenv(session.EnvUser) != "" {
				ui.Hint(session.EnvUser + " is set and takes precedence")
			}
			return nil
		},
	}
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored username",
		Args:  exactArgs(0, "tada logout"),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.gate.Logout()
			if err != nil {
				return err
			}
			if info.Source == session.SourceEnv {
				ui.OK("username is provided by " + session.EnvUser + " env var (nothing to delete)")
				return nil
			}
			ui.OK("logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the current username",
		Args:  exactArgs(0, "tada whoami"),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.requireSession()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.env.Out, info.Username)
			fmt.Fprintln(a.env.Out, ui.Styles().Muted.Render("source: "+info.Source))
			return nil
		},
	}
}
