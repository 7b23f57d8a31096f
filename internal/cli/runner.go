package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Makepad-fr/tada/internal/ui"
	"github.com/spf13/cobra"
)

// Env is the process environment a command runs against.
type Env struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdEnv is the real stdin/stdout/stderr.
func StdEnv() Env {
	return Env{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// usageError marks errors that should exit with code 2.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, env Env) int {
	a := &app{env: env}
	ui.SetOutput(env.Out, env.Err)
	defer ui.SetOutput(nil, nil)
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(env.In)
	root.SetOut(env.Out)
	root.SetErr(env.Err)

	err := root.Execute()
	if err == nil {
		return 0
	}

	ui.Fail(err.Error())
	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(env.Err, "Run `tada --help` for usage.")
		return 2
	}
	return 1
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "tada",
		Short: "tada - a tiny task dashboard for the terminal",
		Long: `tada keeps a personal to-do list in local storage.

Run without a subcommand to open the interactive dashboard. Sign in first
with "tada login"; the name is only used to greet you.`,
		Example: `  tada login ada
  tada add "Buy milk" -d "oat, 2 litres"
  tada ls --status pending
  tada done 3f2a
  tada rm 3f2a`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("unknown subcommand: %s", args[0])
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if isBuiltin(cmd) {
				return nil
			}
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDashboard()
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err: err}
	})

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ~/.config/tada/config.toml merged with ./tada.toml)")
	flags.StringVar(&a.theme, "theme", "", "color theme: classic, neon or mono")

	root.AddCommand(
		newUICmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newAddCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newDoneCmd(a),
		newRemoveCmd(a),
		newEditCmd(a),
		newClearCmd(a),
		newExportCmd(a),
	)
	return root
}

// isBuiltin reports whether cmd is one of cobra's help or completion
// commands, which need neither config nor storage.
func isBuiltin(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return false
}

// exactArgs is cobra.ExactArgs with a usage line in the error.
func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}

// minArgs is cobra.MinimumNArgs with a usage line in the error.
func minArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
