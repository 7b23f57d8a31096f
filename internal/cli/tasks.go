package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Makepad-fr/tada/internal/task"
	"github.com/Makepad-fr/tada/internal/ui"
	"github.com/Makepad-fr/tada/internal/view"
	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a task (the title can be multiple words)",
		Args:  minArgs(1, "tada add <title...> [-d description]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.sessionTasks()
			if err != nil {
				return err
			}
			t, err := s.Add(joinArgs(args), description)
			if errors.Is(err, task.ErrEmptyTitle) || errors.Is(err, task.ErrTitleTooLong) {
				return usageError{err: fmt.Errorf("add: %w", err)}
			}
			if err != nil {
				return err
			}
			prefix := s.PrefixLengths()[strings.ToLower(t.ID)]
			ui.OK("added " + ui.ShortID(t.ID, prefix, shortIDLen))
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "task description (markdown)")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var (
		status string
		search string
		group  bool
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks",
		Args:    exactArgs(0, "tada ls [--status all|completed|pending] [--search text]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := view.ParseStatus(status)
			if err != nil {
				return usageError{err: err}
			}
			info, err := a.requireSession()
			if err != nil {
				return err
			}
			s, err := a.tasks()
			if err != nil {
				return err
			}

			q := view.Query{Status: st, Search: search}
			shown := view.Apply(s.Tasks(), q)
			if asJSON {
				return writeJSON(a.env.Out, shown)
			}
			if !cmd.Flags().Changed("group") {
				group = a.cfg.UI.Group
			}
			fmt.Fprint(a.env.Out, renderList(info.Username, s, shown, group, ui.Width(80)))
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&status, "status", string(view.StatusAll), "all, completed or pending")
	flags.StringVar(&search, "search", "", "case-insensitive title search")
	flags.BoolVar(&group, "group", false, "show pending and completed tasks in separate sections")
	flags.BoolVar(&asJSON, "json", false, "print matching tasks as JSON")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a task with its description",
		Args:  exactArgs(1, "tada show <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.sessionTasks()
			if err != nil {
				return err
			}
			id, err := resolve(s, args[0])
			if err != nil {
				return err
			}
			t, _ := s.Get(id)
			fmt.Fprint(a.env.Out, renderTask(t, ui.Width(80)))
			return nil
		},
	}
}

func newDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task between done and pending",
		Args:  exactArgs(1, "tada done <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.sessionTasks()
			if err != nil {
				return err
			}
			id, err := resolve(s, args[0])
			if err != nil {
				return err
			}
			t, err := s.Toggle(id)
			if err != nil {
				return err
			}
			if t.Completed {
				ui.OK("toggled: done")
			} else {
				ui.OK("toggled: pending")
			}
			return nil
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Remove a task",
		Args:    exactArgs(1, "tada rm <id> [--yes]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.sessionTasks()
			if err != nil {
				return err
			}
			id, err := resolve(s, args[0])
			if err != nil {
				return err
			}
			if !yes {
				t, _ := s.Get(id)
				fmt.Fprintln(a.env.Out, t.Title)
				ok, err := a.prompter().Confirm("Delete this task?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(a.env.Out, "kept")
					return nil
				}
			}
			if _, err := s.Delete(id); err != nil {
				return err
			}
			ui.OK("removed")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation")
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var title, description string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a task's title or description",
		Args:  exactArgs(1, "tada edit <id> [--title t] [--description d]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts task.EditOptions
			if cmd.Flags().Changed("title") {
				opts.Title = &title
			}
			if cmd.Flags().Changed("description") {
				opts.Description = &description
			}
			if opts.Title == nil && opts.Description == nil {
				return usagef("edit: nothing to change; pass --title or --description")
			}

			s, err := a.sessionTasks()
			if err != nil {
				return err
			}
			id, err := resolve(s, args[0])
			if err != nil {
				return err
			}
			if _, err := s.Edit(id, opts); err != nil {
				if errors.Is(err, task.ErrEmptyTitle) || errors.Is(err, task.ErrTitleTooLong) {
					return usageError{err: fmt.Errorf("edit: %w", err)}
				}
				return err
			}
			ui.OK("updated")
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&title, "title", "t", "", "new title")
	flags.StringVarP(&description, "description", "d", "", "new description (markdown)")
	return cmd
}

func newClearCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all completed tasks",
		Args:  exactArgs(0, "tada clear [--yes]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.sessionTasks()
			if err != nil {
				return err
			}
			done, _ := view.Stats(s.Tasks())
			if done == 0 {
				ui.OK("nothing to clear")
				return nil
			}
			if !yes {
				ok, err := a.prompter().Confirm(fmt.Sprintf("Delete %d completed tasks?", done))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(a.env.Out, "kept")
					return nil
				}
			}
			n, err := s.ClearCompleted()
			if err != nil {
				return err
			}
			ui.OK(fmt.Sprintf("cleared %d", n))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print every task as JSON or YAML",
		Args:  exactArgs(0, "tada export [--format json|yaml]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatJSON && format != formatYAML {
				return usagef("export: unknown format %q (want json or yaml)", format)
			}
			s, err := a.sessionTasks()
			if err != nil {
				return err
			}
			if format == formatYAML {
				return writeYAML(a.env.Out, s.Tasks())
			}
			return writeJSON(a.env.Out, s.Tasks())
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "json or yaml")
	return cmd
}
