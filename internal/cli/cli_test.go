package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/ui"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// setupEnv isolates HOME, the data dir and the working directory.
func setupEnv(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TADA_HOME", filepath.Join(home, ".tada"))
	t.Setenv("TADA_USER", "")
	t.Setenv(EnvDebug, "")
	t.Setenv("NO_COLOR", "1")
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Cleanup(func() {
		_ = ui.SetTheme(ui.ThemeClassic)
		ui.SetColorForcing(false, false)
	})
	return home
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()

	var out, errOut bytes.Buffer
	code := Run(args, Env{In: strings.NewReader(stdin), Out: &out, Err: &errOut})
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func mustRun(t *testing.T, args ...string) result {
	t.Helper()

	r := run(t, "", args...)
	if r.code != 0 {
		t.Fatalf("tada %s: exit %d\nstdout: %s\nstderr: %s", strings.Join(args, " "), r.code, r.stdout, r.stderr)
	}
	return r
}

func listJSON(t *testing.T, args ...string) []model.Task {
	t.Helper()

	r := mustRun(t, append([]string{"ls", "--json"}, args...)...)
	var tasks []model.Task
	if err := json.Unmarshal([]byte(r.stdout), &tasks); err != nil {
		t.Fatalf("parse ls --json: %v\n%s", err, r.stdout)
	}
	return tasks
}

func TestExitCodes(t *testing.T) {
	setupEnv(t)
	mustRun(t, "login", "ada")

	tests := []struct {
		name string
		args []string
		code int
		want string
	}{
		{name: "unknown subcommand", args: []string{"frobnicate"}, code: 2, want: "unknown subcommand: frobnicate"},
		{name: "unknown flag", args: []string{"ls", "--nope"}, code: 2, want: "unknown flag"},
		{name: "missing id", args: []string{"done"}, code: 2, want: "usage: tada done <id>"},
		{name: "empty title", args: []string{"add", " "}, code: 2, want: "title cannot be empty"},
		{name: "bad status", args: []string{"ls", "--status", "archived"}, code: 2, want: "invalid status"},
		{name: "bad theme", args: []string{"--theme", "sparkly", "ls"}, code: 2, want: "unknown theme"},
		{name: "bad export format", args: []string{"export", "--format", "csv"}, code: 2, want: "unknown format"},
		{name: "unknown id", args: []string{"done", "zzzz"}, code: 1, want: "task not found"},
		{name: "no terminal", args: []string{"ui"}, code: 2, want: "needs a terminal"},
		{name: "list", args: []string{"ls"}, code: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := run(t, "", tt.args...)
			if r.code != tt.code {
				t.Fatalf("expected exit %d, got %d (stderr %q)", tt.code, r.code, r.stderr)
			}
			if tt.want != "" && !strings.Contains(r.stderr, tt.want) {
				t.Fatalf("expected stderr to contain %q, got %q", tt.want, r.stderr)
			}
		})
	}
}

func TestHelpSkipsConfigAndStorage(t *testing.T) {
	home := setupEnv(t)
	if err := os.WriteFile("tada.toml", []byte("[storage]\nbackend = \"redis\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	for _, args := range [][]string{{"help"}, {"help", "add"}, {"completion", "bash"}, {"--help"}} {
		r := run(t, "", args...)
		if r.code != 0 {
			t.Fatalf("tada %s: expected exit 0, got %d (stderr %q)", strings.Join(args, " "), r.code, r.stderr)
		}
	}
	if _, err := os.Stat(filepath.Join(home, ".tada")); !os.IsNotExist(err) {
		t.Fatalf("expected no data dir, got %v", err)
	}

	if r := run(t, "", "ls"); r.code != 2 || !strings.Contains(r.stderr, "unknown storage backend") {
		t.Fatalf("expected bad backend to fail real commands, got %d %q", r.code, r.stderr)
	}
}

func TestTaskCommandsRequireSession(t *testing.T) {
	setupEnv(t)

	for _, args := range [][]string{{"ls"}, {"add", "x"}, {"whoami"}, {"export"}} {
		r := run(t, "", args...)
		if r.code != 2 {
			t.Fatalf("tada %s: expected exit 2, got %d", args[0], r.code)
		}
		if !strings.Contains(r.stderr, "not logged in. Run: tada login") {
			t.Fatalf("tada %s: unexpected stderr %q", args[0], r.stderr)
		}
	}
}

func TestLoginFromStdin(t *testing.T) {
	setupEnv(t)

	r := run(t, "\n", "login")
	if r.code != 2 || !strings.Contains(r.stderr, "username cannot be empty") {
		t.Fatalf("expected empty username to be a usage error, got %d %q", r.code, r.stderr)
	}

	r = run(t, "  ada  \n", "login")
	if r.code != 0 || !strings.Contains(r.stdout, "logged in as ada") {
		t.Fatalf("unexpected login result %d %q", r.code, r.stdout)
	}

	r = mustRun(t, "whoami")
	if !strings.HasPrefix(r.stdout, "ada\n") {
		t.Fatalf("expected ada, got %q", r.stdout)
	}
}

func TestTaskLifecycle(t *testing.T) {
	setupEnv(t)
	mustRun(t, "login", "ada")

	mustRun(t, "add", "Buy", "milk")
	tasks := listJSON(t)
	if len(tasks) != 1 || tasks[0].Title != "Buy milk" || tasks[0].Completed {
		t.Fatalf("unexpected tasks after add %+v", tasks)
	}
	id := tasks[0].ID

	mustRun(t, "done", id[:8])
	if tasks := listJSON(t, "--status", "completed"); len(tasks) != 1 {
		t.Fatalf("expected one completed task, got %+v", tasks)
	}

	mustRun(t, "edit", id, "--title", "Buy oat milk")
	tasks = listJSON(t)
	if tasks[0].Title != "Buy oat milk" || !tasks[0].Completed {
		t.Fatalf("expected edit to keep completion, got %+v", tasks[0])
	}

	mustRun(t, "rm", id, "--yes")
	if tasks := listJSON(t); len(tasks) != 0 {
		t.Fatalf("expected empty collection, got %+v", tasks)
	}
}

func TestEditOnlyAppliesGivenFlags(t *testing.T) {
	setupEnv(t)
	mustRun(t, "login", "ada")
	mustRun(t, "add", "Water plants", "-d", "the fern too")
	id := listJSON(t)[0].ID

	mustRun(t, "edit", id, "--description", "")
	got := listJSON(t)[0]
	if got.Title != "Water plants" || got.Description != "" {
		t.Fatalf("expected only the description cleared, got %+v", got)
	}

	r := run(t, "", "edit", id, "--title", "  ")
	if r.code != 2 {
		t.Fatalf("expected exit 2, got %d", r.code)
	}
	if got := listJSON(t)[0]; got.Title != "Water plants" {
		t.Fatalf("expected title unchanged, got %q", got.Title)
	}
}

func TestRemoveAsksForConfirmation(t *testing.T) {
	setupEnv(t)
	mustRun(t, "login", "ada")
	mustRun(t, "add", "Call mom")
	id := listJSON(t)[0].ID

	for _, answer := range []string{"", "n\n", "nope\n"} {
		r := run(t, answer, "rm", id)
		if r.code != 0 {
			t.Fatalf("answer %q: expected exit 0, got %d", answer, r.code)
		}
		if !strings.Contains(r.stdout, "Delete this task? [y/n]") || !strings.Contains(r.stdout, "kept") {
			t.Fatalf("answer %q: unexpected stdout %q", answer, r.stdout)
		}
		if len(listJSON(t)) != 1 {
			t.Fatalf("answer %q: expected task kept", answer)
		}
	}

	r := run(t, "y\n", "rm", id)
	if r.code != 0 || !strings.Contains(r.stdout, "removed") {
		t.Fatalf("unexpected rm result %d %q", r.code, r.stdout)
	}
	if len(listJSON(t)) != 0 {
		t.Fatalf("expected task removed")
	}
}

func TestClearCompleted(t *testing.T) {
	setupEnv(t)
	mustRun(t, "login", "ada")
	mustRun(t, "add", "a")
	mustRun(t, "add", "b")
	mustRun(t, "done", listJSON(t)[0].ID)

	r := run(t, "y\n", "clear")
	if r.code != 0 || !strings.Contains(r.stdout, "Delete 1 completed tasks? [y/n]") {
		t.Fatalf("unexpected clear result %d %q", r.code, r.stdout)
	}
	tasks := listJSON(t)
	if len(tasks) != 1 || tasks[0].Title != "b" {
		t.Fatalf("expected only b left, got %+v", tasks)
	}
}

func TestListRendering(t *testing.T) {
	setupEnv(t)
	mustRun(t, "login", "ada")

	r := mustRun(t, "ls")
	if !strings.Contains(r.stdout, "No tasks yet") {
		t.Fatalf("expected empty state, got %q", r.stdout)
	}

	mustRun(t, "add", "Buy milk", "-d", "oat")
	mustRun(t, "add", "Call mom")

	r = mustRun(t, "ls", "--search", "zzz")
	if !strings.Contains(r.stdout, "No matching tasks") {
		t.Fatalf("expected no-match state, got %q", r.stdout)
	}

	r = mustRun(t, "ls", "--search", "MILK")
	if !strings.Contains(r.stdout, "Buy milk") || !strings.Contains(r.stdout, "oat") || strings.Contains(r.stdout, "Call mom") {
		t.Fatalf("unexpected search output %q", r.stdout)
	}

	id := listJSON(t)[0].ID
	r = mustRun(t, "ls")
	if !strings.Contains(r.stdout, id[:shortIDLen]) {
		t.Fatalf("expected short id %q in %q", id[:shortIDLen], r.stdout)
	}
}

func TestGroupFromConfig(t *testing.T) {
	setupEnv(t)
	if err := os.WriteFile("tada.toml", []byte("[ui]\ngroup = true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	mustRun(t, "login", "ada")
	mustRun(t, "add", "a")

	r := mustRun(t, "ls")
	if !strings.Contains(r.stdout, "Pending (1)") || !strings.Contains(r.stdout, "Done (0)") {
		t.Fatalf("expected grouped output, got %q", r.stdout)
	}

	r = mustRun(t, "ls", "--group=false")
	if strings.Contains(r.stdout, "Pending (1)") {
		t.Fatalf("expected flag to override config, got %q", r.stdout)
	}
}

func TestCorruptDataIsLeftAlone(t *testing.T) {
	home := setupEnv(t)
	t.Setenv("TADA_USER", "ada")

	path := filepath.Join(home, ".tada", "data.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := `{"tasks": "[{\"title\": \"no id\"}]"}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := run(t, "", "add", "new")
	if r.code != 1 || !strings.Contains(r.stderr, "stored tasks are corrupt") {
		t.Fatalf("expected corrupt data error, got %d %q", r.code, r.stderr)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != content {
		t.Fatalf("expected data file untouched, got %q", data)
	}
}

func TestSQLiteBackend(t *testing.T) {
	home := setupEnv(t)
	cfg := filepath.Join(t.TempDir(), "sqlite.toml")
	if err := os.WriteFile(cfg, []byte("[storage]\nbackend = \"sqlite\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	mustRun(t, "--config", cfg, "login", "ada")
	mustRun(t, "--config", cfg, "add", "Water plants")
	r := mustRun(t, "--config", cfg, "export", "--format", "yaml")
	if !strings.Contains(r.stdout, "title: Water plants") {
		t.Fatalf("unexpected export %q", r.stdout)
	}
	if _, err := os.Stat(filepath.Join(home, ".tada", "tada.db")); err != nil {
		t.Fatalf("expected sqlite database: %v", err)
	}

	// The file backend has its own session.
	if r := run(t, "", "ls"); r.code != 2 {
		t.Fatalf("expected file backend to be logged out, got %d", r.code)
	}
}

func TestDebugLog(t *testing.T) {
	home := setupEnv(t)
	t.Setenv(EnvDebug, "1")

	mustRun(t, "login", "ada")
	data, err := os.ReadFile(filepath.Join(home, ".tada", debugFileName))
	if err != nil {
		t.Fatalf("read debug log: %v", err)
	}
	if !strings.Contains(string(data), "storage: file") {
		t.Fatalf("expected storage line in debug log, got %q", data)
	}
}

func TestLogout(t *testing.T) {
	setupEnv(t)
	mustRun(t, "login", "ada")

	r := mustRun(t, "logout")
	if !strings.Contains(r.stdout, "logged out") {
		t.Fatalf("unexpected logout output %q", r.stdout)
	}
	if r := run(t, "", "whoami"); r.code != 2 {
		t.Fatalf("expected whoami to fail after logout, got %d", r.code)
	}

	t.Setenv("TADA_USER", "grace")
	r = mustRun(t, "logout")
	if !strings.Contains(r.stdout, "nothing to delete") {
		t.Fatalf("unexpected env logout output %q", r.stdout)
	}
}
