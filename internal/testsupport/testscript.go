// Package testsupport holds helpers shared by the end-to-end CLI scripts.
package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/rogpeppe/go-internal/testscript"
)

var (
	buildOnce sync.Once
	tadaPath  string
	buildErr  error
)

// BuildTada builds the tada binary once and returns its path.
func BuildTada(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "tada-bin-")
		if err != nil {
			buildErr = err
			return
		}

		tadaPath = filepath.Join(binDir, "tada")
		cmd := exec.Command("go", "build", "-o", tadaPath, "./cmd/tada")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build tada: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return tadaPath
}

// SetupScriptEnv gives every script its own home and data directory.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("TADA", BuildTada(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("TADA_HOME", filepath.Join(homeDir, ".tada"))
	env.Setenv("TADA_USER", "")
	env.Setenv("TADA_DEBUG", "")
	env.Setenv("NO_COLOR", "1")
	env.Setenv("TERM", "dumb")
	return nil
}

// CmdEnvSet stores the trimmed contents of a file in an env var.
func CmdEnvSet(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("envset does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: envset VAR FILE")
	}

	value := strings.TrimSpace(ts.ReadFile(args[1]))
	ts.Setenv(args[0], value)
}

// CmdTaskID finds a task by title in `tada ls --json` output and stores its
// ID in an env var.
func CmdTaskID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("taskid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: taskid FILE TITLE VAR")
	}

	var tasks []model.Task
	data := ts.ReadFile(args[0])
	if err := json.Unmarshal([]byte(data), &tasks); err != nil {
		ts.Fatalf("parse task list: %v", err)
	}

	title := args[1]
	for _, t := range tasks {
		if t.Title == title {
			ts.Setenv(args[2], t.ID)
			return
		}
	}

	ts.Fatalf("task with title %q not found", title)
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
