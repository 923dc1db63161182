package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/amonks/simpletodo/todo"
	"github.com/rogpeppe/go-internal/testscript"
)

var (
	buildOnce sync.Once
	binPath   string
	buildErr  error
)

// BuildSimpletodo builds the simpletodo binary once and returns its path.
func BuildSimpletodo(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "simpletodo-bin-")
		if err != nil {
			buildErr = err
			return
		}

		binPath = filepath.Join(binDir, "simpletodo")
		cmd := exec.Command("go", "build", "-o", binPath, "./cmd/simpletodo")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build simpletodo: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return binPath
}

// SetupScriptEnv configures common environment variables for testscript.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("SIMPLETODO", BuildSimpletodo(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := EnsureHomeDirs(homeDir); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("NO_COLOR", "1")
	return nil
}

// CmdTodoCount asserts the number of todos in a JSON list file.
func CmdTodoCount(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) != 2 {
		ts.Fatalf("usage: todocount FILE N")
	}

	want, err := strconv.Atoi(args[1])
	if err != nil {
		ts.Fatalf("parse count: %v", err)
	}

	var items []todo.Todo
	data := ts.ReadFile(args[0])
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		ts.Fatalf("parse todo list: %v", err)
	}

	if neg {
		if len(items) == want {
			ts.Fatalf("unexpected todo count %d", want)
		}
		return
	}
	if len(items) != want {
		ts.Fatalf("expected %d todos, got %d", want, len(items))
	}
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
