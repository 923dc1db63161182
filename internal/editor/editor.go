// Package editor opens files in the user's editor.
package editor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

const fallbackEditor = "vi"

// Streams are the terminal streams the editor inherits.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Command returns the editor command for path. $VISUAL wins over $EDITOR,
// and either may carry arguments, e.g. "code --wait".
func Command(path string, getenv func(string) string) *exec.Cmd {
	if getenv == nil {
		getenv = os.Getenv
	}
	words := strings.Fields(getenv("VISUAL"))
	if len(words) == 0 {
		words = strings.Fields(getenv("EDITOR"))
	}
	if len(words) == 0 {
		words = []string{fallbackEditor}
	}
	args := append(append([]string{}, words[1:]...), path)
	return exec.Command(words[0], args...)
}

// Edit opens path in the editor and waits for it to exit.
func Edit(path string, streams Streams) error {
	cmd := Command(path, nil)
	cmd.Stdin = streams.Stdin
	cmd.Stdout = streams.Stdout
	cmd.Stderr = streams.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("editor exited with status %d", exitErr.ExitCode())
		}
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}
