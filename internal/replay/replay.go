// Package replay applies line-oriented action scripts to a todo store.
//
// Each non-blank line is one action:
//
//	add
//	text <i> <text...>
//	done <i>
//	undone <i>
//	toggle <i>
//	edit <i>
//	finish <i>
//	delete <i>
//	confirm
//	cancel
//
// Lines starting with # are comments. The text of a text action runs from
// the first non-space character after the index to the end of the line,
// trailing spaces included.
package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	internalstrings "github.com/amonks/simpletodo/internal/strings"
	"github.com/amonks/simpletodo/todo"
)

// Op names an action.
type Op string

// Known ops.
const (
	OpAdd     Op = "add"
	OpText    Op = "text"
	OpDone    Op = "done"
	OpUndone  Op = "undone"
	OpToggle  Op = "toggle"
	OpEdit    Op = "edit"
	OpFinish  Op = "finish"
	OpDelete  Op = "delete"
	OpConfirm Op = "confirm"
	OpCancel  Op = "cancel"
)

var (
	// ErrUnknownAction is returned for a line whose first word is not an op.
	ErrUnknownAction = errors.New("unknown action")
	// ErrBadArguments is returned when an op has missing, extra, or malformed arguments.
	ErrBadArguments = errors.New("bad arguments")
	// ErrIndexOutOfRange is returned when an action names an index past the list.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNoPendingDelete is returned by confirm or cancel without a prior delete.
	ErrNoPendingDelete = errors.New("no pending delete")
)

// LineError reports which script line failed.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Action is one parsed script line.
type Action struct {
	Line  int
	Op    Op
	Index int
	Text  string
}

func (a Action) String() string {
	switch {
	case a.Op == OpText:
		return fmt.Sprintf("%s %d %s", a.Op, a.Index, a.Text)
	case a.Op.takesIndex():
		return fmt.Sprintf("%s %d", a.Op, a.Index)
	default:
		return string(a.Op)
	}
}

func (op Op) takesIndex() bool {
	switch op {
	case OpText, OpDone, OpUndone, OpToggle, OpEdit, OpFinish, OpDelete:
		return true
	default:
		return false
	}
}

func (op Op) known() bool {
	switch op {
	case OpAdd, OpConfirm, OpCancel:
		return true
	default:
		return op.takesIndex()
	}
}

// Parse reads a whole script. It stops at the first malformed line.
func Parse(r io.Reader) ([]Action, error) {
	var actions []Action
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		action, ok, err := ParseLine(scanner.Text())
		if err != nil {
			return nil, &LineError{Line: lineNo, Err: err}
		}
		if !ok {
			continue
		}
		action.Line = lineNo
		actions = append(actions, action)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return actions, nil
}

// ParseLine parses one line. It reports false for blank and comment lines.
func ParseLine(line string) (Action, bool, error) {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	if internalstrings.IsBlank(trimmed) || strings.HasPrefix(trimmed, "#") {
		return Action{}, false, nil
	}

	word, rest := cutWord(trimmed)
	op := Op(internalstrings.NormalizeLowerTrimSpace(word))
	if !op.known() {
		return Action{}, false, fmt.Errorf("%w %q", ErrUnknownAction, word)
	}

	action := Action{Op: op}
	if !op.takesIndex() {
		if !internalstrings.IsBlank(rest) {
			return Action{}, false, fmt.Errorf("%w: %s takes no arguments", ErrBadArguments, op)
		}
		return action, true, nil
	}

	indexWord, text := cutWord(rest)
	if indexWord == "" {
		return Action{}, false, fmt.Errorf("%w: %s needs an index", ErrBadArguments, op)
	}
	index, err := strconv.Atoi(indexWord)
	if err != nil || index < 0 {
		return Action{}, false, fmt.Errorf("%w: invalid index %q", ErrBadArguments, indexWord)
	}
	action.Index = index

	if op == OpText {
		action.Text = text
	} else if !internalstrings.IsBlank(text) {
		return Action{}, false, fmt.Errorf("%w: %s takes only an index", ErrBadArguments, op)
	}
	return action, true, nil
}

// cutWord splits off the first whitespace-delimited word. The remainder
// keeps its inner spacing.
func cutWord(value string) (string, string) {
	value = strings.TrimLeftFunc(value, unicode.IsSpace)
	end := strings.IndexFunc(value, unicode.IsSpace)
	if end < 0 {
		return value, ""
	}
	return value[:end], strings.TrimLeftFunc(value[end:], unicode.IsSpace)
}

// Tracer is called with each action just before it is applied.
type Tracer func(Action)

// Apply runs actions against store in order, stopping at the first one that
// cannot apply. trace may be nil.
func Apply(store *todo.Store, actions []Action, trace Tracer) error {
	for _, action := range actions {
		if trace != nil {
			trace(action)
		}
		if err := apply(store, action); err != nil {
			return &LineError{Line: action.Line, Err: err}
		}
	}
	return nil
}

// Run parses a script and applies it. It returns the number of actions in
// the script; nothing is applied when parsing fails.
func Run(store *todo.Store, r io.Reader, trace Tracer) (int, error) {
	actions, err := Parse(r)
	if err != nil {
		return 0, err
	}
	return len(actions), Apply(store, actions, trace)
}

func apply(store *todo.Store, action Action) error {
	if action.Op.takesIndex() && (action.Index < 0 || action.Index >= store.Len()) {
		return fmt.Errorf("%w: %s %d with %d todos", ErrIndexOutOfRange, action.Op, action.Index, store.Len())
	}

	switch action.Op {
	case OpAdd:
		store.Add()
	case OpText:
		store.SetText(action.Index, action.Text)
	case OpDone:
		store.SetDone(action.Index, true)
	case OpUndone:
		store.SetDone(action.Index, false)
	case OpToggle:
		store.ToggleDone(action.Index)
	case OpEdit:
		store.StartEdit(action.Index)
	case OpFinish:
		store.FinishEdit(action.Index)
	case OpDelete:
		store.RequestDelete(action.Index)
	case OpConfirm:
		if store.Dialog().Idle() {
			return fmt.Errorf("%w to confirm", ErrNoPendingDelete)
		}
		store.ConfirmDelete()
	case OpCancel:
		if store.Dialog().Idle() {
			return fmt.Errorf("%w to cancel", ErrNoPendingDelete)
		}
		store.CancelDelete()
	default:
		return fmt.Errorf("%w %q", ErrUnknownAction, action.Op)
	}
	return nil
}
