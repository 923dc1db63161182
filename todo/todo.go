// Package todo implements the in-memory to-do list behind simpletodo.
//
// Todos are addressed by their position in the list; there is no stable
// identifier. Every change produces a new list value, and the Store keeps
// only the latest one.
//
// The public API mirrors what the screen can do:
//   - Add, Edit, SetText, SetDone, ToggleDone, StartEdit, FinishEdit for items
//   - RequestDelete, ConfirmDelete, CancelDelete for the delete dialog
//   - State, Todos, Len and Subscribe for rendering
package todo

// Todo is a single entry in the list.
type Todo struct {
	// Text is the user-entered description. It may be empty.
	Text string `json:"text"`

	// Done marks the todo as complete.
	Done bool `json:"done"`

	// OnEdit selects the editable view of the row instead of the read view.
	OnEdit bool `json:"on_edit"`
}

// New returns a blank todo that starts in edit mode.
func New() Todo {
	return Todo{OnEdit: true}
}

// WithText returns a copy of t with its text replaced.
func (t Todo) WithText(text string) Todo {
	t.Text = text
	return t
}

// WithDone returns a copy of t with its completion flag replaced.
func (t Todo) WithDone(done bool) Todo {
	t.Done = done
	return t
}

// WithOnEdit returns a copy of t with its edit flag replaced.
func (t Todo) WithOnEdit(onEdit bool) Todo {
	t.OnEdit = onEdit
	return t
}
