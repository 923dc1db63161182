package todo

import (
	"io"

	"github.com/charmbracelet/log"
)

// State is everything the screen renders: the list and the delete dialog.
type State struct {
	Todos  List         `json:"todos"`
	Dialog DeleteDialog `json:"dialog"`
}

// Clone returns a copy of the state that shares no storage with it.
func (s State) Clone() State {
	return State{Todos: s.Todos.Clone(), Dialog: s.Dialog}
}

// Listener receives the new state after every change.
type Listener func(State)

// StoreOptions configures a Store.
type StoreOptions struct {
	// Logger receives debug records for every change. If nil, nothing is logged.
	Logger *log.Logger

	// Initial seeds the list. It is copied.
	Initial List
}

// Store holds the latest to-do state and notifies subscribers when it changes.
//
// A Store is owned by a single event loop and is not safe for concurrent use.
type Store struct {
	state     State
	logger    *log.Logger
	listeners []subscription
	nextSubID int
}

type subscription struct {
	id int
	fn Listener
}

// NewStore returns a store holding opts.Initial and an idle delete dialog.
func NewStore(opts StoreOptions) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		state:  State{Todos: opts.Initial.Clone()},
		logger: logger,
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	return s.state.Clone()
}

// Todos returns a snapshot of the current list.
func (s *Store) Todos() List {
	return s.state.Todos.Clone()
}

// Len returns the number of todos.
func (s *Store) Len() int {
	return len(s.state.Todos)
}

// At returns the todo at index i.
func (s *Store) At(i int) (Todo, bool) {
	if !s.state.Todos.InRange(i) {
		return Todo{}, false
	}
	return s.state.Todos[i], true
}

// Dialog returns the delete dialog state.
func (s *Store) Dialog() DeleteDialog {
	return s.state.Dialog
}

// Subscribe registers fn to be called after every change, in subscription
// order. The returned function removes the subscription.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	s.nextSubID++
	id := s.nextSubID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	return func() {
		kept := make([]subscription, 0, len(s.listeners))
		for _, sub := range s.listeners {
			if sub.id != id {
				kept = append(kept, sub)
			}
		}
		s.listeners = kept
	}
}

// Add appends a blank todo in edit mode.
func (s *Store) Add() {
	s.replace(State{Todos: Add(s.state.Todos, New()), Dialog: s.state.Dialog}, "add", "index", len(s.state.Todos))
}

// Edit replaces the todo at index i. Indices outside the list are ignored.
func (s *Store) Edit(i int, item Todo) {
	if !s.state.Todos.InRange(i) {
		s.logger.Debug("ignoring edit", "index", i, "len", len(s.state.Todos))
		return
	}
	s.replace(State{Todos: Replace(s.state.Todos, i, item), Dialog: s.state.Dialog}, "edit", "index", i)
}

// SetText replaces the text of the todo at index i.
func (s *Store) SetText(i int, text string) {
	s.update(i, func(item Todo) Todo { return item.WithText(text) })
}

// SetDone sets the completion flag of the todo at index i.
func (s *Store) SetDone(i int, done bool) {
	s.update(i, func(item Todo) Todo { return item.WithDone(done) })
}

// ToggleDone flips the completion flag of the todo at index i.
func (s *Store) ToggleDone(i int) {
	s.update(i, func(item Todo) Todo { return item.WithDone(!item.Done) })
}

// StartEdit switches the todo at index i to its editable view.
func (s *Store) StartEdit(i int) {
	s.update(i, func(item Todo) Todo { return item.WithOnEdit(true) })
}

// FinishEdit switches the todo at index i back to its read view.
func (s *Store) FinishEdit(i int) {
	s.update(i, func(item Todo) Todo { return item.WithOnEdit(false) })
}

// RequestDelete opens the delete dialog for index i. Nothing is removed until
// ConfirmDelete.
func (s *Store) RequestDelete(i int) {
	if !s.state.Todos.InRange(i) {
		s.logger.Debug("ignoring delete request", "index", i, "len", len(s.state.Todos))
		return
	}
	s.replace(State{Todos: s.state.Todos, Dialog: s.state.Dialog.Request(i)}, "request delete", "index", i)
}

// ConfirmDelete removes the todo the dialog is pending for and closes the
// dialog. It reports the removed todo, or false when the dialog was idle.
func (s *Store) ConfirmDelete() (Todo, bool) {
	i, ok := s.state.Dialog.Pending()
	if !ok {
		return Todo{}, false
	}
	removed, inRange := s.At(i)
	s.replace(State{Todos: RemoveAt(s.state.Todos, i), Dialog: s.state.Dialog.Close()}, "confirm delete", "index", i)
	return removed, inRange
}

// CancelDelete closes the dialog without changing the list.
func (s *Store) CancelDelete() {
	if s.state.Dialog.Idle() {
		return
	}
	s.replace(State{Todos: s.state.Todos, Dialog: s.state.Dialog.Close()}, "cancel delete")
}

func (s *Store) update(i int, change func(Todo) Todo) {
	item, ok := s.At(i)
	if !ok {
		s.logger.Debug("ignoring update", "index", i, "len", len(s.state.Todos))
		return
	}
	s.Edit(i, change(item))
}

func (s *Store) replace(next State, action string, keyvals ...any) {
	s.state = next
	s.logger.Debug(action, append(keyvals, "len", len(next.Todos))...)
	if len(s.listeners) == 0 {
		return
	}
	listeners := append([]subscription(nil), s.listeners...)
	for _, sub := range listeners {
		sub.fn(s.state.Clone())
	}
}
