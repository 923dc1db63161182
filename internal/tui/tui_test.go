package tui

import (
	"strings"
	"testing"

	"github.com/amonks/simpletodo/internal/locale"
	"github.com/amonks/simpletodo/internal/theme"
	"github.com/amonks/simpletodo/todo"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"
	"github.com/muesli/termenv"
)

const (
	testWidth  = 80
	testHeight = 24
)

func newTestModel(t *testing.T, initial todo.List) (model, *todo.Store) {
	t.Helper()
	useASCIIRenderer(t)

	store := todo.NewStore(todo.StoreOptions{Initial: initial})
	m := newModel(Options{
		Store:   store,
		Styles:  theme.NewStyles(theme.Light()),
		Catalog: locale.MustDefault(),
	})
	t.Cleanup(m.close)
	return press(m, tea.WindowSizeMsg{Width: testWidth, Height: testHeight}), store
}

func press(m model, msgs ...tea.Msg) model {
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(model)
	}
	return m
}

func keyRunes(value string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(value)}
}

func keyType(keyType tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: keyType}
}

var keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func useASCIIRenderer(t *testing.T) {
	originalProfile := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(originalProfile)
	})
}

func TestScenarioThroughKeys(t *testing.T) {
	m, store := newTestModel(t, nil)

	m = press(m, keyRunes("a"))
	if diff := cmp.Diff(todo.List{{OnEdit: true}}, store.Todos()); diff != "" {
		t.Fatalf("after add (-want +got):\n%s", diff)
	}
	if !m.editing() || !m.input.Focused() {
		t.Fatal("expected new todo to be focused for typing")
	}

	m = press(m, keyRunes("Buy milk"), keyType(tea.KeyEnter))
	if diff := cmp.Diff(todo.List{{Text: "Buy milk"}}, store.Todos()); diff != "" {
		t.Fatalf("after edit (-want +got):\n%s", diff)
	}
	if m.input.Focused() {
		t.Fatal("expected input to blur after finishing")
	}

	m = press(m, keySpace)
	if diff := cmp.Diff(todo.List{{Text: "Buy milk", Done: true}}, store.Todos()); diff != "" {
		t.Fatalf("after toggle (-want +got):\n%s", diff)
	}

	m = press(m, keyRunes("d"))
	if m.modal.kind != modalDeleteTodo {
		t.Fatalf("expected delete dialog, got modal %v", m.modal.kind)
	}
	if i, ok := store.Dialog().Pending(); !ok || i != 0 {
		t.Fatalf("expected pending delete at 0, got %d (pending=%v)", i, ok)
	}

	m = press(m, keyRunes("y"))
	if diff := cmp.Diff(todo.List{}, store.Todos()); diff != "" {
		t.Fatalf("after delete (-want +got):\n%s", diff)
	}
	if m.modal.kind != modalNone {
		t.Fatalf("expected dialog to close, got modal %v", m.modal.kind)
	}
	if m.status != "Todo deleted" {
		t.Fatalf("expected delete status, got %q", m.status)
	}
}

func TestDeleteDialogDefaultsToCancel(t *testing.T) {
	initial := todo.List{{Text: "a"}, {Text: "b"}}
	m, store := newTestModel(t, initial)

	m = press(m, keyRunes("d"), keyType(tea.KeyEnter))

	if diff := cmp.Diff(initial, store.Todos()); diff != "" {
		t.Fatalf("unexpected todos (-want +got):\n%s", diff)
	}
	if !store.Dialog().Idle() || m.modal.kind != modalNone {
		t.Fatal("expected dialog to close after cancel")
	}
	if m.status != "Delete cancelled" {
		t.Fatalf("expected cancel status, got %q", m.status)
	}
}

func TestDeleteDialogChooseConfirm(t *testing.T) {
	m, store := newTestModel(t, todo.List{{Text: "a"}, {Text: "b"}, {Text: "c"}})

	m = press(m, keyRunes("j"), keyRunes("d"), keyType(tea.KeyLeft), keyType(tea.KeyEnter))

	if diff := cmp.Diff(todo.List{{Text: "a"}, {Text: "c"}}, store.Todos()); diff != "" {
		t.Fatalf("unexpected todos (-want +got):\n%s", diff)
	}
	if m.list.Index() != 1 {
		t.Fatalf("expected selection to stay at 1, got %d", m.list.Index())
	}
}

func TestDeleteDialogEscCancels(t *testing.T) {
	m, store := newTestModel(t, todo.List{{Text: "a"}})

	m = press(m, keyRunes("d"), keyType(tea.KeyEsc))

	if store.Len() != 1 || m.modal.kind != modalNone {
		t.Fatalf("expected esc to cancel, got %d todos and modal %v", store.Len(), m.modal.kind)
	}
}

func TestDeletingLastRowSelectsPrevious(t *testing.T) {
	m, store := newTestModel(t, todo.List{{Text: "a"}, {Text: "b"}})

	m = press(m, keyType(tea.KeyEnd), keyRunes("d"), keyRunes("y"))

	if store.Len() != 1 {
		t.Fatalf("expected 1 todo, got %d", store.Len())
	}
	if m.list.Index() != 0 {
		t.Fatalf("expected selection to move to 0, got %d", m.list.Index())
	}
}

func TestNavigationAndToggle(t *testing.T) {
	m, store := newTestModel(t, todo.List{{Text: "a"}, {Text: "b"}, {Text: "c"}})

	m = press(m, keyType(tea.KeyDown), keySpace)
	want := todo.List{{Text: "a"}, {Text: "b", Done: true}, {Text: "c"}}
	if diff := cmp.Diff(want, store.Todos()); diff != "" {
		t.Fatalf("unexpected todos (-want +got):\n%s", diff)
	}

	m = press(m, keyType(tea.KeyEnd))
	if m.list.Index() != 2 {
		t.Fatalf("expected end to select 2, got %d", m.list.Index())
	}
	m = press(m, keyRunes("j"))
	if m.list.Index() != 2 {
		t.Fatalf("expected selection to stop at 2, got %d", m.list.Index())
	}
	m = press(m, keyType(tea.KeyHome))
	if m.list.Index() != 0 {
		t.Fatalf("expected home to select 0, got %d", m.list.Index())
	}
	m = press(m, keyRunes("x"))
	if todos := store.Todos(); !todos[0].Done {
		t.Fatal("expected x to toggle the first todo")
	}
}

func TestReEditAppendsToText(t *testing.T) {
	m, store := newTestModel(t, todo.List{{Text: "Buy milk", Done: true}})

	m = press(m, keyRunes("e"))
	if !m.editing() {
		t.Fatal("expected e to open the edit view")
	}
	if m.input.Value() != "Buy milk" {
		t.Fatalf("expected input to hold current text, got %q", m.input.Value())
	}

	m = press(m, keyRunes("!"), keyType(tea.KeyEsc))

	want := todo.List{{Text: "Buy milk!", Done: true}}
	if diff := cmp.Diff(want, store.Todos()); diff != "" {
		t.Fatalf("unexpected todos (-want +got):\n%s", diff)
	}
}

func TestEditModeSendsLettersToInput(t *testing.T) {
	m, store := newTestModel(t, todo.List{{Text: "", OnEdit: true}})

	m = press(m, keyRunes("q"), keyRunes("d"), keyRunes("j"))

	got, _ := store.At(0)
	if got.Text != "qdj" {
		t.Fatalf("expected letters to be typed, got %q", got.Text)
	}
	if m.modal.kind != modalNone {
		t.Fatal("expected no dialog while editing")
	}
}

func TestEditModeCtrlDRequestsDelete(t *testing.T) {
	m, store := newTestModel(t, todo.List{{Text: "a", OnEdit: true}, {Text: "b"}})

	m = press(m, keyType(tea.KeyCtrlD))
	if i, ok := store.Dialog().Pending(); !ok || i != 0 {
		t.Fatalf("expected pending delete at 0, got %d (pending=%v)", i, ok)
	}
	if m.modal.kind != modalDeleteTodo {
		t.Fatalf("expected delete dialog, got modal %v", m.modal.kind)
	}
	if m.input.Focused() {
		t.Fatal("expected input to blur while the dialog is open")
	}

	m = press(m, keyRunes("n"))
	if diff := cmp.Diff(todo.List{{Text: "a", OnEdit: true}, {Text: "b"}}, store.Todos()); diff != "" {
		t.Fatalf("after cancel (-want +got):\n%s", diff)
	}
	if !m.input.Focused() {
		t.Fatal("expected input to refocus after cancel")
	}

	m = press(m, keyType(tea.KeyCtrlD), keyRunes("y"))
	if diff := cmp.Diff(todo.List{{Text: "b"}}, store.Todos()); diff != "" {
		t.Fatalf("after confirm (-want +got):\n%s", diff)
	}
	if m.modal.kind != modalNone {
		t.Fatalf("expected dialog to close, got modal %v", m.modal.kind)
	}
}

func TestEditModeArrowsMoveAndRebind(t *testing.T) {
	m, store := newTestModel(t, todo.List{
		{Text: "first", OnEdit: true},
		{Text: "second", OnEdit: true},
	})

	m = press(m, keyType(tea.KeyDown), keyRunes("!"))

	if m.inputIndex != 1 {
		t.Fatalf("expected input bound to row 1, got %d", m.inputIndex)
	}
	want := todo.List{
		{Text: "first", OnEdit: true},
		{Text: "second!", OnEdit: true},
	}
	if diff := cmp.Diff(want, store.Todos()); diff != "" {
		t.Fatalf("unexpected todos (-want +got):\n%s", diff)
	}
}

func TestCtrlNAddsWhileEditing(t *testing.T) {
	m, store := newTestModel(t, nil)

	m = press(m, keyType(tea.KeyCtrlN), keyRunes("one"), keyType(tea.KeyCtrlN), keyRunes("two"))

	want := todo.List{{Text: "one", OnEdit: true}, {Text: "two", OnEdit: true}}
	if diff := cmp.Diff(want, store.Todos()); diff != "" {
		t.Fatalf("unexpected todos (-want +got):\n%s", diff)
	}
	if m.list.Index() != 1 {
		t.Fatalf("expected new todo to be selected, got %d", m.list.Index())
	}
}

func TestStoreChangesFromOutsideAreShown(t *testing.T) {
	m, store := newTestModel(t, nil)

	store.Add()
	store.SetText(0, "from elsewhere")
	store.FinishEdit(0)
	m = press(m, tea.WindowSizeMsg{Width: testWidth, Height: testHeight})

	if len(m.list.Items()) != 1 {
		t.Fatalf("expected 1 list item, got %d", len(m.list.Items()))
	}
	if !strings.Contains(m.View(), "from elsewhere") {
		t.Fatalf("expected view to show new todo:\n%s", m.View())
	}

	store.RequestDelete(0)
	m = press(m, tea.WindowSizeMsg{Width: testWidth, Height: testHeight})
	if m.modal.kind != modalDeleteTodo {
		t.Fatalf("expected store dialog to open the modal, got %v", m.modal.kind)
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)

	_, cmd := m.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		batch, isBatch := cmd().(tea.BatchMsg)
		if !isBatch || !containsQuit(batch) {
			t.Fatal("expected q to quit")
		}
	}
}

func containsQuit(batch tea.BatchMsg) bool {
	for _, cmd := range batch {
		if cmd == nil {
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

func TestViewShowsRows(t *testing.T) {
	m, _ := newTestModel(t, todo.List{
		{Text: "Buy milk", Done: true},
		{Text: "Walk dog"},
	})

	view := m.View()
	for _, want := range []string{"Simple TODO", "+ Add todo (a)", "Buy milk", "[x]", "Walk dog", "[ ]", "1 of 2 done", "space toggle"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q:\n%s", want, view)
		}
	}
	if lines := strings.Split(view, "\n"); len(lines) != testHeight {
		t.Errorf("expected %d lines, got %d", testHeight, len(lines))
	}
}

func TestViewEditRow(t *testing.T) {
	m, _ := newTestModel(t, todo.List{{Text: "draft", OnEdit: true}})

	view := m.View()
	if !strings.Contains(view, "> draft") {
		t.Errorf("expected input in row:\n%s", view)
	}
	if !strings.Contains(view, "[Done]") {
		t.Errorf("expected done control in row:\n%s", view)
	}
	if !strings.Contains(view, "enter finish") || !strings.Contains(view, "ctrl+d delete") {
		t.Errorf("expected edit hints:\n%s", view)
	}
}

func TestViewEmptyList(t *testing.T) {
	m, _ := newTestModel(t, nil)

	view := m.View()
	if !strings.Contains(view, "Nothing to do.") {
		t.Fatalf("expected empty message:\n%s", view)
	}
	if !strings.Contains(view, "0 of 0 done") {
		t.Fatalf("expected summary:\n%s", view)
	}
}

func TestViewDeleteDialog(t *testing.T) {
	m, _ := newTestModel(t, todo.List{{Text: "a"}})

	m = press(m, keyRunes("d"))
	view := m.View()
	for _, want := range []string{"Delete todo", "Are you sure", "[Cancel]", "Confirm"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected dialog to contain %q:\n%s", want, view)
		}
	}

	m = press(m, keyType(tea.KeyTab))
	if view := m.View(); !strings.Contains(view, "[Confirm]") {
		t.Errorf("expected confirm to be selected:\n%s", view)
	}
}

func TestHelpModal(t *testing.T) {
	m, store := newTestModel(t, todo.List{{Text: "a"}})

	m = press(m, keyRunes("?"))
	if m.modal.kind != modalHelp {
		t.Fatalf("expected help modal, got %v", m.modal.kind)
	}
	if view := m.View(); !strings.Contains(view, "Keys") || !strings.Contains(view, "toggle done") {
		t.Fatalf("expected help content:\n%s", view)
	}

	m = press(m, keyRunes("d"))
	if !store.Dialog().Idle() {
		t.Fatal("expected keys to be ignored while help is open")
	}

	m = press(m, keyType(tea.KeyEsc))
	if m.modal.kind != modalNone {
		t.Fatalf("expected help to close, got %v", m.modal.kind)
	}
}

func TestKoreanStrings(t *testing.T) {
	useASCIIRenderer(t)
	catalog, err := locale.Load("ko")
	if err != nil {
		t.Fatalf("load ko: %v", err)
	}
	store := todo.NewStore(todo.StoreOptions{Initial: todo.List{{Text: "우유 사기"}}})
	m := newModel(Options{Store: store, Styles: theme.NewStyles(theme.Dark()), Catalog: catalog})
	t.Cleanup(m.close)
	m = press(m, tea.WindowSizeMsg{Width: testWidth, Height: testHeight})

	view := m.View()
	for _, want := range []string{"심플 TODO", "우유 사기", "0 / 1 완료"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q:\n%s", want, view)
		}
	}

	m = press(m, keyRunes("d"))
	if view := m.View(); !strings.Contains(view, "할 일 삭제") {
		t.Errorf("expected korean dialog title:\n%s", view)
	}
}

func TestViewBeforeResize(t *testing.T) {
	store := todo.NewStore(todo.StoreOptions{})
	m := newModel(Options{Store: store})
	t.Cleanup(m.close)

	if got := m.View(); got != "Simple TODO" {
		t.Fatalf("expected placeholder view, got %q", got)
	}
}
