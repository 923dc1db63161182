// Package tui is the interactive to-do screen.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/amonks/simpletodo/internal/locale"
	"github.com/amonks/simpletodo/internal/logging"
	internalstrings "github.com/amonks/simpletodo/internal/strings"
	"github.com/amonks/simpletodo/internal/theme"
	"github.com/amonks/simpletodo/todo"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const inputPrompt = "> "

type statusLevel int

const (
	statusNone statusLevel = iota
	statusInfo
	statusError
)

// Options configures Run.
type Options struct {
	Store   *todo.Store
	Styles  theme.Styles
	Catalog *locale.Catalog
	Logger  *log.Logger

	// Input and Output default to the process's stdin and stdout.
	Input  io.Reader
	Output io.Writer
}

// stateFeed carries store notifications into the model. Every copy of the
// model shares one feed.
type stateFeed struct {
	latest  todo.State
	changed bool
}

type model struct {
	store       *todo.Store
	feed        *stateFeed
	unsubscribe func()
	styles      theme.Styles
	catalog     *locale.Catalog
	logger      *log.Logger
	width       int
	height      int
	list        list.Model
	input       textinput.Model
	inputIndex  int
	help        viewport.Model
	modal       confirmModal
	status      string
	statusLevel statusLevel
}

// Run shows the to-do screen until the user quits or ctx ends.
func Run(ctx context.Context, opts Options) error {
	if opts.Store == nil {
		return fmt.Errorf("todo store is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	m := newModel(opts)
	defer m.close()

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}
	m.logger.Info("starting", "todos", opts.Store.Len(), "locale", m.catalog.Tag(), "theme", m.styles.Palette.Name)
	_, err := tea.NewProgram(m, programOpts...).Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	m.logger.Info("exiting", "todos", opts.Store.Len())
	return nil
}

func newModel(opts Options) model {
	catalog := opts.Catalog
	if catalog == nil {
		catalog = locale.MustDefault()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	styles := opts.Styles
	if styles.Palette.Name == "" {
		styles = theme.NewStyles(theme.Light())
	}

	todoList := list.New(nil, newRowDelegate(styles, catalog.String(locale.TodoDone), -1, ""), 0, 0)
	todoList.SetShowTitle(false)
	todoList.SetShowStatusBar(false)
	todoList.SetFilteringEnabled(false)
	todoList.SetShowHelp(false)
	todoList.SetShowPagination(false)
	todoList.DisableQuitKeybindings()

	input := textinput.New()
	input.Prompt = inputPrompt
	input.PromptStyle = styles.EditPrompt
	input.TextStyle = styles.RowText
	input.Placeholder = catalog.String(locale.InputPlaceholder)

	feed := &stateFeed{latest: opts.Store.State(), changed: true}
	m := model{
		store:      opts.Store,
		feed:       feed,
		styles:     styles,
		catalog:    catalog,
		logger:     logger,
		list:       todoList,
		input:      input,
		inputIndex: -1,
		help:       viewport.New(0, 0),
		modal:      confirmModal{kind: modalNone},
	}
	m.unsubscribe = opts.Store.Subscribe(func(state todo.State) {
		feed.latest = state
		feed.changed = true
	})
	m.sync()
	return m
}

func (m model) close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func (m model) Init() tea.Cmd {
	return m.bindInput()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
	default:
		if m.modal.kind != modalNone {
			m, cmd = m.updateModal(msg)
		} else if key, ok := msg.(tea.KeyMsg); ok {
			m, cmd = m.handleKey(key)
		} else if m.inputIndex >= 0 {
			m.input, cmd = m.input.Update(msg)
		}
	}

	syncCmd := m.sync()
	bindCmd := m.bindInput()
	return m, tea.Batch(cmd, syncCmd, bindCmd)
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return m.catalog.String(locale.AppbarTitle)
	}
	if m.modal.kind != modalNone {
		return m.renderModalOverlay()
	}

	content := m.renderList()
	contentHeight := m.listHeight()
	if gap := contentHeight - lipgloss.Height(content); gap > 0 {
		content += strings.Repeat("\n", gap)
	}
	return strings.Join([]string{m.renderAppBar(), content, m.renderStatusLine(), m.renderHintLine()}, "\n")
}

// sync copies the latest store state into the list and the dialog.
func (m *model) sync() tea.Cmd {
	if !m.feed.changed {
		return nil
	}
	m.feed.changed = false
	state := m.feed.latest

	cmd := m.list.SetItems(newTodoItems(state.Todos))
	if n := len(state.Todos); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}

	if _, pending := state.Dialog.Pending(); pending {
		if m.modal.kind != modalDeleteTodo {
			m.modal = m.deleteModal()
		}
	} else if m.modal.kind == modalDeleteTodo {
		m.modal = confirmModal{kind: modalNone}
	}
	return cmd
}

// bindInput attaches the text input to the selected row when that row is in
// its edit view, and detaches it otherwise.
func (m *model) bindInput() tea.Cmd {
	i, item, ok := m.selected()
	if !ok || !item.OnEdit || m.modal.kind != modalNone {
		if m.input.Focused() {
			m.input.Blur()
		}
		if !ok || !item.OnEdit {
			m.inputIndex = -1
		}
		return nil
	}
	if m.inputIndex != i || m.input.Value() != item.Text {
		m.input.SetValue(item.Text)
		m.input.CursorEnd()
	}
	m.inputIndex = i
	if m.input.Focused() {
		return nil
	}
	return m.input.Focus()
}

func (m model) selected() (int, todo.Todo, bool) {
	i := m.list.Index()
	item, ok := m.store.At(i)
	return i, item, ok
}

func (m model) editing() bool {
	_, item, ok := m.selected()
	return ok && item.OnEdit
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.editing() {
		return m.handleEditKey(msg)
	}

	i, _, ok := m.selected()
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		return m.openHelp(), nil
	case "a", "n", "+", "ctrl+n":
		return m.addTodo(), nil
	case "up", "k":
		return m.moveSelection(-1), nil
	case "down", "j":
		return m.moveSelection(1), nil
	case "home", "g":
		return m.moveSelection(-len(m.list.Items())), nil
	case "end", "G":
		return m.moveSelection(len(m.list.Items())), nil
	case " ", "x":
		if ok {
			m.store.ToggleDone(i)
		}
	case "e", "enter":
		if ok {
			m.store.StartEdit(i)
		}
	case "d", "delete", "backspace":
		if ok {
			m.store.RequestDelete(i)
		}
	}
	return m, nil
}

func (m model) handleEditKey(msg tea.KeyMsg) (model, tea.Cmd) {
	i, item, _ := m.selected()
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter", "esc":
		m.store.FinishEdit(i)
		return m, nil
	case "up":
		return m.moveSelection(-1), nil
	case "down":
		return m.moveSelection(1), nil
	case "ctrl+n":
		return m.addTodo(), nil
	case "ctrl+d":
		m.store.RequestDelete(i)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != item.Text {
		m.store.SetText(i, value)
	}
	return m, cmd
}

// addTodo appends a blank todo and selects it so typing goes straight into it.
func (m model) addTodo() model {
	m.store.Add()
	m.sync()
	m.list.Select(len(m.list.Items()) - 1)
	m.setStatus(m.catalog.String(locale.StatusAdded), statusInfo)
	return m
}

func (m model) moveSelection(delta int) model {
	items := m.list.Items()
	if len(items) == 0 {
		return m
	}
	current := m.list.Index()
	if current < 0 {
		current = 0
	}
	next := current + delta
	if next < 0 {
		next = 0
	}
	if next >= len(items) {
		next = len(items) - 1
	}
	if next != current {
		m.list.Select(next)
	}
	return m
}

func (m *model) resize() {
	listWidth := m.width
	if listWidth < 1 {
		listWidth = 1
	}
	m.list.SetSize(listWidth, m.listHeight())
	doneWidth := lipgloss.Width("[" + m.catalog.String(locale.TodoDone) + "]")
	inputWidth := listWidth - rowMarkerWidth - lipgloss.Width(inputPrompt) - doneWidth - 2
	if inputWidth < 1 {
		inputWidth = 1
	}
	m.input.Width = inputWidth
	if m.modal.kind == modalHelp {
		*m = m.openHelp()
	}
}

func (m model) listHeight() int {
	height := m.height - 3
	if height < 1 {
		height = 1
	}
	return height
}

func (m model) renderList() string {
	if len(m.list.Items()) == 0 {
		return m.styles.Empty.Render(m.catalog.String(locale.EmptyList))
	}
	l := m.list
	l.SetDelegate(newRowDelegate(m.styles, m.catalog.String(locale.TodoDone), m.inputIndex, m.input.View()))
	return l.View()
}

func (m model) renderAppBar() string {
	title := m.styles.AppBar.Render(m.catalog.String(locale.AppbarTitle))
	action := m.styles.AppBarAction.Render("+ " + m.catalog.String(locale.AddTodo) + " (a)")
	spacerWidth := m.width - lipgloss.Width(title) - lipgloss.Width(action)
	if spacerWidth < 0 {
		spacerWidth = 0
	}
	spacer := m.styles.AppBarAction.Padding(0).Render(strings.Repeat(" ", spacerWidth))
	return title + spacer + action
}

func (m model) renderStatusLine() string {
	todos := m.store.Todos()
	summary := m.styles.Hint.Render(m.catalog.Format(locale.Summary, todo.CountDone(todos), len(todos)))

	text := ""
	if !internalstrings.IsBlank(m.status) {
		style := m.styles.Status
		if m.statusLevel == statusError {
			style = m.styles.StatusError
		}
		available := m.width - lipgloss.Width(summary) - 1
		text = style.Render(truncateText(m.status, available))
	}
	spacerWidth := m.width - lipgloss.Width(text) - lipgloss.Width(summary)
	if spacerWidth < 1 {
		spacerWidth = 1
	}
	return text + strings.Repeat(" ", spacerWidth) + summary
}

func (m model) renderHintLine() string {
	key := locale.HintRead
	if m.editing() {
		key = locale.HintEdit
	}
	return m.styles.Hint.Render(truncateText(m.catalog.String(key), m.width))
}

func (m *model) setStatus(text string, level statusLevel) {
	m.status = text
	m.statusLevel = level
}
