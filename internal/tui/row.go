package tui

import (
	"fmt"
	"io"

	"github.com/amonks/simpletodo/internal/theme"
	"github.com/amonks/simpletodo/internal/ui"
	"github.com/amonks/simpletodo/todo"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	selectedMarker = "> "
	rowMarkerWidth = 2
)

// todoItem is one row of the list. Position is the item's identity.
type todoItem struct {
	index int
	todo  todo.Todo
}

func (item todoItem) FilterValue() string {
	return item.todo.Text
}

func newTodoItems(todos todo.List) []list.Item {
	items := make([]list.Item, 0, len(todos))
	for i, item := range todos {
		items = append(items, todoItem{index: i, todo: item})
	}
	return items
}

// rowDelegate renders rows. It is rebuilt for every frame so that the
// focused text input can be drawn inside the selected row.
type rowDelegate struct {
	styles    theme.Styles
	doneLabel string
	// inputIndex is the row whose edit view shows inputView, or -1.
	inputIndex int
	inputView  string
}

func newRowDelegate(styles theme.Styles, doneLabel string, inputIndex int, inputView string) rowDelegate {
	return rowDelegate{styles: styles, doneLabel: doneLabel, inputIndex: inputIndex, inputView: inputView}
}

func (d rowDelegate) Height() int                             { return 1 }
func (d rowDelegate) Spacing() int                            { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(todoItem)
	if !ok {
		return
	}
	fmt.Fprint(w, d.renderRow(item, index == m.Index(), m.Width()))
}

func (d rowDelegate) renderRow(item todoItem, selected bool, width int) string {
	marker := "  "
	if selected {
		marker = d.styles.EditPrompt.Render(selectedMarker)
	}
	if item.todo.OnEdit {
		return marker + d.renderEditView(item, width-rowMarkerWidth)
	}
	return marker + d.renderReadView(item, width-rowMarkerWidth)
}

// renderReadView draws the text followed by a checkbox. Done text is struck
// through.
func (d rowDelegate) renderReadView(item todoItem, width int) string {
	checkbox := ui.Checkbox(item.todo.Done)
	textStyle := d.styles.RowText
	checkStyle := d.styles.Checkbox
	if item.todo.Done {
		textStyle = d.styles.RowDoneText
		checkStyle = d.styles.CheckboxDone
	}
	text := fitText(item.todo.Text, width-runewidth.StringWidth(checkbox)-1)
	return textStyle.Render(text) + " " + checkStyle.Render(checkbox)
}

// renderEditView draws the editable text followed by the done control.
func (d rowDelegate) renderEditView(item todoItem, width int) string {
	done := "[" + d.doneLabel + "]"
	textWidth := width - runewidth.StringWidth(done) - 1
	var field string
	if item.index == d.inputIndex {
		field = d.inputView
		if pad := textWidth - lipgloss.Width(field); pad > 0 {
			field += runewidth.FillRight("", pad)
		}
	} else {
		field = d.styles.RowText.Render(fitText(inputPrompt+item.todo.Text, textWidth))
	}
	return field + " " + d.styles.CheckboxDone.Render(done)
}

// fitText truncates or pads value to exactly width display columns.
func fitText(value string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(truncateText(value, width), width)
}

func truncateText(value string, width int) string {
	if width <= 0 {
		return value
	}
	return runewidth.Truncate(value, width, "...")
}
