package tui

import (
	"strings"

	"github.com/amonks/simpletodo/internal/locale"
	"github.com/amonks/simpletodo/internal/markdown"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalHelp
	modalDeleteTodo
)

const (
	modalMaxWidth  = 56
	helpMaxWidth   = 72
	modalChrome    = 6
	buttonConfirm  = 0
	buttonCancel   = 1
	defaultButton  = buttonCancel
	modalMinHeight = 3
)

type confirmModal struct {
	kind        modalKind
	title       string
	message     string
	confirmText string
	cancelText  string
	selected    int
}

func (m model) deleteModal() confirmModal {
	return confirmModal{
		kind:        modalDeleteTodo,
		title:       m.catalog.String(locale.DeleteDialogTitle),
		message:     m.catalog.String(locale.DeleteDialogText),
		confirmText: m.catalog.String(locale.DialogConfirm),
		cancelText:  m.catalog.String(locale.DialogCancel),
		selected:    defaultButton,
	}
}

func (m model) updateModal(msg tea.Msg) (model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if m.modal.kind == modalHelp {
		if ok {
			switch key.String() {
			case "?", "esc", "q":
				m.modal = confirmModal{kind: modalNone}
				return m, nil
			case "ctrl+c":
				return m, tea.Quit
			}
		}
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	}
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "left", "right", "tab", "shift+tab", "h", "l":
		if m.modal.selected == buttonConfirm {
			m.modal.selected = buttonCancel
		} else {
			m.modal.selected = buttonConfirm
		}
	case "enter", " ":
		return m.resolveModal(m.modal.selected == buttonConfirm), nil
	case "y":
		return m.resolveModal(true), nil
	case "esc", "n":
		return m.resolveModal(false), nil
	}
	return m, nil
}

// resolveModal answers the delete dialog. The modal itself closes when the
// store reports an idle dialog.
func (m model) resolveModal(confirm bool) model {
	if m.modal.kind != modalDeleteTodo {
		m.modal = confirmModal{kind: modalNone}
		return m
	}
	if !confirm {
		m.store.CancelDelete()
		m.setStatus(m.catalog.String(locale.StatusDeleteCancelled), statusInfo)
		return m
	}
	if _, ok := m.store.ConfirmDelete(); ok {
		m.setStatus(m.catalog.String(locale.StatusDeleted), statusInfo)
	}
	return m
}

func (m model) openHelp() model {
	width := helpMaxWidth
	if m.width-modalChrome < width {
		width = m.width - modalChrome
	}
	if width < 1 {
		width = 1
	}
	height := m.height - modalChrome
	if height < modalMinHeight {
		height = modalMinHeight
	}
	content := markdown.Render(m.markdownStyle(), width, m.catalog.String(locale.Help))
	if contentHeight := lipgloss.Height(content); contentHeight < height {
		height = contentHeight
	}
	m.help.Width = width
	m.help.Height = height
	m.help.SetContent(content)
	m.help.GotoTop()
	m.modal = confirmModal{kind: modalHelp}
	return m
}

func (m model) markdownStyle() string {
	if lipgloss.ColorProfile() == termenv.Ascii {
		return markdown.StyleASCII
	}
	return m.styles.Palette.Name
}

func (m model) renderModalOverlay() string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.modalView())
}

func (m model) modalView() string {
	if m.modal.kind == modalHelp {
		return m.styles.Modal.Render(m.help.View())
	}

	width := modalMaxWidth
	if m.width-modalChrome < width {
		width = m.width - modalChrome
	}
	if width < 1 {
		width = 1
	}
	options := []string{m.modal.confirmText, m.modal.cancelText}
	buttons := make([]string, 0, len(options))
	for i, option := range options {
		if i == m.modal.selected {
			buttons = append(buttons, m.styles.ButtonActive.Render("["+option+"]"))
			continue
		}
		buttons = append(buttons, m.styles.Button.Render(" "+option+" "))
	}
	content := strings.Join([]string{
		m.styles.ModalTitle.Render(m.modal.title),
		"",
		wordwrap.String(m.modal.message, width),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, buttons...),
	}, "\n")
	hint := m.styles.Hint.Render(truncateText(m.catalog.String(locale.HintDialog), m.width))
	return lipgloss.JoinVertical(lipgloss.Center, m.styles.Modal.Render(content), hint)
}
