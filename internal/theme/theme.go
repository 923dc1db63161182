// Package theme defines the light and dark palettes and the lipgloss styles
// built from them.
package theme

import (
	"fmt"

	"github.com/amonks/simpletodo/internal/config"
	"github.com/charmbracelet/lipgloss"
)

// Purple is the primary brand color in both palettes.
const Purple = lipgloss.Color("#6200EE")

// Palette is the set of colors a screen is drawn with.
type Palette struct {
	Name      string
	Primary   lipgloss.Color
	OnPrimary lipgloss.Color
	Surface   lipgloss.Color
	OnSurface lipgloss.Color
	Muted     lipgloss.Color
}

// Light is used on light terminal backgrounds.
func Light() Palette {
	return Palette{
		Name:      config.ThemeLight,
		Primary:   Purple,
		OnPrimary: lipgloss.Color("#FFFFFF"),
		Surface:   lipgloss.Color("#FFFFFF"),
		OnSurface: Purple,
		Muted:     lipgloss.Color("#757575"),
	}
}

// Dark is used on dark terminal backgrounds. The surface is purple.
func Dark() Palette {
	return Palette{
		Name:      config.ThemeDark,
		Primary:   Purple,
		OnPrimary: lipgloss.Color("#FFFFFF"),
		Surface:   Purple,
		OnSurface: lipgloss.Color("#FFFFFF"),
		Muted:     lipgloss.Color("#BDBDBD"),
	}
}

// hasDarkBackground is swapped in tests.
var hasDarkBackground = lipgloss.HasDarkBackground

// Resolve returns the palette for a config theme value. Auto queries the
// terminal background.
func Resolve(mode string) (Palette, error) {
	name, err := config.ParseTheme(mode)
	if err != nil {
		return Palette{}, err
	}
	switch name {
	case config.ThemeLight:
		return Light(), nil
	case config.ThemeDark:
		return Dark(), nil
	case config.ThemeAuto:
		if hasDarkBackground() {
			return Dark(), nil
		}
		return Light(), nil
	default:
		return Palette{}, fmt.Errorf("unhandled theme %q", name)
	}
}

// BorderASCII draws boxes with plain ASCII so screenshots stay stable.
var BorderASCII = lipgloss.Border{
	Top:         "-",
	Bottom:      "-",
	Left:        "|",
	Right:       "|",
	TopLeft:     "+",
	TopRight:    "+",
	BottomLeft:  "+",
	BottomRight: "+",
}

// Styles are the lipgloss styles for every part of the screen.
type Styles struct {
	Palette Palette

	AppBar       lipgloss.Style
	AppBarAction lipgloss.Style

	Row          lipgloss.Style
	RowSelected  lipgloss.Style
	RowText      lipgloss.Style
	RowDoneText  lipgloss.Style
	Checkbox     lipgloss.Style
	CheckboxDone lipgloss.Style
	EditPrompt   lipgloss.Style
	Empty        lipgloss.Style

	Modal        lipgloss.Style
	ModalTitle   lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style

	Status      lipgloss.Style
	StatusError lipgloss.Style
	Hint        lipgloss.Style
}

// NewStyles builds the styles for p.
func NewStyles(p Palette) Styles {
	row := lipgloss.NewStyle().Padding(0, 1)
	button := lipgloss.NewStyle().Padding(0, 1).Foreground(p.OnSurface)
	return Styles{
		Palette: p,

		AppBar:       lipgloss.NewStyle().Bold(true).Foreground(p.OnPrimary).Background(p.Primary).Padding(0, 1),
		AppBarAction: lipgloss.NewStyle().Foreground(p.OnPrimary).Background(p.Primary).Padding(0, 1),

		Row:          row,
		RowSelected:  row.Copy().Border(BorderASCII, false, false, false, true).BorderForeground(p.Primary).PaddingLeft(0),
		RowText:      lipgloss.NewStyle().Foreground(p.OnSurface),
		RowDoneText:  lipgloss.NewStyle().Foreground(p.Muted).Strikethrough(true),
		Checkbox:     lipgloss.NewStyle().Foreground(p.OnSurface),
		CheckboxDone: lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		EditPrompt:   lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		Empty:        lipgloss.NewStyle().Foreground(p.Muted).Italic(true).Padding(1, 2),

		Modal:        lipgloss.NewStyle().Border(BorderASCII).BorderForeground(p.Primary).Padding(1, 2),
		ModalTitle:   lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Button:       button,
		ButtonActive: button.Copy().Bold(true).Foreground(p.OnPrimary).Background(p.Primary),

		Status:      lipgloss.NewStyle().Foreground(p.Primary),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Hint:        lipgloss.NewStyle().Foreground(p.Muted),
	}
}
