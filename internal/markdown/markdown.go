// Package markdown renders the help text for the terminal.
package markdown

import (
	"fmt"
	"strings"
	"sync"

	internalstrings "github.com/amonks/simpletodo/internal/strings"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// Style names accepted by Render.
const (
	StyleASCII = "ascii"
	StyleDark  = "dark"
	StyleLight = "light"
)

type renderer interface {
	Render(string) (string, error)
}

type cacheKey struct {
	style string
	width int
}

var (
	rendererMu sync.Mutex
	renderers  = map[cacheKey]renderer{}
)

// Render formats markdown for a terminal of the given width. If rendering
// fails the normalized input is returned unchanged.
func Render(style string, width int, input string) string {
	value := internalstrings.NormalizeNewlines(input)
	value = internalstrings.TrimTrailingNewlines(value)
	if internalstrings.IsBlank(value) {
		return ""
	}
	if width < 1 {
		width = 1
	}

	rendered, err := safeRender(markdownRenderer(style, width), value)
	if err != nil {
		return value
	}
	rendered = trimBlankEdges(rendered)
	if internalstrings.IsBlank(rendered) {
		return value
	}
	return rendered
}

func safeRender(r renderer, value string) (out string, err error) {
	if r == nil {
		return "", fmt.Errorf("no markdown renderer")
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("render markdown: %v", recovered)
		}
	}()
	return r.Render(value)
}

func markdownRenderer(style string, width int) renderer {
	key := cacheKey{style: style, width: width}
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if cached, ok := renderers[key]; ok {
		return cached
	}
	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(styleConfig(style)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[key] = created
	return created
}

func styleConfig(style string) ansi.StyleConfig {
	var config ansi.StyleConfig
	switch style {
	case StyleDark:
		config = styles.DarkStyleConfig
	case StyleLight:
		config = styles.LightStyleConfig
	default:
		config = styles.ASCIIStyleConfig
	}
	config.Document.Margin = uintPtr(0)
	config.Item.BlockPrefix = "- "
	return config
}

func uintPtr(v uint) *uint {
	return &v
}

// trimBlankEdges drops the blank lines glamour puts around a document and
// the trailing padding on each line.
func trimBlankEdges(value string) string {
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	start, end := 0, len(lines)
	for start < end && lines[start] == "" {
		start++
	}
	for end > start && lines[end-1] == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
