package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/amonks/simpletodo/internal/locale"
	"github.com/amonks/simpletodo/internal/markdown"
	"github.com/amonks/simpletodo/internal/theme"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const defaultHelpWidth = 80

var helpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "Help about any command",
	Args:  cobra.ArbitraryArgs,
	RunE:  runHelp,
}

var helpKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show the keys the to-do screen understands",
	Args:  cobra.NoArgs,
	RunE:  runHelpKeys,
}

func init() {
	rootCmd.SetHelpCommand(helpCmd)
	helpCmd.AddCommand(helpKeysCmd)
}

func runHelp(cmd *cobra.Command, args []string) error {
	root := cmd.Root()
	if len(args) == 0 {
		return root.Help()
	}

	target, rest, err := root.Find(args)
	if err != nil || target == nil || len(rest) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Unknown help topic %q\n", strings.Join(args, " "))
		return root.Help()
	}

	return target.Help()
}

func runHelpKeys(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	catalog, err := locale.Resolve(cfg.UI.Locale)
	if err != nil {
		return err
	}

	style, width := markdown.StyleASCII, defaultHelpWidth
	if isTerminal(os.Stdout) && os.Getenv("NO_COLOR") == "" {
		if palette, err := theme.Resolve(cfg.UI.Theme); err == nil {
			style = palette.Name
		}
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), markdown.Render(style, width, catalog.String(locale.Help)))
	return err
}
