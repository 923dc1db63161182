// Package main implements the simpletodo CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/amonks/simpletodo/internal/theme"
	"github.com/amonks/simpletodo/internal/tui"
	"github.com/amonks/simpletodo/todo"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "simpletodo",
	Short:        "A minimal to-do list for the terminal",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runRoot,
}

var rootTheme string

func init() {
	rootCmd.Flags().StringVar(&rootTheme, "theme", "", "Color theme: auto, light, or dark")
	addGlobalFlags(rootCmd)
}

func runRoot(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return fmt.Errorf("simpletodo needs an interactive terminal; use \"simpletodo replay\" to run a script")
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer settings.Close()

	palette, err := theme.Resolve(settings.cfg.UI.Theme)
	if err != nil {
		return err
	}

	store := todo.NewStore(todo.StoreOptions{Logger: settings.logger})
	return tui.Run(cmd.Context(), tui.Options{
		Store:   store,
		Styles:  theme.NewStyles(palette),
		Catalog: settings.catalog,
		Logger:  settings.logger,
	})
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
