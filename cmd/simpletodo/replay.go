package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/amonks/simpletodo/internal/replay"
	"github.com/amonks/simpletodo/internal/ui"
	"github.com/amonks/simpletodo/todo"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay [file]",
	Short: "Apply an action script to an empty list and print the result",
	Long: `Apply an action script to an empty list and print the result.

The script is read from file, or from stdin when file is omitted or "-".
Each line is one action:

  add                 append a blank todo in edit mode
  text <i> <text...>  set the text of todo i
  done <i>            mark todo i done
  undone <i>          mark todo i not done
  toggle <i>          flip the done flag of todo i
  edit <i>            switch todo i to its edit view
  finish <i>          switch todo i to its read view
  delete <i>          ask to delete todo i
  confirm             delete the todo asked about
  cancel              keep the todo asked about

Blank lines and lines starting with # are ignored. Indices start at 0.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

var (
	replayJSON  bool
	replayTrace bool
)

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().BoolVar(&replayJSON, "json", false, "Print the final list as JSON")
	replayCmd.Flags().BoolVar(&replayTrace, "trace", false, "Print each action to stderr as it is applied")
}

func runReplay(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer settings.Close()

	name, input, closeInput, err := openReplayInput(cmd, args)
	if err != nil {
		return err
	}
	defer closeInput()

	var trace replay.Tracer
	if replayTrace {
		trace = func(action replay.Action) {
			fmt.Fprintf(cmd.ErrOrStderr(), "> %s\n", action)
		}
	}

	store := todo.NewStore(todo.StoreOptions{Logger: settings.logger})
	count, err := replay.Run(store, input, trace)
	if err != nil {
		return fmt.Errorf("replay %s: %w", name, err)
	}
	settings.logger.Info("replayed script", "script", name, "actions", count, "todos", store.Len())

	if replayJSON {
		return encodeJSON(cmd.OutOrStdout(), store.Todos())
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), formatReplayResult(store.State()))
	return err
}

func openReplayInput(cmd *cobra.Command, args []string) (string, io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return "stdin", cmd.InOrStdin(), func() {}, nil
	}
	file, err := os.Open(args[0])
	if err != nil {
		return "", nil, nil, fmt.Errorf("open script: %w", err)
	}
	return args[0], file, func() { file.Close() }, nil
}

func formatReplayResult(state todo.State) string {
	if len(state.Todos) == 0 {
		return "No todos found.\n"
	}

	builder := ui.NewTableBuilder([]string{"#", "DONE", "VIEW", "TEXT"}, len(state.Todos))
	for i, item := range state.Todos {
		view := "read"
		if item.OnEdit {
			view = "edit"
		}
		builder.AddRow(strconv.Itoa(i), ui.Checkbox(item.Done), view, ui.TruncateTableCell(item.Text))
	}
	out := builder.String()
	if i, ok := state.Dialog.Pending(); ok {
		out += fmt.Sprintf("\nDelete pending for todo %d.\n", i)
	}
	return out
}
