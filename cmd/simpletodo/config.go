package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/amonks/simpletodo/internal/config"
	"github.com/amonks/simpletodo/internal/editor"
	"github.com/amonks/simpletodo/internal/paths"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and create configuration files",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file paths",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file in $VISUAL or $EDITOR",
	Args:  cobra.NoArgs,
	RunE:  runConfigEdit,
}

var (
	configInitForce   bool
	configInitProject bool
	configEditProject bool
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configShowCmd, configInitCmd, configEditCmd)

	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Replace an existing file")
	configInitCmd.Flags().BoolVar(&configInitProject, "project", false, "Write "+config.ProjectFile+" in the current directory instead of the global file")
	configEditCmd.Flags().BoolVar(&configEditProject, "project", false, "Edit "+config.ProjectFile+" in the current directory instead of the global file")
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	globalPath, err := config.GlobalPath()
	if err != nil {
		return err
	}
	projectPath, err := projectConfigPath()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "global  %s\nproject %s\n", globalPath, projectPath)
	return err
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return cfg.Encode(cmd.OutOrStdout())
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := config.GlobalPath()
	if configInitProject {
		path, err = projectConfigPath()
	}
	if err != nil {
		return err
	}

	if err := config.WriteDefault(path, configInitForce); err != nil {
		if errors.Is(err, config.ErrConfigExists) {
			return fmt.Errorf("%w (use --force to replace it)", err)
		}
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return err
}

// runConfigEdit creates the file if needed, opens it, and checks that the
// result still loads.
func runConfigEdit(cmd *cobra.Command, args []string) error {
	path, err := config.GlobalPath()
	if configEditProject {
		path, err = projectConfigPath()
	}
	if err != nil {
		return err
	}

	if err := config.WriteDefault(path, false); err != nil && !errors.Is(err, config.ErrConfigExists) {
		return err
	}
	if err := editor.Edit(path, editor.Streams{
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}); err != nil {
		return err
	}

	cwd, err := paths.WorkingDir()
	if err != nil {
		return err
	}
	if _, err := config.Load(cwd); err != nil {
		return fmt.Errorf("edited config does not load: %w", err)
	}
	return nil
}

func projectConfigPath() (string, error) {
	cwd, err := paths.WorkingDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, config.ProjectFile), nil
}
