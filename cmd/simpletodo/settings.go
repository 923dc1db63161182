package main

import (
	"io"

	"github.com/amonks/simpletodo/internal/config"
	"github.com/amonks/simpletodo/internal/locale"
	"github.com/amonks/simpletodo/internal/logging"
	"github.com/amonks/simpletodo/internal/paths"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	globalLocale   string
	globalLogLevel string
	globalLogFile  string
)

var localeFlagAliases = map[string]string{
	"lang": "locale",
}

// addGlobalFlags registers the flags every command accepts. Aliases apply to
// cmd and all of its subcommands.
func addGlobalFlags(cmd *cobra.Command) {
	cmd.SetGlobalNormalizationFunc(flagAliasNormalizer(localeFlagAliases))
	flags := cmd.PersistentFlags()
	flags.StringVar(&globalLocale, "locale", "", "Locale for labels and messages (en, ko)")
	flags.StringVar(&globalLogLevel, "log-level", "", "Log level: debug, info, warn, or error")
	flags.StringVar(&globalLogFile, "log-file", "", "Log file path")
}

func flagAliasNormalizer(aliases map[string]string) func(*pflag.FlagSet, string) pflag.NormalizedName {
	return func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if alias, ok := aliases[name]; ok {
			name = alias
		}
		return pflag.NormalizedName(name)
	}
}

// settings is the resolved configuration a command runs with.
type settings struct {
	cfg     *config.Config
	catalog *locale.Catalog
	logger  *log.Logger
	closer  io.Closer
}

func (s *settings) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// loadConfig loads the config files and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cwd, err := paths.WorkingDir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flag := flags.Lookup("theme"); flag != nil && flag.Changed {
		cfg.UI.Theme, err = config.ParseTheme(rootTheme)
		if err != nil {
			return nil, err
		}
	}
	if flags.Changed("locale") {
		cfg.UI.Locale = globalLocale
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = globalLogLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = globalLogFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadSettings resolves config, locale, and the log file.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	catalog, err := locale.Resolve(cfg.UI.Locale)
	if err != nil {
		return nil, err
	}
	logger, closer, err := logging.Open(logging.FromConfig(cfg.Log))
	if err != nil {
		return nil, err
	}
	return &settings{cfg: cfg, catalog: catalog, logger: logger, closer: closer}, nil
}
