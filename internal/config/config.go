// Package config handles loading simpletodo.toml configuration files.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/amonks/simpletodo/internal/locale"
	"github.com/amonks/simpletodo/internal/paths"
	internalstrings "github.com/amonks/simpletodo/internal/strings"
	"github.com/natefinch/atomic"
)

// ProjectFile is the name of the per-directory config file.
const ProjectFile = "simpletodo.toml"

// Theme values accepted by [ui] theme.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Defaults applied when neither config file sets a value.
const (
	DefaultTheme     = ThemeAuto
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// ErrConfigExists is returned by WriteDefault when the file is already there.
var ErrConfigExists = errors.New("config file already exists")

// Config represents the simpletodo.toml configuration file.
type Config struct {
	UI  UI  `toml:"ui"`
	Log Log `toml:"log"`
}

// UI contains presentation settings.
type UI struct {
	// Theme selects the color palette: auto, light, or dark.
	// Auto follows the terminal background.
	Theme string `toml:"theme"`

	// Locale selects the string table, e.g. "en" or "ko".
	// Empty means the locale comes from the environment.
	Locale string `toml:"locale"`
}

// Log contains logging settings.
type Log struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`

	// Format is one of text, logfmt, json.
	Format string `toml:"format"`

	// File is the log file path. Empty means the default state directory.
	File string `toml:"file"`
}

// Load loads configuration from dir and the global config file.
// Missing files are not an error; unset values take their defaults.
func Load(dir string) (*Config, error) {
	globalPath, err := GlobalPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, ProjectFile))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	applyDefaults(merged)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// GlobalPath returns the path of the global config file.
func GlobalPath() (string, error) {
	dir, err := paths.DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Validate checks values that have a fixed set of choices. An empty locale
// is valid and means the environment decides.
func (cfg *Config) Validate() error {
	if _, err := ParseTheme(cfg.UI.Theme); err != nil {
		return err
	}
	if !internalstrings.IsBlank(cfg.UI.Locale) {
		if _, err := locale.Load(cfg.UI.Locale); err != nil {
			return fmt.Errorf("invalid locale: %w", err)
		}
	}
	switch internalstrings.NormalizeLowerTrimSpace(cfg.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level %q (want debug, info, warn, or error)", cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "text", "logfmt", "json":
	default:
		return fmt.Errorf("invalid log format %q (want text, logfmt, or json)", cfg.Log.Format)
	}
	return nil
}

// Encode writes the configuration as TOML.
func (cfg *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// ParseTheme normalizes a theme name.
func ParseTheme(value string) (string, error) {
	normalized := internalstrings.NormalizeLowerTrimSpace(value)
	switch normalized {
	case "":
		return DefaultTheme, nil
	case ThemeAuto, ThemeLight, ThemeDark:
		return normalized, nil
	default:
		return "", fmt.Errorf("invalid theme %q (want auto, light, or dark)", value)
	}
}

// WriteDefault writes the commented default config to path. It refuses to
// replace an existing file unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("stat config file %s: %w", path, err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := atomic.WriteFile(path, strings.NewReader(defaultFile)); err != nil {
		return fmt.Errorf("write config file %s: %w", path, err)
	}
	return nil
}

const defaultFile = `# simpletodo configuration

[ui]
# auto follows the terminal background; light or dark force a palette.
theme = "auto"
# Leave empty to use LC_ALL, LC_MESSAGES, or LANG. Available: en, ko.
locale = ""

[log]
# debug, info, warn, or error
level = "info"
# text, logfmt, or json
format = "text"
# Empty means ~/.local/state/simpletodo/simpletodo.log
file = ""
`

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: unknown key %q", path, undecoded[0].String())
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.UI.Theme = mergeString(projectMeta.IsDefined("ui", "theme"), projectCfg.UI.Theme, globalCfg.UI.Theme)
	merged.UI.Locale = mergeString(projectMeta.IsDefined("ui", "locale"), projectCfg.UI.Locale, globalCfg.UI.Locale)
	merged.Log.Level = mergeString(projectMeta.IsDefined("log", "level"), projectCfg.Log.Level, globalCfg.Log.Level)
	merged.Log.Format = mergeString(projectMeta.IsDefined("log", "format"), projectCfg.Log.Format, globalCfg.Log.Format)
	merged.Log.File = mergeString(projectMeta.IsDefined("log", "file"), projectCfg.Log.File, globalCfg.Log.File)

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

func applyDefaults(cfg *Config) {
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = DefaultTheme
	}
	cfg.UI.Theme = internalstrings.NormalizeLowerTrimSpace(cfg.UI.Theme)
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	cfg.Log.Format = internalstrings.NormalizeLowerTrimSpace(cfg.Log.Format)
}
