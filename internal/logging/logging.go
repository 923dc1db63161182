// Package logging builds the charmbracelet/log logger simpletodo writes to.
//
// The TUI owns the terminal, so records go to a file rather than stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/amonks/simpletodo/internal/config"
	"github.com/amonks/simpletodo/internal/paths"
	internalstrings "github.com/amonks/simpletodo/internal/strings"
	"github.com/charmbracelet/log"
)

const prefix = "simpletodo"

// Options selects where and how records are written.
type Options struct {
	Level  string
	Format string
	// File is the log file path. Empty means paths.DefaultLogFile.
	File string
}

// FromConfig returns the options described by the [log] table.
func FromConfig(cfg config.Log) Options {
	return Options{Level: cfg.Level, Format: cfg.Format, File: cfg.File}
}

// ParseLevel parses a level name. Empty means info.
func ParseLevel(level string) (log.Level, error) {
	switch internalstrings.NormalizeLowerTrimSpace(level) {
	case "debug":
		return log.DebugLevel, nil
	case "", "info":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InfoLevel, fmt.Errorf("invalid log level %q (want debug, info, warn, or error)", level)
	}
}

// ParseFormatter parses a format name. Empty means text.
func ParseFormatter(format string) (log.Formatter, error) {
	switch internalstrings.NormalizeLowerTrimSpace(format) {
	case "", "text":
		return log.TextFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	default:
		return log.TextFormatter, fmt.Errorf("invalid log format %q (want text, logfmt, or json)", format)
	}
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) (*log.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	formatter, err := ParseFormatter(opts.Format)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
		Prefix:          prefix,
	}), nil
}

// Open returns a logger appending to the configured file. The caller closes
// the returned closer when done.
func Open(opts Options) (*log.Logger, io.Closer, error) {
	path := opts.File
	if internalstrings.IsBlank(path) {
		defaultPath, err := paths.DefaultLogFile()
		if err != nil {
			return nil, nil, err
		}
		path = defaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	logger, err := New(file, opts)
	if err != nil {
		file.Close()
		return nil, nil, err
	}
	return logger, file, nil
}

// Discard returns a logger that drops every record.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
