// Package locale looks up user-facing strings from embedded per-language tables.
package locale

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	internalstrings "github.com/amonks/simpletodo/internal/strings"
)

// Keys present in every table.
const (
	AppbarTitle           = "appbar_title"
	AddTodo               = "add_todo"
	TodoDone              = "todo_done"
	DeleteDialogTitle     = "delete_dialog_title"
	DeleteDialogText      = "delete_dialog_text"
	DialogConfirm         = "dialog_confirm"
	DialogCancel          = "dialog_cancel"
	EmptyList             = "empty_list"
	InputPlaceholder      = "input_placeholder"
	Summary               = "summary"
	StatusAdded           = "status_added"
	StatusDeleted         = "status_deleted"
	StatusDeleteCancelled = "status_delete_cancelled"
	HintRead              = "hint_read"
	HintEdit              = "hint_edit"
	HintDialog            = "hint_dialog"
	Help                  = "help"
)

// DefaultTag is the locale used when nothing else matches. Its table is
// also the fallback for keys missing from other tables.
const DefaultTag = "en"

// ErrUnknownLocale is returned when no table exists for a requested locale.
var ErrUnknownLocale = errors.New("unknown locale")

//go:embed tables/*.toml
var tablesFS embed.FS

var (
	tablesOnce sync.Once
	tables     map[string]map[string]string
	tablesErr  error
)

// Catalog is the string table for one locale.
type Catalog struct {
	tag      string
	table    map[string]string
	fallback map[string]string
}

// Load returns the catalog for tag. Tags like "ko_KR.UTF-8" resolve to "ko".
func Load(tag string) (*Catalog, error) {
	all, err := loadTables()
	if err != nil {
		return nil, err
	}
	normalized := NormalizeTag(tag)
	table, ok := all[normalized]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownLocale, tag, strings.Join(Available(), ", "))
	}
	return &Catalog{tag: normalized, table: table, fallback: all[DefaultTag]}, nil
}

// Resolve picks a catalog from an explicit tag, then the environment, then
// DefaultTag. Only an explicit tag that matches no table is an error.
func Resolve(explicit string) (*Catalog, error) {
	if !internalstrings.IsBlank(explicit) {
		return Load(explicit)
	}
	if tag := FromEnv(); tag != "" {
		if catalog, err := Load(tag); err == nil {
			return catalog, nil
		}
	}
	return Load(DefaultTag)
}

// MustDefault returns the DefaultTag catalog and panics if the embedded
// tables are broken.
func MustDefault() *Catalog {
	catalog, err := Load(DefaultTag)
	if err != nil {
		panic(err)
	}
	return catalog
}

// FromEnv returns the locale named by LC_ALL, LC_MESSAGES, or LANG, in that
// order, or "" when none is set.
func FromEnv() string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if tag := NormalizeTag(os.Getenv(name)); tag != "" {
			return tag
		}
	}
	return ""
}

// NormalizeTag reduces a POSIX locale or BCP 47 tag to its language.
// "C" and "POSIX" normalize to "".
func NormalizeTag(tag string) string {
	value := internalstrings.NormalizeLowerTrimSpace(tag)
	if i := strings.IndexAny(value, ".@"); i >= 0 {
		value = value[:i]
	}
	if i := strings.IndexAny(value, "_-"); i >= 0 {
		value = value[:i]
	}
	switch value {
	case "c", "posix":
		return ""
	}
	return value
}

// Available returns the sorted list of locale tags with a table.
func Available() []string {
	all, err := loadTables()
	if err != nil {
		return nil
	}
	tags := make([]string, 0, len(all))
	for tag := range all {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Tag returns the catalog's locale tag.
func (c *Catalog) Tag() string {
	return c.tag
}

// String returns the text for key, falling back to the default table and
// finally to the key itself.
func (c *Catalog) String(key string) string {
	if c == nil {
		return key
	}
	if value, ok := c.table[key]; ok {
		return value
	}
	if value, ok := c.fallback[key]; ok {
		return value
	}
	return key
}

// Format looks up key and formats it with args.
func (c *Catalog) Format(key string, args ...any) string {
	return fmt.Sprintf(c.String(key), args...)
}

func loadTables() (map[string]map[string]string, error) {
	tablesOnce.Do(func() {
		tables, tablesErr = readTables()
	})
	return tables, tablesErr
}

func readTables() (map[string]map[string]string, error) {
	entries, err := tablesFS.ReadDir("tables")
	if err != nil {
		return nil, fmt.Errorf("read locale tables: %w", err)
	}
	loaded := make(map[string]map[string]string, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".toml" {
			continue
		}
		data, err := tablesFS.ReadFile(path.Join("tables", name))
		if err != nil {
			return nil, fmt.Errorf("read locale table %s: %w", name, err)
		}
		var table map[string]string
		if _, err := toml.Decode(string(data), &table); err != nil {
			return nil, fmt.Errorf("parse locale table %s: %w", name, err)
		}
		loaded[strings.TrimSuffix(name, ".toml")] = table
	}
	if _, ok := loaded[DefaultTag]; !ok {
		return nil, fmt.Errorf("locale table %s.toml is missing", DefaultTag)
	}
	return loaded, nil
}
