package locale

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: ""},
		{input: "en", want: "en"},
		{input: "ko_KR.UTF-8", want: "ko"},
		{input: "en-US", want: "en"},
		{input: "de_DE@euro", want: "de"},
		{input: " KO ", want: "ko"},
		{input: "C", want: ""},
		{input: "POSIX", want: ""},
		{input: "C.UTF-8", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := NormalizeTag(tc.input); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestAvailable(t *testing.T) {
	if diff := cmp.Diff([]string{"en", "ko"}, Available()); diff != "" {
		t.Fatalf("unexpected locales (-want +got):\n%s", diff)
	}
}

func TestTablesHaveTheSameKeys(t *testing.T) {
	all, err := loadTables()
	if err != nil {
		t.Fatalf("load tables: %v", err)
	}
	want := keysOf(all[DefaultTag])
	for tag, table := range all {
		if diff := cmp.Diff(want, keysOf(table)); diff != "" {
			t.Errorf("table %s keys differ from %s (-want +got):\n%s", tag, DefaultTag, diff)
		}
	}
}

func TestTablesDefineKnownKeys(t *testing.T) {
	catalog := MustDefault()
	keys := []string{
		AppbarTitle, AddTodo, TodoDone, DeleteDialogTitle, DeleteDialogText,
		DialogConfirm, DialogCancel, EmptyList, InputPlaceholder, Summary,
		StatusAdded, StatusDeleted, StatusDeleteCancelled, HintRead, HintEdit,
		HintDialog, Help,
	}
	for _, key := range keys {
		if got := catalog.String(key); got == key || got == "" {
			t.Errorf("key %q has no text", key)
		}
	}
}

func TestLoad_Unknown(t *testing.T) {
	_, err := Load("xx")
	if !errors.Is(err, ErrUnknownLocale) {
		t.Fatalf("expected ErrUnknownLocale, got %v", err)
	}
	if !strings.Contains(err.Error(), "en, ko") {
		t.Fatalf("expected error to list locales, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	t.Run("explicit wins", func(t *testing.T) {
		t.Setenv("LANG", "en_US.UTF-8")
		catalog, err := Resolve("ko")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if catalog.Tag() != "ko" {
			t.Fatalf("expected ko, got %q", catalog.Tag())
		}
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("LC_ALL", "")
		t.Setenv("LC_MESSAGES", "")
		t.Setenv("LANG", "ko_KR.UTF-8")
		catalog, err := Resolve("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if catalog.Tag() != "ko" {
			t.Fatalf("expected ko, got %q", catalog.Tag())
		}
	})

	t.Run("LC_ALL beats LANG", func(t *testing.T) {
		t.Setenv("LC_ALL", "en_GB.UTF-8")
		t.Setenv("LANG", "ko_KR.UTF-8")
		catalog, err := Resolve("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if catalog.Tag() != "en" {
			t.Fatalf("expected en, got %q", catalog.Tag())
		}
	})

	t.Run("unknown environment falls back", func(t *testing.T) {
		t.Setenv("LC_ALL", "")
		t.Setenv("LC_MESSAGES", "")
		t.Setenv("LANG", "fr_FR.UTF-8")
		catalog, err := Resolve("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if catalog.Tag() != DefaultTag {
			t.Fatalf("expected %s, got %q", DefaultTag, catalog.Tag())
		}
	})

	t.Run("unknown explicit is an error", func(t *testing.T) {
		if _, err := Resolve("fr"); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestCatalogFallbacks(t *testing.T) {
	catalog := &Catalog{
		tag:      "test",
		table:    map[string]string{"only_here": "here"},
		fallback: map[string]string{"only_fallback": "fallback"},
	}

	if got := catalog.String("only_here"); got != "here" {
		t.Errorf("expected %q, got %q", "here", got)
	}
	if got := catalog.String("only_fallback"); got != "fallback" {
		t.Errorf("expected %q, got %q", "fallback", got)
	}
	if got := catalog.String("missing"); got != "missing" {
		t.Errorf("expected key itself, got %q", got)
	}

	var nilCatalog *Catalog
	if got := nilCatalog.String("missing"); got != "missing" {
		t.Errorf("expected key from nil catalog, got %q", got)
	}
}

func TestFormatSummary(t *testing.T) {
	catalog := MustDefault()
	if got := catalog.Format(Summary, 1, 3); got != "1 of 3 done" {
		t.Fatalf("unexpected summary %q", got)
	}
}

func keysOf(table map[string]string) []string {
	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
