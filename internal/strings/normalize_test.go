package strings

import "testing"

func TestNormalizeLowerTrimSpace(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trims and lowercases",
			input: "  DARK  ",
			want:  "dark",
		},
		{
			name:  "inner spaces preserved",
			input: "  Ko KR  ",
			want:  "ko kr",
		},
		{
			name:  "whitespace only",
			input: "  \t\n ",
			want:  "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeLowerTrimSpace(tc.input)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestIsBlank(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "empty", input: "", want: true},
		{name: "whitespace", input: " \t\n", want: true},
		{name: "text", input: "note", want: false},
		{name: "padded text", input: "  note  ", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := IsBlank(tc.input)
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestNormalizeNewlines(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "no carriage returns", input: "one\ntwo", want: "one\ntwo"},
		{name: "crlf", input: "one\r\ntwo", want: "one\ntwo"},
		{name: "mixed", input: "one\r\ntwo\rthree", want: "one\ntwo\nthree"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeNewlines(tc.input)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestTrimTrailingNewlines(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "no newline", input: "note", want: "note"},
		{name: "trailing crlf", input: "note\r\n", want: "note"},
		{name: "multiple trailing", input: "note\n\r\n", want: "note"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TrimTrailingNewlines(tc.input)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
