package ui

import (
	"bytes"
	"strings"
	"testing"
)

func useTheme(t *testing.T, name string) {
	t.Helper()
	if err := SetTheme(name); err != nil {
		t.Fatalf("set theme: %v", err)
	}
	t.Cleanup(func() {
		SetTheme(ThemeClassic)
		SetColorForcing(false, false)
	})
}

func TestProgressBar(t *testing.T) {
	cases := []struct {
		done, total, width int
		want               string
	}{
		{0, 0, 10, "░░░░░░░░░░   0%"},
		{1, 2, 10, "█████░░░░░  50%"},
		{3, 3, 5, "█████ 100%"},
		{1, 1, 2, "█████ 100%"},
	}
	for _, tc := range cases {
		if got := ProgressBar(tc.done, tc.total, tc.width); got != tc.want {
			t.Fatalf("ProgressBar(%d, %d, %d): expected %q, got %q", tc.done, tc.total, tc.width, tc.want, got)
		}
	}
}

func TestPanelStringMono(t *testing.T) {
	useTheme(t, ThemeMono)

	got := PanelString([]string{"Todos", "a longer line"})
	want := strings.Join([]string{
		"+---------------+",
		"| Todos         |",
		"| a longer line |",
		"+---------------+",
		"",
	}, "\n")
	if got != want {
		t.Fatalf("expected\n%s\ngot\n%s", want, got)
	}
}

func TestSetThemeRejectsUnknown(t *testing.T) {
	useTheme(t, ThemeNeon)
	if err := SetTheme("solarized"); err == nil {
		t.Fatalf("expected unknown theme error")
	}
	if Current().Name != ThemeNeon {
		t.Fatalf("expected theme to stay neon, got %q", Current().Name)
	}
}

func TestOKAndFailWithoutColor(t *testing.T) {
	SetColorForcing(false, true)
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	t.Cleanup(func() {
		SetOutput(nil, nil)
		SetColorForcing(false, false)
	})

	OK("added")
	Fail("boom")
	if out.String() != "✔ added\n" {
		t.Fatalf("unexpected stdout %q", out.String())
	}
	if errOut.String() != "✖ boom\n" {
		t.Fatalf("unexpected stderr %q", errOut.String())
	}
}

func TestHighlightID(t *testing.T) {
	SetColorForcing(true, false)
	t.Cleanup(func() { SetColorForcing(false, false) })

	got := HighlightID("abc123", 3)
	if !strings.HasPrefix(got, bold+fgCyan+"abc"+reset) || !strings.HasSuffix(got, "123") {
		t.Fatalf("unexpected highlight %q", got)
	}
	if got := HighlightID("abc", 0); got != "abc" {
		t.Fatalf("expected no highlight for zero prefix, got %q", got)
	}

	SetColorForcing(false, true)
	if got := HighlightID("abc123", 3); got != "abc123" {
		t.Fatalf("expected plain id without color, got %q", got)
	}
}

func TestShortID(t *testing.T) {
	cases := []struct {
		id     string
		prefix int
		min    int
		want   string
	}{
		{"0f8fad5b-d9cb-469f", 2, 8, "0f8fad5b"},
		{"0f8fad5b-d9cb-469f", 10, 8, "0f8fad5b-d"},
		{"abc", 1, 8, "abc"},
	}
	for _, tc := range cases {
		if got := ShortID(tc.id, tc.prefix, tc.min); got != tc.want {
			t.Fatalf("ShortID(%q, %d, %d): expected %q, got %q", tc.id, tc.prefix, tc.min, tc.want, got)
		}
	}
}

func TestTruncateAndWrap(t *testing.T) {
	if got := Truncate("Buy milk and eggs", 10); got != "Buy mil..." {
		t.Fatalf("unexpected truncate %q", got)
	}
	if got := Truncate("short", 10); got != "short" {
		t.Fatalf("expected short string untouched, got %q", got)
	}
	if got := Wrap("one two three", 7, 2); got != "one two\n  three" {
		t.Fatalf("unexpected wrap %q", got)
	}
}

func TestMarkdownBlank(t *testing.T) {
	if got := Markdown(40, " \n\n"); got != "" {
		t.Fatalf("expected blank markdown to render empty, got %q", got)
	}
	SetColorForcing(false, true)
	t.Cleanup(func() { SetColorForcing(false, false) })
	if got := Markdown(40, "hello **world**"); !strings.Contains(got, "hello") {
		t.Fatalf("expected rendered text to keep content, got %q", got)
	}
}

func TestNextThemeCycles(t *testing.T) {
	cases := map[string]string{
		ThemeClassic: ThemeNeon,
		ThemeNeon:    ThemeMono,
		ThemeMono:    ThemeClassic,
		"unknown":    ThemeClassic,
	}
	for from, want := range cases {
		if got := NextTheme(from); got != want {
			t.Fatalf("NextTheme(%q): expected %q, got %q", from, want, got)
		}
	}
}

func TestMonoThemeColorIsReversible(t *testing.T) {
	SetColorForcing(true, false)
	useTheme(t, ThemeMono)
	if ColorEnabled() {
		t.Fatalf("expected mono to disable color")
	}
	if err := SetTheme(ThemeClassic); err != nil {
		t.Fatalf("set theme: %v", err)
	}
	if !ColorEnabled() {
		t.Fatalf("expected color back after leaving mono")
	}
}
