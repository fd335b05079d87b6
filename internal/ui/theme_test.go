package ui

import "testing"

func TestGetThemeKnown(t *testing.T) {
	t.Parallel()

	got := GetTheme("Nord")
	if got.Name != "Nord" {
		t.Errorf("GetTheme(Nord).Name = %q", got.Name)
	}
}

func TestGetThemeUnknownFallsBack(t *testing.T) {
	t.Parallel()

	got := GetTheme("NoSuchTheme")
	if got.Name != themes[0].Name {
		t.Errorf("unknown theme resolved to %q, want %q", got.Name, themes[0].Name)
	}
}

func TestNextThemeCycles(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	name := themes[0].Name
	for range themes {
		if seen[name] {
			t.Fatalf("theme %q repeated before full cycle", name)
		}
		seen[name] = true
		name = NextTheme(name)
	}
	if name != themes[0].Name {
		t.Errorf("cycle did not wrap: ended on %q", name)
	}
}

func TestNextThemeUnknownResets(t *testing.T) {
	t.Parallel()

	if got := NextTheme("NoSuchTheme"); got != themes[0].Name {
		t.Errorf("NextTheme(unknown) = %q, want %q", got, themes[0].Name)
	}
}
