package theme

import (
	"testing"

	"tableflip.dev/lanes/pkg/config"
	"tableflip.dev/lanes/pkg/lane"
)

func TestFadeEndpoints(t *testing.T) {
	if got := Fade("#000000", "#ffffff", 0); got != "#000000" {
		t.Fatalf("expected black, got %s", got)
	}
	if got := Fade("#000000", "#ffffff", 1); got != "#ffffff" {
		t.Fatalf("expected white, got %s", got)
	}
	if got := Fade("nope", "#ffffff", 0.5); got != "nope" {
		t.Fatalf("expected fallback, got %s", got)
	}
}

func TestResolveExplicitModes(t *testing.T) {
	if Resolve(config.ThemeDark) != Dark || Resolve(config.ThemeLight) != Light {
		t.Fatalf("explicit themes should not consult the terminal")
	}
	if Light.Toggle() != Dark || Dark.Toggle() != Light {
		t.Fatalf("toggle should flip the mode")
	}
}

func TestPalettesCoverEveryLane(t *testing.T) {
	for _, mode := range []Mode{Light, Dark} {
		th := New(mode)
		if th.Mode != mode {
			t.Fatalf("mode not recorded")
		}
		for _, l := range lane.All() {
			if th.Palette.Lanes[l] == "" {
				t.Fatalf("%s palette missing lane %s", mode, l)
			}
		}
	}
}
