package palette

import "testing"

func TestColor_Cycles(t *testing.T) {
	p := Defaults().Distribution
	if len(p) != 6 {
		t.Fatalf("distribution palette has %d colors, want 6", len(p))
	}

	// The 7th slice (index 6) reuses color index 0.
	if got := p.Color(6); got != p[0] {
		t.Errorf("Color(6) = %q, want %q", got, p[0])
	}
	if got := p.Color(13); got != p[1] {
		t.Errorf("Color(13) = %q, want %q", got, p[1])
	}
}

func TestColor_Empty(t *testing.T) {
	var p Palette
	if got := p.Color(3); got != "" {
		t.Errorf("empty palette Color = %q, want empty", got)
	}
}

func TestColors(t *testing.T) {
	p := Palette{"a", "b", "c"}
	got := p.Colors(7)
	want := []string{"a", "b", "c", "a", "b", "c", "a"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Colors[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
