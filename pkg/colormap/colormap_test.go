package colormap

import (
	"errors"
	"image/color"
	"testing"
)

func closeTo(t *testing.T, got color.Color, want color.NRGBA, tol int) {
	t.Helper()
	c := color.NRGBAModel.Convert(got).(color.NRGBA)
	for _, d := range []int{
		int(c.R) - int(want.R),
		int(c.G) - int(want.G),
		int(c.B) - int(want.B),
	} {
		if d < -tol || d > tol {
			t.Errorf("Expected color near %v, got %v", want, c)
			return
		}
	}
}

// TestLookupEndpoints verifies a map reproduces its end colors
func TestLookupEndpoints(t *testing.T) {
	cm, err := Lookup("viridis")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}

	lo, err := cm.At(0)
	if err != nil {
		t.Fatalf("At(0) failed: %v", err)
	}
	closeTo(t, lo, color.NRGBA{R: 0x44, G: 0x01, B: 0x54, A: 0xff}, 3)

	hi, err := cm.At(1)
	if err != nil {
		t.Fatalf("At(1) failed: %v", err)
	}
	closeTo(t, hi, color.NRGBA{R: 0xfd, G: 0xe7, B: 0x25, A: 0xff}, 3)
}

// TestLookupReversed verifies the _r suffix swaps the ends
func TestLookupReversed(t *testing.T) {
	cm, err := Lookup("gray_r")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}

	lo, err := cm.At(0)
	if err != nil {
		t.Fatalf("At(0) failed: %v", err)
	}
	closeTo(t, lo, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, 2)

	pal := cm.Palette(4).Colors()
	if len(pal) != 4 {
		t.Fatalf("Expected 4 palette entries, got %d", len(pal))
	}
	closeTo(t, pal[3], color.NRGBA{A: 0xff}, 2)
}

// TestLookupAllNames verifies every advertised name resolves
func TestLookupAllNames(t *testing.T) {
	for _, name := range Names() {
		cm, err := Lookup(name)
		if err != nil {
			t.Errorf("Lookup(%q) failed: %v", name, err)
			continue
		}
		if cm.Min() != 0 || cm.Max() != 1 {
			t.Errorf("%s: expected range [0, 1], got [%v, %v]", name, cm.Min(), cm.Max())
		}
		if _, err := Lookup(name + "_r"); err != nil {
			t.Errorf("Lookup(%q) failed: %v", name+"_r", err)
		}
	}
}

// TestLookupUnknown verifies unknown names are reported
func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("rainbow-unicorn"); !errors.Is(err, ErrUnknownColormap) {
		t.Errorf("Expected ErrUnknownColormap, got %v", err)
	}
}

// TestParseColor verifies names, letter codes and hex strings
func TestParseColor(t *testing.T) {
	tests := []struct {
		spec string
		want color.NRGBA
	}{
		{"white", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"Red", color.NRGBA{R: 0xff, A: 0xff}},
		{"k", color.NRGBA{A: 0xff}},
		{"#00ff00", color.NRGBA{G: 0xff, A: 0xff}},
		{"#f0a", color.NRGBA{R: 0xff, B: 0xaa, A: 0xff}},
		{"#11223344", color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.spec)
		if err != nil {
			t.Errorf("ParseColor(%q) failed: %v", tt.spec, err)
			continue
		}
		c := color.NRGBAModel.Convert(got).(color.NRGBA)
		if c != tt.want {
			t.Errorf("ParseColor(%q): expected %v, got %v", tt.spec, tt.want, c)
		}
	}
}

// TestParseColorInvalid verifies unparseable colors are reported
func TestParseColorInvalid(t *testing.T) {
	for _, spec := range []string{"", "notacolor", "#12", "#gggggg"} {
		if _, err := ParseColor(spec); !errors.Is(err, ErrUnknownColor) {
			t.Errorf("ParseColor(%q): expected ErrUnknownColor, got %v", spec, err)
		}
	}
}
