package wcs

import (
	"math"
	"strings"
	"testing"
)

// TestEdgeTicksLatitude verifies declination ticks on the left edge are
// evenly spaced multiples of the chosen step
func TestEdgeTicksLatitude(t *testing.T) {
	w := FromHeader(tanHeader(150, 2.2, 50.5, 1.0/3600))

	ticks := w.EdgeTicks(1, -0.5, -0.5, 99.5, 6)
	if len(ticks) != 3 {
		t.Fatalf("Expected 3 ticks, got %d: %v", len(ticks), ticks)
	}

	step := 30.0 / 3600
	for i := 1; i < len(ticks); i++ {
		if ticks[i].Pixel <= ticks[i-1].Pixel {
			t.Errorf("Expected increasing pixels, got %v then %v", ticks[i-1].Pixel, ticks[i].Pixel)
		}
		if d := ticks[i].Value - ticks[i-1].Value; math.Abs(d-step) > 1e-9 {
			t.Errorf("Expected spacing %v, got %v", step, d)
		}
	}

	if ticks[1].Label != "+02°12'00\"" {
		t.Errorf("Expected middle label +02°12'00\", got %q", ticks[1].Label)
	}
	for _, tick := range ticks {
		if tick.Pixel < -0.5 || tick.Pixel > 99.5 {
			t.Errorf("Tick at %v outside the edge", tick.Pixel)
		}
	}
}

// TestEdgeTicksLongitudeWrap verifies right ascension ticks across 0h
func TestEdgeTicksLongitudeWrap(t *testing.T) {
	w := FromHeader(tanHeader(0, 0, 50.5, 1.0/3600))

	ticks := w.EdgeTicks(0, -0.5, -0.5, 99.5, 6)
	labels := make(map[string]bool)
	for _, tick := range ticks {
		labels[tick.Label] = true
	}

	for _, want := range []string{"00h00m02s", "00h00m00s", "23h59m58s"} {
		if !labels[want] {
			t.Errorf("Expected tick %q, got %v", want, ticks)
		}
	}
	if len(ticks) != 3 {
		t.Errorf("Expected 3 ticks, got %d", len(ticks))
	}
}

// TestEdgeTicksLatitudeZero verifies the declination tick at the equator
// is labelled without a negative sign
func TestEdgeTicksLatitudeZero(t *testing.T) {
	w := FromHeader(tanHeader(0, 0, 50.5, 1.0/3600))

	ticks := w.EdgeTicks(1, -0.5, -0.5, 99.5, 6)
	found := false
	for _, tick := range ticks {
		if tick.Label == "+00°00'00\"" {
			found = true
		}
		if strings.Contains(tick.Label, "-0°") || strings.Contains(tick.Label, "+-") {
			t.Errorf("Expected no negative zero label, got %q", tick.Label)
		}
	}
	if !found {
		t.Errorf("Expected a tick at the equator, got %v", ticks)
	}
}

// TestEdgeTicksDegenerate verifies empty input ranges produce no ticks
func TestEdgeTicksDegenerate(t *testing.T) {
	w := FromHeader(tanHeader(150, 2.2, 50.5, 1.0/3600))

	if ticks := w.EdgeTicks(0, 0, 5, 5, 6); ticks != nil {
		t.Errorf("Expected no ticks for an empty edge, got %v", ticks)
	}
	if ticks := w.EdgeTicks(0, 0, 0, 10, 0); ticks != nil {
		t.Errorf("Expected no ticks for maxTicks 0, got %v", ticks)
	}
}
