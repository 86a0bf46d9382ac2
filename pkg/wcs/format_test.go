package wcs

import (
	"math"
	"testing"
)

func TestFormatHMS(t *testing.T) {
	tests := []struct {
		deg  float64
		step float64
		want string
	}{
		{150, 1, "10h00m00s"},
		{187.5, 60, "12h30m"},
		{15, 3600, "01h"},
		{150 + 0.5/240, 0.5, "10h00m00.5s"},
		{-2.0 / 240, 2, "23h59m58s"},
		{359.99999, 1, "00h00m00s"},
		{math.Copysign(0, -1), 1, "00h00m00s"},
		{math.Copysign(0, -1), 60, "00h00m"},
	}

	for _, tt := range tests {
		if got := FormatHMS(tt.deg, tt.step); got != tt.want {
			t.Errorf("FormatHMS(%v, %v): expected %q, got %q", tt.deg, tt.step, tt.want, got)
		}
	}
}

func TestFormatDMS(t *testing.T) {
	tests := []struct {
		deg  float64
		step float64
		want string
	}{
		{2.2, 30, "+02°12'00\""},
		{-0.5, 1, "-00°30'00\""},
		{45.25, 60, "+45°15'"},
		{-30, 3600, "-30°"},
		{10 + 1.25/3600, 0.05, "+10°00'01.25\""},
		{math.Copysign(0, -1), 1, "+00°00'00\""},
		{-1e-7, 1, "+00°00'00\""},
		{math.Copysign(0, -1), 3600, "+00°"},
	}

	for _, tt := range tests {
		if got := FormatDMS(tt.deg, tt.step); got != tt.want {
			t.Errorf("FormatDMS(%v, %v): expected %q, got %q", tt.deg, tt.step, tt.want, got)
		}
	}
}
