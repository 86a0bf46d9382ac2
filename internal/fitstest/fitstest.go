// Package fitstest writes small FITS files for tests.
package fitstest

import (
	"os"
	"testing"

	"github.com/astrogo/fitsio"
)

// Image describes an image unit
type Image struct {
	// Name is written as EXTNAME when set
	Name string

	Bitpix int
	Axes   []int

	// Data is a slice whose element type matches Bitpix, e.g. []float64 for -64
	Data interface{}

	Cards []fitsio.Card
}

// TANCards returns a gnomonic world coordinate description centred on
// (ra, dec) at the 1-based reference pixel (crpix1, crpix2) with square
// pixels of scale degrees, right ascension increasing to the left
func TANCards(ra, dec, crpix1, crpix2, scale float64) []fitsio.Card {
	return []fitsio.Card{
		{Name: "CTYPE1", Value: "RA---TAN"},
		{Name: "CTYPE2", Value: "DEC--TAN"},
		{Name: "CRVAL1", Value: ra},
		{Name: "CRVAL2", Value: dec},
		{Name: "CRPIX1", Value: crpix1},
		{Name: "CRPIX2", Value: crpix2},
		{Name: "CDELT1", Value: -scale},
		{Name: "CDELT2", Value: scale},
	}
}

// Write creates path holding img as its primary unit
func Write(t testing.TB, path string, img Image) {
	t.Helper()
	WriteAll(t, path, img)
}

// WriteAll creates path holding imgs in order. The first is the primary
// unit and the rest are IMAGE extensions.
func WriteAll(t testing.TB, path string, imgs ...Image) {
	t.Helper()

	w, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer w.Close()

	f, err := fitsio.Create(w)
	if err != nil {
		t.Fatalf("Failed to create FITS encoder: %v", err)
	}

	for i, img := range imgs {
		hdu := fitsio.NewImage(img.Bitpix, img.Axes)
		cards := img.Cards
		if img.Name != "" {
			cards = append([]fitsio.Card{{Name: "EXTNAME", Value: img.Name}}, cards...)
		}
		if len(cards) > 0 {
			if err := hdu.Header().Append(cards...); err != nil {
				t.Fatalf("Failed to append header cards to HDU %d: %v", i, err)
			}
		}
		if img.Data != nil {
			if err := hdu.Write(img.Data); err != nil {
				t.Fatalf("Failed to write image data to HDU %d: %v", i, err)
			}
		}
		if err := f.Write(hdu); err != nil {
			t.Fatalf("Failed to write HDU %d: %v", i, err)
		}
		if err := hdu.Close(); err != nil {
			t.Fatalf("Failed to close HDU %d: %v", i, err)
		}
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Failed to close FITS file: %v", err)
	}
}

// Ramp returns width*height samples where sample (x, y) = x + y*width
func Ramp(width, height int) []float64 {
	data := make([]float64, width*height)
	for i := range data {
		data[i] = float64(i)
	}
	return data
}
