package fitsfile

import (
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/astrogo/fitsio"

	"fitsview/internal/fitstest"
	"fitsview/internal/models"
)

// TestFirstImageSkipsLowRank verifies that headers, tables and vectors are
// passed over in favour of the first array of rank 2 or more
func TestFirstImageSkipsLowRank(t *testing.T) {
	exts := []models.Extension{
		{Index: 0, Name: "PRIMARY"},
		{Index: 1, Name: "SPECTRUM", Axes: []int{4}, Data: []float64{1, 2, 3, 4}},
		{Index: 2, Name: "EVENTS", Axes: []int{16, 100}},
		{Index: 3, Name: "SCI", Axes: []int{2, 2}, Data: []float64{1, 2, 3, 4}},
		{Index: 4, Name: "ERR", Axes: []int{2, 2}, Data: []float64{5, 6, 7, 8}},
	}

	ext, err := FirstImage(exts)
	if err != nil {
		t.Fatalf("FirstImage failed: %v", err)
	}
	if ext.Index != 3 {
		t.Errorf("Expected extension 3, got %d (%s)", ext.Index, ext.Name)
	}
}

// TestFirstImageNoImageData verifies the error when nothing has rank 2
func TestFirstImageNoImageData(t *testing.T) {
	exts := []models.Extension{
		{Index: 0},
		{Index: 1, Axes: []int{10}, Data: make([]float64, 10)},
	}

	if _, err := FirstImage(exts); !errors.Is(err, ErrNoImageData) {
		t.Errorf("Expected ErrNoImageData, got %v", err)
	}
	if _, err := FirstImage(nil); !errors.Is(err, ErrNoImageData) {
		t.Errorf("Expected ErrNoImageData for no extensions, got %v", err)
	}
}

// TestPlaneTakesFirstSlice verifies that higher axes are fixed at index 0
func TestPlaneTakesFirstSlice(t *testing.T) {
	ext := models.Extension{
		Axes: []int{3, 2, 2},
		Data: fitstest.Ramp(3, 4),
	}

	plane, err := Plane(ext)
	if err != nil {
		t.Fatalf("Plane failed: %v", err)
	}
	if plane.Width != 3 || plane.Height != 2 {
		t.Fatalf("Expected 3x2 plane, got %dx%d", plane.Width, plane.Height)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			want := float64(x + 3*y)
			if got := plane.At(x, y); got != want {
				t.Errorf("Expected %v at (%d,%d), got %v", want, x, y, got)
			}
		}
	}
	if n := len(plane.Samples()); n != 6 {
		t.Errorf("Expected 6 samples in plane, got %d", n)
	}
}

// TestPlaneRejectsVector verifies that rank 1 data cannot be reduced to a plane
func TestPlaneRejectsVector(t *testing.T) {
	_, err := Plane(models.Extension{Axes: []int{5}, Data: make([]float64, 5)})
	if !errors.Is(err, ErrNoImageData) {
		t.Errorf("Expected ErrNoImageData, got %v", err)
	}
}

// TestDecodeSamplesScaling verifies BSCALE, BZERO and BLANK handling
func TestDecodeSamplesScaling(t *testing.T) {
	stored := []int16{0, 1, -1, 100}
	raw := make([]byte, 2*len(stored))
	for i, v := range stored {
		binary.BigEndian.PutUint16(raw[2*i:], uint16(v))
	}
	hdr := models.Header{"BSCALE": 2.0, "BZERO": 10.0, "BLANK": -1}

	got, err := decodeSamples(raw, 16, len(stored), hdr)
	if err != nil {
		t.Fatalf("decodeSamples failed: %v", err)
	}

	want := []float64{10, 12, math.NaN(), 210}
	for i := range want {
		if math.IsNaN(want[i]) {
			if !math.IsNaN(got[i]) {
				t.Errorf("Expected NaN at %d, got %v", i, got[i])
			}
			continue
		}
		if got[i] != want[i] {
			t.Errorf("Expected %v at %d, got %v", want[i], i, got[i])
		}
	}
}

// TestDecodeSamplesFloat verifies IEEE samples pass through unscaled
func TestDecodeSamplesFloat(t *testing.T) {
	values := []float32{1.5, -2.25, float32(math.NaN())}
	raw := make([]byte, 4*len(values))
	for i, v := range values {
		binary.BigEndian.PutUint32(raw[4*i:], math.Float32bits(v))
	}

	got, err := decodeSamples(raw, -32, len(values), models.Header{})
	if err != nil {
		t.Fatalf("decodeSamples failed: %v", err)
	}
	if got[0] != 1.5 || got[1] != -2.25 {
		t.Errorf("Expected [1.5 -2.25], got %v", got[:2])
	}
	if !math.IsNaN(got[2]) {
		t.Errorf("Expected NaN, got %v", got[2])
	}
}

// TestDecodeSamplesShort verifies truncated data is reported
func TestDecodeSamplesShort(t *testing.T) {
	if _, err := decodeSamples(make([]byte, 6), -64, 1, models.Header{}); err == nil {
		t.Error("Expected error for truncated data, got nil")
	}
	if _, err := decodeSamples(make([]byte, 8), 0, 1, models.Header{}); err == nil {
		t.Error("Expected error for BITPIX 0, got nil")
	}
}

// TestOpenRank4Image reads a file written with a degenerate spectral and
// Stokes axis and checks the selected plane
func TestOpenRank4Image(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.fits")
	fitstest.Write(t, path, fitstest.Image{
		Bitpix: -64,
		Axes:   []int{4, 3, 1, 1},
		Data:   fitstest.Ramp(4, 3),
		Cards:  fitstest.TANCards(150, 2.2, 2, 2, 1.0/3600),
	})

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	if f.Path() != path {
		t.Errorf("Expected path %s, got %s", path, f.Path())
	}

	exts, err := f.Extensions()
	if err != nil {
		t.Fatalf("Extensions failed: %v", err)
	}
	if len(exts) != 1 {
		t.Fatalf("Expected 1 extension, got %d", len(exts))
	}

	ext, err := FirstImage(exts)
	if err != nil {
		t.Fatalf("FirstImage failed: %v", err)
	}
	if ext.Rank() != 4 {
		t.Errorf("Expected rank 4, got %d", ext.Rank())
	}
	if ctype, _ := ext.Header.String("CTYPE1"); ctype != "RA---TAN" {
		t.Errorf("Expected CTYPE1 RA---TAN, got %q", ctype)
	}

	plane, err := Plane(ext)
	if err != nil {
		t.Fatalf("Plane failed: %v", err)
	}
	if plane.Width != 4 || plane.Height != 3 {
		t.Fatalf("Expected 4x3 plane, got %dx%d", plane.Width, plane.Height)
	}
	if got := plane.At(3, 2); got != 11 {
		t.Errorf("Expected 11 at (3,2), got %v", got)
	}
}

// TestOpenIntegerImage verifies integer data is scaled on read
func TestOpenIntegerImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "int.fits")
	fitstest.Write(t, path, fitstest.Image{
		Bitpix: 16,
		Axes:   []int{2, 2},
		Data:   []int16{0, 1, 2, 3},
		Cards: []fitsio.Card{
			{Name: "BSCALE", Value: 0.5},
			{Name: "BZERO", Value: 100.0},
		},
	})

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	exts, err := f.Extensions()
	if err != nil {
		t.Fatalf("Extensions failed: %v", err)
	}
	ext, err := FirstImage(exts)
	if err != nil {
		t.Fatalf("FirstImage failed: %v", err)
	}

	want := []float64{100, 100.5, 101, 101.5}
	for i, v := range want {
		if ext.Data[i] != v {
			t.Errorf("Expected %v at %d, got %v", v, i, ext.Data[i])
		}
	}
}

// TestOpenVectorHasNoImage verifies a 1D primary array yields ErrNoImageData
func TestOpenVectorHasNoImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vector.fits")
	fitstest.Write(t, path, fitstest.Image{
		Bitpix: -64,
		Axes:   []int{8},
		Data:   fitstest.Ramp(8, 1),
	})

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	exts, err := f.Extensions()
	if err != nil {
		t.Fatalf("Extensions failed: %v", err)
	}
	if _, err := FirstImage(exts); !errors.Is(err, ErrNoImageData) {
		t.Errorf("Expected ErrNoImageData, got %v", err)
	}
}

// TestOpenImageExtension verifies the first 2D extension after a 1D primary
// is selected and keeps its own header
func TestOpenImageExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mef.fits")
	fitstest.WriteAll(t, path,
		fitstest.Image{Bitpix: -64, Axes: []int{5}, Data: fitstest.Ramp(5, 1)},
		fitstest.Image{
			Name:   "SCI",
			Bitpix: -64,
			Axes:   []int{4, 3},
			Data:   fitstest.Ramp(4, 3),
			Cards:  fitstest.TANCards(150, 2.2, 2, 2, 1.0/3600),
		},
		fitstest.Image{Name: "ERR", Bitpix: -32, Axes: []int{2, 2}, Data: []float32{7, 7, 7, 7}},
	)

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	exts, err := f.Extensions()
	if err != nil {
		t.Fatalf("Extensions failed: %v", err)
	}
	if len(exts) != 3 {
		t.Fatalf("Expected 3 extensions, got %d", len(exts))
	}
	if exts[0].Name != "PRIMARY" {
		t.Errorf("Expected primary name PRIMARY, got %q", exts[0].Name)
	}

	ext, err := FirstImage(exts)
	if err != nil {
		t.Fatalf("FirstImage failed: %v", err)
	}
	if ext.Index != 1 || ext.Name != "SCI" {
		t.Errorf("Expected extension 1 named SCI, got %d %q", ext.Index, ext.Name)
	}
	if ctype, _ := ext.Header.String("CTYPE1"); ctype != "RA---TAN" {
		t.Errorf("Expected CTYPE1 RA---TAN, got %q", ctype)
	}

	plane, err := Plane(ext)
	if err != nil {
		t.Fatalf("Plane failed: %v", err)
	}
	if plane.Width != 4 || plane.Height != 3 {
		t.Fatalf("Expected 4x3 plane, got %dx%d", plane.Width, plane.Height)
	}
	if got := plane.At(3, 2); got != 11 {
		t.Errorf("Expected 11 at (3, 2), got %v", got)
	}
}

// TestOpenMissingFile verifies the not-exist error is preserved
func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.fits"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}

// TestCloseTwice verifies Close is idempotent and Extensions fails afterwards
func TestCloseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plane.fits")
	fitstest.Write(t, path, fitstest.Image{
		Bitpix: -32,
		Axes:   []int{2, 2},
		Data:   []float32{1, 2, 3, 4},
	})

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("First Close failed: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Errorf("Second Close failed: %v", err)
	}
	if _, err := f.Extensions(); err == nil {
		t.Error("Expected error from Extensions after Close, got nil")
	}
}
