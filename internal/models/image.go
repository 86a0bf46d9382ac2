package models

import (
	"gonum.org/v1/gonum/mat"
)

// Header holds the key/value cards of a single extension
type Header map[string]interface{}

// Float returns the numeric value of a card, converting integer cards
func (h Header) Float(key string) (float64, bool) {
	switch v := h[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	}
	return 0, false
}

// String returns the value of a string card
func (h Header) String(key string) (string, bool) {
	v, ok := h[key].(string)
	return v, ok
}

// Extension represents one header/data unit of a FITS container
type Extension struct {
	// Index is the position of the extension in the file (0 = primary)
	Index int

	// Name is the EXTNAME card, or "PRIMARY" for the first unit
	Name string

	// Axes holds NAXIS1..NAXISn; Axes[0] is the fastest varying axis
	Axes []int

	// Data holds the decoded samples in file order, or nil when the
	// extension carries no image array
	Data []float64

	// Header is the metadata table, including the world coordinate cards
	Header Header
}

// Rank returns the number of array dimensions
func (e Extension) Rank() int {
	if e.Data == nil {
		return 0
	}
	return len(e.Axes)
}

// Plane is the 2D image selected for display.
// Rows run bottom to top, columns left to right.
type Plane struct {
	// Width is the number of columns (NAXIS1)
	Width int

	// Height is the number of rows (NAXIS2)
	Height int

	// Values is backed by the extension samples, Height rows by Width columns
	Values *mat.Dense
}

// NewPlane wraps row-major samples into a Plane
func NewPlane(width, height int, data []float64) Plane {
	return Plane{
		Width:  width,
		Height: height,
		Values: mat.NewDense(height, width, data),
	}
}

// At returns the sample at column x, row y
func (p Plane) At(x, y int) float64 {
	return p.Values.At(y, x)
}

// Samples returns the underlying row-major sample slice
func (p Plane) Samples() []float64 {
	return p.Values.RawMatrix().Data
}

// Zoom is a view window in pixel coordinates.
// No ordering is implied: XMin > XMax flips the horizontal axis.
type Zoom struct {
	XMin, XMax int
	YMin, YMax int
}
