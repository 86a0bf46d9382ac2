// Package fitsfile reads FITS containers and selects the plane to display.
// Container parsing is done by astrogo/fitsio; this package decodes the raw
// image samples into float64 values with BSCALE/BZERO/BLANK applied.
package fitsfile

import (
	"errors"
	"fmt"
	"os"

	"github.com/astrogo/fitsio"

	"fitsview/internal/models"
)

// ErrNoImageData is returned when no extension carries an array of rank 2 or more
var ErrNoImageData = errors.New("no image data found")

// File is an opened FITS container
type File struct {
	path string
	osf  *os.File
	fits *fitsio.File
}

// Open opens the FITS file at path for reading
func Open(path string) (*File, error) {
	osf, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening FITS file: %w", err)
	}

	f, err := fitsio.Open(osf)
	if err != nil {
		osf.Close()
		return nil, fmt.Errorf("error reading FITS file %s: %w", path, err)
	}

	return &File{path: path, osf: osf, fits: f}, nil
}

// Path returns the path the file was opened from
func (f *File) Path() string {
	return f.path
}

// Close releases the container and the underlying file handle.
// It is safe to call more than once.
func (f *File) Close() error {
	if f.fits == nil {
		return nil
	}
	err := f.fits.Close()
	if cerr := f.osf.Close(); err == nil {
		err = cerr
	}
	f.fits = nil
	return err
}

// Extensions decodes every header/data unit in file order.
// Table units are returned with their header only.
func (f *File) Extensions() ([]models.Extension, error) {
	if f.fits == nil {
		return nil, fmt.Errorf("FITS file %s is closed", f.path)
	}

	hdus := f.fits.HDUs()
	exts := make([]models.Extension, 0, len(hdus))
	for i, hdu := range hdus {
		ext, err := decodeHDU(i, hdu)
		if err != nil {
			return nil, fmt.Errorf("error decoding HDU %d of %s: %w", i, f.path, err)
		}
		exts = append(exts, ext)
	}
	return exts, nil
}

func decodeHDU(index int, hdu fitsio.HDU) (models.Extension, error) {
	hdr := hdu.Header()

	ext := models.Extension{
		Index:  index,
		Name:   hdu.Name(),
		Axes:   append([]int(nil), hdr.Axes()...),
		Header: make(models.Header, len(hdr.Keys())),
	}
	if index == 0 && ext.Name == "" {
		ext.Name = "PRIMARY"
	}
	for _, key := range hdr.Keys() {
		if card := hdr.Get(key); card != nil {
			ext.Header[key] = card.Value
		}
	}

	if hdu.Type() != fitsio.IMAGE_HDU {
		return ext, nil
	}
	img, ok := hdu.(fitsio.Image)
	if !ok {
		return ext, nil
	}

	n := sampleCount(ext.Axes)
	if n == 0 {
		return ext, nil
	}

	data, err := decodeSamples(img.Raw(), hdr.Bitpix(), n, ext.Header)
	if err != nil {
		return ext, err
	}
	ext.Data = data
	return ext, nil
}

func sampleCount(axes []int) int {
	if len(axes) == 0 {
		return 0
	}
	n := 1
	for _, dim := range axes {
		n *= dim
	}
	return n
}

// FirstImage returns the first extension whose array has two or more dimensions
func FirstImage(exts []models.Extension) (models.Extension, error) {
	for _, ext := range exts {
		if ext.Rank() >= 2 && len(ext.Data) > 0 {
			return ext, nil
		}
	}
	return models.Extension{}, ErrNoImageData
}

// Plane reduces an extension to its first 2D slice.
// Every axis beyond NAXIS2 is fixed at index 0, which in FITS order is the
// leading NAXIS1*NAXIS2 block of samples.
func Plane(ext models.Extension) (models.Plane, error) {
	if ext.Rank() < 2 {
		return models.Plane{}, fmt.Errorf("extension %d has rank %d: %w", ext.Index, ext.Rank(), ErrNoImageData)
	}

	width, height := ext.Axes[0], ext.Axes[1]
	n := width * height
	if n <= 0 || len(ext.Data) < n {
		return models.Plane{}, fmt.Errorf("extension %d has %d samples, need %d", ext.Index, len(ext.Data), n)
	}

	return models.NewPlane(width, height, ext.Data[:n:n]), nil
}
