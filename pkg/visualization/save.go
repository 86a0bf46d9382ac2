package visualization

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// ErrUnsupportedFormat is returned by Save for unknown file extensions
var ErrUnsupportedFormat = errors.New("unsupported output format")

// tightPad is the margin kept around the content when cropping
const tightPad = 0.1 // inches

// Save writes the figure to path. The format follows the file extension:
// png, jpg, jpeg, tif and tiff are rendered at dpi and cropped to their
// content; svg, pdf and eps are written as vector pages. eps holds line
// art only, so figures with an image layer cannot be saved as eps.
func (f *Figure) Save(path string, dpi int) error {
	ext := strings.ToLower(filepath.Ext(path))

	var write func(io.Writer) error
	switch ext {
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff":
		img := TightCrop(f.Image(dpi), int(tightPad*float64(dpi)))
		write = func(w io.Writer) error { return encodeRaster(w, ext, img) }
	case ".svg", ".pdf", ".eps":
		if ext == ".eps" && f.HasImage() {
			return fmt.Errorf("%w: eps cannot embed the image layer", ErrUnsupportedFormat)
		}
		write = func(w io.Writer) error { return f.writeVector(w, ext, dpi) }
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	if err := write(file); err != nil {
		file.Close()
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return file.Close()
}

func encodeRaster(w io.Writer, ext string, img image.Image) error {
	switch ext {
	case ".png":
		return png.Encode(w, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	default:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
}

func (f *Figure) writeVector(w io.Writer, ext string, dpi int) error {
	var c interface {
		vg.CanvasSizer
		io.WriterTo
	}
	switch ext {
	case ".svg":
		c = vgsvg.New(FigureWidth, FigureHeight)
	case ".pdf":
		c = vgpdf.New(FigureWidth, FigureHeight)
	default:
		c = vgeps.New(FigureWidth, FigureHeight)
	}

	f.setDPI(dpi)
	f.Draw(draw.New(c))
	_, err := c.WriteTo(w)
	return err
}

// TightCrop trims the uniform border of img down to pad pixels.
// The border color is taken from the top left pixel.
func TightCrop(img image.Image, pad int) image.Image {
	b := img.Bounds()
	if b.Empty() {
		return img
	}
	bg := color.NRGBAModel.Convert(img.At(b.Min.X, b.Min.Y))

	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if color.NRGBAModel.Convert(img.At(x, y)) == bg {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < minX {
		return img
	}

	r := image.Rect(minX-pad, minY-pad, maxX+1+pad, maxY+1+pad).Intersect(b)
	type subImager interface {
		SubImage(r image.Rectangle) image.Image
	}
	if s, ok := img.(subImager); ok {
		return s.SubImage(r)
	}
	return img
}
