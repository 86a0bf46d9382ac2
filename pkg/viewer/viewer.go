// Package viewer renders the first image plane of a FITS file with
// celestial axes, as a raster, contour lines or both.
package viewer

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"

	"gonum.org/v1/gonum/stat"

	"fitsview/internal/logging"
	"fitsview/internal/models"
	"fitsview/pkg/fitsfile"
	"fitsview/pkg/stretch"
	"fitsview/pkg/visualization"
	"fitsview/pkg/wcs"
)

// NoImageMessage is printed when the file holds no plane to display
const NoImageMessage = "No image data found in the FITS file."

// Displayer shows a rendered figure, blocking until it is dismissed
type Displayer interface {
	Show(img image.Image, title string) error
}

// Options describes one invocation
type Options struct {
	Filename string

	// Zoom is an optional view window in pixel coordinates
	Zoom *models.Zoom

	// Output is the path the figure is saved to; empty skips saving
	Output string

	// Stretch is linear, log or asinh; other values fall back to linear
	Stretch string

	// Title replaces the default "FITS Image: <filename>" when not empty
	Title string

	Colormap string

	// VMin and VMax bound the color scale; nil uses the data range
	VMin *float64
	VMax *float64

	// PlotType is image, contours or image-contours
	PlotType string

	ContourColor string

	// ContourLevels are explicit levels; empty generates ten
	ContourLevels []float64

	// Stdout receives the user facing messages; defaults to os.Stdout
	Stdout io.Writer

	// Log receives diagnostics; defaults to a discarding logger
	Log *slog.Logger

	// Display shows the figure after saving; nil skips the display step
	Display Displayer
}

// Render runs the whole invocation: open the file, select a plane, build
// the normalization, draw, save and display. It returns the figure, or
// nil without error when the file holds no image data.
func Render(opts Options) (fig *visualization.Figure, err error) {
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}
	log := opts.Log
	if log == nil {
		log = logging.Discard()
	}

	f, err := fitsfile.Open(opts.Filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing FITS file: %w", cerr)
		}
	}()

	exts, err := f.Extensions()
	if err != nil {
		return nil, err
	}

	ext, err := fitsfile.FirstImage(exts)
	if errors.Is(err, fitsfile.ErrNoImageData) {
		fmt.Fprintln(out, NoImageMessage)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	plane, err := fitsfile.Plane(ext)
	if err != nil {
		return nil, err
	}
	log.Debug("selected image",
		"hdu", ext.Index,
		"name", ext.Name,
		"axes", ext.Axes,
		"width", plane.Width,
		"height", plane.Height,
	)

	coords := wcs.FromHeader(ext.Header)
	log.Debug("coordinate system",
		"ctype1", coords.CType[0],
		"ctype2", coords.CType[1],
		"projection", coords.Projection,
	)

	interval := stretch.ResolveInterval(plane.Samples(), opts.VMin, opts.VMax)
	kind, ok := stretch.ParseKind(opts.Stretch)
	if !ok {
		log.Warn("unknown stretch, using linear", "stretch", opts.Stretch)
	}
	norm := stretch.New(interval, kind)
	logPlaneStats(log, plane, norm)

	title := opts.Title
	if title == "" {
		title = fmt.Sprintf("FITS Image: %s", opts.Filename)
	}

	fig, err = visualization.NewFigure(plane, coords, norm, visualization.Spec{
		Layers:        visualization.ParseLayers(opts.PlotType),
		Colormap:      opts.Colormap,
		ContourColor:  opts.ContourColor,
		ContourLevels: opts.ContourLevels,
		Zoom:          opts.Zoom,
		Title:         title,
	})
	if err != nil {
		return nil, fmt.Errorf("error building figure: %w", err)
	}
	log.Debug("figure ready", "figure", fig.String())

	if opts.Output != "" {
		if err := fig.Save(opts.Output, visualization.SaveDPI); err != nil {
			return nil, err
		}
		fmt.Fprintf(out, "Image saved to %s\n", opts.Output)
	}

	if opts.Display != nil {
		if err := opts.Display.Show(fig.Image(visualization.DisplayDPI), title); err != nil {
			return nil, fmt.Errorf("error displaying figure: %w", err)
		}
	}

	return fig, nil
}

func logPlaneStats(log *slog.Logger, plane models.Plane, norm stretch.Normalization) {
	finite := stretch.Finite(plane.Samples())
	if len(finite) == 0 {
		log.Warn("plane has no finite samples")
		return
	}
	mean, std := stat.MeanStdDev(finite, nil)
	log.Debug("plane statistics",
		"finite", len(finite),
		"mean", mean,
		"stddev", std,
		"vmin", norm.VMin,
		"vmax", norm.VMax,
		"stretch", norm.Kind.String(),
	)
}
