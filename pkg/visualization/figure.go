package visualization

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"fitsview/internal/models"
	"fitsview/pkg/colormap"
	"fitsview/pkg/contour"
	"fitsview/pkg/stretch"
	"fitsview/pkg/wcs"
)

// Plot type names accepted by ParseLayers
const (
	PlotImage         = "image"
	PlotContours      = "contours"
	PlotImageContours = "image-contours"
)

const (
	// FigureWidth and FigureHeight are the size of the rendered figure
	FigureWidth  = 10 * vg.Inch
	FigureHeight = 8 * vg.Inch

	// SaveDPI is the resolution of saved raster output
	SaveDPI = 300

	// DisplayDPI is the resolution of the on-screen figure
	DisplayDPI = 100

	colorbarWidth = 1.2 * vg.Inch
	colorbarGap   = 0.25 * vg.Inch
	maxAxisTicks  = 6

	RALabel    = "Right Ascension (J2000)"
	DecLabel   = "Declination (J2000)"
	FluxLabel  = "Flux"
	lutEntries = 256
)

// Layers selects which layers are drawn
type Layers struct {
	Image    bool
	Contours bool
}

// ParseLayers maps a plot type name to its layers.
// Unrecognized names select no layer.
func ParseLayers(plotType string) Layers {
	switch plotType {
	case PlotImage:
		return Layers{Image: true}
	case PlotContours:
		return Layers{Contours: true}
	case PlotImageContours:
		return Layers{Image: true, Contours: true}
	}
	return Layers{}
}

// Spec describes what the figure shows
type Spec struct {
	Layers Layers

	// Colormap names the raster palette
	Colormap string

	// ContourColor is the color of the contour lines and labels
	ContourColor string

	// ContourLevels are explicit contour values; empty selects
	// stretch.DefaultLevelCount levels across the interval
	ContourLevels []float64

	// Zoom is an optional view window in pixel coordinates
	Zoom *models.Zoom

	Title string
}

// Figure is a single set of celestial axes with optional raster, contour
// and colorbar layers
type Figure struct {
	plane models.Plane
	wcs   *wcs.WCS
	norm  stretch.Normalization
	spec  Spec

	levels []float64

	main     *plot.Plot
	colorbar *plot.Plot
	raster   *rasterLayer
	contours *contourLayer
}

// NewFigure lays out the plot for plane. Colormap and color names are
// resolved here, so rendering errors surface before anything is drawn.
func NewFigure(plane models.Plane, w *wcs.WCS, norm stretch.Normalization, spec Spec) (*Figure, error) {
	f := &Figure{
		plane: plane,
		wcs:   w,
		norm:  norm,
		spec:  spec,
	}

	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = RALabel
	p.Y.Label.Text = DecLabel
	p.X.Padding = 0
	p.Y.Padding = 0
	f.main = p

	if spec.Layers.Image {
		cm, err := colormap.Lookup(spec.Colormap)
		if err != nil {
			return nil, err
		}
		f.raster = newRasterLayer(plane, norm, cm.Palette(lutEntries))
		p.Add(f.raster)
		f.colorbar = newColorbar(cm, norm)
	}

	if spec.Layers.Contours {
		col, err := colormap.ParseColor(spec.ContourColor)
		if err != nil {
			return nil, err
		}
		f.levels = spec.ContourLevels
		if len(f.levels) == 0 {
			f.levels = stretch.DefaultLevels(norm.Interval, stretch.DefaultLevelCount)
		}
		f.contours = &contourLayer{
			plane: plane,
			paths: contour.ExtractAll(plane.Values, f.levels),
			color: col,
		}
		p.Add(f.contours)
	}

	f.setLimits()
	p.X.Tick.Marker = celestialTicks{wcs: w, axis: 0, plt: p}
	p.Y.Tick.Marker = celestialTicks{wcs: w, axis: 1, plt: p}

	return f, nil
}

// setLimits shows the full image, or the zoom window when one is set
func (f *Figure) setLimits() {
	p := f.main
	p.X.Min, p.X.Max = -0.5, float64(f.plane.Width)-0.5
	p.Y.Min, p.Y.Max = -0.5, float64(f.plane.Height)-0.5

	z := f.spec.Zoom
	if z == nil {
		return
	}
	setAxis(&p.X, float64(z.XMin), float64(z.XMax))
	setAxis(&p.Y, float64(z.YMin), float64(z.YMax))
}

// setAxis applies limits in the given order; lo > hi inverts the axis
func setAxis(a *plot.Axis, lo, hi float64) {
	a.Min, a.Max = math.Min(lo, hi), math.Max(lo, hi)
	if lo > hi {
		a.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	}
}

// HasImage reports whether the raster layer is drawn
func (f *Figure) HasImage() bool { return f.raster != nil }

// HasColorbar reports whether the color scale is attached
func (f *Figure) HasColorbar() bool { return f.colorbar != nil }

// HasContours reports whether the contour layer is drawn
func (f *Figure) HasContours() bool { return f.contours != nil }

// Levels returns the contour levels, or nil without a contour layer
func (f *Figure) Levels() []float64 { return f.levels }

// Title returns the figure title
func (f *Figure) Title() string { return f.main.Title.Text }

// Plane returns the image plane the figure was built from
func (f *Figure) Plane() models.Plane { return f.plane }

// Draw renders the figure onto dc
func (f *Figure) Draw(dc draw.Canvas) {
	main := dc
	if f.colorbar != nil {
		main = draw.Crop(dc, 0, -colorbarWidth, 0, 0)
	}
	main = f.equalAspect(main)

	if f.colorbar != nil {
		da := f.main.DataCanvas(main)
		minX := main.Max.X + colorbarGap
		maxX := minX + colorbarWidth - colorbarGap
		cb := draw.Crop(dc, minX-dc.Min.X, maxX-dc.Max.X, da.Min.Y-dc.Min.Y, da.Max.Y-dc.Max.Y)
		f.colorbar.Draw(cb)
	}
	f.main.Draw(main)
}

// equalAspect shrinks c so that one pixel is square in the data area
func (f *Figure) equalAspect(c draw.Canvas) draw.Canvas {
	xr := f.main.X.Max - f.main.X.Min
	yr := f.main.Y.Max - f.main.Y.Min
	if xr <= 0 || yr <= 0 {
		return c
	}

	da := f.main.DataCanvas(c)
	dw := float64(da.Max.X - da.Min.X)
	dh := float64(da.Max.Y - da.Min.Y)
	if dw <= 0 || dh <= 0 {
		return c
	}

	want := xr / yr
	if dw/dh > want {
		excess := vg.Length(dw-dh*want) / 2
		return draw.Crop(c, excess, -excess, 0, 0)
	}
	excess := vg.Length(dh-dw/want) / 2
	return draw.Crop(c, 0, 0, excess, -excess)
}

// Image renders the figure to a raster at dpi
func (f *Figure) Image(dpi int) image.Image {
	c := vgimg.NewWith(
		vgimg.UseWH(FigureWidth, FigureHeight),
		vgimg.UseDPI(dpi),
		vgimg.UseBackgroundColor(color.White),
	)
	f.setDPI(dpi)
	f.Draw(draw.New(c))
	return c.Image()
}

func (f *Figure) setDPI(dpi int) {
	if f.raster != nil {
		f.raster.dpi = float64(dpi)
	}
}

func newColorbar(cm palette.ColorMap, norm stretch.Normalization) *plot.Plot {
	cb := plot.New()
	cb.HideX()
	cb.X.Padding = 0
	cb.Y.Padding = 0
	cb.Y.Label.Text = FluxLabel
	cb.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true, Colors: lutEntries})
	cb.Y.Min, cb.Y.Max = 0, 1
	cb.Y.Tick.Marker = colorbarTicks{norm: norm}
	return cb
}

// String describes the figure layers, used in debug logging
func (f *Figure) String() string {
	return fmt.Sprintf("figure %dx%d image=%t contours=%t levels=%d",
		f.plane.Width, f.plane.Height, f.HasImage(), f.HasContours(), len(f.levels))
}
