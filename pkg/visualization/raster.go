package visualization

import (
	"image"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"fitsview/internal/models"
	"fitsview/pkg/stretch"
)

// maxRasterSide bounds the resampled raster in device pixels
const maxRasterSide = 8192

// rasterLayer draws the plane as an image with the origin at the lower left.
// Pixel centers sit at integer coordinates, so the image spans
// [-0.5, Width-0.5] x [-0.5, Height-0.5].
type rasterLayer struct {
	plane models.Plane

	// colored holds the display color of every sample, row-major
	colored []color.NRGBA

	// dpi is the device resolution the layer is resampled at
	dpi float64
}

func newRasterLayer(plane models.Plane, norm stretch.Normalization, pal palette.Palette) *rasterLayer {
	lut := pal.Colors()
	samples := plane.Samples()

	r := &rasterLayer{
		plane:   plane,
		colored: make([]color.NRGBA, len(samples)),
		dpi:     DisplayDPI,
	}
	for i, v := range samples {
		y := norm.Apply(v)
		if math.IsNaN(y) {
			// transparent, like an unset pixel
			continue
		}
		idx := int(math.Round(y * float64(len(lut)-1)))
		r.colored[i] = color.NRGBAModel.Convert(lut[idx]).(color.NRGBA)
	}
	return r
}

// DataRange implements plot.DataRanger
func (r *rasterLayer) DataRange() (xmin, xmax, ymin, ymax float64) {
	return -0.5, float64(r.plane.Width) - 0.5, -0.5, float64(r.plane.Height) - 0.5
}

// Plot implements plot.Plotter. Only the visible part of the image is
// resampled, nearest neighbour, at the canvas resolution.
func (r *rasterLayer) Plot(c draw.Canvas, p *plot.Plot) {
	xa := math.Max(-0.5, p.X.Min)
	xb := math.Min(float64(r.plane.Width)-0.5, p.X.Max)
	ya := math.Max(-0.5, p.Y.Min)
	yb := math.Min(float64(r.plane.Height)-0.5, p.Y.Max)
	if xa >= xb || ya >= yb {
		return
	}

	trX, trY := p.Transforms(&c)
	cx0, cx1 := trX(xa), trX(xb)
	cy0, cy1 := trY(ya), trY(yb)

	w := devicePixels(absLength(cx1-cx0), r.dpi)
	h := devicePixels(absLength(cy1-cy0), r.dpi)
	if w == 0 || h == 0 {
		return
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for j := 0; j < h; j++ {
		// image row 0 is the top of the canvas rectangle
		fy := (float64(j) + 0.5) / float64(h)
		dy := yb - fy*(yb-ya)
		if cy1 < cy0 {
			dy = ya + fy*(yb-ya)
		}
		row := clamp(int(math.Floor(dy+0.5)), r.plane.Height-1)

		for i := 0; i < w; i++ {
			fx := (float64(i) + 0.5) / float64(w)
			dx := xa + fx*(xb-xa)
			if cx1 < cx0 {
				dx = xb - fx*(xb-xa)
			}
			col := clamp(int(math.Floor(dx+0.5)), r.plane.Width-1)
			img.SetNRGBA(i, j, r.colored[row*r.plane.Width+col])
		}
	}

	rect := vg.Rectangle{
		Min: vg.Point{X: minLength(cx0, cx1), Y: minLength(cy0, cy1)},
		Max: vg.Point{X: maxLength(cx0, cx1), Y: maxLength(cy0, cy1)},
	}
	c.DrawImage(rect, img)
}

func devicePixels(l vg.Length, dpi float64) int {
	n := int(math.Ceil(float64(l) / float64(vg.Inch) * dpi))
	if n > maxRasterSide {
		n = maxRasterSide
	}
	if n < 0 {
		return 0
	}
	return n
}

func clamp(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}

func absLength(l vg.Length) vg.Length {
	if l < 0 {
		return -l
	}
	return l
}

func minLength(a, b vg.Length) vg.Length {
	if a < b {
		return a
	}
	return b
}

func maxLength(a, b vg.Length) vg.Length {
	if a > b {
		return a
	}
	return b
}
