package visualization

import (
	"math"

	"gonum.org/v1/plot"

	"fitsview/pkg/stretch"
	"fitsview/pkg/wcs"
)

// celestialTicks labels an image axis with the world coordinate found
// along the frame edge it borders: right ascension along the bottom edge,
// declination along the left edge
type celestialTicks struct {
	wcs  *wcs.WCS
	axis int
	plt  *plot.Plot
}

// Ticks implements plot.Ticker
func (t celestialTicks) Ticks(min, max float64) []plot.Tick {
	var fixed float64
	if t.axis == 0 {
		fixed = frameEdge(&t.plt.Y)
	} else {
		fixed = frameEdge(&t.plt.X)
	}

	wt := t.wcs.EdgeTicks(t.axis, fixed, min, max, maxAxisTicks)
	ticks := make([]plot.Tick, 0, len(wt))
	for _, tk := range wt {
		ticks = append(ticks, plot.Tick{Value: tk.Pixel, Label: tk.Label})
	}
	return ticks
}

// frameEdge is the coordinate of the bottom or left frame edge on a
// (possibly inverted) axis
func frameEdge(a *plot.Axis) float64 {
	if _, inverted := a.Scale.(plot.InvertedScale); inverted {
		return a.Max
	}
	return a.Min
}

// colorbarTicks places data value ticks on the normalized colorbar axis
type colorbarTicks struct {
	norm stretch.Normalization
}

// Ticks implements plot.Ticker
func (t colorbarTicks) Ticks(min, max float64) []plot.Tick {
	lo, hi := t.norm.VMin, t.norm.VMax
	if math.IsNaN(lo) || math.IsNaN(hi) || lo == hi {
		return nil
	}
	if lo > hi {
		lo, hi = hi, lo
	}

	var ticks []plot.Tick
	for _, tk := range (plot.DefaultTicks{}).Ticks(lo, hi) {
		if tk.Value < lo || tk.Value > hi {
			continue
		}
		tk.Value = t.norm.Apply(tk.Value)
		ticks = append(ticks, tk)
	}
	return ticks
}
