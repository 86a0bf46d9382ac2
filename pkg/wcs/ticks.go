package wcs

import (
	"math"
)

// Tick is a labeled world coordinate position along a frame edge
type Tick struct {
	// Pixel is the 0-based pixel coordinate along the edge
	Pixel float64

	// Value is the world coordinate in degrees
	Value float64

	// Label is the sexagesimal representation of Value
	Label string
}

// edgeSamples is the number of points evaluated along an edge
const edgeSamples = 256

// nice spacings in seconds of time (longitude) and arcseconds (latitude)
var (
	lonSteps = []float64{
		0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1, 2, 5, 10, 15, 30,
		60, 120, 300, 600, 900, 1800, 3600, 7200, 10800, 21600,
	}
	latSteps = []float64{
		0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1, 2, 5, 10, 15, 30,
		60, 120, 300, 600, 900, 1800, 3600, 7200, 18000, 36000, 72000, 108000, 324000,
	}
)

// EdgeTicks places ticks for world axis along a straight frame edge.
// For axis 0 the edge runs horizontally from x=lo to x=hi at y=fixed and the
// ticks carry the longitude in hours; for axis 1 it runs vertically from
// y=lo to y=hi at x=fixed and the ticks carry the latitude in degrees.
// At most maxTicks spacings fit into the covered range.
func (w *WCS) EdgeTicks(axis int, fixed, lo, hi float64, maxTicks int) []Tick {
	if maxTicks < 1 || lo == hi {
		return nil
	}

	pix := make([]float64, edgeSamples)
	vals := make([]float64, edgeSamples)
	unit := 3600.0
	steps := latSteps
	if axis == 0 {
		unit = 240
		steps = lonSteps
	}

	prev := math.NaN()
	offset := 0.0
	for i := range pix {
		p := lo + (hi-lo)*float64(i)/float64(edgeSamples-1)
		var lon, lat float64
		if axis == 0 {
			lon, lat = w.PixelToWorld(p, fixed)
		} else {
			lon, lat = w.PixelToWorld(fixed, p)
		}
		v := lat
		if axis == 0 {
			v = lon
			if !math.IsNaN(prev) && !math.IsNaN(v) {
				// keep the longitude continuous across 0/360
				switch d := v + offset - prev; {
				case d > 180:
					offset -= 360
				case d < -180:
					offset += 360
				}
			}
			v += offset
			if !math.IsNaN(v) {
				prev = v
			}
		}
		pix[i] = p
		vals[i] = v * unit
	}

	vmin, vmax := math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		vmin = math.Min(vmin, v)
		vmax = math.Max(vmax, v)
	}
	span := vmax - vmin
	if math.IsInf(span, 0) || math.IsNaN(span) || span <= 0 {
		return nil
	}

	step := steps[len(steps)-1]
	for _, s := range steps {
		if span/s <= float64(maxTicks) {
			step = s
			break
		}
	}

	var ticks []Tick
	last := len(vals) - 2
	for i := 0; i <= last; i++ {
		a, b := vals[i], vals[i+1]
		if math.IsNaN(a) || math.IsNaN(b) || a == b {
			continue
		}
		k0 := math.Ceil(math.Min(a, b) / step)
		k1 := math.Floor(math.Max(a, b) / step)
		for k := k0; k <= k1; k++ {
			v := k * step
			t := (v - a) / (b - a)
			if t >= 1 && i != last {
				// counted by the next segment
				continue
			}
			p := pix[i] + t*(pix[i+1]-pix[i])
			if n := len(ticks); n > 0 && ticks[n-1].Value == v/unit && math.Abs(ticks[n-1].Pixel-p) < 1e-6 {
				continue
			}
			deg := v / unit
			tick := Tick{Pixel: p, Value: deg}
			if axis == 0 {
				tick.Label = FormatHMS(deg, step)
			} else {
				tick.Label = FormatDMS(deg, step)
			}
			ticks = append(ticks, tick)
		}
	}
	return ticks
}
