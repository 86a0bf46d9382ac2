// Package stretch maps raw data values into the [0, 1] display range.
// A Normalization is an interval [VMin, VMax] followed by one of the
// linear, logarithmic or inverse hyperbolic sine curves.
package stretch

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Kind selects the normalization curve
type Kind int

const (
	Linear Kind = iota
	Log
	Asinh
)

const (
	// logA is the curvature of the logarithmic stretch
	logA = 1000.0

	// asinhA is the transition point of the asinh stretch
	asinhA = 0.1
)

// DefaultLevelCount is the number of contour levels generated when none are given
const DefaultLevelCount = 10

func (k Kind) String() string {
	switch k {
	case Log:
		return "log"
	case Asinh:
		return "asinh"
	default:
		return "linear"
	}
}

// ParseKind resolves a stretch name. Unknown names resolve to Linear
// with ok set to false.
func ParseKind(name string) (kind Kind, ok bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linear":
		return Linear, true
	case "log":
		return Log, true
	case "asinh":
		return Asinh, true
	}
	return Linear, false
}

// Interval is a closed data range
type Interval struct {
	VMin float64
	VMax float64
}

// ResolveInterval uses the explicit bounds when given and the finite
// minimum and maximum of data otherwise. No ordering is enforced.
func ResolveInterval(data []float64, vmin, vmax *float64) Interval {
	var iv Interval
	if vmin != nil && vmax != nil {
		return Interval{VMin: *vmin, VMax: *vmax}
	}

	finite := Finite(data)
	lo, hi := math.NaN(), math.NaN()
	if len(finite) > 0 {
		lo, hi = floats.Min(finite), floats.Max(finite)
	}

	iv.VMin, iv.VMax = lo, hi
	if vmin != nil {
		iv.VMin = *vmin
	}
	if vmax != nil {
		iv.VMax = *vmax
	}
	return iv
}

// Finite returns the values of data that are neither NaN nor infinite
func Finite(data []float64) []float64 {
	out := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// DefaultLevels returns n evenly spaced values from VMin to VMax inclusive
func DefaultLevels(iv Interval, n int) []float64 {
	if n < 2 {
		return []float64{iv.VMin}
	}
	return floats.Span(make([]float64, n), iv.VMin, iv.VMax)
}

// Normalization maps data values to [0, 1]
type Normalization struct {
	Interval
	Kind Kind
}

// New returns a normalization of the given kind over iv
func New(iv Interval, kind Kind) Normalization {
	return Normalization{Interval: iv, Kind: kind}
}

// Apply maps v into [0, 1]. Values outside the interval are clipped;
// NaN stays NaN. A degenerate interval maps everything to 0.
func (n Normalization) Apply(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	x := n.scale(v)
	switch n.Kind {
	case Log:
		return math.Log(logA*x+1) / math.Log(logA+1)
	case Asinh:
		return math.Asinh(x/asinhA) / math.Asinh(1/asinhA)
	default:
		return x
	}
}

// Invert returns the data value whose normalized value is y
func (n Normalization) Invert(y float64) float64 {
	var x float64
	switch n.Kind {
	case Log:
		x = (math.Exp(y*math.Log(logA+1)) - 1) / logA
	case Asinh:
		x = asinhA * math.Sinh(y*math.Asinh(1/asinhA))
	default:
		x = y
	}
	return n.VMin + x*(n.VMax-n.VMin)
}

func (n Normalization) scale(v float64) float64 {
	d := n.VMax - n.VMin
	if d == 0 || math.IsNaN(d) {
		return 0
	}
	x := (v - n.VMin) / d
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	}
	return x
}
