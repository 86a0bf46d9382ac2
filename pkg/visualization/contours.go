package visualization

import (
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"fitsview/internal/models"
	"fitsview/pkg/contour"
)

var (
	contourLineWidth = vg.Points(1)
	contourLabelSize = vg.Points(8)

	// labelGap is the clearance kept around an inline label
	labelGap = vg.Points(2)
)

// contourLayer draws iso-lines with one inline value label per line
type contourLayer struct {
	plane models.Plane
	paths []contour.Path
	color color.Color
}

// DataRange implements plot.DataRanger
func (l *contourLayer) DataRange() (xmin, xmax, ymin, ymax float64) {
	return -0.5, float64(l.plane.Width) - 0.5, -0.5, float64(l.plane.Height) - 0.5
}

// Plot implements plot.Plotter
func (l *contourLayer) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)

	line := draw.LineStyle{Color: l.color, Width: contourLineWidth}
	label := p.X.Tick.Label
	label.Color = l.color
	label.Font.Size = contourLabelSize
	label.XAlign = text.XCenter
	label.YAlign = text.YCenter

	type placed struct {
		at    vg.Point
		angle float64
		txt   string
	}
	var labels []placed

	for _, path := range l.paths {
		pts := make([]vg.Point, len(path.Points))
		for i, pt := range path.Points {
			pts[i] = vg.Point{X: trX(pt.X), Y: trY(pt.Y)}
		}

		txt := formatLevel(path.Level)
		width := label.Width(txt)
		at, angle, ok := midpoint(pts)
		if !ok || polylineLength(pts) < 3*width || !c.Contains(at) {
			c.StrokeLines(line, c.ClipLinesXY(pts)...)
			continue
		}

		pieces := cutCircle(pts, at, width/2+labelGap)
		c.StrokeLines(line, c.ClipLinesXY(pieces...)...)
		labels = append(labels, placed{at: at, angle: angle, txt: txt})
	}

	for _, lb := range labels {
		sty := label
		sty.Rotation = lb.angle
		c.FillText(sty, lb.at, lb.txt)
	}
}

func formatLevel(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func polylineLength(pts []vg.Point) vg.Length {
	var n vg.Length
	for i := 1; i < len(pts); i++ {
		n += segmentLength(pts[i-1], pts[i])
	}
	return n
}

func segmentLength(a, b vg.Point) vg.Length {
	return vg.Length(math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y)))
}

// midpoint returns the point halfway along pts and the direction of the
// line there, folded into (-pi/2, pi/2] so text is never upside down
func midpoint(pts []vg.Point) (vg.Point, float64, bool) {
	total := polylineLength(pts)
	if total == 0 {
		return vg.Point{}, 0, false
	}
	half := total / 2
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		seg := segmentLength(a, b)
		if seg == 0 {
			continue
		}
		if half <= seg {
			t := float64(half / seg)
			at := vg.Point{
				X: a.X + vg.Length(t)*(b.X-a.X),
				Y: a.Y + vg.Length(t)*(b.Y-a.Y),
			}
			angle := math.Atan2(float64(b.Y-a.Y), float64(b.X-a.X))
			if angle > math.Pi/2 {
				angle -= math.Pi
			} else if angle <= -math.Pi/2 {
				angle += math.Pi
			}
			return at, angle, true
		}
		half -= seg
	}
	return vg.Point{}, 0, false
}

// cutCircle removes the parts of the polyline inside the circle at center
// with radius r, splitting it into the remaining pieces
func cutCircle(pts []vg.Point, center vg.Point, r vg.Length) [][]vg.Point {
	var pieces [][]vg.Point
	var cur []vg.Point

	flush := func() {
		if len(cur) > 1 {
			pieces = append(pieces, cur)
		}
		cur = nil
	}
	at := func(a, b vg.Point, t float64) vg.Point {
		return vg.Point{X: a.X + vg.Length(t)*(b.X-a.X), Y: a.Y + vg.Length(t)*(b.Y-a.Y)}
	}

	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		t0, t1, hit := circleHits(a, b, center, r)
		if !hit {
			if cur == nil {
				cur = append(cur, a)
			}
			cur = append(cur, b)
			continue
		}
		if t0 > 0 {
			if cur == nil {
				cur = append(cur, a)
			}
			cur = append(cur, at(a, b, t0))
		}
		flush()
		if t1 < 1 {
			cur = append(cur, at(a, b, t1), b)
		}
	}
	flush()
	return pieces
}

// circleHits returns the parameter range [t0, t1] of segment a-b inside the circle
func circleHits(a, b, c vg.Point, r vg.Length) (t0, t1 float64, hit bool) {
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	fx, fy := float64(a.X-c.X), float64(a.Y-c.Y)
	rr := float64(r)

	qa := dx*dx + dy*dy
	if qa == 0 {
		return 0, 1, fx*fx+fy*fy < rr*rr
	}
	qb := 2 * (fx*dx + fy*dy)
	qc := fx*fx + fy*fy - rr*rr
	disc := qb*qb - 4*qa*qc
	if disc <= 0 {
		return 0, 0, false
	}
	sq := math.Sqrt(disc)
	t0 = (-qb - sq) / (2 * qa)
	t1 = (-qb + sq) / (2 * qa)
	if t1 <= 0 || t0 >= 1 {
		return 0, 0, false
	}
	return math.Max(t0, 0), math.Min(t1, 1), true
}
