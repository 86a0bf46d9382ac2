// Package wcs maps image pixels to celestial coordinates using the FITS
// world coordinate cards of a header, restricted to the first two axes.
//
// Supported projections are the zenithal family TAN, SIN, ARC, ZEA and STG.
// Any other code, or a header without CTYPE cards, falls back to the linear
// intermediate coordinates (which is exact for CAR with CRVAL2 = 0).
package wcs

import (
	"fmt"
	"math"
	"strings"

	"fitsview/internal/models"
)

const (
	deg2rad = math.Pi / 180
	rad2deg = 180 / math.Pi
)

// WCS is a two-axis world coordinate system
type WCS struct {
	// CType holds CTYPE1 and CTYPE2
	CType [2]string

	// CRVal is the world coordinate of the reference pixel, in degrees
	CRVal [2]float64

	// CRPix is the 1-based reference pixel
	CRPix [2]float64

	// CD is the linear transform from pixel offsets to intermediate
	// world coordinates, CD[i][j] = CDi+1_j+1
	CD [2][2]float64

	// LonPole is the native longitude of the celestial pole, in degrees
	LonPole float64

	// Projection is the three letter projection code, or "" for linear
	Projection string
}

var zenithal = map[string]bool{
	"TAN": true,
	"SIN": true,
	"ARC": true,
	"ZEA": true,
	"STG": true,
}

// FromHeader builds a WCS from the cards of hdr
func FromHeader(hdr models.Header) *WCS {
	w := &WCS{}

	for i := 0; i < 2; i++ {
		n := i + 1
		w.CType[i], _ = hdr.String(fmt.Sprintf("CTYPE%d", n))
		w.CType[i] = strings.TrimSpace(w.CType[i])
		w.CRVal[i], _ = hdr.Float(fmt.Sprintf("CRVAL%d", n))
		w.CRPix[i], _ = hdr.Float(fmt.Sprintf("CRPIX%d", n))
	}

	w.CD = linearTransform(hdr)

	if code := projectionCode(w.CType[0]); code != "" && code == projectionCode(w.CType[1]) && zenithal[code] {
		w.Projection = code
	}

	if lp, ok := hdr.Float("LONPOLE"); ok {
		w.LonPole = lp
	} else if w.CRVal[1] >= 90 {
		w.LonPole = 0
	} else {
		w.LonPole = 180
	}

	return w
}

// linearTransform resolves CDi_j, then PCi_j with CDELTi, then CROTA2
func linearTransform(hdr models.Header) [2][2]float64 {
	var cd [2][2]float64

	hasCD := false
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if v, ok := hdr.Float(fmt.Sprintf("CD%d_%d", i+1, j+1)); ok {
				cd[i][j] = v
				hasCD = true
			}
		}
	}
	if hasCD {
		return cd
	}

	cdelt := [2]float64{1, 1}
	for i := 0; i < 2; i++ {
		if v, ok := hdr.Float(fmt.Sprintf("CDELT%d", i+1)); ok && v != 0 {
			cdelt[i] = v
		}
	}

	pc := [2][2]float64{{1, 0}, {0, 1}}
	hasPC := false
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if v, ok := hdr.Float(fmt.Sprintf("PC%d_%d", i+1, j+1)); ok {
				pc[i][j] = v
				hasPC = true
			}
		}
	}

	if !hasPC {
		if rot, ok := hdr.Float("CROTA2"); ok && rot != 0 {
			s, c := math.Sincos(rot * deg2rad)
			return [2][2]float64{
				{cdelt[0] * c, -cdelt[1] * s},
				{cdelt[0] * s, cdelt[1] * c},
			}
		}
	}

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			cd[i][j] = cdelt[i] * pc[i][j]
		}
	}
	return cd
}

func projectionCode(ctype string) string {
	if len(ctype) < 8 {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(ctype[5:8]))
}

// Celestial reports whether the axes are a longitude/latitude pair
func (w *WCS) Celestial() bool {
	return w.Projection != ""
}

// PixelToWorld converts 0-based pixel coordinates to world coordinates in degrees.
// The longitude is normalized to [0, 360) for celestial systems.
func (w *WCS) PixelToWorld(x, y float64) (lon, lat float64) {
	dx := x + 1 - w.CRPix[0]
	dy := y + 1 - w.CRPix[1]

	ix := w.CD[0][0]*dx + w.CD[0][1]*dy
	iy := w.CD[1][0]*dx + w.CD[1][1]*dy

	if w.Projection == "" {
		return w.CRVal[0] + ix, w.CRVal[1] + iy
	}

	phi, theta, ok := w.deproject(ix, iy)
	if !ok {
		return math.NaN(), math.NaN()
	}
	lon, lat = w.nativeToCelestial(phi, theta)
	return lon, lat
}

// deproject maps intermediate coordinates (degrees) to native spherical
// coordinates for the zenithal projections
func (w *WCS) deproject(x, y float64) (phi, theta float64, ok bool) {
	r := math.Hypot(x, y)
	if r == 0 {
		phi = 0
	} else {
		phi = math.Atan2(x, -y) * rad2deg
	}

	switch w.Projection {
	case "TAN":
		theta = math.Atan2(rad2deg, r) * rad2deg
	case "SIN":
		s := r * deg2rad
		if s > 1 {
			return 0, 0, false
		}
		theta = math.Acos(s) * rad2deg
	case "ARC":
		theta = 90 - r
	case "ZEA":
		s := r * deg2rad / 2
		if s > 1 {
			return 0, 0, false
		}
		theta = 90 - 2*math.Asin(s)*rad2deg
	case "STG":
		theta = 90 - 2*math.Atan(r*deg2rad/2)*rad2deg
	default:
		return 0, 0, false
	}
	return phi, theta, true
}

// nativeToCelestial rotates native (phi, theta) to (alpha, delta) for a
// zenithal projection whose reference point is the native pole
func (w *WCS) nativeToCelestial(phi, theta float64) (alpha, delta float64) {
	ap := w.CRVal[0] * deg2rad
	dp := w.CRVal[1] * deg2rad
	pp := w.LonPole * deg2rad
	p := phi * deg2rad
	t := theta * deg2rad

	sinT, cosT := math.Sincos(t)
	sinDp, cosDp := math.Sincos(dp)
	sinDphi, cosDphi := math.Sincos(p - pp)

	sd := sinT*sinDp + cosT*cosDp*cosDphi
	if sd > 1 {
		sd = 1
	} else if sd < -1 {
		sd = -1
	}
	delta = math.Asin(sd) * rad2deg

	alpha = (ap + math.Atan2(-cosT*sinDphi, sinT*cosDp-cosT*sinDp*cosDphi)) * rad2deg
	alpha = math.Mod(alpha, 360)
	if alpha < 0 {
		alpha += 360
	}
	return alpha, delta
}
