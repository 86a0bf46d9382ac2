package wcs

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatHMS formats a longitude in degrees as hours, minutes and seconds.
// step is the tick spacing in seconds of time; it selects the precision.
func FormatHMS(deg, step float64) string {
	hours := math.Mod(deg/15, 24)
	if hours < 0 {
		hours += 24
	}
	return sexagesimal(hours, step, "h", "m", "s", false)
}

// FormatDMS formats a latitude in degrees as degrees, arcminutes and arcseconds.
// step is the tick spacing in arcseconds.
func FormatDMS(deg, step float64) string {
	return sexagesimal(deg, step, "°", "'", "\"", true)
}

func sexagesimal(v, step float64, u1, u2, u3 string, signed bool) string {
	// -0 would otherwise print as "-0"
	if v == 0 {
		v = 0
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	} else if signed {
		sign = "+"
	}

	decimals := 0
	if step > 0 && step < 1 {
		decimals = int(math.Ceil(-math.Log10(step) - 1e-9))
	}

	// round once at the finest displayed unit so carries propagate
	scale := math.Pow(10, float64(decimals))
	total := math.Round(v*3600*scale) / scale
	if !signed && total >= 24*3600 {
		// hours wrap at 24
		total -= 24 * 3600
	}
	if total == 0 {
		total = 0
	}
	whole := math.Floor(total / 3600)
	rest := total - whole*3600
	minutes := math.Floor(rest / 60)
	seconds := rest - minutes*60

	if sign == "-" && total == 0 {
		sign = ""
		if signed {
			sign = "+"
		}
	}

	var b strings.Builder
	b.WriteString(sign)
	switch {
	case step >= 3600:
		fmt.Fprintf(&b, "%02.0f%s", whole, u1)
	case step >= 60:
		fmt.Fprintf(&b, "%02.0f%s%02.0f%s", whole, u1, minutes, u2)
	default:
		sec := strconv.FormatFloat(seconds, 'f', decimals, 64)
		if seconds < 10 {
			sec = "0" + sec
		}
		fmt.Fprintf(&b, "%02.0f%s%02.0f%s%s%s", whole, u1, minutes, u2, sec, u3)
	}
	return b.String()
}
