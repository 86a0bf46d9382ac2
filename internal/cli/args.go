package cli

import (
	"strconv"
	"strings"
)

// NormalizeArgs rewrites the space separated multi-value flags into the
// comma form pflag understands:
//
//	--zoom 10 90 20 80          -> --zoom=10,90,20,80
//	--contour-levels 1 -2.5 3   -> --contour-levels=1,-2.5,3
//
// Values are consumed while they parse as numbers, so negative values and
// a trailing positional filename are handled. An empty --contour-levels is
// dropped.
func NormalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			out = append(out, args[i:]...)
			break
		}

		var limit int
		var isNumber func(string) bool
		switch arg {
		case "--zoom":
			limit, isNumber = 4, isInt
		case "--contour-levels":
			limit, isNumber = -1, isFloat
		default:
			out = append(out, arg)
			continue
		}

		var vals []string
		for i+1 < len(args) && (limit < 0 || len(vals) < limit) && isNumber(args[i+1]) {
			vals = append(vals, args[i+1])
			i++
		}
		if len(vals) == 0 {
			if arg == "--zoom" {
				// let pflag report the missing value
				out = append(out, arg)
			}
			continue
		}
		out = append(out, arg+"="+strings.Join(vals, ","))
	}
	return out
}

// ConfigPath returns the value of the --config flag in args, if any
func ConfigPath(args []string) string {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if v, ok := strings.CutPrefix(arg, "--config="); ok {
			return v
		}
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func isInt(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

func isFloat(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
