// Package colormap resolves colormap and color names for the plot layers.
package colormap

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strings"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// ErrUnknownColormap is returned for colormap names that are not registered
var ErrUnknownColormap = errors.New("unknown colormap")

// perceptual maps sampled at nine evenly spaced points
var controls = map[string][]string{
	"viridis": {"#440154", "#472c7a", "#3b518b", "#2c718e", "#21908d", "#27ad81", "#5cc863", "#aadc32", "#fde725"},
	"magma":   {"#000004", "#1c1044", "#4f127b", "#812581", "#b5367a", "#e55064", "#fb8761", "#fec287", "#fcfdbf"},
	"inferno": {"#000004", "#1f0c48", "#550f6d", "#88226a", "#ba3655", "#e35933", "#f98c0a", "#f9c932", "#fcffa4"},
	"plasma":  {"#0d0887", "#4c02a1", "#7e03a8", "#a92395", "#cc4778", "#e56b5d", "#f89441", "#fdc328", "#f0f921"},
	"gray":    {"#000000", "#ffffff"},
	"grey":    {"#000000", "#ffffff"},
}

var builtin = map[string]func() palette.ColorMap{
	"coolwarm":           func() palette.ColorMap { return moreland.SmoothBlueRed() },
	"kindlmann":          moreland.Kindlmann,
	"extended-kindlmann": moreland.ExtendedKindlmann,
	"blackbody":          moreland.BlackBody,
	"extended-blackbody": moreland.ExtendedBlackBody,
}

// Names lists every colormap name accepted by Lookup, without the _r variants
func Names() []string {
	names := make([]string, 0, len(controls)+len(builtin))
	for name := range controls {
		names = append(names, name)
	}
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the named colormap spanning [0, 1].
// A "_r" suffix reverses the map.
func Lookup(name string) (palette.ColorMap, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	reversed := strings.HasSuffix(key, "_r")
	key = strings.TrimSuffix(key, "_r")

	var cm palette.ColorMap
	if hexes, ok := controls[key]; ok {
		cols := make([]color.Color, len(hexes))
		for i, h := range hexes {
			c, err := parseHex(h)
			if err != nil {
				return nil, err
			}
			cols[i] = c
		}
		l, err := moreland.NewLuminance(cols)
		if err != nil {
			return nil, fmt.Errorf("error building colormap %s: %w", key, err)
		}
		cm = l
	} else if fn, ok := builtin[key]; ok {
		cm = fn()
	} else {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownColormap, name, strings.Join(Names(), ", "))
	}

	cm.SetMax(1)
	cm.SetMin(0)
	if reversed {
		cm = &reverse{ColorMap: cm}
	}
	return cm, nil
}

// reverse flips a colormap end for end
type reverse struct {
	palette.ColorMap
}

func (r *reverse) At(v float64) (color.Color, error) {
	return r.ColorMap.At(r.Max() + r.Min() - v)
}

func (r *reverse) Palette(n int) palette.Palette {
	fwd := r.ColorMap.Palette(n).Colors()
	cols := make([]color.Color, len(fwd))
	for i, c := range fwd {
		cols[len(fwd)-1-i] = c
	}
	return colors(cols)
}

type colors []color.Color

func (c colors) Colors() []color.Color { return c }
