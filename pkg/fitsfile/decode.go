package fitsfile

import (
	"encoding/binary"
	"fmt"
	"math"

	"fitsview/internal/models"
)

// decodeSamples converts big-endian raw image bytes to physical values.
// physical = BZERO + BSCALE * stored; integer samples equal to BLANK become NaN.
func decodeSamples(raw []byte, bitpix, n int, hdr models.Header) ([]float64, error) {
	size := bitpix / 8
	if size < 0 {
		size = -size
	}
	if size == 0 {
		return nil, fmt.Errorf("invalid BITPIX %d", bitpix)
	}
	if len(raw) < n*size {
		return nil, fmt.Errorf("short image data: have %d bytes, need %d", len(raw), n*size)
	}

	bscale, ok := hdr.Float("BSCALE")
	if !ok {
		bscale = 1
	}
	bzero, _ := hdr.Float("BZERO")
	blank, hasBlank := hdr.Float("BLANK")

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		b := raw[i*size : (i+1)*size]

		var v float64
		integer := true
		switch bitpix {
		case 8:
			v = float64(b[0])
		case 16:
			v = float64(int16(binary.BigEndian.Uint16(b)))
		case 32:
			v = float64(int32(binary.BigEndian.Uint32(b)))
		case 64:
			v = float64(int64(binary.BigEndian.Uint64(b)))
		case -32:
			v = float64(math.Float32frombits(binary.BigEndian.Uint32(b)))
			integer = false
		case -64:
			v = math.Float64frombits(binary.BigEndian.Uint64(b))
			integer = false
		default:
			return nil, fmt.Errorf("unsupported BITPIX %d", bitpix)
		}

		if integer && hasBlank && v == blank {
			out[i] = math.NaN()
			continue
		}
		out[i] = bzero + bscale*v
	}
	return out, nil
}
