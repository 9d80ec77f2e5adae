package tesselator

import (
	"errors"
	"fmt"
	"math"
)

// ColorAccessor returns the fill color of polygon i as 3 or 4 channels in
// [0, 255]. Missing alpha is opaque.
type ColorAccessor func(i int) []float64

// DefaultColor is opaque black.
var DefaultColor = [4]uint8{0, 0, 0, 255}

// NormalizeColor clamps and rounds channels to bytes. Alpha defaults to 255;
// other missing channels default to 0.
func NormalizeColor(channels []float64) [4]uint8 {
	out := [4]uint8{0, 0, 0, 255}
	for i := 0; i < len(channels) && i < 4; i++ {
		out[i] = clampByte(channels[i])
	}
	return out
}

func clampByte(v float64) uint8 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(math.Round(v))
}

// MaxPolygons is the largest polygon count with distinct picking colors.
// Index MaxPolygons would wrap to the reserved (0,0,0).
const MaxPolygons = 1<<24 - 1

// ErrTooManyPolygons is returned when a set exceeds MaxPolygons.
var ErrTooManyPolygons = errors.New("too many polygons")

// PolygonLimitError reports a set too large for picking colors.
type PolygonLimitError struct {
	Polygons int
}

func (e *PolygonLimitError) Error() string {
	return fmt.Sprintf("too many polygons: %d exceeds picking color limit %d", e.Polygons, MaxPolygons)
}

// Unwrap lets errors.Is match ErrTooManyPolygons.
func (e *PolygonLimitError) Unwrap() error {
	return ErrTooManyPolygons
}

func checkPolygonCount(n int) error {
	if n > MaxPolygons {
		return &PolygonLimitError{Polygons: n}
	}
	return nil
}

// EncodePickingColor returns the picking color of polygon i: i+1 as a
// little-endian base-256 triple. (0,0,0) is never produced for
// 0 <= i < MaxPolygons.
func EncodePickingColor(i int) [3]uint8 {
	v := i + 1
	return [3]uint8{uint8(v), uint8(v >> 8), uint8(v >> 16)}
}

// DecodePickingColor returns the polygon index encoded in a picking color,
// or -1 for the reserved (0,0,0).
func DecodePickingColor(r, g, b uint8) int {
	return int(r) + int(g)<<8 + int(b)<<16 - 1
}

// fillColors broadcasts one color per polygon over its vertex range.
func fillColors(dst []uint8, offsets []int, accessor ColorAccessor) {
	for i := 0; i+1 < len(offsets); i++ {
		c := DefaultColor
		if accessor != nil {
			c = NormalizeColor(accessor(i))
		}
		for v := offsets[i]; v < offsets[i+1]; v++ {
			copy(dst[v*4:v*4+4], c[:])
		}
	}
}

// fillPickingColors broadcasts each polygon's picking color over its vertex range.
func fillPickingColors(dst []uint8, offsets []int) {
	for i := 0; i+1 < len(offsets); i++ {
		c := EncodePickingColor(i)
		for v := offsets[i]; v < offsets[i+1]; v++ {
			copy(dst[v*3:v*3+3], c[:])
		}
	}
}
