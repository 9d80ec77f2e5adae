package polygon

import (
	"errors"
	"fmt"
)

// MinRingPoints is the smallest number of points a ring may have.
const MinRingPoints = 3

// Normalize converts one input polygon into a ComplexPolygon.
// A ComplexPolygon input is validated and returned as is, without copying.
func Normalize(in Input) (ComplexPolygon, error) {
	if in == nil {
		return nil, &InvalidGeometryError{Polygon: -1, Reason: "nil polygon"}
	}
	return in.normalize()
}

// NormalizeSet normalizes every polygon of a set in order. The first invalid
// polygon aborts the whole set so offsets stay consistent.
func NormalizeSet(set []Input) ([]ComplexPolygon, error) {
	out := make([]ComplexPolygon, len(set))
	for i, in := range set {
		p, err := Normalize(in)
		if err != nil {
			var geomErr *InvalidGeometryError
			if errors.As(err, &geomErr) {
				geomErr.Polygon = i
				return nil, geomErr
			}
			return nil, fmt.Errorf("polygon %d: %w", i, err)
		}
		out[i] = p
	}
	return out, nil
}

func (p ComplexPolygon) normalize() (ComplexPolygon, error) {
	if len(p) == 0 {
		return nil, &InvalidGeometryError{Polygon: -1, Reason: "no rings"}
	}
	for r, ring := range p {
		if len(ring) < MinRingPoints {
			return nil, ringTooShort(r, len(ring))
		}
	}
	return p, nil
}

func (s SimpleRing) normalize() (ComplexPolygon, error) {
	ring, err := tuplesToRing(0, s)
	if err != nil {
		return nil, err
	}
	return ComplexPolygon{ring}, nil
}

func (rs Rings) normalize() (ComplexPolygon, error) {
	if len(rs) == 0 {
		return nil, &InvalidGeometryError{Polygon: -1, Reason: "no rings"}
	}
	out := make(ComplexPolygon, len(rs))
	for r, tuples := range rs {
		ring, err := tuplesToRing(r, tuples)
		if err != nil {
			return nil, err
		}
		out[r] = ring
	}
	return out, nil
}

func (f Flat) normalize() (ComplexPolygon, error) {
	stride := f.Stride
	if stride == 0 {
		stride = 2
	}
	if stride != 2 && stride != 3 {
		return nil, &InvalidGeometryError{Polygon: -1, Reason: fmt.Sprintf("unsupported stride %d", f.Stride)}
	}
	if len(f.Coords)%stride != 0 {
		return nil, &InvalidGeometryError{Polygon: -1,
			Reason: fmt.Sprintf("%d coordinates is not a multiple of stride %d", len(f.Coords), stride)}
	}
	n := len(f.Coords) / stride

	starts := make([]int, 0, len(f.HoleIndices)+2)
	starts = append(starts, 0)
	for h, idx := range f.HoleIndices {
		if idx <= starts[len(starts)-1] || idx >= n {
			return nil, &InvalidGeometryError{Polygon: -1, Ring: h + 1,
				Reason: fmt.Sprintf("hole index %d out of order or range", idx)}
		}
		starts = append(starts, idx)
	}
	starts = append(starts, n)

	out := make(ComplexPolygon, len(starts)-1)
	for r := range out {
		count := starts[r+1] - starts[r]
		if count < MinRingPoints {
			return nil, ringTooShort(r, count)
		}
		ring := make(Ring, count)
		for i := range ring {
			base := (starts[r] + i) * stride
			ring[i] = Point{X: f.Coords[base], Y: f.Coords[base+1]}
			if stride == 3 {
				ring[i].Z = f.Coords[base+2]
			}
		}
		out[r] = ring
	}
	return out, nil
}

// tuplesToRing converts nested coordinate tuples into a Ring.
func tuplesToRing(r int, tuples [][]float64) (Ring, error) {
	if len(tuples) < MinRingPoints {
		return nil, ringTooShort(r, len(tuples))
	}
	ring := make(Ring, len(tuples))
	for i, t := range tuples {
		switch len(t) {
		case 2:
			ring[i] = Point{X: t[0], Y: t[1]}
		case 3:
			ring[i] = Point{X: t[0], Y: t[1], Z: t[2]}
		default:
			return nil, &InvalidGeometryError{Polygon: -1, Ring: r,
				Reason: fmt.Sprintf("point %d has %d ordinates", i, len(t))}
		}
	}
	return ring, nil
}

func ringTooShort(r, n int) error {
	return &InvalidGeometryError{Polygon: -1, Ring: r,
		Reason: fmt.Sprintf("%d points, need at least %d", n, MinRingPoints)}
}
