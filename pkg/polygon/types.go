// Package polygon defines the polygon data model and normalizes the accepted
// input shapes into ring lists.
package polygon

// Point is a vertex position. Z is zero for 2D input.
type Point struct {
	X, Y, Z float64
}

// Ring is a closed loop of points. The first point is not repeated at the end.
type Ring []Point

// ComplexPolygon is an exterior ring followed by zero or more hole rings.
type ComplexPolygon []Ring

// Exterior returns the boundary ring.
func (p ComplexPolygon) Exterior() Ring {
	if len(p) == 0 {
		return nil
	}
	return p[0]
}

// Holes returns the hole rings.
func (p ComplexPolygon) Holes() []Ring {
	if len(p) < 2 {
		return nil
	}
	return p[1:]
}

// IsSimple reports whether the polygon has no holes.
func (p ComplexPolygon) IsSimple() bool {
	return len(p) == 1
}

// Input is one polygon in any accepted shape.
// Implementations: SimpleRing, Rings, Flat and ComplexPolygon.
type Input interface {
	normalize() (ComplexPolygon, error)
}

// SimpleRing is a single ring given as nested coordinate tuples,
// each tuple holding 2 or 3 ordinates.
type SimpleRing [][]float64

// Rings is a ring-of-rings given as nested coordinate tuples.
// Rings[0] is the exterior, the rest are holes.
type Rings [][][]float64

// Flat is a polygon given as one flat coordinate array.
// Stride is the number of ordinates per vertex (2 or 3; 0 means 2).
// HoleIndices holds the vertex index at which each hole ring starts.
type Flat struct {
	Coords      []float64
	Stride      int
	HoleIndices []int
}
