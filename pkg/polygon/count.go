package polygon

// VertexCount returns the number of vertices across all rings of p.
func VertexCount(p ComplexPolygon) int {
	n := 0
	for _, ring := range p {
		n += len(ring)
	}
	return n
}

// TotalVertexCount returns the number of vertices across the whole set.
func TotalVertexCount(set []ComplexPolygon) int {
	n := 0
	for _, p := range set {
		n += VertexCount(p)
	}
	return n
}

// Offsets returns the prefix sums of vertex counts: offsets[i] is the first
// global vertex slot of polygon i and offsets[len(set)] is the total.
func Offsets(set []ComplexPolygon) []int {
	offsets := make([]int, len(set)+1)
	for i, p := range set {
		offsets[i+1] = offsets[i] + VertexCount(p)
	}
	return offsets
}

// HoleIndices returns the vertex index at which each hole ring of p starts,
// counted from the start of p.
func HoleIndices(p ComplexPolygon) []int {
	if len(p) < 2 {
		return nil
	}
	holes := make([]int, 0, len(p)-1)
	n := 0
	for _, ring := range p[:len(p)-1] {
		n += len(ring)
		holes = append(holes, n)
	}
	return holes
}

// Flatten returns the coordinates of p as one array with 3 ordinates per
// vertex, ring after ring.
func Flatten(p ComplexPolygon) []float64 {
	out := make([]float64, 0, VertexCount(p)*3)
	for _, ring := range p {
		for _, pt := range ring {
			out = append(out, pt.X, pt.Y, pt.Z)
		}
	}
	return out
}
