package polygon

import (
	"errors"
	"testing"
)

func square(x0, y0, size float64) [][]float64 {
	return [][]float64{
		{x0, y0},
		{x0 + size, y0},
		{x0 + size, y0 + size},
		{x0, y0 + size},
	}
}

func TestNormalize_Shapes(t *testing.T) {
	tests := []struct {
		name      string
		input     Input
		wantRings []int
	}{
		{
			name:      "simple ring",
			input:     SimpleRing{{0, 0}, {1, 0}, {0, 1}},
			wantRings: []int{3},
		},
		{
			name:      "ring of rings",
			input:     Rings{square(0, 0, 10), square(2, 2, 2)},
			wantRings: []int{4, 4},
		},
		{
			name:      "flat stride 2",
			input:     Flat{Coords: []float64{0, 0, 1, 0, 1, 1, 0, 1}},
			wantRings: []int{4},
		},
		{
			name: "flat stride 3 with hole",
			input: Flat{
				Coords: []float64{
					0, 0, 0, 10, 0, 0, 10, 10, 0, 0, 10, 0,
					2, 2, 0, 4, 2, 0, 4, 4, 0,
				},
				Stride:      3,
				HoleIndices: []int{4},
			},
			wantRings: []int{4, 3},
		},
		{
			name:      "complex polygon",
			input:     ComplexPolygon{{{X: 0}, {X: 1}, {Y: 1}}},
			wantRings: []int{3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Normalize(tt.input)
			if err != nil {
				t.Fatalf("Normalize failed: %v", err)
			}
			if len(p) != len(tt.wantRings) {
				t.Fatalf("expected %d rings, got %d", len(tt.wantRings), len(p))
			}
			for i, want := range tt.wantRings {
				if len(p[i]) != want {
					t.Errorf("ring %d: expected %d points, got %d", i, want, len(p[i]))
				}
			}
		})
	}
}

func TestNormalize_ZDefaultsToZero(t *testing.T) {
	p, err := Normalize(SimpleRing{{0, 0}, {1, 0, 5}, {0, 1}})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if p[0][0].Z != 0 {
		t.Errorf("expected z 0 for 2D point, got %v", p[0][0].Z)
	}
	if p[0][1].Z != 5 {
		t.Errorf("expected z 5, got %v", p[0][1].Z)
	}
}

func TestNormalize_ComplexPolygonNotCopied(t *testing.T) {
	in := ComplexPolygon{{{X: 0}, {X: 1}, {Y: 1}}}
	p, err := Normalize(in)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if &p[0][0] != &in[0][0] {
		t.Error("expected normalized polygon to share point storage with input")
	}
}

func TestNormalize_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input Input
	}{
		{"nil", nil},
		{"two points", SimpleRing{{0, 0}, {1, 1}}},
		{"short hole", Rings{square(0, 0, 10), {{1, 1}, {2, 2}}}},
		{"no rings", Rings{}},
		{"bad tuple", SimpleRing{{0, 0}, {1}, {0, 1}}},
		{"bad stride", Flat{Coords: []float64{0, 0, 0, 0}, Stride: 4}},
		{"ragged flat", Flat{Coords: []float64{0, 0, 1, 0, 1}}},
		{"hole index out of range", Flat{Coords: []float64{0, 0, 1, 0, 1, 1}, HoleIndices: []int{5}}},
		{"short flat hole", Flat{Coords: []float64{0, 0, 1, 0, 1, 1, 5, 5, 6, 6}, HoleIndices: []int{3}}},
		{"empty complex polygon", ComplexPolygon{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.input)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("expected ErrInvalidGeometry, got %v", err)
			}
		})
	}
}

func TestNormalizeSet_ReportsPolygonIndex(t *testing.T) {
	set := []Input{
		SimpleRing{{0, 0}, {1, 0}, {0, 1}},
		SimpleRing{{0, 0}, {1, 0}},
	}
	_, err := NormalizeSet(set)
	var geomErr *InvalidGeometryError
	if !errors.As(err, &geomErr) {
		t.Fatalf("expected InvalidGeometryError, got %v", err)
	}
	if geomErr.Polygon != 1 {
		t.Errorf("expected polygon 1, got %d", geomErr.Polygon)
	}
}

func TestOffsets(t *testing.T) {
	set, err := NormalizeSet([]Input{
		SimpleRing{{0, 0}, {1, 0}, {0, 1}},
		Rings{square(0, 0, 10), square(2, 2, 2)},
		SimpleRing(square(20, 20, 1)),
	})
	if err != nil {
		t.Fatalf("NormalizeSet failed: %v", err)
	}

	offsets := Offsets(set)
	want := []int{0, 3, 11, 15}
	if len(offsets) != len(want) {
		t.Fatalf("expected %d offsets, got %d", len(want), len(offsets))
	}
	for i := range want {
		if offsets[i] != want[i] {
			t.Errorf("offsets[%d] = %d, want %d", i, offsets[i], want[i])
		}
	}

	if total := TotalVertexCount(set); total != offsets[len(set)] {
		t.Errorf("TotalVertexCount = %d, want %d", total, offsets[len(set)])
	}
	for i, p := range set {
		if offsets[i+1]-offsets[i] != VertexCount(p) {
			t.Errorf("polygon %d: offset delta %d != vertex count %d", i, offsets[i+1]-offsets[i], VertexCount(p))
		}
	}
}

func TestHoleIndicesAndFlatten(t *testing.T) {
	p, err := Normalize(Rings{square(0, 0, 10), square(2, 2, 2), {{6, 6}, {8, 6}, {7, 8}}})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	holes := HoleIndices(p)
	if len(holes) != 2 || holes[0] != 4 || holes[1] != 8 {
		t.Errorf("HoleIndices = %v, want [4 8]", holes)
	}

	flat := Flatten(p)
	if len(flat) != 11*3 {
		t.Fatalf("expected %d ordinates, got %d", 11*3, len(flat))
	}
	if flat[12] != 2 || flat[13] != 2 || flat[14] != 0 {
		t.Errorf("first hole vertex = %v, want [2 2 0]", flat[12:15])
	}

	if HoleIndices(ComplexPolygon{p[0]}) != nil {
		t.Error("expected no hole indices for simple polygon")
	}
}
