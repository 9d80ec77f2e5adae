// Package tesselator turns polygon sets into flat GPU buffers: triangle
// indices, positions, next positions for extruded side walls, fp64 low parts,
// fill colors and picking colors.
//
// A Tesselator is built once per polygon set. Normalization, offsets,
// triangulation and picking colors are computed by New; UpdatePositions and
// Colors overwrite the cached attribute buffers in place and may be called
// any number of times. Returned slices are owned by the Tesselator and must
// not be modified.
//
// A Tesselator is not safe for concurrent use.
package tesselator

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/polytess/pkg/polygon"
)

// Options configures a Tesselator.
type Options struct {
	// IndexType is the width of the index buffers. The zero value is Uint32.
	IndexType IndexType
	// Logger receives construction diagnostics. Nil disables logging.
	Logger *zap.Logger
}

// UpdateOptions configures a position pass.
type UpdateOptions struct {
	Extruded bool
	Height   HeightAccessor
	FP64     bool
}

// Tesselator owns the buffers derived from one polygon set.
type Tesselator struct {
	log *zap.Logger

	polygons       []polygon.ComplexPolygon
	offsets        []int
	triangleCounts []int
	totalTriangles int

	indices IndexBuffer
	edges   IndexBuffer

	pos           positionBuffers
	colors        []uint8
	pickingColors []uint8
}

// New normalizes set, triangulates every polygon and assembles the index
// buffers. It fails with an error wrapping polygon.ErrInvalidGeometry for
// malformed input, ErrIndexOverflow when the vertex count does not fit
// opts.IndexType and ErrTooManyPolygons when the set has more polygons than
// picking colors can tell apart.
func New(set []polygon.Input, opts Options) (*Tesselator, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if err := checkPolygonCount(len(set)); err != nil {
		return nil, err
	}

	polys, err := polygon.NormalizeSet(set)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	t := &Tesselator{
		log:      log,
		polygons: polys,
		offsets:  polygon.Offsets(polys),
	}
	total := t.VertexCount()
	if err := checkCapacity(opts.IndexType, total); err != nil {
		return nil, err
	}

	t.buildIndices(opts.IndexType)
	t.buildEdges(opts.IndexType)

	t.pickingColors = make([]uint8, total*3)
	fillPickingColors(t.pickingColors, t.offsets)

	log.Debug("tesselated polygon set",
		zap.Int("polygons", len(polys)),
		zap.Int("vertices", total),
		zap.Int("triangles", t.totalTriangles),
		zap.Stringer("indexType", opts.IndexType),
	)
	return t, nil
}

// buildIndices triangulates each polygon and shifts its local indices by
// the polygon's offset into the global index buffer.
func (t *Tesselator) buildIndices(it IndexType) {
	local := make([][]int, len(t.polygons))
	t.triangleCounts = make([]int, len(t.polygons))
	for i, p := range t.polygons {
		tris, err := Triangulate(p)
		local[i] = tris
		t.triangleCounts[i] = len(tris) / 3
		t.totalTriangles += t.triangleCounts[i]
		if t.triangleCounts[i] == 0 {
			t.log.Warn("degenerate polygon produced no triangles",
				zap.Int("polygon", i),
				zap.Int("vertices", polygon.VertexCount(p)),
				zap.Int("rings", len(p)),
				zap.Error(err),
			)
		}
	}

	t.indices = newIndexBuffer(it, t.totalTriangles*3)
	n := 0
	for i, tris := range local {
		for _, idx := range tris {
			t.indices.set(n, idx+t.offsets[i])
			n++
		}
	}
}

// buildEdges emits one (vertex, next vertex) pair per ring vertex.
func (t *Tesselator) buildEdges(it IndexType) {
	t.edges = newIndexBuffer(it, t.VertexCount()*2)
	n := 0
	for i, p := range t.polygons {
		start := t.offsets[i]
		for _, ring := range p {
			for k := range ring {
				t.edges.set(n, start+k)
				t.edges.set(n+1, start+(k+1)%len(ring))
				n += 2
			}
			start += len(ring)
		}
	}
}

// UpdatePositions recomputes positions, next positions and, when opts.FP64
// is set, their low parts. It never re-triangulates and never reallocates
// buffers that already exist.
func (t *Tesselator) UpdatePositions(opts UpdateOptions) {
	t.ensurePositions()
	if opts.FP64 {
		t.ensureLowParts()
	} else {
		clear(t.pos.positionsLow)
		clear(t.pos.nextPositionsLow)
	}
	fillPositions(&t.pos, t.polygons, t.offsets, opts.Extruded, opts.Height, opts.FP64)
}

// Colors recomputes the fill color buffer. A nil accessor paints every
// polygon DefaultColor.
func (t *Tesselator) Colors(accessor ColorAccessor) {
	t.ensureColors()
	fillColors(t.colors, t.offsets, accessor)
}

func (t *Tesselator) ensurePositions() {
	n := t.VertexCount()
	if t.pos.positions == nil {
		t.pos.positions = make([]float32, n*3)
	}
	if t.pos.nextPositions == nil {
		t.pos.nextPositions = make([]float32, n*3)
	}
}

func (t *Tesselator) ensureLowParts() {
	n := t.VertexCount()
	if t.pos.positionsLow == nil {
		t.pos.positionsLow = make([]float32, n*2)
	}
	if t.pos.nextPositionsLow == nil {
		t.pos.nextPositionsLow = make([]float32, n*2)
	}
}

func (t *Tesselator) ensureColors() {
	if t.colors == nil {
		t.colors = make([]uint8, t.VertexCount()*4)
	}
}

// Indices returns the triangle index buffer, 3 indices per triangle.
func (t *Tesselator) Indices() IndexBuffer {
	return t.indices
}

// EdgeIndices returns ring outline segments, 2 indices per ring vertex.
func (t *Tesselator) EdgeIndices() IndexBuffer {
	return t.edges
}

// Positions returns x, y, z+height per vertex.
func (t *Tesselator) Positions() []float32 {
	t.ensurePositions()
	return t.pos.positions
}

// NextPositions returns the position of the next vertex along the same
// ring, wrapping to the ring's first vertex.
func (t *Tesselator) NextPositions() []float32 {
	t.ensurePositions()
	return t.pos.nextPositions
}

// Positions64xyLow returns the fp64 low parts of x and y per vertex.
func (t *Tesselator) Positions64xyLow() []float32 {
	t.ensureLowParts()
	return t.pos.positionsLow
}

// NextPositions64xyLow returns the fp64 low parts of the next positions.
func (t *Tesselator) NextPositions64xyLow() []float32 {
	t.ensureLowParts()
	return t.pos.nextPositionsLow
}

// ColorBuffer returns RGBA bytes per vertex.
func (t *Tesselator) ColorBuffer() []uint8 {
	t.ensureColors()
	return t.colors
}

// PickingColors returns the picking color bytes, 3 per vertex.
func (t *Tesselator) PickingColors() []uint8 {
	return t.pickingColors
}

// UnitSquare returns the side-wall instance geometry drawn as a 4-vertex
// triangle strip: x selects the current (0) or next (1) ring vertex, y the
// bottom (0) or top (1) of the wall.
func (t *Tesselator) UnitSquare() []float32 {
	return []float32{1, 0, 0, 0, 1, 1, 0, 1}
}

// Polygons returns the normalized polygons.
func (t *Tesselator) Polygons() []polygon.ComplexPolygon {
	return t.polygons
}

// PolygonCount returns the number of polygons.
func (t *Tesselator) PolygonCount() int {
	return len(t.polygons)
}

// VertexCount returns the total number of vertices.
func (t *Tesselator) VertexCount() int {
	return t.offsets[len(t.offsets)-1]
}

// Offsets returns the first vertex slot of every polygon followed by the
// total vertex count.
func (t *Tesselator) Offsets() []int {
	return t.offsets
}

// TriangleCount returns the number of triangles polygon i produced.
func (t *Tesselator) TriangleCount(i int) int {
	return t.triangleCounts[i]
}

// TotalTriangleCount returns the number of triangles in the index buffer.
func (t *Tesselator) TotalTriangleCount() int {
	return t.totalTriangles
}
