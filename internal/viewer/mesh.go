package viewer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/polytess/pkg/tesselator"
)

// buffer is a GL buffer that remembers which slice it last received. A
// slice with the same backing array and length is refreshed in place.
type buffer struct {
	id     uint32
	target uint32
	data   unsafe.Pointer
	size   int
}

func newBuffer(target uint32) *buffer {
	b := &buffer{target: target}
	gl.GenBuffers(1, &b.id)
	return b
}

func (b *buffer) upload(ptr unsafe.Pointer, size int) {
	gl.BindBuffer(b.target, b.id)
	if ptr != nil && ptr == b.data && size == b.size {
		gl.BufferSubData(b.target, 0, size, ptr)
		return
	}
	gl.BufferData(b.target, size, ptr, gl.DYNAMIC_DRAW)
	b.data, b.size = ptr, size
}

func (b *buffer) delete() {
	gl.DeleteBuffers(1, &b.id)
}

func float32s(s []float32) (unsafe.Pointer, int) {
	if len(s) == 0 {
		return nil, 0
	}
	return gl.Ptr(&s[0]), len(s) * 4
}

func uint8s(s []uint8) (unsafe.Pointer, int) {
	if len(s) == 0 {
		return nil, 0
	}
	return gl.Ptr(&s[0]), len(s)
}

func indexData(b tesselator.IndexBuffer) (unsafe.Pointer, int) {
	switch {
	case b.Type == tesselator.Uint16 && len(b.U16) > 0:
		return gl.Ptr(&b.U16[0]), len(b.U16) * 2
	case b.Type == tesselator.Uint32 && len(b.U32) > 0:
		return gl.Ptr(&b.U32[0]), len(b.U32) * 4
	}
	return nil, 0
}

func glIndexType(t tesselator.IndexType) uint32 {
	if t == tesselator.Uint16 {
		return gl.UNSIGNED_SHORT
	}
	return gl.UNSIGNED_INT
}

// mesh holds the GPU copies of a tesselator's buffers. The fill VAO reads
// one vertex per polygon vertex; the wall VAO instances the unit square once
// per ring vertex.
type mesh struct {
	fillVAO, wallVAO uint32

	positions, positionsLow         *buffer
	nextPositions, nextPositionsLow *buffer
	colors, picking                 *buffer
	unit                            *buffer
	indices, edges                  *buffer

	indexType  uint32
	indexCount int32
	edgeCount  int32
	vertices   int32
}

func newMesh(t *tesselator.Tesselator) *mesh {
	m := &mesh{
		positions:        newBuffer(gl.ARRAY_BUFFER),
		positionsLow:     newBuffer(gl.ARRAY_BUFFER),
		nextPositions:    newBuffer(gl.ARRAY_BUFFER),
		nextPositionsLow: newBuffer(gl.ARRAY_BUFFER),
		colors:           newBuffer(gl.ARRAY_BUFFER),
		picking:          newBuffer(gl.ARRAY_BUFFER),
		unit:             newBuffer(gl.ARRAY_BUFFER),
		indices:          newBuffer(gl.ELEMENT_ARRAY_BUFFER),
		edges:            newBuffer(gl.ARRAY_BUFFER), // bound as elements only inside drawEdges
		indexType:        glIndexType(t.Indices().Type),
		indexCount:       int32(t.Indices().Len()),
		edgeCount:        int32(t.EdgeIndices().Len()),
		vertices:         int32(t.VertexCount()),
	}

	m.unit.upload(float32s(t.UnitSquare()))
	m.picking.upload(uint8s(t.PickingColors()))
	m.update(t)

	gl.GenVertexArrays(1, &m.fillVAO)
	gl.BindVertexArray(m.fillVAO)
	m.bindVertexAttributes(0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.indices.id)
	m.indices.upload(indexData(t.Indices()))

	gl.BindVertexArray(0)
	m.edges.upload(indexData(t.EdgeIndices()))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.GenVertexArrays(1, &m.wallVAO)
	gl.BindVertexArray(m.wallVAO)
	m.bindVertexAttributes(1)
	attribute(m.nextPositions, attrNext, 3, gl.FLOAT, false, 1)
	attribute(m.nextPositionsLow, attrNextLow, 2, gl.FLOAT, false, 1)
	attribute(m.unit, attrUnit, 2, gl.FLOAT, false, 0)

	gl.BindVertexArray(0)
	return m
}

// bindVertexAttributes binds the per-vertex attributes, advancing once per
// instance when divisor is 1.
func (m *mesh) bindVertexAttributes(divisor uint32) {
	attribute(m.positions, attrPosition, 3, gl.FLOAT, false, divisor)
	attribute(m.positionsLow, attrPositionLow, 2, gl.FLOAT, false, divisor)
	attribute(m.colors, attrColor, 4, gl.UNSIGNED_BYTE, true, divisor)
	attribute(m.picking, attrPicking, 3, gl.UNSIGNED_BYTE, true, divisor)
}

func attribute(b *buffer, loc uint32, size int32, xtype uint32, normalized bool, divisor uint32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.id)
	gl.VertexAttribPointerWithOffset(loc, size, xtype, normalized, 0, 0)
	gl.EnableVertexAttribArray(loc)
	gl.VertexAttribDivisor(loc, divisor)
}

// update re-sends the attribute buffers that UpdatePositions and Colors
// rewrite.
func (m *mesh) update(t *tesselator.Tesselator) {
	m.positions.upload(float32s(t.Positions()))
	m.positionsLow.upload(float32s(t.Positions64xyLow()))
	m.nextPositions.upload(float32s(t.NextPositions()))
	m.nextPositionsLow.upload(float32s(t.NextPositions64xyLow()))
	m.colors.upload(uint8s(t.ColorBuffer()))
}

func (m *mesh) drawFill() {
	if m.indexCount == 0 {
		return
	}
	gl.BindVertexArray(m.fillVAO)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, m.indexType, nil)
}

func (m *mesh) drawEdges() {
	if m.edgeCount == 0 {
		return
	}
	gl.BindVertexArray(m.fillVAO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.edges.id)
	gl.DrawElements(gl.LINES, m.edgeCount, m.indexType, nil)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.indices.id)
}

func (m *mesh) drawWalls() {
	if m.vertices == 0 {
		return
	}
	gl.BindVertexArray(m.wallVAO)
	gl.DrawArraysInstanced(gl.TRIANGLE_STRIP, 0, 4, m.vertices)
}

func (m *mesh) delete() {
	for _, b := range []*buffer{
		m.positions, m.positionsLow, m.nextPositions, m.nextPositionsLow,
		m.colors, m.picking, m.unit, m.indices, m.edges,
	} {
		b.delete()
	}
	gl.DeleteVertexArrays(1, &m.fillVAO)
	gl.DeleteVertexArrays(1, &m.wallVAO)
}
