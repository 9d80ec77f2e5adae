package tesselator

import (
	"errors"
	"fmt"
	"math"
)

// IndexType selects the integer width of index buffers.
type IndexType int

const (
	// Uint32 indices address up to 2^32-1 vertices.
	Uint32 IndexType = iota
	// Uint16 indices address up to 65535 vertices.
	Uint16
)

// String returns the type name used in configuration files.
func (t IndexType) String() string {
	switch t {
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	default:
		return fmt.Sprintf("IndexType(%d)", int(t))
	}
}

// ParseIndexType parses "uint16" or "uint32".
func ParseIndexType(s string) (IndexType, error) {
	switch s {
	case "uint16", "16":
		return Uint16, nil
	case "uint32", "32", "":
		return Uint32, nil
	default:
		return Uint32, fmt.Errorf("unknown index type %q", s)
	}
}

// Capacity returns the largest vertex count the type can address.
func (t IndexType) Capacity() uint64 {
	if t == Uint16 {
		return math.MaxUint16
	}
	return math.MaxUint32
}

// ErrIndexOverflow is returned when the vertex count exceeds the index width.
var ErrIndexOverflow = errors.New("index overflow")

// IndexOverflowError reports a vertex count the chosen index type cannot address.
type IndexOverflowError struct {
	Type     IndexType
	Vertices int
}

func (e *IndexOverflowError) Error() string {
	return fmt.Sprintf("index overflow: %d vertices exceed %s capacity %d", e.Vertices, e.Type, e.Type.Capacity())
}

// Unwrap lets errors.Is match ErrIndexOverflow.
func (e *IndexOverflowError) Unwrap() error {
	return ErrIndexOverflow
}

// checkCapacity fails when vertices cannot be addressed by t.
func checkCapacity(t IndexType, vertices int) error {
	if uint64(vertices) > t.Capacity() {
		return &IndexOverflowError{Type: t, Vertices: vertices}
	}
	return nil
}

// IndexBuffer holds indices in the requested width. Exactly one of U16 and
// U32 is populated, matching Type.
type IndexBuffer struct {
	Type IndexType
	U16  []uint16
	U32  []uint32
}

func newIndexBuffer(t IndexType, n int) IndexBuffer {
	if t == Uint16 {
		return IndexBuffer{Type: t, U16: make([]uint16, n)}
	}
	return IndexBuffer{Type: t, U32: make([]uint32, n)}
}

// Len returns the number of indices.
func (b IndexBuffer) Len() int {
	if b.Type == Uint16 {
		return len(b.U16)
	}
	return len(b.U32)
}

// At returns index i widened to int.
func (b IndexBuffer) At(i int) int {
	if b.Type == Uint16 {
		return int(b.U16[i])
	}
	return int(b.U32[i])
}

// ElementSize returns the size of one index in bytes.
func (b IndexBuffer) ElementSize() int {
	if b.Type == Uint16 {
		return 2
	}
	return 4
}

func (b IndexBuffer) set(i, v int) {
	if b.Type == Uint16 {
		b.U16[i] = uint16(v)
		return
	}
	b.U32[i] = uint32(v)
}
