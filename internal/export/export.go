// Package export writes tesselator buffers to disk as raw little-endian
// files described by a YAML manifest.
package export

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/polytess/pkg/tesselator"
)

// ManifestFile is the manifest's file name inside the output directory.
const ManifestFile = "manifest.yaml"

// Manifest describes an exported buffer set.
type Manifest struct {
	Source    string   `yaml:"source,omitempty"`
	IndexType string   `yaml:"index_type"`
	Polygons  int      `yaml:"polygons"`
	Vertices  int      `yaml:"vertices"`
	Triangles int      `yaml:"triangles"`
	Extruded  bool     `yaml:"extruded"`
	FP64      bool     `yaml:"fp64"`
	Buffers   []Buffer `yaml:"buffers"`
}

// Buffer describes one binary file.
type Buffer struct {
	Name  string `yaml:"name"`
	File  string `yaml:"file"`
	Type  string `yaml:"type"`  // uint8, uint16, uint32 or float32
	Size  int    `yaml:"size"`  // components per element
	Count int    `yaml:"count"` // elements
}

// Find returns the buffer with the given name.
func (m *Manifest) Find(name string) (Buffer, bool) {
	for _, b := range m.Buffers {
		if b.Name == name {
			return b, true
		}
	}
	return Buffer{}, false
}

// Options describes how the tesselator was last updated.
type Options struct {
	Source   string
	Extruded bool
	FP64     bool // include the low-part position buffers
}

type entry struct {
	name string
	size int
	data any
	n    int // scalar count
}

// Write stores every buffer of t under dir and returns the manifest it
// wrote. The tesselator's positions and colors are exported as they are.
func Write(dir string, t *tesselator.Tesselator, opts Options) (*Manifest, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	indices := t.Indices()
	entries := []entry{
		indexEntry("indices", indices),
		indexEntry("edge_indices", t.EdgeIndices()),
		{"positions", 3, t.Positions(), len(t.Positions())},
		{"next_positions", 3, t.NextPositions(), len(t.NextPositions())},
	}
	if opts.FP64 {
		entries = append(entries,
			entry{"positions64xy_low", 2, t.Positions64xyLow(), len(t.Positions64xyLow())},
			entry{"next_positions64xy_low", 2, t.NextPositions64xyLow(), len(t.NextPositions64xyLow())},
		)
	}
	entries = append(entries,
		entry{"colors", 4, t.ColorBuffer(), len(t.ColorBuffer())},
		entry{"picking_colors", 3, t.PickingColors(), len(t.PickingColors())},
		entry{"unit_square", 2, t.UnitSquare(), len(t.UnitSquare())},
		entry{"polygon_offsets", 1, toUint32(t.Offsets()), len(t.Offsets())},
		entry{"triangle_counts", 1, triangleCounts(t), t.PolygonCount()},
	)

	m := &Manifest{
		Source:    opts.Source,
		IndexType: indices.Type.String(),
		Polygons:  t.PolygonCount(),
		Vertices:  t.VertexCount(),
		Triangles: t.TotalTriangleCount(),
		Extruded:  opts.Extruded,
		FP64:      opts.FP64,
	}

	for _, e := range entries {
		file := e.name + ".bin"
		if err := writeBinary(filepath.Join(dir, file), e.data); err != nil {
			return nil, fmt.Errorf("write %s: %w", e.name, err)
		}
		m.Buffers = append(m.Buffers, Buffer{
			Name:  e.name,
			File:  file,
			Type:  typeName(e.data),
			Size:  e.size,
			Count: e.n / e.size,
		})
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), data, 0644); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}
	return m, nil
}

// ReadManifest loads the manifest from an export directory.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

func indexEntry(name string, b tesselator.IndexBuffer) entry {
	if b.Type == tesselator.Uint16 {
		return entry{name, 1, b.U16, len(b.U16)}
	}
	return entry{name, 1, b.U32, len(b.U32)}
}

func toUint32(v []int) []uint32 {
	out := make([]uint32, len(v))
	for i, x := range v {
		out[i] = uint32(x)
	}
	return out
}

func triangleCounts(t *tesselator.Tesselator) []uint32 {
	out := make([]uint32, t.PolygonCount())
	for i := range out {
		out[i] = uint32(t.TriangleCount(i))
	}
	return out
}

func typeName(data any) string {
	switch data.(type) {
	case []uint8:
		return "uint8"
	case []uint16:
		return "uint16"
	case []uint32:
		return "uint32"
	case []float32:
		return "float32"
	}
	return "unknown"
}

func writeBinary(path string, data any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, data); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
