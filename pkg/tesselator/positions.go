package tesselator

import (
	"github.com/Faultbox/polytess/pkg/math"
	"github.com/Faultbox/polytess/pkg/polygon"
)

// HeightAccessor returns the extrusion height of polygon i.
type HeightAccessor func(i int) float64

// positionBuffers are the per-vertex position attributes, 3 floats per
// vertex for positions and 2 per vertex for the fp64 low parts.
type positionBuffers struct {
	positions        []float32
	nextPositions    []float32
	positionsLow     []float32
	nextPositionsLow []float32
}

// fillPositions overwrites the position buffers in place. The height
// accessor is called once per polygon and only when extruded is set. The
// low buffers are written only when fp64 is set.
func fillPositions(b *positionBuffers, polys []polygon.ComplexPolygon, offsets []int,
	extruded bool, height HeightAccessor, fp64 bool) {

	for i, p := range polys {
		h := 0.0
		if extruded && height != nil {
			h = height(i)
		}

		v := offsets[i]
		for _, ring := range p {
			for k, pt := range ring {
				next := ring[(k+1)%len(ring)]

				b.positions[v*3] = float32(pt.X)
				b.positions[v*3+1] = float32(pt.Y)
				b.positions[v*3+2] = float32(pt.Z + h)

				b.nextPositions[v*3] = float32(next.X)
				b.nextPositions[v*3+1] = float32(next.Y)
				b.nextPositions[v*3+2] = float32(next.Z + h)

				if fp64 {
					_, b.positionsLow[v*2] = math.SplitFloat64(pt.X)
					_, b.positionsLow[v*2+1] = math.SplitFloat64(pt.Y)
					_, b.nextPositionsLow[v*2] = math.SplitFloat64(next.X)
					_, b.nextPositionsLow[v*2+1] = math.SplitFloat64(next.Y)
				}
				v++
			}
		}
	}
}
