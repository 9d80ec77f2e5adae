package tesselator

import (
	"github.com/rclancey/earcut"

	"github.com/Faultbox/polytess/pkg/polygon"
)

// Triangulate returns local vertex indices of p, 3 per triangle, counted
// from p's first vertex in ring order. Every triangle is wound
// counter-clockwise in the XY plane. Degenerate polygons may produce no
// triangles; an error from the ear clipper is returned with no triangles.
func Triangulate(p polygon.ComplexPolygon) ([]int, error) {
	coords := polygon.Flatten(p)
	tris, err := earcut.Earcut(coords, polygon.HoleIndices(p), 3)
	if err != nil {
		return nil, err
	}

	for t := 0; t+2 < len(tris); t += 3 {
		a, b, c := tris[t]*3, tris[t+1]*3, tris[t+2]*3
		cross := (coords[b]-coords[a])*(coords[c+1]-coords[a+1]) -
			(coords[b+1]-coords[a+1])*(coords[c]-coords[a])
		if cross < 0 {
			tris[t+1], tris[t+2] = tris[t+2], tris[t+1]
		}
	}
	return tris, nil
}
