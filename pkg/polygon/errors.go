package polygon

import (
	"errors"
	"fmt"
)

// ErrInvalidGeometry is returned for malformed polygon input.
var ErrInvalidGeometry = errors.New("invalid geometry")

// InvalidGeometryError describes which ring of which polygon is malformed.
type InvalidGeometryError struct {
	Polygon int // index in the polygon set, -1 when unknown
	Ring    int
	Reason  string
}

func (e *InvalidGeometryError) Error() string {
	if e.Polygon < 0 {
		return fmt.Sprintf("invalid geometry: ring %d: %s", e.Ring, e.Reason)
	}
	return fmt.Sprintf("invalid geometry: polygon %d ring %d: %s", e.Polygon, e.Ring, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidGeometry.
func (e *InvalidGeometryError) Unwrap() error {
	return ErrInvalidGeometry
}
