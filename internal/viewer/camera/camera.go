// Package camera provides the orthographic map camera used by the viewer.
package camera

import (
	gomath "math"

	"github.com/golang/geo/r2"

	"github.com/Faultbox/polytess/pkg/math"
)

const (
	minZoom      = 0.01
	maxZoom      = 10000
	boundsMargin = 1.05
)

// Camera is an orthographic camera looking down -Z at a dataset. The center
// is kept in float64 and handed to the shader split into high and low parts
// so large coordinates keep their precision.
type Camera struct {
	CenterX, CenterY      float64
	HalfWidth, HalfHeight float64 // fitted data extent at zoom 1
	Zoom                  float64
	Tilt                  float32 // radians around X
	Depth                 float32
}

// New returns a camera framing bounds. maxHeight is the tallest
// extrusion and only affects the depth range.
func New(bounds r2.Rect, maxHeight float64) *Camera {
	c := &Camera{Zoom: 1}
	c.Fit(bounds)
	c.Depth = float32(2*(gomath.Max(c.HalfWidth, c.HalfHeight)+gomath.Abs(maxHeight)) + 1)
	return c
}

// Fit centers the camera on bounds and resets zoom.
func (c *Camera) Fit(bounds r2.Rect) {
	c.Zoom = 1
	if bounds.IsEmpty() {
		c.CenterX, c.CenterY = 0, 0
		c.HalfWidth, c.HalfHeight = 1, 1
		return
	}
	center := bounds.Center()
	size := bounds.Size()
	c.CenterX, c.CenterY = center.X, center.Y
	c.HalfWidth = size.X / 2 * boundsMargin
	c.HalfHeight = size.Y / 2 * boundsMargin
}

// ZoomBy multiplies the zoom factor, clamped to a sane range.
func (c *Camera) ZoomBy(factor float64) {
	c.Zoom = gomath.Min(maxZoom, gomath.Max(minZoom, c.Zoom*factor))
}

// Pan moves the camera by a drag of (dx, dy) pixels in a w x h viewport.
func (c *Camera) Pan(dx, dy, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	hw, hh := c.visibleExtent(float64(w) / float64(h))
	c.CenterX -= float64(dx) / float64(w) * 2 * hw
	c.CenterY += float64(dy) / float64(h) * 2 * hh
}

// ScreenToWorld maps a window pixel to data coordinates, ignoring tilt.
func (c *Camera) ScreenToWorld(px, py, w, h int) (x, y float64) {
	if w <= 0 || h <= 0 {
		return c.CenterX, c.CenterY
	}
	hw, hh := c.visibleExtent(float64(w) / float64(h))
	x = c.CenterX + (float64(px)/float64(w)*2-1)*hw
	y = c.CenterY + (1-float64(py)/float64(h)*2)*hh
	return x, y
}

// visibleExtent mirrors math.FitOrtho in float64.
func (c *Camera) visibleExtent(aspect float64) (hw, hh float64) {
	hw, hh = c.HalfWidth/c.Zoom, c.HalfHeight/c.Zoom
	if hw <= 0 {
		hw = 1
	}
	if hh <= 0 {
		hh = 1
	}
	if hw/hh < aspect {
		hw = hh * aspect
	} else {
		hh = hw / aspect
	}
	return hw, hh
}

// ViewProjection returns the matrix applied to origin-relative positions.
func (c *Camera) ViewProjection(aspect float32) math.Mat4 {
	proj := math.FitOrtho(float32(c.HalfWidth/c.Zoom), float32(c.HalfHeight/c.Zoom), aspect, c.Depth)
	if c.Tilt != 0 {
		proj = proj.Mul(math.RotateX(-c.Tilt))
	}
	return proj
}

// Origin returns the camera center split into float32 high and low parts.
func (c *Camera) Origin() (high, low [2]float32) {
	high[0], low[0] = math.SplitFloat64(c.CenterX)
	high[1], low[1] = math.SplitFloat64(c.CenterY)
	return high, low
}
