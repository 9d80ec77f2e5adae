// Package viewer previews tesselator output in an SDL2 / OpenGL 4.1 window.
//
// Buffers are uploaded as produced by the tesselator. Fill triangles come
// from Indices, the wireframe from EdgeIndices, extruded side walls from
// instancing UnitSquare over Positions/NextPositions, and clicks are
// resolved by rendering PickingColors and reading back one pixel.
package viewer

import (
	"fmt"
	gomath "math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/golang/geo/r2"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/polytess/internal/viewer/camera"
	"github.com/Faultbox/polytess/pkg/tesselator"
)

const (
	tiltAngle     = 0.6
	zoomStep      = 1.1
	clickDistance = 3 // pixels a press may move and still count as a click
)

// Options configures a Viewer.
type Options struct {
	Window    WindowConfig
	Wireframe bool
	Extruded  bool // draw side walls
	Bounds    r2.Rect
	MaxHeight float64
	Logger    *zap.Logger

	// OnPick receives the polygon under a left click, or -1 for none.
	OnPick func(polygon int)
}

// Viewer owns the window, the GL program and the uploaded mesh.
type Viewer struct {
	opts Options
	log  *zap.Logger
	win  *window
	tess *tesselator.Tesselator
	mesh *mesh
	cam  *camera.Camera

	program                  uint32
	uViewProj                int32
	uOriginHigh, uOriginLow  int32
	uWall, uMode, uFlatColor int32

	wireframe bool
	walls     bool
	selected  int

	pressed        bool
	pressX, pressY int32
	lastX, lastY   int32
	pickX, pickY   int32
	pickPending    bool
}

// New opens a window and uploads the tesselator's buffers.
func New(t *tesselator.Tesselator, opts Options) (*Viewer, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Window.Title == "" {
		opts.Window.Title = "polyview"
	}

	win, err := newWindow(opts.Window, log)
	if err != nil {
		return nil, err
	}

	if err := gl.Init(); err != nil {
		win.close()
		return nil, fmt.Errorf("gl init: %w", err)
	}
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	program, err := compileProgram(vertexShader, fragmentShader)
	if err != nil {
		win.close()
		return nil, fmt.Errorf("shader: %w", err)
	}

	v := &Viewer{
		opts:        opts,
		log:         log,
		win:         win,
		tess:        t,
		cam:         camera.New(opts.Bounds, opts.MaxHeight),
		program:     program,
		uViewProj:   uniform(program, "u_viewProj"),
		uOriginHigh: uniform(program, "u_originHigh"),
		uOriginLow:  uniform(program, "u_originLow"),
		uWall:       uniform(program, "u_wall"),
		uMode:       uniform(program, "u_mode"),
		uFlatColor:  uniform(program, "u_flatColor"),
		wireframe:   opts.Wireframe,
		walls:       opts.Extruded,
		selected:    -1,
	}
	v.mesh = newMesh(t)

	log.Info("mesh uploaded",
		zap.Int("polygons", t.PolygonCount()),
		zap.Int("vertices", t.VertexCount()),
		zap.Int("triangles", t.TotalTriangleCount()),
		zap.Stringer("indexType", t.Indices().Type))
	return v, nil
}

// Refresh re-sends positions and colors after the caller has called
// UpdatePositions or Colors on the tesselator.
func (v *Viewer) Refresh() {
	v.mesh.update(v.tess)
}

// Close releases GL resources and the window.
func (v *Viewer) Close() {
	v.mesh.delete()
	gl.DeleteProgram(v.program)
	v.win.close()
}

// Run processes events and draws until the window is closed.
func (v *Viewer) Run() error {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	for running := true; running; {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if !v.handleEvent(event) {
				running = false
			}
		}

		if v.pickPending {
			v.pickPending = false
			v.pick(v.pickX, v.pickY)
		}

		v.render()
		v.win.swap()
	}

	v.log.Info("viewer closed")
	return nil
}

// handleEvent returns false when the viewer should quit.
func (v *Viewer) handleEvent(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return false

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN {
			break
		}
		switch e.Keysym.Sym {
		case sdl.K_ESCAPE, sdl.K_q:
			return false
		case sdl.K_w:
			v.wireframe = !v.wireframe
			v.log.Debug("wireframe toggled", zap.Bool("on", v.wireframe))
		case sdl.K_e:
			v.walls = !v.walls
		case sdl.K_t:
			if v.cam.Tilt == 0 {
				v.cam.Tilt = tiltAngle
			} else {
				v.cam.Tilt = 0
			}
		case sdl.K_f:
			v.cam.Fit(v.opts.Bounds)
		}

	case *sdl.MouseButtonEvent:
		if e.Button != sdl.BUTTON_LEFT {
			break
		}
		if e.State == sdl.PRESSED {
			v.pressed = true
			v.pressX, v.pressY = e.X, e.Y
			v.lastX, v.lastY = e.X, e.Y
			break
		}
		v.pressed = false
		if abs32(e.X-v.pressX) <= clickDistance && abs32(e.Y-v.pressY) <= clickDistance {
			v.pickPending = true
			v.pickX, v.pickY = e.X, e.Y
		}

	case *sdl.MouseMotionEvent:
		if v.pressed {
			w, h := v.win.size()
			v.cam.Pan(int(e.X-v.lastX), int(e.Y-v.lastY), w, h)
			v.lastX, v.lastY = e.X, e.Y
		}

	case *sdl.MouseWheelEvent:
		v.cam.ZoomBy(gomath.Pow(zoomStep, float64(e.Y)))
	}
	return true
}

// pick renders picking colors and decodes the pixel under (x, y), given in
// window points.
func (v *Viewer) pick(x, y int32) {
	ww, wh := v.win.size()
	dw, dh := v.win.drawableSize()
	if ww == 0 || wh == 0 {
		return
	}
	px := int32(int(x) * dw / ww)
	py := int32(dh - 1 - int(y)*dh/wh)

	gl.Viewport(0, 0, int32(dw), int32(dh))
	gl.Disable(gl.BLEND)
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	v.drawScene(modePicking, float32(dw)/float32(dh))

	var pixel [4]uint8
	gl.ReadPixels(px, py, 1, 1, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&pixel[0]))

	v.selected = tesselator.DecodePickingColor(pixel[0], pixel[1], pixel[2])
	wx, wy := v.cam.ScreenToWorld(int(x), int(y), ww, wh)
	v.log.Debug("pick",
		zap.Int("polygon", v.selected),
		zap.Float64("x", wx),
		zap.Float64("y", wy))

	if v.selected >= 0 {
		v.win.setTitle(fmt.Sprintf("%s - polygon %d", v.opts.Window.Title, v.selected))
	} else {
		v.win.setTitle(v.opts.Window.Title)
	}
	if v.opts.OnPick != nil {
		v.opts.OnPick(v.selected)
	}
}

func (v *Viewer) render() {
	dw, dh := v.win.drawableSize()
	if dw == 0 || dh == 0 {
		return
	}
	gl.Viewport(0, 0, int32(dw), int32(dh))
	gl.Enable(gl.BLEND)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	v.drawScene(modeColor, float32(dw)/float32(dh))
}

func (v *Viewer) drawScene(mode int32, aspect float32) {
	gl.UseProgram(v.program)

	viewProj := v.cam.ViewProjection(aspect)
	gl.UniformMatrix4fv(v.uViewProj, 1, false, viewProj.Ptr())
	high, low := v.cam.Origin()
	gl.Uniform2f(v.uOriginHigh, high[0], high[1])
	gl.Uniform2f(v.uOriginLow, low[0], low[1])
	gl.Uniform1i(v.uMode, mode)

	gl.Uniform1i(v.uWall, 0)
	v.mesh.drawFill()

	if v.walls {
		gl.Uniform1i(v.uWall, 1)
		v.mesh.drawWalls()
		gl.Uniform1i(v.uWall, 0)
	}

	if v.wireframe && mode != modePicking {
		gl.Uniform1i(v.uMode, modeFlat)
		gl.Uniform4f(v.uFlatColor, 1, 1, 1, 0.8)
		v.mesh.drawEdges()
	}
}

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}
