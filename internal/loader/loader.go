// Package loader reads GeoJSON features into polygon sets with per-polygon
// height and color values.
package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang/geo/r2"
	"github.com/tidwall/geojson"
	"github.com/tidwall/geojson/geometry"
	"github.com/tidwall/gjson"

	"github.com/Faultbox/polytess/pkg/encoding"
	"github.com/Faultbox/polytess/pkg/polygon"
	"github.com/Faultbox/polytess/pkg/tesselator"
)

// ErrInvalidJSON is returned when the input is not valid JSON.
var ErrInvalidJSON = errors.New("invalid json")

// Options selects which feature properties feed the accessors.
type Options struct {
	HeightProperty string
	ColorProperty  string
	Charset        string // input charset when the file has no BOM; empty means UTF-8
}

// Dataset is a polygon set plus per-polygon attributes, all indexed by
// polygon. A MultiPolygon feature contributes one polygon per member, all
// sharing the feature's attributes.
type Dataset struct {
	Polygons     []polygon.Input
	Heights      []float64
	Colors       [][]float64 // nil entry when the feature has no usable color
	FeatureIndex []int       // feature each polygon came from
	Bounds       r2.Rect
	Features     int
	Skipped      int // features without polygonal geometry
}

// Load reads a GeoJSON file.
func Load(path string, opts Options) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ds, err := Parse(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Parse reads a FeatureCollection, a single Feature or a bare geometry.
func Parse(data []byte, opts Options) (*Dataset, error) {
	data, err := encoding.ToUTF8(data, opts.Charset)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}

	ds := &Dataset{Bounds: r2.EmptyRect()}
	root := gjson.ParseBytes(data)

	switch root.Get("type").String() {
	case "FeatureCollection":
		root.Get("features").ForEach(func(_, f gjson.Result) bool {
			err = ds.addFeature(f, opts)
			return err == nil
		})
	case "Feature":
		err = ds.addFeature(root, opts)
	default:
		ds.Features++
		err = ds.addGeometry(root, nil, nil)
	}
	if err != nil {
		return nil, err
	}
	return ds, nil
}

func (ds *Dataset) addFeature(f gjson.Result, opts Options) error {
	ds.Features++
	geom := f.Get("geometry")
	if !geom.Exists() || geom.Type == gjson.Null {
		ds.Skipped++
		return nil
	}

	props := f.Get("properties")
	var height []float64
	if opts.HeightProperty != "" {
		if h := props.Get(opts.HeightProperty); h.Exists() {
			height = []float64{h.Float()}
		}
	}

	var color []float64
	if opts.ColorProperty != "" {
		c, err := colorValue(props.Get(opts.ColorProperty))
		if err != nil {
			return fmt.Errorf("feature %d: %w", ds.Features-1, err)
		}
		color = c
	}

	if err := ds.addGeometry(geom, height, color); err != nil {
		return fmt.Errorf("feature %d: %w", ds.Features-1, err)
	}
	return nil
}

func (ds *Dataset) addGeometry(geom gjson.Result, height, color []float64) error {
	obj, err := geojson.Parse(geom.Raw, nil)
	if err != nil {
		return err
	}

	feature := ds.Features - 1
	add := func(p *geojson.Polygon) {
		ds.addPolygon(p.Base(), feature, height, color)
	}

	switch g := obj.(type) {
	case *geojson.Polygon:
		add(g)
	case *geojson.MultiPolygon:
		g.ForEach(func(child geojson.Object) bool {
			if p, ok := child.(*geojson.Polygon); ok {
				add(p)
			}
			return true
		})
	default:
		ds.Skipped++
	}
	return nil
}

func (ds *Dataset) addPolygon(base *geometry.Poly, feature int, height, color []float64) {
	rings := make(polygon.ComplexPolygon, 0, len(base.Holes)+1)
	rings = append(rings, ds.ring(base.Exterior))
	for _, h := range base.Holes {
		rings = append(rings, ds.ring(h))
	}

	h := 0.0
	if len(height) > 0 {
		h = height[0]
	}
	ds.Polygons = append(ds.Polygons, rings)
	ds.Heights = append(ds.Heights, h)
	ds.Colors = append(ds.Colors, color)
	ds.FeatureIndex = append(ds.FeatureIndex, feature)
}

// ring copies a GeoJSON ring, dropping the repeated closing point.
func (ds *Dataset) ring(series geometry.Ring) polygon.Ring {
	n := series.NumPoints()
	if n > 1 && series.PointAt(0) == series.PointAt(n-1) {
		n--
	}
	out := make(polygon.Ring, n)
	for i := range out {
		p := series.PointAt(i)
		out[i] = polygon.Point{X: p.X, Y: p.Y}
		ds.Bounds = ds.Bounds.AddPoint(r2.Point{X: p.X, Y: p.Y})
	}
	return out
}

// HeightAccessor returns per-polygon heights multiplied by scale.
func (ds *Dataset) HeightAccessor(scale float64) tesselator.HeightAccessor {
	return func(i int) float64 {
		return ds.Heights[i] * scale
	}
}

// ColorAccessor returns per-polygon colors, falling back to fallback for
// polygons whose feature had none.
func (ds *Dataset) ColorAccessor(fallback []float64) tesselator.ColorAccessor {
	return func(i int) []float64 {
		if c := ds.Colors[i]; c != nil {
			return c
		}
		return fallback
	}
}

// colorValue reads a color property given as a channel array or a string.
func colorValue(v gjson.Result) ([]float64, error) {
	switch {
	case !v.Exists() || v.Type == gjson.Null:
		return nil, nil
	case v.IsArray():
		arr := v.Array()
		if len(arr) < 3 || len(arr) > 4 {
			return nil, fmt.Errorf("color %s: want 3 or 4 channels", v.Raw)
		}
		out := make([]float64, len(arr))
		for i, c := range arr {
			out[i] = c.Float()
		}
		return out, nil
	case v.Type == gjson.String:
		return ParseColor(v.String())
	default:
		return nil, fmt.Errorf("color %s: unsupported value", v.Raw)
	}
}
