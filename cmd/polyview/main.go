// Package main is the entry point for the polygon buffer viewer.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/polytess/internal/config"
	"github.com/Faultbox/polytess/internal/loader"
	"github.com/Faultbox/polytess/internal/logger"
	"github.com/Faultbox/polytess/internal/viewer"
	"github.com/Faultbox/polytess/pkg/tesselator"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== polyview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	path, ok := inputPath()
	if !ok {
		return
	}

	if err := run(cfg, path); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("viewer closed normally")
}

// inputPath returns the GeoJSON file named on the command line, or asks
// for one with a native file dialog.
func inputPath() (string, bool) {
	if args := config.Args(); len(args) > 0 {
		return args[0], true
	}

	filename, err := dialog.File().
		Filter("GeoJSON", "geojson", "json").
		Filter("All Files", "*").
		Title("Open GeoJSON").
		Load()
	if err != nil {
		if err != dialog.ErrCancelled {
			fmt.Fprintf(os.Stderr, "File dialog error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Usage: polyview [options] <file.geojson>")
		}
		return "", false
	}
	return filename, true
}

func run(cfg *config.Config, path string) error {
	tc := cfg.Tessellation
	it, err := tc.ParsedIndexType()
	if err != nil {
		return err
	}
	fill, err := loader.ParseColor(tc.FillColor)
	if err != nil {
		return fmt.Errorf("fill_color: %w", err)
	}

	ds, err := loader.Load(path, loader.Options{
		HeightProperty: tc.HeightProperty,
		ColorProperty:  tc.ColorProperty,
	})
	if err != nil {
		return err
	}

	tess, err := tesselator.New(ds.Polygons, tesselator.Options{
		IndexType: it,
		Logger:    logger.Named("tesselator"),
	})
	if err != nil {
		return err
	}
	tess.UpdatePositions(tesselator.UpdateOptions{
		Extruded: tc.Extruded,
		Height:   ds.HeightAccessor(tc.ElevationScale),
		FP64:     tc.FP64,
	})
	tess.Colors(ds.ColorAccessor(fill))

	maxHeight := 0.0
	if tc.Extruded {
		for _, h := range ds.Heights {
			maxHeight = max(maxHeight, h*tc.ElevationScale)
		}
	}

	log := logger.Named("viewer")
	v, err := viewer.New(tess, viewer.Options{
		Window: viewer.WindowConfig{
			Title:      "polyview - " + filepath.Base(path),
			Width:      cfg.Viewer.Width,
			Height:     cfg.Viewer.Height,
			Fullscreen: cfg.Viewer.Fullscreen,
			VSync:      cfg.Viewer.VSync,
		},
		Wireframe: tc.Wireframe,
		Extruded:  tc.Extruded,
		Bounds:    ds.Bounds,
		MaxHeight: maxHeight,
		Logger:    log,
		OnPick: func(polygon int) {
			if polygon < 0 {
				return
			}
			log.Info("picked",
				zap.Int("polygon", polygon),
				zap.Int("feature", ds.FeatureIndex[polygon]),
				zap.Float64("height", ds.Heights[polygon]),
				zap.Int("triangles", tess.TriangleCount(polygon)))
		},
	})
	if err != nil {
		return err
	}
	defer v.Close()

	return v.Run()
}
