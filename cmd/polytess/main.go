// polytess is a CLI for tessellating GeoJSON polygons into GPU buffers.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/polytess/internal/config"
	"github.com/Faultbox/polytess/internal/export"
	"github.com/Faultbox/polytess/internal/loader"
	"github.com/Faultbox/polytess/internal/logger"
	"github.com/Faultbox/polytess/pkg/polygon"
	"github.com/Faultbox/polytess/pkg/tesselator"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "export", "x":
		cmdExport(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`polytess - polygon tessellation utility

Usage:
  polytess <command> [options]

Commands:
  info <file.geojson>                Show polygon and buffer statistics
  export <file.geojson> <outdir>     Write buffers and manifest.yaml

Options (both commands):
  -config <file>     Config file (defaults otherwise)
  -index <type>      Index type: uint16 or uint32
  -extruded          Extrude by the height property
  -fp64              Emit fp64 low-part buffers
  -charset <label>   Input charset when the file has no BOM
  -debug             Enable debug logging

Examples:
  polytess info buildings.geojson
  polytess export -index uint16 -extruded buildings.geojson ./out`)
}

// session is the loaded input plus its tessellation.
type session struct {
	cfg     *config.Config
	dataset *loader.Dataset
	tess    *tesselator.Tesselator
}

func newFlagSet(name string) (*flag.FlagSet, func(path string) (*session, error)) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	indexType := fs.String("index", "", "Index type: uint16 or uint32")
	extruded := fs.Bool("extruded", false, "Extrude polygons by their height property")
	fp64 := fs.Bool("fp64", false, "Emit fp64 low-part position buffers")
	charset := fs.String("charset", "", "Input charset when the file has no BOM")
	debug := fs.Bool("debug", false, "Enable debug logging")

	open := func(path string) (*session, error) {
		cfg := config.Default()
		if *configPath != "" {
			loaded, err := config.LoadFile(*configPath)
			if err != nil {
				return nil, err
			}
			cfg = loaded
		}
		if *indexType != "" {
			cfg.Tessellation.IndexType = *indexType
		}
		if *extruded {
			cfg.Tessellation.Extruded = true
		}
		if *fp64 {
			cfg.Tessellation.FP64 = true
		}

		level := "warn"
		if *debug {
			level = "debug"
		}
		if err := logger.Init(level, cfg.Logging.LogFile); err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}

		return load(cfg, path, *charset)
	}
	return fs, open
}

func load(cfg *config.Config, path, charset string) (*session, error) {
	it, err := cfg.Tessellation.ParsedIndexType()
	if err != nil {
		return nil, err
	}

	ds, err := loader.Load(path, loader.Options{
		HeightProperty: cfg.Tessellation.HeightProperty,
		ColorProperty:  cfg.Tessellation.ColorProperty,
		Charset:        charset,
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("dataset loaded",
		zap.String("path", path),
		zap.Int("features", ds.Features),
		zap.Int("polygons", len(ds.Polygons)),
		zap.Int("skipped", ds.Skipped))

	tess, err := tesselator.New(ds.Polygons, tesselator.Options{
		IndexType: it,
		Logger:    logger.Named("tesselator"),
	})
	if err != nil {
		return nil, err
	}

	fill, err := loader.ParseColor(cfg.Tessellation.FillColor)
	if err != nil {
		return nil, fmt.Errorf("fill_color: %w", err)
	}

	tess.UpdatePositions(tesselator.UpdateOptions{
		Extruded: cfg.Tessellation.Extruded,
		Height:   ds.HeightAccessor(cfg.Tessellation.ElevationScale),
		FP64:     cfg.Tessellation.FP64,
	})
	tess.Colors(ds.ColorAccessor(fill))

	return &session{cfg: cfg, dataset: ds, tess: tess}, nil
}

func fail(err error) {
	var overflow *tesselator.IndexOverflowError
	var invalid *polygon.InvalidGeometryError
	switch {
	case errors.As(err, &overflow):
		fmt.Fprintf(os.Stderr, "Error: %v (try -index uint32)\n", err)
	case errors.As(err, &invalid):
		fmt.Fprintf(os.Stderr, "Error: invalid geometry: %v\n", err)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	logger.Sync()
	os.Exit(1)
}

func cmdInfo(args []string) {
	fs, open := newFlagSet("info")
	top := fs.Int("top", 5, "List the N polygons with the most triangles")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: polytess info [options] <file.geojson>")
		os.Exit(1)
	}

	s, err := open(fs.Arg(0))
	if err != nil {
		fail(err)
	}
	defer logger.Sync()

	ds, tess := s.dataset, s.tess
	fmt.Printf("File:       %s\n", fs.Arg(0))
	fmt.Printf("Features:   %d (%d skipped)\n", ds.Features, ds.Skipped)
	fmt.Printf("Polygons:   %d\n", tess.PolygonCount())
	fmt.Printf("Vertices:   %d\n", tess.VertexCount())
	fmt.Printf("Triangles:  %d\n", tess.TotalTriangleCount())
	fmt.Printf("Index type: %s (%d bytes/index)\n", tess.Indices().Type, tess.Indices().ElementSize())
	if !ds.Bounds.IsEmpty() {
		fmt.Printf("Bounds:     [%g, %g] x [%g, %g]\n",
			ds.Bounds.X.Lo, ds.Bounds.X.Hi, ds.Bounds.Y.Lo, ds.Bounds.Y.Hi)
	}

	holes := 0
	for _, p := range tess.Polygons() {
		holes += len(p.Holes())
	}
	fmt.Printf("Holes:      %d\n", holes)

	if *top <= 0 || tess.PolygonCount() == 0 {
		return
	}

	order := make([]int, tess.PolygonCount())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return tess.TriangleCount(order[a]) > tess.TriangleCount(order[b])
	})
	if len(order) > *top {
		order = order[:*top]
	}

	fmt.Println()
	fmt.Println("Largest polygons:")
	for _, i := range order {
		fmt.Printf("  #%-6d feature %-6d %6d vertices %6d triangles\n",
			i, ds.FeatureIndex[i], polygon.VertexCount(tess.Polygons()[i]), tess.TriangleCount(i))
	}
}

func cmdExport(args []string) {
	fs, open := newFlagSet("export")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: polytess export [options] <file.geojson> <outdir>")
		os.Exit(1)
	}

	s, err := open(fs.Arg(0))
	if err != nil {
		fail(err)
	}
	defer logger.Sync()

	outDir := fs.Arg(1)
	m, err := export.Write(outDir, s.tess, export.Options{
		Source:   filepath.Base(fs.Arg(0)),
		Extruded: s.cfg.Tessellation.Extruded,
		FP64:     s.cfg.Tessellation.FP64,
	})
	if err != nil {
		fail(err)
	}

	fmt.Printf("Exported %d buffers to %s\n", len(m.Buffers), outDir)
	for _, b := range m.Buffers {
		fmt.Printf("  %-24s %-8s x%d  %d\n", b.File, b.Type, b.Size, b.Count)
	}
}
