package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagIndexType  = flag.String("index", "", "Index type: uint16 or uint32")
	flagExtruded   = flag.Bool("extruded", false, "Extrude polygons by their height property")
	flagFP64       = flag.Bool("fp64", false, "Emit fp64 low-part position buffers")
	flagWireframe  = flag.Bool("wireframe", false, "Draw ring outlines")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the positional arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagIndexType != "" {
		cfg.Tessellation.IndexType = *flagIndexType
	}
	if *flagExtruded {
		cfg.Tessellation.Extruded = true
	}
	if *flagFP64 {
		cfg.Tessellation.FP64 = true
	}
	if *flagWireframe {
		cfg.Tessellation.Wireframe = true
	}
	if *flagWindowed {
		cfg.Viewer.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Viewer.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Viewer.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Viewer.Height = *flagHeight
	}
}
