package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/polytess/pkg/tesselator"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Tessellation.IndexType != "uint32" {
		t.Errorf("expected index type uint32, got %s", cfg.Tessellation.IndexType)
	}
	if cfg.Tessellation.Extruded {
		t.Error("expected extruded to be false by default")
	}
	if cfg.Tessellation.FP64 {
		t.Error("expected fp64 to be false by default")
	}
	if cfg.Tessellation.ElevationScale != 1 {
		t.Errorf("expected elevation scale 1, got %v", cfg.Tessellation.ElevationScale)
	}
	if cfg.Tessellation.HeightProperty != "height" {
		t.Errorf("expected height property 'height', got %s", cfg.Tessellation.HeightProperty)
	}
	if cfg.Tessellation.FillColor != "black" {
		t.Errorf("expected fill color 'black', got %s", cfg.Tessellation.FillColor)
	}

	if cfg.Viewer.Width != 1280 || cfg.Viewer.Height != 720 {
		t.Errorf("expected viewer 1280x720, got %dx%d", cfg.Viewer.Width, cfg.Viewer.Height)
	}
	if !cfg.Viewer.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
tessellation:
  index_type: uint16
  extruded: true
  fp64: true
  wireframe: true
  elevation_scale: 2.5
  height_property: levels
  color_property: colour
  fill_color: "#336699"

viewer:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

logging:
  level: "debug"
  log_file: "polytess.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	tc := cfg.Tessellation
	if tc.IndexType != "uint16" || !tc.Extruded || !tc.FP64 || !tc.Wireframe {
		t.Errorf("unexpected tessellation flags: %+v", tc)
	}
	if tc.ElevationScale != 2.5 {
		t.Errorf("expected elevation scale 2.5, got %v", tc.ElevationScale)
	}
	if tc.HeightProperty != "levels" || tc.ColorProperty != "colour" {
		t.Errorf("unexpected property names: %q, %q", tc.HeightProperty, tc.ColorProperty)
	}
	if tc.FillColor != "#336699" {
		t.Errorf("expected fill color #336699, got %s", tc.FillColor)
	}

	it, err := tc.ParsedIndexType()
	if err != nil || it != tesselator.Uint16 {
		t.Errorf("ParsedIndexType() = %v, %v; want uint16", it, err)
	}

	if cfg.Viewer.Width != 1920 || cfg.Viewer.Height != 1080 {
		t.Errorf("expected viewer 1920x1080, got %dx%d", cfg.Viewer.Width, cfg.Viewer.Height)
	}
	if !cfg.Viewer.Fullscreen || cfg.Viewer.VSync {
		t.Errorf("unexpected viewer flags: %+v", cfg.Viewer)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "polytess.log" {
		t.Errorf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("tessellation:\n  fp64: true\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if !cfg.Tessellation.FP64 {
		t.Error("expected fp64 from file")
	}
	if cfg.Tessellation.IndexType != "uint32" {
		t.Errorf("expected default index type to survive, got %s", cfg.Tessellation.IndexType)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "viewer:\n  width: not a number\n  invalid syntax here\n"},
		{"bad index type", "tessellation:\n  index_type: uint8\n"},
		{"negative elevation", "tessellation:\n  elevation_scale: -1\n"},
		{"zero size", "viewer:\n  width: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if _, err := LoadFile(configPath); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile("config.yaml", []byte("viewer:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Tessellation.Extruded = true
	cfg.Tessellation.IndexType = "uint16"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if !loaded.Tessellation.Extruded || loaded.Tessellation.IndexType != "uint16" {
		t.Errorf("saved settings not restored: %+v", loaded.Tessellation)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "index flag",
			setup: func() { *flagIndexType = "uint16" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Tessellation.IndexType != "uint16" {
					t.Errorf("expected index type uint16, got %s", cfg.Tessellation.IndexType)
				}
			},
			teardown: func() { *flagIndexType = "" },
		},
		{
			name: "tessellation flags",
			setup: func() {
				*flagExtruded = true
				*flagFP64 = true
				*flagWireframe = true
			},
			verify: func(t *testing.T, cfg *Config) {
				tc := cfg.Tessellation
				if !tc.Extruded || !tc.FP64 || !tc.Wireframe {
					t.Errorf("expected extruded, fp64 and wireframe, got %+v", tc)
				}
			},
			teardown: func() {
				*flagExtruded = false
				*flagFP64 = false
				*flagWireframe = false
			},
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Viewer.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Viewer.Width != 2560 || cfg.Viewer.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Viewer.Width, cfg.Viewer.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
viewer:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from flag, height from file.
	if cfg.Viewer.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Viewer.Width)
	}
	if cfg.Viewer.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Viewer.Height)
	}
}
