package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagOut        = flag.String("out", "", "OBJ output path")
	flagUVMap      = flag.String("uvmap", "", "UV layout PNG output path")
	flagClosed     = flag.Bool("closed", false, "Connect the last point to the first")
	flagRoadWidth  = flag.Float64("road-width", 0, "Road half-width")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
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
	if *flagOut != "" {
		cfg.Output.OBJ = *flagOut
	}
	if *flagUVMap != "" {
		cfg.Output.UVLayout = *flagUVMap
	}
	if *flagClosed {
		cfg.Road.ConnectEnds = true
	}
	if *flagRoadWidth > 0 {
		cfg.Road.Width = float32(*flagRoadWidth)
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}
