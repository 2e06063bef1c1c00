// Package main is the interactive road preview.
//
// Left click places a point on the ground, right drag orbits, the wheel
// zooms and the arrow keys pan. R rebuilds, C toggles the loop, U/V/S toggle
// the UV flips and swap, Backspace removes the last point, F frames the road
// and F5 saves the config. G shows the wireframe overlay, L shows the
// lightmap UVs and F12 saves a screenshot.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-road/internal/config"
	"github.com/Faultbox/midgard-road/internal/logger"
	"github.com/Faultbox/midgard-road/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Midgard Road Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	v, err := viewer.New(cfg, logger.Named("viewer"))
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
