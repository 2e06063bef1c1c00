// Package main builds a road mesh from a config file and exports it.
//
// Usage:
//
//	roadgen -config road.yaml -out road.obj -uvmap road_uv.png
//
// -out - writes the OBJ to stdout.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-road/internal/config"
	"github.com/Faultbox/midgard-road/internal/engine/ground"
	"github.com/Faultbox/midgard-road/internal/engine/lightmap"
	"github.com/Faultbox/midgard-road/internal/engine/road"
	"github.com/Faultbox/midgard-road/internal/export"
	"github.com/Faultbox/midgard-road/internal/logger"
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

	if err := run(cfg); err != nil {
		logger.Error("build failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	g, err := ground.FromConfig(cfg.Ground, logger.Named("ground"))
	if err != nil {
		return fmt.Errorf("ground: %w", err)
	}

	rc, err := cfg.RoadConfig()
	if err != nil {
		return err
	}
	if len(rc.Points) < 2 {
		return fmt.Errorf("road needs at least 2 points, config has %d", len(rc.Points))
	}

	var opts []road.Option
	opts = append(opts, road.WithLogger(logger.Named("road")))
	if cfg.Lightmap.Enabled {
		hook := lightmap.NewHook(cfg.Lightmap.TileSize, cfg.Lightmap.MaxSize, logger.Named("lightmap"))
		opts = append(opts, road.WithPostBuild(hook))
	}

	toStdout := cfg.Output.OBJ == "-"
	var sink road.MeshSink
	var objSink *export.OBJSink
	mem := &road.MemorySink{}
	if cfg.Output.OBJ == "" || toStdout {
		sink = mem
	} else {
		objSink = export.NewOBJSink(cfg.Output.OBJ, logger.Named("export"))
		sink = objSink
	}

	r := road.New(rc, g.Query(), sink, opts...)
	report, err := r.Refresh()
	if err != nil {
		return err
	}

	logger.Info("road built",
		zap.Int("segments", report.Segments),
		zap.Int("vertices", report.Vertices),
		zap.Ints("parallelJoints", report.ParallelJoints),
		zap.Int("groundMisses", report.GroundMisses),
		zap.Bool("uvNormalized", report.UVNormalized),
		zap.Duration("elapsed", report.Elapsed),
	)

	mesh := r.Mesh()
	if mesh == nil {
		return fmt.Errorf("no mesh was built")
	}

	if toStdout {
		w := bufio.NewWriter(os.Stdout)
		if err := export.WriteOBJ(w, mesh, "road"); err != nil {
			return fmt.Errorf("writing obj: %w", err)
		}
		if err := w.Flush(); err != nil {
			return fmt.Errorf("writing obj: %w", err)
		}
	} else if objSink != nil {
		logger.Info("obj written", zap.String("path", cfg.Output.OBJ))
	}

	if cfg.Output.UVLayout != "" {
		if err := export.SaveUVLayout(cfg.Output.UVLayout, mesh.UVs, mesh.Indices, cfg.Output.UVLayoutSize); err != nil {
			return fmt.Errorf("uv layout: %w", err)
		}
		logger.Info("uv layout written", zap.String("path", cfg.Output.UVLayout))

		if len(mesh.UV2) > 0 {
			path := lightmapLayoutPath(cfg.Output.UVLayout)
			if err := export.SaveUVLayout(path, mesh.UV2, mesh.Indices, cfg.Output.UVLayoutSize); err != nil {
				return fmt.Errorf("lightmap layout: %w", err)
			}
			logger.Info("lightmap layout written", zap.String("path", path))
		}
	}

	return nil
}

// lightmapLayoutPath derives "name_uv2.png" from "name.png".
func lightmapLayoutPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_uv2" + ext
}
