// Package export writes finished road meshes to files.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-road/internal/engine/road"
)

// WriteOBJ writes m as a Wavefront OBJ object in world space.
func WriteOBJ(w io.Writer, m *road.Mesh, name string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# midgard-road: %d segments\n", m.SegmentCount())
	fmt.Fprintf(bw, "o %s\n", name)

	for i := range m.Vertices {
		v := m.WorldVertex(i)
		fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	for _, uv := range m.UVs {
		fmt.Fprintf(bw, "vt %g %g\n", uv.X, uv.Y)
	}
	for _, n := range m.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
	}

	if m.Material != "" {
		fmt.Fprintf(bw, "usemtl %s\n", m.Material)
	}

	hasUV := len(m.UVs) == len(m.Vertices)
	hasNormal := len(m.Normals) == len(m.Vertices)
	for t := 0; t+2 < len(m.Indices); t += 3 {
		bw.WriteString("f")
		for _, idx := range m.Indices[t : t+3] {
			// OBJ indices are 1-based.
			i := idx + 1
			switch {
			case hasUV && hasNormal:
				fmt.Fprintf(bw, " %d/%d/%d", i, i, i)
			case hasUV:
				fmt.Fprintf(bw, " %d/%d", i, i)
			case hasNormal:
				fmt.Fprintf(bw, " %d//%d", i, i)
			default:
				fmt.Fprintf(bw, " %d", i)
			}
		}
		bw.WriteString("\n")
	}

	return bw.Flush()
}

// OBJSink is a road.MeshSink that writes every installed mesh to Path.
type OBJSink struct {
	Path string
	Name string

	log     *zap.Logger
	written int
}

// NewOBJSink creates a sink writing to path.
func NewOBJSink(path string, log *zap.Logger) *OBJSink {
	if log == nil {
		log = zap.NewNop()
	}
	return &OBJSink{Path: path, Name: "road", log: log}
}

// Written returns how many meshes have been written.
func (s *OBJSink) Written() int {
	return s.written
}

// Release is a no-op: the file is overwritten by the next Install.
func (s *OBJSink) Release(*road.Mesh) {}

// Install writes m to the sink's path.
func (s *OBJSink) Install(m *road.Mesh) error {
	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("creating obj file: %w", err)
	}
	defer f.Close()

	if err := WriteOBJ(f, m, s.Name); err != nil {
		return fmt.Errorf("writing obj file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing obj file: %w", err)
	}

	s.written++
	s.log.Info("road mesh exported",
		zap.String("path", s.Path),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("triangles", len(m.Indices)/3))
	return nil
}
