package editor

import (
	gomath "math"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-road/internal/config"
	"github.com/Faultbox/midgard-road/internal/engine/road"
	"github.com/Faultbox/midgard-road/pkg/math"
)

func newEditor(t *testing.T, points ...math.Vec3) (*Editor, *road.MemorySink) {
	t.Helper()
	cfg := config.Default()
	rc, err := cfg.RoadConfig()
	if err != nil {
		t.Fatalf("RoadConfig: %v", err)
	}
	rc.Points = points
	sink := &road.MemorySink{}
	r := road.New(rc, road.FlatGround{}, sink)
	return New(cfg, r, nil), sink
}

func TestAddPointRefreshes(t *testing.T) {
	e, sink := newEditor(t, math.Vec3{X: 0})

	if err := e.AddPoint(math.Vec3{X: 10}); err != nil {
		t.Fatalf("AddPoint: %v", err)
	}
	if sink.Installs != 1 {
		t.Fatalf("Installs = %d, want 1", sink.Installs)
	}
	if e.LastReport == nil || e.LastReport.Segments != 1 {
		t.Errorf("LastReport = %+v, want 1 segment", e.LastReport)
	}

	if err := e.AddPoint(math.Vec3{X: 20, Z: 10}); err != nil {
		t.Fatalf("AddPoint: %v", err)
	}
	if sink.Installs != 2 || sink.Releases != 1 {
		t.Errorf("Installs = %d, Releases = %d, want 2 and 1", sink.Installs, sink.Releases)
	}
	if got := e.Road().Mesh().SegmentCount(); got != 2 {
		t.Errorf("SegmentCount = %d, want 2", got)
	}
}

func TestAutoRefreshOff(t *testing.T) {
	e, sink := newEditor(t, math.Vec3{X: 0})
	e.AutoRefresh = false

	if err := e.AddPoint(math.Vec3{X: 10}); err != nil {
		t.Fatalf("AddPoint: %v", err)
	}
	if sink.Installs != 0 {
		t.Errorf("Installs = %d, want 0", sink.Installs)
	}

	if err := e.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if sink.Installs != 1 {
		t.Errorf("Installs = %d after Refresh, want 1", sink.Installs)
	}
}

func TestRemoveLast(t *testing.T) {
	e, sink := newEditor(t, math.Vec3{X: 0}, math.Vec3{X: 10}, math.Vec3{X: 20, Z: 5})
	if err := e.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if err := e.RemoveLast(); err != nil {
		t.Fatalf("RemoveLast: %v", err)
	}
	if got := len(e.Road().Points()); got != 2 {
		t.Fatalf("points = %d, want 2", got)
	}
	if got := e.Road().Mesh().SegmentCount(); got != 1 {
		t.Errorf("SegmentCount = %d, want 1", got)
	}

	// Below two points the existing mesh stays installed.
	if err := e.RemoveLast(); err != nil {
		t.Fatalf("RemoveLast: %v", err)
	}
	if !e.LastReport.Skipped {
		t.Error("expected a skipped refresh with one point")
	}
	if sink.Current == nil {
		t.Error("mesh was released by a skipped refresh")
	}

	if err := e.RemoveLast(); err != nil {
		t.Fatalf("RemoveLast: %v", err)
	}
	if err := e.RemoveLast(); err != nil {
		t.Errorf("RemoveLast on empty path: %v", err)
	}
}

func TestToggles(t *testing.T) {
	e, _ := newEditor(t, math.Vec3{X: 0}, math.Vec3{X: 10}, math.Vec3{X: 10, Z: 10})

	if err := e.ToggleLoop(); err != nil {
		t.Fatalf("ToggleLoop: %v", err)
	}
	if !e.Road().Config().ConnectEnds {
		t.Error("ConnectEnds not set")
	}
	if got := e.Road().Mesh().SegmentCount(); got != 3 {
		t.Errorf("closed SegmentCount = %d, want 3", got)
	}

	before := e.Road().Config()
	for _, fn := range []func() error{e.FlipU, e.FlipV, e.SwapUV} {
		if err := fn(); err != nil {
			t.Fatal(err)
		}
	}
	after := e.Road().Config()
	if after.FlipU == before.FlipU || after.FlipV == before.FlipV || after.SwapUV == before.SwapUV {
		t.Errorf("flags not toggled: before %+v, after %+v", before, after)
	}
}

func TestBounds(t *testing.T) {
	e, _ := newEditor(t)
	if _, _, ok := e.Bounds(); ok {
		t.Error("Bounds ok on empty road")
	}

	e.AutoRefresh = false
	_ = e.AddPoint(math.Vec3{X: -5, Y: 2, Z: 3})
	_ = e.AddPoint(math.Vec3{X: 5, Y: -1, Z: -3})
	min, max, ok := e.Bounds()
	if !ok {
		t.Fatal("Bounds not ok")
	}
	if min != (math.Vec3{X: -5, Y: -1, Z: -3}) || max != (math.Vec3{X: 5, Y: 2, Z: 3}) {
		t.Errorf("point bounds = %v %v", min, max)
	}

	// A built mesh is measured in world space.
	if err := e.Refresh(); err != nil {
		t.Fatal(err)
	}
	min, max, _ = e.Bounds()
	if min.X > -5 || max.X < 5 {
		t.Errorf("mesh bounds X = [%v, %v], want to cover [-5, 5]", min.X, max.X)
	}
	if gomath.Abs(float64(min.Y-0.1)) > 1e-5 || gomath.Abs(float64(max.Y-0.1)) > 1e-5 {
		t.Errorf("mesh bounds Y = [%v, %v], want ground offset 0.1", min.Y, max.Y)
	}
}

func TestSave(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("config dir follows XDG_CONFIG_HOME only on unix")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	e, _ := newEditor(t, math.Vec3{X: 1, Y: 2, Z: 3}, math.Vec3{X: 4, Y: 5, Z: 6})
	if err := e.ToggleLoop(); err != nil {
		t.Fatal(err)
	}
	if err := e.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "midgard-road", config.FileName))
	if err != nil {
		t.Fatalf("reading saved config: %v", err)
	}
	var saved config.Config
	if err := yaml.Unmarshal(data, &saved); err != nil {
		t.Fatalf("parsing saved config: %v", err)
	}
	if !saved.Road.ConnectEnds {
		t.Error("saved connect_ends = false")
	}
	want := []config.Point{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}}
	if len(saved.Road.Points) != 2 || saved.Road.Points[0] != want[0] || saved.Road.Points[1] != want[1] {
		t.Errorf("saved points = %v, want %v", saved.Road.Points, want)
	}
}
