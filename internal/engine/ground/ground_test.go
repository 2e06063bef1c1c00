package ground

import (
	"testing"

	"github.com/Faultbox/midgard-road/internal/config"
	"github.com/Faultbox/midgard-road/internal/engine/picking"
	"github.com/Faultbox/midgard-road/internal/engine/road"
	"github.com/Faultbox/midgard-road/pkg/math"
)

func TestFromConfig(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.GroundConfig
		wantQuery bool
		wantHF    bool
		wantErr   bool
	}{
		{"none", config.GroundConfig{Type: config.GroundNone}, false, false, false},
		{"plane", config.GroundConfig{Type: config.GroundPlane, PlaneHeight: 3}, true, false, false},
		{"heightfield", config.GroundConfig{
			Type: config.GroundHeightfield,
			Heightfield: config.HeightfieldConfig{
				CellSize: 1,
				Heights:  [][]float32{{0, 0}, {0, 0}},
			},
		}, true, true, false},
		{"bad heightfield", config.GroundConfig{
			Type:        config.GroundHeightfield,
			Heightfield: config.HeightfieldConfig{CellSize: 1, Heights: [][]float32{{0}}},
		}, false, false, true},
		{"unknown", config.GroundConfig{Type: "water"}, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := FromConfig(tt.cfg, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromConfig error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if (g.Query() != nil) != tt.wantQuery {
				t.Errorf("Query() = %v, want non-nil %v", g.Query(), tt.wantQuery)
			}
			if (g.Heightfield != nil) != tt.wantHF {
				t.Errorf("Heightfield = %v, want non-nil %v", g.Heightfield, tt.wantHF)
			}
		})
	}
}

func TestPlaneGroundDrivesRoad(t *testing.T) {
	g, err := FromConfig(config.GroundConfig{Type: config.GroundPlane, PlaneHeight: 2}, nil)
	if err != nil {
		t.Fatal(err)
	}

	cfg := road.DefaultConfig()
	cfg.Points = []math.Vec3{{Y: 7}, {X: 10, Y: 7}}
	r := road.New(cfg, g.Query(), nil)
	report, err := r.Refresh()
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if report.GroundMisses != 0 {
		t.Errorf("GroundMisses = %d, want 0", report.GroundMisses)
	}

	m := r.Mesh()
	for i := range m.Vertices {
		if y := m.WorldVertex(i).Y; y < 2.09 || y > 2.11 {
			t.Errorf("vertex %d world y = %v, want 2.1", i, y)
		}
	}
}

func TestPick(t *testing.T) {
	down := picking.Ray{Origin: math.Vec3{X: 1, Y: 10, Z: 1}, Direction: math.Vec3{Y: -1}}

	none, _ := FromConfig(config.GroundConfig{Type: config.GroundNone}, nil)
	if hit, ok := none.Pick(down); !ok || hit != (math.Vec3{X: 1, Z: 1}) {
		t.Errorf("Pick without ground = %+v, %v; want y=0 plane", hit, ok)
	}

	plane, _ := FromConfig(config.GroundConfig{Type: config.GroundPlane, PlaneHeight: 4}, nil)
	if hit, ok := plane.Pick(down); !ok || hit.Y != 4 {
		t.Errorf("Pick on plane = %+v, %v; want y=4", hit, ok)
	}

	hf, _ := FromConfig(config.GroundConfig{
		Type: config.GroundHeightfield,
		Heightfield: config.HeightfieldConfig{
			CellSize: 2,
			Heights:  [][]float32{{3, 3}, {3, 3}},
		},
	}, nil)
	if hit, ok := hf.Pick(down); !ok || hit.Y < 2.999 || hit.Y > 3.001 {
		t.Errorf("Pick on heightfield = %+v, %v; want y=3", hit, ok)
	}

	up := picking.Ray{Origin: math.Vec3{Y: 10}, Direction: math.Vec3{Y: 1}}
	if _, ok := plane.Pick(up); ok {
		t.Error("Pick with a ray pointing away reported a hit")
	}
}
