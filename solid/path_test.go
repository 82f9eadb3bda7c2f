package solid

import (
	"math"
	"testing"

	"github.com/eduu10/ciclo3d/geo"
)

// meshVolume is the signed volume of a closed mesh, positive when the
// winding faces outward.
func meshVolume(m Mesh) float64 {
	var total float64
	for _, t := range m.Triangles {
		v0, v1, v2 := m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
		total += v0.X*(v1.Y*v2.Z-v1.Z*v2.Y) +
			v0.Y*(v1.Z*v2.X-v1.X*v2.Z) +
			v0.Z*(v1.X*v2.Y-v1.Y*v2.X)
	}
	return total / 6
}

func checkIndices(t *testing.T, m Mesh) {
	t.Helper()
	for i, tri := range m.Triangles {
		for _, idx := range tri {
			if idx < 0 || idx >= len(m.Vertices) {
				t.Fatalf("triangle %d index %d out of range (%d vertices)", i, idx, len(m.Vertices))
			}
		}
	}
}

func TestTwoStationCounts(t *testing.T) {
	m := buildPath([]geo.Vec3{{X: 0, Y: 0, Z: 5}, {X: 100, Y: 0, Z: 5}}, 5)
	if len(m.Vertices) != 8 {
		t.Errorf("vertices = %d, want 8", len(m.Vertices))
	}
	if len(m.Triangles) != 12 {
		t.Errorf("triangles = %d, want 12", len(m.Triangles))
	}
	checkIndices(t, m)
}

func TestStraightRibbonIsBox(t *testing.T) {
	// two flat stations make a rectangular box: length x 2*buffer x z
	m := buildPath([]geo.Vec3{{X: 0, Y: 0, Z: 5}, {X: 100, Y: 0, Z: 5}}, 5)
	want := 100.0 * 10 * 5
	if got := meshVolume(m); math.Abs(got-want) > 1e-9 {
		t.Errorf("volume = %v, want %v (outward winding)", got, want)
	}
	var b geo.Bounds
	for i, v := range m.Vertices {
		if i == 0 {
			b = geo.NewBounds(v)
		} else {
			b.Extend(v)
		}
	}
	if b.MaxX-b.MinX != 100 || b.MaxY-b.MinY != 10 || b.MaxZ-b.MinZ != 5 {
		t.Errorf("box = %+v", b)
	}
}

func TestTriangleCountFormula(t *testing.T) {
	// 2 + 2 + 8*(n-1) for n accepted stations
	stations := []geo.Vec3{}
	for i := 0; i < 7; i++ {
		stations = append(stations, geo.Vec3{X: float64(i) * 50, Y: float64(i%2) * 10, Z: 3})
	}
	m := buildPath(stations, 2)
	n := len(m.Vertices) / 4
	if len(m.Vertices)%4 != 0 {
		t.Fatalf("vertices = %d, not a multiple of 4", len(m.Vertices))
	}
	if want := 2 + 2 + 8*(n-1); len(m.Triangles) != want {
		t.Errorf("triangles = %d, want %d for %d stations", len(m.Triangles), want, n)
	}
	checkIndices(t, m)
}

func TestMitredCorner(t *testing.T) {
	m := buildPath([]geo.Vec3{{X: 0, Y: 0, Z: 2}, {X: 100, Y: 0, Z: 2}, {X: 100, Y: 100, Z: 2}}, 1)
	if len(m.Vertices) != 12 {
		t.Fatalf("vertices = %d, want 12", len(m.Vertices))
	}
	if len(m.Triangles) != 20 {
		t.Errorf("triangles = %d, want 20", len(m.Triangles))
	}
	// corner cross-section spans 2*buffer/cos(pi/4) = 2*sqrt(2)
	l, r := m.Vertices[4], m.Vertices[5]
	span := math.Hypot(l.X-r.X, l.Y-r.Y)
	if math.Abs(span-2*math.Sqrt2) > 1e-9 {
		t.Errorf("corner span = %v, want %v", span, 2*math.Sqrt2)
	}
	// the mitre bisects the right angle, so both offsets sit diagonal to
	// the corner station
	if math.Abs(math.Abs(l.X-100)-math.Abs(l.Y)) > 1e-9 {
		t.Errorf("corner offset not on bisector: %+v", l)
	}
}

func TestMitreClamp(t *testing.T) {
	// 150 degree turn then straight on: the mitre would reach
	// buffer/cos(75) but is clamped to 2*buffer
	m := buildPath([]geo.Vec3{
		{X: 0, Y: 0, Z: 1},
		{X: 100, Y: 0, Z: 1},
		{X: 13.4, Y: 50, Z: 1},
		{X: -73.2, Y: 100, Z: 1},
	}, 3)
	if len(m.Vertices) != 16 {
		t.Fatalf("vertices = %d, want 16 (no station dropped)", len(m.Vertices))
	}
	l, r := m.Vertices[4], m.Vertices[5]
	span := math.Hypot(l.X-r.X, l.Y-r.Y)
	if math.Abs(span-4*3) > 1e-6 {
		t.Errorf("corner span = %v, want clamped to %v", span, 4*3)
	}
}

func TestReversalCollapse(t *testing.T) {
	// near-180 reversal drops the middle station
	m := buildPath([]geo.Vec3{
		{X: 0, Y: 0, Z: 1},
		{X: 100, Y: 0, Z: 1},
		{X: 0, Y: 0.5, Z: 1},
	}, 2)
	if len(m.Vertices) != 8 {
		t.Errorf("vertices = %d, want 8 (middle station dropped)", len(m.Vertices))
	}
	checkIndices(t, m)
}

func TestZigZagCollapse(t *testing.T) {
	// two consecutive sharp reversals: the first oscillating station goes
	m := buildPath([]geo.Vec3{
		{X: 0, Y: 0, Z: 1},
		{X: 100, Y: 0, Z: 1},
		{X: 0, Y: 1, Z: 1},
		{X: 100, Y: 2, Z: 1},
		{X: 200, Y: 2, Z: 1},
	}, 2)
	if len(m.Vertices) >= 5*4 {
		t.Errorf("vertices = %d, want oscillation collapsed", len(m.Vertices))
	}
	checkIndices(t, m)
}

func TestLastStationKept(t *testing.T) {
	// sharp turn right before the end never drops the final station
	m := buildPath([]geo.Vec3{
		{X: 0, Y: 0, Z: 1},
		{X: 100, Y: 0, Z: 1},
		{X: 0, Y: 0.5, Z: 1},
	}, 2)
	last := m.Vertices[len(m.Vertices)-1]
	if math.Hypot(last.X-0, last.Y-0.5) > 2*2*2 {
		t.Errorf("final station missing, last vertex %+v", last)
	}
}
