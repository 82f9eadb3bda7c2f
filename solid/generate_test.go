package solid

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/eduu10/ciclo3d/geo"
	"github.com/eduu10/ciclo3d/project"
)

func vertexBounds(vs []geo.Vec3) geo.Bounds {
	b := geo.NewBounds(vs[0])
	for _, v := range vs[1:] {
		b.Extend(v)
	}
	return b
}

func TestGenerateTwoPointLinear(t *testing.T) {
	line := geo.Line{
		{Lat: 0, Lon: 0, Ele: 10},
		{Lat: 0, Lon: 0.001, Ele: 10},
	}
	opts := Default()
	opts.Shape = project.Linear
	opts.Buffer = 5
	opts.Vertical = 1
	opts.Base = 1
	opts.BedX, opts.BedY = 100, 100

	var stages []string
	var last int
	a, err := Generate(line, opts, func(stage string, pct int) {
		stages = append(stages, stage)
		last = pct
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if math.Abs(a.TotalDistance-111.32) > 0.01 {
		t.Errorf("total distance = %v, want 111.32", a.TotalDistance)
	}
	if len(a.Vertices) != 8 {
		t.Errorf("vertices = %d, want 8", len(a.Vertices))
	}
	if len(a.Triangles) != 12 {
		t.Errorf("triangles = %d, want 12", len(a.Triangles))
	}
	if got := len(a.STL()); got != 684 {
		t.Errorf("stl = %d bytes, want 684", got)
	}

	// the track fills the 90mm fit area lengthwise, the ribbon is 10mm
	// wide, and the top sits at 10*scale + base
	b := vertexBounds(a.Vertices)
	if math.Abs((b.MaxY-b.MinY)-90) > 1e-6 {
		t.Errorf("length = %v, want 90", b.MaxY-b.MinY)
	}
	if math.Abs((b.MaxX-b.MinX)-10) > 1e-6 {
		t.Errorf("width = %v, want 10", b.MaxX-b.MinX)
	}
	if math.Abs(b.MaxZ-(10*a.Scale+1)) > 1e-9 {
		t.Errorf("top = %v, want %v", b.MaxZ, 10*a.Scale+1)
	}
	if math.Abs(a.Scale-90/a.TotalDistance) > 1e-9 {
		t.Errorf("scale = %v", a.Scale)
	}

	if len(stages) != 5 || stages[4] != "done" || last != 100 {
		t.Errorf("progress = %v ending %d", stages, last)
	}
}

func TestGenerateRightAngleMap(t *testing.T) {
	line := geo.Line{
		{Lat: 0, Lon: 0, Ele: 0},
		{Lat: 0, Lon: 0.001, Ele: 0},
		{Lat: 0.001, Lon: 0.001, Ele: 0},
	}
	opts := Default()
	opts.Buffer = 1
	opts.BedX, opts.BedY = 100, 100

	a, err := Generate(line, opts, nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(a.Vertices) != 12 {
		t.Fatalf("vertices = %d, want 12", len(a.Vertices))
	}
	if len(a.Triangles) != 20 {
		t.Errorf("triangles = %d, want 20", len(a.Triangles))
	}
	// mitred corner: cross-section spans 2*buffer*sqrt(2)
	l, r := a.Vertices[4], a.Vertices[5]
	span := math.Hypot(l.X-r.X, l.Y-r.Y)
	if math.Abs(span-2*math.Sqrt2) > 1e-6 {
		t.Errorf("corner span = %v, want %v", span, 2*math.Sqrt2)
	}
}

func TestGenerateMarkers(t *testing.T) {
	var line geo.Line
	for i := 0; i < 46; i++ {
		line = append(line, geo.Pos{Lat: 0, Lon: float64(i) * 0.001, Ele: 50})
	}
	opts := Default()
	opts.Buffer = 2
	opts.MarkerInterval = 1000

	a, err := Generate(line, opts, nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(a.Markers) != 5 {
		t.Fatalf("markers = %d, want 5 on a %.0fm track", len(a.Markers), a.TotalDistance)
	}
	for i, m := range a.Markers {
		if m.Width != 2*2+2 {
			t.Errorf("marker %d width = %v, want 6", i, m.Width)
		}
		// an eastward track heads along +x after projection
		if math.Abs(m.Orientation) > 1e-6 {
			t.Errorf("marker %d orientation = %v, want 0", i, m.Orientation)
		}
	}
	// markers ride along the track at uniform x spacing
	dx := a.Markers[1].X - a.Markers[0].X
	for i := 2; i < len(a.Markers); i++ {
		if math.Abs((a.Markers[i].X-a.Markers[i-1].X)-dx) > 1e-6 {
			t.Errorf("marker spacing uneven at %d", i)
		}
	}
	// marker boxes ride into the STL as extra solids
	if got, want := len(a.STL()), 84+50*(len(a.Triangles)+12*5); got != want {
		t.Errorf("stl = %d bytes, want %d", got, want)
	}
}

func TestGenerateRegionFit(t *testing.T) {
	line := geo.Line{
		{Lat: 0, Lon: 0, Ele: 10},
		{Lat: 0, Lon: 0.001, Ele: 10},
	}
	opts := Default()
	opts.Shape = project.Linear
	opts.Buffer = 5
	opts.BedX, opts.BedY = 100, 100
	opts.RegionFit = true
	opts.RegionMinX, opts.RegionMaxX = -100, 100
	opts.RegionMinY, opts.RegionMaxY = -200, 200

	a, err := Generate(line, opts, nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if want := math.Min(90.0/200, 90.0/400); math.Abs(a.Scale-want) > 1e-12 {
		t.Errorf("scale = %v, want %v from region", a.Scale, want)
	}
	if a.Bounds.MinX != -100 || a.Bounds.MaxY != 200 {
		t.Errorf("bounds = %+v, want region rectangle", a.Bounds)
	}
	// track runs 0..111 in y; the region centre is 0, so the fitted track
	// sits entirely on the positive side
	b := vertexBounds(a.Vertices)
	wantMax := 111.3194907932264 * a.Scale
	if math.Abs(b.MaxY-wantMax) > 0.01 || math.Abs(b.MinY-0) > 0.01 {
		t.Errorf("fitted y = %v..%v, want 0..%v", b.MinY, b.MaxY, wantMax)
	}
}

func TestGenerateZOverride(t *testing.T) {
	line := geo.Line{
		{Lat: 0, Lon: 0, Ele: 100},
		{Lat: 0, Lon: 0.001, Ele: 900},
	}
	opts := Default()
	opts.Shape = project.Linear
	opts.ZOverride = true
	opts.ZConstant = 3

	a, err := Generate(line, opts, nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if a.Bounds.MinZ != 3 || a.Bounds.MaxZ != 3 {
		t.Errorf("z bounds = %v..%v, want 3..3", a.Bounds.MinZ, a.Bounds.MaxZ)
	}
	if line[0].Ele != 100 {
		t.Error("input line mutated")
	}
}

func TestGenerateZCut(t *testing.T) {
	line := geo.Line{
		{Lat: 0, Lon: 0, Ele: -5},
		{Lat: 0, Lon: 0.001, Ele: 10},
	}
	opts := Default()
	opts.Shape = project.Linear

	a, err := Generate(line, opts, nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	// minz <= 0 forces the cut: every ribbon top clears the base
	for i := 2; i < len(a.Vertices); i += 4 {
		if a.Vertices[i].Z <= opts.Base {
			t.Errorf("upper vertex %d at z=%v, want above base", i, a.Vertices[i].Z)
		}
	}
}

func TestGenerateErrors(t *testing.T) {
	line := geo.Line{
		{Lat: 0, Lon: 0, Ele: 1},
		{Lat: 0, Lon: 0.001, Ele: 1},
	}

	bad := Default()
	bad.Vertical = 0.5
	if _, err := Generate(line, bad, nil); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("vertical<1: err = %v", err)
	}

	bad = Default()
	bad.BedX = 10
	if _, err := Generate(line, bad, nil); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("bed<20: err = %v", err)
	}

	bad = Default()
	bad.Buffer = 0.1
	if _, err := Generate(line, bad, nil); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("buffer<0.5: err = %v", err)
	}

	bad = Default()
	bad.Proj = project.Custom
	if _, err := Generate(line, bad, nil); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("empty custom projection: err = %v", err)
	}

	bad = Default()
	bad.Proj = project.Custom
	bad.Projection = "+proj=bogus"
	if _, err := Generate(line, bad, nil); !errors.Is(err, project.ErrUnknownProjection) {
		t.Errorf("bogus projection: err = %v", err)
	}

	if _, err := Generate(line[:1], Default(), nil); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("one point: err = %v", err)
	}
}

func TestArtifactEmitters(t *testing.T) {
	line := geo.Line{
		{Lat: 0, Lon: 0, Ele: 10},
		{Lat: 0, Lon: 0.001, Ele: 10},
	}
	opts := Default()
	opts.Shape = project.Linear
	a, err := Generate(line, opts, nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if pts := a.RawPoints(); len(pts) != 3*len(a.Vertices) {
		t.Errorf("raw points = %d floats", len(pts))
	}
	faces := a.RawFaces()
	if len(faces) != 3*len(a.Triangles) {
		t.Errorf("raw faces = %d indices", len(faces))
	}
	for _, f := range faces {
		if int(f) >= len(a.Vertices) {
			t.Errorf("face index %d out of range", f)
		}
	}

	scad := a.OpenSCAD()
	if !strings.Contains(scad, "polyhedron(") || !strings.Contains(scad, "faces = [") {
		t.Errorf("openscad output missing polyhedron:\n%s", scad)
	}
	js := a.JSCAD(true)
	if !strings.Contains(js, "polyhedron({") || !strings.Contains(js, "triangles: [") {
		t.Errorf("jscad output missing polyhedron:\n%s", js)
	}
}
