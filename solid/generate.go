// Package solid converts a GPS track into a watertight printable solid: a
// raised ribbon following the track on a flat base, plus optional distance
// markers. One call to Generate owns all intermediate state and returns the
// finished artifact.
package solid

import (
	"fmt"

	"github.com/eduu10/ciclo3d/geo"
)

// Progress is called at phase boundaries. It must be fast; the generator
// never blocks on it.
type Progress func(stage string, percent int)

// Generate runs the whole pipeline: scan, project, fit, build. The input
// line is not mutated. On error no artifact is returned.
func Generate(line geo.Line, opts Options, progress Progress) (*Artifact, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(line) < 2 {
		return nil, fmt.Errorf("%w: track has %d points, need 2", ErrInvalidOption, len(line))
	}
	report := func(stage string, pct int) {
		if progress != nil {
			progress(stage, pct)
		}
	}

	if opts.ZOverride {
		flat := make(geo.Line, len(line))
		for i, p := range line {
			p.Ele = opts.ZConstant
			flat[i] = p
		}
		line = flat
	}

	s, err := scan(line, opts)
	if err != nil {
		return nil, err
	}
	report("scan", 30)

	// bulk projection over the smoothed points, ratios against the
	// smoothed total
	points := make([]geo.Vec3, len(s.kept))
	var bounds geo.Bounds
	var cd float64
	for i, p := range s.kept {
		if i > 0 {
			cd += s.keptDist[i-1]
		}
		v, err := s.projector.Project(p, ratio(cd, s.smoothTotal))
		if err != nil {
			return nil, err
		}
		points[i] = v
		if i == 0 {
			bounds = geo.NewBounds(v)
		} else {
			bounds.Extend(v)
		}
	}
	if opts.RegionFit {
		bounds.MinX = opts.RegionMinX
		bounds.MaxX = opts.RegionMaxX
		bounds.MinY = opts.RegionMinY
		bounds.MaxY = opts.RegionMaxY
	}
	report("project", 50)

	fit := newFitter(bounds, s.geoBounds, opts)
	stations := make([]geo.Vec3, len(points))
	for i, v := range points {
		stations[i] = fit.apply(v)
	}
	report("fit", 70)

	mesh := buildPath(stations, opts.Buffer)
	markers := make([]Marker, len(s.markers))
	for i := range s.markers {
		loc := fit.apply(s.markerLocs[i])
		markers[i] = Marker{
			X:           loc.X,
			Y:           loc.Y,
			Z:           loc.Z,
			Orientation: s.markerAngle[i],
			Width:       2*opts.Buffer + 2,
		}
	}
	report("build", 90)

	artifact := &Artifact{
		Vertices:      mesh.Vertices,
		Triangles:     mesh.Triangles,
		Markers:       markers,
		Bounds:        bounds,
		TotalDistance: s.total,
		Scale:         fit.scale,
		Bed:           Bed{X: opts.BedX, Y: opts.BedY},
	}
	report("done", 100)
	return artifact, nil
}
