package solid

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"github.com/eduu10/ciclo3d/geo"
	"github.com/eduu10/ciclo3d/project"
)

// rawMarker is a marker before projection: the interpolated geographic
// point, the cumulative raw distance at it, and the end index of the raw
// segment it lies on.
type rawMarker struct {
	pos geo.Pos
	at  float64
	seg int
}

// scanned is everything one forward pass over the raw points produces.
type scanned struct {
	total       float64   // raw geodesic length, metres
	cum         []float64 // cumulative raw distance per point
	geoBounds   orb.Bound // lon/lat bounds
	projector   project.Projector
	markers     []rawMarker
	markerLocs  []geo.Vec3 // projected marker locations, parallel to markers
	markerAngle []float64  // projected segment heading at each marker
	kept        geo.Line   // points surviving the distance filter
	keptDist    []float64  // kept-to-kept distances
	smoothTotal float64
	minDist     float64
}

// scan walks the raw points once: accumulates distance and geographic
// bounds, interpolates marker positions, selects the projection, and applies
// the distance-threshold filter.
func scan(line geo.Line, opts Options) (*scanned, error) {
	s := &scanned{
		cum: make([]float64, len(line)),
		geoBounds: orb.Bound{
			Min: orb.Point{line[0].Lon, line[0].Lat},
			Max: orb.Point{line[0].Lon, line[0].Lat},
		},
	}

	interval := opts.MarkerInterval
	var md float64 // distance since the last marker
	for i := 1; i < len(line); i++ {
		d := geo.Distance(line[i-1], line[i])

		// markers fall wherever the accumulated distance reaches the
		// interval; the overshoot carries into the next segment so spacing
		// stays uniform across segment boundaries
		if interval > 0 {
			used := 0.0
			for md+(d-used) >= interval-1e-9 {
				at := used + (interval - md)
				frac := at / d
				s.markers = append(s.markers, rawMarker{
					pos: lerp(line[i-1], line[i], frac),
					at:  s.cum[i-1] + at,
					seg: i,
				})
				used = at
				md = 0
			}
			md += d - used
		}

		s.total += d
		s.cum[i] = s.total
		s.geoBounds = s.geoBounds.Extend(orb.Point{line[i].Lon, line[i].Lat})
	}

	mid := s.geoBounds.Center()
	projector, err := project.For(opts.Shape, opts.Proj, opts.Projection, geo.Pos{Lat: mid[1], Lon: mid[0]}, s.total)
	if err != nil {
		return nil, err
	}
	s.projector = projector

	// marker locations interpolate along the original geometry, so their
	// ratios use the raw cumulative distances, not the smoothed ones
	for _, m := range s.markers {
		loc, err := projector.Project(m.pos, ratio(m.at, s.total))
		if err != nil {
			return nil, err
		}
		a, err := projector.Project(line[m.seg-1], ratio(s.cum[m.seg-1], s.total))
		if err != nil {
			return nil, err
		}
		b, err := projector.Project(line[m.seg], ratio(s.cum[m.seg], s.total))
		if err != nil {
			return nil, err
		}
		s.markerLocs = append(s.markerLocs, loc)
		s.markerAngle = append(s.markerAngle, a.Angle(b))
	}

	if err := s.smooth(line, opts); err != nil {
		return nil, err
	}
	return s, nil
}

// smooth derives the minimum inter-point span and drops raw points closer
// than it to the last kept point. The first point is always kept; the last
// is kept only when it clears the span.
func (s *scanned) smooth(line geo.Line, opts Options) error {
	switch opts.Smooth {
	case SmoothFixed:
		s.minDist = opts.SmoothSpan
	default:
		scale, err := s.previewScale(opts)
		if err != nil {
			return err
		}
		s.minDist = math.Floor(opts.Buffer / scale)
	}

	s.kept = geo.Line{line[0]}
	for i := 1; i < len(line); i++ {
		d := geo.Distance(s.kept.End(), line[i])
		if s.minDist == 0 || d >= s.minDist {
			s.kept = append(s.kept, line[i])
			s.keptDist = append(s.keptDist, d)
			s.smoothTotal += d
		}
	}
	if len(s.kept) < 2 {
		return fmt.Errorf("%w: smoothing span %vm leaves %d of %d points", ErrInvalidOption, s.minDist, len(s.kept), len(line))
	}
	return nil
}

// previewScale estimates the bed-fit scale before projection, so the span
// guarantees adjacent stations end up at least one ribbon half-width apart.
func (s *scanned) previewScale(opts Options) (float64, error) {
	switch opts.Shape {
	case project.Linear:
		return opts.bedFit(s.total, 0), nil
	case project.Ring:
		r := s.total / (2 * math.Pi)
		return opts.bedFit(2*r, 2*r), nil
	default:
		google, err := project.NewMapProjector(project.GoogleDef)
		if err != nil {
			return 0, err
		}
		lo, err := google.Project(geo.Pos{Lon: s.geoBounds.Min[0], Lat: s.geoBounds.Min[1]}, 0)
		if err != nil {
			return 0, err
		}
		hi, err := google.Project(geo.Pos{Lon: s.geoBounds.Max[0], Lat: s.geoBounds.Max[1]}, 0)
		if err != nil {
			return 0, err
		}
		return opts.bedFit(hi.X-lo.X, hi.Y-lo.Y), nil
	}
}

func lerp(a, b geo.Pos, t float64) geo.Pos {
	return geo.Pos{
		Lat: a.Lat + (b.Lat-a.Lat)*t,
		Lon: a.Lon + (b.Lon-a.Lon)*t,
		Ele: a.Ele + (b.Ele-a.Ele)*t,
	}
}

func ratio(d, total float64) float64 {
	if total == 0 {
		return 0
	}
	return d / total
}
