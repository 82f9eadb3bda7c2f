package solid

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/eduu10/ciclo3d/geo"
	"github.com/eduu10/ciclo3d/project"
)

// fitter centres the projected track, scales it onto the bed and applies
// vertical exaggeration and the base thickness.
type fitter struct {
	scale   float64
	zscale  float64
	centerX float64
	centerY float64
	zoff    float64
	opts    Options
}

func newFitter(b geo.Bounds, geoBounds orb.Bound, opts Options) fitter {
	f := fitter{
		scale:   opts.bedFit(b.MaxX-b.MinX, b.MaxY-b.MinY),
		centerX: b.CenterX(),
		centerY: b.CenterY(),
		opts:    opts,
	}

	// a custom projection is not necessarily isotropic, so the vertical
	// scale comes from the true geodesic height of the bounds instead
	f.zscale = f.scale
	if opts.Shape == project.Map && opts.Proj == project.Custom {
		span := geo.Distance(
			geo.Pos{Lat: geoBounds.Min[1], Lon: geoBounds.Min[0]},
			geo.Pos{Lat: geoBounds.Max[1], Lon: geoBounds.Min[0]},
		)
		if span > 0 {
			f.zscale = (opts.BedY - 2*opts.Buffer) / span
		}
	}

	if opts.ZCut || b.MinZ <= 0 {
		f.zoff = math.Floor(b.MinZ - 1)
	}
	return f
}

func (f fitter) apply(v geo.Vec3) geo.Vec3 {
	return geo.Vec3{
		X: f.scale * (v.X - f.centerX),
		Y: f.scale * (v.Y - f.centerY),
		Z: f.zscale*(v.Z-f.zoff)*f.opts.Vertical + f.opts.Base,
	}
}
