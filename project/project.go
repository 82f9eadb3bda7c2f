// Package project maps geographic points onto the plane. Three shapes: a
// cartographic map projection (any proj4 definition, the "GOOGLE"
// web-mercator sentinel, or an auto-derived UTM zone), a straight linear
// profile, and a closed ring profile.
package project

import (
	"errors"
	"fmt"
	"math"

	"github.com/ctessum/geom/proj"

	"github.com/eduu10/ciclo3d/geo"
)

var ErrUnknownProjection = errors.New("projection not recognised")

type Shape int

const (
	Map Shape = iota
	Linear
	Ring
)

type Source int

const (
	Google Source = iota
	Custom
	UTM
)

// GoogleDef is the proj4 definition behind the "GOOGLE" sentinel, the
// spherical web-mercator used by slippy maps.
const GoogleDef = "+proj=merc +a=6378137 +b=6378137 +lat_ts=0.0 +lon_0=0.0 +x_0=0.0 +y_0=0 +k=1.0 +units=m +no_defs"

const longlatDef = "+proj=longlat +ellps=WGS84 +datum=WGS84 +no_defs"

// UTMZone is the 6 degree longitude zone containing lon.
func UTMZone(lon float64) int {
	return int(math.Floor((lon+180)/6)) + 1
}

// UTMDef synthesises the proj4 definition of the UTM zone containing the
// given midpoint.
func UTMDef(mid geo.Pos) string {
	south := ""
	if mid.Lat < 0 {
		south = " +south"
	}
	return fmt.Sprintf("+proj=utm +zone=%d%s +ellps=WGS84 +datum=WGS84 +units=m +no_defs", UTMZone(mid.Lon), south)
}

// Definition resolves the proj4 definition for a map-shaped generation.
func Definition(src Source, custom string, mid geo.Pos) string {
	switch src {
	case Custom:
		if custom == "GOOGLE" {
			return GoogleDef
		}
		return custom
	case UTM:
		return UTMDef(mid)
	default:
		return GoogleDef
	}
}

// Projector maps one geographic point to the plane. distRatio is the
// cumulative distance at the point divided by the total; the map shape
// ignores it.
type Projector interface {
	Project(p geo.Pos, distRatio float64) (geo.Vec3, error)
}

// For builds the projector for a generation. total is the track length the
// linear and ring shapes stretch over.
func For(shape Shape, src Source, custom string, mid geo.Pos, total float64) (Projector, error) {
	switch shape {
	case Linear:
		return &LinearProjector{Total: total}, nil
	case Ring:
		return &RingProjector{Radius: total / (2 * math.Pi)}, nil
	default:
		return NewMapProjector(Definition(src, custom, mid))
	}
}

// MapProjector runs points through a proj4 forward transform from WGS84
// longitude/latitude.
type MapProjector struct {
	Def       string
	transform proj.Transformer
}

func NewMapProjector(def string) (*MapProjector, error) {
	src, err := proj.Parse(longlatDef)
	if err != nil {
		return nil, fmt.Errorf("parsing longlat: %w", err)
	}
	dst, err := proj.Parse(def)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnknownProjection, def, err)
	}
	t, err := src.NewTransform(dst)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnknownProjection, def, err)
	}
	return &MapProjector{Def: def, transform: t}, nil
}

func (m *MapProjector) Project(p geo.Pos, _ float64) (geo.Vec3, error) {
	x, y, err := m.transform(p.Lon, p.Lat)
	if err != nil {
		return geo.Vec3{}, fmt.Errorf("projecting %v,%v: %w", p.Lon, p.Lat, err)
	}
	return geo.Vec3{X: x, Y: y, Z: p.Ele}, nil
}

// LinearProjector lays the track out as a straight profile, x fixed at zero
// and y the distance travelled.
type LinearProjector struct {
	Total float64
}

func (l *LinearProjector) Project(p geo.Pos, distRatio float64) (geo.Vec3, error) {
	return geo.Vec3{X: 0, Y: distRatio * l.Total, Z: p.Ele}, nil
}

// RingProjector bends the profile around a circle whose circumference is the
// track length.
type RingProjector struct {
	Radius float64
}

func (r *RingProjector) Project(p geo.Pos, distRatio float64) (geo.Vec3, error) {
	t := 2 * math.Pi * distRatio
	return geo.Vec3{X: r.Radius * math.Cos(t), Y: r.Radius * math.Sin(t), Z: p.Ele}, nil
}
