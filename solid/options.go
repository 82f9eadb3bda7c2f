package solid

import (
	"errors"
	"fmt"

	"github.com/eduu10/ciclo3d/project"
)

var ErrInvalidOption = errors.New("invalid option")

type SmoothType int

const (
	SmoothAuto  SmoothType = iota // span derived from the bed-fit scale
	SmoothFixed                   // span given by SmoothSpan
)

// Options is the full configuration of one generation. Validate before use.
type Options struct {
	Buffer   float64 // half-width of the ribbon, model mm
	Vertical float64 // vertical exaggeration, >= 1
	BedX     float64 // printable area, mm
	BedY     float64
	Base     float64 // base thickness under the ribbon, mm

	Shape      project.Shape
	Proj       project.Source
	Projection string // proj4 definition when Proj == project.Custom

	ZOverride bool // force every elevation to ZConstant
	ZConstant float64
	ZCut      bool // shift z so the minimum sits just above zero

	RegionFit  bool // replace planar x/y bounds with the region rectangle
	RegionMinX float64
	RegionMaxX float64
	RegionMinY float64
	RegionMaxY float64

	MarkerInterval float64 // geodesic metres between markers, 0 disables

	Smooth     SmoothType
	SmoothSpan float64 // minimum inter-point distance, metres, when fixed
}

// Default is the configuration the CLI starts from: a small desktop printer
// bed and a 2mm ribbon half-width.
func Default() Options {
	return Options{
		Buffer:   2,
		Vertical: 1,
		BedX:     145,
		BedY:     145,
		Base:     1,
		Shape:    project.Map,
		Proj:     project.Google,
		Smooth:   SmoothAuto,
	}
}

func (o Options) Validate() error {
	if o.Buffer < 0.5 {
		return fmt.Errorf("%w: buffer %v < 0.5", ErrInvalidOption, o.Buffer)
	}
	if o.Vertical < 1 {
		return fmt.Errorf("%w: vertical %v < 1", ErrInvalidOption, o.Vertical)
	}
	if o.BedX < 20 || o.BedY < 20 {
		return fmt.Errorf("%w: bed %vx%v smaller than 20mm", ErrInvalidOption, o.BedX, o.BedY)
	}
	if o.BedX <= 2*o.Buffer || o.BedY <= 2*o.Buffer {
		return fmt.Errorf("%w: ribbon %vmm wide leaves no bed", ErrInvalidOption, 2*o.Buffer)
	}
	if o.Shape < project.Map || o.Shape > project.Ring {
		return fmt.Errorf("%w: shape %d", ErrInvalidOption, o.Shape)
	}
	if o.Proj < project.Google || o.Proj > project.UTM {
		return fmt.Errorf("%w: projection source %d", ErrInvalidOption, o.Proj)
	}
	if o.Proj == project.Custom && o.Projection == "" {
		return fmt.Errorf("%w: empty custom projection", ErrInvalidOption)
	}
	if o.MarkerInterval < 0 {
		return fmt.Errorf("%w: marker interval %v", ErrInvalidOption, o.MarkerInterval)
	}
	if o.Smooth == SmoothFixed && o.SmoothSpan < 0 {
		return fmt.Errorf("%w: smooth span %v", ErrInvalidOption, o.SmoothSpan)
	}
	if o.RegionFit && (o.RegionMaxX <= o.RegionMinX || o.RegionMaxY <= o.RegionMinY) {
		return fmt.Errorf("%w: empty region rectangle", ErrInvalidOption)
	}
	return nil
}

// bedFit is the scale fitting an extent of w x h metres into the bed, after
// reserving a ribbon half-width on every side. Axes without extent don't
// constrain the fit.
func (o Options) bedFit(w, h float64) float64 {
	bx := o.BedX - 2*o.Buffer
	by := o.BedY - 2*o.Buffer
	scale := 0.0
	if w > 0 {
		scale = bx / w
	}
	if h > 0 && (scale == 0 || by/h < scale) {
		scale = by / h
	}
	if scale == 0 {
		scale = 1
	}
	return scale
}
