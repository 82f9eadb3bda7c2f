// Package gpx extracts the first track of a GPX document as an ordered line
// of geographic points, plus a summary of the track.
package gpx

import (
	"errors"
	"fmt"
	"os"

	gpxgo "github.com/tkrajina/gpxgo/gpx"

	"github.com/eduu10/ciclo3d/geo"
)

var (
	ErrMalformedXML = errors.New("malformed xml")
	ErrNoTrack      = errors.New("no track in gpx")
	ErrTooFewPoints = errors.New("fewer than 2 track points")
)

// Info is the derived summary of a parsed track.
type Info struct {
	Name         string
	Points       int
	Distance     float64 // metres
	MinEle       float64
	MaxEle       float64
	Gain         float64
	Loss         float64
	HasElevation bool
	Start        geo.Pos
	End          geo.Pos
}

func Load(fpath string, defaultEle float64, overrideEle bool) (geo.Line, *Info, error) {
	b, err := os.ReadFile(fpath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading gpx %q: %w", fpath, err)
	}
	return Parse(b, defaultEle, overrideEle)
}

// Parse decodes a GPX document and returns the points of the first <trk> in
// document order, all <trkseg> concatenated. Points without an <ele> child
// get defaultEle; overrideEle forces defaultEle everywhere.
func Parse(data []byte, defaultEle float64, overrideEle bool) (geo.Line, *Info, error) {
	doc, err := gpxgo.ParseBytes(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
	}
	if len(doc.Tracks) == 0 {
		return nil, nil, ErrNoTrack
	}
	trk := doc.Tracks[0]

	var segments []geo.Line
	for _, seg := range trk.Segments {
		line := make(geo.Line, len(seg.Points))
		for i, p := range seg.Points {
			pos := geo.Pos{Lat: p.Latitude, Lon: p.Longitude, Ele: defaultEle}
			if !overrideEle && p.Elevation.NotNull() {
				pos.Ele = p.Elevation.Value()
			}
			line[i] = pos
		}
		segments = append(segments, line)
	}
	line := geo.MergeLines(segments)

	if len(line) < 2 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(line))
	}

	return line, Summarise(trk.Name, line), nil
}

// Summarise builds the track summary for a parsed line.
func Summarise(name string, line geo.Line) *Info {
	info := &Info{
		Name:   name,
		Points: len(line),
		MinEle: line[0].Ele,
		MaxEle: line[0].Ele,
		Start:  line.Start(),
		End:    line.End(),
	}
	for i, pos := range line {
		if pos.Ele < info.MinEle {
			info.MinEle = pos.Ele
		}
		if pos.Ele > info.MaxEle {
			info.MaxEle = pos.Ele
		}
		// elevation of exactly 0 or 1 is what a flat default produces, so
		// only other values count as real elevation data
		if pos.Ele != 0 && pos.Ele != 1 {
			info.HasElevation = true
		}
		if i == 0 {
			continue
		}
		info.Distance += geo.Distance(line[i-1], pos)
		d := pos.Ele - line[i-1].Ele
		if d > 0 {
			info.Gain += d
		} else {
			info.Loss -= d
		}
	}
	return info
}
