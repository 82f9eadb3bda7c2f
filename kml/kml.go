// Package kml reads a track from a KML document: the first Placemark
// carrying a LineString, searched depth-first through folders. It offers the
// same contract as the gpx package so either format feeds the pipeline.
package kml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/eduu10/ciclo3d/geo"
	"github.com/eduu10/ciclo3d/gpx"
)

func Load(fpath string, defaultEle float64, overrideEle bool) (geo.Line, *gpx.Info, error) {
	b, err := os.ReadFile(fpath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading kml %q: %w", fpath, err)
	}
	return Parse(b, defaultEle, overrideEle)
}

func Parse(data []byte, defaultEle float64, overrideEle bool) (geo.Line, *gpx.Info, error) {
	var r Root
	if err := xml.NewDecoder(bytes.NewReader(data)).Decode(&r); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", gpx.ErrMalformedXML, err)
	}
	name, ls := findLineString(r.Document.Placemarks, r.Document.Folders)
	if ls == nil {
		return nil, nil, gpx.ErrNoTrack
	}
	line := ls.Line(defaultEle, overrideEle)
	if len(line) < 2 {
		return nil, nil, fmt.Errorf("%w: got %d", gpx.ErrTooFewPoints, len(line))
	}
	return line, gpx.Summarise(name, line), nil
}

func findLineString(placemarks []*Placemark, folders []*Folder) (string, *LineString) {
	for _, p := range placemarks {
		if p.LineString != nil {
			return p.Name, p.LineString
		}
		if p.MultiGeometry != nil && p.MultiGeometry.LineString != nil {
			return p.Name, p.MultiGeometry.LineString
		}
	}
	for _, f := range folders {
		if name, ls := findLineString(f.Placemarks, f.Folders); ls != nil {
			return name, ls
		}
	}
	return "", nil
}

type Root struct {
	Xmlns    string   `xml:"xmlns,attr"`
	Document Document `xml:"Document"`
}

type Document struct {
	Name       string       `xml:"name"`
	Placemarks []*Placemark `xml:"Placemark"`
	Folders    []*Folder    `xml:"Folder"`
}

type Folder struct {
	Name       string       `xml:"name"`
	Placemarks []*Placemark `xml:"Placemark"`
	Folders    []*Folder    `xml:"Folder"`
}

type Placemark struct {
	Name          string         `xml:"name"`
	LineString    *LineString    `xml:"LineString,omitempty"`
	MultiGeometry *MultiGeometry `xml:"MultiGeometry,omitempty"`
}

type MultiGeometry struct {
	LineString *LineString `xml:"LineString,omitempty"`
}

type LineString struct {
	Coordinates string `xml:"coordinates"`
}

// Line parses the lon,lat[,ele] coordinate list. KML coordinates are
// whitespace separated tuples.
func (l LineString) Line(defaultEle float64, overrideEle bool) geo.Line {
	var line geo.Line
	for _, csv := range strings.Fields(strings.TrimSpace(l.Coordinates)) {
		parts := strings.Split(csv, ",")
		if len(parts) < 2 {
			continue
		}
		var p geo.Pos
		p.Lon, _ = strconv.ParseFloat(parts[0], 64)
		p.Lat, _ = strconv.ParseFloat(parts[1], 64)
		p.Ele = defaultEle
		if !overrideEle && len(parts) > 2 {
			p.Ele, _ = strconv.ParseFloat(parts[2], 64)
		}
		line = append(line, p)
	}
	return line
}
