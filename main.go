package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/eduu10/ciclo3d/geo"
	"github.com/eduu10/ciclo3d/gpx"
	"github.com/eduu10/ciclo3d/kml"
	"github.com/eduu10/ciclo3d/project"
	"github.com/eduu10/ciclo3d/solid"
)

const VERSION = "v0.2.0"

func main() {
	if err := Main(); err != nil {
		log.Fatalf("%v", err)
	}
}

func Main() error {
	defaults := solid.Default()

	in := flag.String("in", "", "input track (.gpx or .kml)")
	out := flag.String("out", "./track.stl", "output stl file")
	scad := flag.String("scad", "", "also write an openscad file")
	info := flag.Bool("info", false, "print the track summary and exit")

	buffer := flag.Float64("buffer", defaults.Buffer, "ribbon half-width, mm")
	vertical := flag.Float64("vertical", defaults.Vertical, "vertical exaggeration")
	bedx := flag.Float64("bedx", defaults.BedX, "printable area x, mm")
	bedy := flag.Float64("bedy", defaults.BedY, "printable area y, mm")
	base := flag.Float64("base", defaults.Base, "base thickness, mm")
	shape := flag.String("shape", "map", "track shape: map, linear or ring")
	proj := flag.String("proj", "google", "map projection source: google, custom or utm")
	projection := flag.String("projection", "", "proj4 definition when -proj=custom")
	zoverride := flag.Bool("zoverride", false, "force every elevation to -zconstant")
	zconstant := flag.Float64("zconstant", 1, "elevation used by -zoverride, m")
	zcut := flag.Bool("zcut", false, "shift elevations so the minimum sits just above zero")
	regionfit := flag.Bool("regionfit", false, "fit to the -region-* rectangle instead of the track bounds")
	regionMinX := flag.Float64("region-minx", 0, "region rectangle, projection units")
	regionMaxX := flag.Float64("region-maxx", 0, "region rectangle, projection units")
	regionMinY := flag.Float64("region-miny", 0, "region rectangle, projection units")
	regionMaxY := flag.Float64("region-maxy", 0, "region rectangle, projection units")
	markers := flag.Float64("markers", 0, "distance marker interval, m (0 disables)")
	smooth := flag.String("smooth", "auto", "smoothing: auto or span")
	smoothspan := flag.Float64("smoothspan", 0, "minimum point spacing when -smooth=span, m")
	version := flag.Bool("version", false, "show version")
	flag.Parse()

	if *version {
		fmt.Println(VERSION)
		return nil
	}
	if *in == "" {
		return fmt.Errorf("no input file, use -in")
	}

	opts := defaults
	opts.Buffer = *buffer
	opts.Vertical = *vertical
	opts.BedX = *bedx
	opts.BedY = *bedy
	opts.Base = *base
	opts.Projection = *projection
	opts.ZOverride = *zoverride
	opts.ZConstant = *zconstant
	opts.ZCut = *zcut
	opts.RegionFit = *regionfit
	opts.RegionMinX = *regionMinX
	opts.RegionMaxX = *regionMaxX
	opts.RegionMinY = *regionMinY
	opts.RegionMaxY = *regionMaxY
	opts.MarkerInterval = *markers
	opts.SmoothSpan = *smoothspan

	switch *shape {
	case "map":
		opts.Shape = project.Map
	case "linear":
		opts.Shape = project.Linear
	case "ring":
		opts.Shape = project.Ring
	default:
		return fmt.Errorf("unknown shape %q", *shape)
	}
	switch *proj {
	case "google":
		opts.Proj = project.Google
	case "custom":
		opts.Proj = project.Custom
	case "utm":
		opts.Proj = project.UTM
	default:
		return fmt.Errorf("unknown projection source %q", *proj)
	}
	if *smooth == "span" {
		opts.Smooth = solid.SmoothFixed
	} else if *smooth != "auto" {
		return fmt.Errorf("unknown smoothing %q", *smooth)
	}

	line, trackInfo, err := load(*in, opts.ZConstant, opts.ZOverride)
	if err != nil {
		return fmt.Errorf("loading track: %w", err)
	}

	if *info {
		printInfo(trackInfo)
		return nil
	}

	bar := progressbar.NewOptions(100,
		progressbar.OptionSetDescription("generating"),
		progressbar.OptionSetWriter(os.Stderr),
	)
	artifact, err := solid.Generate(line, opts, func(stage string, pct int) {
		bar.Describe(stage)
		bar.Set(pct)
	})
	if err != nil {
		return fmt.Errorf("generating solid: %w", err)
	}
	fmt.Fprintln(os.Stderr)

	if err := os.WriteFile(*out, artifact.STL(), 0666); err != nil {
		return fmt.Errorf("writing stl %q: %w", *out, err)
	}
	if *scad != "" {
		if err := os.WriteFile(*scad, []byte(artifact.OpenSCAD()), 0666); err != nil {
			return fmt.Errorf("writing scad %q: %w", *scad, err)
		}
	}

	fmt.Printf("%s: %.1f km, %d vertices, %d triangles, %d markers, scale 1:%.0f\n",
		*out, artifact.TotalDistance/1000, len(artifact.Vertices), len(artifact.Triangles),
		len(artifact.Markers), 1000/artifact.Scale)
	return nil
}

func load(fpath string, defaultEle float64, overrideEle bool) (geo.Line, *gpx.Info, error) {
	if strings.EqualFold(filepath.Ext(fpath), ".kml") {
		return kml.Load(fpath, defaultEle, overrideEle)
	}
	return gpx.Load(fpath, defaultEle, overrideEle)
}

func printInfo(info *gpx.Info) {
	fmt.Printf("name:      %s\n", info.Name)
	fmt.Printf("points:    %d\n", info.Points)
	fmt.Printf("distance:  %.2f km\n", info.Distance/1000)
	fmt.Printf("start:     %.5f,%.5f\n", info.Start.Lat, info.Start.Lon)
	fmt.Printf("end:       %.5f,%.5f\n", info.End.Lat, info.End.Lon)
	if info.HasElevation {
		fmt.Printf("elevation: %.0fm to %.0fm (+%.0fm -%.0fm)\n", info.MinEle, info.MaxEle, info.Gain, info.Loss)
	} else {
		fmt.Println("elevation: none")
	}
}
