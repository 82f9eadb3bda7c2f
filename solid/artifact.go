package solid

import (
	"fmt"
	"math"
	"strings"

	"github.com/eduu10/ciclo3d/geo"
	"github.com/eduu10/ciclo3d/stl"
)

// Bed is the printable area the model was fitted to, mm.
type Bed struct {
	X, Y float64
}

// Artifact is the result of one generation. It owns its slices; nothing
// points back into the generation context.
type Artifact struct {
	Vertices      []geo.Vec3 // ribbon mesh, mm
	Triangles     [][3]int
	Markers       []Marker
	Bounds        geo.Bounds // post-projection, pre-fit
	TotalDistance float64    // raw geodesic length, metres
	Scale         float64    // planar mm per metre
	Bed           Bed
}

// STL is the binary STL of the ribbon with the marker boxes appended as
// separate solids (no boolean union).
func (a *Artifact) STL() []byte {
	return stl.Encode("ciclo3d track", a.facets())
}

func (a *Artifact) facets() []stl.Triangle {
	tris := make([]stl.Triangle, 0, len(a.Triangles)+12*len(a.Markers))
	for _, t := range a.Triangles {
		tris = append(tris, stl.Triangle{a.Vertices[t[0]], a.Vertices[t[1]], a.Vertices[t[2]]})
	}
	for _, m := range a.Markers {
		box := markerMesh(m)
		for _, t := range box.Triangles {
			tris = append(tris, stl.Triangle{box.Vertices[t[0]], box.Vertices[t[1]], box.Vertices[t[2]]})
		}
	}
	return tris
}

// RawPoints is the flattened vertex array for previewers: x,y,z per vertex.
func (a *Artifact) RawPoints() []float64 {
	out := make([]float64, 0, 3*len(a.Vertices))
	for _, v := range a.Vertices {
		out = append(out, v.X, v.Y, v.Z)
	}
	return out
}

// RawFaces is the flattened index array for previewers, three indices per
// triangle. Previewers compute their own normals.
func (a *Artifact) RawFaces() []uint32 {
	out := make([]uint32, 0, 3*len(a.Triangles))
	for _, t := range a.Triangles {
		out = append(out, uint32(t[0]), uint32(t[1]), uint32(t[2]))
	}
	return out
}

// OpenSCAD renders the artifact as an OpenSCAD script: the ribbon
// polyhedron unioned with one cube per marker.
func (a *Artifact) OpenSCAD() string {
	var b strings.Builder
	b.WriteString("union() {\n")
	b.WriteString("\tpolyhedron(\n\t\tpoints = [\n")
	for _, v := range a.Vertices {
		fmt.Fprintf(&b, "\t\t\t[%g, %g, %g],\n", v.X, v.Y, v.Z)
	}
	b.WriteString("\t\t],\n\t\tfaces = [\n")
	for _, t := range a.Triangles {
		fmt.Fprintf(&b, "\t\t\t[%d, %d, %d],\n", t[0], t[1], t[2])
	}
	b.WriteString("\t\t],\n\t\tconvexity = 10\n\t);\n")
	for _, m := range a.Markers {
		fmt.Fprintf(&b, "\ttranslate([%g, %g, %g]) rotate([0, 0, %g]) cube([1, %g, %g], center = true);\n",
			m.X, m.Y, (m.Z+2)/2, m.Orientation*180/math.Pi, m.Width, m.Z+2)
	}
	b.WriteString("}\n")
	return b.String()
}

// JSCAD renders the artifact as an OpenJSCAD script. With preview set only
// the ribbon polyhedron is returned, which is what the in-browser viewer
// uploads.
func (a *Artifact) JSCAD(preview bool) string {
	var b strings.Builder
	b.WriteString("function main() {\n")
	b.WriteString("\tvar track = polyhedron({\n\t\tpoints: [\n")
	for _, v := range a.Vertices {
		fmt.Fprintf(&b, "\t\t\t[%g, %g, %g],\n", v.X, v.Y, v.Z)
	}
	b.WriteString("\t\t],\n\t\ttriangles: [\n")
	for _, t := range a.Triangles {
		fmt.Fprintf(&b, "\t\t\t[%d, %d, %d],\n", t[0], t[1], t[2])
	}
	b.WriteString("\t\t]\n\t});\n")
	if preview || len(a.Markers) == 0 {
		b.WriteString("\treturn track;\n}\n")
		return b.String()
	}
	b.WriteString("\treturn union(track")
	for _, m := range a.Markers {
		fmt.Fprintf(&b, ",\n\t\tcube({size: [1, %g, %g], center: true}).rotateZ(%g).translate([%g, %g, %g])",
			m.Width, m.Z+2, m.Orientation*180/math.Pi, m.X, m.Y, (m.Z+2)/2)
	}
	b.WriteString("\n\t);\n}\n")
	return b.String()
}
