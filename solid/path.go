package solid

import (
	"math"

	"github.com/eduu10/ciclo3d/geo"
)

// Mesh is an indexed triangle mesh: vertex positions plus index triples
// wound counter-clockwise seen from outside.
type Mesh struct {
	Vertices  []geo.Vec3
	Triangles [][3]int
}

// buildPath turns the fitted stations into a closed ribbon. Each accepted
// station contributes one cross-section of four vertices (lower-left,
// lower-right, upper-left, upper-right); consecutive cross-sections are
// bridged by eight triangles, and the two ends are capped.
func buildPath(stations []geo.Vec3, buffer float64) Mesh {
	var mesh Mesh

	// heading of the outgoing segment at each station; the last station
	// carries the previous heading on
	angles := make([]float64, len(stations))
	for i := range stations {
		if i < len(stations)-1 {
			angles[i] = stations[i].Angle(stations[i+1])
		} else {
			angles[i] = angles[i-1]
		}
	}

	s := 0 // accepted stations so far
	for i, station := range stations {
		prev := angles[0]
		if i > 0 {
			prev = angles[i-1]
		}
		rel := angles[i] - prev

		// a run of sharp reversals oscillates and self-intersects; drop an
		// acute station when the next one turns sharply too (or the track
		// ends there). The last station is never dropped.
		if acute(rel) && i < len(stations)-1 {
			if acute(angles[i+1]-angles[i]) || i+1 == len(stations)-1 {
				continue
			}
		}

		joint := prev + rel/2
		jointr := buffer / math.Cos(rel/2)
		if math.Abs(jointr) > 2*buffer {
			jointr = math.Copysign(2*buffer, jointr)
		}

		// left sits at the bisector normal chosen so the stated triangle
		// order winds counter-clockwise seen from outside
		lx := station.X + math.Cos(joint-math.Pi/2)*jointr
		ly := station.Y + math.Sin(joint-math.Pi/2)*jointr
		rx := station.X + math.Cos(joint+math.Pi/2)*jointr
		ry := station.Y + math.Sin(joint+math.Pi/2)*jointr

		mesh.Vertices = append(mesh.Vertices,
			geo.Vec3{X: lx, Y: ly, Z: 0},
			geo.Vec3{X: rx, Y: ry, Z: 0},
			geo.Vec3{X: lx, Y: ly, Z: station.Z},
			geo.Vec3{X: rx, Y: ry, Z: station.Z},
		)

		if s == 0 {
			mesh.Triangles = append(mesh.Triangles, [3]int{0, 2, 3}, [3]int{3, 1, 0})
		} else {
			mesh.Triangles = append(mesh.Triangles, bridge((s-1)*4)...)
		}
		s++
	}

	// end cap
	i := (s - 1) * 4
	mesh.Triangles = append(mesh.Triangles, [3]int{i + 2, i + 1, i + 3}, [3]int{i + 2, i + 0, i + 1})
	return mesh
}

// bridge joins the cross-section starting at vertex i to the next one: top,
// left, right, bottom, two triangles each.
func bridge(i int) [][3]int {
	return [][3]int{
		{i + 2, i + 6, i + 3},
		{i + 3, i + 6, i + 7},
		{i + 3, i + 7, i + 5},
		{i + 3, i + 5, i + 1},
		{i + 6, i + 2, i + 0},
		{i + 6, i + 0, i + 4},
		{i + 0, i + 5, i + 4},
		{i + 0, i + 1, i + 5},
	}
}

// acute reports a turn sharper than a right angle in either direction.
func acute(rel float64) bool {
	a := math.Abs(rel)
	return a > math.Pi/2 && a < 3*math.Pi/2
}
