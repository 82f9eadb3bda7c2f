package solid

import (
	"math"

	"github.com/eduu10/ciclo3d/geo"
)

// Marker is a distance marker on the fitted model: a thin box standing
// across the ribbon, rotated to the local track heading.
type Marker struct {
	X, Y, Z     float64 // fitted location, mm; Z is the ribbon top there
	Orientation float64 // heading of the segment the marker falls on, radians
	Width       float64 // box width across the track, 2*buffer + 2
}

// markerMesh is the marker's box: 1mm along the track, Width across it,
// reaching 2mm above the ribbon, base on the bed.
func markerMesh(m Marker) Mesh {
	const along = 1.0
	height := m.Z + 2

	sin, cos := math.Sincos(m.Orientation)
	corner := func(dx, dy, z float64) geo.Vec3 {
		return geo.Vec3{
			X: m.X + dx*cos - dy*sin,
			Y: m.Y + dx*sin + dy*cos,
			Z: z,
		}
	}

	hx := along / 2
	hy := m.Width / 2
	return Mesh{
		Vertices: []geo.Vec3{
			corner(-hx, -hy, 0), corner(hx, -hy, 0), corner(hx, hy, 0), corner(-hx, hy, 0),
			corner(-hx, -hy, height), corner(hx, -hy, height), corner(hx, hy, height), corner(-hx, hy, height),
		},
		Triangles: [][3]int{
			{0, 2, 1}, {0, 3, 2}, // bottom
			{4, 5, 6}, {4, 6, 7}, // top
			{0, 1, 5}, {0, 5, 4}, // front
			{1, 2, 6}, {1, 6, 5}, // right
			{2, 3, 7}, {2, 7, 6}, // back
			{3, 0, 4}, {3, 4, 7}, // left
		},
	}
}
