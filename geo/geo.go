package geo

import (
	"math"
)

type Line []Pos

// Length is the total geodesic length of the line in metres.
func (l Line) Length() float64 {
	var total float64
	for i, pos := range l {
		if i == 0 {
			continue
		}
		total += Distance(l[i-1], pos)
	}
	return total
}

func (l Line) Reverse() {
	for i, j := 0, len(l)-1; i < j; i, j = i+1, j-1 {
		l[i], l[j] = l[j], l[i]
	}
}

// Start is the first Pos in the line
func (l Line) Start() Pos {
	return l[0]
}

// End is the last Pos in the line
func (l Line) End() Pos {
	return l[len(l)-1]
}

func MergeLines(lines []Line) Line {
	var totalLen int
	for _, s := range lines {
		totalLen += len(s)
	}
	tmp := make(Line, totalLen)
	var i int
	for _, s := range lines {
		i += copy(tmp[i:], s)
	}
	return tmp
}

type Pos struct {
	Lat, Lon, Ele float64
}

// Vec3 is a planar point in metres (millimetres after fitting). Z carries
// elevation until the fit transform scales it.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Angle is the heading of the segment from v to o on the xy plane, in
// radians anticlockwise from +x.
func (v Vec3) Angle(o Vec3) float64 {
	return math.Atan2(o.Y-v.Y, o.X-v.X)
}

// Bounds is an axis-aligned box over planar points. Seed with NewBounds from
// the first point, then Extend with the rest.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64
}

func NewBounds(v Vec3) Bounds {
	return Bounds{
		MinX: v.X, MaxX: v.X,
		MinY: v.Y, MaxY: v.Y,
		MinZ: v.Z, MaxZ: v.Z,
	}
}

func (b *Bounds) Extend(v Vec3) {
	b.MinX = math.Min(b.MinX, v.X)
	b.MaxX = math.Max(b.MaxX, v.X)
	b.MinY = math.Min(b.MinY, v.Y)
	b.MaxY = math.Max(b.MaxY, v.Y)
	b.MinZ = math.Min(b.MinZ, v.Z)
	b.MaxZ = math.Max(b.MaxZ, v.Z)
}

func (b Bounds) CenterX() float64 { return (b.MinX + b.MaxX) / 2 }
func (b Bounds) CenterY() float64 { return (b.MinY + b.MaxY) / 2 }
