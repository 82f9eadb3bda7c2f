// Package stl serialises triangle soups as binary STL: an 80-byte header, a
// little-endian triangle count, then 50 bytes per triangle (normal, three
// vertices, attribute count).
package stl

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/eduu10/ciclo3d/geo"
)

// Triangle is one facet, vertices wound counter-clockwise seen from outside.
type Triangle [3]geo.Vec3

// Normal is the unit facet normal, or the zero vector for a degenerate
// triangle.
func (t Triangle) Normal() geo.Vec3 {
	n := t[1].Sub(t[0]).Cross(t[2].Sub(t[0]))
	length := n.Norm()
	if length == 0 {
		return geo.Vec3{}
	}
	return geo.Vec3{X: n.X / length, Y: n.Y / length, Z: n.Z / length}
}

// Size is the byte length of the encoding for n triangles.
func Size(n int) int {
	return 84 + 50*n
}

// Encode returns the binary STL for the triangles. The header banner is
// truncated or zero-padded to 80 bytes.
func Encode(header string, tris []Triangle) []byte {
	var buf bytes.Buffer
	buf.Grow(Size(len(tris)))
	Write(&buf, header, tris)
	return buf.Bytes()
}

func Write(w io.Writer, header string, tris []Triangle) error {
	var banner [80]byte
	copy(banner[:], header)
	if _, err := w.Write(banner[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(tris))); err != nil {
		return err
	}
	for _, t := range tris {
		n := t.Normal()
		record := [12]float32{
			float32(n.X), float32(n.Y), float32(n.Z),
			float32(t[0].X), float32(t[0].Y), float32(t[0].Z),
			float32(t[1].X), float32(t[1].Y), float32(t[1].Z),
			float32(t[2].X), float32(t[2].Y), float32(t[2].Z),
		}
		if err := binary.Write(w, binary.LittleEndian, record); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(0)); err != nil {
			return err
		}
	}
	return nil
}
