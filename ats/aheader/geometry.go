package aheader

import (
	"math"
)

const (
	minDipoleLength = 0.001
	minTilt         = 0.1
)

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
func radians(deg float64) float64 { return deg * math.Pi / 180 }

// PosToGeometry turns two sensor endpoints into length, azimuth and tilt in
// degrees. A dipole shorter than 1 mm, or with endpoints that are not
// finite, is treated as having no orientation.
func PosToGeometry(pos Position) Geometry {
	dx := pos.X2 - pos.X1
	dy := pos.Y2 - pos.Y1
	dz := pos.Z2 - pos.Z1
	length := math.Sqrt(dx*dx + dy*dy + dz*dz)
	if !(length >= minDipoleLength) || math.IsInf(length, 0) {
		return Geometry{}
	}
	cos := math.Max(-1, math.Min(1, dz/length))
	return Geometry{
		Length:  length,
		Azimuth: degrees(math.Atan2(dy, dx)),
		Tilt:    90 - degrees(math.Acos(cos)),
	}
}

// GeometryToPos places a sensor of the given geometry centered on the origin
// in the horizontal plane, with the vertical offset on the second endpoint.
func GeometryToPos(geometry Geometry) Position {
	if math.Abs(geometry.Length) < minDipoleLength/10 {
		return Position{}
	}
	tilt := geometry.Tilt
	if math.Abs(tilt) < minTilt {
		tilt = 0
	}
	x := geometry.Length * math.Cos(radians(geometry.Azimuth)) * math.Cos(radians(tilt))
	y := geometry.Length * math.Sin(radians(geometry.Azimuth)) * math.Cos(radians(tilt))
	z := geometry.Length * math.Sin(radians(tilt))
	return Position{
		X1: -0.5 * x,
		X2: 0.5 * x,
		Y1: -0.5 * y,
		Y2: 0.5 * y,
		Z1: 0,
		Z2: z,
	}
}

func (h *Header) Position() Position {
	return Position{
		X1: float64(h.X1),
		X2: float64(h.X2),
		Y1: float64(h.Y1),
		Y2: float64(h.Y2),
		Z1: float64(h.Z1),
		Z2: float64(h.Z2),
	}
}

func (h *Header) SetPosition(pos Position) {
	h.X1, h.X2 = float32(pos.X1), float32(pos.X2)
	h.Y1, h.Y2 = float32(pos.Y1), float32(pos.Y2)
	h.Z1, h.Z2 = float32(pos.Z1), float32(pos.Z2)
}
