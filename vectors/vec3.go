package vectors

import (
	"math"

	"github.com/echoflaresat/thermalvf/base"
)

// Vec3 is a 3D vector with float64 components.
type Vec3 struct {
	X, Y, Z float64
}

// FromSpherical returns the unit vector at longitude-like angle lon and
// latitude-like angle lat, both in radians (e.g. right ascension and declination).
func FromSpherical(lon, lat float64) Vec3 {
	cosLat := math.Cos(lat)
	return Vec3{
		X: cosLat * math.Cos(lon),
		Y: cosLat * math.Sin(lon),
		Z: math.Sin(lat),
	}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product v · o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Norm returns the Euclidean length ||v||.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector v / ||v||.
// If ||v|| == 0, it returns the zero vector.
func (v Vec3) Normalize() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return v.Scale(1.0 / n)
}

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Angle returns the angle between v and o in radians, in [0, π].
// The cosine is clipped to [-1, 1] before the inverse cosine so rounding
// on nearly parallel vectors cannot produce NaN.
func Angle(v, o Vec3) float64 {
	n := v.Norm() * o.Norm()
	if n == 0 {
		return 0
	}
	return math.Acos(base.Clip(v.Dot(o)/n, -1, 1))
}

// RotateAbout applies Rodrigues' rotation formula: rotate v around the unit
// axis by theta radians.
func RotateAbout(v, axis Vec3, theta float64) Vec3 {
	c, s := math.Cos(theta), math.Sin(theta)
	return v.Scale(c).
		Add(axis.Cross(v).Scale(s)).
		Add(axis.Scale(axis.Dot(v) * (1.0 - c)))
}
