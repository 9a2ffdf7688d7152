// Package geom provides the vector and quaternion math used to pose the bow,
// its strings and the notched arrow.
//
// Coordinates follow the host world: meters, Y up, and a canonical forward
// axis of -Z. A rotation's Front is the image of Front under that rotation.
package geom

import "math"

// Vec3 is a 3D vector in world space (meters)
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Canonical axes
var (
	Zero  = Vec3{}
	Front = Vec3{X: 0, Y: 0, Z: -1}
	Up    = Vec3{X: 0, Y: 1, Z: 0}
	Right = Vec3{X: 1, Y: 0, Z: 0}
)

// V3 is shorthand for building a Vec3
func V3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// Add returns v + o
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Mul scales v by k
func (v Vec3) Mul(k float64) Vec3 { return Vec3{v.X * k, v.Y * k, v.Z * k} }

// Neg returns -v
func (v Vec3) Neg() Vec3 { return Vec3{-v.X, -v.Y, -v.Z} }

// Dot returns the dot product
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product v × o
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// LengthSq returns the squared length
func (v Vec3) LengthSq() float64 { return v.Dot(v) }

// Length returns the Euclidean length
func (v Vec3) Length() float64 { return math.Sqrt(v.LengthSq()) }

// Distance returns |v - o|
func (v Vec3) Distance(o Vec3) float64 { return v.Sub(o).Length() }

// Normalize returns a unit vector in the same direction, or Zero for a zero vector
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

// IsZero reports whether every component is exactly zero
func (v Vec3) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

// ApproxEqual compares component-wise within eps
func (v Vec3) ApproxEqual(o Vec3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps && math.Abs(v.Z-o.Z) <= eps
}

// Offset returns origin + axis*magnitude.
// Callers pass a rotation's Up/Front axis to place points relative to an object.
func Offset(origin, axis Vec3, magnitude float64) Vec3 {
	return origin.Add(axis.Mul(magnitude))
}

// RemapLinear maps value from [domainMin, domainMax] onto [rangeMin, rangeMax].
// There is no clamping: values outside the domain extrapolate.
// domainMin == domainMax is a configuration error and yields ±Inf or NaN.
func RemapLinear(value, domainMin, domainMax, rangeMin, rangeMax float64) float64 {
	return rangeMin + (rangeMax-rangeMin)*((value-domainMin)/(domainMax-domainMin))
}
