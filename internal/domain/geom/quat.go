package geom

import "math"

// parallelEps is the dot-product tolerance for treating two unit vectors as
// parallel or antiparallel.
const parallelEps = 1e-9

// Quat is a rotation quaternion (W + Xi + Yj + Zk)
type Quat struct {
	W float64 `json:"w"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Identity is the zero rotation
var Identity = Quat{W: 1}

// AxisAngle builds a rotation of rad radians around axis
func AxisAngle(axis Vec3, rad float64) Quat {
	a := axis.Normalize()
	if a.IsZero() {
		return Identity
	}
	s := math.Sin(rad / 2)
	return Quat{W: math.Cos(rad / 2), X: a.X * s, Y: a.Y * s, Z: a.Z * s}
}

// FromPitchYawRollDegrees builds yaw(Y) * pitch(X) * roll(Z): roll is applied
// first, then pitch, then yaw, all in degrees.
func FromPitchYawRollDegrees(pitch, yaw, roll float64) Quat {
	const deg = math.Pi / 180
	qy := AxisAngle(Up, yaw*deg)
	qp := AxisAngle(Right, pitch*deg)
	qr := AxisAngle(Vec3{Z: 1}, roll*deg)
	return qy.Mul(qp).Mul(qr)
}

// Mul returns the composition q * o (o applied first)
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
	}
}

// Conjugate returns the inverse rotation of a unit quaternion
func (q Quat) Conjugate() Quat { return Quat{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z} }

// Length returns the quaternion norm
func (q Quat) Length() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Normalize scales q to unit length; a zero quaternion becomes Identity
func (q Quat) Normalize() Quat {
	l := q.Length()
	if l == 0 {
		return Identity
	}
	inv := 1 / l
	return Quat{W: q.W * inv, X: q.X * inv, Y: q.Y * inv, Z: q.Z * inv}
}

// Rotate applies q to v
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Mul(2)
	return v.Add(t.Mul(q.W)).Add(u.Cross(t))
}

// Front returns the rotated canonical forward axis
func (q Quat) Front() Vec3 { return q.Rotate(Front) }

// Up returns the rotated up axis
func (q Quat) Up() Vec3 { return q.Rotate(Up) }

// Right returns the rotated right axis
func (q Quat) Right() Vec3 { return q.Rotate(Right) }

// RotationBetween returns the shortest rotation mapping the direction of from
// onto the direction of to. Zero-length inputs yield Identity.
func RotationBetween(from, to Vec3) Quat {
	a := from.Normalize()
	b := to.Normalize()
	if a.IsZero() || b.IsZero() {
		return Identity
	}

	d := a.Dot(b)
	if d >= 1-parallelEps {
		return Identity
	}
	if d <= -1+parallelEps {
		// Antiparallel: half turn around any axis orthogonal to a
		axis := a.Cross(Right)
		if axis.LengthSq() < parallelEps {
			axis = a.Cross(Up)
		}
		return AxisAngle(axis, math.Pi)
	}

	c := a.Cross(b)
	return Quat{W: 1 + d, X: c.X, Y: c.Y, Z: c.Z}.Normalize()
}
