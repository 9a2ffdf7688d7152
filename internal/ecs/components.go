package ecs

import (
	"image/color"
	"math"

	"github.com/younwookim/toybow/internal/domain/entity"
	"github.com/younwookim/toybow/internal/domain/geom"
)

// Transform places an object in the world (meters, Y up)
type Transform struct {
	Position   geom.Vec3
	Rotation   geom.Quat
	Dimensions geom.Vec3
}

// Front returns the object's forward axis
func (t Transform) Front() geom.Vec3 { return t.Rotation.Front() }

// Tip returns the point half the object's depth ahead of its center.
// For an arrow this is the point that strikes first.
func (t Transform) Tip() geom.Vec3 {
	return geom.Offset(t.Position, t.Front(), t.Dimensions.Z/2)
}

// Contains reports whether p lies inside the axis-aligned box of t
func (t Transform) Contains(p geom.Vec3) bool {
	half := t.Dimensions.Mul(0.5)
	d := p.Sub(t.Position)
	return math.Abs(d.X) <= half.X && math.Abs(d.Y) <= half.Y && math.Abs(d.Z) <= half.Z
}

// Body is the dynamic state the host simulates
type Body struct {
	Velocity            geom.Vec3 // m/s
	Gravity             geom.Vec3 // m/s²
	Damping             float64   // fraction of velocity lost per second
	CollisionsWillMove  bool
	IgnoreForCollisions bool
}

// Dynamic reports whether the body is integrated by Step
func (b Body) Dynamic() bool { return b.CollisionsWillMove }

// Collidable reports whether the body is tested against targets
func (b Body) Collidable() bool { return b.CollisionsWillMove && !b.IgnoreForCollisions }

// Lifetime expires an object once Age reaches Limit (Limit 0 = forever)
type Lifetime struct {
	Limit float64 // seconds
	Age   float64 // seconds
}

// Expired reports whether the object should be destroyed
func (l Lifetime) Expired() bool {
	return l.Limit > 0 && l.Age >= l.Limit
}

// Line is a polyline in the object's local space
type Line struct {
	Points []geom.Vec3
	Width  float64
	Color  color.RGBA
}

// Meta holds the descriptive part of an object
type Meta struct {
	Kind     entity.ObjectKind
	Name     string
	Visible  bool
	UserData []byte
}

// Model holds the assets an arrow renders and collides with
type Model struct {
	ModelRef         string
	CollisionHullRef string
	CollisionSound   entity.SoundRef
}

// Target is a box that scores when struck
type Target struct {
	Points int
}
