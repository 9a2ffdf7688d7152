package entity

import (
	"image/color"

	"github.com/younwookim/toybow/internal/domain/geom"
)

// Properties is a read-only snapshot of an object's state.
// It is only valid for the frame it was read in.
type Properties struct {
	Handle     Handle
	Kind       ObjectKind
	Name       string
	Position   geom.Vec3
	Rotation   geom.Quat
	Dimensions geom.Vec3

	// Motion
	Velocity geom.Vec3
	Gravity  geom.Vec3
	Damping  float64

	// Flags
	CollisionsWillMove  bool
	IgnoreForCollisions bool
	Visible             bool

	// Lifetime in seconds (0 = forever) and the object's current age
	Lifetime float64
	Age      float64

	// Line rendering (line kinds only). Points are local to Position.
	LinePoints []geom.Vec3
	LineWidth  float64
	Color      color.RGBA

	// Arrow assets
	ModelRef         string
	CollisionHullRef string
	CollisionSound   SoundRef

	// Target score value
	Points int

	UserData []byte
}

// BowPose is the per-frame position/rotation snapshot of the bow
type BowPose struct {
	Position geom.Vec3
	Rotation geom.Quat
}

// Pose extracts the pose part of a snapshot
func (p Properties) Pose() BowPose {
	return BowPose{Position: p.Position, Rotation: p.Rotation}
}

// Edit is a partial property update; nil fields are left unchanged
type Edit struct {
	Name                *string
	Position            *geom.Vec3
	Rotation            *geom.Quat
	Velocity            *geom.Vec3
	Gravity             *geom.Vec3
	CollisionsWillMove  *bool
	IgnoreForCollisions *bool
	Visible             *bool
	Lifetime            *float64
	LinePoints          []geom.Vec3
	LineWidth           *float64
	Color               *color.RGBA
	UserData            []byte
}

// IsEmpty reports whether the edit changes nothing
func (e Edit) IsEmpty() bool {
	return e.Name == nil && e.Position == nil && e.Rotation == nil &&
		e.Velocity == nil && e.Gravity == nil && e.CollisionsWillMove == nil &&
		e.IgnoreForCollisions == nil && e.Visible == nil && e.Lifetime == nil &&
		e.LinePoints == nil && e.LineWidth == nil && e.Color == nil && e.UserData == nil
}

// Apply writes the non-nil fields of e into p
func (e Edit) Apply(p *Properties) {
	if e.Name != nil {
		p.Name = *e.Name
	}
	if e.Position != nil {
		p.Position = *e.Position
	}
	if e.Rotation != nil {
		p.Rotation = *e.Rotation
	}
	if e.Velocity != nil {
		p.Velocity = *e.Velocity
	}
	if e.Gravity != nil {
		p.Gravity = *e.Gravity
	}
	if e.CollisionsWillMove != nil {
		p.CollisionsWillMove = *e.CollisionsWillMove
	}
	if e.IgnoreForCollisions != nil {
		p.IgnoreForCollisions = *e.IgnoreForCollisions
	}
	if e.Visible != nil {
		p.Visible = *e.Visible
	}
	if e.Lifetime != nil {
		p.Lifetime = *e.Lifetime
	}
	if e.LinePoints != nil {
		p.LinePoints = append([]geom.Vec3(nil), e.LinePoints...)
	}
	if e.LineWidth != nil {
		p.LineWidth = *e.LineWidth
	}
	if e.Color != nil {
		p.Color = *e.Color
	}
	if e.UserData != nil {
		p.UserData = append([]byte(nil), e.UserData...)
	}
}

// Ptr returns a pointer to v, for filling Edit fields
func Ptr[T any](v T) *T { return &v }

// CollisionEvent reports that Self touched Other at Contact
type CollisionEvent struct {
	Self    Handle
	Other   Handle
	Contact geom.Vec3
}
