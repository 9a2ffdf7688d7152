package entity

import (
	"errors"
	"fmt"
	"math"

	"github.com/younwookim/toybow/internal/domain/geom"
)

// Handle is an opaque reference to an object in the host world.
// The zero Handle means "no object" (creation failed or never created).
type Handle uint64

// Valid reports whether h refers to an object
func (h Handle) Valid() bool { return h != 0 }

// ObjectKind tags the variant of an object spec
type ObjectKind int

const (
	KindArrow ObjectKind = iota
	KindStringLine
	KindRestLine
	KindBow
	KindTarget
	KindBeamDisabler
)

// String returns the kind name
func (k ObjectKind) String() string {
	switch k {
	case KindArrow:
		return "Arrow"
	case KindStringLine:
		return "StringLine"
	case KindRestLine:
		return "RestLine"
	case KindBow:
		return "Bow"
	case KindTarget:
		return "Target"
	case KindBeamDisabler:
		return "BeamDisabler"
	default:
		return "Unknown"
	}
}

// IsLine reports whether objects of this kind render as line segments
func (k ObjectKind) IsLine() bool {
	return k == KindStringLine || k == KindRestLine
}

// ErrInvalidSpec is returned when an object spec fails validation
var ErrInvalidSpec = errors.New("invalid object spec")

// ObjectSpec is the creation request for one object kind.
// Implementations are ArrowSpec, StringLineSpec and RestLineSpec for objects
// the bow owns, and BowSpec, TargetSpec, BeamDisablerSpec for host fixtures.
type ObjectSpec interface {
	Kind() ObjectKind
	Validate() error
}

// ArrowSpec creates a non-physical arrow: it does not move under collisions,
// ignores collisions and has no gravity until released.
type ArrowSpec struct {
	Name             string
	Position         geom.Vec3
	Rotation         geom.Quat
	Dimensions       geom.Vec3
	ModelRef         string
	CollisionHullRef string
	CollisionSound   SoundRef
	Damping          float64
	UserData         []byte
}

// Kind implements ObjectSpec
func (ArrowSpec) Kind() ObjectKind { return KindArrow }

// Validate implements ObjectSpec
func (s ArrowSpec) Validate() error {
	if err := validatePlacement(KindArrow, s.Position, s.Dimensions); err != nil {
		return err
	}
	if s.Damping < 0 || s.Damping > 1 {
		return fmt.Errorf("%w: %s damping %v outside [0,1]", ErrInvalidSpec, KindArrow, s.Damping)
	}
	if s.Rotation.Length() == 0 {
		return fmt.Errorf("%w: %s rotation is zero", ErrInvalidSpec, KindArrow)
	}
	return nil
}

// StringLineSpec creates one of the two drawn bowstring segments
type StringLineSpec struct {
	Name       string
	Position   geom.Vec3
	Dimensions geom.Vec3
	UserData   []byte
}

// Kind implements ObjectSpec
func (StringLineSpec) Kind() ObjectKind { return KindStringLine }

// Validate implements ObjectSpec
func (s StringLineSpec) Validate() error {
	return validatePlacement(KindStringLine, s.Position, s.Dimensions)
}

// RestLineSpec creates the single resting string shown while not aiming
type RestLineSpec struct {
	Name       string
	Position   geom.Vec3
	Dimensions geom.Vec3
	Visible    bool
	UserData   []byte
}

// Kind implements ObjectSpec
func (RestLineSpec) Kind() ObjectKind { return KindRestLine }

// Validate implements ObjectSpec
func (s RestLineSpec) Validate() error {
	return validatePlacement(KindRestLine, s.Position, s.Dimensions)
}

// BowSpec creates the bow itself (host fixture)
type BowSpec struct {
	Name       string
	Position   geom.Vec3
	Rotation   geom.Quat
	Dimensions geom.Vec3
	UserData   []byte
}

// Kind implements ObjectSpec
func (BowSpec) Kind() ObjectKind { return KindBow }

// Validate implements ObjectSpec
func (s BowSpec) Validate() error {
	if err := validatePlacement(KindBow, s.Position, s.Dimensions); err != nil {
		return err
	}
	if s.Rotation.Length() == 0 {
		return fmt.Errorf("%w: %s rotation is zero", ErrInvalidSpec, KindBow)
	}
	return nil
}

// TargetSpec creates a static box arrows can strike (host fixture)
type TargetSpec struct {
	Name       string
	Position   geom.Vec3
	Dimensions geom.Vec3
	Points     int
}

// Kind implements ObjectSpec
func (TargetSpec) Kind() ObjectKind { return KindTarget }

// Validate implements ObjectSpec
func (s TargetSpec) Validate() error {
	if err := validatePlacement(KindTarget, s.Position, s.Dimensions); err != nil {
		return err
	}
	if s.Points < 0 {
		return fmt.Errorf("%w: %s points %d negative", ErrInvalidSpec, KindTarget, s.Points)
	}
	return nil
}

// BeamDisablerSpec creates the helper object that suppresses a hand's UI
// pointer beam (host fixture)
type BeamDisablerSpec struct {
	Name     string
	Position geom.Vec3
	UserData []byte
}

// Kind implements ObjectSpec
func (BeamDisablerSpec) Kind() ObjectKind { return KindBeamDisabler }

// Validate implements ObjectSpec
func (s BeamDisablerSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: %s needs a name", ErrInvalidSpec, KindBeamDisabler)
	}
	if !finite(s.Position) {
		return fmt.Errorf("%w: %s position not finite", ErrInvalidSpec, KindBeamDisabler)
	}
	return nil
}

func validatePlacement(kind ObjectKind, pos, dims geom.Vec3) error {
	if !finite(pos) {
		return fmt.Errorf("%w: %s position not finite", ErrInvalidSpec, kind)
	}
	if dims.X <= 0 || dims.Y <= 0 || dims.Z <= 0 || !finite(dims) {
		return fmt.Errorf("%w: %s dimensions %v must be positive", ErrInvalidSpec, kind, dims)
	}
	return nil
}

func finite(v geom.Vec3) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
