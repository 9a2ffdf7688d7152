package system

import (
	"log"

	"github.com/younwookim/toybow/internal/application/bow"
	"github.com/younwookim/toybow/internal/domain/entity"
	"github.com/younwookim/toybow/internal/domain/geom"
	"github.com/younwookim/toybow/internal/ecs"
)

// Pitch limits for the bow (degrees)
const (
	MinPitchDeg = -60
	MaxPitchDeg = 80
)

// GrabSystem applies grab, release and aim intents to the bow
type GrabSystem struct {
	session *bow.Session
	world   *ecs.World

	grip     entity.Hand
	pitchDeg float64
	yawDeg   float64

	// Logger receives failed bow edits; nil means log.Default()
	Logger *log.Logger

	// Event callbacks
	OnGrab    func(hand entity.Hand)
	OnRelease func(hand entity.Hand)
}

// NewGrabSystem creates a grab system for the session's bow
func NewGrabSystem(session *bow.Session, world *ecs.World, grip entity.Hand, pitchDeg, yawDeg float64) *GrabSystem {
	return &GrabSystem{
		session:  session,
		world:    world,
		grip:     grip,
		pitchDeg: pitchDeg,
		yawDeg:   yawDeg,
	}
}

// Grip returns the hand that grabs the bow next
func (s *GrabSystem) Grip() entity.Hand { return s.grip }

// PitchDeg returns the current bow pitch
func (s *GrabSystem) PitchDeg() float64 { return s.pitchDeg }

// Apply processes intents in order
func (s *GrabSystem) Apply(intents []Intent) {
	for _, intent := range intents {
		switch in := intent.(type) {
		case SwitchHandIntent:
			if !s.session.Grabbed() {
				s.grip = s.grip.Opposite()
			}
		case GrabIntent:
			if !s.session.AssignHand(in.Hand) {
				continue
			}
			if s.session.StartGrab() {
				s.grip = in.Hand
				s.world.SetHeld(s.session.Bow(), true)
				if s.OnGrab != nil {
					s.OnGrab(in.Hand)
				}
			}
		case ReleaseIntent:
			if s.session.ReleaseGrab(in.Hand) {
				s.world.SetHeld(s.session.Bow(), false)
				if s.OnRelease != nil {
					s.OnRelease(in.Hand)
				}
			}
		case AimIntent:
			s.aim(in.DeltaDeg)
		}
	}
}

func (s *GrabSystem) aim(delta float64) {
	pitch := s.pitchDeg + delta
	if pitch < MinPitchDeg {
		pitch = MinPitchDeg
	}
	if pitch > MaxPitchDeg {
		pitch = MaxPitchDeg
	}
	if pitch == s.pitchDeg {
		return
	}
	s.pitchDeg = pitch

	rot := geom.FromPitchYawRollDegrees(s.pitchDeg, s.yawDeg, 0)
	if err := s.world.Edit(s.session.Bow(), entity.Edit{Rotation: &rot}); err != nil {
		s.logger().Printf("grab: failed to aim bow %d: %v", s.session.Bow(), err)
	}
}

func (s *GrabSystem) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}
