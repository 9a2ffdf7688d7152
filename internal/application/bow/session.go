package bow

import (
	"image/color"
	"log"

	"github.com/younwookim/toybow/internal/application/state"
	"github.com/younwookim/toybow/internal/domain/entity"
	"github.com/younwookim/toybow/internal/domain/geom"
	"github.com/younwookim/toybow/internal/infrastructure/config"
)

// Host bundles the collaborators a Session talks to.
// Audio and Logger are optional.
type Host struct {
	Store  ObjectStore
	Input  Controller
	Audio  AudioPlayer
	Logger *log.Logger
}

// Stats counts what a session has done since it was created
type Stats struct {
	Arrows int // arrows spawned
	Shots  int // arrows released
	Hits   int // collisions that froze an arrow
}

// Session is the state of one bow between load and unload
type Session struct {
	cfg    config.BowConfig
	store  ObjectStore
	input  Controller
	audio  AudioPlayer
	logger *log.Logger

	bow entity.Handle

	hand     entity.Hand // last assigned hand
	gripHand entity.Hand // hand that started the current grab

	grabbed      bool
	drawing      bool
	aiming       bool
	arrowNotched bool

	arrow        entity.Handle
	restString   entity.Handle
	topString    entity.Handle
	bottomString entity.Handle
	stringColor  color.RGBA

	pose         entity.BowPose
	topAnchor    geom.Vec3
	bottomAnchor geom.Vec3
	arrowRear    geom.Vec3

	pullSound entity.SoundID

	// arrows this session spawned that still exist, notched or in flight
	arrows map[entity.Handle]struct{}
	inbox  []entity.CollisionEvent

	// simulated seconds since the last processed frame, for debounce
	sinceUpdate float64

	stats Stats

	// Event callbacks
	OnShot     func(arrow entity.Handle, velocity geom.Vec3)
	OnArrowHit func(ev entity.CollisionEvent)
}

// NewSession creates a session for the bow object bowID
func NewSession(bowID entity.Handle, cfg config.BowConfig, host Host) *Session {
	s := &Session{
		cfg:         cfg,
		store:       host.Store,
		input:       host.Input,
		audio:       host.Audio,
		logger:      host.Logger,
		bow:         bowID,
		hand:        entity.HandRight,
		gripHand:    entity.HandRight,
		stringColor: cfg.String.Color,
		arrows:      make(map[entity.Handle]struct{}),
	}
	if s.audio == nil {
		s.audio = silentAudio{}
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	return s
}

// Tick runs one frame of dt simulated seconds: pending collisions first,
// then the held-bow update
func (s *Session) Tick(dt float64) {
	s.drainCollisions()
	s.ContinueGrab(dt)
}

// Bow returns the bow object handle
func (s *Session) Bow() entity.Handle { return s.bow }

// Grabbed reports whether the bow is held
func (s *Session) Grabbed() bool { return s.grabbed }

// Drawing reports whether the string is drawn
func (s *Session) Drawing() bool { return s.drawing }

// Aiming reports whether the draw has been held for at least one frame
func (s *Session) Aiming() bool { return s.aiming }

// ArrowNotched reports whether an arrow sits on the string
func (s *Session) ArrowNotched() bool { return s.arrowNotched }

// Hand returns the last assigned hand
func (s *Session) Hand() entity.Hand { return s.hand }

// GripHand returns the hand holding the bow body
func (s *Session) GripHand() entity.Hand { return s.gripHand }

// StringHand returns the hand pulling the string
func (s *Session) StringHand() entity.Hand { return s.gripHand.Opposite() }

// CurrentArrow returns the notched arrow, or 0
func (s *Session) CurrentArrow() entity.Handle { return s.arrow }

// RestString returns the resting string handle, or 0
func (s *Session) RestString() entity.Handle { return s.restString }

// DrawStrings returns the top and bottom string handles, or 0s
func (s *Session) DrawStrings() (top, bottom entity.Handle) {
	return s.topString, s.bottomString
}

// Anchors returns the last computed top and bottom string anchors
func (s *Session) Anchors() (top, bottom geom.Vec3) {
	return s.topAnchor, s.bottomAnchor
}

// ArrowRear returns the last computed nock-end position of the arrow
func (s *Session) ArrowRear() geom.Vec3 { return s.arrowRear }

// Stats returns the session counters
func (s *Session) Stats() Stats { return s.stats }

// GrabState returns the grab lifecycle state
func (s *Session) GrabState() state.GrabState {
	if s.grabbed {
		return state.GrabHeld
	}
	return state.GrabIdle
}

// DrawPhase returns the bowstring state
func (s *Session) DrawPhase() state.DrawPhase {
	switch {
	case s.aiming:
		return state.DrawAiming
	case s.drawing:
		return state.DrawDrawing
	default:
		return state.DrawIdle
	}
}

// Owns reports whether h is an arrow this session spawned and still tracks
func (s *Session) Owns(h entity.Handle) bool {
	_, ok := s.arrows[h]
	return ok
}

// readPose refreshes the bow pose snapshot
func (s *Session) readPose() bool {
	props, ok := s.store.Properties(s.bow)
	if !ok {
		return false
	}
	s.pose = props.Pose()
	return true
}

// debounced accumulates dt and reports whether this frame should be skipped.
// A frame is processed once more than debounceMs of simulated time has passed.
func (s *Session) debounced(dt float64) bool {
	if s.cfg.Draw.DebounceMs <= 0 {
		return false
	}
	s.sinceUpdate += dt
	if s.sinceUpdate*1000 <= float64(s.cfg.Draw.DebounceMs) {
		return true
	}
	s.sinceUpdate = 0
	return false
}

func (s *Session) playSound(ref entity.SoundRef, volume float64) entity.SoundID {
	return s.audio.PlaySound(ref, entity.SoundOptions{Volume: volume, Position: s.pose.Position})
}

func (s *Session) destroy(h *entity.Handle) {
	if !h.Valid() {
		return
	}
	s.store.Destroy(*h)
	*h = 0
}

func (s *Session) edit(h entity.Handle, e entity.Edit) {
	if !h.Valid() {
		return
	}
	if err := s.store.Edit(h, e); err != nil {
		s.logger.Printf("bow: failed to edit object %d: %v", h, err)
	}
}
