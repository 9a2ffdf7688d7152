package system

import (
	"bytes"
	"io"
	"log"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/toybow/internal/application/bow"
	"github.com/younwookim/toybow/internal/domain/entity"
	"github.com/younwookim/toybow/internal/domain/geom"
	"github.com/younwookim/toybow/internal/ecs"
	"github.com/younwookim/toybow/internal/infrastructure/config"
)

const (
	configDir = "../../../cmd/toybow/configs"
	frameDt   = 1.0 / 60
)

// rangeRig wires a demo range the way the archery scene does
type rangeRig struct {
	cfg     *config.RangeConfig
	world   *ecs.World
	rng     *Range
	rig     *HandRig
	session *bow.Session
	grab    *GrabSystem
	physics *PhysicsSystem
	score   *ScoreSystem
	vp      Viewport
	audio   *recordingAudio
}

type recordingAudio struct {
	played []entity.SoundRef
}

func (a *recordingAudio) PlaySound(ref entity.SoundRef, _ entity.SoundOptions) entity.SoundID {
	a.played = append(a.played, ref)
	return entity.SoundID(len(a.played))
}

func (a *recordingAudio) AdjustSound(entity.SoundID, entity.SoundOptions) {}

func newRangeRig(t *testing.T, name string) *rangeRig {
	t.Helper()

	cfg, err := config.NewLoader(configDir).LoadRange(name)
	require.NoError(t, err)

	bowCfg := config.DefaultBowConfig()
	w := ecs.NewWorld()
	r, err := LoadRange(w, cfg, bowCfg.Grab)
	require.NoError(t, err)

	rig := NewHandRig(r.Avatar)
	audio := &recordingAudio{}
	session := bow.NewSession(r.Bow, bowCfg, bow.Host{
		Store:  w,
		Input:  rig,
		Audio:  audio,
		Logger: log.New(io.Discard, "", 0),
	})

	return &rangeRig{
		cfg:     cfg,
		world:   w,
		rng:     r,
		rig:     rig,
		session: session,
		grab:    NewGrabSystem(session, w, entity.HandLeft, cfg.Bow.PitchDeg, cfg.Bow.YawDeg),
		physics: NewPhysicsSystem(w),
		score:   NewScoreSystem(w, audio),
		vp:      NewViewport(cfg.View),
		audio:   audio,
	}
}

// cursorAt returns the screen pixel closest to a world point
func (r *rangeRig) cursorAt(p geom.Vec3) (int, int) {
	x, y := r.vp.ToScreen(p)
	return int(math.Round(x)), int(math.Round(y))
}

// frame runs one tick in scheduler order
func (r *rangeRig) frame(in InputState) []Hit {
	r.grab.Apply(CollectIntents(in, r.grab.Grip(), 1))

	bowProps, _ := r.world.Properties(r.rng.Bow)
	ApplyInput(in, r.rig, r.grab.Grip(), bowProps.Position, r.vp)

	events := r.physics.Update(frameDt, r.session)
	r.session.Tick(frameDt)
	return r.score.Resolve(events)
}

// shoot grabs, draws the string pull meters behind the notch and releases
func (r *rangeRig) shoot(pull float64) {
	r.frame(InputState{Grab: true})

	bowProps, _ := r.world.Properties(r.rng.Bow)
	notch := bow.ComputeNotchPose(bowProps.Pose(), geom.Zero, 0.08, 0.035).Position
	hand := notch.Sub(bowProps.Rotation.Front().Mul(pull))
	cx, cy := r.cursorAt(hand)

	for i := 0; i < 10; i++ {
		r.frame(InputState{CursorX: cx, CursorY: cy, Trigger: 1})
	}
	r.frame(InputState{CursorX: cx, CursorY: cy, Trigger: 0})
}

func TestLoadRange(t *testing.T) {
	r := newRangeRig(t, "demo")

	assert.True(t, r.rng.Bow.Valid())
	assert.Equal(t, r.rng.Bow, r.world.BowID)
	assert.Len(t, r.rng.Targets, 3)
	assert.True(t, r.rng.BeamDisabler.Valid())
	assert.Equal(t, 3, r.world.Count(entity.KindTarget))

	bowProps, ok := r.world.Properties(r.rng.Bow)
	require.True(t, ok)
	assert.True(t, entity.IsGrabbable(bowProps.UserData))
	assert.True(t, bowProps.Rotation.Front().ApproxEqual(geom.V3(1, 0, 0), 1e-9), "yaw -90 faces down range")

	far, _ := r.world.Properties(r.rng.Targets[2])
	assert.Equal(t, "far-butt", far.Name)
	assert.Equal(t, 25, far.Points)
}

func TestLoadRange_NoBeamDisabler(t *testing.T) {
	r := newRangeRig(t, "long")
	assert.False(t, r.rng.BeamDisabler.Valid())
	assert.Zero(t, r.world.Count(entity.KindBeamDisabler))
}

func TestLoadRange_InvalidTarget(t *testing.T) {
	cfg := &config.RangeConfig{
		Bow: config.BowSpawnConfig{Position: geom.V3(0, 1, 0), Dimensions: geom.V3(0.1, 1, 0.1)},
		Targets: []config.TargetConfig{
			{Name: "flat", Position: geom.V3(5, 1, 0), Dimensions: geom.V3(0, 1, 1)},
		},
	}

	_, err := LoadRange(ecs.NewWorld(), cfg, config.DefaultBowConfig().Grab)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"flat"`)
}

func TestGrabSystem(t *testing.T) {
	r := newRangeRig(t, "demo")

	var grabbed, released []entity.Hand
	r.grab.OnGrab = func(h entity.Hand) { grabbed = append(grabbed, h) }
	r.grab.OnRelease = func(h entity.Hand) { released = append(released, h) }

	r.frame(InputState{SwitchHand: true})
	assert.Equal(t, entity.HandRight, r.grab.Grip())

	r.frame(InputState{Grab: true})
	assert.True(t, r.session.Grabbed())
	assert.Equal(t, entity.HandRight, r.session.GripHand())

	bowProps, _ := r.world.Properties(r.rng.Bow)
	assert.True(t, bowProps.IgnoreForCollisions, "held bow is not solid")
	assert.False(t, entity.IsGrabbable(bowProps.UserData))

	r.frame(InputState{SwitchHand: true})
	assert.Equal(t, entity.HandRight, r.grab.Grip(), "cannot switch while held")

	r.frame(InputState{Release: true})
	assert.False(t, r.session.Grabbed())
	bowProps, _ = r.world.Properties(r.rng.Bow)
	assert.False(t, bowProps.IgnoreForCollisions)

	assert.Equal(t, []entity.Hand{entity.HandRight}, grabbed)
	assert.Equal(t, []entity.Hand{entity.HandRight}, released)
}

func TestGrabSystem_BeamDisabler(t *testing.T) {
	r := newRangeRig(t, "demo")
	r.frame(InputState{Grab: true})

	props, ok := r.world.Properties(r.rng.BeamDisabler)
	require.True(t, ok)
	var d entity.BeamDisablerData
	found, err := entity.CustomData(props.UserData, entity.BeamDisablerKey, &d)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "right", d.HandToDisable)
}

func TestGrabSystem_Aim(t *testing.T) {
	r := newRangeRig(t, "demo")

	for i := 0; i < 30; i++ {
		r.frame(InputState{PitchUp: true})
	}
	assert.Equal(t, 30.0, r.grab.PitchDeg())

	bowProps, _ := r.world.Properties(r.rng.Bow)
	front := bowProps.Rotation.Front()
	expected := geom.V3(math.Cos(math.Pi/6), math.Sin(math.Pi/6), 0)
	assert.True(t, front.ApproxEqual(expected, 1e-9), "got %v", front)

	for i := 0; i < 500; i++ {
		r.frame(InputState{PitchDown: true})
	}
	assert.Equal(t, float64(MinPitchDeg), r.grab.PitchDeg())
}

func TestGrabSystem_AimLogsEditFailure(t *testing.T) {
	r := newRangeRig(t, "demo")
	var buf bytes.Buffer
	r.grab.Logger = log.New(&buf, "", 0)

	r.grab.Apply([]Intent{AimIntent{DeltaDeg: 5}})
	assert.Empty(t, buf.String())

	r.world.Destroy(r.rng.Bow)
	r.grab.Apply([]Intent{AimIntent{DeltaDeg: 5}})
	assert.Contains(t, buf.String(), "failed to aim bow")
}

func TestFullShot_HitsNearButt(t *testing.T) {
	r := newRangeRig(t, "demo")

	r.shoot(0.6)
	require.False(t, r.session.Drawing())
	require.Equal(t, 1, r.session.Stats().Shots)

	var hits []Hit
	for i := 0; i < 120; i++ {
		hits = append(hits, r.frame(InputState{})...)
	}

	require.Len(t, hits, 1)
	assert.Equal(t, "near-butt", hits[0].Name)
	assert.Equal(t, 10, r.score.Score())
	assert.Equal(t, 1, r.session.Stats().Hits)

	arrow, ok := r.world.Properties(hits[0].Arrow)
	require.True(t, ok)
	assert.Equal(t, geom.Zero, arrow.Velocity, "struck arrow is frozen")
	assert.False(t, arrow.CollisionsWillMove)
	assert.Contains(t, r.audio.played, entity.SoundArrowHit)
}

func TestFullShot_ArrowExpires(t *testing.T) {
	r := newRangeRig(t, "demo")

	r.shoot(0.6)
	require.Equal(t, 1, r.world.Count(entity.KindArrow))

	for i := 0; i < 60*11; i++ {
		r.frame(InputState{})
	}

	assert.Zero(t, r.world.Count(entity.KindArrow), "released arrows live for their lifetime only")
	assert.Equal(t, 1, r.world.Destroyed(entity.KindArrow))
}

func TestFullShot_NoLeaks(t *testing.T) {
	r := newRangeRig(t, "demo")

	r.shoot(0.4)
	r.shoot(0.5)
	// a third draw abandoned by letting go of the bow
	r.frame(InputState{CursorX: 0, CursorY: 300, Trigger: 1})
	r.frame(InputState{CursorX: 0, CursorY: 300, Trigger: 1})
	r.frame(InputState{Release: true})

	for _, kind := range []entity.ObjectKind{entity.KindStringLine, entity.KindRestLine} {
		assert.Equal(t, r.world.Created(kind), r.world.Destroyed(kind), kind.String())
	}
	arrows := r.world.Created(entity.KindArrow)
	assert.Equal(t, 3, arrows)
	assert.Equal(t, arrows, r.world.Destroyed(entity.KindArrow)+r.session.Stats().Shots)
}

func TestPhysicsSystem_RoutesCollisions(t *testing.T) {
	w := ecs.NewWorld()
	_, err := w.Create(entity.TargetSpec{Name: "butt", Position: geom.V3(1, 0, 0), Dimensions: geom.V3(0.2, 1, 1), Points: 5})
	require.NoError(t, err)

	arrow, err := w.Create(entity.ArrowSpec{
		Name:           "Hifi-Arrow",
		Rotation:       geom.RotationBetween(geom.Front, geom.V3(1, 0, 0)),
		Dimensions:     geom.V3(0.02, 0.02, 0.64),
		CollisionSound: entity.SoundArrowHit,
	})
	require.NoError(t, err)
	require.NoError(t, w.Edit(arrow, entity.Edit{
		CollisionsWillMove:  entity.Ptr(true),
		IgnoreForCollisions: entity.Ptr(false),
		Velocity:            entity.Ptr(geom.V3(10, 0, 0)),
	}))

	sink := &recordingSink{}
	sys := NewPhysicsSystem(w)
	score := NewScoreSystem(w, nil)

	var events []entity.CollisionEvent
	for i := 0; i < 10; i++ {
		events = append(events, sys.Update(frameDt, sink)...)
	}

	require.Len(t, events, 1)
	assert.Equal(t, events, sink.events)

	hits := score.Resolve(events)
	require.Len(t, hits, 1)
	assert.Equal(t, 5, hits[0].Points)
	assert.Equal(t, 5, score.Score())

	score.Reset()
	assert.Zero(t, score.Score())
	assert.Empty(t, score.Hits())
}

func TestScoreSystem_IgnoresNonTargets(t *testing.T) {
	w := ecs.NewWorld()
	a, _ := w.Create(entity.BeamDisablerSpec{Name: "x"})
	b, _ := w.Create(entity.BeamDisablerSpec{Name: "y"})

	score := NewScoreSystem(w, nil)
	hits := score.Resolve([]entity.CollisionEvent{{Self: a, Other: b}})

	assert.Empty(t, hits)
	assert.Zero(t, score.Score())
}

type recordingSink struct {
	events []entity.CollisionEvent
}

func (s *recordingSink) NotifyCollision(ev entity.CollisionEvent) {
	s.events = append(s.events, ev)
}
