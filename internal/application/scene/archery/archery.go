// Package archery provides the shooting range scene.
package archery

import (
	"fmt"
	"log"

	"github.com/younwookim/toybow/internal/application/bow"
	"github.com/younwookim/toybow/internal/application/replay"
	"github.com/younwookim/toybow/internal/application/scene"
	"github.com/younwookim/toybow/internal/application/state"
	"github.com/younwookim/toybow/internal/application/system"
	"github.com/younwookim/toybow/internal/domain/entity"
	"github.com/younwookim/toybow/internal/domain/geom"
	"github.com/younwookim/toybow/internal/ecs"
	"github.com/younwookim/toybow/internal/infrastructure/config"
)

const (
	// PitchStepDeg is how far W/S tilt the bow per frame
	PitchStepDeg = 1.0
	// hitFlashFrames is how long a struck target stays highlighted
	hitFlashFrames = 20
	// earHeight places the audio listener above the avatar's feet (m)
	earHeight = 1.6
)

// InputSource supplies one frame of input. ok is false once the source is
// exhausted (end of a replay).
type InputSource interface {
	GetInput() (system.InputState, bool)
}

// liveInput reads keyboard, mouse and gamepads every frame
type liveInput struct {
	sys *system.InputSystem
}

func (l liveInput) GetInput() (system.InputState, bool) {
	return l.sys.GetInput(), true
}

// listener is implemented by audio players with positional sound
type listener interface {
	SetListener(pos geom.Vec3)
}

// Options configures a range session
type Options struct {
	Hand       entity.Hand     // grip hand for the first grab
	Input      InputSource     // nil = keyboard, mouse and gamepads
	Audio      bow.AudioPlayer // nil = silent
	RecordPath string          // non-empty = record input to this file
	Logger     *log.Logger     // nil = log.Default()
}

// Summary totals a session
type Summary struct {
	Frames int
	Arrows int
	Shots  int
	Hits   int
	Score  int
}

// Archery is the shooting range scene
type Archery struct {
	cfg       *config.GameConfig
	rangeName string
	state     state.SceneState
	logger    *log.Logger

	world         *ecs.World
	rng           *system.Range
	rig           *system.HandRig
	session       *bow.Session
	input         InputSource
	grabSystem    *system.GrabSystem
	physicsSystem *system.PhysicsSystem
	scoreSystem   *system.ScoreSystem

	vp      system.Viewport
	screenW int
	screenH int
	dt      float64
	frame   int

	// Feedback
	lastHit  *system.Hit
	hitFlash int

	// Input recording
	recorder       *replay.Recorder
	recordFilename string
}

// New loads cfg.Range into a fresh world and hands the bow to a session
func New(cfg *config.GameConfig, opts Options) (*Archery, error) {
	if cfg.Range == nil {
		return nil, fmt.Errorf("no range loaded")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	world := ecs.NewWorld()
	rng, err := system.LoadRange(world, cfg.Range, cfg.Bow.Grab)
	if err != nil {
		return nil, fmt.Errorf("failed to load range %s: %w", cfg.Range.ID, err)
	}

	input := opts.Input
	if input == nil {
		input = liveInput{sys: system.NewInputSystem()}
	}

	if l, ok := opts.Audio.(listener); ok {
		l.SetListener(rng.Avatar.Add(geom.V3(0, earHeight, 0)))
	}

	rig := system.NewHandRig(rng.Avatar)
	session := bow.NewSession(rng.Bow, cfg.Bow, bow.Host{
		Store:  world,
		Input:  rig,
		Audio:  opts.Audio,
		Logger: logger,
	})

	view := cfg.Range.View
	framerate := view.Framerate
	if framerate <= 0 {
		framerate = 60
	}

	a := &Archery{
		cfg:            cfg,
		rangeName:      cfg.Range.ID,
		state:          state.StatePlaying,
		logger:         logger,
		world:          world,
		rng:            rng,
		rig:            rig,
		session:        session,
		input:          input,
		grabSystem:     system.NewGrabSystem(session, world, opts.Hand, cfg.Range.Bow.PitchDeg, cfg.Range.Bow.YawDeg),
		physicsSystem:  system.NewPhysicsSystem(world),
		scoreSystem:    system.NewScoreSystem(world, opts.Audio),
		vp:             system.NewViewport(view),
		screenW:        view.ScreenWidth,
		screenH:        view.ScreenHeight,
		dt:             1.0 / float64(framerate),
		recordFilename: opts.RecordPath,
	}

	// Initialize recorder if recording is enabled
	if opts.RecordPath != "" {
		a.recorder = replay.NewRecorder(a.rangeName, opts.Hand.String())
		logger.Printf("Recording enabled: %s", opts.RecordPath)
	}

	a.grabSystem.Logger = logger
	a.grabSystem.OnGrab = func(hand entity.Hand) {
		logger.Printf("bow grabbed with %s hand", hand)
	}
	a.grabSystem.OnRelease = func(hand entity.Hand) {
		logger.Printf("bow released from %s hand", hand)
	}
	a.scoreSystem.OnHit = func(hit system.Hit) {
		a.lastHit = &hit
		a.hitFlash = hitFlashFrames
		logger.Printf("hit %s for %d (score %d)", hit.Name, hit.Points, a.scoreSystem.Score())
	}

	return a, nil
}

// Update proceeds the range by one frame (implements scene.Scene)
func (a *Archery) Update(_ float64) (scene.Scene, error) {
	if a.state == state.StateReplayDone {
		return nil, nil
	}

	in, ok := a.input.GetInput()
	if !ok {
		a.finish()
		return nil, nil
	}
	a.Step(in)

	return nil, nil // nil = stay on this scene
}

// Step runs one frame with the given input: intents, hand rig, world step,
// collision routing, bow tick, scoring
func (a *Archery) Step(in system.InputState) {
	// Record input if recording is enabled
	if a.recorder != nil {
		a.recorder.RecordFrame(in)
	}
	a.frame++

	switch a.state {
	case state.StatePaused:
		if in.Pause {
			a.state = state.StatePlaying
		}
		return
	case state.StatePlaying:
		if in.Pause {
			a.state = state.StatePaused
			return
		}
	default:
		return
	}

	a.grabSystem.Apply(system.CollectIntents(in, a.grabSystem.Grip(), PitchStepDeg))
	system.ApplyInput(in, a.rig, a.grabSystem.Grip(), a.bowPosition(), a.vp)

	events := a.physicsSystem.Update(a.dt, a.session)
	a.session.Tick(a.dt)
	a.scoreSystem.Resolve(events)

	if a.hitFlash > 0 {
		a.hitFlash--
	}
}

// RunToEnd steps until the input source is exhausted. Only meaningful for
// finite sources such as a replay.
func (a *Archery) RunToEnd() Summary {
	for a.state != state.StateReplayDone {
		_, _ = a.Update(a.dt)
	}
	return a.Summary()
}

// finish stops the scene once the input source runs out
func (a *Archery) finish() {
	a.state = state.StateReplayDone
	s := a.Summary()
	a.logger.Printf("replay finished: %d frames, %d arrows, %d shots, %d hits, score %d",
		s.Frames, s.Arrows, s.Shots, s.Hits, s.Score)
}

// Summary totals the session so far
func (a *Archery) Summary() Summary {
	stats := a.session.Stats()
	return Summary{
		Frames: a.frame,
		Arrows: stats.Arrows,
		Shots:  stats.Shots,
		Hits:   len(a.scoreSystem.Hits()),
		Score:  a.scoreSystem.Score(),
	}
}

func (a *Archery) bowPosition() geom.Vec3 {
	props, ok := a.world.Properties(a.rng.Bow)
	if !ok {
		return a.rng.Avatar
	}
	return props.Position
}

// saveRecording saves the current recording to file
func (a *Archery) saveRecording() {
	if a.recorder == nil || a.recordFilename == "" {
		return
	}
	if a.recorder.FrameCount() == 0 {
		return
	}

	if err := a.recorder.Save(a.recordFilename); err != nil {
		a.logger.Printf("Failed to save recording: %v", err)
	} else {
		a.logger.Printf("Recording saved: %s (%d frames)", a.recordFilename, a.recorder.FrameCount())
	}
}

// State returns the scene state
func (a *Archery) State() state.SceneState { return a.state }

// World returns the host world
func (a *Archery) World() *ecs.World { return a.world }

// Session returns the bow session
func (a *Archery) Session() *bow.Session { return a.session }

// Viewport returns the world-to-screen mapping
func (a *Archery) Viewport() system.Viewport { return a.vp }

// Grip returns the hand that holds or will grab the bow
func (a *Archery) Grip() entity.Hand { return a.grabSystem.Grip() }

// OnEnter is called when the scene becomes active
func (a *Archery) OnEnter() {
	a.logger.Printf("range %q ready: %d targets", a.cfg.Range.Name, len(a.rng.Targets))
}

// OnExit saves any recording and unloads the bow
func (a *Archery) OnExit() {
	a.saveRecording()
	if a.recorder != nil {
		a.recorder.Stop()
	}
	a.session.Unload()
}
