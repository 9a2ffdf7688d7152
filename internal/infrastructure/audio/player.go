// Package audio plays the bow's synthesized sounds through the system
// speaker.
package audio

import (
	"log"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/younwookim/toybow/internal/domain/entity"
	"github.com/younwookim/toybow/internal/domain/geom"
	"github.com/younwookim/toybow/internal/infrastructure/config"
)

// Spatialization constants (meters)
const (
	// RefDistance is the distance up to which sounds play at full volume
	RefDistance = 2.0
	// PanDistance is the lateral offset at which a sound is fully panned
	PanDistance = 10.0
)

const maxSilentVoices = 32

// voice is one playing sound
type voice struct {
	volume *effects.Volume
	pan    *effects.Pan
	ctrl   *beep.Ctrl
	level  float64 // requested volume before spatialization
	done   atomic.Bool
}

// Player mixes bow sounds into a single speaker stream.
// An uninitialized player keeps track of voices but outputs nothing, so the
// game runs unchanged without an audio device.
type Player struct {
	mu          sync.Mutex
	cfg         config.AudioConfig
	rate        beep.SampleRate
	mixer       *beep.Mixer
	voices      map[entity.SoundID]*voice
	nextID      entity.SoundID
	listener    geom.Vec3
	initialized bool
	logger      *log.Logger
}

// NewPlayer creates a player; call Initialize to open the speaker
func NewPlayer(cfg config.AudioConfig, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = config.DefaultAudioConfig().SampleRate
	}
	return &Player{
		cfg:    cfg,
		rate:   beep.SampleRate(rate),
		mixer:  &beep.Mixer{},
		voices: make(map[entity.SoundID]*voice),
		logger: logger,
	}
}

// Initialize opens the speaker. It is a no-op when audio is disabled or
// already initialized.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.cfg.Enabled {
		return nil
	}

	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	p.logger.Printf("audio: speaker ready at %d Hz", p.rate)
	return nil
}

// Close silences every voice
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		speaker.Lock()
		p.mixer.Clear()
		speaker.Unlock()
		p.initialized = false
	}
	p.voices = make(map[entity.SoundID]*voice)
}

// SetListener moves the point sounds are heard from
func (p *Player) SetListener(pos geom.Vec3) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listener = pos
}

// PlaySound starts ref at opts.Volume from opts.Position
func (p *Player) PlaySound(ref entity.SoundRef, opts entity.SoundOptions) entity.SoundID {
	src := Synthesize(ref, p.rate)
	if src == nil {
		return 0
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.nextID++
	id := p.nextID
	p.prune()

	v := &voice{level: opts.Volume}
	v.volume = &effects.Volume{Streamer: src, Base: 2}
	v.pan = &effects.Pan{Streamer: v.volume}
	v.ctrl = &beep.Ctrl{Streamer: beep.Seq(v.pan, beep.Callback(func() { v.done.Store(true) }))}
	p.spatialize(v, opts.Position)
	p.voices[id] = v

	if p.initialized {
		speaker.Lock()
		p.mixer.Add(v.ctrl)
		speaker.Unlock()
	}
	return id
}

// AdjustSound changes the volume and position of a playing sound
func (p *Player) AdjustSound(id entity.SoundID, opts entity.SoundOptions) {
	p.mu.Lock()
	defer p.mu.Unlock()

	v, ok := p.voices[id]
	if !ok {
		return
	}

	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	v.level = opts.Volume
	p.spatialize(v, opts.Position)
}

// Volume returns the effective linear gain of a playing sound
func (p *Player) Volume(id entity.SoundID) (float64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	v, ok := p.voices[id]
	if !ok {
		return 0, false
	}
	if v.volume.Silent {
		return 0, true
	}
	return math.Pow(2, v.volume.Volume), true
}

// Pan returns the stereo pan of a playing sound in [-1, 1]
func (p *Player) Pan(id entity.SoundID) (float64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	v, ok := p.voices[id]
	if !ok {
		return 0, false
	}
	return v.pan.Pan, true
}

// Voices returns how many sounds are tracked
func (p *Player) Voices() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.voices)
}

// spatialize applies master volume, distance attenuation and pan to v
func (p *Player) spatialize(v *voice, pos geom.Vec3) {
	level := v.level * p.cfg.MasterVolume * Attenuation(pos.Distance(p.listener))
	v.volume.Volume, v.volume.Silent = LogGain(level)
	v.pan.Pan = PanFor(pos.X - p.listener.X)
}

// prune forgets voices that finished playing. Without a speaker nothing
// ever finishes, so only the newest maxSilentVoices are kept.
func (p *Player) prune() {
	for id, v := range p.voices {
		if v.done.Load() || (!p.initialized && id+maxSilentVoices <= p.nextID) {
			delete(p.voices, id)
		}
	}
}

// LogGain converts a linear volume into an effects.Volume setting (base 2).
// Zero and negative volumes are silent.
func LogGain(linear float64) (volume float64, silent bool) {
	if linear <= 0 {
		return 0, true
	}
	return math.Log2(linear), false
}

// Attenuation is 1 within RefDistance and falls off inversely beyond it
func Attenuation(distance float64) float64 {
	if distance <= RefDistance {
		return 1
	}
	return RefDistance / distance
}

// PanFor maps a lateral offset onto [-1, 1]
func PanFor(dx float64) float64 {
	return math.Max(-1, math.Min(1, dx/PanDistance))
}

func gain(s beep.Streamer, linear float64) beep.Streamer {
	vol, silent := LogGain(linear)
	return &effects.Volume{Streamer: s, Base: 2, Volume: vol, Silent: silent}
}
