package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"

	"github.com/younwookim/toybow/internal/domain/entity"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Durations of the synthesized effects
const (
	NotchDuration      = 40 * time.Millisecond
	StringPullDuration = 1500 * time.Millisecond
	ShootDuration      = 180 * time.Millisecond
	ArrowHitDuration   = 120 * time.Millisecond
)

// oscillator generates a raw wave for a fixed number of samples
type oscillator struct {
	freq     float64
	sweep    float64 // Hz added per second
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates an oscillator; sweep bends the frequency over time
func NewOscillator(freq, sweep float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		sweep:    sweep,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + int64(wave))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.rate)
		o.phase += (o.freq + o.sweep*t) / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping to a stream
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s with an attack ramp and a release ramp
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := e.gainAt(e.position)
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) gainAt(pos int) float64 {
	if e.attack > 0 && pos < e.attack {
		return float64(pos) / float64(e.attack)
	}
	if releaseStart := e.total - e.release; e.release > 0 && pos >= releaseStart {
		return math.Max(0, float64(e.total-pos)/float64(e.release))
	}
	return 1
}

func (e *envelope) Err() error { return e.streamer.Err() }

// Synthesize returns a fresh streamer for a bow sound, or nil for SoundNone
func Synthesize(ref entity.SoundRef, rate beep.SampleRate) beep.Streamer {
	switch ref {
	case entity.SoundNotch:
		// Wooden click
		osc := NewOscillator(1400, -8000, NotchDuration, WaveSquare, rate)
		return NewEnvelope(osc, NotchDuration, time.Millisecond, 30*time.Millisecond, rate)
	case entity.SoundStringPull:
		// Low creak that rises as the string tightens
		osc := NewOscillator(70, 40, StringPullDuration, WaveSaw, rate)
		return NewEnvelope(osc, StringPullDuration, 200*time.Millisecond, 300*time.Millisecond, rate)
	case entity.SoundShoot:
		// Twang on top of a whoosh
		twang := NewEnvelope(NewOscillator(220, -600, ShootDuration, WaveSine, rate), ShootDuration, 2*time.Millisecond, 150*time.Millisecond, rate)
		whoosh := NewEnvelope(NewOscillator(0, 0, ShootDuration, WaveNoise, rate), ShootDuration, 20*time.Millisecond, 120*time.Millisecond, rate)
		return beep.Mix(gain(twang, 0.7), gain(whoosh, 0.3))
	case entity.SoundArrowHit:
		// Thud
		body := NewEnvelope(NewOscillator(140, -300, ArrowHitDuration, WaveSine, rate), ArrowHitDuration, time.Millisecond, 100*time.Millisecond, rate)
		crack := NewEnvelope(NewOscillator(0, 0, ArrowHitDuration/3, WaveNoise, rate), ArrowHitDuration/3, 0, 30*time.Millisecond, rate)
		return beep.Mix(gain(body, 0.8), gain(crack, 0.4))
	default:
		return nil
	}
}

// Duration returns how long Synthesize(ref) plays
func Duration(ref entity.SoundRef) time.Duration {
	switch ref {
	case entity.SoundNotch:
		return NotchDuration
	case entity.SoundStringPull:
		return StringPullDuration
	case entity.SoundShoot:
		return ShootDuration
	case entity.SoundArrowHit:
		return ArrowHitDuration
	default:
		return 0
	}
}
