package entity

import "github.com/younwookim/toybow/internal/domain/geom"

// SoundRef names a preloaded sound
type SoundRef int

const (
	SoundNone SoundRef = iota
	SoundNotch
	SoundStringPull
	SoundShoot
	SoundArrowHit
)

// String returns the sound name
func (s SoundRef) String() string {
	switch s {
	case SoundNone:
		return "none"
	case SoundNotch:
		return "notch"
	case SoundStringPull:
		return "stringPull"
	case SoundShoot:
		return "shoot"
	case SoundArrowHit:
		return "arrowHit"
	default:
		return "unknown"
	}
}

// SoundOptions are the per-play volume and emitter position
type SoundOptions struct {
	Volume   float64
	Position geom.Vec3
}

// SoundID identifies a playing sound; 0 means nothing is playing
type SoundID uint64
