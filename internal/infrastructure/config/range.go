package config

import "github.com/younwookim/toybow/internal/domain/geom"

// RangeConfig is the root config for ranges/<name>.json
type RangeConfig struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	View         ViewConfig     `json:"view"`
	Avatar       geom.Vec3      `json:"avatar"`
	Bow          BowSpawnConfig `json:"bow"`
	BeamDisabler bool           `json:"beamDisabler"`
	Targets      []TargetConfig `json:"targets"`
}

// ViewConfig maps the side-view world (meters) onto the screen (pixels)
type ViewConfig struct {
	ScreenWidth    int     `json:"screenWidth"`
	ScreenHeight   int     `json:"screenHeight"`
	Scale          int     `json:"scale"`
	Framerate      int     `json:"framerate"`
	PixelsPerMeter float64 `json:"pixelsPerMeter"`
	OriginX        float64 `json:"originX"` // screen X of world x=0
	OriginY        float64 `json:"originY"` // screen Y of world y=0
}

// BowSpawnConfig places the bow when the range loads
type BowSpawnConfig struct {
	Position   geom.Vec3 `json:"position"`
	Dimensions geom.Vec3 `json:"dimensions"`
	PitchDeg   float64   `json:"pitchDeg"`
	YawDeg     float64   `json:"yawDeg"`
}

// TargetConfig is one static box on the range
type TargetConfig struct {
	Name       string    `json:"name"`
	Position   geom.Vec3 `json:"position"`
	Dimensions geom.Vec3 `json:"dimensions"`
	Points     int       `json:"points"`
}

// AudioConfig configures the sound player
type AudioConfig struct {
	Enabled      bool    `json:"enabled" env:"AUDIO_ENABLED"`
	MasterVolume float64 `json:"masterVolume" env:"MASTER_VOLUME"`
	SampleRate   int     `json:"sampleRate" env:"SAMPLE_RATE"`
}

// DefaultAudioConfig returns audio defaults
func DefaultAudioConfig() AudioConfig {
	return AudioConfig{
		Enabled:      true,
		MasterVolume: 1.0,
		SampleRate:   44100,
	}
}
