package config

import (
	"fmt"
	"image/color"

	"github.com/younwookim/toybow/internal/domain/entity"
	"github.com/younwookim/toybow/internal/domain/geom"
)

// BowConfig is the root config for bow.json
type BowConfig struct {
	Draw               DrawConfig              `json:"draw"`
	Notch              NotchConfig             `json:"notch"`
	String             StringConfig            `json:"string"`
	Arrow              ArrowConfig             `json:"arrow"`
	ShotStrength       entity.ShotScaleMapping `json:"shotStrength"`
	PullVolume         entity.ShotScaleMapping `json:"pullVolume"`
	ModulatePullVolume bool                    `json:"modulatePullVolume"`
	Sounds             SoundVolumes            `json:"sounds"`
	Grab               GrabConfig              `json:"grab"`
}

// DrawConfig configures trigger sampling
type DrawConfig struct {
	Threshold  float64 `json:"threshold"`  // trigger value that starts/keeps a draw
	DebounceMs int     `json:"debounceMs"` // 0 = process every frame
}

// NotchConfig places the nock point relative to the bow
type NotchConfig struct {
	Forward float64 `json:"forward"` // along the bow's front axis (m)
	Up      float64 `json:"up"`      // along the bow's up axis (m)
}

// StringConfig configures the bowstring lines
type StringConfig struct {
	TopOffset      float64    `json:"topOffset"`    // up-axis distance to the top anchor (m)
	BottomOffset   float64    `json:"bottomOffset"` // down-axis distance to the bottom anchor (m)
	BackOffset     float64    `json:"backOffset"`   // backward distance along the front axis (m)
	LineDimensions geom.Vec3  `json:"lineDimensions"`
	LineWidth      float64    `json:"lineWidth"`
	Color          color.RGBA `json:"color"`
	TopName        string     `json:"topName"`
	BottomName     string     `json:"bottomName"`
	RestName       string     `json:"restName"`
}

// ArrowConfig configures the arrow object and its flight on release
type ArrowConfig struct {
	Name             string    `json:"name"`
	Dimensions       geom.Vec3 `json:"dimensions"`
	TipOffset        float64   `json:"tipOffset"` // arrow center to nock (m)
	Gravity          geom.Vec3 `json:"gravity"`
	Lifetime         float64   `json:"lifetime"` // seconds after release
	Damping          float64   `json:"damping"`
	ModelRef         string    `json:"modelRef"`
	CollisionHullRef string    `json:"collisionHullRef"`
}

// SoundVolumes holds the fixed playback volumes
type SoundVolumes struct {
	Notch      float64 `json:"notch"`
	StringPull float64 `json:"stringPull"`
	Shoot      float64 `json:"shoot"`
}

// GrabConfig configures grab metadata and the beam disabler lookup
type GrabConfig struct {
	SpatialPosition    geom.Vec3 `json:"spatialPosition"`
	SpatialPitchDeg    float64   `json:"spatialPitchDeg"`
	SpatialYawDeg      float64   `json:"spatialYawDeg"`
	SpatialRollDeg     float64   `json:"spatialRollDeg"`
	BeamDisablerName   string    `json:"beamDisablerName"`
	BeamDisablerRadius float64   `json:"beamDisablerRadius"`
}

// SpatialKey builds the grip offset written into the bow's grab metadata
func (g GrabConfig) SpatialKey() *entity.SpatialKey {
	return &entity.SpatialKey{
		RelativePosition: g.SpatialPosition,
		RelativeRotation: geom.FromPitchYawRollDegrees(g.SpatialPitchDeg, g.SpatialYawDeg, g.SpatialRollDeg),
	}
}

// DefaultBowConfig returns the tuned defaults for a hand-held bow
func DefaultBowConfig() BowConfig {
	return BowConfig{
		Draw: DrawConfig{
			Threshold: 0.80,
		},
		Notch: NotchConfig{
			Forward: 0.08,
			Up:      0.035,
		},
		String: StringConfig{
			TopOffset:      0.6,
			BottomOffset:   0.6,
			BackOffset:     0.1,
			LineDimensions: geom.V3(5, 5, 5),
			LineWidth:      5,
			Color:          color.RGBA{255, 255, 255, 255},
			TopName:        "Hifi-Bow-Top-String",
			BottomName:     "Hifi-Bow-Bottom-String",
			RestName:       "Hifi-Pre-Notch-String",
		},
		Arrow: ArrowConfig{
			Name:             "Hifi-Arrow",
			Dimensions:       geom.V3(0.02, 0.02, 0.64),
			TipOffset:        0.32,
			Gravity:          geom.V3(0, -4.8, 0),
			Lifetime:         10,
			Damping:          0.01,
			ModelRef:         "models/newarrow_textured.fbx",
			CollisionHullRef: "models/newarrow_collision_hull.obj",
		},
		ShotStrength:       entity.DefaultShotStrength(),
		PullVolume:         entity.DefaultPullVolume(),
		ModulatePullVolume: true,
		Sounds: SoundVolumes{
			Notch:      0.25,
			StringPull: 0.15,
			Shoot:      0.20,
		},
		Grab: GrabConfig{
			SpatialPosition:    geom.V3(0, 0.06, 0.11),
			SpatialPitchDeg:    0,
			SpatialYawDeg:      -90,
			SpatialRollDeg:     90,
			BeamDisablerName:   entity.BeamDisablerName,
			BeamDisablerRadius: 1,
		},
	}
}

// Validate rejects configurations the bow cannot run with
func (c *BowConfig) Validate() error {
	if c.Draw.Threshold <= 0 || c.Draw.Threshold > 1 {
		return fmt.Errorf("draw threshold %v outside (0,1]", c.Draw.Threshold)
	}
	if c.Draw.DebounceMs < 0 {
		return fmt.Errorf("draw debounce %dms negative", c.Draw.DebounceMs)
	}
	if err := c.ShotStrength.Validate(); err != nil {
		return fmt.Errorf("shotStrength: %w", err)
	}
	if err := c.PullVolume.Validate(); err != nil {
		return fmt.Errorf("pullVolume: %w", err)
	}
	if c.Arrow.Lifetime <= 0 {
		return fmt.Errorf("arrow lifetime %v must be positive", c.Arrow.Lifetime)
	}
	d := c.Arrow.Dimensions
	if d.X <= 0 || d.Y <= 0 || d.Z <= 0 {
		return fmt.Errorf("arrow dimensions %v must be positive", d)
	}
	if c.Grab.BeamDisablerRadius < 0 {
		return fmt.Errorf("beam disabler radius %v negative", c.Grab.BeamDisablerRadius)
	}
	return nil
}
