package system

import (
	"fmt"

	"github.com/younwookim/toybow/internal/domain/entity"
	"github.com/younwookim/toybow/internal/domain/geom"
	"github.com/younwookim/toybow/internal/ecs"
	"github.com/younwookim/toybow/internal/infrastructure/config"
)

// beamDisablerHeight places the beam disabler above the avatar's feet (m)
const beamDisablerHeight = 0.5

// Range is what LoadRange placed in the world
type Range struct {
	Bow          entity.Handle
	Targets      []entity.Handle
	BeamDisabler entity.Handle
	Avatar       geom.Vec3
}

// LoadRange populates w with the bow, targets and beam disabler of cfg
func LoadRange(w *ecs.World, cfg *config.RangeConfig, grab config.GrabConfig) (*Range, error) {
	r := &Range{Avatar: cfg.Avatar}

	userData, err := entity.SetCustomData(nil, entity.GrabbableKey, entity.GrabbableData{
		Grabbable:            true,
		InvertSolidWhileHeld: true,
		TurnOffOppositeBeam:  true,
		SpatialKey:           grab.SpatialKey(),
	})
	if err != nil {
		return nil, err
	}

	r.Bow, err = w.Create(entity.BowSpec{
		Name:       "Hifi-Bow",
		Position:   cfg.Bow.Position,
		Rotation:   geom.FromPitchYawRollDegrees(cfg.Bow.PitchDeg, cfg.Bow.YawDeg, 0),
		Dimensions: cfg.Bow.Dimensions,
		UserData:   userData,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bow: %w", err)
	}

	for _, tc := range cfg.Targets {
		id, err := w.Create(entity.TargetSpec{
			Name:       tc.Name,
			Position:   tc.Position,
			Dimensions: tc.Dimensions,
			Points:     tc.Points,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create target %q: %w", tc.Name, err)
		}
		r.Targets = append(r.Targets, id)
	}

	if cfg.BeamDisabler {
		r.BeamDisabler, err = w.Create(entity.BeamDisablerSpec{
			Name:     grab.BeamDisablerName,
			Position: cfg.Avatar.Add(geom.V3(0, beamDisablerHeight, 0)),
			UserData: entity.MustUserData(entity.BeamDisablerKey, entity.BeamDisablerData{HandToDisable: entity.HandNone}),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create beam disabler: %w", err)
		}
	}

	return r, nil
}
