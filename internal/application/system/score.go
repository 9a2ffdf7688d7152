package system

import (
	"github.com/younwookim/toybow/internal/application/bow"
	"github.com/younwookim/toybow/internal/domain/entity"
	"github.com/younwookim/toybow/internal/domain/geom"
	"github.com/younwookim/toybow/internal/ecs"
)

// ImpactVolume is the volume of an arrow's collision sound
const ImpactVolume = 0.3

// Hit is one arrow striking one target
type Hit struct {
	Arrow  entity.Handle
	Target entity.Handle
	Name   string
	Points int
	At     geom.Vec3
}

// ScoreSystem turns arrow collisions into points and impact sounds
type ScoreSystem struct {
	world *ecs.World
	audio bow.AudioPlayer

	score int
	hits  []Hit

	// Event callbacks
	OnHit func(hit Hit)
}

// NewScoreSystem creates a score system; audio may be nil
func NewScoreSystem(world *ecs.World, audio bow.AudioPlayer) *ScoreSystem {
	return &ScoreSystem{
		world: world,
		audio: audio,
		hits:  make([]Hit, 0, 16),
	}
}

// Resolve scores every event whose Self is an arrow and Other a target
func (s *ScoreSystem) Resolve(events []entity.CollisionEvent) []Hit {
	var out []Hit
	for _, ev := range events {
		if _, ok := s.world.IsArrow[ev.Self]; !ok {
			continue
		}
		if _, ok := s.world.IsTarget[ev.Other]; !ok {
			continue
		}

		target, _ := s.world.Properties(ev.Other)
		hit := Hit{
			Arrow:  ev.Self,
			Target: ev.Other,
			Name:   target.Name,
			Points: target.Points,
			At:     ev.Contact,
		}
		s.score += hit.Points
		s.hits = append(s.hits, hit)
		out = append(out, hit)

		s.playImpact(ev)
		if s.OnHit != nil {
			s.OnHit(hit)
		}
	}
	return out
}

func (s *ScoreSystem) playImpact(ev entity.CollisionEvent) {
	if s.audio == nil {
		return
	}
	arrow, ok := s.world.Properties(ev.Self)
	if !ok || arrow.CollisionSound == entity.SoundNone {
		return
	}
	s.audio.PlaySound(arrow.CollisionSound, entity.SoundOptions{Volume: ImpactVolume, Position: ev.Contact})
}

// Score returns the total points
func (s *ScoreSystem) Score() int { return s.score }

// Hits returns every hit so far, oldest first
func (s *ScoreSystem) Hits() []Hit { return s.hits }

// Reset clears score and hits
func (s *ScoreSystem) Reset() {
	s.score = 0
	s.hits = s.hits[:0]
}
