package system

import (
	"github.com/younwookim/toybow/internal/domain/entity"
	"github.com/younwookim/toybow/internal/ecs"
)

// CollisionSink receives collision events, e.g. a bow session's inbox
type CollisionSink interface {
	NotifyCollision(ev entity.CollisionEvent)
}

// PhysicsSystem steps the host world and routes its collisions
type PhysicsSystem struct {
	world *ecs.World
}

// NewPhysicsSystem creates a new physics system
func NewPhysicsSystem(world *ecs.World) *PhysicsSystem {
	return &PhysicsSystem{world: world}
}

// Update advances the world by dt and delivers every collision to sinks.
// The events are returned for scoring.
func (s *PhysicsSystem) Update(dt float64, sinks ...CollisionSink) []entity.CollisionEvent {
	s.world.Step(dt)

	events := s.world.DrainCollisions()
	for _, ev := range events {
		for _, sink := range sinks {
			sink.NotifyCollision(ev)
		}
	}
	return events
}
