package ecs

import (
	"math"
	"sort"

	"github.com/younwookim/toybow/internal/domain/entity"
	"github.com/younwookim/toybow/internal/domain/geom"
)

// MaxSubstepDistance bounds how far a body moves between collision checks (m).
// It is well under the thinnest target so fast arrows cannot tunnel.
const MaxSubstepDistance = 0.05

// Step advances the world by dt seconds
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	ApplyGravity(w, dt)
	ApplyDamping(w, dt)
	IntegrateBodies(w, dt)
	AgeLifetimes(w, dt)
}

// ApplyGravity accelerates every dynamic body by its own gravity vector
func ApplyGravity(w *World, dt float64) {
	for id, body := range w.Body {
		if !body.Dynamic() {
			continue
		}
		body.Velocity = body.Velocity.Add(body.Gravity.Mul(dt))
		w.Body[id] = body
	}
}

// ApplyDamping removes a fraction of velocity per second: v *= (1-d)^dt
func ApplyDamping(w *World, dt float64) {
	for id, body := range w.Body {
		if !body.Dynamic() || body.Damping <= 0 {
			continue
		}
		body.Velocity = body.Velocity.Mul(math.Pow(1-body.Damping, dt))
		w.Body[id] = body
	}
}

// IntegrateBodies moves dynamic bodies and reports the first target each
// collidable body strikes. A body stops at the contact point for the rest of
// the step; halting it for good is up to whoever handles the collision.
func IntegrateBodies(w *World, dt float64) {
	targets := w.sortedTargets()

	for _, id := range w.sortedBodies() {
		body := w.Body[id]
		tr := w.Transform[id]

		move := body.Velocity.Mul(dt)
		dist := move.Length()
		if dist == 0 {
			continue
		}

		steps := int(math.Ceil(dist / MaxSubstepDistance))
		step := move.Mul(1 / float64(steps))

		for i := 0; i < steps; i++ {
			tr.Position = tr.Position.Add(step)
			if !body.Collidable() {
				continue
			}
			if target, ok := w.hitTarget(tr, targets); ok && w.reportCollision(id, target, tr.Tip()) {
				break
			}
		}

		w.Transform[id] = tr
	}
}

// AgeLifetimes ages every object with a lifetime and destroys expired ones
func AgeLifetimes(w *World, dt float64) {
	toDestroy := make([]EntityID, 0)

	for id, life := range w.Lifetime {
		if life.Limit <= 0 {
			continue
		}
		life.Age += dt
		if life.Expired() {
			toDestroy = append(toDestroy, id)
			continue
		}
		w.Lifetime[id] = life
	}

	for _, id := range toDestroy {
		w.DestroyEntity(id)
	}
}

func (w *World) hitTarget(tr Transform, targets []EntityID) (EntityID, bool) {
	tip := tr.Tip()
	for _, id := range targets {
		if w.Transform[id].Contains(tip) {
			return id, true
		}
	}
	return 0, false
}

// reportCollision queues one event per arrow/target pair and reports
// whether the event is new
func (w *World) reportCollision(self, other EntityID, contact geom.Vec3) bool {
	if prev, ok := w.struck[self]; ok && prev == other {
		return false
	}
	w.struck[self] = other
	w.collisions = append(w.collisions, entity.CollisionEvent{Self: self, Other: other, Contact: contact})
	return true
}

func (w *World) sortedBodies() []EntityID {
	ids := make([]EntityID, 0, len(w.Body))
	for id, body := range w.Body {
		if body.Dynamic() {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (w *World) sortedTargets() []EntityID {
	ids := make([]EntityID, 0, len(w.IsTarget))
	for id := range w.IsTarget {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
