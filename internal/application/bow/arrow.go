package bow

import (
	"github.com/younwookim/toybow/internal/domain/entity"
	"github.com/younwookim/toybow/internal/domain/geom"
)

// NotchPoint is where the arrow sits on the string for one frame
type NotchPoint struct {
	Position geom.Vec3
	Rotation geom.Quat
	// HandToNotch points from the string hand to the notch
	HandToNotch geom.Vec3
}

// PullDistance is how far the string hand is from the notch (m)
func (n NotchPoint) PullDistance() float64 {
	return n.HandToNotch.Length()
}

// ComputeNotchPose places the notch on the bow and aims the arrow from the
// string hand through it
func ComputeNotchPose(pose entity.BowPose, stringHand geom.Vec3, forward, up float64) NotchPoint {
	pos := geom.Offset(pose.Position, pose.Rotation.Front(), forward)
	pos = geom.Offset(pos, pose.Rotation.Up(), up)

	handToNotch := pos.Sub(stringHand)
	return NotchPoint{
		Position:    pos,
		Rotation:    geom.RotationBetween(geom.Front, handToNotch),
		HandToNotch: handToNotch,
	}
}

// ArrowRearPosition returns the nock end of an arrow at pos/rot
func ArrowRearPosition(pos geom.Vec3, rot geom.Quat, tipOffset float64) geom.Vec3 {
	return geom.Offset(pos, rot.Front(), -tipOffset)
}

// ReleaseVelocity scales the hand-to-notch vector by the mapped pull force
func ReleaseVelocity(n NotchPoint, strength entity.ShotScaleMapping) geom.Vec3 {
	return n.HandToNotch.Mul(strength.Map(n.PullDistance()))
}

// spawnArrow creates a non-physical arrow at the bow and notches it
func (s *Session) spawnArrow() {
	s.playSound(entity.SoundNotch, s.cfg.Sounds.Notch)

	h, err := s.create(entity.ArrowSpec{
		Name:             s.cfg.Arrow.Name,
		Position:         s.pose.Position,
		Rotation:         geom.Identity,
		Dimensions:       s.cfg.Arrow.Dimensions,
		ModelRef:         s.cfg.Arrow.ModelRef,
		CollisionHullRef: s.cfg.Arrow.CollisionHullRef,
		CollisionSound:   entity.SoundArrowHit,
		Damping:          s.cfg.Arrow.Damping,
		UserData:         entity.NotGrabbable(),
	})
	if err != nil {
		s.logger.Printf("bow: failed to create arrow: %v", err)
		return
	}
	if !h.Valid() {
		return
	}

	s.arrow = h
	s.arrowNotched = true
	s.arrows[h] = struct{}{}
	s.stats.Arrows++
}

// updateNotch keeps the arrow on the notch, or launches it on release
func (s *Session) updateNotch(notch NotchPoint, release bool) {
	if !release {
		s.edit(s.arrow, entity.Edit{
			Position: entity.Ptr(notch.Position),
			Rotation: entity.Ptr(notch.Rotation),
		})
		return
	}

	velocity := ReleaseVelocity(notch, s.cfg.ShotStrength)
	if s.arrow.Valid() {
		s.edit(s.arrow, entity.Edit{
			CollisionsWillMove:  entity.Ptr(true),
			IgnoreForCollisions: entity.Ptr(false),
			Velocity:            entity.Ptr(velocity),
			Gravity:             entity.Ptr(s.cfg.Arrow.Gravity),
			Lifetime:            entity.Ptr(s.cfg.Arrow.Lifetime),
			Position:            entity.Ptr(notch.Position),
			Rotation:            entity.Ptr(notch.Rotation),
		})

		released := s.arrow
		s.arrow = 0
		s.stats.Shots++
		if s.OnShot != nil {
			s.OnShot(released, velocity)
		}
	}

	s.playSound(entity.SoundShoot, s.cfg.Sounds.Shoot)
	s.pullSound = 0
	s.destroyDrawStrings()
	s.edit(s.restString, entity.Edit{Visible: entity.Ptr(true)})
}

// NotifyCollision queues a collision for the next Tick
func (s *Session) NotifyCollision(ev entity.CollisionEvent) {
	s.inbox = append(s.inbox, ev)
}

// drainCollisions handles queued collisions and forgets expired arrows
func (s *Session) drainCollisions() {
	events := s.inbox
	s.inbox = nil
	for _, ev := range events {
		if s.Owns(ev.Self) {
			s.onArrowCollision(ev)
		}
	}

	for h := range s.arrows {
		if _, ok := s.store.Properties(h); !ok {
			delete(s.arrows, h)
		}
	}
}

// onArrowCollision freezes the arrow where it struck
func (s *Session) onArrowCollision(ev entity.CollisionEvent) {
	s.edit(ev.Self, entity.Edit{
		Velocity:           entity.Ptr(geom.Zero),
		Gravity:            entity.Ptr(geom.Zero),
		CollisionsWillMove: entity.Ptr(false),
	})
	s.stats.Hits++
	s.logger.Printf("bow: arrow %d collided with %d", ev.Self, ev.Other)

	if s.OnArrowHit != nil {
		s.OnArrowHit(ev)
	}
}
