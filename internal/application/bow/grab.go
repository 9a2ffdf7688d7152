package bow

import "github.com/younwookim/toybow/internal/domain/entity"

// AssignHand records the hand that will grab the bow.
// It is rejected while the bow is held.
func (s *Session) AssignHand(hand entity.Hand) bool {
	if s.grabbed {
		return false
	}
	s.hand = hand
	return true
}

// StartGrab picks up the bow with the assigned hand
func (s *Session) StartGrab() bool {
	if s.grabbed {
		return false
	}

	s.grabbed = true
	s.gripHand = s.hand
	s.setBeamDisabler(s.gripHand.Opposite().String())
	s.writeGrabbable(false)

	if s.readPose() && !s.restString.Valid() {
		s.createRestString()
	}
	return true
}

// ContinueGrab is the per-frame update while the bow is held
func (s *Session) ContinueGrab(dt float64) {
	if !s.grabbed || s.debounced(dt) {
		return
	}
	if !s.readPose() {
		return
	}

	if !s.restString.Valid() {
		s.createRestString()
	}
	s.updateAnchorPositions()
	if !s.aiming {
		s.redrawRestString()
	}
	s.edit(s.restString, entity.Edit{Visible: entity.Ptr(!s.aiming)})

	s.sampleInput()
}

// ReleaseGrab lets go of the bow. Only the grip hand can release it.
func (s *Session) ReleaseGrab(hand entity.Hand) bool {
	if !s.grabbed || hand != s.gripHand {
		return false
	}

	s.setBeamDisabler(entity.HandNone)
	s.teardown()
	s.writeGrabbable(true)
	return true
}

// Unload destroys everything the session owns, held or not
func (s *Session) Unload() {
	if s.grabbed {
		s.setBeamDisabler(entity.HandNone)
	}
	s.teardown()
}

func (s *Session) teardown() {
	s.grabbed = false
	s.drawing = false
	s.aiming = false
	s.arrowNotched = false

	s.destroyDrawStrings()
	s.destroyRestString()
	if s.arrow.Valid() {
		delete(s.arrows, s.arrow)
	}
	s.destroy(&s.arrow)
	if s.pullSound != 0 {
		s.audio.AdjustSound(s.pullSound, entity.SoundOptions{Volume: 0, Position: s.pose.Position})
		s.pullSound = 0
	}
	s.sinceUpdate = 0
}

// writeGrabbable stamps the bow's grab metadata
func (s *Session) writeGrabbable(grabbable bool) {
	props, ok := s.store.Properties(s.bow)
	if !ok {
		s.logger.Printf("bow: bow object %d not found", s.bow)
		return
	}

	blob, err := entity.SetCustomData(props.UserData, entity.GrabbableKey, entity.GrabbableData{
		Grabbable:            grabbable,
		InvertSolidWhileHeld: true,
		TurnOffOppositeBeam:  true,
		SpatialKey:           s.cfg.Grab.SpatialKey(),
	})
	if err != nil {
		s.logger.Printf("bow: %v", err)
		return
	}
	s.edit(s.bow, entity.Edit{UserData: blob})
}

// setBeamDisabler tells nearby beam disablers which hand's beam to suppress
func (s *Session) setBeamDisabler(handToDisable string) {
	avatar := s.input.AvatarPosition()
	found := false
	for _, h := range s.store.FindNearby(avatar, s.cfg.Grab.BeamDisablerRadius) {
		props, ok := s.store.Properties(h)
		if !ok || props.Name != s.cfg.Grab.BeamDisablerName {
			continue
		}

		blob, err := entity.SetCustomData(props.UserData, entity.BeamDisablerKey, entity.BeamDisablerData{
			HandToDisable: handToDisable,
		})
		if err != nil {
			s.logger.Printf("bow: %v", err)
			continue
		}
		s.edit(h, entity.Edit{UserData: blob})
		s.logger.Printf("bow: found beam disabler %d, disabling %s beam", h, handToDisable)
		found = true
	}

	if !found {
		s.logger.Printf("bow: no beam disabler within %.1fm of avatar", s.cfg.Grab.BeamDisablerRadius)
	}
}
