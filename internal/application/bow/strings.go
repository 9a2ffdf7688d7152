package bow

import (
	"github.com/younwookim/toybow/internal/domain/entity"
	"github.com/younwookim/toybow/internal/domain/geom"
)

// createRestString creates the idle string, anchored at the top of the bow
func (s *Session) createRestString() {
	s.updateAnchorPositions()
	h, err := s.create(entity.RestLineSpec{
		Name:       s.cfg.String.RestName,
		Position:   s.topAnchor,
		Dimensions: s.cfg.String.LineDimensions,
		Visible:    true,
		UserData:   entity.NotGrabbable(),
	})
	if err != nil {
		s.logger.Printf("bow: failed to create rest string: %v", err)
		return
	}
	s.restString = h
}

func (s *Session) destroyRestString() {
	s.destroy(&s.restString)
}

// createDrawStrings creates the top and bottom segments used while drawing
func (s *Session) createDrawStrings() {
	top, err := s.create(entity.StringLineSpec{
		Name:       s.cfg.String.TopName,
		Position:   s.topAnchor,
		Dimensions: s.cfg.String.LineDimensions,
		UserData:   entity.NotGrabbable(),
	})
	if err != nil {
		s.logger.Printf("bow: failed to create top string: %v", err)
	}
	s.topString = top

	bottom, err := s.create(entity.StringLineSpec{
		Name:       s.cfg.String.BottomName,
		Position:   s.bottomAnchor,
		Dimensions: s.cfg.String.LineDimensions,
		UserData:   entity.NotGrabbable(),
	})
	if err != nil {
		s.logger.Printf("bow: failed to create bottom string: %v", err)
	}
	s.bottomString = bottom
}

func (s *Session) destroyDrawStrings() {
	s.destroy(&s.topString)
	s.destroy(&s.bottomString)
}

// updateAnchorPositions recomputes the string anchors from the current pose
// and moves every existing string onto them
func (s *Session) updateAnchorPositions() {
	top, bottom := StringAnchors(s.pose, s.cfg.String.TopOffset, s.cfg.String.BottomOffset, s.cfg.String.BackOffset)
	s.topAnchor = top
	s.bottomAnchor = bottom

	s.edit(s.restString, entity.Edit{Position: entity.Ptr(top)})
	s.edit(s.topString, entity.Edit{Position: entity.Ptr(top)})
	s.edit(s.bottomString, entity.Edit{Position: entity.Ptr(bottom)})
}

// redrawDrawStrings runs both segments from their anchors to the arrow's rear
func (s *Session) redrawDrawStrings() {
	s.edit(s.topString, s.lineEdit(s.cfg.String.TopName, s.arrowRear.Sub(s.topAnchor)))
	s.edit(s.bottomString, s.lineEdit(s.cfg.String.BottomName, s.arrowRear.Sub(s.bottomAnchor)))
}

// redrawRestString runs the idle string straight down the bow
func (s *Session) redrawRestString() {
	down := s.pose.Rotation.Up().Neg()
	s.edit(s.restString, s.lineEdit(s.cfg.String.RestName, down.Mul(s.cfg.String.BottomOffset*2)))
}

func (s *Session) lineEdit(name string, end geom.Vec3) entity.Edit {
	return entity.Edit{
		Name:       entity.Ptr(name),
		LinePoints: []geom.Vec3{geom.Zero, end},
		LineWidth:  entity.Ptr(s.cfg.String.LineWidth),
		Color:      entity.Ptr(s.stringColor),
	}
}

// create validates spec before handing it to the store
func (s *Session) create(spec entity.ObjectSpec) (entity.Handle, error) {
	if err := spec.Validate(); err != nil {
		return 0, err
	}
	return s.store.Create(spec)
}

// StringAnchors returns the world positions the top and bottom string
// segments hang from: along the bow's up axis, set back along its front axis.
func StringAnchors(pose entity.BowPose, topOffset, bottomOffset, backOffset float64) (top, bottom geom.Vec3) {
	up := pose.Rotation.Up()
	back := pose.Rotation.Front().Mul(-backOffset)

	top = pose.Position.Add(up.Mul(topOffset)).Add(back)
	bottom = pose.Position.Sub(up.Mul(bottomOffset)).Add(back)
	return top, bottom
}
