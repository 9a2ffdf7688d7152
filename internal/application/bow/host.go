// Package bow implements the hand-held bow: grab lifecycle, bowstring
// visuals, trigger sampling and the arrow it notches and releases.
//
// A Session is driven once per frame by its owner through Tick. It never
// blocks and never returns errors from per-frame calls; failures against the
// host degrade to skipped work on the next frame.
package bow

import (
	"github.com/younwookim/toybow/internal/domain/entity"
	"github.com/younwookim/toybow/internal/domain/geom"
)

// ObjectStore is the host world the bow creates and edits objects in
type ObjectStore interface {
	Create(spec entity.ObjectSpec) (entity.Handle, error)
	Destroy(h entity.Handle)
	Edit(h entity.Handle, e entity.Edit) error
	Properties(h entity.Handle) (entity.Properties, bool)
	FindNearby(pos geom.Vec3, radius float64) []entity.Handle
}

// Controller exposes tracked hand input
type Controller interface {
	TriggerValue(hand entity.Hand) float64
	PalmPosition(hand entity.Hand) geom.Vec3
	AvatarPosition() geom.Vec3
}

// AudioPlayer plays fire-and-forget sounds
type AudioPlayer interface {
	PlaySound(ref entity.SoundRef, opts entity.SoundOptions) entity.SoundID
	AdjustSound(id entity.SoundID, opts entity.SoundOptions)
}

type silentAudio struct{}

func (silentAudio) PlaySound(entity.SoundRef, entity.SoundOptions) entity.SoundID { return 0 }
func (silentAudio) AdjustSound(entity.SoundID, entity.SoundOptions)               {}
