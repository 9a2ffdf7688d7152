package bow

import "github.com/younwookim/toybow/internal/domain/entity"

// Transition is the draw state machine's decision for one trigger sample
type Transition int

const (
	TransitionNone Transition = iota
	TransitionStart
	TransitionContinue
	TransitionRelease
)

// String returns the transition name
func (t Transition) String() string {
	switch t {
	case TransitionNone:
		return "None"
	case TransitionStart:
		return "Start"
	case TransitionContinue:
		return "Continue"
	case TransitionRelease:
		return "Release"
	default:
		return "Unknown"
	}
}

// Classify maps a trigger value onto a transition.
// Starting needs v > threshold, releasing needs v < threshold; a value of
// exactly threshold keeps a draw going and never starts one.
func Classify(drawing bool, v, threshold float64) Transition {
	switch {
	case drawing && v < threshold:
		return TransitionRelease
	case drawing:
		return TransitionContinue
	case v > threshold:
		return TransitionStart
	default:
		return TransitionNone
	}
}

// sampleInput reads the string hand and advances the draw state machine
func (s *Session) sampleInput() Transition {
	stringHand := s.StringHand()
	v := s.input.TriggerValue(stringHand)

	notch := ComputeNotchPose(s.pose, s.input.PalmPosition(stringHand), s.cfg.Notch.Forward, s.cfg.Notch.Up)
	s.arrowRear = ArrowRearPosition(notch.Position, notch.Rotation, s.cfg.Arrow.TipOffset)

	t := Classify(s.drawing, v, s.cfg.Draw.Threshold)
	switch t {
	case TransitionStart:
		s.startDraw(notch)
	case TransitionContinue:
		s.continueDraw(notch)
	case TransitionRelease:
		s.releaseDraw(notch)
	}
	return t
}

func (s *Session) startDraw(notch NotchPoint) {
	s.spawnArrow()
	s.pullSound = s.playSound(entity.SoundStringPull, s.cfg.Sounds.StringPull)

	s.drawing = true
	s.aiming = true
	s.createDrawStrings()
	s.redrawDrawStrings()
	s.edit(s.restString, entity.Edit{Visible: entity.Ptr(false)})
	s.updateNotch(notch, false)
}

func (s *Session) continueDraw(notch NotchPoint) {
	s.aiming = true
	s.redrawDrawStrings()
	s.updateNotch(notch, false)

	if s.cfg.ModulatePullVolume && s.pullSound != 0 {
		s.audio.AdjustSound(s.pullSound, entity.SoundOptions{
			Volume:   s.cfg.PullVolume.Map(notch.PullDistance()),
			Position: s.pose.Position,
		})
	}
}

func (s *Session) releaseDraw(notch NotchPoint) {
	s.redrawDrawStrings()
	s.arrowNotched = false
	s.aiming = false
	s.drawing = false
	s.updateNotch(notch, true)
}
