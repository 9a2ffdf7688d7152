package system

import "github.com/younwookim/toybow/internal/domain/entity"

// Intent represents an action the player wants to perform on the bow
type Intent interface {
	isIntent()
}

// GrabIntent picks the bow up with Hand
type GrabIntent struct {
	Hand entity.Hand
}

func (GrabIntent) isIntent() {}

// ReleaseIntent lets go of the bow with Hand
type ReleaseIntent struct {
	Hand entity.Hand
}

func (ReleaseIntent) isIntent() {}

// SwitchHandIntent swaps the grip hand (only while the bow is not held)
type SwitchHandIntent struct{}

func (SwitchHandIntent) isIntent() {}

// AimIntent tilts the bow by DeltaDeg degrees of pitch
type AimIntent struct {
	DeltaDeg float64
}

func (AimIntent) isIntent() {}

// CollectIntents turns one frame of input into intents, in the order they apply
func CollectIntents(in InputState, grip entity.Hand, pitchStepDeg float64) []Intent {
	intents := make([]Intent, 0, 2)

	if in.SwitchHand {
		intents = append(intents, SwitchHandIntent{})
	}
	if in.Grab {
		intents = append(intents, GrabIntent{Hand: grip})
	}
	if in.Release {
		intents = append(intents, ReleaseIntent{Hand: grip})
	}

	switch {
	case in.PitchUp && !in.PitchDown:
		intents = append(intents, AimIntent{DeltaDeg: pitchStepDeg})
	case in.PitchDown && !in.PitchUp:
		intents = append(intents, AimIntent{DeltaDeg: -pitchStepDeg})
	}

	return intents
}
