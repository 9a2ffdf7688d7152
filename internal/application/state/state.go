package state

// GrabState is the bow's grab lifecycle state
type GrabState int

const (
	GrabIdle GrabState = iota
	GrabHeld
)

// String returns the string representation of the grab state
func (s GrabState) String() string {
	switch s {
	case GrabIdle:
		return "Idle"
	case GrabHeld:
		return "Grabbed"
	default:
		return "Unknown"
	}
}

// DrawPhase is the bowstring state while the bow is held
type DrawPhase int

const (
	DrawIdle DrawPhase = iota
	DrawDrawing
	DrawAiming
)

// String returns the string representation of the draw phase
func (p DrawPhase) String() string {
	switch p {
	case DrawIdle:
		return "Idle"
	case DrawDrawing:
		return "Drawing"
	case DrawAiming:
		return "Aiming"
	default:
		return "Unknown"
	}
}

// SceneState represents the current state of the range scene
type SceneState int

const (
	StatePlaying SceneState = iota
	StatePaused
	StateReplayDone
)

// String returns the string representation of the scene state
func (s SceneState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateReplayDone:
		return "ReplayDone"
	default:
		return "Unknown"
	}
}
