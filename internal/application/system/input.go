package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/toybow/internal/domain/entity"
	"github.com/younwookim/toybow/internal/domain/geom"
	"github.com/younwookim/toybow/internal/infrastructure/config"
)

// InputSystem samples keyboard, mouse and gamepads
type InputSystem struct {
	gamepads []ebiten.GamepadID
}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// InputState holds the input for one frame
type InputState struct {
	Grab       bool `json:"grab,omitempty"`
	Release    bool `json:"release,omitempty"`
	SwitchHand bool `json:"switchHand,omitempty"`
	PitchUp    bool `json:"pitchUp,omitempty"`
	PitchDown  bool `json:"pitchDown,omitempty"`
	Pause      bool `json:"pause,omitempty"`

	// Cursor position in screen pixels: the string hand's palm
	CursorX int `json:"cursorX"`
	CursorY int `json:"cursorY"`

	// Trigger is the string hand's analog trigger in [0, 1]
	Trigger float64 `json:"trigger,omitempty"`
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	mx, my := ebiten.CursorPosition()
	return InputState{
		Grab:       inpututil.IsKeyJustPressed(ebiten.KeyG),
		Release:    inpututil.IsKeyJustPressed(ebiten.KeyR),
		SwitchHand: inpututil.IsKeyJustPressed(ebiten.KeyTab),
		PitchUp:    ebiten.IsKeyPressed(ebiten.KeyW),
		PitchDown:  ebiten.IsKeyPressed(ebiten.KeyS),
		Pause:      inpututil.IsKeyJustPressed(ebiten.KeyP),
		CursorX:    mx,
		CursorY:    my,
		Trigger:    s.trigger(),
	}
}

// trigger is 1 while the left mouse button is held, otherwise the strongest
// right trigger across connected standard-layout gamepads
func (s *InputSystem) trigger() float64 {
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		return 1
	}

	v := 0.0
	s.gamepads = ebiten.AppendGamepadIDs(s.gamepads[:0])
	for _, id := range s.gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		if tv := ebiten.StandardGamepadButtonValue(id, ebiten.StandardGamepadButtonFrontBottomRight); tv > v {
			v = tv
		}
	}
	return clamp01(v)
}

// Viewport maps the side-view world (meters, Y up) onto screen pixels (Y down)
type Viewport struct {
	PixelsPerMeter float64
	OriginX        float64
	OriginY        float64
}

// NewViewport creates a viewport from the range view config
func NewViewport(cfg config.ViewConfig) Viewport {
	return Viewport{
		PixelsPerMeter: cfg.PixelsPerMeter,
		OriginX:        cfg.OriginX,
		OriginY:        cfg.OriginY,
	}
}

// ToWorld converts a screen pixel to a world point on the z=0 plane
func (v Viewport) ToWorld(x, y int) geom.Vec3 {
	return geom.V3(
		(float64(x)-v.OriginX)/v.PixelsPerMeter,
		(v.OriginY-float64(y))/v.PixelsPerMeter,
		0,
	)
}

// ToScreen converts a world point to screen pixels, dropping z
func (v Viewport) ToScreen(p geom.Vec3) (float64, float64) {
	return v.OriginX + p.X*v.PixelsPerMeter, v.OriginY - p.Y*v.PixelsPerMeter
}

// HandRig is the tracked state of both hands and the avatar.
// It is what the bow polls each frame.
type HandRig struct {
	trigger [2]float64
	palm    [2]geom.Vec3
	avatar  geom.Vec3
}

// NewHandRig creates a rig with the avatar standing at avatar
func NewHandRig(avatar geom.Vec3) *HandRig {
	return &HandRig{avatar: avatar}
}

// SetTrigger records a hand's trigger value, clamped to [0, 1]
func (r *HandRig) SetTrigger(hand entity.Hand, v float64) {
	if hand == entity.HandLeft || hand == entity.HandRight {
		r.trigger[hand] = clamp01(v)
	}
}

// SetPalm records a hand's palm position
func (r *HandRig) SetPalm(hand entity.Hand, p geom.Vec3) {
	if hand == entity.HandLeft || hand == entity.HandRight {
		r.palm[hand] = p
	}
}

// TriggerValue implements bow.Controller
func (r *HandRig) TriggerValue(hand entity.Hand) float64 {
	if hand != entity.HandLeft && hand != entity.HandRight {
		return 0
	}
	return r.trigger[hand]
}

// PalmPosition implements bow.Controller
func (r *HandRig) PalmPosition(hand entity.Hand) geom.Vec3 {
	if hand != entity.HandLeft && hand != entity.HandRight {
		return geom.Zero
	}
	return r.palm[hand]
}

// AvatarPosition implements bow.Controller
func (r *HandRig) AvatarPosition() geom.Vec3 { return r.avatar }

// ApplyInput drives the string hand from the cursor and trigger. The grip
// hand rests on the bow with its trigger released.
func ApplyInput(in InputState, rig *HandRig, grip entity.Hand, bowPosition geom.Vec3, vp Viewport) {
	stringHand := grip.Opposite()

	rig.SetPalm(stringHand, vp.ToWorld(in.CursorX, in.CursorY))
	rig.SetTrigger(stringHand, in.Trigger)

	rig.SetPalm(grip, bowPosition)
	rig.SetTrigger(grip, 0)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
