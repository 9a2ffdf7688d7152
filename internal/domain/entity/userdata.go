package entity

import (
	"encoding/json"
	"fmt"

	"github.com/younwookim/toybow/internal/domain/geom"
)

// User data keys
const (
	GrabbableKey    = "grabbableKey"
	BeamDisablerKey = "beamDisablerKey"
)

// BeamDisablerName is the object name the bow searches for near the avatar
const BeamDisablerName = "Hifi-Beam-Disabler"

// HandNone is the beam disabler value that suppresses no beam
const HandNone = "none"

// SpatialKey is the grip offset the host uses to snap a held object into the hand
type SpatialKey struct {
	RelativePosition geom.Vec3 `json:"relativePosition"`
	RelativeRotation geom.Quat `json:"relativeRotation"`
}

// GrabbableData is stored under GrabbableKey
type GrabbableData struct {
	Grabbable            bool        `json:"grabbable"`
	InvertSolidWhileHeld bool        `json:"invertSolidWhileHeld,omitempty"`
	TurnOffOppositeBeam  bool        `json:"turnOffOppositeBeam,omitempty"`
	SpatialKey           *SpatialKey `json:"spatialKey,omitempty"`
}

// BeamDisablerData is stored under BeamDisablerKey
type BeamDisablerData struct {
	HandToDisable string `json:"handToDisable"`
}

// SetCustomData returns blob with key replaced by value, keeping other keys
func SetCustomData(blob []byte, key string, value any) ([]byte, error) {
	data := map[string]json.RawMessage{}
	if len(blob) > 0 {
		if err := json.Unmarshal(blob, &data); err != nil {
			return nil, fmt.Errorf("failed to parse user data: %w", err)
		}
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", key, err)
	}
	data[key] = raw

	out, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user data: %w", err)
	}
	return out, nil
}

// CustomData decodes key from blob into out.
// It returns false when the blob is empty or has no such key.
func CustomData(blob []byte, key string, out any) (bool, error) {
	if len(blob) == 0 {
		return false, nil
	}

	data := map[string]json.RawMessage{}
	if err := json.Unmarshal(blob, &data); err != nil {
		return false, fmt.Errorf("failed to parse user data: %w", err)
	}

	raw, ok := data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// MustUserData builds a blob with a single key; it panics on encoding errors
// and is meant for static values.
func MustUserData(key string, value any) []byte {
	blob, err := SetCustomData(nil, key, value)
	if err != nil {
		panic(err)
	}
	return blob
}

// NotGrabbable is the user data stamped on every object the bow creates
func NotGrabbable() []byte {
	return MustUserData(GrabbableKey, GrabbableData{Grabbable: false})
}

// IsGrabbable reports the grabbable flag; objects without it are grabbable
func IsGrabbable(blob []byte) bool {
	var g GrabbableData
	ok, err := CustomData(blob, GrabbableKey, &g)
	if err != nil || !ok {
		return true
	}
	return g.Grabbable
}
