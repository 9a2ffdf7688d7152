package entity

import "fmt"

// Hand identifies one of the avatar's hand controllers
type Hand int

const (
	HandLeft Hand = iota
	HandRight
)

// Opposite returns the other hand.
// The string hand is always the opposite of the grip hand.
func (h Hand) Opposite() Hand {
	if h == HandLeft {
		return HandRight
	}
	return HandLeft
}

// String returns the lowercase hand name used in user data
func (h Hand) String() string {
	switch h {
	case HandLeft:
		return "left"
	case HandRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseHand parses "left" or "right"
func ParseHand(s string) (Hand, error) {
	switch s {
	case "left", "l":
		return HandLeft, nil
	case "right", "r":
		return HandRight, nil
	}
	return HandLeft, fmt.Errorf("unknown hand %q", s)
}
