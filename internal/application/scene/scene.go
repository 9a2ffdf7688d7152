// Package scene defines the Scene interface for screens the game loop drives.
//
// The shooting range (scene/archery) is one Scene; a headless replay drives
// the same scene without a window.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen of the game.
//
// The game loop delegates Update and Draw calls to the current scene and
// switches scenes when Update returns a non-nil next Scene.
type Scene interface {
	// Update advances the scene by one fixed step of dt seconds.
	// Returns the next scene to switch to, or nil to stay.
	// Returns an error to terminate the game.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called when the scene becomes current.
	OnEnter()

	// OnExit is called when the scene is left or the game closes.
	// Recordings are saved and owned objects released here.
	OnExit()
}
