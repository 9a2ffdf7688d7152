package archery

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/younwookim/toybow/internal/application/bow"
	"github.com/younwookim/toybow/internal/application/state"
	"github.com/younwookim/toybow/internal/domain/geom"
)

// Colors for rendering
var (
	colorBG      = color.RGBA{26, 26, 46, 255}
	colorGround  = color.RGBA{60, 80, 50, 255}
	colorTarget  = color.RGBA{200, 160, 90, 255}
	colorHit     = color.RGBA{255, 215, 0, 255}
	colorBow     = color.RGBA{140, 90, 40, 255}
	colorArrow   = color.RGBA{255, 200, 100, 255}
	colorHand    = color.RGBA{100, 200, 100, 255}
	colorPull    = color.RGBA{200, 100, 100, 255}
	colorAvatar  = color.RGBA{100, 100, 200, 128}
	colorOverlay = color.RGBA{0, 0, 0, 128}
)

// bowBend is how far the limbs' midpoint bulges forward (m)
const bowBend = 0.12

// Draw renders the range (implements scene.Scene)
func (a *Archery) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	a.drawAvatar(screen)
	a.drawTargets(screen)
	a.drawBow(screen)
	a.drawLines(screen)
	a.drawArrows(screen)
	a.drawHand(screen)
	a.drawUI(screen)

	switch a.state {
	case state.StatePaused:
		a.drawOverlay(screen, "PAUSED - P to resume")
	case state.StateReplayDone:
		s := a.Summary()
		a.drawOverlay(screen, fmt.Sprintf("REPLAY DONE\nshots %d  hits %d  score %d", s.Shots, s.Hits, s.Score))
	}
}

// segment draws a world-space line
func (a *Archery) segment(screen *ebiten.Image, from, to geom.Vec3, c color.Color) {
	x1, y1 := a.vp.ToScreen(from)
	x2, y2 := a.vp.ToScreen(to)
	ebitenutil.DrawLine(screen, x1, y1, x2, y2, c)
}

// box draws the side view of an axis-aligned box centered at pos
func (a *Archery) box(screen *ebiten.Image, pos, dims geom.Vec3, c color.Color) {
	x, y := a.vp.ToScreen(geom.V3(pos.X-dims.X/2, pos.Y+dims.Y/2, 0))
	ppm := a.vp.PixelsPerMeter
	ebitenutil.DrawRect(screen, x, y, dims.X*ppm, dims.Y*ppm, c)
}

func (a *Archery) drawAvatar(screen *ebiten.Image) {
	a.box(screen, a.rng.Avatar.Add(geom.V3(0, 0.9, 0)), geom.V3(0.4, 1.8, 0.4), colorAvatar)
}

func (a *Archery) drawTargets(screen *ebiten.Image) {
	for _, id := range a.rng.Targets {
		tr, ok := a.world.Transform[id]
		if !ok {
			continue
		}

		c := colorTarget
		if a.world.Target[id].Points == 0 {
			c = colorGround
		}
		if a.hitFlash > 0 && a.lastHit != nil && a.lastHit.Target == id {
			c = colorHit
		}
		a.box(screen, tr.Position, tr.Dimensions, c)
	}
}

func (a *Archery) drawBow(screen *ebiten.Image) {
	props, ok := a.world.Properties(a.rng.Bow)
	if !ok {
		return
	}

	s := a.cfg.Bow.String
	top, bottom := bow.StringAnchors(props.Pose(), s.TopOffset, s.BottomOffset, 0)
	grip := geom.Offset(props.Position, props.Rotation.Front(), bowBend)

	a.segment(screen, top, grip, colorBow)
	a.segment(screen, grip, bottom, colorBow)
}

// drawLines renders every visible string line from its local points
func (a *Archery) drawLines(screen *ebiten.Image) {
	for id, line := range a.world.Line {
		if !a.world.Meta[id].Visible || len(line.Points) < 2 {
			continue
		}

		origin := a.world.Transform[id].Position
		for i := 1; i < len(line.Points); i++ {
			a.segment(screen, origin.Add(line.Points[i-1]), origin.Add(line.Points[i]), line.Color)
		}
	}
}

func (a *Archery) drawArrows(screen *ebiten.Image) {
	for id := range a.world.IsArrow {
		tr := a.world.Transform[id]
		tip := tr.Tip()
		rear := geom.Offset(tr.Position, tr.Front(), -tr.Dimensions.Z/2)

		a.segment(screen, rear, tip, colorArrow)
		x, y := a.vp.ToScreen(tip)
		ebitenutil.DrawRect(screen, x-1, y-1, 2, 2, colorArrow)
	}
}

// drawHand marks the string hand; it turns red while the trigger is past
// the draw threshold
func (a *Archery) drawHand(screen *ebiten.Image) {
	hand := a.grabSystem.Grip().Opposite()
	x, y := a.vp.ToScreen(a.rig.PalmPosition(hand))

	c := colorHand
	if a.rig.TriggerValue(hand) > a.cfg.Bow.Draw.Threshold {
		c = colorPull
	}
	ebitenutil.DrawRect(screen, x-3, y-3, 6, 6, c)
}

func (a *Archery) drawUI(screen *ebiten.Image) {
	s := a.Summary()
	status := fmt.Sprintf("Range: %s  Grip: %s  Bow: %s  String: %s\nScore: %d  Shots: %d  Hits: %d  Pitch: %.0f",
		a.cfg.Range.Name, a.grabSystem.Grip(), a.session.GrabState(), a.session.DrawPhase(),
		s.Score, s.Shots, s.Hits, a.grabSystem.PitchDeg())
	ebitenutil.DebugPrint(screen, status)

	// Controls
	controls := "G: Grab | R: Release | Tab: Switch hand | W/S: Pitch | LClick/RT: Draw | P: Pause"
	ebitenutil.DebugPrintAt(screen, controls, 10, a.screenH-20)

	if a.hitFlash > 0 && a.lastHit != nil {
		x, y := a.vp.ToScreen(a.lastHit.At)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("+%d", a.lastHit.Points), int(x), int(y)-24)
	}
}

func (a *Archery) drawOverlay(screen *ebiten.Image, text string) {
	ebitenutil.DrawRect(screen, 0, 0, float64(a.screenW), float64(a.screenH), colorOverlay)
	ebitenutil.DebugPrintAt(screen, text, a.screenW/2-70, a.screenH/2-20)
}
