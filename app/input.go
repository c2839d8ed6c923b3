package app

import (
	"time"

	F "diesel.com/sph2d/fluid"
	V "diesel.com/sph2d/vector"
)

//Pointer - mouse state in world coordinates, filled by the viewer callbacks
type Pointer struct {
	X, Y  float32
	Left  bool //Push
	Right bool //Pull
}

//ApplyPointer turns the pointer state into at most one central force. The left button
//pushes with +InteractForceStrength, the right pulls with the negated strength; left
//wins when both are held. Returns whether a force was applied.
func ApplyPointer(sph *F.SPHFluid, p Pointer) bool {
	params := sph.Params
	strength := params.InteractForceStrength
	switch {
	case p.Left:
	case p.Right:
		strength = -strength
	default:
		return false
	}
	sph.ApplyCentralForce(V.Vec2{p.X, p.Y}, params.InteractForceRadius, strength)
	return true
}

//Controls - play state toggled from the keyboard
type Controls struct {
	Paused   bool
	stepOnce bool
}

func (c *Controls) TogglePause() {
	c.Paused = !c.Paused
}

//RequestStep advances a single frame while paused
func (c *Controls) RequestStep() {
	c.stepOnce = true
}

//ShouldAdvance reports whether this frame runs the simulation, consuming a pending
//single step request
func (c *Controls) ShouldAdvance() bool {
	if !c.Paused {
		return true
	}
	if c.stepOnce {
		c.stepOnce = false
		return true
	}
	return false
}

//Frame runs one driver frame: pointer interaction, then StepCount sub steps unless
//paused. Returns whether the simulation advanced.
func Frame(sph *F.SPHFluid, p Pointer, ctl *Controls, frame time.Duration) bool {
	if !ctl.ShouldAdvance() {
		return false
	}
	ApplyPointer(sph, p)
	sph.Advance(frame)
	return true
}

//ResizeWorld matches the world bounds to a new window size and rebuilds the grid
func ResizeWorld(sph *F.SPHFluid, width int, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	sph.Params.Width = float32(width)
	sph.Params.Height = float32(height)
	sph.Resize()
}

//CenterPointer - an idle pointer resting at the middle of the world
func CenterPointer(sph *F.SPHFluid) Pointer {
	c := sph.Walls.Center()
	return Pointer{X: c[0], Y: c[1]}
}

const MAX_FORCE_STRENGTH = 10.0

//NudgeForceStrength shifts the pressure coefficient by delta, kept within
//[0, MAX_FORCE_STRENGTH], and returns the new value
func NudgeForceStrength(sph *F.SPHFluid, delta float32) float32 {
	strength := V.Clamp(sph.ForceStrength()+delta, 0, MAX_FORCE_STRENGTH)
	sph.SetForceStrength(strength)
	return strength
}
