package geometry

import (
	"fmt"

	Vec "diesel.com/sph2d/vector"
)

//diesel geometry library - particle boundary collision against the world walls.
//The world is the axis aligned box [0,Width] x [0,Height]; particles are discs of a
//given radius so the usable region is [r, Width-r] x [r, Height-r].

const (
	EPSILON = 0.00001
	AXIS_X  = 0
	AXIS_Y  = 1
)

//Box - the rectangular container walls
type Box struct {
	Width  float32
	Height float32
}

//Extent - wall coordinate along an axis
func (b *Box) Extent(axis int) float32 {
	if axis == AXIS_X {
		return b.Width
	}
	return b.Height
}

//Crosses reports whether a disc centred at p with radius r pokes through a wall on axis
func (b *Box) Crosses(p Vec.Vec2, r float32, axis int) bool {
	return p[axis]+r > b.Extent(axis) || p[axis]-r < 0
}

//Resolve tests the look-ahead position pred against each wall independently. On a
//crossing the actual position is set to pred mirrored about the crossed wall, clamped
//into [r, L-r], and that axis' velocity is reversed and scaled by damping. Returns
//which axes collided; both may trigger in a corner.
func (b *Box) Resolve(pos *Vec.Vec2, pred Vec.Vec2, vel *Vec.Vec2, r float32, damping float32) (bool, bool) {
	var hit [2]bool
	for axis := AXIS_X; axis <= AXIS_Y; axis++ {
		if !b.Crosses(pred, r, axis) {
			continue
		}
		L := b.Extent(axis)
		wall := float32(0)
		if pred[axis]+r > L {
			wall = 1
		}
		mirrored := 2*wall*L - pred[axis]
		pos[axis] = Vec.Clamp(mirrored, r, L-r)
		vel[axis] *= -damping
		hit[axis] = true
	}
	return hit[AXIS_X], hit[AXIS_Y]
}

//Contains - true when the disc at p lies fully inside the walls (with EPSILON slack)
func (b *Box) Contains(p Vec.Vec2, r float32) bool {
	return p[0] >= r-EPSILON && p[0] <= b.Width-r+EPSILON &&
		p[1] >= r-EPSILON && p[1] <= b.Height-r+EPSILON
}

//Center of the box
func (b *Box) Center() Vec.Vec2 {
	return Vec.Vec2{b.Width / 2, b.Height / 2}
}

//Outline - 4 wall segments as 8 line vertices (GL_LINES order)
func (b *Box) Outline() []Vec.Vec2 {
	w, h := b.Width, b.Height
	return []Vec.Vec2{
		{0, 0}, {w, 0}, //TOP (screen space, y down)
		{w, 0}, {w, h}, //RIGHT
		{w, h}, {0, h}, //BOTTOM
		{0, h}, {0, 0}, //LEFT
	}
}

func (b *Box) String() string {
	return fmt.Sprintf("Box[%g x %g]", b.Width, b.Height)
}
