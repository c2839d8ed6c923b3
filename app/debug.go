package app

import (
	"fmt"
	"math"

	F "diesel.com/sph2d/fluid"
	U "diesel.com/sph2d/utils"
	V "diesel.com/sph2d/vector"
	"github.com/sirupsen/logrus"
)

const CIRCLE_SEGMENTS = 32

//DebugReadout - what the engine sees at the pointer, refreshed every frame while the
//debug overlay is on
type DebugReadout struct {
	Pointer       V.Vec2
	Density       float32 //Sampled density at the pointer
	Neighbors     []int   //Particles within the smoothing radius of the pointer
	CellOccupants int     //Particles bucketed in the pointer's grid cell
	Fast          []int   //Particles moving faster than the speed cap
}

//ReadDebug samples the engine at the pointer. The grid reflects the last step.
func ReadDebug(sph *F.SPHFluid, p Pointer) DebugReadout {
	at := V.Vec2{p.X, p.Y}
	r := DebugReadout{
		Pointer:       at,
		Density:       sph.DensityAt(at),
		Neighbors:     sph.QueryNeighbors(at),
		CellOccupants: len(sph.Grid.CellOccupants(at)),
	}
	for i := range sph.Velocities {
		if sph.Velocities[i].LengthSq() > F.MAX_SPEED*F.MAX_SPEED {
			r.Fast = append(r.Fast, i)
		}
	}
	return r
}

func (r DebugReadout) String() string {
	return fmt.Sprintf("pointer %v density %.4f neighbors %d cell %d fast %d",
		r.Pointer, r.Density, len(r.Neighbors), r.CellOccupants, len(r.Fast))
}

func (r DebugReadout) Fields() logrus.Fields {
	return logrus.Fields{
		"x":         r.Pointer[0],
		"y":         r.Pointer[1],
		"density":   r.Density,
		"neighbors": len(r.Neighbors),
		"cell":      r.CellOccupants,
		"fast":      len(r.Fast),
	}
}

//GridLines returns the interior cell boundaries of g as line vertex pairs
func GridLines(g *F.SpatialHashGrid) []V.Vec2 {
	if g.CellSize <= 0 {
		return nil
	}
	lines := []V.Vec2{}
	for x := g.CellSize; x < g.Width; x += g.CellSize {
		lines = append(lines, V.Vec2{x, 0}, V.Vec2{x, g.Height})
	}
	for y := g.CellSize; y < g.Height; y += g.CellSize {
		lines = append(lines, V.Vec2{0, y}, V.Vec2{g.Width, y})
	}
	return lines
}

//Circle outlines a circle as CIRCLE_SEGMENTS line vertex pairs
func Circle(center V.Vec2, radius float32) []V.Vec2 {
	lines := make([]V.Vec2, 0, 2*CIRCLE_SEGMENTS)
	point := func(k int) V.Vec2 {
		a := 2 * math.Pi * float64(k) / CIRCLE_SEGMENTS
		return V.Vec2{
			center[0] + radius*float32(math.Cos(a)),
			center[1] + radius*float32(math.Sin(a)),
		}
	}
	for k := 0; k < CIRCLE_SEGMENTS; k++ {
		lines = append(lines, point(k), point(k+1))
	}
	return lines
}

//SceneVertices - packed draw buffers for one frame
type SceneVertices struct {
	Particles []float32
	Lines     []float32
}

//Pack fills the buffers from the engine state. With a readout the pointer's neighbors
//and the over speed particles are marked, and the grid and sample circle are added to
//the wall lines.
func (s *SceneVertices) Pack(sph *F.SPHFluid, debug *DebugReadout) {
	w, h := sph.Params.Width, sph.Params.Height
	s.Particles = U.PackVertices(s.Particles, sph.Positions, sph.Densities, w, h)
	s.Lines = U.PackLines(s.Lines, sph.Walls.Outline(), w, h)
	if debug == nil {
		return
	}
	U.MarkVertices(s.Particles, debug.Neighbors, U.NEIGHBOR_MARKER)
	U.MarkVertices(s.Particles, debug.Fast, U.FAST_MARKER)
	s.Lines = U.AppendLines(s.Lines, GridLines(sph.Grid), w, h, U.GRID_MARKER)
	s.Lines = U.AppendLines(s.Lines, Circle(debug.Pointer, sph.Params.SmoothingRadius), w, h, U.NEIGHBOR_MARKER)
}
