package fluid

import (
	"math"

	V "diesel.com/sph2d/vector"
)

//Grid Searching methods

//Neighbors returns the indices of every particle whose indexed position lies strictly
//within radius of point. For radius up to the cell size this is the 3x3 block around
//the point's cell; larger radii widen the block so the answer stays exact. The slice
//is freshly allocated and may be empty.
func (g *SpatialHashGrid) Neighbors(point V.Vec2, radius float32) []int {
	neighbors := []int{}
	if len(g.positions) == 0 || len(g.sorted) != len(g.positions) {
		return neighbors
	}

	span := 1
	if radius > g.CellSize {
		span = int(math.Ceil(float64(radius / g.CellSize)))
	}
	r2 := radius * radius
	centerCol, centerRow := g.CellCoord(point)

	for dy := -span; dy <= span; dy++ {
		row := centerRow + dy
		if row < 0 || row >= g.Rows {
			continue
		}
		for dx := -span; dx <= span; dx++ {
			col := centerCol + dx
			if col < 0 || col >= g.Cols {
				continue
			}
			cell := col + row*g.Cols
			start := g.cellStart[cell]
			if start == EMPTY_CELL {
				continue
			}
			for i := start; i < len(g.sorted) && g.sorted[i].Cell == cell; i++ {
				index := g.sorted[i].Index
				if index < 0 || index >= len(g.positions) {
					continue
				}
				if V.LengthSq(V.Sub(g.positions[index], point)) < r2 {
					neighbors = append(neighbors, index)
				}
			}
		}
	}

	return neighbors
}

//CellOccupants - particle indices bucketed into the cell containing p, used by debug
//overlays to highlight a single cell
func (g *SpatialHashGrid) CellOccupants(p V.Vec2) []int {
	cell := g.CellIndex(p)
	occupants := []int{}
	if cell < 0 || cell >= len(g.cellStart) || g.cellStart[cell] == EMPTY_CELL {
		return occupants
	}
	for i := g.cellStart[cell]; i < len(g.sorted) && g.sorted[i].Cell == cell; i++ {
		occupants = append(occupants, g.sorted[i].Index)
	}
	return occupants
}
