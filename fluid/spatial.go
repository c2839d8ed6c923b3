package fluid

import (
	"math"

	V "diesel.com/sph2d/vector"
	"golang.org/x/exp/slices"
)

const EMPTY_CELL = -1

//Spatial Hash Grid - uniform grid over the world bounds with cell size equal to the
//smoothing radius. Particles are bucketed by sorting (index, cell) pairs on the cell id
//and recording where each cell's run starts. Rebuilt from scratch every step.
type SpatialHashGrid struct {
	CellSize  float32 //Cell edge length (smoothing radius)
	Width     float32 //World width the grid covers
	Height    float32 //World height the grid covers
	Cols      int
	Rows      int
	cellStart []int       //cell id -> offset into sorted, EMPTY_CELL when unoccupied
	sorted    []cellEntry //(particle, cell) pairs grouped by cell
	positions []V.Vec2    //positions reference from the last Rebuild (read only)
}

//cellEntry pairs a particle index with the cell it was bucketed into
type cellEntry struct {
	Index int
	Cell  int
}

//AllocateGrid - Creates a grid covering width x height with radius sized cells
func AllocateGrid(width, height, radius float32) *SpatialHashGrid {
	g := &SpatialHashGrid{}
	g.Resize(width, height, radius)
	return g
}

//Resize recomputes the grid dimensions and reallocates the cell table, cleared to empty.
//Must be called whenever the world bounds or the smoothing radius change.
func (g *SpatialHashGrid) Resize(width, height, radius float32) {
	g.Width = width
	g.Height = height
	g.CellSize = radius
	g.Cols = int(width/radius) + 1
	g.Rows = int(height/radius) + 1
	g.cellStart = make([]int, g.Cols*g.Rows)
	for i := range g.cellStart {
		g.cellStart[i] = EMPTY_CELL
	}
}

//Cells - number of cells in the table
func (g *SpatialHashGrid) Cells() int {
	return len(g.cellStart)
}

//CellCoord returns the clamped (col, row) of a position. Positions outside the bounds
//land in the nearest edge cell so they are never dropped or wrapped into another row.
func (g *SpatialHashGrid) CellCoord(p V.Vec2) (int, int) {
	col := int(math.Floor(float64(p[0] / g.CellSize)))
	row := int(math.Floor(float64(p[1] / g.CellSize)))
	return clampInt(col, 0, g.Cols-1), clampInt(row, 0, g.Rows-1)
}

//CellIndex - flattened cell id col + row*cols
func (g *SpatialHashGrid) CellIndex(p V.Vec2) int {
	col, row := g.CellCoord(p)
	return col + row*g.Cols
}

//Rebuild - Loads the grid with positional data. The sort is not stable: particles that
//share a cell come out in unspecified order.
func (g *SpatialHashGrid) Rebuild(positions []V.Vec2) {
	g.positions = positions
	for i := range g.cellStart {
		g.cellStart[i] = EMPTY_CELL
	}

	if cap(g.sorted) < len(positions) {
		g.sorted = make([]cellEntry, len(positions))
	}
	g.sorted = g.sorted[:len(positions)]
	for i := range positions {
		g.sorted[i] = cellEntry{i, g.CellIndex(positions[i])}
	}

	slices.SortFunc(g.sorted, func(a, b cellEntry) int {
		return a.Cell - b.Cell
	})

	prev := EMPTY_CELL
	for i, e := range g.sorted {
		if e.Cell == prev {
			continue
		}
		prev = e.Cell
		if e.Cell >= 0 && e.Cell < len(g.cellStart) {
			g.cellStart[e.Cell] = i
		}
	}
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
