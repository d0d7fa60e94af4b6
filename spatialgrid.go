package drum

import (
	"math"
	"sort"

	"github.com/akmonengine/drum/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// ============================================================================
// Types
// ============================================================================

// CellKey - coordinates of a cell in 2D space
type CellKey struct {
	X, Y int
}

// Cell - container of ball indices in a cell
type Cell struct {
	ballIndices []int
}

// Pair - pair of balls potentially in collision
type Pair struct {
	BallA *actor.Ball
	BallB *actor.Ball
}

// SpatialGrid - uniform hashed spatial grid for the pairwise broad phase
type SpatialGrid struct {
	cellSize float64
	cells    []Cell
	cellMask int
}

// ============================================================================
// Constructor
// ============================================================================

// NewSpatialGrid creates a new spatial grid
func NewSpatialGrid(cellSize float64, numCells int) *SpatialGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].ballIndices = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

// nextPowerOfTwo rounds up to the next power of two
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Insert inserts a ball into every cell its AABB covers
func (sg *SpatialGrid) Insert(ballIndex int, ball *actor.Ball) {
	aabb := ball.GetAABB()
	minCell := sg.worldToCell(aabb.Min)
	maxCell := sg.worldToCell(aabb.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			cellIdx := sg.hashCell(CellKey{x, y})

			sg.cells[cellIdx].ballIndices = append(
				sg.cells[cellIdx].ballIndices,
				ballIndex,
			)
		}
	}
}

func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].ballIndices = sg.cells[i].ballIndices[:0]
	}
}

func (sg *SpatialGrid) SortCells() {
	for i := range sg.cells {
		if len(sg.cells[i].ballIndices) > 1 {
			sort.Ints(sg.cells[i].ballIndices)
		}
	}
}

// FindPairs walks the balls in index order and emits each candidate pair
// exactly once, lower index first. The emission order is fixed for a given
// ball list, which keeps pair resolution reproducible between runs.
func (sg *SpatialGrid) FindPairs(balls []*actor.Ball) []Pair {
	pairs := make([]Pair, 0, len(balls)/2)
	seen := make([]bool, len(balls))

	for ballIdx := 0; ballIdx < len(balls); ballIdx++ {
		ballA := balls[ballIdx]
		clear(seen)

		// Cells covered by ballA
		minCell := sg.worldToCell(ballA.GetAABB().Min)
		maxCell := sg.worldToCell(ballA.GetAABB().Max)

		for x := minCell.X; x <= maxCell.X; x++ {
			for y := minCell.Y; y <= maxCell.Y; y++ {
				cellIdx := sg.hashCell(CellKey{x, y})

				// Test against every ball in this cell
				for _, otherIdx := range sg.cells[cellIdx].ballIndices {
					// Skips duplicates (A,B) and (B,A), and repeat hits of the
					// same pair through shared cells or hash collisions
					if otherIdx <= ballIdx || seen[otherIdx] {
						continue
					}
					seen[otherIdx] = true

					ballB := balls[otherIdx]
					if ballA.GetAABB().Overlaps(ballB.GetAABB()) {
						pairs = append(pairs, Pair{BallA: ballA, BallB: ballB})
					}
				}
			}
		}
	}

	return pairs
}

// worldToCell converts a world position into cell coordinates
func (sg *SpatialGrid) worldToCell(pos mgl64.Vec2) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / sg.cellSize)),
		Y: int(math.Floor(pos.Y() / sg.cellSize)),
	}
}

// hashCell hashes a cell key to an index into the cell array
func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663)
	return h & sg.cellMask
}
