package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyGrid is returned when level data has no rows or no columns
	ErrEmptyGrid = errors.New("grid has no cells")
	// ErrMalformedGrid is returned when level rows differ in length
	ErrMalformedGrid = errors.New("grid rows have unequal length")
)

// Grid is the static tile lookup for one level.
// It is built once per level load and never mutated afterwards.
type Grid struct {
	cells    [][]TileID
	rows     int
	cols     int
	cellSize float64
}

// NewGrid validates rows and returns a Grid that owns a copy of them.
func NewGrid(rows [][]TileID, cellSize float64) (*Grid, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("invalid cell size %v", cellSize)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}

	cols := len(rows[0])
	cells := make([][]TileID, len(rows))
	for r, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedGrid, r, len(row), cols)
		}
		cells[r] = append([]TileID(nil), row...)
	}

	return &Grid{
		cells:    cells,
		rows:     len(rows),
		cols:     cols,
		cellSize: cellSize,
	}, nil
}

// Rows returns the number of rows
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns
func (g *Grid) Cols() int { return g.cols }

// CellSize returns the side length of a cell in world units
func (g *Grid) CellSize() float64 { return g.cellSize }

// Width returns the world width of the grid
func (g *Grid) Width() float64 { return float64(g.cols) * g.cellSize }

// Height returns the world height of the grid
func (g *Grid) Height() float64 { return float64(g.rows) * g.cellSize }

// InBounds reports whether the cell coordinates lie inside the grid
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// At returns the tile id of a cell. Out-of-range cells report TileEmpty.
func (g *Grid) At(row, col int) TileID {
	if !g.InBounds(row, col) {
		return TileEmpty
	}
	return g.cells[row][col]
}

// SolidAt reports whether a cell blocks movement.
// Cells outside the grid are solid so the map edge acts as a wall.
func (g *Grid) SolidAt(row, col int) bool {
	if !g.InBounds(row, col) {
		return true
	}
	return g.cells[row][col] != TileEmpty
}

// RectOf returns the world-space rectangle covered by a cell
func (g *Grid) RectOf(row, col int) Rect {
	return Rect{
		X: float64(col) * g.cellSize,
		Y: float64(row) * g.cellSize,
		W: g.cellSize,
		H: g.cellSize,
	}
}

// CellAt returns the cell containing the world point (x, y)
func (g *Grid) CellAt(x, y float64) (row, col int) {
	return floorDiv(y, g.cellSize), floorDiv(x, g.cellSize)
}

// EachSolid calls fn for every nonzero cell in row-major order.
// Iteration stops early when fn returns false.
func (g *Grid) EachSolid(fn func(row, col int, id TileID) bool) {
	for r, row := range g.cells {
		for c, id := range row {
			if id == TileEmpty {
				continue
			}
			if !fn(r, c, id) {
				return
			}
		}
	}
}

func floorDiv(v, size float64) int {
	q := int(v / size)
	if v < 0 && float64(q)*size != v {
		q--
	}
	return q
}
