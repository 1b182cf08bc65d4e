package model

// Grid holds one generation of cell values. 0 is dead, 1..classCount is alive
// with that class.
type Grid struct {
	rows  int
	cols  int
	cells [][]int

	// Bounding box of live cells, recomputed lazily
	activeBounds struct {
		minRow, maxRow, minCol, maxCol int
		valid                          bool
	}
}

// NewGrid creates an all-dead grid with the specified shape
func NewGrid(rows, cols int) *Grid {
	cells := make([][]int, rows)
	for i := range cells {
		cells[i] = make([]int, cols)
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: cells,
	}
}

// NewGridFromRows copies a rectangular 2D slice into a new grid
func NewGridFromRows(values [][]int) (*Grid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, newConfigError(ErrEmptySeed, "seed has no cells")
	}
	g := NewGrid(len(values), len(values[0]))
	for r, row := range values {
		if len(row) != g.cols {
			return nil, newConfigError(ErrRaggedSeed, "row %d has %d columns, expected %d", r, len(row), g.cols)
		}
		copy(g.cells[r], row)
	}
	return g, nil
}

// GetRows returns the number of rows in the grid
func (g *Grid) GetRows() int {
	return g.rows
}

// GetCols returns the number of columns in the grid
func (g *Grid) GetCols() int {
	return g.cols
}

// Reset resets the grid to new dimensions
func (g *Grid) Reset(rows, cols int) {
	g.rows = rows
	g.cols = cols

	// Resize cells if needed
	if len(g.cells) != rows {
		g.cells = make([][]int, rows)
	}
	for i := range g.cells {
		if len(g.cells[i]) != cols {
			g.cells[i] = make([]int, cols)
		}
	}
	g.Clear()
}

// Clear kills all cells
func (g *Grid) Clear() {
	for r := range g.rows {
		clear(g.cells[r])
	}
	g.activeBounds.valid = false
}

// Set writes a cell value; out-of-range locations are ignored
func (g *Grid) Set(row, col, value int) {
	if row >= 0 && row < g.rows && col >= 0 && col < g.cols {
		g.cells[row][col] = value
		g.activeBounds.valid = false
	}
}

// Get returns the value of a cell, 0 outside the grid
func (g *Grid) Get(row, col int) int {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return 0
	}
	return g.cells[row][col]
}

// AliveNeighbors appends the values of the live cells around (row, col) to buf.
// Locations outside the grid are skipped; there is no wraparound.
func (g *Grid) AliveNeighbors(row, col int, buf []int) []int {
	minRow := max(0, row-1)
	maxRow := min(g.rows-1, row+1)
	minCol := max(0, col-1)
	maxCol := min(g.cols-1, col+1)

	for nr := minRow; nr <= maxRow; nr++ {
		for nc := minCol; nc <= maxCol; nc++ {
			if nr == row && nc == col {
				continue
			}
			if v := g.cells[nr][nc]; v > 0 {
				buf = append(buf, v)
			}
		}
	}
	return buf
}

// calculateActiveBounds calculates the bounding box of living cells
func (g *Grid) calculateActiveBounds() {
	g.activeBounds.valid = false

	for r := range g.rows {
		for c := range g.cols {
			if g.cells[r][c] == 0 {
				continue
			}
			if !g.activeBounds.valid {
				g.activeBounds.minRow, g.activeBounds.maxRow = r, r
				g.activeBounds.minCol, g.activeBounds.maxCol = c, c
				g.activeBounds.valid = true
				continue
			}
			g.activeBounds.minRow = min(g.activeBounds.minRow, r)
			g.activeBounds.maxRow = max(g.activeBounds.maxRow, r)
			g.activeBounds.minCol = min(g.activeBounds.minCol, c)
			g.activeBounds.maxCol = max(g.activeBounds.maxCol, c)
		}
	}
}

// GetBoundingBoxSize returns the size of the active region
func (g *Grid) GetBoundingBoxSize() int {
	if !g.activeBounds.valid {
		g.calculateActiveBounds()
	}
	if !g.activeBounds.valid {
		return 0
	}
	return (g.activeBounds.maxRow - g.activeBounds.minRow + 1) *
		(g.activeBounds.maxCol - g.activeBounds.minCol + 1)
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for r := range g.rows {
		for c := range g.cols {
			if g.cells[r][c] > 0 {
				count++
			}
		}
	}
	return
}

// ClassCounts returns live cell counts indexed by class; index 0 counts dead cells.
// Values above classCount are not counted.
func (g *Grid) ClassCounts(classCount int) []int {
	counts := make([]int, classCount+1)
	for r := range g.rows {
		for c := range g.cols {
			if v := g.cells[r][c]; v >= 0 && v <= classCount {
				counts[v]++
			}
		}
	}
	return counts
}

// Equal reports whether both grids have the same shape and identical values
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for r := range g.rows {
		for c := range g.cols {
			if g.cells[r][c] != other.cells[r][c] {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	next := NewGrid(g.rows, g.cols)
	next.copyFrom(g)
	return next
}

// Snapshot returns the cell values as a freshly allocated 2D slice
func (g *Grid) Snapshot() [][]int {
	out := make([][]int, g.rows)
	for r := range g.rows {
		out[r] = append([]int(nil), g.cells[r]...)
	}
	return out
}

func (g *Grid) copyFrom(src *Grid) {
	for r := range g.rows {
		copy(g.cells[r], src.cells[r])
	}
	g.activeBounds = src.activeBounds
}

// place copies src into g with its top-left corner at (row0, col0)
func (g *Grid) place(src *Grid, row0, col0 int) {
	for r := range src.rows {
		copy(g.cells[row0+r][col0:col0+src.cols], src.cells[r])
	}
	g.activeBounds.valid = false
}
