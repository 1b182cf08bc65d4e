package model

import (
	"math/rand/v2"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-conways/rules"
)

// stepParams carries the inputs shared by every cell of one generation.
type stepParams struct {
	classCount   int
	mutationProb float64
	// seed keys the per-row random streams so that output does not depend on
	// how rows are split between workers.
	seed uint64
	pool *GridPool
}

func rowRNG(seed uint64, row int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(row)))
}

// evaluateRow writes the next values of columns [minCol, maxCol] of row into next.
// It only reads from g.
func (g *Grid) evaluateRow(next *Grid, row, minCol, maxCol int, p stepParams, buf []int) []int {
	var rng *rand.Rand
	if p.classCount > 1 {
		rng = rowRNG(p.seed, row)
	}
	for c := minCol; c <= maxCol; c++ {
		buf = g.AliveNeighbors(row, c, buf[:0])
		next.cells[row][c] = rules.NextState(g.cells[row][c], buf, p.classCount, p.mutationProb, rng)
	}
	return buf
}

// nextGenerationParallel calculates the next generation using parallel processing.
// Workers own disjoint row bands of the new grid.
func (g *Grid) nextGenerationParallel(p stepParams) (*Grid, error) {
	next := newGrid(p.pool, g.rows, g.cols)

	var (
		eg            errgroup.Group
		numWorkers    = runtime.NumCPU()
		rowsPerWorker = (g.rows + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.rows)
		)
		if startRow >= g.rows {
			break
		}

		eg.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = errors.Errorf("rows %d-%d: %v", startRow, endRow, r)
				}
			}()
			buf := make([]int, 0, 8)
			for r := startRow; r < endRow; r++ {
				buf = g.evaluateRow(next, r, 0, g.cols-1, p, buf)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		GridToPool(next, p.pool)
		return nil, errors.Wrap(err, "[nextGenerationParallel] worker failed")
	}

	return next, nil
}

// nextGenerationBounded calculates next generation only in active region
func (g *Grid) nextGenerationBounded(p stepParams) *Grid {
	if !g.activeBounds.valid {
		g.calculateActiveBounds()
	}

	next := newGrid(p.pool, g.rows, g.cols)

	// If no active cells, return empty grid
	if !g.activeBounds.valid {
		return next
	}

	// Process only the active region + 1 margin
	minRow := max(0, g.activeBounds.minRow-1)
	maxRow := min(g.rows-1, g.activeBounds.maxRow+1)
	minCol := max(0, g.activeBounds.minCol-1)
	maxCol := min(g.cols-1, g.activeBounds.maxCol+1)

	buf := make([]int, 0, 8)
	for r := minRow; r <= maxRow; r++ {
		buf = g.evaluateRow(next, r, minCol, maxCol, p, buf)
	}

	next.calculateActiveBounds()
	return next
}
