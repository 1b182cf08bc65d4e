package model

import (
	"math/rand/v2"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sheikhrachel/go-conways/rules"
)

// BoardConfig holds the construction parameters of a Board.
//
// A shape is given by positive Rows and Cols; leaving both zero means no
// shape, in which case Seed is the whole board. A Seed with a shape is
// centered on a blank board. With a shape and no Seed the board is random.
type BoardConfig struct {
	Rows int
	Cols int
	Seed [][]int

	// Weight is the probability a randomly initialized cell starts alive
	Weight     float64
	ClassCount int
	// MutationProb is handed to rules.InheritClass for every birth
	MutationProb float64

	UseBoundedGrid bool
	UseMemoryPool  bool
}

// DefaultBoardConfig returns a single-class random board configuration
func DefaultBoardConfig(rows, cols int) BoardConfig {
	return BoardConfig{
		Rows:           rows,
		Cols:           cols,
		Weight:         0.35,
		ClassCount:     1,
		MutationProb:   rules.MutationProb,
		UseBoundedGrid: true,
	}
}

func (c BoardConfig) validate() error {
	if c.ClassCount < 1 {
		return newConfigError(ErrInvalidClassCount, "got %d", c.ClassCount)
	}
	if c.Weight < 0 || c.Weight > 1 {
		return newConfigError(ErrInvalidWeight, "got %v", c.Weight)
	}
	if c.MutationProb < 0 || c.MutationProb > 1 {
		return newConfigError(ErrInvalidMutationProb, "got %v", c.MutationProb)
	}
	if c.Rows < 0 || c.Cols < 0 || (c.Rows == 0) != (c.Cols == 0) {
		return newConfigError(ErrInvalidShape, "got (%d, %d)", c.Rows, c.Cols)
	}
	if c.Rows == 0 && seedEmpty(c.Seed) {
		return newConfigError(ErrNoShapeOrSeed, "")
	}
	return nil
}

// seedEmpty reports whether seed has no cells: no rows, or a first row with no columns
func seedEmpty(seed [][]int) bool {
	return len(seed) == 0 || len(seed[0]) == 0
}

// Board owns the grids of one game: the current generation, the one before it
// and the one the game started from.
type Board struct {
	cfg  BoardConfig
	rows int
	cols int

	current  *Grid
	previous *Grid
	starting *Grid

	rng  *rand.Rand
	pool *GridPool
}

// NewBoard validates cfg and builds the initial grid. A nil rng is replaced by
// a randomly seeded one.
func NewBoard(cfg BoardConfig, rng *rand.Rand) (*Board, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	b := &Board{
		cfg:  cfg,
		rows: cfg.Rows,
		cols: cfg.Cols,
		rng:  rng,
	}
	if cfg.UseMemoryPool {
		b.pool = NewGridPool()
	}

	var (
		initial *Grid
		err     error
	)
	if !seedEmpty(cfg.Seed) {
		initial, err = b.seededGrid(cfg.Seed)
	} else {
		initial = b.randomGrid()
	}
	if err != nil {
		return nil, err
	}
	b.start(initial)
	return b, nil
}

// seededGrid builds a grid from seed. Without a configured shape the seed
// defines the shape; otherwise it is centered.
func (b *Board) seededGrid(seed [][]int) (*Grid, error) {
	sg, err := NewGridFromRows(seed)
	if err != nil {
		return nil, err
	}
	for r := range sg.rows {
		for c := range sg.cols {
			if v := sg.cells[r][c]; v < 0 || v > b.cfg.ClassCount {
				return nil, newConfigError(ErrSeedValue, "value %d at (%d, %d) with %d classes", v, r, c, b.cfg.ClassCount)
			}
		}
	}

	if b.rows == 0 {
		b.rows, b.cols = sg.rows, sg.cols
		return sg, nil
	}
	if sg.rows > b.rows || sg.cols > b.cols {
		return nil, newConfigError(ErrSeedTooLarge, "seed (%d, %d) on board (%d, %d)", sg.rows, sg.cols, b.rows, b.cols)
	}

	row0, col0 := SeedOffset(b.rows, b.cols, sg.rows, sg.cols)
	g := NewGrid(b.rows, b.cols)
	g.place(sg, row0, col0)
	return g, nil
}

// SeedOffset returns where the top-left corner of a seed lands when centered
func SeedOffset(rows, cols, seedRows, seedCols int) (row0, col0 int) {
	return rows/2 - seedRows/2, cols/2 - seedCols/2
}

// randomGrid samples each cell as dead with probability 1-weight, otherwise
// as one of the classes with equal probability.
func (b *Board) randomGrid() *Grid {
	weights := make([]float64, b.cfg.ClassCount+1)
	weights[0] = 1 - b.cfg.Weight
	for k := 1; k <= b.cfg.ClassCount; k++ {
		weights[k] = b.cfg.Weight / float64(b.cfg.ClassCount)
	}
	dist := distuv.NewCategorical(weights, b.rng)

	g := NewGrid(b.rows, b.cols)
	for r := range g.rows {
		for c := range g.cols {
			g.cells[r][c] = int(dist.Rand())
		}
	}
	return g
}

func (b *Board) start(initial *Grid) {
	GridToPool(b.previous, b.pool)
	if b.current != b.starting {
		GridToPool(b.current, b.pool)
	}
	b.current = initial
	b.starting = initial.Clone()
	b.previous = nil
}

// Reseed restarts the board from seed, centered on the existing shape
func (b *Board) Reseed(seed [][]int) error {
	g, err := b.seededGrid(seed)
	if err != nil {
		return errors.Wrap(err, "[Reseed] invalid seed")
	}
	b.start(g)
	return nil
}

// Randomize restarts the board from a fresh random sample
func (b *Board) Randomize() {
	b.start(b.randomGrid())
}

// Restart puts the board back to the grid it started from
func (b *Board) Restart() {
	b.start(b.starting.Clone())
}

// NextGeneration computes the next generation from the current grid and makes it
// current. repeated reports whether the new grid equals the one from two steps
// prior. On error the board is left unchanged.
func (b *Board) NextGeneration() (next *Grid, repeated bool, err error) {
	p := stepParams{
		classCount:   b.cfg.ClassCount,
		mutationProb: b.cfg.MutationProb,
		seed:         b.rng.Uint64(),
		pool:         b.pool,
	}

	if b.cfg.UseBoundedGrid {
		next = b.current.nextGenerationBounded(p)
	} else if next, err = b.current.nextGenerationParallel(p); err != nil {
		return nil, false, errors.Wrap(err, "[NextGeneration] failed to compute generation")
	}

	repeated = next.Equal(b.previous)
	GridToPool(b.previous, b.pool)
	b.previous, b.current = b.current, next
	return next, repeated, nil
}

// Current returns the current grid. With the memory pool enabled the grid is
// recycled two generations later; Clone it to keep it longer.
func (b *Board) Current() *Grid { return b.current }

// Previous returns the grid before the current one, nil before the first step
func (b *Board) Previous() *Grid { return b.previous }

// Starting returns the grid the board was (re)started from
func (b *Board) Starting() *Grid { return b.starting }

// Shape returns the board dimensions
func (b *Board) Shape() (rows, cols int) { return b.rows, b.cols }

// ClassCount returns the number of cell classes
func (b *Board) ClassCount() int { return b.cfg.ClassCount }
