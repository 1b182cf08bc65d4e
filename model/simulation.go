package model

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"github.com/pkg/errors"
)

// Simulation runs a Board generation by generation and tracks when it has
// settled. Front ends only talk to this type.
type Simulation struct {
	board       *Board
	generations int
	stable      bool
}

// Option configures a Simulation
type Option func(*simOptions)

type simOptions struct {
	rng *rand.Rand
}

// WithRNG injects the random source used for initialization and inheritance
func WithRNG(rng *rand.Rand) Option {
	return func(o *simOptions) { o.rng = rng }
}

// WithSeed makes the simulation reproducible for the given seed
func WithSeed(seed uint64) Option {
	return func(o *simOptions) { o.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// NewSimulation builds the board described by cfg
func NewSimulation(cfg BoardConfig, opts ...Option) (*Simulation, error) {
	var o simOptions
	for _, opt := range opts {
		opt(&o)
	}

	board, err := NewBoard(cfg, o.rng)
	if err != nil {
		return nil, errors.Wrap(err, "[NewSimulation] failed to build board")
	}
	return &Simulation{board: board}, nil
}

// CurrentBoard returns the current grid; callers must not modify it
func (s *Simulation) CurrentBoard() *Grid {
	return s.board.Current()
}

// Board exposes the underlying board
func (s *Simulation) Board() *Board {
	return s.board
}

// Advance runs one generation and returns the new grid. Once the simulation
// is stable it returns the current grid without stepping.
func (s *Simulation) Advance() (*Grid, error) {
	if s.stable {
		return s.board.Current(), nil
	}

	next, repeated, err := s.board.NextGeneration()
	if err != nil {
		return nil, errors.Wrapf(err, "[Advance] generation %d", s.generations+1)
	}
	s.generations++
	if repeated {
		s.stable = true
	}
	return next, nil
}

// IsStable reports whether a generation has reproduced the grid from two steps prior
func (s *Simulation) IsStable() bool {
	return s.stable
}

// GenerationCount returns the number of generations computed since the last reset
func (s *Simulation) GenerationCount() int {
	return s.generations
}

// ResetOptions selects how Reset rebuilds the board. A non-empty Seed wins over
// Randomize; with neither the board restarts from its starting grid.
type ResetOptions struct {
	Seed      [][]int
	Randomize bool
}

// Reset re-initializes the board and clears the generation count and stability.
// On error nothing changes.
func (s *Simulation) Reset(opts ResetOptions) error {
	switch {
	case !seedEmpty(opts.Seed):
		if err := s.board.Reseed(opts.Seed); err != nil {
			return errors.Wrap(err, "[Reset] failed to reseed board")
		}
	case opts.Randomize:
		s.board.Randomize()
	default:
		s.board.Restart()
	}
	s.generations = 0
	s.stable = false
	return nil
}

// ClassCount pairs a class with its number of live cells
type ClassCount struct {
	Class int
	Count int
}

// Census returns the live classes on the current board, most populous first
func (s *Simulation) Census() []ClassCount {
	counts := s.board.Current().ClassCounts(s.board.ClassCount())
	var out []ClassCount
	for class := 1; class < len(counts); class++ {
		if counts[class] > 0 {
			out = append(out, ClassCount{Class: class, Count: counts[class]})
		}
	}
	slices.SortStableFunc(out, func(a, b ClassCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return out
}
