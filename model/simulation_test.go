package model

import (
	"math/rand/v2"
	"testing"

	"github.com/pkg/errors"
)

func newTestSimulation(t *testing.T, cfg BoardConfig, seed uint64) *Simulation {
	t.Helper()
	sim, err := NewSimulation(cfg, WithSeed(seed))
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	return sim
}

func expectCells(t *testing.T, g *Grid, alive map[[2]int]bool) {
	t.Helper()
	for r := range g.GetRows() {
		for c := range g.GetCols() {
			got := g.Get(r, c) > 0
			if got != alive[[2]int{r, c}] {
				t.Fatalf("cell (%d,%d) alive=%v, expected %v", r, c, got, alive[[2]int{r, c}])
			}
		}
	}
}

func TestBlinkerOscillation(t *testing.T) {
	cfg := DefaultBoardConfig(5, 5)
	cfg.Seed, _ = Pattern("blinker")
	sim := newTestSimulation(t, cfg, 1)

	horizontal := map[[2]int]bool{{2, 1}: true, {2, 2}: true, {2, 3}: true}
	vertical := map[[2]int]bool{{1, 2}: true, {2, 2}: true, {3, 2}: true}
	expectCells(t, sim.CurrentBoard(), horizontal)

	g, err := sim.Advance()
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	expectCells(t, g, vertical)
	if sim.IsStable() {
		t.Fatal("stable after one generation")
	}

	g, _ = sim.Advance()
	expectCells(t, g, horizontal)
	// Period two matches the two-step lookback
	if !sim.IsStable() {
		t.Fatal("period-2 oscillator not detected by the two-step lookback")
	}
	if sim.GenerationCount() != 2 {
		t.Fatalf("generation = %d, expected 2", sim.GenerationCount())
	}
}

func TestBlockIsStable(t *testing.T) {
	cfg := DefaultBoardConfig(4, 4)
	cfg.Seed = [][]int{{1, 1}, {1, 1}}
	sim := newTestSimulation(t, cfg, 1)
	start := sim.CurrentBoard().Clone()

	g, _ := sim.Advance()
	if !g.Equal(start) {
		t.Fatal("block changed after one generation")
	}
	g, _ = sim.Advance()
	if !g.Equal(start) {
		t.Fatal("block changed after two generations")
	}
	if !sim.IsStable() {
		t.Fatal("block not detected as stable")
	}
}

func TestEmptyBoardStaysEmpty(t *testing.T) {
	cfg := DefaultBoardConfig(3, 7)
	cfg.Weight = 0
	sim := newTestSimulation(t, cfg, 1)

	for i := range 2 {
		g, _ := sim.Advance()
		if g.CountLivingCells() != 0 {
			t.Fatalf("generation %d has live cells", i+1)
		}
	}
	if !sim.IsStable() {
		t.Fatal("empty board not stable after the lookback window")
	}
}

func TestStableSimulationStopsEvolving(t *testing.T) {
	cfg := DefaultBoardConfig(5, 5)
	cfg.Seed, _ = Pattern("blinker")
	sim := newTestSimulation(t, cfg, 1)
	sim.Advance()
	sim.Advance()
	if !sim.IsStable() {
		t.Fatal("expected stable simulation")
	}

	frozen := sim.CurrentBoard().Clone()
	gen := sim.GenerationCount()
	for range 5 {
		g, err := sim.Advance()
		if err != nil {
			t.Fatalf("Advance: %v", err)
		}
		if !g.Equal(frozen) {
			t.Fatal("board changed after stability")
		}
	}
	if sim.GenerationCount() != gen {
		t.Fatalf("generation moved from %d to %d while stable", gen, sim.GenerationCount())
	}
}

// reference applies the classic rule with a plain neighbor count
func reference(g *Grid) [][]bool {
	out := make([][]bool, g.GetRows())
	for r := range g.GetRows() {
		out[r] = make([]bool, g.GetCols())
		for c := range g.GetCols() {
			n := 0
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if (dr != 0 || dc != 0) && g.Get(r+dr, c+dc) > 0 {
						n++
					}
				}
			}
			alive := g.Get(r, c) > 0
			out[r][c] = n == 3 || (n == 2 && alive)
		}
	}
	return out
}

func TestAdvanceMatchesClassicRule(t *testing.T) {
	for _, bounded := range []bool{true, false} {
		cfg := DefaultBoardConfig(23, 31)
		cfg.ClassCount = 4
		cfg.UseBoundedGrid = bounded
		sim := newTestSimulation(t, cfg, 7)

		for gen := range 15 {
			want := reference(sim.CurrentBoard())
			prev := sim.CurrentBoard().Clone()
			g, err := sim.Advance()
			if err != nil {
				t.Fatalf("Advance: %v", err)
			}
			for r := range g.GetRows() {
				for c := range g.GetCols() {
					v := g.Get(r, c)
					if (v > 0) != want[r][c] {
						t.Fatalf("bounded=%v gen %d cell (%d,%d) = %d, expected alive=%v", bounded, gen+1, r, c, v, want[r][c])
					}
					if v < 0 || v > 4 {
						t.Fatalf("class %d out of range", v)
					}
					if p := prev.Get(r, c); p > 0 && v > 0 && p != v {
						t.Fatalf("survivor at (%d,%d) changed class %d -> %d", r, c, p, v)
					}
				}
			}
			if sim.IsStable() {
				break
			}
		}
	}
}

func TestSingleClassDeterministic(t *testing.T) {
	cfg := DefaultBoardConfig(0, 0)
	cfg.Seed = randomSeed(30, 30, 17)

	a := newTestSimulation(t, cfg, 1)
	b := newTestSimulation(t, cfg, 2)
	for gen := range 20 {
		ga, _ := a.Advance()
		gb, _ := b.Advance()
		if !ga.Equal(gb) {
			t.Fatalf("generation %d differs between random sources", gen+1)
		}
	}
}

func randomSeed(rows, cols int, seed uint64) [][]int {
	rng := seededRNG(seed)
	out := make([][]int, rows)
	for r := range out {
		out[r] = make([]int, cols)
		for c := range out[r] {
			out[r][c] = rng.IntN(2)
		}
	}
	return out
}

func TestBoundedAndParallelAgree(t *testing.T) {
	cfg := DefaultBoardConfig(40, 37)
	cfg.ClassCount = 5
	cfg.MutationProb = 0.05

	cfg.UseBoundedGrid = true
	bounded := newTestSimulation(t, cfg, 123)
	cfg.UseBoundedGrid = false
	parallel := newTestSimulation(t, cfg, 123)

	for gen := range 30 {
		gb, _ := bounded.Advance()
		gp, _ := parallel.Advance()
		if !gb.Equal(gp) {
			t.Fatalf("kernels diverged at generation %d", gen+1)
		}
	}
}

func TestMemoryPoolDoesNotChangeResults(t *testing.T) {
	cfg := DefaultBoardConfig(25, 25)
	cfg.ClassCount = 3

	plain := newTestSimulation(t, cfg, 55)
	cfg.UseMemoryPool = true
	pooled := newTestSimulation(t, cfg, 55)

	for gen := range 25 {
		gp, _ := plain.Advance()
		gq, _ := pooled.Advance()
		if !gp.Equal(gq) {
			t.Fatalf("pooled run diverged at generation %d", gen+1)
		}
		if plain.IsStable() != pooled.IsStable() {
			t.Fatalf("stability differs at generation %d", gen+1)
		}
	}
}

func TestNewbornInheritsUnanimousClass(t *testing.T) {
	cfg := DefaultBoardConfig(0, 0)
	cfg.ClassCount = 2
	cfg.MutationProb = 0
	cfg.Seed = [][]int{
		{1, 1, 1},
		{0, 0, 0},
		{0, 0, 0},
	}

	for seed := range uint64(50) {
		sim := newTestSimulation(t, cfg, seed)
		g, _ := sim.Advance()
		if got := g.Get(1, 1); got != 1 {
			t.Fatalf("seed %d: newborn class = %d, expected 1", seed, got)
		}
	}
}

func TestResetModes(t *testing.T) {
	cfg := DefaultBoardConfig(10, 10)
	cfg.ClassCount = 2
	sim := newTestSimulation(t, cfg, 8)
	start := sim.CurrentBoard().Clone()

	sim.Advance()
	sim.Advance()
	if err := sim.Reset(ResetOptions{}); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if !sim.CurrentBoard().Equal(start) {
		t.Fatal("restart did not return to the starting grid")
	}
	if sim.GenerationCount() != 0 || sim.IsStable() {
		t.Fatal("restart kept generation or stability")
	}
	if sim.Board().Previous() != nil {
		t.Fatal("restart kept the previous grid")
	}

	glider, _ := Pattern("glider")
	if err := sim.Reset(ResetOptions{Seed: glider, Randomize: true}); err != nil {
		t.Fatalf("Reset with seed: %v", err)
	}
	if n := sim.CurrentBoard().CountLivingCells(); n != 5 {
		t.Fatalf("glider reset has %d live cells", n)
	}
	if !sim.Board().Starting().Equal(sim.CurrentBoard()) {
		t.Fatal("reseed did not replace the starting grid")
	}

	if err := sim.Reset(ResetOptions{Randomize: true}); err != nil {
		t.Fatalf("Reset randomize: %v", err)
	}
	if rows, cols := sim.Board().Shape(); rows != 10 || cols != 10 {
		t.Fatalf("randomize changed shape to (%d, %d)", rows, cols)
	}

	before := sim.CurrentBoard()
	err := sim.Reset(ResetOptions{Seed: [][]int{{5}}})
	if !errors.Is(err, ErrSeedValue) {
		t.Fatalf("invalid reseed error = %v", err)
	}
	if sim.CurrentBoard() != before {
		t.Fatal("failed reset changed the board")
	}
}

func TestResetEmptySeedFallsThrough(t *testing.T) {
	cfg := DefaultBoardConfig(6, 6)
	cfg.Weight = 1
	sim := newTestSimulation(t, cfg, 4)
	start := sim.CurrentBoard().Clone()
	sim.Advance()

	if err := sim.Reset(ResetOptions{Seed: [][]int{{}}}); err != nil {
		t.Fatalf("Reset with empty seed: %v", err)
	}
	if !sim.CurrentBoard().Equal(start) {
		t.Fatal("empty seed did not restart from the starting grid")
	}
	if err := sim.Reset(ResetOptions{Seed: [][]int{}, Randomize: true}); err != nil {
		t.Fatalf("Reset with empty seed and randomize: %v", err)
	}
	if n := sim.CurrentBoard().CountLivingCells(); n != 36 {
		t.Fatalf("randomized board has %d live cells, expected 36", n)
	}
}

func TestWithRNGIsReproducible(t *testing.T) {
	cfg := DefaultBoardConfig(24, 24)
	cfg.ClassCount = 4
	cfg.MutationProb = 0.1

	build := func() *Simulation {
		t.Helper()
		sim, err := NewSimulation(cfg, WithRNG(rand.New(rand.NewPCG(17, 42))))
		if err != nil {
			t.Fatalf("NewSimulation: %v", err)
		}
		return sim
	}
	a, b := build(), build()
	if !a.CurrentBoard().Equal(b.CurrentBoard()) {
		t.Fatal("same injected source produced different starting boards")
	}
	for gen := range 20 {
		ga, _ := a.Advance()
		gb, _ := b.Advance()
		if !ga.Equal(gb) {
			t.Fatalf("generation %d differs for the same injected source", gen+1)
		}
	}

	other, err := NewSimulation(cfg, WithRNG(rand.New(rand.NewPCG(18, 42))))
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	if other.CurrentBoard().Equal(a.Board().Starting()) {
		t.Fatal("different injected sources produced the same starting board")
	}
}

func TestResetClearsStability(t *testing.T) {
	cfg := DefaultBoardConfig(4, 4)
	cfg.Seed = [][]int{{1, 1}, {1, 1}}
	sim := newTestSimulation(t, cfg, 1)
	sim.Advance()
	sim.Advance()
	if !sim.IsStable() {
		t.Fatal("expected stable block")
	}

	blinker, _ := Pattern("blinker")
	if err := sim.Reset(ResetOptions{Seed: blinker}); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if sim.IsStable() {
		t.Fatal("stability survived reset")
	}
	g, _ := sim.Advance()
	if g.Get(1, 2) == 0 || sim.GenerationCount() != 1 {
		t.Fatal("simulation did not evolve after reset")
	}
}

func TestCensus(t *testing.T) {
	cfg := DefaultBoardConfig(0, 0)
	cfg.ClassCount = 3
	cfg.Seed = [][]int{
		{3, 3, 0},
		{1, 3, 0},
		{0, 0, 0},
	}
	sim := newTestSimulation(t, cfg, 1)

	census := sim.Census()
	if len(census) != 2 {
		t.Fatalf("census = %v, expected two classes", census)
	}
	if census[0] != (ClassCount{Class: 3, Count: 3}) || census[1] != (ClassCount{Class: 1, Count: 1}) {
		t.Fatalf("census = %v", census)
	}
	if got := CensusLine(census); got != "3: 3 1: 1" {
		t.Fatalf("CensusLine = %q", got)
	}
}

func TestNewSimulationWrapsConfigError(t *testing.T) {
	_, err := NewSimulation(BoardConfig{ClassCount: 1})
	if !errors.Is(err, ErrNoShapeOrSeed) {
		t.Fatalf("error = %v, expected ErrNoShapeOrSeed", err)
	}
}
