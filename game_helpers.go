package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-conways/model"
	"github.com/sheikhrachel/go-conways/utils"
)

const (
	defaultRows = 30
	defaultCols = 60
)

// loadConfig reads path, falling back to defaults only when the file doesn't exist
func loadConfig(path string) (utils.Config, error) {
	config, err := utils.LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Printf("Using default configuration (%s not found)\n", path)
		return utils.DefaultConfig(), nil
	}
	if err != nil {
		return utils.Config{}, errors.Wrap(err, "[loadConfig] invalid configuration")
	}
	return config, nil
}

// initializeGame sets up the initial game state
func initializeGame(config utils.Config, rows, cols int) (*model.Simulation, *utils.Stats, error) {
	boardConfig, err := config.BoardConfig(rows, cols)
	if err != nil {
		return nil, nil, err
	}

	seed := config.RandomSeed
	if seed == 0 {
		seed = rand.Uint64()
	}

	sim, err := model.NewSimulation(boardConfig, model.WithSeed(seed))
	if err != nil {
		return nil, nil, errors.Wrap(err, "[initializeGame] failed to create simulation")
	}
	return sim, utils.NewStats(), nil
}

// displayGameInfo shows the initial game information
func displayGameInfo(config utils.Config, sim *model.Simulation) {
	rows, cols := sim.Board().Shape()
	fmt.Printf("Features: Memory Pool: %v, Bounded: %v, Classes: %d\n",
		config.UseMemoryPool, config.UseBoundedGrid, config.Classes)
	fmt.Printf("Grid: %dx%d | Initial living cells: %d\n",
		rows, cols, sim.CurrentBoard().CountLivingCells())
	fmt.Println("Press Ctrl+C to exit gracefully")
	fmt.Println()
	time.Sleep(2 * time.Second)
}

// updateGameState refreshes stats for the current board and returns status information
func updateGameState(
	sim *model.Simulation,
	lastFrameTime time.Time,
	stats *utils.Stats,
) (int, float64, string) {
	var (
		grid        = sim.CurrentBoard()
		livingCells = grid.CountLivingCells()
		density     = float64(livingCells) / float64(grid.GetRows()*grid.GetCols()) * 100
	)

	stats.Update(sim.GenerationCount(), livingCells, time.Since(lastFrameTime))
	stats.UpdateDiversity(grid.ClassCounts(sim.Board().ClassCount())[1:])

	status := "Active"
	if sim.IsStable() {
		status = fmt.Sprintf("Stable (%d)", sim.GenerationCount())
	}
	if livingCells == 0 {
		status = "Extinct"
	}

	return livingCells, density, status
}

// statusLine formats the one-line HUD shown under the board
func statusLine(sim *model.Simulation, config utils.Config, livingCells int, density float64, status string, stats *utils.Stats, paused bool) string {
	line := fmt.Sprintf("Gen: %d | Living: %d | Density: %.1f%% | Status: %s",
		sim.GenerationCount(), livingCells, density, status)

	// Show bounding box info for bounded grids
	if config.UseBoundedGrid {
		line += fmt.Sprintf(" | Bounding box: %d cells", sim.CurrentBoard().GetBoundingBoxSize())
	}
	if paused {
		line += " | Paused"
	}
	if sim.Board().ClassCount() > 1 {
		line += fmt.Sprintf(" | Diversity: %.2f | %s", stats.Diversity, model.CensusLine(sim.Census()))
	}
	return line
}

// displayGameStatus shows the current game status
func displayGameStatus(line string, stats *utils.Stats) {
	fmt.Println(line)
	fmt.Printf("Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, time.Since(stats.StartTime).Seconds())
	fmt.Println()
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(sim *model.Simulation, config utils.Config) (bool, string) {
	if !config.AutoRestart {
		return false, ""
	}
	if sim.CurrentBoard().CountLivingCells() == 0 {
		return true, "extinction"
	}
	if sim.IsStable() {
		return true, "stability detected"
	}
	return false, ""
}

// stepGame restarts sim when the run has settled, otherwise advances it by one
// generation. It returns false once the generation limit is reached.
func stepGame(sim *model.Simulation, config utils.Config) (bool, string, error) {
	if config.MaxGenerations > 0 && sim.GenerationCount() >= config.MaxGenerations {
		return false, "", nil
	}

	if restart, reason := checkRestartConditions(sim, config); restart {
		if err := sim.Reset(model.ResetOptions{Randomize: true}); err != nil {
			return false, "", errors.Wrap(err, "[stepGame] failed to restart")
		}
		return true, reason, nil
	}

	if _, err := sim.Advance(); err != nil {
		return false, "", err
	}
	return true, "", nil
}
