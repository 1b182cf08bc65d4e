package rules

import "math/rand/v2"

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

Conway's Game of Life rules: (alive && neighbors == 2) || neighbors == 3
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	return (alive && neighbors == 2) || neighbors == 3
}

// NextState returns the value a cell holding current takes in the next generation,
// given the values of its live neighbors.
//
// Survivors keep their value untouched. Only births draw a class, and only when
// classCount > 1; a single-class board births plain 1s and never touches rng.
func NextState(current int, aliveNeighbors []int, classCount int, mutationProb float64, rng *rand.Rand) int {
	alive := current > 0
	if !ApplyConwayRules(len(aliveNeighbors), alive) {
		return 0
	}
	if alive {
		return current
	}
	if classCount <= 1 {
		return 1
	}
	return InheritClass(aliveNeighbors, classCount, mutationProb, rng)
}
