package rules

import (
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/stat/distuv"
)

// MutationProb is the chance a newborn cell takes a uniformly random class
// instead of one inherited from its neighbors.
const MutationProb = 0.001

// InheritClass draws a class for a newborn cell.
//
// Each distinct neighbor class is weighted by its share of aliveNeighbors scaled
// by (1 - mutationProb). One extra mutant outcome carries mutationProb and maps
// to a class drawn uniformly from 1..classCount, which may repeat a neighbor class.
func InheritClass(aliveNeighbors []int, classCount int, mutationProb float64, rng *rand.Rand) int {
	if classCount <= 1 {
		return 1
	}
	mutant := rng.IntN(classCount) + 1
	if len(aliveNeighbors) == 0 {
		return mutant
	}

	var (
		classes []int
		counts  []float64
	)
	for _, n := range aliveNeighbors {
		i := slices.Index(classes, n)
		if i < 0 {
			classes = append(classes, n)
			counts = append(counts, 0)
			i = len(classes) - 1
		}
		counts[i]++
	}

	total := float64(len(aliveNeighbors))
	weights := make([]float64, len(classes)+1)
	for i, c := range counts {
		weights[i] = c / total * (1 - mutationProb)
	}
	weights[len(classes)] = mutationProb

	idx := int(distuv.NewCategorical(weights, rng).Rand())
	if idx >= len(classes) {
		return mutant
	}
	return classes[idx]
}
