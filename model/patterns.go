package model

import (
	"slices"

	"github.com/pkg/errors"
)

var patterns = map[string][][]int{
	"rpentomino": {
		{0, 1, 1},
		{1, 1, 0},
		{0, 1, 0},
	},
	"glider": {
		{0, 1, 0},
		{0, 0, 1},
		{1, 1, 1},
	},
	"blinker": {
		{0, 0, 0},
		{1, 1, 1},
		{0, 0, 0},
	},
	"block": {
		{1, 1},
		{1, 1},
	},
}

// Pattern returns a copy of a named seed
func Pattern(name string) ([][]int, error) {
	p, ok := patterns[name]
	if !ok {
		return nil, errors.WithStack(&ConfigError{Err: ErrUnknownPattern, Detail: name})
	}
	out := make([][]int, len(p))
	for i, row := range p {
		out[i] = slices.Clone(row)
	}
	return out, nil
}

// PatternNames lists the available seeds in sorted order
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Classify spreads classCount classes over the live cells of pattern, so a
// preset seed can start a multi-class game.
func Classify(pattern [][]int, classCount int) [][]int {
	classCount = max(classCount, 1)
	out := make([][]int, len(pattern))
	n := 0
	for i, row := range pattern {
		out[i] = make([]int, len(row))
		for j, v := range row {
			if v > 0 {
				out[i][j] = n%classCount + 1
				n++
			}
		}
	}
	return out
}
