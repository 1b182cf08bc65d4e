package utils

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-conways/model"
	"github.com/sheikhrachel/go-conways/rules"
)

const (
	RendererScreen = "screen"
	RendererPlain  = "plain"
)

// Config holds the configuration for the game
type Config struct {
	// Rows and Cols of 0 size the board from the terminal
	Rows           int           `json:"rows"`
	Cols           int           `json:"cols"`
	Weight         float64       `json:"weight"`
	Classes        int           `json:"classes"`
	MutationProb   float64       `json:"mutation_prob"`
	Pattern        string        `json:"pattern"`
	RandomSeed     uint64        `json:"random_seed"`
	FrameRate      time.Duration `json:"frame_rate"`
	AutoRestart    bool          `json:"auto_restart"`
	MaxGenerations int           `json:"max_generations"`
	UseMemoryPool  bool          `json:"use_memory_pool"`
	UseBoundedGrid bool          `json:"use_bounded_grid"`
	Renderer       string        `json:"renderer"`
	Profile        bool          `json:"profile"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Weight:         0.35,
		Classes:        1,
		MutationProb:   rules.MutationProb,
		FrameRate:      80 * time.Millisecond,
		AutoRestart:    false,
		MaxGenerations: 0,
		UseMemoryPool:  true,
		UseBoundedGrid: true, // Enable active region optimization
		Renderer:       RendererScreen,
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Bind attaches the configuration to the provided FlagSet so flags override
// whatever was loaded from file.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Rows, "rows", c.Rows, "board rows (0 fits the terminal)")
	fs.IntVar(&c.Cols, "cols", c.Cols, "board columns (0 fits the terminal)")
	fs.Float64Var(&c.Weight, "weight", c.Weight, "probability a random cell starts alive")
	fs.IntVar(&c.Classes, "classes", c.Classes, "number of cell classes")
	fs.Float64Var(&c.MutationProb, "mutation", c.MutationProb, "chance a newborn cell takes a random class")
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "seed pattern to center on the board")
	fs.Uint64Var(&c.RandomSeed, "seed", c.RandomSeed, "random seed (0 picks one)")
	fs.DurationVar(&c.FrameRate, "frame", c.FrameRate, "delay between generations")
	fs.BoolVar(&c.AutoRestart, "restart", c.AutoRestart, "start a new random board once stable")
	fs.IntVar(&c.MaxGenerations, "max", c.MaxGenerations, "stop after this many generations (0 runs forever)")
	fs.BoolVar(&c.UseMemoryPool, "pool", c.UseMemoryPool, "recycle generation buffers")
	fs.BoolVar(&c.UseBoundedGrid, "bounded", c.UseBoundedGrid, "only evaluate the active region")
	fs.StringVar(&c.Renderer, "renderer", c.Renderer, "screen or plain")
	fs.BoolVar(&c.Profile, "profile", c.Profile, "write a CPU profile")
}

// BoardConfig converts the configuration for a board of the given shape
func (c Config) BoardConfig(rows, cols int) (model.BoardConfig, error) {
	bc := model.BoardConfig{
		Rows:           rows,
		Cols:           cols,
		Weight:         c.Weight,
		ClassCount:     c.Classes,
		MutationProb:   c.MutationProb,
		UseBoundedGrid: c.UseBoundedGrid,
		UseMemoryPool:  c.UseMemoryPool,
	}
	if c.Pattern != "" {
		seed, err := model.Pattern(c.Pattern)
		if err != nil {
			return bc, errors.Wrap(err, "[BoardConfig] failed to load pattern")
		}
		if c.Classes > 1 {
			seed = model.Classify(seed, c.Classes)
		}
		bc.Seed = seed
	}
	return bc, nil
}
