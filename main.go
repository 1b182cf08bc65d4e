package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/pkg/profile"

	"github.com/sheikhrachel/go-conways/model"
	"github.com/sheikhrachel/go-conways/utils"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func run() error {
	config, err := loadConfig("config.json")
	if err != nil {
		return err
	}
	config.Bind(flag.CommandLine)
	flag.Parse()

	if config.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	switch config.Renderer {
	case utils.RendererPlain:
		return runPlain(config)
	case utils.RendererScreen:
		return runScreen(config)
	default:
		return errors.Errorf("unknown renderer %q", config.Renderer)
	}
}

// runPlain prints every generation to stdout until interrupted
func runPlain(config utils.Config) error {
	rows, cols := config.Rows, config.Cols
	if rows == 0 || cols == 0 {
		rows, cols = defaultRows, defaultCols
	}

	sim, stats, err := initializeGame(config, rows, cols)
	if err != nil {
		return err
	}
	renderer := &model.TerminalRenderer{}
	displayGameInfo(config, sim)

	// Handle Ctrl+C gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	lastFrameTime := time.Now()
	for {
		select {
		case <-sigChan:
			fmt.Println("\n🛑 Shutting down gracefully...")
			fmt.Printf("Final stats: %d generations in %.1f seconds\n",
				stats.TotalGenerations, time.Since(stats.StartTime).Seconds())
			return nil
		default:
			// Continue with game loop
		}

		frameStart := time.Now()
		renderer.Clear()

		livingCells, density, status := updateGameState(sim, lastFrameTime, stats)
		lastFrameTime = frameStart

		displayGameStatus(statusLine(sim, config, livingCells, density, status, stats, false), stats)
		renderer.Display(sim.CurrentBoard(), sim.Board().ClassCount())

		more, reason, err := stepGame(sim, config)
		if err != nil {
			return err
		}
		if !more {
			fmt.Printf("\n🏁 Reached maximum generations limit (%d)\n", config.MaxGenerations)
			return nil
		}
		if reason != "" {
			fmt.Printf("🔄 Restarting due to %s...\n", reason)
			time.Sleep(1 * time.Second)
		}

		// Wait before next frame
		time.Sleep(config.FrameRate)
	}
}

// runScreen drives the simulation on a full-screen terminal UI
func runScreen(config utils.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "[runScreen] failed to create screen")
	}
	if err = screen.Init(); err != nil {
		return errors.Wrap(err, "[runScreen] failed to initialize screen")
	}
	defer screen.Fini()
	screen.HideCursor()

	renderer := model.NewScreenRenderer(screen)
	rows, cols := config.Rows, config.Cols
	if rows == 0 || cols == 0 {
		rows, cols = renderer.BoardShape()
	}

	sim, stats, err := initializeGame(config, rows, cols)
	if err != nil {
		return err
	}

	commands := make(chan command, 8)
	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				// screen finalized
				return
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if cmd := commandForKey(ev); cmd != cmdNone {
					select {
					case commands <- cmd:
					default:
					}
				}
			}
		}
	}()

	ticker := time.NewTicker(max(config.FrameRate, time.Millisecond))
	defer ticker.Stop()

	var (
		paused        bool
		lastFrameTime = time.Now()
	)
	for {
		livingCells, density, status := updateGameState(sim, lastFrameTime, stats)
		renderer.Display(sim.CurrentBoard(), sim.Board().ClassCount(),
			statusLine(sim, config, livingCells, density, status, stats, paused))

		select {
		case cmd := <-commands:
			switch cmd {
			case cmdQuit:
				return nil
			case cmdPause:
				paused = !paused
			case cmdRandomize:
				err = sim.Reset(model.ResetOptions{Randomize: true})
			case cmdRestart:
				err = sim.Reset(model.ResetOptions{})
			case cmdStep:
				_, err = sim.Advance()
			}
			if err != nil {
				return err
			}
		case <-ticker.C:
			if paused {
				continue
			}
			lastFrameTime = time.Now()
			more, _, err := stepGame(sim, config)
			if err != nil {
				return err
			}
			if !more {
				paused = true
			}
		}
	}
}
