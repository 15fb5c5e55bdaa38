// SPDX-License-Identifier: Apache-2.0
// Copyright 2020,2021 Marcus Soll
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	  http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// sn_ake is a snake game for the terminal.
// The snake is steered with relative turns (left and right arrow), q quits.
// Headless modes let a pilot steer instead of the keyboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

func main() {
	cfg := DefaultConfig()

	flag.IntVar(&cfg.Width, "width", cfg.Width, "Width of the playfield")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "Height of the playfield")
	flag.DurationVar(&cfg.Tick, "tick", cfg.Tick, "Time between two moves. Must be parseable as time.Duration")
	flag.IntVar(&cfg.InitialLength, "length", cfg.InitialLength, "Initial length of the snake")
	flag.IntVar(&cfg.InitialPosition.X, "x", cfg.InitialPosition.X, "Initial x position of the tail")
	flag.IntVar(&cfg.InitialPosition.Y, "y", cfg.InitialPosition.Y, "Initial y position of the tail")
	direction := flag.String("direction", cfg.InitialDirection.String(), "Initial direction (left, right, up, down)")
	flag.Float64Var(&cfg.FoodDensity, "density", cfg.FoodDensity, "Food density as fraction of width+height minus snake length")
	flag.Int64Var(&cfg.Seed, "seed", 0, "Random seed. 0 uses the current time")
	ui := flag.String("ui", "terminal", "User interface: terminal, cmd or quiet")
	pilotName := flag.String("pilot", "random", "Pilot steering the snake in cmd and quiet ui: random or straight")
	limit := flag.Int("limit", 0, "Quit after the pilot produced this many events. 0 disables the limit")
	profile := flag.String("profile", "", "Profile program to file")
	print := flag.String("print", "", "Prints the board after every tick into file")
	printResult := flag.String("printresult", "", "Prints outcome of the game as a single line into file")
	spectate := flag.String("spectate", "", "Address to stream the game to websocket spectators, e.g. :8080")
	logFile := flag.String("log", "", "Write log to file. Without a file, only the cmd and quiet ui log (to stderr)")
	logLevel := flag.String("loglevel", "info", "Log level")
	flag.Parse()

	// Replace flags
	{
		env := os.Getenv("SNAKE_SEED")
		if env != "" {
			seed, err := strconv.ParseInt(env, 10, 64)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Ignoring SNAKE_SEED:", err)
			} else {
				cfg.Seed = seed
			}
		}

		env = os.Getenv("SNAKE_SPECTATE")
		if env != "" {
			*spectate = env
		}

		env = os.Getenv("SNAKE_LOG")
		if env != "" {
			*logFile = env
		}
	}

	var err error
	cfg.InitialDirection, err = ParseDirection(*direction)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, closeLog, err := newLogger(*logFile, *logLevel, *ui != "terminal")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	stopProfile := func() error { return nil }
	if *profile != "" {
		stopProfile, err = startProfile(*profile)
		if err != nil {
			panic(err)
		}
		defer stopProfile()
	}

	// fail reports err and exits. Deferred calls do not run on os.Exit.
	fail := func(err error) {
		fmt.Fprintln(os.Stderr, err)
		stopProfile()
		closeLog()
		os.Exit(1)
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	log.Info().Int64("seed", cfg.Seed).Msg("starting game")

	game, err := NewGame(cfg, rand.New(rand.NewSource(cfg.Seed)), log)
	if err != nil {
		fail(err)
	}

	var UI UI
	var input InputSource
	switch *ui {
	case "terminal":
		t := new(terminalUI)
		UI = t
		input = t
	case "cmd":
		UI = &cmdUI{}
	case "quiet":
		UI = quietUI{}
	default:
		fail(fmt.Errorf("unknown ui %q", *ui))
	}

	if input == nil {
		// The pilot runs in the listener goroutine and must not share the generator of the game.
		pilot, err := GetPilot(*pilotName, rand.New(rand.NewSource(cfg.Seed+1)))
		if err != nil {
			fail(err)
		}
		input = &pilotInput{Pilot: pilot, Interval: cfg.Tick, Limit: *limit}
	}

	if *print != "" {
		UI = &teeUI{File: *print, UI: UI}
	}

	if *printResult != "" {
		UI = &printResultUI{File: *printResult, UI: UI}
	}

	if *spectate != "" {
		UI = &spectateUI{Addr: *spectate, UI: UI, Log: log}
	}

	err = UI.Initialise(game.Field)
	if err != nil {
		fail(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listenErr := make(chan error, 1)
	go func() {
		err := Listen(ctx, input, game.Direction, cancel, log)
		if err != nil {
			cancel()
			if c, ok := input.(interface{ Close() }); ok {
				c.Close()
			}
		}
		listenErr <- err
	}()

	result, runErr := game.Run(ctx, UI)
	if runErr != nil {
		log.Error().Err(runErr).Msg("game aborted")
	}

	err = UI.Finish(result)
	if err != nil {
		log.Error().Err(err).Msg("finishing ui")
	}
	UI.Wait()
	cancel()

	if *ui == "terminal" {
		fmt.Printf("Game over: %s\n", result)
	}

	select {
	case err := <-listenErr:
		if err != nil {
			runErr = err
		}
	default:
	}
	if runErr != nil {
		fail(runErr)
	}
}

// startProfile writes a CPU profile to path. The returned function stops profiling and closes the file.
func startProfile(path string) (func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	err = pprof.StartCPUProfile(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return func() error {
		pprof.StopCPUProfile()
		return f.Close()
	}, nil
}

// newLogger returns a logger writing JSON lines to path. Without a path, a console logger on
// stderr is returned if console is set, otherwise logging is disabled.
func newLogger(path, level string, console bool) (zerolog.Logger, func() error, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("log level: %w", err)
	}

	var w io.Writer
	closer := func() error { return nil }
	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("log file: %w", err)
		}
		w = f
		closer = f.Close
	case console:
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	default:
		return zerolog.Nop(), closer, nil
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), closer, nil
}
