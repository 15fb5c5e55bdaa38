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

package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

// maxDrawFailures is the number of consecutive failed draws tolerated before the game is aborted.
const maxDrawFailures = 5

var errGameOver = errors.New("game is already over")

// LoopState is the state of the game loop.
type LoopState int

const (
	// StateRunning is the initial state.
	StateRunning LoopState = iota
	// StateTerminated is reached after a collision or a quit. It is never left.
	StateTerminated
)

// Outcome describes why a game ended.
type Outcome int

const (
	// OutcomeWallCollision means the snake left the playfield.
	OutcomeWallCollision Outcome = iota
	// OutcomeSelfCollision means the snake bit itself.
	OutcomeSelfCollision
	// OutcomeQuit means the player quit.
	OutcomeQuit
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWallCollision:
		return "wall collision"
	case OutcomeSelfCollision:
		return "self collision"
	case OutcomeQuit:
		return "quit"
	}
	return "unknown"
}

// Result summarises a finished game.
// Ticks counts every evaluated tick including the one that ended the game.
type Result struct {
	Outcome Outcome `json:"outcome"`
	Ticks   int     `json:"ticks"`
	Length  int     `json:"length"`
}

func (r Result) String() string {
	return fmt.Sprintf("%s after %d ticks (length %d)", r.Outcome, r.Ticks, r.Length)
}

// Game holds the complete state of a running game.
// Everything except Direction is owned by the goroutine running the game.
type Game struct {
	Field     Playfield
	Body      *Body
	Food      *FoodSet
	Direction *DirectionState
	Tick      time.Duration

	state        LoopState
	last         Verdict
	ticks        int
	drawFailures int
	log          zerolog.Logger
}

// NewGame validates cfg and sets up a game. If rng is nil, a generator seeded from cfg.Seed
// (or the current time if that is 0) is used.
func NewGame(cfg Config, rng *rand.Rand, log zerolog.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	g := &Game{
		Field:     cfg.Playfield(),
		Body:      NewBody(cfg.InitialPosition, cfg.InitialLength, cfg.InitialDirection),
		Food:      NewFoodSet(rng, cfg.FoodDensity),
		Direction: NewDirectionState(cfg.InitialDirection),
		Tick:      cfg.Tick,
		state:     StateRunning,
		log:       log,
	}
	if err := g.Food.Initialize(g.Field, g.Body); err != nil {
		return nil, fmt.Errorf("placing food: %w", err)
	}
	return g, nil
}

// State returns the current loop state.
func (g *Game) State() LoopState {
	return g.state
}

// Ticks returns the number of evaluated ticks.
func (g *Game) Ticks() int {
	return g.ticks
}

func (g *Game) result() Result {
	r := Result{Outcome: OutcomeQuit, Ticks: g.ticks, Length: g.Body.Len()}
	switch g.last {
	case VerdictWallCollision:
		r.Outcome = OutcomeWallCollision
	case VerdictSelfCollision:
		r.Outcome = OutcomeSelfCollision
	}
	return r
}

// draw forwards to ui. Failed draws are skipped unless too many fail in a row.
func (g *Game) draw(ui UI, c Cell, k GlyphKind) error {
	err := ui.Draw(c, k)
	if err == nil {
		g.drawFailures = 0
		return nil
	}
	g.drawFailures++
	g.log.Warn().Err(err).Stringer("cell", c).Int("failures", g.drawFailures).Msg("draw failed")
	if g.drawFailures >= maxDrawFailures {
		return fmt.Errorf("render: %d consecutive failures: %w", g.drawFailures, err)
	}
	return nil
}

// renderAll draws food and body. The background is drawn by the UI itself in Initialise.
func (g *Game) renderAll(ui UI) error {
	for _, c := range g.Food.Cells() {
		if err := g.draw(ui, c, GlyphFood); err != nil {
			return err
		}
	}
	for _, c := range g.Body.Cells() {
		if err := g.draw(ui, c, GlyphBody); err != nil {
			return err
		}
	}
	return nil
}

// Step runs a single tick without waiting.
// The state of the tick is applied completely before anything is drawn. Any returned error ends the game.
func (g *Game) Step(ui UI) (Verdict, error) {
	if g.state == StateTerminated {
		return g.last, errGameOver
	}
	g.ticks++

	d := g.Direction.Get()
	head := g.Body.Advance(d)
	v := Evaluate(head, g.Field, g.Body, g.Food)
	g.last = v

	if v.Terminal() {
		g.state = StateTerminated
		g.log.Info().Int("tick", g.ticks).Stringer("verdict", v).Stringer("head", head).Int("length", g.Body.Len()).Msg("game over")
		return v, nil
	}

	grow := v == VerdictFoodConsumed
	vacated, erased := g.Body.Commit(head, grow)

	var food Cell
	var placed bool
	if grow {
		g.Food.Consume(head)
		var err error
		food, placed, err = g.Food.Replenish(g.Field, g.Body)
		switch {
		case errors.Is(err, ErrNoFreeCell):
			g.log.Info().Int("tick", g.ticks).Msg("playfield full, no new food")
		case err != nil:
			g.state = StateTerminated
			return v, fmt.Errorf("replenishing food: %w", err)
		}
		g.log.Debug().Int("tick", g.ticks).Stringer("food", head).Int("length", g.Body.Len()).Msg("food consumed")
	}

	if err := g.render(ui, vacated, erased, head, food, placed); err != nil {
		g.state = StateTerminated
		return v, err
	}
	return v, nil
}

// render draws the changes of a single tick. The tail is erased before the head is drawn.
func (g *Game) render(ui UI, vacated Cell, erased bool, head, food Cell, placed bool) error {
	if erased {
		if err := g.draw(ui, vacated, GlyphBackground); err != nil {
			return err
		}
	}
	if err := g.draw(ui, head, GlyphBody); err != nil {
		return err
	}
	if placed {
		return g.draw(ui, food, GlyphFood)
	}
	return nil
}

// Run draws the initial state and then runs one tick per g.Tick until the game ends.
// Cancelling ctx ends the game with OutcomeQuit.
func (g *Game) Run(ctx context.Context, ui UI) (Result, error) {
	if err := g.renderAll(ui); err != nil {
		g.state = StateTerminated
		return g.result(), err
	}
	ui.Flush(g.ticks)

	ticker := time.NewTicker(g.Tick)
	defer ticker.Stop()

	for g.state == StateRunning {
		select {
		case <-ctx.Done():
			g.state = StateTerminated
			g.log.Info().Int("tick", g.ticks).Msg("game cancelled")
			return g.result(), nil
		case <-ticker.C:
		}

		_, err := g.Step(ui)
		if err != nil {
			g.state = StateTerminated
			return g.result(), err
		}
		ui.Flush(g.ticks)
	}
	return g.result(), nil
}
