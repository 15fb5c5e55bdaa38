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
	"errors"
	"math"
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

// maxPlacementAttempts limits rejection sampling before falling back to enumerating free cells.
const maxPlacementAttempts = 256

// ErrNoFreeCell is returned when no cell is left to place food on.
var ErrNoFreeCell = errors.New("no free cell left on the playfield")

// FoodSet holds the food cells of a game.
// It is owned by the game loop and not safe for concurrent use.
type FoodSet struct {
	cells   mapset.Set[Cell]
	density float64
	rng     *rand.Rand
}

// NewFoodSet returns an empty food set using rng for placement.
func NewFoodSet(rng *rand.Rand, density float64) *FoodSet {
	return &FoodSet{
		cells:   mapset.New[Cell](),
		density: density,
		rng:     rng,
	}
}

// foodTarget returns floor((width + height - bodyLength) * density), but at least 0.
// This uses the sum of the sides, not the area.
func foodTarget(field Playfield, bodyLength int, density float64) int {
	n := math.Floor(float64(field.Width+field.Height-bodyLength) * density)
	if n < 0 {
		return 0
	}
	return int(n)
}

// Initialize fills the set with foodTarget cells that are neither part of body nor already food.
func (f *FoodSet) Initialize(field Playfield, body *Body) error {
	n := foodTarget(field, body.Len(), f.density)
	for i := 0; i < n; i++ {
		if _, err := f.place(field, body); err != nil {
			return err
		}
	}
	return nil
}

// Replenish places a single new food cell if the set is below its target.
// The target never drops below one, so there is always something to eat while space is left.
func (f *FoodSet) Replenish(field Playfield, body *Body) (Cell, bool, error) {
	n := foodTarget(field, body.Len(), f.density)
	if n < 1 {
		n = 1
	}
	if f.cells.Size() >= n {
		return Cell{}, false, nil
	}
	c, err := f.place(field, body)
	if err != nil {
		return Cell{}, false, err
	}
	return c, true, nil
}

// Consume removes c. Missing cells are ignored.
func (f *FoodSet) Consume(c Cell) {
	f.cells.Remove(c)
}

// Contains reports whether c holds food.
func (f *FoodSet) Contains(c Cell) bool {
	return f.cells.Has(c)
}

// Len returns the number of food cells.
func (f *FoodSet) Len() int {
	return f.cells.Size()
}

// Cells returns all food cells in no particular order.
func (f *FoodSet) Cells() []Cell {
	out := make([]Cell, 0, f.cells.Size())
	f.cells.Each(func(c Cell) {
		out = append(out, c)
	})
	return out
}

func (f *FoodSet) free(body *Body, c Cell) bool {
	return !body.Contains(c) && !f.cells.Has(c)
}

// place draws uniform random cells until a free one is found.
// After maxPlacementAttempts misses the free cells are enumerated and one of them is picked,
// so a nearly full board never spins.
func (f *FoodSet) place(field Playfield, body *Body) (Cell, error) {
	for i := 0; i < maxPlacementAttempts; i++ {
		c := Cell{X: f.rng.Intn(field.Width), Y: f.rng.Intn(field.Height)}
		if f.free(body, c) {
			f.cells.Put(c)
			return c, nil
		}
	}

	capacity := field.Area() - body.Len() - f.cells.Size()
	if capacity < 0 {
		capacity = 0
	}
	freeCells := make([]Cell, 0, capacity)
	for y := 0; y < field.Height; y++ {
		for x := 0; x < field.Width; x++ {
			c := Cell{X: x, Y: y}
			if f.free(body, c) {
				freeCells = append(freeCells, c)
			}
		}
	}
	if len(freeCells) == 0 {
		return Cell{}, ErrNoFreeCell
	}
	c := freeCells[f.rng.Intn(len(freeCells))]
	f.cells.Put(c)
	return c, nil
}
