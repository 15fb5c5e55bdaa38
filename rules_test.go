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
	"math/rand"
	"testing"
)

func emptyFood() *FoodSet {
	return NewFoodSet(rand.New(rand.NewSource(1)), 0)
}

func TestEvaluateWallCollision(t *testing.T) {
	field := Playfield{Width: 8, Height: 8}
	body := newBodyFromCells(Cell{X: 7, Y: 3}, Cell{X: 6, Y: 3}, Cell{X: 5, Y: 3})

	head := body.Advance(DirectionRight)
	if v := Evaluate(head, field, body, emptyFood()); v != VerdictWallCollision {
		t.Errorf("got %s, want wall collision", v)
	}
	if !VerdictWallCollision.Terminal() {
		t.Error("wall collision must be terminal")
	}

	for _, c := range []Cell{{-1, 0}, {0, -1}, {0, 8}} {
		if v := Evaluate(c, field, body, emptyFood()); v != VerdictWallCollision {
			t.Errorf("%s: got %s, want wall collision", c, v)
		}
	}
}

func TestEvaluateSelfCollision(t *testing.T) {
	field := Playfield{Width: 8, Height: 8}

	// Head (2,2), tail (3,3).
	body := newBodyFromCells(Cell{X: 2, Y: 2}, Cell{X: 3, Y: 2}, Cell{X: 4, Y: 2}, Cell{X: 4, Y: 3}, Cell{X: 3, Y: 3})
	if v := Evaluate(Cell{X: 4, Y: 2}, field, body, emptyFood()); v != VerdictSelfCollision {
		t.Errorf("body cell: got %s, want self collision", v)
	}
	if v := Evaluate(Cell{X: 3, Y: 3}, field, body, emptyFood()); v != VerdictValid {
		t.Errorf("tail cell: got %s, want valid", v)
	}

	// Same cells, but head (3,3) and tail (2,2): (3,3) -> (3,2) runs into the body.
	body = newBodyFromCells(Cell{X: 3, Y: 3}, Cell{X: 4, Y: 3}, Cell{X: 4, Y: 2}, Cell{X: 3, Y: 2}, Cell{X: 2, Y: 2})
	head := body.Advance(DirectionUp)
	if v := Evaluate(head, field, body, emptyFood()); v != VerdictSelfCollision {
		t.Errorf("got %s, want self collision", v)
	}
	if !VerdictSelfCollision.Terminal() {
		t.Error("self collision must be terminal")
	}
}

func TestEvaluateTailChase(t *testing.T) {
	field := Playfield{Width: 8, Height: 8}
	body := newBodyFromCells(Cell{X: 3, Y: 3}, Cell{X: 4, Y: 3}, Cell{X: 4, Y: 2}, Cell{X: 3, Y: 2})

	head := body.Advance(DirectionUp)
	if head != body.Tail() {
		t.Fatalf("setup: head=%s tail=%s", head, body.Tail())
	}
	if v := Evaluate(head, field, body, emptyFood()); v != VerdictValid {
		t.Errorf("got %s, want valid", v)
	}
}

func TestEvaluateFood(t *testing.T) {
	field := Playfield{Width: 8, Height: 8}
	body := newBodyFromCells(Cell{X: 3, Y: 3}, Cell{X: 2, Y: 3})
	food := emptyFood()
	food.cells.Put(Cell{X: 4, Y: 3})

	if v := Evaluate(body.Advance(DirectionRight), field, body, food); v != VerdictFoodConsumed {
		t.Errorf("got %s, want food consumed", v)
	}
	if v := Evaluate(body.Advance(DirectionUp), field, body, food); v != VerdictValid {
		t.Errorf("got %s, want valid", v)
	}
	if VerdictFoodConsumed.Terminal() || VerdictValid.Terminal() {
		t.Error("moves must not be terminal")
	}
}
