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
	"math/rand"
	"testing"
)

func TestFoodTarget(t *testing.T) {
	tests := []struct {
		field   Playfield
		length  int
		density float64
		want    int
	}{
		{Playfield{Width: 100, Height: 15}, 7, 0.3, 32},
		{Playfield{Width: 10, Height: 10}, 3, 0.5, 8},
		{Playfield{Width: 10, Height: 10}, 3, 0, 0},
		{Playfield{Width: 2, Height: 2}, 10, 1, 0},
	}

	for _, tc := range tests {
		if got := foodTarget(tc.field, tc.length, tc.density); got != tc.want {
			t.Errorf("foodTarget(%v, %d, %g)=%d want=%d", tc.field, tc.length, tc.density, got, tc.want)
		}
	}
}

func TestFoodInitialize(t *testing.T) {
	field := Playfield{Width: 100, Height: 15}
	body := NewBody(Cell{X: 0, Y: 7}, 7, DirectionRight)
	food := NewFoodSet(rand.New(rand.NewSource(1)), 0.3)

	if err := food.Initialize(field, body); err != nil {
		t.Fatal(err)
	}
	if food.Len() != 32 {
		t.Fatalf("food=%d want=32", food.Len())
	}
	for _, c := range food.Cells() {
		if !field.Contains(c) {
			t.Errorf("food %s outside of playfield", c)
		}
		if body.Contains(c) {
			t.Errorf("food %s placed on the snake", c)
		}
	}
}

func TestFoodReplenish(t *testing.T) {
	field := Playfield{Width: 10, Height: 10}
	body := NewBody(Cell{X: 0, Y: 0}, 3, DirectionRight)
	food := NewFoodSet(rand.New(rand.NewSource(2)), 0.5)
	if err := food.Initialize(field, body); err != nil {
		t.Fatal(err)
	}
	if food.Len() != 8 {
		t.Fatalf("food=%d want=8", food.Len())
	}

	if _, placed, err := food.Replenish(field, body); err != nil || placed {
		t.Fatalf("replenish at target: placed=%t err=%v", placed, err)
	}

	// Remove three, every replenish adds exactly one back.
	cells := food.Cells()
	for _, c := range cells[:3] {
		food.Consume(c)
	}
	c, placed, err := food.Replenish(field, body)
	if err != nil || !placed {
		t.Fatalf("replenish below target: placed=%t err=%v", placed, err)
	}
	if food.Len() != 6 {
		t.Errorf("food=%d want=6", food.Len())
	}
	if !food.Contains(c) || body.Contains(c) {
		t.Errorf("placed food %s is invalid", c)
	}
}

func TestFoodReplenishKeepsOne(t *testing.T) {
	field := Playfield{Width: 10, Height: 10}
	body := NewBody(Cell{X: 0, Y: 0}, 3, DirectionRight)
	food := NewFoodSet(rand.New(rand.NewSource(3)), 0)

	if _, placed, err := food.Replenish(field, body); err != nil || !placed {
		t.Fatalf("placed=%t err=%v", placed, err)
	}
	if food.Len() != 1 {
		t.Errorf("food=%d want=1", food.Len())
	}
}

func TestFoodConsumeMissing(t *testing.T) {
	food := NewFoodSet(rand.New(rand.NewSource(4)), 0.3)
	food.cells.Put(Cell{X: 1, Y: 1})

	food.Consume(Cell{X: 5, Y: 5})
	if food.Len() != 1 {
		t.Errorf("food=%d want=1", food.Len())
	}
	food.Consume(Cell{X: 1, Y: 1})
	if food.Len() != 0 || food.Contains(Cell{X: 1, Y: 1}) {
		t.Error("food not consumed")
	}
}

func TestFoodPlaceLastFreeCell(t *testing.T) {
	field := Playfield{Width: 3, Height: 3}
	body := newBodyFromCells(
		Cell{X: 0, Y: 0}, Cell{X: 1, Y: 0}, Cell{X: 2, Y: 0},
		Cell{X: 2, Y: 1}, Cell{X: 1, Y: 1}, Cell{X: 0, Y: 1},
		Cell{X: 0, Y: 2}, Cell{X: 1, Y: 2},
	)
	food := NewFoodSet(rand.New(rand.NewSource(5)), 1)

	c, placed, err := food.Replenish(field, body)
	if err != nil || !placed {
		t.Fatalf("placed=%t err=%v", placed, err)
	}
	if c != (Cell{X: 2, Y: 2}) {
		t.Errorf("placed food at %s, want (2,2)", c)
	}

	// Board is full now.
	food.Consume(c)
	body.Commit(Cell{X: 2, Y: 2}, true)
	_, placed, err = food.Replenish(field, body)
	if !errors.Is(err, ErrNoFreeCell) {
		t.Fatalf("err=%v want ErrNoFreeCell", err)
	}
	if placed {
		t.Error("placed food on a full board")
	}
}
