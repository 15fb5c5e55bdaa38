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
	"fmt"

	"github.com/gammazero/deque"
	"github.com/zyedidia/generic/mapset"
)

// Cell is a position on the playfield.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Step returns the neighbouring cell in direction d.
func (c Cell) Step(d Direction) Cell {
	dx, dy := d.delta()
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Playfield holds the bounds of the game. It does not change while a game is running.
type Playfield struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains reports whether c lies in [0,Width) x [0,Height).
func (p Playfield) Contains(c Cell) bool {
	return c.X >= 0 && c.X < p.Width && c.Y >= 0 && c.Y < p.Height
}

// Area returns the number of cells of the playfield.
func (p Playfield) Area() int {
	return p.Width * p.Height
}

// Body is the snake. The head is at the front of the deque, the tail at the back.
// The occupancy set mirrors the deque so membership tests are O(1).
type Body struct {
	cells    deque.Deque[Cell]
	occupied mapset.Set[Cell]
}

// NewBody lays out length cells starting at tail and growing towards d, so the head ends up
// length-1 steps away from tail.
func NewBody(tail Cell, length int, d Direction) *Body {
	b := &Body{occupied: mapset.New[Cell]()}
	c := tail
	for i := 0; i < length; i++ {
		b.cells.PushFront(c)
		b.occupied.Put(c)
		c = c.Step(d)
	}
	return b
}

// newBodyFromCells builds a body from cells ordered head first.
func newBodyFromCells(cells ...Cell) *Body {
	b := &Body{occupied: mapset.New[Cell]()}
	for _, c := range cells {
		b.cells.PushBack(c)
		b.occupied.Put(c)
	}
	return b
}

// Len returns the number of segments.
func (b *Body) Len() int {
	return b.cells.Len()
}

// Head returns the leading segment.
func (b *Body) Head() Cell {
	return b.cells.Front()
}

// Tail returns the trailing segment.
func (b *Body) Tail() Cell {
	return b.cells.Back()
}

// Contains reports whether c is occupied by any segment.
func (b *Body) Contains(c Cell) bool {
	return b.occupied.Has(c)
}

// Advance returns the cell the head would move to in direction d. The body is not modified.
func (b *Body) Advance(d Direction) Cell {
	return b.Head().Step(d)
}

// Commit moves the head to head. Unless grow is set the tail is removed and returned as vacated.
// head must already be validated by Evaluate.
func (b *Body) Commit(head Cell, grow bool) (vacated Cell, ok bool) {
	if !grow {
		// Tail goes first so that chasing the own tail never leaves a duplicate behind.
		vacated = b.cells.PopBack()
		b.occupied.Remove(vacated)
		ok = true
	}
	b.cells.PushFront(head)
	b.occupied.Put(head)
	return vacated, ok
}

// Cells returns a copy of all segments, head first.
func (b *Body) Cells() []Cell {
	out := make([]Cell, b.cells.Len())
	for i := range out {
		out[i] = b.cells.At(i)
	}
	return out
}
