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
	"strings"
)

var colours = map[GlyphKind]string{GlyphBackground: "\033[39m", GlyphBody: "\033[36m", GlyphFood: "\033[31m"}
var colourReset = "\033[0m"

// GlyphKind is what a cell shows.
type GlyphKind int

const (
	// GlyphBackground is an empty cell.
	GlyphBackground GlyphKind = iota
	// GlyphBody is a snake segment.
	GlyphBody
	// GlyphFood is a food cell.
	GlyphFood
)

func (k GlyphKind) String() string {
	switch k {
	case GlyphBody:
		return "body"
	case GlyphFood:
		return "food"
	}
	return "background"
}

// Rune returns the character used for k in text output.
func (k GlyphKind) Rune() rune {
	switch k {
	case GlyphBody:
		return 'o'
	case GlyphFood:
		return 'x'
	}
	return '.'
}

// The UI interface is the render sink of the game.
//
// Draw must be idempotent. The game never relies on the order of draws for different cells
// within a tick, only on the tail being erased before the head of the same tick is drawn.
// Flush is called once after every tick.
type UI interface {
	Initialise(field Playfield) error
	Draw(c Cell, k GlyphKind) error
	Flush(tick int)
	Finish(r Result) error
	Wait()
}

// canvas mirrors the drawn playfield in memory.
type canvas struct {
	field Playfield
	cells []GlyphKind
}

func newCanvas(field Playfield) *canvas {
	return &canvas{field: field, cells: make([]GlyphKind, field.Area())}
}

func (c *canvas) set(cell Cell, k GlyphKind) error {
	if !c.field.Contains(cell) {
		return fmt.Errorf("cell %s outside of %dx%d", cell, c.field.Width, c.field.Height)
	}
	c.cells[cell.Y*c.field.Width+cell.X] = k
	return nil
}

func (c *canvas) at(cell Cell) GlyphKind {
	return c.cells[cell.Y*c.field.Width+cell.X]
}

func (c *canvas) count(k GlyphKind) int {
	n := 0
	for _, v := range c.cells {
		if v == k {
			n++
		}
	}
	return n
}

// String returns the playfield as text, one line per row.
func (c *canvas) String() string {
	return c.print(false)
}

func (c *canvas) print(colour bool) string {
	var s strings.Builder
	for y := 0; y < c.field.Height; y++ {
		for x := 0; x < c.field.Width; x++ {
			k := c.at(Cell{X: x, Y: y})
			if colour {
				s.WriteString(colours[k])
			}
			s.WriteRune(k.Rune())
			if colour {
				s.WriteString(colourReset)
			}
		}
		if y < c.field.Height-1 {
			s.WriteRune('\n')
		}
	}
	return s.String()
}

// quietUI draws nothing and only prints the result.
type quietUI struct{}

func (quietUI) Initialise(field Playfield) error { return nil }

func (quietUI) Draw(c Cell, k GlyphKind) error { return nil }

func (quietUI) Flush(tick int) {}

func (quietUI) Finish(r Result) error {
	fmt.Printf("Game over: %s\n", r)
	return nil
}

func (quietUI) Wait() {}
