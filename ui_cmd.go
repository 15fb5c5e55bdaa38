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
	"io"
	"os"
)

// cmdUI prints the whole board after every tick.
type cmdUI struct {
	Out    io.Writer
	canvas *canvas
}

func (c *cmdUI) Initialise(field Playfield) error {
	if c.Out == nil {
		c.Out = os.Stdout
	}
	c.canvas = newCanvas(field)
	fmt.Fprintf(c.Out, "Playfield %d x %d\n", field.Width, field.Height)
	return nil
}

func (c *cmdUI) Draw(cell Cell, k GlyphKind) error {
	return c.canvas.set(cell, k)
}

func (c *cmdUI) Flush(tick int) {
	fmt.Fprintln(c.Out)
	fmt.Fprintln(c.Out, c.canvas.print(true))
	fmt.Fprintf(c.Out, "Tick %d - length: %d food: %d\n", tick, c.canvas.count(GlyphBody), c.canvas.count(GlyphFood))
}

func (c *cmdUI) Finish(r Result) error {
	if r.Outcome == OutcomeQuit {
		fmt.Fprintf(c.Out, "\nQuit! (%d ticks, length %d)\n\n", r.Ticks, r.Length)
	} else {
		fmt.Fprintf(c.Out, "\nGame over! %s\n\n", r)
	}
	return nil
}

func (c *cmdUI) Wait() {
}
