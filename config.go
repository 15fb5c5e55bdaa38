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
	"time"

	"github.com/hashicorp/go-multierror"
)

// Config holds the parameters of a game. It is fixed once the game starts.
type Config struct {
	Width            int
	Height           int
	Tick             time.Duration
	InitialLength    int
	InitialPosition  Cell // position of the tail
	InitialDirection Direction
	FoodDensity      float64
	Seed             int64 // 0 uses the current time
}

// DefaultConfig returns the classic 100x15 setup.
func DefaultConfig() Config {
	return Config{
		Width:            100,
		Height:           15,
		Tick:             100 * time.Millisecond,
		InitialLength:    7,
		InitialPosition:  Cell{X: 0, Y: 7},
		InitialDirection: DirectionRight,
		FoodDensity:      0.3,
	}
}

// Playfield returns the bounds described by c.
func (c Config) Playfield() Playfield {
	return Playfield{Width: c.Width, Height: c.Height}
}

// Validate reports all problems of c at once.
// Configurations that would leave food placement without a free cell are rejected here.
func (c Config) Validate() error {
	var result *multierror.Error

	if c.Width <= 0 || c.Height <= 0 {
		result = multierror.Append(result, fmt.Errorf("playfield must be at least 1x1 (is %dx%d)", c.Width, c.Height))
	}
	if c.Tick <= 0 {
		result = multierror.Append(result, fmt.Errorf("tick must be positive (is %s)", c.Tick))
	}
	if c.InitialLength < 1 {
		result = multierror.Append(result, fmt.Errorf("initial length must be at least 1 (is %d)", c.InitialLength))
	}
	if c.FoodDensity < 0 || c.FoodDensity > 1 {
		result = multierror.Append(result, fmt.Errorf("food density must be in [0, 1] (is %g)", c.FoodDensity))
	}
	switch c.InitialDirection {
	case DirectionRight, DirectionDown, DirectionLeft, DirectionUp:
	default:
		result = multierror.Append(result, fmt.Errorf("unknown initial direction %s", c.InitialDirection))
	}
	if result != nil {
		return result.ErrorOrNil()
	}

	field := c.Playfield()
	if field.Area() <= c.InitialLength {
		result = multierror.Append(result, fmt.Errorf("playfield %dx%d has no room left for a snake of length %d", c.Width, c.Height, c.InitialLength))
	}
	tail := c.InitialPosition
	dx, dy := c.InitialDirection.delta()
	head := Cell{X: tail.X + (c.InitialLength-1)*dx, Y: tail.Y + (c.InitialLength-1)*dy}
	if !field.Contains(tail) || !field.Contains(head) {
		result = multierror.Append(result, fmt.Errorf("snake from %s to %s does not fit into %dx%d", tail, head, c.Width, c.Height))
	}
	if food, free := foodTarget(field, c.InitialLength, c.FoodDensity), field.Area()-c.InitialLength; free > 0 && food > free {
		result = multierror.Append(result, fmt.Errorf("%d food cells requested but only %d cells are free", food, free))
	}

	return result.ErrorOrNil()
}
