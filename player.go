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
	"sync"
)

// Direction is the heading of the snake.
type Direction int8

const (
	// DirectionRight moves towards increasing x.
	DirectionRight Direction = iota
	// DirectionDown moves towards increasing y.
	DirectionDown
	// DirectionLeft moves towards decreasing x.
	DirectionLeft
	// DirectionUp moves towards decreasing y.
	DirectionUp
)

func (d Direction) String() string {
	switch d {
	case DirectionRight:
		return "right"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionUp:
		return "up"
	}
	return fmt.Sprintf("direction(%d)", int8(d))
}

// ParseDirection returns the direction named by s (case insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right":
		return DirectionRight, nil
	case "down":
		return DirectionDown, nil
	case "left":
		return DirectionLeft, nil
	case "up":
		return DirectionUp, nil
	}
	return DirectionRight, fmt.Errorf("unknown direction %q", s)
}

// delta returns the offset of a single step.
func (d Direction) delta() (int, int) {
	switch d {
	case DirectionUp:
		return 0, -1
	case DirectionDown:
		return 0, 1
	case DirectionLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

func (d Direction) left() Direction {
	switch d {
	case DirectionLeft:
		return DirectionDown
	case DirectionRight:
		return DirectionUp
	case DirectionUp:
		return DirectionLeft
	default:
		return DirectionRight
	}
}

func (d Direction) right() Direction {
	switch d {
	case DirectionLeft:
		return DirectionUp
	case DirectionRight:
		return DirectionDown
	case DirectionUp:
		return DirectionRight
	default:
		return DirectionLeft
	}
}

// DirectionState holds the heading shared between the game loop and the input listener.
// Only relative turns exist, so a single input can never reverse the snake.
type DirectionState struct {
	mu sync.Mutex
	d  Direction
}

// NewDirectionState returns a state starting with d.
func NewDirectionState(d Direction) *DirectionState {
	return &DirectionState{d: d}
}

// Get returns a snapshot of the current direction.
func (s *DirectionState) Get() Direction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.d
}

// TurnLeft rotates the heading by 90° counter clockwise.
func (s *DirectionState) TurnLeft() {
	s.mu.Lock()
	s.d = s.d.left()
	s.mu.Unlock()
}

// TurnRight rotates the heading by 90° clockwise.
func (s *DirectionState) TurnRight() {
	s.mu.Lock()
	s.d = s.d.right()
	s.mu.Unlock()
}
