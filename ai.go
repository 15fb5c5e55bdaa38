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
	"math/rand"
	"time"
)

// The Pilot interface provides the interface for computer players.
// A pilot only sees which events it produced before; it has no access to the game state.
type Pilot interface {
	Next() Event
	Name() string
}

// GetPilot returns the pilot called name.
func GetPilot(name string, rng *rand.Rand) (Pilot, error) {
	switch name {
	case "random":
		return &RandomPilot{rng: rng, Chance: 0.1}, nil
	case "straight":
		return StraightPilot{}, nil
	}
	return nil, fmt.Errorf("unknown pilot %q", name)
}

// RandomPilot turns with probability Chance, left and right being equally likely.
type RandomPilot struct {
	Chance float64
	rng    *rand.Rand
}

// Next returns a turn or EventOther.
func (r *RandomPilot) Next() Event {
	if r.rng.Float64() >= r.Chance {
		return EventOther
	}
	if r.rng.Intn(2) == 1 {
		return EventTurnLeft
	}
	return EventTurnRight
}

// Name returns the name of the pilot.
func (r *RandomPilot) Name() string {
	return "random"
}

// StraightPilot never turns.
type StraightPilot struct{}

// Next always returns EventOther.
func (StraightPilot) Next() Event {
	return EventOther
}

// Name returns the name of the pilot.
func (StraightPilot) Name() string {
	return "straight"
}

// pilotInput turns a pilot into an InputSource producing one event per Interval.
// After Limit events (0 disables the limit) a quit event is produced, followed by io.EOF.
type pilotInput struct {
	Pilot    Pilot
	Interval time.Duration
	Limit    int
	count    int
}

func (p *pilotInput) NextEvent() (Event, error) {
	if p.Limit > 0 && p.count > p.Limit {
		return EventOther, io.EOF
	}
	if p.Interval > 0 {
		time.Sleep(p.Interval)
	}
	p.count++
	if p.Limit > 0 && p.count > p.Limit {
		return EventQuit, nil
	}
	return p.Pilot.Next(), nil
}
