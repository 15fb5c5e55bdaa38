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
	"io"

	"github.com/rs/zerolog"
)

// maxInputFailures is the number of consecutive read errors the listener tolerates.
const maxInputFailures = 5

// Event is a discrete input event.
type Event int

const (
	// EventOther is ignored.
	EventOther Event = iota
	// EventTurnLeft rotates the snake counter clockwise.
	EventTurnLeft
	// EventTurnRight rotates the snake clockwise.
	EventTurnRight
	// EventQuit ends the game.
	EventQuit
)

func (e Event) String() string {
	switch e {
	case EventTurnLeft:
		return "turn left"
	case EventTurnRight:
		return "turn right"
	case EventQuit:
		return "quit"
	}
	return "other"
}

// InputSource produces input events. NextEvent blocks until an event is available.
// io.EOF marks the end of the events.
type InputSource interface {
	NextEvent() (Event, error)
}

// Listen reads events from src until it is exhausted, a quit event arrives or ctx is done.
// Turns are applied to dir, a quit event calls quit.
// Single read errors are skipped; maxInputFailures errors in a row are returned.
func Listen(ctx context.Context, src InputSource, dir *DirectionState, quit func(), log zerolog.Logger) error {
	failures := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		e, err := src.NextEvent()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			failures++
			log.Warn().Err(err).Int("failures", failures).Msg("reading input failed")
			if failures >= maxInputFailures {
				return fmt.Errorf("input: %d consecutive failures: %w", failures, err)
			}
			continue
		}
		failures = 0

		switch e {
		case EventTurnLeft:
			dir.TurnLeft()
		case EventTurnRight:
			dir.TurnRight()
		case EventQuit:
			log.Info().Msg("quit requested")
			quit()
			return nil
		default:
			continue
		}
		log.Debug().Stringer("event", e).Msg("input")
	}
}
