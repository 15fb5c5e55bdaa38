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
	"io"
	"testing"
	"time"

	"github.com/gdamore/tcell"
)

func newSimulationUI(t *testing.T, field Playfield) (*terminalUI, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	tui := &terminalUI{screen: s}
	if err := tui.Initialise(field); err != nil {
		t.Fatal(err)
	}
	return tui, s
}

func runeAt(s tcell.SimulationScreen, x, y int) rune {
	cells, w, _ := s.GetContents()
	c := cells[y*w+x]
	if len(c.Runes) == 0 {
		return ' '
	}
	return c.Runes[0]
}

// nextKeyEvent skips events not caused by a key, e.g. resizes.
func nextKeyEvent(t *testing.T, tui *terminalUI) Event {
	t.Helper()
	for i := 0; i < 10; i++ {
		e, err := tui.NextEvent()
		if err != nil {
			t.Fatal(err)
		}
		if e != EventOther {
			return e
		}
	}
	t.Fatal("no key event")
	return EventOther
}

func TestTerminalUIDraw(t *testing.T) {
	field := Playfield{Width: 5, Height: 3}
	tui, s := newSimulationUI(t, field)
	defer s.Fini()

	if runeAt(s, 4, 2) != '.' {
		t.Errorf("background not drawn: %q", runeAt(s, 4, 2))
	}
	if runeAt(s, 5, 0) == '.' {
		t.Error("background drawn outside of the playfield")
	}

	if err := tui.Draw(Cell{X: 1, Y: 1}, GlyphBody); err != nil {
		t.Fatal(err)
	}
	if err := tui.Draw(Cell{X: 3, Y: 0}, GlyphFood); err != nil {
		t.Fatal(err)
	}
	if err := tui.Draw(Cell{X: 5, Y: 0}, GlyphFood); err == nil {
		t.Error("expected error for cell outside of the playfield")
	}
	tui.Flush(1)

	if r := runeAt(s, 1, 1); r != 'o' {
		t.Errorf("body: got %q", r)
	}
	if r := runeAt(s, 3, 0); r != 'x' {
		t.Errorf("food: got %q", r)
	}

	tui.Draw(Cell{X: 1, Y: 1}, GlyphBackground)
	tui.Flush(2)
	if r := runeAt(s, 1, 1); r != '.' {
		t.Errorf("erased cell: got %q", r)
	}
}

func TestTerminalUIFinish(t *testing.T) {
	field := Playfield{Width: 5, Height: 3}
	tui, s := newSimulationUI(t, field)
	defer s.Fini()

	if err := tui.Finish(Result{Outcome: OutcomeWallCollision, Ticks: 3, Length: 2}); err != nil {
		t.Fatal(err)
	}
	if r := runeAt(s, 0, 3); r != 'g' {
		t.Errorf("no game over message below the playfield, got %q", r)
	}
}

func TestTerminalUIKeys(t *testing.T) {
	tui, s := newSimulationUI(t, Playfield{Width: 5, Height: 3})

	s.InjectKey(tcell.KeyLeft, 0, tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	s.InjectKey(tcell.KeyRight, 0, tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	for i, want := range []Event{EventTurnLeft, EventTurnRight, EventQuit} {
		if got := nextKeyEvent(t, tui); got != want {
			t.Errorf("event %d: got %s want %s", i, got, want)
		}
	}

	select {
	case <-tui.ctx.Done():
	default:
		t.Fatal("quit did not release Wait")
	}

	tui.Wait()
	if _, err := tui.NextEvent(); err != io.EOF {
		t.Errorf("expected io.EOF after Wait, got %v", err)
	}
}

func TestTerminalUIClose(t *testing.T) {
	tui, _ := newSimulationUI(t, Playfield{Width: 5, Height: 3})
	tui.Close()
	tui.Wait()
	if _, err := tui.NextEvent(); err != io.EOF {
		t.Errorf("expected io.EOF after Close, got %v", err)
	}
}

func TestTerminalUIWaitsAfterGameOver(t *testing.T) {
	tui, s := newSimulationUI(t, Playfield{Width: 5, Height: 3})
	tui.Finish(Result{Outcome: OutcomeSelfCollision, Ticks: 3, Length: 4})

	waited := make(chan struct{})
	go func() {
		tui.Wait()
		close(waited)
	}()

	select {
	case <-waited:
		t.Fatal("Wait returned before the player quit")
	case <-time.After(50 * time.Millisecond):
	}

	s.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	if e := nextKeyEvent(t, tui); e != EventQuit {
		t.Fatalf("got %s want quit", e)
	}

	select {
	case <-waited:
	case <-time.After(5 * time.Second):
		t.Fatal("Wait did not return after quit")
	}
}
