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
	"fmt"
	"io"
	"sync"

	"github.com/gdamore/tcell"
)

// terminalUI renders into a tcell screen and reads the keyboard from it.
// It serves as UI and InputSource at the same time.
type terminalUI struct {
	screen tcell.Screen
	field  Playfield
	styles map[GlyphKind]tcell.Style
	ctx    context.Context
	done   context.CancelFunc
	once   *sync.Once
}

func (tui *terminalUI) Initialise(field Playfield) error {
	var err error

	tui.field = field
	tui.ctx, tui.done = context.WithCancel(context.Background())
	tui.once = new(sync.Once)

	if tui.screen == nil {
		tui.screen, err = tcell.NewScreen()
		if err != nil {
			return err
		}
	}

	err = tui.screen.Init()
	if err != nil {
		return err
	}

	tui.styles = map[GlyphKind]tcell.Style{
		GlyphBackground: tcell.StyleDefault,
		GlyphBody:       tcell.StyleDefault.Foreground(tcell.ColorTeal),
		GlyphFood:       tcell.StyleDefault.Foreground(tcell.ColorRed),
	}

	tui.screen.HideCursor()
	tui.screen.Clear()
	for y := 0; y < field.Height; y++ {
		for x := 0; x < field.Width; x++ {
			tui.screen.SetContent(x, y, GlyphBackground.Rune(), nil, tui.styles[GlyphBackground])
		}
	}
	tui.screen.Show()
	return nil
}

func (tui *terminalUI) Draw(c Cell, k GlyphKind) error {
	if !tui.field.Contains(c) {
		return fmt.Errorf("cell %s outside of %dx%d", c, tui.field.Width, tui.field.Height)
	}
	tui.screen.SetContent(c.X, c.Y, k.Rune(), nil, tui.styles[k])
	return nil
}

func (tui *terminalUI) Flush(tick int) {
	tui.screen.Show()
}

func (tui *terminalUI) Finish(r Result) error {
	if r.Outcome == OutcomeQuit {
		return nil
	}
	tui.drawString(0, tui.field.Height, fmt.Sprintf("game over: %s - press q to exit", r))
	tui.screen.Show()
	return nil
}

// Wait blocks until the player quits and releases the terminal.
func (tui *terminalUI) Wait() {
	<-tui.ctx.Done()
	tui.once.Do(tui.screen.Fini)
}

// Close stops waiting for the player.
func (tui *terminalUI) Close() {
	tui.done()
}

func (tui *terminalUI) drawString(x, y int, v string) {
	for i, r := range v {
		tui.screen.SetContent(x+i, y, r, nil, tcell.StyleDefault)
	}
}

// NextEvent blocks until the next key press. Once the screen is finalised io.EOF is returned.
func (tui *terminalUI) NextEvent() (Event, error) {
	e := tui.screen.PollEvent()
	switch ev := e.(type) {
	case nil:
		return EventOther, io.EOF
	case *tcell.EventResize:
		tui.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyLeft:
			return EventTurnLeft, nil
		case tcell.KeyRight:
			return EventTurnRight, nil
		case tcell.KeyRune:
			if ev.Rune() != 'q' {
				return EventOther, nil
			}
			fallthrough
		case tcell.KeyEscape, tcell.KeyCtrlC:
			tui.done()
			return EventQuit, nil
		}
	}
	return EventOther, nil
}
