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
	"os"

	"github.com/hashicorp/go-multierror"
)

// teeUI writes the board after every tick into File and forwards everything to UI.
type teeUI struct {
	File   string
	UI     UI
	f      *os.File
	canvas *canvas
}

func (t *teeUI) Initialise(field Playfield) error {
	if t.f != nil {
		return fmt.Errorf("file already opened")
	}
	var err error
	t.f, err = os.Create(t.File)
	if err != nil {
		t.f = nil
		return err
	}
	t.canvas = newCanvas(field)
	if t.UI != nil {
		return t.UI.Initialise(field)
	}
	return nil
}

func (t *teeUI) Draw(c Cell, k GlyphKind) error {
	var result *multierror.Error
	if t.canvas != nil {
		if err := t.canvas.set(c, k); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if t.UI != nil {
		if err := t.UI.Draw(c, k); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func (t *teeUI) Flush(tick int) {
	if t.f != nil {
		t.f.WriteString(fmt.Sprintf("Tick %d\n", tick))
		t.f.WriteString(t.canvas.String())
		t.f.WriteString("\n\n")
	}

	if t.UI != nil {
		t.UI.Flush(tick)
	}
}

func (t *teeUI) Finish(r Result) error {
	var result *multierror.Error
	if t.f != nil {
		t.f.WriteString(fmt.Sprintf("Game over: %s\n", r))
		if err := t.f.Close(); err != nil {
			result = multierror.Append(result, err)
		}
		t.f = nil
	}
	if t.UI != nil {
		if err := t.UI.Finish(r); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func (t *teeUI) Wait() {
	if t.UI != nil {
		t.UI.Wait()
	}
}
