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
)

// printResultUI writes the outcome of the game as a single line into File.
type printResultUI struct {
	File        string
	UI          UI
	initialised bool
}

func (p *printResultUI) Initialise(field Playfield) error {
	p.initialised = true
	if p.UI != nil {
		return p.UI.Initialise(field)
	}
	return nil
}

func (p *printResultUI) Draw(c Cell, k GlyphKind) error {
	if p.UI != nil {
		return p.UI.Draw(c, k)
	}
	return nil
}

func (p *printResultUI) Flush(tick int) {
	if p.UI != nil {
		p.UI.Flush(tick)
	}
}

func (p *printResultUI) Finish(r Result) error {
	var err error
	if p.UI != nil {
		err = p.UI.Finish(r)
	}

	if p.initialised {
		f, newErr := os.Create(p.File)
		if newErr != nil {
			return newErr
		}
		defer f.Close()

		_, newErr = f.WriteString(fmt.Sprintf("%s %d %d\n", r.Outcome, r.Ticks, r.Length))
		if newErr != nil {
			return newErr
		}
	}

	return err
}

func (p *printResultUI) Wait() {
	if p.UI != nil {
		p.UI.Wait()
	}
}
