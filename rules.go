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

// Verdict is the outcome of evaluating a proposed head position.
type Verdict int

const (
	// VerdictValid is a plain move.
	VerdictValid Verdict = iota
	// VerdictWallCollision means the head left the playfield.
	VerdictWallCollision
	// VerdictSelfCollision means the head ran into the body.
	VerdictSelfCollision
	// VerdictFoodConsumed is a valid move onto food. The snake grows.
	VerdictFoodConsumed
)

func (v Verdict) String() string {
	switch v {
	case VerdictValid:
		return "valid"
	case VerdictWallCollision:
		return "wall collision"
	case VerdictSelfCollision:
		return "self collision"
	case VerdictFoodConsumed:
		return "food consumed"
	}
	return "unknown"
}

// Terminal reports whether the verdict ends the game.
func (v Verdict) Terminal() bool {
	return v == VerdictWallCollision || v == VerdictSelfCollision
}

// Evaluate decides what happens if the head of body moves to head.
// Rules are checked in order: walls, body, food.
// Moving onto the current tail is allowed, since food is never placed on the body
// and the tail is therefore always vacated in the same tick.
func Evaluate(head Cell, field Playfield, body *Body, food *FoodSet) Verdict {
	if !field.Contains(head) {
		return VerdictWallCollision
	}
	if body.Contains(head) && head != body.Tail() {
		return VerdictSelfCollision
	}
	if food.Contains(head) {
		return VerdictFoodConsumed
	}
	return VerdictValid
}
