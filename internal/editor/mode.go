/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned when a stage meets a mode or control mode it has no branch for.
var ErrUnknownMode = errors.New("unknown mode")

// Mode is the global interaction mode. Exactly one is active at a time.
type Mode uint8

const (
	ModeSelect Mode = iota
	ModeMove
	ModeRotate
	ModeScale
)

func (m Mode) String() string {
	switch m {
	case ModeSelect:
		return "select"
	case ModeMove:
		return "move"
	case ModeRotate:
		return "rotate"
	case ModeScale:
		return "scale"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Intent is a discrete user request delivered by the host for one update.
type Intent uint8

const (
	IntentBeginMove Intent = iota + 1
	IntentRotate
	IntentScale
	IntentDeselect
	IntentCommit
	IntentRevert
	IntentConstrainX
	IntentConstrainY
)

var intentNames = map[Intent]string{
	IntentBeginMove:  "begin_move",
	IntentRotate:     "rotate",
	IntentScale:      "scale",
	IntentDeselect:   "deselect",
	IntentCommit:     "commit",
	IntentRevert:     "revert",
	IntentConstrainX: "constrain_x",
	IntentConstrainY: "constrain_y",
}

func (i Intent) String() string {
	if n, ok := intentNames[i]; ok {
		return n
	}
	return fmt.Sprintf("Intent(%d)", uint8(i))
}

// ParseIntent maps a binding name (begin_move, rotate, ...) to its intent.
// Dashes are accepted in place of underscores.
func ParseIntent(s string) (Intent, error) {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for i, n := range intentNames {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown intent %q", s)
}

// CancelPolicy decides what a revert intent does to a move in progress.
type CancelPolicy uint8

const (
	// CancelRevert restores every moved entity to its drag-start position.
	CancelRevert CancelPolicy = iota
	// CancelCommit keeps the moved positions, like commit.
	CancelCommit
)

func (p CancelPolicy) String() string {
	if p == CancelCommit {
		return "commit"
	}
	return "revert"
}

func ParseCancelPolicy(s string) (CancelPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "revert":
		return CancelRevert, nil
	case "commit":
		return CancelCommit, nil
	}
	return CancelRevert, fmt.Errorf("unknown cancel policy %q", s)
}

// Axis restricts a move to one world axis.
type Axis uint8

const (
	AxisNone Axis = iota
	AxisX
	AxisY
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	}
	return "none"
}

// constrain keeps only the component of d along the axis.
func (a Axis) constrain(x, y float32) (float32, float32) {
	switch a {
	case AxisX:
		return x, 0
	case AxisY:
		return 0, y
	}
	return x, y
}
