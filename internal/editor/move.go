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

	"splined/internal/scene"
	"splined/internal/vector"
)

// applyMove places every selected entity at its drag-start position plus the
// pointer's offset from the anchor. The start position is recorded as a
// Moving marker the first update an entity is seen moving, so the result
// never depends on how many frames elapsed.
func (e *Editor) applyMove() error {
	dx, dy := e.lock.constrain(e.cursor.X-e.anchor.X, e.cursor.Y-e.anchor.Y)
	delta := vector.Pt{X: dx, Y: dy}
	var errs []error
	for _, id := range e.g.Selected() {
		start, ok := e.g.Moving(id)
		if !ok {
			pos, live := e.g.Position(id)
			if !live {
				continue
			}
			start = pos
			e.g.MarkMoving(id, start)
		}
		mode, err := e.controlModeOf(id)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := e.moveEntity(id, mode, start.Add(delta)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// controlModeOf returns the control mode governing id: its own for a handle,
// its owner's for a control point.
func (e *Editor) controlModeOf(id scene.ID) (scene.ControlMode, error) {
	if h, ok := e.g.Handle(id); ok {
		return h.Mode, nil
	}
	cp, ok := e.g.ControlPoint(id)
	if !ok {
		return 0, fmt.Errorf("move %s: %w", id, scene.ErrNotFound)
	}
	h, ok := e.g.Handle(cp.Handle)
	if !ok {
		return 0, fmt.Errorf("move %s: owner %s: %w", id, cp.Handle, scene.ErrNotFound)
	}
	return h.Mode, nil
}

// moveEntity sets the position of one entity. Sibling control points are
// left where they are in every control mode.
func (e *Editor) moveEntity(id scene.ID, mode scene.ControlMode, to vector.Pt) error {
	switch mode {
	case scene.ControlVector, scene.ControlFree:
	case scene.ControlAligned:
		// TODO: keep the sibling control point collinear through the join.
	case scene.ControlAutomatic:
	default:
		return fmt.Errorf("move %s: control %s: %w", id, mode, ErrUnknownMode)
	}
	return e.g.SetPosition(id, to)
}
