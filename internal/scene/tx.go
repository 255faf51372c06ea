/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"fmt"
	"maps"
	"slices"

	"splined/internal/vector"
)

// Tx stages graph mutations. It is only valid inside Graph.Update.
type Tx struct {
	st state
}

func (s state) clone() state {
	return state{
		points:  maps.Clone(s.points),
		handles: maps.Clone(s.handles),
		splines: maps.Clone(s.splines),
		order:   slices.Clone(s.order),
	}
}

func (s state) live(id ID) bool {
	if _, ok := s.points[id]; ok {
		return true
	}
	if _, ok := s.handles[id]; ok {
		return true
	}
	_, ok := s.splines[id]
	return ok
}

// CreateControlPoint adds a control point owned by handle. The handle may be
// created later in the same transaction.
func (tx *Tx) CreateControlPoint(handle ID, pos vector.Pt) (ID, error) {
	if err := validate(handle, KindHandle); err != nil {
		return "", fmt.Errorf("create control point: %w", err)
	}
	id := NewID(KindControlPoint)
	tx.st.points[id] = ControlPoint{ID: id, Position: pos, Handle: handle}
	return id, nil
}

// CreateHandle adds a handle with the caller-minted id and two distinct
// control points it owns.
func (tx *Tx) CreateHandle(id ID, pos vector.Pt, a, b ID, mode ControlMode) error {
	if err := validate(id, KindHandle); err != nil {
		return fmt.Errorf("create handle: %w", err)
	}
	if _, dup := tx.st.handles[id]; dup {
		return fmt.Errorf("create handle %s: %w: id already in use", id, ErrInvalidReference)
	}
	if a == b {
		return fmt.Errorf("create handle %s: %w: control points must be distinct", id, ErrInvalidReference)
	}
	for _, cp := range []ID{a, b} {
		p, ok := tx.st.points[cp]
		if !ok {
			return fmt.Errorf("create handle %s: control point %s: %w", id, cp, ErrNotFound)
		}
		if p.Handle != id {
			return fmt.Errorf("create handle %s: %w: control point %s belongs to %s", id, ErrInvalidReference, cp, p.Handle)
		}
	}
	tx.st.handles[id] = Handle{ID: id, Position: pos, A: a, B: b, Mode: mode}
	return nil
}

// CreateSpline adds a closed spline over at least two distinct live handles.
func (tx *Tx) CreateSpline(handles []ID) (ID, error) {
	if err := tx.st.checkLoop(handles); err != nil {
		return "", fmt.Errorf("create spline: %w", err)
	}
	id := NewID(KindSpline)
	tx.st.splines[id] = Spline{ID: id, Handles: slices.Clone(handles)}
	tx.st.order = append(tx.st.order, id)
	return id, nil
}

// SetControlMode changes a handle's control mode.
func (tx *Tx) SetControlMode(id ID, mode ControlMode) error {
	h, ok := tx.st.handles[id]
	if !ok {
		return fmt.Errorf("set control mode %s: %w", id, ErrNotFound)
	}
	h.Mode = mode
	tx.st.handles[id] = h
	return nil
}

// Delete removes one entity. A handle takes its two control points with it.
// A control point whose handle is still live is rejected with ErrReferenced.
// A spline removes only itself. Splines left pointing at a deleted handle are
// kept and fail later with ErrInvalidTopology when their path is built.
func (tx *Tx) Delete(id ID) error {
	if cp, ok := tx.st.points[id]; ok {
		if _, live := tx.st.handles[cp.Handle]; live {
			return fmt.Errorf("delete %s: %w by handle %s", id, ErrReferenced, cp.Handle)
		}
		delete(tx.st.points, id)
		return nil
	}
	if h, ok := tx.st.handles[id]; ok {
		delete(tx.st.points, h.A)
		delete(tx.st.points, h.B)
		delete(tx.st.handles, id)
		return nil
	}
	if _, ok := tx.st.splines[id]; ok {
		delete(tx.st.splines, id)
		tx.st.order = slices.DeleteFunc(tx.st.order, func(s ID) bool { return s == id })
		return nil
	}
	return fmt.Errorf("delete %s: %w", id, ErrNotFound)
}

func (s state) checkLoop(handles []ID) error {
	if len(handles) < 2 {
		return fmt.Errorf("%w: %d handles, need at least 2", ErrInvalidTopology, len(handles))
	}
	seen := make(map[ID]struct{}, len(handles))
	for _, h := range handles {
		if _, dup := seen[h]; dup {
			return fmt.Errorf("%w: handle %s listed twice", ErrInvalidTopology, h)
		}
		seen[h] = struct{}{}
		if _, ok := s.handles[h]; !ok {
			return fmt.Errorf("%w: handle %s: %w", ErrInvalidTopology, h, ErrNotFound)
		}
	}
	return nil
}

// check validates the ownership invariants between control points and handles.
// Spline handle lists are validated on creation only.
func (s state) check() error {
	for id, cp := range s.points {
		h, ok := s.handles[cp.Handle]
		if !ok {
			return fmt.Errorf("%w: control point %s has no live handle %s", ErrInvalidReference, id, cp.Handle)
		}
		if h.A != id && h.B != id {
			return fmt.Errorf("%w: control point %s not attached to handle %s", ErrInvalidReference, id, cp.Handle)
		}
	}
	for id, h := range s.handles {
		if h.A == h.B {
			return fmt.Errorf("%w: handle %s reuses control point %s", ErrInvalidReference, id, h.A)
		}
		for _, cp := range []ID{h.A, h.B} {
			p, ok := s.points[cp]
			if !ok || p.Handle != id {
				return fmt.Errorf("%w: handle %s control point %s", ErrInvalidReference, id, cp)
			}
		}
	}
	return nil
}

func sortedKeys[V any](m map[ID]V) []ID {
	return slices.Sorted(maps.Keys(m))
}
