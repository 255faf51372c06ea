/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"errors"
	"fmt"
	"strings"

	"splined/internal/vector"
)

var (
	// ErrNotFound is returned when an id does not resolve to a live entity.
	ErrNotFound = errors.New("entity not found")
	// ErrReferenced is returned when deleting an entity that a live entity still points at.
	ErrReferenced = errors.New("entity is referenced")
	// ErrInvalidReference is returned when a relationship points at the wrong kind,
	// a dangling id, or violates ownership.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrInvalidTopology is returned for splines that cannot form a closed curve.
	ErrInvalidTopology = errors.New("invalid topology")
)

// ControlMode governs how a handle's two control points follow each other.
type ControlMode uint8

const (
	ControlVector ControlMode = iota
	ControlAligned
	ControlFree
	ControlAutomatic
)

func (m ControlMode) String() string {
	switch m {
	case ControlVector:
		return "vector"
	case ControlAligned:
		return "aligned"
	case ControlFree:
		return "free"
	case ControlAutomatic:
		return "automatic"
	}
	return fmt.Sprintf("ControlMode(%d)", uint8(m))
}

// ParseControlMode is the inverse of ControlMode.String (case-insensitive).
func ParseControlMode(s string) (ControlMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vector":
		return ControlVector, nil
	case "aligned":
		return ControlAligned, nil
	case "free":
		return ControlFree, nil
	case "automatic":
		return ControlAutomatic, nil
	}
	return 0, fmt.Errorf("unknown control mode %q", s)
}

// ControlPoint is a tangent point owned by exactly one handle.
type ControlPoint struct {
	ID       ID
	Position vector.Pt
	Handle   ID
}

// Handle is a curve vertex with two tangent control points. A is the incoming
// tangent, B the outgoing one.
type Handle struct {
	ID       ID
	Position vector.Pt
	A, B     ID
	Mode     ControlMode
}

// Spline is an ordered closed loop of handles.
type Spline struct {
	ID      ID
	Handles []ID
}

type state struct {
	points  map[ID]ControlPoint
	handles map[ID]Handle
	splines map[ID]Spline
	order   []ID // spline creation order
}

// Graph stores the editing entities, the selection set and the Moving markers.
// Graph is not safe for concurrent use; hosts serialize updates.
type Graph struct {
	st       state
	selected map[ID]struct{}
	moving   map[ID]vector.Pt
}

func NewGraph() *Graph {
	return &Graph{
		st: state{
			points:  make(map[ID]ControlPoint),
			handles: make(map[ID]Handle),
			splines: make(map[ID]Spline),
		},
		selected: make(map[ID]struct{}),
		moving:   make(map[ID]vector.Pt),
	}
}

// ControlPoint looks up a control point.
func (g *Graph) ControlPoint(id ID) (ControlPoint, bool) {
	cp, ok := g.st.points[id]
	return cp, ok
}

// Handle looks up a handle.
func (g *Graph) Handle(id ID) (Handle, bool) {
	h, ok := g.st.handles[id]
	return h, ok
}

// Spline looks up a spline. The returned handle list is a copy.
func (g *Graph) Spline(id ID) (Spline, bool) {
	s, ok := g.st.splines[id]
	if !ok {
		return Spline{}, false
	}
	s.Handles = append([]ID(nil), s.Handles...)
	return s, true
}

// Splines returns all live splines in creation order.
func (g *Graph) Splines() []Spline {
	out := make([]Spline, 0, len(g.st.order))
	for _, id := range g.st.order {
		if s, ok := g.Spline(id); ok {
			out = append(out, s)
		}
	}
	return out
}

// Handles returns the ids of all live handles, sorted.
func (g *Graph) Handles() []ID { return sortedKeys(g.st.handles) }

// ControlPoints returns the ids of all live control points, sorted.
func (g *Graph) ControlPoints() []ID { return sortedKeys(g.st.points) }

// Position returns the position of a handle or control point.
func (g *Graph) Position(id ID) (vector.Pt, bool) {
	if h, ok := g.st.handles[id]; ok {
		return h.Position, true
	}
	if cp, ok := g.st.points[id]; ok {
		return cp.Position, true
	}
	return vector.Pt{}, false
}

// SetPosition moves a handle or control point. Topology is never touched.
func (g *Graph) SetPosition(id ID, p vector.Pt) error {
	if h, ok := g.st.handles[id]; ok {
		h.Position = p
		g.st.handles[id] = h
		return nil
	}
	if cp, ok := g.st.points[id]; ok {
		cp.Position = p
		g.st.points[id] = cp
		return nil
	}
	return fmt.Errorf("set position %s: %w", id, ErrNotFound)
}

// Select marks a handle or control point as selected.
func (g *Graph) Select(id ID) error {
	if _, ok := g.Position(id); !ok {
		return fmt.Errorf("select %s: %w", id, ErrNotFound)
	}
	g.selected[id] = struct{}{}
	return nil
}

// Deselect removes id from the selection.
func (g *Graph) Deselect(id ID) { delete(g.selected, id) }

// ClearSelection empties the selection.
func (g *Graph) ClearSelection() { clear(g.selected) }

func (g *Graph) IsSelected(id ID) bool {
	_, ok := g.selected[id]
	return ok
}

// Selected returns the selected ids, sorted.
func (g *Graph) Selected() []ID { return sortedKeys(g.selected) }

// MarkMoving records the drag-start position of id.
func (g *Graph) MarkMoving(id ID, start vector.Pt) { g.moving[id] = start }

// ClearMoving drops every Moving marker.
func (g *Graph) ClearMoving() { clear(g.moving) }

// MovingIDs returns the ids carrying a Moving marker, sorted.
func (g *Graph) MovingIDs() []ID { return sortedKeys(g.moving) }

// Moving returns the drag-start position recorded for id.
func (g *Graph) Moving(id ID) (vector.Pt, bool) {
	p, ok := g.moving[id]
	return p, ok
}

// Update applies fn as one all-or-nothing mutation. fn works on a staged copy;
// the copy replaces the graph only if fn succeeds and every invariant holds.
func (g *Graph) Update(fn func(tx *Tx) error) error {
	tx := &Tx{st: g.st.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.st.check(); err != nil {
		return err
	}
	g.st = tx.st
	for id := range g.selected {
		if !tx.st.live(id) {
			delete(g.selected, id)
		}
	}
	for id := range g.moving {
		if !tx.st.live(id) {
			delete(g.moving, id)
		}
	}
	return nil
}

// AddHandle creates a handle at join with control points at a and b.
func (g *Graph) AddHandle(join, a, b vector.Pt, mode ControlMode) (ID, error) {
	id := NewID(KindHandle)
	err := g.Update(func(tx *Tx) error {
		ca, err := tx.CreateControlPoint(id, a)
		if err != nil {
			return err
		}
		cb, err := tx.CreateControlPoint(id, b)
		if err != nil {
			return err
		}
		return tx.CreateHandle(id, join, ca, cb, mode)
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// AddHandleFromTangent creates a handle whose outgoing control point sits at
// tangent and whose incoming one mirrors it through join.
func (g *Graph) AddHandleFromTangent(join, tangent vector.Pt) (ID, error) {
	a := join.Mul(2).Sub(tangent)
	return g.AddHandle(join, a, tangent, ControlVector)
}

// AddSpline creates a closed spline over the given handles.
func (g *Graph) AddSpline(handles ...ID) (ID, error) {
	var id ID
	err := g.Update(func(tx *Tx) error {
		var err error
		id, err = tx.CreateSpline(handles)
		return err
	})
	return id, err
}

// Delete removes one entity following the cascade policy of Tx.Delete.
func (g *Graph) Delete(id ID) error {
	return g.Update(func(tx *Tx) error { return tx.Delete(id) })
}
