/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package spline turns scene splines into closed composite cubic paths.
//
// World space has y pointing up; curve space, which renderers consume, has y
// pointing down. Every point leaving this package is in curve space.
package spline

import (
	"fmt"

	"splined/internal/scene"
	"splined/internal/vector"
)

// Flip negates y. It is its own inverse.
func Flip(p vector.Pt) vector.Pt { return vector.Pt{X: p.X, Y: -p.Y} }

// ToCurve maps a world position into curve space.
func ToCurve(p vector.Pt) vector.Pt { return Flip(p) }

// ToWorld maps a curve-space position back into world space.
func ToWorld(p vector.Pt) vector.Pt { return Flip(p) }

// CurveFromWorld is the matrix form of ToCurve, for composing with view transforms.
var CurveFromWorld = vector.Scale(1, -1)

// Knot is a handle resolved to positions. In is the incoming tangent (control
// point A), Out the outgoing one (control point B).
type Knot struct {
	Join, In, Out vector.Pt
}

// Lookup resolves entity ids. *scene.Graph satisfies it.
type Lookup interface {
	Handle(id scene.ID) (scene.Handle, bool)
	ControlPoint(id scene.ID) (scene.ControlPoint, bool)
}

// Resolve looks up every handle of s in world space. It fails with
// scene.ErrInvalidTopology for fewer than two handles or any dangling id.
func Resolve(l Lookup, s scene.Spline) ([]Knot, error) {
	if len(s.Handles) < 2 {
		return nil, fmt.Errorf("spline %s: %w: %d handles, need at least 2", s.ID, scene.ErrInvalidTopology, len(s.Handles))
	}
	knots := make([]Knot, 0, len(s.Handles))
	for i, hid := range s.Handles {
		h, ok := l.Handle(hid)
		if !ok {
			return nil, fmt.Errorf("spline %s: %w: handle %d (%s) is missing", s.ID, scene.ErrInvalidTopology, i, hid)
		}
		a, okA := l.ControlPoint(h.A)
		b, okB := l.ControlPoint(h.B)
		if !okA || !okB {
			return nil, fmt.Errorf("spline %s: %w: handle %s has a missing control point", s.ID, scene.ErrInvalidTopology, hid)
		}
		knots = append(knots, Knot{Join: h.Position, In: a.Position, Out: b.Position})
	}
	return knots, nil
}

// PathFromKnots builds the closed path through world-space knots:
// move to the first join, one cubic per consecutive pair, one cubic back to
// the first join, then close.
func PathFromKnots(knots []Knot) (vector.Path, error) {
	n := len(knots)
	if n < 2 {
		return vector.Path{}, fmt.Errorf("%w: %d knots, need at least 2", scene.ErrInvalidTopology, n)
	}
	p := vector.Path{Cmds: make([]vector.PathCmd, 0, n+2)}
	p.MoveToPt(ToCurve(knots[0].Join))
	for i := range n {
		cur, next := knots[i], knots[(i+1)%n]
		p.CubicToPt(ToCurve(cur.Out), ToCurve(next.In), ToCurve(next.Join))
	}
	p.Close()
	return p, nil
}

// BuildPath resolves s and builds its path. A malformed spline yields no path.
func BuildPath(l Lookup, s scene.Spline) (vector.Path, error) {
	knots, err := Resolve(l, s)
	if err != nil {
		return vector.Path{}, err
	}
	return PathFromKnots(knots)
}

// Result is the outcome of building one spline.
type Result struct {
	Spline scene.ID
	Path   vector.Path
	Err    error
}

// BuildAll builds every spline of g in creation order. Failures are reported
// per spline and never stop the others.
func BuildAll(g *scene.Graph) []Result {
	splines := g.Splines()
	out := make([]Result, 0, len(splines))
	for _, s := range splines {
		p, err := BuildPath(g, s)
		out = append(out, Result{Spline: s.ID, Path: p, Err: err})
	}
	return out
}
