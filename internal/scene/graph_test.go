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
	"testing"

	"splined/internal/vector"
)

func TestNewIDKinds(t *testing.T) {
	for _, k := range []Kind{KindControlPoint, KindHandle, KindSpline} {
		id := NewID(k)
		if got := KindOf(id); got != k {
			t.Fatalf("KindOf(%s) = %v, want %v", id, got, k)
		}
	}
	if KindOf("nonsense") != KindUnknown {
		t.Fatalf("malformed id should be unknown")
	}
	if NewID(KindHandle) == NewID(KindHandle) {
		t.Fatalf("ids must be unique")
	}
}

func TestAddHandleLinksControlPoints(t *testing.T) {
	g := NewGraph()
	h, err := g.AddHandle(vector.Pt{X: 1, Y: 2}, vector.Pt{X: 0, Y: 2}, vector.Pt{X: 2, Y: 2}, ControlAligned)
	if err != nil {
		t.Fatalf("AddHandle: %v", err)
	}
	hd, ok := g.Handle(h)
	if !ok {
		t.Fatalf("handle not found")
	}
	if hd.Mode != ControlAligned || hd.A == hd.B {
		t.Fatalf("unexpected handle %+v", hd)
	}
	for _, id := range []ID{hd.A, hd.B} {
		cp, ok := g.ControlPoint(id)
		if !ok || cp.Handle != h {
			t.Fatalf("control point %s not owned by %s", id, h)
		}
	}
	a, _ := g.Position(hd.A)
	if a != (vector.Pt{X: 0, Y: 2}) {
		t.Fatalf("A position = %v", a)
	}
}

func TestAddHandleFromTangentMirrors(t *testing.T) {
	g := NewGraph()
	h, err := g.AddHandleFromTangent(vector.Pt{X: -100, Y: -100}, vector.Pt{X: 100, Y: -100})
	if err != nil {
		t.Fatal(err)
	}
	hd, _ := g.Handle(h)
	a, _ := g.Position(hd.A)
	b, _ := g.Position(hd.B)
	if a != (vector.Pt{X: -300, Y: -100}) || b != (vector.Pt{X: 100, Y: -100}) {
		t.Fatalf("a=%v b=%v", a, b)
	}
}

func TestCreateSplineTopology(t *testing.T) {
	g := NewGraph()
	h1, _ := g.AddHandle(vector.Pt{}, vector.Pt{}, vector.Pt{}, ControlVector)
	h2, _ := g.AddHandle(vector.Pt{X: 1}, vector.Pt{}, vector.Pt{}, ControlVector)
	cases := [][]ID{
		nil,
		{h1},
		{h1, h1},
		{h1, NewID(KindHandle)},
	}
	for _, hs := range cases {
		if _, err := g.AddSpline(hs...); !errors.Is(err, ErrInvalidTopology) {
			t.Fatalf("AddSpline(%v) err = %v, want ErrInvalidTopology", hs, err)
		}
	}
	if len(g.Splines()) != 0 {
		t.Fatalf("failed creations must not leave splines")
	}
	if _, err := g.AddSpline(h1, h2); err != nil {
		t.Fatalf("AddSpline: %v", err)
	}
}

func TestDeletePolicy(t *testing.T) {
	g := NewGraph()
	sp, err := SeedLens(g)
	if err != nil {
		t.Fatal(err)
	}
	s, _ := g.Spline(sp)
	h, _ := g.Handle(s.Handles[0])

	if err := g.Delete(h.A); !errors.Is(err, ErrReferenced) {
		t.Fatalf("deleting owned control point: err = %v, want ErrReferenced", err)
	}
	if _, ok := g.ControlPoint(h.A); !ok {
		t.Fatalf("rejected delete must not remove the control point")
	}

	_ = g.Select(h.A)
	g.MarkMoving(h.B, vector.Pt{})
	if err := g.Delete(h.ID); err != nil {
		t.Fatalf("delete handle: %v", err)
	}
	for _, id := range []ID{h.ID, h.A, h.B} {
		if _, ok := g.Position(id); ok {
			t.Fatalf("%s should be gone after cascade", id)
		}
	}
	if g.IsSelected(h.A) {
		t.Fatalf("selection flag should be dropped with the entity")
	}
	if _, ok := g.Moving(h.B); ok {
		t.Fatalf("moving marker should be dropped with the entity")
	}
	// the spline survives and still names the dead handle
	if s2, ok := g.Spline(sp); !ok || s2.Handles[0] != h.ID {
		t.Fatalf("spline should be kept with its dangling handle id")
	}

	if err := g.Delete(sp); err != nil {
		t.Fatalf("delete spline: %v", err)
	}
	if len(g.Splines()) != 0 {
		t.Fatalf("spline not deleted")
	}
	if _, ok := g.Handle(s.Handles[1]); !ok {
		t.Fatalf("deleting a spline must not touch its handles")
	}
	if err := g.Delete(sp); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestUpdateIsAllOrNothing(t *testing.T) {
	g := NewGraph()
	boom := errors.New("boom")
	err := g.Update(func(tx *Tx) error {
		id := NewID(KindHandle)
		a, _ := tx.CreateControlPoint(id, vector.Pt{})
		b, _ := tx.CreateControlPoint(id, vector.Pt{})
		if err := tx.CreateHandle(id, vector.Pt{}, a, b, ControlVector); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if len(g.Handles()) != 0 || len(g.ControlPoints()) != 0 {
		t.Fatalf("failed update leaked entities")
	}

	// an orphan control point fails validation
	err = g.Update(func(tx *Tx) error {
		_, err := tx.CreateControlPoint(NewID(KindHandle), vector.Pt{})
		return err
	})
	if !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("orphan control point err = %v, want ErrInvalidReference", err)
	}
	if len(g.ControlPoints()) != 0 {
		t.Fatalf("orphan leaked")
	}
}

func TestCreateHandleRejectsSharedControlPoint(t *testing.T) {
	g := NewGraph()
	err := g.Update(func(tx *Tx) error {
		id := NewID(KindHandle)
		a, _ := tx.CreateControlPoint(id, vector.Pt{})
		return tx.CreateHandle(id, vector.Pt{}, a, a, ControlVector)
	})
	if !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("err = %v, want ErrInvalidReference", err)
	}
}

func TestSelectionAndMarkers(t *testing.T) {
	g := NewGraph()
	h, _ := g.AddHandle(vector.Pt{}, vector.Pt{}, vector.Pt{}, ControlVector)
	if err := g.Select(NewID(KindHandle)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("select unknown err = %v", err)
	}
	if err := g.Select(h); err != nil || !g.IsSelected(h) {
		t.Fatalf("select failed: %v", err)
	}
	g.MarkMoving(h, vector.Pt{X: 3})
	if p, ok := g.Moving(h); !ok || p.X != 3 {
		t.Fatalf("moving marker = %v,%v", p, ok)
	}
	g.ClearMoving()
	if len(g.MovingIDs()) != 0 {
		t.Fatalf("markers not cleared")
	}
	g.ClearSelection()
	if len(g.Selected()) != 0 {
		t.Fatalf("selection not cleared")
	}
}

func TestControlModeRoundTrip(t *testing.T) {
	for _, m := range []ControlMode{ControlVector, ControlAligned, ControlFree, ControlAutomatic} {
		got, err := ParseControlMode(m.String())
		if err != nil || got != m {
			t.Fatalf("ParseControlMode(%q) = %v,%v", m.String(), got, err)
		}
	}
	if _, err := ParseControlMode("mirror"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSeeds(t *testing.T) {
	for _, name := range SeedNames() {
		g := NewGraph()
		id, err := Seed(g, name)
		if err != nil {
			t.Fatalf("Seed(%s): %v", name, err)
		}
		if _, ok := g.Spline(id); !ok {
			t.Fatalf("Seed(%s) spline missing", name)
		}
	}
	if _, err := Seed(NewGraph(), "nope"); err == nil {
		t.Fatalf("unknown seed should fail")
	}
}
