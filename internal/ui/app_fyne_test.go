//go:build fyne

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// These tests drive the spline canvas without a window. They are gated behind
// the "fyne" build tag so CI (which is headless) does not need Fyne.
//
//	go test -tags fyne ./internal/ui
package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"

	"splined/internal/editor"
	applog "splined/internal/log"
	"splined/internal/scene"
	"splined/internal/vector"
)

func almostEqual(a, b, eps float32) bool {
	if a > b {
		return a-b <= eps
	}
	return b-a <= eps
}

func newLensCanvas(t *testing.T) (*SplineCanvas, *scene.Graph, scene.ID) {
	t.Helper()
	test.NewTempApp(t)
	g := scene.NewGraph()
	sp, err := scene.SeedLens(g)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	s, _ := g.Spline(sp)
	ed := editor.New(g, editor.Options{})
	cv := NewSplineCanvas(ed, editor.NewOrthoCamera(800, 600), applog.WithComponent("ui-test"))
	cv.Resize(fyne.NewSize(800, 600))
	return cv, g, s.Handles[0]
}

func TestSplineCanvas_FitsOnFirstResize(t *testing.T) {
	cv, g, h := newLensCanvas(t)
	pos, _ := g.Position(h)
	p := cv.cam.WorldToViewport(pos)
	if p.X < 0 || p.X > 800 || p.Y < 0 || p.Y > 600 {
		t.Fatalf("handle at %v is outside the viewport after fit", p)
	}
	if cv.cam.Viewport != (vector.Size{W: 800, H: 600}) {
		t.Fatalf("camera viewport = %v", cv.cam.Viewport)
	}
}

func TestSplineCanvas_HoverDrivesCursor(t *testing.T) {
	cv, _, _ := newLensCanvas(t)
	cv.MouseMoved(&desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(100, 120)}})
	cv.Step()
	want, _ := cv.cam.ViewportToWorld(vector.Pt{X: 100, Y: 120})
	got := cv.ed.Cursor()
	if !almostEqual(got.X, want.X, 1e-3) || !almostEqual(got.Y, want.Y, 1e-3) {
		t.Fatalf("cursor = %v, want %v", got, want)
	}

	cv.MouseOut()
	cv.Step()
	if cv.ed.Cursor() != got {
		t.Fatalf("cursor moved without a pointer: %v", cv.ed.Cursor())
	}
}

func TestSplineCanvas_TapTogglesSelection(t *testing.T) {
	cv, g, h := newLensCanvas(t)
	pos, _ := g.Position(h)
	vp := cv.cam.WorldToViewport(pos)
	tap := &fyne.PointEvent{Position: fyne.NewPos(vp.X, vp.Y)}

	cv.Tapped(tap)
	if !g.IsSelected(h) {
		t.Fatalf("handle not selected after tap; selected=%v", g.Selected())
	}
	cv.Tapped(tap)
	if g.IsSelected(h) {
		t.Fatal("second tap should deselect")
	}
	cv.Tapped(&fyne.PointEvent{Position: fyne.NewPos(1, 1)})
	if len(g.Selected()) != 0 {
		t.Fatalf("tap on empty space selected %v", g.Selected())
	}
}

func TestSplineCanvas_TapCommitsMove(t *testing.T) {
	cv, g, h := newLensCanvas(t)
	if err := g.Select(h); err != nil {
		t.Fatal(err)
	}
	cv.MouseMoved(&desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(400, 300)}})
	cv.Queue(editor.IntentBeginMove)
	cv.Step()
	if cv.ed.Mode() != editor.ModeMove {
		t.Fatalf("mode = %v, want move", cv.ed.Mode())
	}
	cv.Tapped(&fyne.PointEvent{Position: fyne.NewPos(420, 300)})
	cv.Step()
	if cv.ed.Mode() != editor.ModeSelect {
		t.Fatalf("mode = %v, want select after tap", cv.ed.Mode())
	}
}

func TestSplineCanvas_ScrollZoomsAtPointer(t *testing.T) {
	cv, _, _ := newLensCanvas(t)
	before := cv.cam.Zoom
	at := fyne.NewPos(200, 150)
	w0, _ := cv.cam.ViewportToWorld(vector.Pt{X: at.X, Y: at.Y})
	cv.Scrolled(&fyne.ScrollEvent{PointEvent: fyne.PointEvent{Position: at}, Scrolled: fyne.Delta{DY: 10}})
	if cv.cam.Zoom <= before {
		t.Fatalf("zoom %v did not grow from %v", cv.cam.Zoom, before)
	}
	w1, _ := cv.cam.ViewportToWorld(vector.Pt{X: at.X, Y: at.Y})
	if !almostEqual(w0.X, w1.X, 1e-2) || !almostEqual(w0.Y, w1.Y, 1e-2) {
		t.Fatalf("world point under pointer moved: %v -> %v", w0, w1)
	}
}

func TestSplineCanvas_DrawMatchesPixelSize(t *testing.T) {
	cv, _, _ := newLensCanvas(t)
	cv.Step()
	img := cv.draw(1600, 1200)
	if b := img.Bounds(); b.Dx() != 1600 || b.Dy() != 1200 {
		t.Fatalf("raster bounds = %v", b)
	}
}
