//go:build fyne

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/chewxy/math32"

	"splined/internal/editor"
	"splined/internal/export"
	"splined/internal/render"
	"splined/internal/vector"
)

// zoomStep is the zoom factor applied per wheel notch.
const zoomStep = 1.1

var canvasBackground = vector.Color{R: 24, G: 24, B: 28, A: 255}

// SplineCanvas hosts an editor: it feeds pointer and key input into
// editor.Update once per Step and rasterizes the resulting frame.
type SplineCanvas struct {
	widget.BaseWidget

	ed     *editor.Editor
	cam    *editor.OrthoCamera
	raster *canvas.Raster
	log    *slog.Logger

	frame   render.Frame
	pointer *vector.Pt
	pending []editor.Intent
	fitted  bool

	// PickRadius is the selection tolerance in viewport pixels.
	PickRadius float32
	// OnStep is called after every update with the new frame.
	OnStep func(render.Frame)
}

func NewSplineCanvas(ed *editor.Editor, cam *editor.OrthoCamera, l *slog.Logger) *SplineCanvas {
	c := &SplineCanvas{ed: ed, cam: cam, log: l, PickRadius: 8}
	c.raster = canvas.NewRaster(c.draw)
	c.raster.SetMinSize(fyne.NewSize(640, 480))
	c.ExtendBaseWidget(c)
	return c
}

func (c *SplineCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.raster)
}

func (c *SplineCanvas) Resize(size fyne.Size) {
	c.BaseWidget.Resize(size)
	c.cam.Resize(size.Width, size.Height)
	if !c.fitted && size.Width > 0 && size.Height > 0 {
		c.fitted = true
		c.FitAll()
	}
}

// FitAll frames the current geometry.
func (c *SplineCanvas) FitAll() {
	if len(c.frame.Items) == 0 {
		c.frame = c.ed.Update(editor.Input{})
	}
	b := c.frame.Bounds()
	c.cam.Fit(vector.R(b.X, -(b.Y+b.H), b.W, b.H), 40)
	c.raster.Refresh()
}

// Queue adds intents for the next step.
func (c *SplineCanvas) Queue(its ...editor.Intent) { c.pending = append(c.pending, its...) }

// Step runs one editor update with the input gathered since the last step.
func (c *SplineCanvas) Step() render.Frame {
	in := editor.Input{Pointer: c.pointer, Camera: c.cam, Intents: c.pending}
	c.pending = nil
	c.frame = c.ed.Update(in)
	c.raster.Refresh()
	if c.OnStep != nil {
		c.OnStep(c.frame)
	}
	return c.frame
}

func (c *SplineCanvas) draw(w, h int) image.Image {
	size := c.Size()
	if w <= 0 || h <= 0 || size.Width <= 0 {
		return image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	}
	s := float32(w) / size.Width
	view := vector.Scale(s, s).Mul(c.cam.ViewFromCurve())
	return export.Rasterize(c.frame, export.Options{
		Width:      w,
		Height:     h,
		Background: canvasBackground,
		View:       &view,
	})
}

func toPt(p fyne.Position) vector.Pt { return vector.Pt{X: p.X, Y: p.Y} }

func (c *SplineCanvas) MouseIn(e *desktop.MouseEvent) { c.hover(e.Position) }

func (c *SplineCanvas) MouseMoved(e *desktop.MouseEvent) { c.hover(e.Position) }

func (c *SplineCanvas) MouseOut() { c.pointer = nil }

func (c *SplineCanvas) hover(p fyne.Position) {
	pt := toPt(p)
	c.pointer = &pt
}

// Tapped toggles selection of the entity under the pointer in Select mode and
// commits the transform otherwise.
func (c *SplineCanvas) Tapped(e *fyne.PointEvent) {
	if c.ed.Mode() != editor.ModeSelect {
		c.Queue(editor.IntentCommit)
		return
	}
	w, ok := c.cam.ViewportToWorld(toPt(e.Position))
	if !ok {
		return
	}
	g := c.ed.Graph()
	id, hit := editor.Pick(g, w, c.PickRadius/max(c.cam.Zoom, 1e-3))
	if !hit {
		return
	}
	if g.IsSelected(id) {
		g.Deselect(id)
	} else if err := g.Select(id); err != nil {
		c.log.Warn("select failed", slog.String("id", string(id)), slog.Any("err", err))
	}
	c.log.Debug("selection", slog.Int("count", len(g.Selected())))
}

func (c *SplineCanvas) Dragged(e *fyne.DragEvent) {
	c.cam.Pan(vector.Pt{X: e.Dragged.DX, Y: e.Dragged.DY})
	c.hover(e.Position)
	c.raster.Refresh()
}

func (c *SplineCanvas) DragEnd() {}

func (c *SplineCanvas) Scrolled(e *fyne.ScrollEvent) {
	notches := e.Scrolled.DY / 10
	c.cam.ZoomAt(toPt(e.Position), math32.Pow(zoomStep, notches))
	c.raster.Refresh()
}
