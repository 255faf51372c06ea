/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"splined/internal/spline"
	"splined/internal/vector"
)

// Camera maps viewport coordinates to world coordinates. ok is false when the
// point lies outside the viewport.
type Camera interface {
	Active() bool
	ViewportToWorld(p vector.Pt) (w vector.Pt, ok bool)
}

// OrthoCamera is a pan/zoom camera over a fixed-size viewport. Viewport y
// points down, world y points up. Zoom is viewport pixels per world unit.
type OrthoCamera struct {
	Viewport vector.Size
	Center   vector.Pt
	Zoom     float32
	Disabled bool
}

const (
	minZoom = 0.05
	maxZoom = 64
)

// NewOrthoCamera centers the world origin in a w x h viewport at zoom 1.
func NewOrthoCamera(w, h float32) *OrthoCamera {
	return &OrthoCamera{Viewport: vector.Size{W: w, H: h}, Zoom: 1}
}

func (c *OrthoCamera) Active() bool { return c != nil && !c.Disabled }

// ViewFromWorld maps world coordinates to viewport coordinates.
func (c *OrthoCamera) ViewFromWorld() vector.Affine2D {
	z := c.zoom()
	return vector.Translate(c.Viewport.W/2, c.Viewport.H/2).
		Mul(vector.Scale(z, -z)).
		Mul(vector.Translate(-c.Center.X, -c.Center.Y))
}

// ViewFromCurve maps curve-space render output to viewport coordinates.
func (c *OrthoCamera) ViewFromCurve() vector.Affine2D {
	inv, _ := spline.CurveFromWorld.Invert()
	return c.ViewFromWorld().Mul(inv)
}

func (c *OrthoCamera) ViewportToWorld(p vector.Pt) (vector.Pt, bool) {
	if !vector.R(0, 0, c.Viewport.W, c.Viewport.H).Contains(p) {
		return vector.Pt{}, false
	}
	inv, ok := c.ViewFromWorld().Invert()
	if !ok {
		return vector.Pt{}, false
	}
	return inv.Apply(p), true
}

func (c *OrthoCamera) WorldToViewport(w vector.Pt) vector.Pt {
	return c.ViewFromWorld().Apply(w)
}

// Pan shifts the view by a viewport-space drag delta, so the world point under
// the pointer follows it.
func (c *OrthoCamera) Pan(d vector.Pt) {
	z := c.zoom()
	c.Center = c.Center.Sub(vector.Pt{X: d.X / z, Y: -d.Y / z})
}

// ZoomAt multiplies the zoom by factor keeping the world point under the
// viewport point p fixed.
func (c *OrthoCamera) ZoomAt(p vector.Pt, factor float32) {
	if factor <= 0 {
		return
	}
	before := c.ViewFromWorld()
	inv, ok := before.Invert()
	if !ok {
		return
	}
	anchor := inv.Apply(p)
	c.Zoom = min(max(c.zoom()*factor, minZoom), maxZoom)
	after := c.WorldToViewport(anchor)
	c.Pan(p.Sub(after))
}

// Resize changes the viewport size, keeping the world center.
func (c *OrthoCamera) Resize(w, h float32) { c.Viewport = vector.Size{W: w, H: h} }

// Fit centers r (world space) and zooms so it fills the viewport with margin pixels to spare.
func (c *OrthoCamera) Fit(r vector.Rect, margin float32) {
	c.Center = r.Center()
	if r.W <= 0 || r.H <= 0 {
		return
	}
	zx := (c.Viewport.W - 2*margin) / r.W
	zy := (c.Viewport.H - 2*margin) / r.H
	c.Zoom = min(max(min(zx, zy), minZoom), maxZoom)
}

func (c *OrthoCamera) zoom() float32 {
	if c.Zoom <= 0 {
		return 1
	}
	return c.Zoom
}
