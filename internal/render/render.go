/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render composes the per-frame draw list handed to renderers:
// spline outlines, tangent arms and selection-aware markers, all in curve space.
package render

import (
	"fmt"

	"splined/internal/config"
	"splined/internal/scene"
	"splined/internal/spline"
	"splined/internal/vector"
)

// Style holds the paints used by Compose.
type Style struct {
	Fill         vector.Color
	Stroke       vector.Color
	StrokeWidth  float32
	Handle       vector.Color
	Control      vector.Color
	Highlight    vector.Color
	Arm          vector.Color
	MarkerRadius float32
}

// DefaultStyle matches the built-in configuration defaults.
func DefaultStyle() Style {
	return Style{
		Fill:         vector.Gray,
		Stroke:       vector.White,
		StrokeWidth:  1,
		Handle:       vector.White,
		Control:      vector.Red,
		Highlight:    vector.Color{R: 255, G: 176, B: 0, A: 255},
		Arm:          vector.Color{R: 160, G: 160, B: 160, A: 255},
		MarkerRadius: 4,
	}
}

// ParseStyle builds a Style from configuration values. Empty colors keep the default.
func ParseStyle(sc config.StyleConfig, markerRadius float32) (Style, error) {
	st := DefaultStyle()
	for _, f := range []struct {
		name string
		val  string
		dst  *vector.Color
	}{
		{"fill", sc.Fill, &st.Fill},
		{"stroke", sc.Stroke, &st.Stroke},
		{"handle", sc.Handle, &st.Handle},
		{"control", sc.Control, &st.Control},
		{"highlight", sc.Highlight, &st.Highlight},
		{"arm", sc.Arm, &st.Arm},
	} {
		if f.val == "" {
			continue
		}
		c, err := vector.ParseHex(f.val)
		if err != nil {
			return DefaultStyle(), fmt.Errorf("style.%s: %w", f.name, err)
		}
		*f.dst = c
	}
	if sc.StrokeWidth > 0 {
		st.StrokeWidth = sc.StrokeWidth
	}
	if markerRadius > 0 {
		st.MarkerRadius = markerRadius
	}
	return st, nil
}

type ItemKind uint8

const (
	ItemFill ItemKind = iota
	ItemStroke
	ItemArm
	ItemMarker
)

func (k ItemKind) String() string {
	switch k {
	case ItemFill:
		return "fill"
	case ItemStroke:
		return "stroke"
	case ItemArm:
		return "arm"
	case ItemMarker:
		return "marker"
	}
	return "unknown"
}

// Item is one draw instruction. Exactly one of Fill and Stroke is enabled.
type Item struct {
	Kind     ItemKind
	Entity   scene.ID
	Path     vector.Path
	Fill     vector.Fill
	Stroke   vector.Stroke
	Selected bool
}

// Diagnostic reports a spline that could not be drawn this frame.
type Diagnostic struct {
	Spline scene.ID
	Err    error
}

func (d Diagnostic) String() string { return fmt.Sprintf("spline %s: %v", d.Spline, d.Err) }

// Frame is the output of one editor update.
type Frame struct {
	Seq         uint64
	Items       []Item
	Diagnostics []Diagnostic
}

// Bounds returns the union of all item bounds in curve space.
func (f Frame) Bounds() vector.Rect {
	var r vector.Rect
	first := true
	for _, it := range f.Items {
		if it.Path.Empty() {
			continue
		}
		b := it.Path.Bounds()
		if first {
			r, first = b, false
			continue
		}
		r = r.Union(b)
	}
	return r
}

// Outline returns the outline path built for a spline, if it was drawn.
func (f Frame) Outline(id scene.ID) (vector.Path, bool) {
	for _, it := range f.Items {
		if it.Kind == ItemFill && it.Entity == id {
			return it.Path, true
		}
	}
	return vector.Path{}, false
}

// Compose lays out the draw list for g from already-built spline results.
// Splines that failed to build are skipped with a diagnostic. Markers and arms
// are drawn for every handle of a drawn spline, highlighted when selected.
func Compose(g *scene.Graph, built []spline.Result, st Style) Frame {
	var f Frame
	for _, res := range built {
		if res.Err != nil {
			f.Diagnostics = append(f.Diagnostics, Diagnostic{Spline: res.Spline, Err: res.Err})
			continue
		}
		f.Items = append(f.Items,
			Item{Kind: ItemFill, Entity: res.Spline, Path: res.Path,
				Fill: vector.Fill{Color: st.Fill, Rule: vector.EvenOdd, Enabled: true}},
			Item{Kind: ItemStroke, Entity: res.Spline, Path: res.Path,
				Stroke: vector.Stroke{Color: st.Stroke, Width: st.StrokeWidth, Join: vector.JoinRound, MiterLim: 4, Enabled: true}},
		)
		s, _ := g.Spline(res.Spline)
		for _, hid := range s.Handles {
			h, _ := g.Handle(hid)
			f.Items = append(f.Items, handleItems(g, h, st)...)
		}
	}
	return f
}

func handleItems(g *scene.Graph, h scene.Handle, st Style) []Item {
	join := spline.ToCurve(h.Position)
	var items []Item
	for _, cid := range []scene.ID{h.A, h.B} {
		cp, _ := g.ControlPoint(cid)
		items = append(items, Item{
			Kind:   ItemArm,
			Entity: cid,
			Path:   vector.Segment(join, spline.ToCurve(cp.Position)),
			Stroke: vector.Stroke{Color: st.Arm, Width: st.StrokeWidth, Enabled: true},
		})
	}
	items = append(items, marker(g, h.ID, join, st.Handle, st))
	for _, cid := range []scene.ID{h.A, h.B} {
		cp, _ := g.ControlPoint(cid)
		items = append(items, marker(g, cid, spline.ToCurve(cp.Position), st.Control, st))
	}
	return items
}

func marker(g *scene.Graph, id scene.ID, at vector.Pt, c vector.Color, st Style) Item {
	sel := g.IsSelected(id)
	if sel {
		c = st.Highlight
	}
	return Item{
		Kind:     ItemMarker,
		Entity:   id,
		Path:     vector.Circle(at, st.MarkerRadius),
		Fill:     vector.Fill{Color: c, Enabled: true},
		Selected: sel,
	}
}
