/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"errors"
	"testing"

	"splined/internal/config"
	"splined/internal/scene"
	"splined/internal/spline"
	"splined/internal/vector"
)

func TestComposeLens(t *testing.T) {
	g := scene.NewGraph()
	sp, err := scene.SeedLens(g)
	if err != nil {
		t.Fatal(err)
	}
	s, _ := g.Spline(sp)
	h, _ := g.Handle(s.Handles[0])
	if err := g.Select(h.A); err != nil {
		t.Fatal(err)
	}

	st := DefaultStyle()
	f := Compose(g, spline.BuildAll(g), st)
	if len(f.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", f.Diagnostics)
	}
	counts := map[ItemKind]int{}
	for _, it := range f.Items {
		counts[it.Kind]++
	}
	// 2 handles: fill+stroke, 4 arms, 2 handle markers + 4 control markers
	if counts[ItemFill] != 1 || counts[ItemStroke] != 1 || counts[ItemArm] != 4 || counts[ItemMarker] != 6 {
		t.Fatalf("item counts = %v", counts)
	}
	out, ok := f.Outline(sp)
	if !ok || out.Count(vector.CubicTo) != 2 {
		t.Fatalf("outline missing or wrong")
	}
	for _, it := range f.Items {
		switch {
		case it.Kind == ItemFill && it.Fill.Rule != vector.EvenOdd:
			t.Fatalf("outline fill must be even-odd")
		case it.Kind == ItemMarker && it.Entity == h.A:
			if !it.Selected || it.Fill.Color != st.Highlight {
				t.Fatalf("selected marker not highlighted: %+v", it.Fill)
			}
		case it.Kind == ItemMarker && it.Entity == h.B:
			if it.Selected || it.Fill.Color != st.Control {
				t.Fatalf("unselected control marker color = %v", it.Fill.Color)
			}
		case it.Kind == ItemMarker && it.Entity == h.ID:
			if it.Fill.Color != st.Handle {
				t.Fatalf("handle marker color = %v", it.Fill.Color)
			}
		}
	}
	// lens spans x in [-200-r, 200+r] and y in [-300, 300]
	b := f.Bounds()
	if b.X > -200 || b.Max().X < 200 || b.Y > -300 || b.Max().Y < 300 {
		t.Fatalf("bounds = %+v", b)
	}
}

func TestComposeSkipsBrokenSpline(t *testing.T) {
	g := scene.NewGraph()
	sp, _ := scene.SeedTerrain(g)
	f := Compose(g, []spline.Result{{Spline: sp, Err: scene.ErrInvalidTopology}}, DefaultStyle())
	if len(f.Items) != 0 {
		t.Fatalf("broken spline must draw nothing, got %d items", len(f.Items))
	}
	if len(f.Diagnostics) != 1 || !errors.Is(f.Diagnostics[0].Err, scene.ErrInvalidTopology) {
		t.Fatalf("diagnostics = %v", f.Diagnostics)
	}
}

func TestParseStyle(t *testing.T) {
	st, err := ParseStyle(config.StyleConfig{Fill: "#102030", StrokeWidth: 3}, 7)
	if err != nil {
		t.Fatal(err)
	}
	if st.Fill != (vector.Color{R: 0x10, G: 0x20, B: 0x30, A: 255}) || st.StrokeWidth != 3 || st.MarkerRadius != 7 {
		t.Fatalf("style = %+v", st)
	}
	if st.Control != DefaultStyle().Control {
		t.Fatalf("empty color should keep default")
	}
	if _, err := ParseStyle(config.StyleConfig{Arm: "#zz"}, 0); err == nil {
		t.Fatalf("expected error for bad color")
	}
}

func TestDefaultStyleMatchesConfigDefaults(t *testing.T) {
	d := config.Defaults()
	st, err := ParseStyle(d.Style, d.Editor.MarkerRadius)
	if err != nil {
		t.Fatal(err)
	}
	if st != DefaultStyle() {
		t.Fatalf("config defaults %+v differ from DefaultStyle %+v", st, DefaultStyle())
	}
}
