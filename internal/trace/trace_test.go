/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package trace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"splined/internal/editor"
	applog "splined/internal/log"
	"splined/internal/scene"
	"splined/internal/spline"
	"splined/internal/vector"
)

func quiet() editor.Options { return editor.Options{Logger: applog.Discard()} }

func TestDemoTraceDragsLens(t *testing.T) {
	tr := Demo()
	res, err := Run(tr, quiet())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Frames != 7 {
		t.Fatalf("frames = %d, want 7", res.Frames)
	}
	if res.Editor.Mode() != editor.ModeSelect {
		t.Fatalf("mode = %s", res.Editor.Mode())
	}
	s := res.Graph.Splines()[0]
	want := []vector.Pt{{X: -150, Y: -20}, {X: 250, Y: -20}}
	for i, hid := range s.Handles {
		if p, _ := res.Graph.Position(hid); p != want[i] {
			t.Fatalf("handle %d = %v, want %v", i, p, want[i])
		}
	}
	out, ok := res.Frame.Outline(s.ID)
	if !ok {
		t.Fatalf("no outline")
	}
	if got := out.Cmds[0].Point(0); got != spline.Flip(want[0]) {
		t.Fatalf("move-to = %v", got)
	}
}

func TestParseRejectsBadTraces(t *testing.T) {
	cases := []string{
		`{"frames": []}`,
		`{"seed": "moon", "frames": []}`,
		`{"seed": "lens", "frames": [{"intents": ["undo"]}]}`,
		`{"seed": "lens", "frames": [{"pointer": [1]}]}`,
		`{"seed": "lens", "frames": [{"select": [{"handle": 0, "part": "c"}]}]}`,
		`{"seed": "lens", "frames": [], "extra": 1}`,
	}
	for _, c := range cases {
		if _, err := Parse([]byte(c)); !errors.Is(err, ErrSchema) {
			t.Fatalf("Parse(%s) err = %v, want ErrSchema", c, err)
		}
	}
	if _, err := Parse([]byte(`{`)); err == nil {
		t.Fatalf("malformed json should fail")
	}
}

func TestRunRevertAndNoCamera(t *testing.T) {
	data := `{
	  "seed": "terrain",
	  "viewport": {"width": 200, "height": 200},
	  "cancel_policy": "revert",
	  "frames": [
	    {"pointer": [100, 100], "select": [{"handle": 1, "part": "b"}], "intents": ["begin_move"]},
	    {"pointer": [150, 100]},
	    {"pointer": [190, 190], "no_camera": true},
	    {"pointer": [150, 100], "intents": ["revert"]}
	  ]
	}`
	tr, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	res, err := Run(tr, quiet())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Editor.Cursor() != (vector.Pt{X: 50, Y: 0}) {
		t.Fatalf("cursor = %v", res.Editor.Cursor())
	}
	h, _ := res.Graph.Handle(res.Graph.Splines()[0].Handles[1])
	// terrain handle 1: join (100,-100), tangent (0,100)
	if p, _ := res.Graph.Position(h.B); p != (vector.Pt{X: 0, Y: 100}) {
		t.Fatalf("reverted control point at %v", p)
	}
}

func TestRunUnknownRef(t *testing.T) {
	tr, err := Parse([]byte(`{"seed": "lens", "frames": [{"select": [{"handle": 5}]}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Run(tr, quiet()); !errors.Is(err, scene.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestLoadFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "t.json")
	if err := os.WriteFile(p, demoJSON, 0o600); err != nil {
		t.Fatal(err)
	}
	tr, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tr.Seed != "lens" || len(tr.Frames) != 5 {
		t.Fatalf("trace = %+v", tr)
	}
}
