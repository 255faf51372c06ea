/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package trace replays recorded input through the editor pipeline without a
// window. A trace names a built-in seed scene and lists per-frame inputs; it
// never carries geometry.
package trace

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"splined/internal/editor"
	"splined/internal/render"
	"splined/internal/scene"
	"splined/internal/vector"
)

//go:embed schema.json
var schemaJSON []byte

//go:embed demo.json
var demoJSON []byte

// ErrSchema is returned when a trace does not conform to the trace schema.
var ErrSchema = errors.New("trace does not match schema")

type Viewport struct {
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

// Ref names a handle or one of its control points by position in the scene.
type Ref struct {
	Spline int    `json:"spline"`
	Handle int    `json:"handle"`
	Part   string `json:"part,omitempty"` // join (default), a or b
}

type Frame struct {
	Pointer        *[2]float32 `json:"pointer"`
	Intents        []string    `json:"intents,omitempty"`
	Select         []Ref       `json:"select,omitempty"`
	ClearSelection bool        `json:"clear_selection,omitempty"`
	NoCamera       bool        `json:"no_camera,omitempty"`
	Repeat         int         `json:"repeat,omitempty"`
}

type Trace struct {
	Seed         string   `json:"seed"`
	Viewport     Viewport `json:"viewport"`
	CancelPolicy string   `json:"cancel_policy,omitempty"`
	Frames       []Frame  `json:"frames"`
}

// Parse validates data against the trace schema and decodes it.
func Parse(data []byte) (*Trace, error) {
	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("validate trace: %w", err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrSchema, strings.Join(msgs, "; "))
	}
	var tr Trace
	if err := json.Unmarshal(data, &tr); err != nil {
		return nil, fmt.Errorf("decode trace: %w", err)
	}
	if tr.Viewport.Width <= 0 || tr.Viewport.Height <= 0 {
		tr.Viewport = Viewport{Width: 800, Height: 600}
	}
	return &tr, nil
}

// Load reads and parses a trace file.
func Load(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	return Parse(data)
}

// Demo returns the built-in trace: the lens seed with both handles dragged by (50,-20).
func Demo() *Trace {
	tr, err := Parse(demoJSON)
	if err != nil {
		panic(fmt.Sprintf("trace: embedded demo is invalid: %v", err))
	}
	return tr
}

// Result is the state after a replay.
type Result struct {
	Frame  render.Frame
	Graph  *scene.Graph
	Editor *editor.Editor
	Camera *editor.OrthoCamera
	Frames int
}

// Run builds the trace's seed scene and feeds every frame through an editor.
// opts.CancelPolicy is replaced by the trace's own policy when it names one.
func Run(tr *Trace, opts editor.Options) (Result, error) {
	g := scene.NewGraph()
	if _, err := scene.Seed(g, tr.Seed); err != nil {
		return Result{}, err
	}
	if tr.CancelPolicy != "" {
		p, err := editor.ParseCancelPolicy(tr.CancelPolicy)
		if err != nil {
			return Result{}, err
		}
		opts.CancelPolicy = p
	}
	cam := editor.NewOrthoCamera(tr.Viewport.Width, tr.Viewport.Height)
	ed := editor.New(g, opts)
	res := Result{Graph: g, Editor: ed, Camera: cam}

	for i, fr := range tr.Frames {
		in, err := fr.input(cam)
		if err != nil {
			return res, fmt.Errorf("frame %d: %w", i, err)
		}
		if fr.ClearSelection {
			g.ClearSelection()
		}
		for _, r := range fr.Select {
			id, err := r.resolve(g)
			if err != nil {
				return res, fmt.Errorf("frame %d: %w", i, err)
			}
			if err := g.Select(id); err != nil {
				return res, fmt.Errorf("frame %d: %w", i, err)
			}
		}
		for range max(fr.Repeat, 1) {
			res.Frame = ed.Update(in)
			res.Frames++
		}
	}
	return res, nil
}

func (fr Frame) input(cam *editor.OrthoCamera) (editor.Input, error) {
	var in editor.Input
	if !fr.NoCamera {
		in.Camera = cam
	}
	if fr.Pointer != nil {
		in.Pointer = &vector.Pt{X: fr.Pointer[0], Y: fr.Pointer[1]}
	}
	for _, s := range fr.Intents {
		it, err := editor.ParseIntent(s)
		if err != nil {
			return in, err
		}
		in.Intents = append(in.Intents, it)
	}
	return in, nil
}

func (r Ref) resolve(g *scene.Graph) (scene.ID, error) {
	splines := g.Splines()
	if r.Spline < 0 || r.Spline >= len(splines) {
		return "", fmt.Errorf("spline %d: %w", r.Spline, scene.ErrNotFound)
	}
	s := splines[r.Spline]
	if r.Handle < 0 || r.Handle >= len(s.Handles) {
		return "", fmt.Errorf("spline %d handle %d: %w", r.Spline, r.Handle, scene.ErrNotFound)
	}
	h, ok := g.Handle(s.Handles[r.Handle])
	if !ok {
		return "", fmt.Errorf("spline %d handle %d: %w", r.Spline, r.Handle, scene.ErrNotFound)
	}
	switch r.Part {
	case "", "join":
		return h.ID, nil
	case "a":
		return h.A, nil
	case "b":
		return h.B, nil
	}
	return "", fmt.Errorf("unknown part %q", r.Part)
}
