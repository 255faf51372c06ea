/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"fmt"
	"slices"

	"splined/internal/vector"
)

// Seeds are the built-in starting scenes. Each returns the spline id.

// SeedTerrain adds the three-handle terrain outline.
func SeedTerrain(g *Graph) (ID, error) {
	knots := [][2]vector.Pt{
		{{X: -100, Y: -100}, {X: 100, Y: -100}},
		{{X: 100, Y: -100}, {X: 0, Y: 100}},
		{{X: 0, Y: 100}, {X: -100, Y: -100}},
	}
	handles := make([]ID, 0, len(knots))
	for _, k := range knots {
		h, err := g.AddHandleFromTangent(k[0], k[1])
		if err != nil {
			return "", fmt.Errorf("seed terrain: %w", err)
		}
		handles = append(handles, h)
	}
	return g.AddSpline(handles...)
}

// SeedLens adds a two-handle lens with handles at (±200,0) and control points
// 300 units above and below each.
func SeedLens(g *Graph) (ID, error) {
	var handles []ID
	// The left handle leaves upward and the right one downward, so both arcs bulge outward.
	for _, x := range []float32{-200, 200} {
		out := float32(300)
		if x > 0 {
			out = -300
		}
		h, err := g.AddHandle(vector.Pt{X: x}, vector.Pt{X: x, Y: -out}, vector.Pt{X: x, Y: out}, ControlVector)
		if err != nil {
			return "", fmt.Errorf("seed lens: %w", err)
		}
		handles = append(handles, h)
	}
	return g.AddSpline(handles...)
}

// Seeds maps seed names to their builders.
var Seeds = map[string]func(*Graph) (ID, error){
	"terrain": SeedTerrain,
	"lens":    SeedLens,
}

// SeedNames returns the known seed names, sorted.
func SeedNames() []string {
	names := make([]string, 0, len(Seeds))
	for n := range Seeds {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Seed builds the named seed into g.
func Seed(g *Graph, name string) (ID, error) {
	fn, ok := Seeds[name]
	if !ok {
		return "", fmt.Errorf("unknown seed %q (known: %v)", name, SeedNames())
	}
	return fn(g)
}
