/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"splined/internal/scene"
	"splined/internal/vector"
)

// Pick returns the handle or control point closest to the world position p
// within radius. Control points win ties so they stay reachable when they sit
// on their handle.
func Pick(g *scene.Graph, p vector.Pt, radius float32) (scene.ID, bool) {
	var best scene.ID
	bestD := radius
	found := false
	try := func(id scene.ID) {
		pos, ok := g.Position(id)
		if !ok {
			return
		}
		if d := pos.Dist(p); d <= bestD {
			best, bestD, found = id, d, true
		}
	}
	for _, id := range g.Handles() {
		try(id)
	}
	for _, id := range g.ControlPoints() {
		try(id)
	}
	return best, found
}
