/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"slices"
	"testing"

	"splined/internal/config"
	"splined/internal/editor"
)

func TestIntentsForKey(t *testing.T) {
	cfg := config.Defaults()
	cases := []struct {
		key  string
		want []editor.Intent
	}{
		{"G", []editor.Intent{editor.IntentBeginMove}},
		{"Escape", []editor.Intent{editor.IntentDeselect, editor.IntentRevert}},
		{"Return", []editor.Intent{editor.IntentCommit}},
		{"KP_Enter", []editor.Intent{editor.IntentCommit}},
		{"X", []editor.Intent{editor.IntentConstrainX}},
		{"Q", nil},
	}
	for _, c := range cases {
		if got := IntentsForKey(cfg, c.key); !slices.Equal(got, c.want) {
			t.Fatalf("%s: got %v want %v", c.key, got, c.want)
		}
	}
}

func TestIntentsForKeySkipsUnknownIntents(t *testing.T) {
	cfg := config.Defaults()
	cfg.Bindings["teleport"] = "g"
	got := IntentsForKey(cfg, "g")
	if !slices.Equal(got, []editor.Intent{editor.IntentBeginMove}) {
		t.Fatalf("got %v", got)
	}
}
